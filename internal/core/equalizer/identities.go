package equalizer

import (
	"fmt"

	"github.com/ayutac/mizar-go/internal/core/global"
	"github.com/ayutac/mizar-go/internal/core/term"
)

// runReductions implements spec §4.3 step 6: for each interned-constant
// class, try each registered reduction rule; on a ground match, merge the
// class with the class of the instantiated RHS. Iterates classes and
// reductions in ascending id order for determinism (spec §5).
func (e *Equalizer) runReductions() (bool, error) {
	changed := false
	for _, c := range e.classes {
		if c == nil || len(c.Members) == 0 {
			continue
		}
		for _, m := range append([]MarkID(nil), c.Members...) {
			mt := e.marks[m].Term
			for _, r := range e.G.Reductions.List {
				args, ok := matchPattern(r.Lhs, mt)
				if !ok {
					continue
				}
				rhsClass := e.InternTerm(term.SubstLoci(r.Rhs, args))
				cur := e.resolve(c.ID)
				if rhsClass == cur {
					continue
				}
				if err := e.Union(cur, rhsClass); err != nil {
					return changed, err
				}
				changed = true
			}
		}
	}
	return changed, nil
}

// runClashPropagation implements spec §4.3 step 7's "clash propagation":
// any two marks in different classes whose outer constructor and argument
// classes match structurally are forced to merge. This re-derives
// congruences that findCongruent could not see at intern time because the
// classes involved were only unified afterward.
func (e *Equalizer) runClashPropagation() (bool, error) {
	changed := false
	seen := map[string]ClassID{}
	for _, c := range e.classes {
		if c == nil || len(c.Members) == 0 {
			continue
		}
		for _, m := range c.Members {
			nr, ok := term.ConstrNr(e.marks[m].Term)
			if !ok {
				continue
			}
			args := term.Args(e.marks[m].Term)
			argClasses := make([]ClassID, 0, len(args))
			resolved := true
			for _, a := range args {
				cid, ok := e.ClassOf(a)
				if !ok {
					resolved = false
					break
				}
				argClasses = append(argClasses, cid)
			}
			if !resolved {
				continue
			}
			key := fmt.Sprintf("%d:%v", nr, argClasses)
			cur := e.resolve(c.ID)
			if prev, ok := seen[key]; ok {
				prev = e.resolve(prev)
				if prev != cur {
					if err := e.Union(prev, cur); err != nil {
						return changed, err
					}
					changed = true
				}
			} else {
				seen[key] = cur
			}
		}
	}
	return changed, nil
}

// runAlgebraicIdentities implements the idempotence/involutiveness/
// projectivity part of spec §4.3 step 7's identity loop.
func (e *Equalizer) runAlgebraicIdentities() (bool, error) {
	changed := false
	for _, c := range e.classes {
		if c == nil || len(c.Members) == 0 {
			continue
		}
		for _, m := range append([]MarkID(nil), c.Members...) {
			mt := e.marks[m].Term
			nr, ok := term.ConstrNr(mt)
			if !ok {
				continue
			}
			ctor := e.G.Constructors.Get(nr)
			args := term.Args(mt)

			if ctor.Properties.Has(global.Involutive) && len(args) == 1 {
				// f(f(x)) = x: if args[0]'s class contains a member
				// f(y), merge this class with y's class.
				inner, ok := e.ClassOf(args[0])
				if !ok {
					continue
				}
				if y, found := e.findUnaryArg(inner, nr); found {
					cur := e.resolve(c.ID)
					yc := e.resolve(y)
					if cur != yc {
						if err := e.Union(cur, yc); err != nil {
							return changed, err
						}
						changed = true
					}
				}
			}

			if ctor.Properties.Has(global.Idempotent) && len(args) == 2 {
				a, aok := e.ClassOf(args[0])
				b, bok := e.ClassOf(args[1])
				if aok && bok && a == b {
					// f(x, x) = x
					cur := e.resolve(c.ID)
					if cur != a {
						if err := e.Union(cur, a); err != nil {
							return changed, err
						}
						changed = true
					}
				}
			}

			if ctor.Properties.Has(global.Projective) && len(args) == 2 {
				pos := ctor.Arg1
				if pos >= 0 && pos < len(args) {
					target, ok := e.ClassOf(args[pos])
					if ok {
						cur := e.resolve(c.ID)
						if cur != target {
							if err := e.Union(cur, target); err != nil {
								return changed, err
							}
							changed = true
						}
					}
				}
			}
		}
	}
	return changed, nil
}

// findUnaryArg looks for a unary application of constructor nr among
// class's members, returning the class of its single argument.
func (e *Equalizer) findUnaryArg(class ClassID, nr int) (ClassID, bool) {
	for _, m := range e.Class(class).Members {
		if n, ok := term.ConstrNr(e.marks[m].Term); ok && n == nr {
			args := term.Args(e.marks[m].Term)
			if len(args) == 1 {
				if cid, ok := e.ClassOf(args[0]); ok {
					return cid, true
				}
			}
		}
	}
	return 0, false
}

// RunIdentityLoop implements spec §4.3 steps 6-7: runs reductions and the
// algebraic/clash identity passes to a fixed point, re-running reductions
// whenever a merge occurred, terminating when one full iteration performs
// no merge.
func (e *Equalizer) RunIdentityLoop() error {
	for {
		any := false
		changed, err := e.runReductions()
		if err != nil {
			return err
		}
		any = any || changed
		changed, err = e.ProcessLinearEquations()
		if err != nil {
			return err
		}
		any = any || changed
		changed, err = e.EquatePolynomials()
		if err != nil {
			return err
		}
		any = any || changed
		changed, err = e.runAlgebraicIdentities()
		if err != nil {
			return err
		}
		any = any || changed
		changed, err = e.runClashPropagation()
		if err != nil {
			return err
		}
		any = any || changed
		if !any {
			return nil
		}
	}
}
