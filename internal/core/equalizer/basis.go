// This file implements the equalizer's remaining per-conjunct passes:
// basis contradiction checks (spec §4.3 step 9), monotone attribute
// propagation over belongs_to, including the lift through power_set
// (step 10), negative mirror propagation (step 11), and pre-unification
// (step 13). No propagation runs over inclusion or less_or_equal atoms.
package equalizer

import (
	"github.com/ayutac/mizar-go/internal/core/global"
	"github.com/ayutac/mizar-go/internal/core/term"
	"github.com/ayutac/mizar-go/internal/errs"
)

func (e *Equalizer) resolveOrIntern(t term.Term) ClassID {
	if cid, ok := e.ClassOf(t); ok {
		return cid
	}
	return e.InternTerm(t)
}

// ClassOrIntern is the exported counterpart of resolveOrIntern, used by
// the unifier (spec §4.4's EquateClass.get, which "returns the class
// representing tm if one exists" and otherwise must still name a class to
// unify metavariables against).
func (e *Equalizer) ClassOrIntern(t term.Term) ClassID {
	return e.resolveOrIntern(t)
}

// Resolve is the exported counterpart of resolve, following union
// redirects to the current live representative of id.
func (e *Equalizer) Resolve(id ClassID) ClassID {
	return e.resolve(id)
}

func sameArgs(a, b []term.Term) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !term.Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// CheckBasisContradictions implements spec §4.3 step 9.
func (e *Equalizer) CheckBasisContradictions() error {
	for _, f := range e.negBasis {
		switch x := f.(type) {
		case *term.Attr:
			if len(x.Args) == 0 {
				continue
			}
			subject := x.Args[len(x.Args)-1]
			c := e.Class(e.resolveOrIntern(subject))
			if _, found := c.Super.Has(x.Nr, true); found {
				return errs.NewUnsat("negative attribute %d contradicts supercluster of class %d", x.Nr, c.ID)
			}
		case *term.Pred:
			for _, g := range e.posBasis {
				if p, ok := g.(*term.Pred); ok && p.Nr == x.Nr && sameArgs(p.Args, x.Args) {
					return errs.NewUnsat("predicate %d asserted both positively and negatively", x.Nr)
				}
			}
			ctor := e.G.Constructors.Get(x.Nr)
			if ctor.Properties.Has(global.Reflexive) && len(x.Args) > ctor.Arg1 && len(x.Args) > ctor.Arg2 {
				a := e.resolveOrIntern(x.Args[ctor.Arg1])
				b := e.resolveOrIntern(x.Args[ctor.Arg2])
				if a == b {
					return errs.NewUnsat("reflexive predicate %d negated on equal arguments", x.Nr)
				}
				e.ineqs = append(e.ineqs, [2]ClassID{a, b})
			}
		case *term.Is:
			c := e.Class(e.resolveOrIntern(x.Term))
			for _, ty := range c.Types {
				if ty.Radix().SameRadix(x.Ty.Radix()) {
					return errs.NewUnsat("negative Is contradicts a known type of class %d", c.ID)
				}
			}
		}
	}
	return nil
}

// PropagatePositive implements spec §4.3 step 10: monotone lifting of
// element-of facts through belongs_to/power_set, run to a fixpoint. A
// positive belongs_to(a, b) whose set class already carries "empty" is an
// immediate contradiction (spec §8 scenario (f): "x ∈ y, y is empty ⇒
// refutation") — checked ground, before any lifting, since the member
// itself is already known to inhabit an empty set.
func (e *Equalizer) PropagatePositive() error {
	elemNr, hasElem := e.G.Requirements.Get(global.ReqElement)
	emptyNr, hasEmpty := e.G.Requirements.Get(global.ReqEmpty)
	powNr, hasPow := e.G.Requirements.Get(global.ReqPowerSet)
	for {
		changed := false
		for _, f := range e.posBasis {
			p, ok := f.(*term.Pred)
			if !ok || len(p.Args) != 2 {
				continue
			}
			if e.G.Requirements.Is(global.ReqBelongsTo, p.Nr) && hasElem {
				memberClass := e.resolveOrIntern(p.Args[0])
				c := e.Class(memberClass)
				if hasEmpty {
					setClass := e.resolveOrIntern(p.Args[1])
					if _, found := e.Class(setClass).Super.Has(emptyNr, true); found {
						return errs.NewUnsat("x in y asserted but y (class %d) is empty", setClass)
					}
				}
				before := len(c.Super.List)
				fact := term.AttrFact{Nr: elemNr, Pos: true, Args: []term.Term{term.EqClass{ID: int(memberClass)}, p.Args[1]}}
				if err := e.InsertAttr(c, fact); err != nil {
					return err
				}
				if len(c.Super.List) != before {
					changed = true
				}
				// belongs_to(a, power_set(b)) also licenses element-of b
				// one level down (transitive lift through power-set).
				if setNr, ok := term.ConstrNr(p.Args[1]); ok && hasPow && setNr == powNr {
					if inner := term.Args(p.Args[1]); len(inner) == 1 {
						fact2 := term.AttrFact{Nr: elemNr, Pos: true, Args: []term.Term{term.EqClass{ID: int(memberClass)}, inner[0]}}
						before := len(c.Super.List)
						if err := e.InsertAttr(c, fact2); err != nil {
							return err
						}
						if len(c.Super.List) != before {
							changed = true
						}
					}
				}
			}
		}
		if !changed {
			return nil
		}
	}
}

// PropagateNegative implements spec §4.3 step 11: mirror rules that derive
// a contradiction from a negative atom plus known supercluster facts, e.g.
// ¬(a ∈ b) with "a : Element of b" and "b non-empty" — the negative
// counterpart of the positive belongs_to/empty check PropagatePositive
// makes for spec §8 scenario (f).
func (e *Equalizer) PropagateNegative() error {
	elemNr, hasElem := e.G.Requirements.Get(global.ReqElement)
	emptyNr, hasEmpty := e.G.Requirements.Get(global.ReqEmpty)
	for _, f := range e.negBasis {
		p, ok := f.(*term.Pred)
		if !ok || len(p.Args) != 2 || !e.G.Requirements.Is(global.ReqBelongsTo, p.Nr) {
			continue
		}
		memberClass := e.resolveOrIntern(p.Args[0])
		setClass := e.resolveOrIntern(p.Args[1])
		member := e.Class(memberClass)
		set := e.Class(setClass)
		if hasElem && hasEmpty {
			if _, nonEmpty := set.Super.Has(emptyNr, false); !nonEmpty {
				continue
			}
			for _, fact := range member.Super.List {
				if fact.Nr == elemNr && fact.Pos && len(fact.Args) == 2 && e.resolveOrIntern(fact.Args[1]) == setClass {
					return errs.NewUnsat("x in y negated but x is an element of y and y is non-empty")
				}
			}
		}
	}
	return nil
}

// PreUnification implements spec §4.3 step 13: collect inequations from
// negative equals_to atoms, added to those recorded by
// CheckBasisContradictions, and raise Unsat if any inequation pairs two
// already-equal classes. For each inequation whose one side is known empty
// or numerically 0, the negative "empty" attribute is pushed onto the
// other side. Inequations are not derived from supercluster contradictions
// between classes.
func (e *Equalizer) PreUnification() error {
	emptyNr, hasEmpty := e.G.Requirements.Get(global.ReqEmpty)
	for _, f := range e.negBasis {
		p, ok := f.(*term.Pred)
		if !ok || len(p.Args) != 2 || !e.G.Requirements.Is(global.ReqEqualsTo, p.Nr) {
			continue
		}
		a := e.resolveOrIntern(p.Args[0])
		b := e.resolveOrIntern(p.Args[1])
		e.ineqs = append(e.ineqs, [2]ClassID{a, b})
	}
	for i, pair := range e.ineqs {
		a, b := e.resolve(pair[0]), e.resolve(pair[1])
		if a == b {
			return errs.NewUnsat("classes %d and %d are both equated and disequated", a, b)
		}
		e.ineqs[i] = [2]ClassID{a, b}
		if hasEmpty {
			// Mizar's foundational encoding identifies the number 0 with
			// the empty set, so a class known to differ from one that is
			// either the empty set or numerically 0 is non-empty/non-zero
			// in the same stroke: push the negative "empty" attribute
			// onto the other side of the inequation so later passes see
			// it without re-deriving it from the raw disequality.
			ca, cb := e.Class(a), e.Class(b)
			if e.isEmptyOrZero(ca, emptyNr) {
				if err := e.InsertAttr(cb, term.AttrFact{Nr: emptyNr, Pos: false, Args: []term.Term{term.EqClass{ID: int(cb.ID)}}}); err != nil {
					return err
				}
			}
			if e.isEmptyOrZero(cb, emptyNr) {
				if err := e.InsertAttr(ca, term.AttrFact{Nr: emptyNr, Pos: false, Args: []term.Term{term.EqClass{ID: int(ca.ID)}}}); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// isEmptyOrZero reports whether c is already known to be the empty set
// (carries the positive "empty" attribute) or numerically 0.
func (e *Equalizer) isEmptyOrZero(c *EqTerm, emptyNr int) bool {
	if c.Number != nil {
		if n, ok := c.Number.Int64(); ok && n == 0 {
			return true
		}
	}
	_, found := c.Super.Has(emptyNr, true)
	return found
}
