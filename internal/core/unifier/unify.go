package unifier

import (
	"github.com/ayutac/mizar-go/internal/core/term"
)

// UnifyTerm implements the term half of spec §4.4's structural
// unification (unify_term): it descends congruently, binding FreeVars to
// equivalence classes and caching nothing here directly (the Unifier
// wraps this with the per-(FreeVar, EqClass) cache spec §4.4 asks for).
// Bound variables are not expected at this stage (both sides come from
// already-opened formulas) and compare by raw index if they do occur.
func (u *Unifier) UnifyTerm(a, b term.Term, assign InstConjunct) bool {
	if fv, ok := a.(term.FreeVar); ok {
		return u.bindFreeVar(fv, b, assign)
	}
	if fv, ok := b.(term.FreeVar); ok {
		return u.bindFreeVar(fv, a, assign)
	}
	if ca, ok := u.Model.ClassOf(a); ok {
		if cb, ok := u.Model.ClassOf(b); ok {
			return u.Model.Resolve(ca) == u.Model.Resolve(cb)
		}
	}
	nrA, okA := term.ConstrNr(a)
	nrB, okB := term.ConstrNr(b)
	if okA && okB {
		if nrA != nrB {
			return false
		}
		argsA, argsB := term.Args(a), term.Args(b)
		if len(argsA) != len(argsB) {
			return false
		}
		for i := range argsA {
			if !u.UnifyTerm(argsA[i], argsB[i], assign) {
				return false
			}
		}
		return true
	}
	return term.Equal(a, b)
}

func (u *Unifier) bindFreeVar(fv term.FreeVar, other term.Term, assign InstConjunct) bool {
	cid := u.Model.ClassOrIntern(other)
	cid = u.Model.Resolve(cid)
	if key := (cacheKey{fv.Nr, cid}); u.cacheHas(key) {
		ok := u.cache[key]
		if ok {
			assign[fv.Nr] = cid
		}
		return ok
	}
	if existing, bound := assign[fv.Nr]; bound {
		ok := existing == cid
		u.cacheSet(cacheKey{fv.Nr, cid}, ok)
		return ok
	}
	assign[fv.Nr] = cid
	u.cacheSet(cacheKey{fv.Nr, cid}, true)
	return true
}

// UnifyFormula is unify_formula: structurally unify two same-shaped
// atoms, binding FreeVars on either side as needed.
func (u *Unifier) UnifyFormula(a, b term.Formula, assign InstConjunct) bool {
	switch x := a.(type) {
	case *term.Pred:
		y, ok := b.(*term.Pred)
		return ok && x.Nr == y.Nr && u.unifyArgs(x.Args, y.Args, assign)
	case *term.Attr:
		y, ok := b.(*term.Attr)
		return ok && x.Nr == y.Nr && x.Pos == y.Pos && u.unifyArgs(x.Args, y.Args, assign)
	case *term.SchPred:
		y, ok := b.(*term.SchPred)
		return ok && x.Nr == y.Nr && u.unifyArgs(x.Args, y.Args, assign)
	case *term.PrivPred:
		y, ok := b.(*term.PrivPred)
		return ok && x.Nr == y.Nr && u.unifyArgs(x.Args, y.Args, assign)
	case *term.Is:
		y, ok := b.(*term.Is)
		return ok && x.Ty.Radix().SameRadix(y.Ty.Radix()) && u.UnifyTerm(x.Term, y.Term, assign)
	default:
		return false
	}
}

func (u *Unifier) unifyArgs(a, b []term.Term, assign InstConjunct) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !u.UnifyTerm(a[i], b[i], assign) {
			return false
		}
	}
	return true
}

// fallbackUnify is the generic last resort of compute_inst (spec §4.4): an
// atom with sign pos is refuted by any assignment that unifies it,
// FreeVar-for-class, against an opposite-signed atom already present in
// the equalized basis. Atoms the ground (FreeVar-free) half of which
// already unifies against the basis unconditionally refute the target for
// every assignment, reported as InstTrue.
func (u *Unifier) fallbackUnify(atom interface{}, pos bool) InstDNF {
	f, ok := atom.(term.Formula)
	if !ok {
		return InstFalse()
	}
	basis := u.PosBasis
	if pos {
		basis = u.NegBasis
	}
	out := InstFalse()
	for _, g := range basis {
		assign := InstConjunct{}
		if !u.UnifyFormula(f, g, assign) {
			continue
		}
		if len(assign) == 0 {
			return InstTrue()
		}
		out = InstOR(out, InstAtom(assign))
	}
	return out
}
