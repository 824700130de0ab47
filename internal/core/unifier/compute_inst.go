// This file implements compute_inst (spec §4.4): given a target atom and
// its required sign, return an instantiation DNF over (FreeVar -> class)
// such that assigning any conjunct refutes the atom against the
// equalizer's model.
package unifier

import (
	"github.com/ayutac/mizar-go/internal/core/equalizer"
	"github.com/ayutac/mizar-go/internal/core/global"
	"github.com/ayutac/mizar-go/internal/core/term"
)

// ComputeInst implements spec §4.4's compute_inst(bas, A, pos).
func (u *Unifier) ComputeInst(atom term.Formula, pos bool) InstDNF {
	switch x := atom.(type) {
	case *term.Pred:
		return u.computeInstPred(x, pos)
	case *term.Attr:
		return u.computeInstAttr(x, pos)
	case *term.Is:
		return u.computeInstIs(x, pos)
	default:
		return u.fallbackUnify(atom, pos)
	}
}

// computeInstPred covers reflexivity/irreflexivity on symmetric/reflexive
// predicates, belongs_to-with-emptiness (the same emptiness check also runs
// for positive inclusion atoms), and less_or_equal-with-sign-attributes,
// falling back to basis unification. There is no power_set-specific case
// for inclusion.
func (u *Unifier) computeInstPred(x *term.Pred, pos bool) InstDNF {
	ctor := u.G.Constructors.Get(x.Nr)

	if len(x.Args) > ctor.Arg1 && len(x.Args) > ctor.Arg2 && term.Equal(x.Args[ctor.Arg1], x.Args[ctor.Arg2]) {
		switch {
		case ctor.Properties.Has(global.Reflexive):
			// P(v,v) is always true for reflexive P: a positive
			// occurrence can never be refuted this way; a negative
			// occurrence is already refuted for every assignment.
			if pos {
				return InstFalse()
			}
			return InstTrue()
		case ctor.Properties.Has(global.Irreflexive):
			// P(v,v) is always false for irreflexive P: symmetric to
			// the reflexive case above.
			if pos {
				return InstTrue()
			}
			return InstFalse()
		}
	}

	if u.G.Requirements.Is(global.ReqInclusion, x.Nr) {
		// Spec §9 Open Question 4: the original's compute_inst has an
		// inconsistent early return for inclusion ("if !pos return
		// inst") taken before the positive-branch logic runs. Preserved
		// here as observed, pending the corpus validation the spec
		// asks for: a negative inclusion atom is never resolved via the
		// emptiness branch below, only through the generic fallback.
		if !pos {
			return u.fallbackUnify(x, pos)
		}
	}

	if (u.G.Requirements.Is(global.ReqBelongsTo, x.Nr) || u.G.Requirements.Is(global.ReqInclusion, x.Nr)) && len(x.Args) == 2 {
		if inst, ok := u.instBelongsToEmpty(x, pos); ok {
			return inst
		}
	}

	if u.G.Requirements.Is(global.ReqLessOrEqual, x.Nr) && len(x.Args) == 2 {
		if inst, ok := u.instLessOrEqualSign(x, pos); ok {
			return inst
		}
	}

	return u.fallbackUnify(x, pos)
}

// instBelongsToEmpty implements "belongs_to with emptiness": a positive
// belongs_to(a,b) is refuted by any assignment putting b in a known-empty
// class, since nothing belongs to an empty set. It makes no element-of
// inference against negative Is atoms.
func (u *Unifier) instBelongsToEmpty(x *term.Pred, pos bool) (InstDNF, bool) {
	emptyNr, ok := u.G.Requirements.Get(global.ReqEmpty)
	if !ok || !pos {
		return InstDNF{}, false
	}
	out := InstFalse()
	found := false
	for _, c := range u.candidateClasses() {
		if _, isEmpty := c.Super.Has(emptyNr, true); !isEmpty {
			continue
		}
		assign := InstConjunct{}
		if u.UnifyTerm(x.Args[1], u.classTerm(c.ID), assign) {
			out = InstOR(out, InstAtom(assign))
			found = true
		}
	}
	return out, found
}

// instLessOrEqualSign implements "less_or_equal with sign attributes": a
// positive a<=b is refuted by any assignment making a known-positive and
// b known-negative simultaneously.
func (u *Unifier) instLessOrEqualSign(x *term.Pred, pos bool) (InstDNF, bool) {
	if !pos {
		return InstDNF{}, false
	}
	posNr, hasPos := u.G.Requirements.Get(global.ReqPositive)
	negNr, hasNeg := u.G.Requirements.Get(global.ReqNegative)
	if !hasPos || !hasNeg {
		return InstDNF{}, false
	}
	out := InstFalse()
	found := false
	for _, ca := range u.candidateClasses() {
		if _, ok := ca.Super.Has(posNr, true); !ok {
			continue
		}
		for _, cb := range u.candidateClasses() {
			if _, ok := cb.Super.Has(negNr, true); !ok {
				continue
			}
			assign := InstConjunct{}
			if u.UnifyTerm(x.Args[0], u.classTerm(ca.ID), assign) && u.UnifyTerm(x.Args[1], u.classTerm(cb.ID), assign) {
				out = InstOR(out, InstAtom(assign))
				found = true
			}
		}
	}
	return out, found
}

// computeInstAttr implements "positive Attr against subject supercluster":
// a positive Attr(nr, args) is refuted by any assignment whose subject
// class records the opposite sign of nr in its supercluster.
func (u *Unifier) computeInstAttr(x *term.Attr, pos bool) InstDNF {
	if len(x.Args) == 0 {
		return u.fallbackUnify(x, pos)
	}
	subject := x.Args[len(x.Args)-1]
	want := !pos
	if cid, ok := u.Model.ClassOf(subject); ok {
		c := u.Model.Class(u.Model.Resolve(cid))
		if _, found := c.Super.Has(x.Nr, want); found {
			return InstTrue()
		}
		return u.fallbackUnify(x, pos)
	}
	out := InstFalse()
	found := false
	for _, c := range u.candidateClasses() {
		if _, ok := c.Super.Has(x.Nr, want); !ok {
			continue
		}
		assign := InstConjunct{}
		if u.UnifyTerm(subject, u.classTerm(c.ID), assign) {
			out = InstOR(out, InstAtom(assign))
			found = true
		}
	}
	if found {
		return out
	}
	return u.fallbackUnify(x, pos)
}

// computeInstIs refutes a negative Is(t, T) outright when t's class already
// records a type with T's radix. Every other case, including every
// positive Is, falls back to basis unification, which matches a positive
// Is against the negative Is atoms of the basis. Supercluster attributes
// are not consulted.
func (u *Unifier) computeInstIs(x *term.Is, pos bool) InstDNF {
	if cid, ok := u.Model.ClassOf(x.Term); ok {
		c := u.Model.Class(u.Model.Resolve(cid))
		for _, ty := range c.Types {
			sameRadix := ty.Radix().SameRadix(x.Ty.Radix())
			if pos && !sameRadix {
				continue
			}
			if !pos && sameRadix {
				return InstTrue()
			}
		}
	}
	return u.fallbackUnify(x, pos)
}

// classTerm returns the canonical EqClass term for a class id, used as
// the "other side" when unifying a FreeVar-bearing term against a known
// class (spec §4.4's structural unification descends into EqClass
// literals the same as any other term).
func (u *Unifier) classTerm(id equalizer.ClassID) term.Term {
	return term.EqClass{ID: int(id)}
}

// candidateClasses returns every live class in the model, the search
// space compute_inst scans when no single class is already pinned down
// (spec §4.4: "enumerate equivalence classes carrying the needed fact").
func (u *Unifier) candidateClasses() []*equalizer.EqTerm {
	return u.Model.Classes()
}
