package equalizer

import (
	"sort"

	"github.com/ayutac/mizar-go/internal/core/dnf"
	"github.com/ayutac/mizar-go/internal/core/global"
	"github.com/ayutac/mizar-go/internal/core/term"
)

// Classify implements spec §4.3 step 1: for each atom required positive,
// Is/Attr/equals_to atoms are consumed into the congruence model; every
// other positive atom is kept in the positive basis, and every negative
// atom is kept in the negative basis. Atom ids are visited in ascending
// order so that interning order (and therefore class numbering) is
// deterministic regardless of the conjunct map's iteration order (spec §5).
func (e *Equalizer) Classify(atoms *dnf.Atoms, conj dnf.Conjunct) error {
	ids := make([]dnf.AtomID, 0, len(conj))
	for id := range conj {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		pos := conj[id]
		f := atoms.Get(id)
		if !pos {
			e.negBasis = append(e.negBasis, f)
			continue
		}
		switch x := f.(type) {
		case *term.Is:
			cid := e.InternTerm(x.Term)
			if err := e.InsertType(e.Class(cid), x.Ty); err != nil {
				return err
			}
		case *term.Attr:
			if len(x.Args) == 0 {
				e.posBasis = append(e.posBasis, f)
				continue
			}
			subject := x.Args[len(x.Args)-1]
			cid := e.InternTerm(subject)
			fact := term.AttrFact{Nr: x.Nr, Pos: true, Args: x.Args}
			if err := e.InsertAttr(e.Class(cid), fact); err != nil {
				return err
			}
		case *term.Pred:
			if e.G.Requirements.Is(global.ReqEqualsTo, x.Nr) && len(x.Args) == 2 {
				a := e.InternTerm(x.Args[0])
				b := e.InternTerm(x.Args[1])
				e.pendingEq = append(e.pendingEq, [2]ClassID{a, b})
				continue
			}
			e.posBasis = append(e.posBasis, f)
		default:
			e.posBasis = append(e.posBasis, f)
		}
	}
	return nil
}

// AugmentSymmetry implements spec §4.3 step 3: for every positive Pred
// whose constructor is asymmetric (or connected), add its argument-swapped
// form to the negative basis (spec §8 property 6).
func (e *Equalizer) AugmentSymmetry() {
	var extra []term.Formula
	for _, f := range e.posBasis {
		p, ok := f.(*term.Pred)
		if !ok || len(p.Args) != 2 {
			continue
		}
		ctor := e.G.Constructors.Get(p.Nr)
		if ctor.Properties.Has(global.Asymmetric) || ctor.Properties.Has(global.Connected) {
			extra = append(extra, &term.Pred{Nr: p.Nr, Args: []term.Term{p.Args[1], p.Args[0]}})
		}
	}
	e.negBasis = append(e.negBasis, extra...)
}

// SeedSpecialElements implements spec §4.3 step 4's "empty"/"zero"
// seeding: every class whose member is the registered empty_set functor
// gets the "empty" attribute; every class whose member is the registered
// zero functor gets Number = 0. Identifications-driven "settings" (step 4's
// eq_const hints) are folded into pendingEq the same way equals_to atoms
// are, by EqualizeIdentifications.
func (e *Equalizer) SeedSpecialElements() error {
	emptyAttr, hasEmptyAttr := e.G.Requirements.Get(global.ReqEmpty)
	emptySetFn, hasEmptySetFn := e.G.Requirements.Get(global.ReqEmptySet)
	zeroFn, hasZeroFn := e.G.Requirements.Get(global.ReqZero)
	for _, c := range e.classes {
		if c == nil || len(c.Members) == 0 {
			continue
		}
		for _, m := range c.Members {
			nr, ok := term.ConstrNr(e.marks[m].Term)
			if !ok {
				continue
			}
			if hasEmptySetFn && hasEmptyAttr && nr == emptySetFn {
				if err := e.InsertAttr(c, term.AttrFact{Nr: emptyAttr, Pos: true, Args: []term.Term{term.EqClass{ID: int(c.ID)}}}); err != nil {
					return err
				}
			}
			if hasZeroFn && nr == zeroFn && c.Number == nil {
				z := term.NewNumeral(0)
				c.Number = &z
			}
		}
	}
	return nil
}

// EqualizeIdentifications stages every registered Identification whose
// primary instantiation matches a live class pair as a pending equation
// (spec §4.3 step 4's "settings"), then runs them to a fixpoint via Union.
func (e *Equalizer) EqualizeIdentifications() error {
	for _, id := range e.G.Identifications.List {
		for _, c := range e.classes {
			if c == nil || len(c.Members) == 0 {
				continue
			}
			for _, m := range c.Members {
				args, ok := matchPattern(id.Lhs, e.marks[m].Term)
				if !ok {
					continue
				}
				rhs := term.SubstLoci(id.Rhs, args)
				rhsClass := e.InternTerm(rhs)
				e.pendingEq = append(e.pendingEq, [2]ClassID{c.ID, rhsClass})
			}
		}
	}
	return e.EqualizePending()
}

// EqualizePending implements the "equate pending pairs" half of spec §4.3
// step 5: drain pendingEq through Union until empty.
func (e *Equalizer) EqualizePending() error {
	for len(e.pendingEq) > 0 {
		p := e.pendingEq[0]
		e.pendingEq = e.pendingEq[1:]
		if err := e.Union(p[0], p[1]); err != nil {
			return err
		}
	}
	return nil
}
