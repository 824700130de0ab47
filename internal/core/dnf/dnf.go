// Package dnf implements atom interning and the disjunctive-normal-form
// machinery of spec §4.2: "Atoms.normalize(f, pos) converts f ... to DNF"
// plus the AND/OR/absorption operations spec §9's "DNF representation"
// note describes. The second DNF variant, for instantiation sets
// (metavariable -> equivalence class), lives in the unifier package
// (InstDNF) and has AND/OR but no absorption.
//
// Grounded on cuelang.org/go/internal/core/adt/disjunct.go (CUE's
// disjunction-normal-form builder over Vertex alternatives) for the
// "normalize to a flat set of alternatives, then absorb/dedup" shape.
package dnf

import "github.com/ayutac/mizar-go/internal/core/term"

// AtomID names one interned leaf formula (GLOSSARY "Atom").
type AtomID int

// Atoms interns leaf formulas (Pred, Attr, Is, SchPred, PrivPred) as small
// integer ids, deduplicating syntactically identical atoms so that a DNF
// conjunct can be a simple map keyed by AtomID (spec §4.2).
type Atoms struct {
	list  []term.Formula
	index map[atomKey]AtomID
}

// atomKey gives a map-comparable key for an atom good enough to dedup on;
// it is intentionally coarser than full structural equality would allow
// (it holds only the atom kind and constructor number, so atoms differing
// only in their arguments collide), so lookups are confirmed with
// term.Equal-style comparison before reuse.
type atomKey struct {
	kind int
	nr   int
}

func NewAtoms() *Atoms {
	return &Atoms{index: map[atomKey]AtomID{}}
}

func keyOf(f term.Formula) (atomKey, bool) {
	switch x := f.(type) {
	case *term.Pred:
		return atomKey{kind: 0, nr: x.Nr}, true
	case *term.Attr:
		return atomKey{kind: 1, nr: x.Nr}, true
	case *term.Is:
		return atomKey{kind: 2, nr: x.Ty.Nr}, true
	case *term.SchPred:
		return atomKey{kind: 3, nr: x.Nr}, true
	case *term.PrivPred:
		return atomKey{kind: 4, nr: x.Nr}, true
	default:
		return atomKey{}, false
	}
}

func argsOf(f term.Formula) []term.Term {
	switch x := f.(type) {
	case *term.Pred:
		return x.Args
	case *term.Attr:
		return x.Args
	case *term.Is:
		return append([]term.Term{x.Term}, x.Ty.Args...)
	case *term.SchPred:
		return x.Args
	case *term.PrivPred:
		return x.Args
	default:
		return nil
	}
}

func formulaEqual(a, b term.Formula) bool {
	ka, oka := keyOf(a)
	kb, okb := keyOf(b)
	if !oka || !okb || ka != kb {
		return false
	}
	aa, ba := argsOf(a), argsOf(b)
	if len(aa) != len(ba) {
		return false
	}
	for i := range aa {
		if !term.Equal(aa[i], ba[i]) {
			return false
		}
	}
	return true
}

// Intern returns the AtomID for f, allocating a new one if f has not been
// seen before in this Atoms table. A table lives for one Normalize call
// and its result: Justify shares one table across every conjunct of the
// premises' DNF, and falsify/resolution build a fresh one per call.
func (a *Atoms) Intern(f term.Formula) AtomID {
	k, ok := keyOf(f)
	if !ok {
		// Not a keyed atom shape (ForAll, FlexAnd, or a True/Thesis that
		// slipped through): give it its own id every time rather than
		// panicking.
		id := AtomID(len(a.list))
		a.list = append(a.list, f)
		return id
	}
	if existing, ok := a.index[k]; ok && formulaEqual(a.list[existing], f) {
		return existing
	}
	// Linear scan for a same-key match that formulaEqual missed via the
	// coarse key collision path (distinct atoms sharing kind+nr).
	for id, g := range a.list {
		if formulaEqual(g, f) {
			return AtomID(id)
		}
	}
	id := AtomID(len(a.list))
	a.list = append(a.list, f)
	a.index[k] = id
	return id
}

// Get returns the formula interned under id.
func (a *Atoms) Get(id AtomID) term.Formula {
	return a.list[id]
}

// Conjunct is an ordered-irrelevant mapping from atom id to sign (spec
// §4.2: "a conjunct is a mapping from atom id to sign (unique keys, order
// irrelevant)").
type Conjunct map[AtomID]bool

// clone returns a shallow copy of c.
func (c Conjunct) clone() Conjunct {
	out := make(Conjunct, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// subsetOf reports whether every (atom, sign) pair in c also appears in
// other, i.e. c's constraints are implied by other — equivalently, c is
// "weaker than or equal to" other.
func (c Conjunct) subsetOf(other Conjunct) bool {
	if len(c) > len(other) {
		return false
	}
	for k, v := range c {
		if ov, ok := other[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// merge returns the union of c and o, or (nil, false) if they disagree on
// the sign of some shared atom (an inconsistent pairing, dropped by AND).
func (c Conjunct) merge(o Conjunct) (Conjunct, bool) {
	out := make(Conjunct, len(c)+len(o))
	for k, v := range c {
		out[k] = v
	}
	for k, v := range o {
		if ev, ok := out[k]; ok && ev != v {
			return nil, false
		}
		out[k] = v
	}
	return out, true
}

// DNF is either the constant True (IsTrue, conjuncts ignored) or a set of
// absorbed conjuncts; an empty, non-True conjunct set is the constant
// False (spec §4.2, §9).
type DNF struct {
	IsTrue    bool
	Conjuncts []Conjunct
}

// TrueDNF is the polarity unit under positive polarity.
func TrueDNF() DNF { return DNF{IsTrue: true} }

// FalseDNF is the polarity unit under negative polarity (Neg{True}).
func FalseDNF() DNF { return DNF{} }

// Atom builds the singleton-conjunct DNF for one interned atom with the
// given sign.
func Atom(id AtomID, pos bool) DNF {
	return DNF{Conjuncts: []Conjunct{{id: pos}}}
}

// insertAndAbsorb drops every conjunct that is dominated by a strictly
// weaker conjunct also present, preserving the invariant in spec §8
// property 3 ("no two conjuncts C1, C2 exist with C1 strictly weaker than
// C2" survives as "no conjunct subsumes another").
func insertAndAbsorb(conjuncts []Conjunct) []Conjunct {
	var out []Conjunct
	for _, c := range conjuncts {
		dominated := false
		kept := out[:0:0]
		for _, o := range out {
			switch {
			case o.subsetOf(c) && !equalConjunct(o, c):
				// o is weaker than (is implied by) c; c is redundant.
				dominated = true
			case c.subsetOf(o) && !equalConjunct(o, c):
				// c is weaker than o; drop o, keep scanning.
				continue
			default:
				kept = append(kept, o)
			}
		}
		out = kept
		if !dominated {
			out = append(out, c)
		}
	}
	return dedupExact(out)
}

func equalConjunct(a, b Conjunct) bool {
	return a.subsetOf(b) && b.subsetOf(a)
}

func dedupExact(cs []Conjunct) []Conjunct {
	var out []Conjunct
	for _, c := range cs {
		dup := false
		for _, o := range out {
			if equalConjunct(c, o) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, c)
		}
	}
	return out
}

// AND computes the conjunction of two DNFs: the pairwise-consistent merge
// of their conjuncts, absorbed (spec §9).
func AND(x, y DNF) DNF {
	if x.IsTrue {
		return y
	}
	if y.IsTrue {
		return x
	}
	var merged []Conjunct
	for _, a := range x.Conjuncts {
		for _, b := range y.Conjuncts {
			if m, ok := a.merge(b); ok {
				merged = append(merged, m)
			}
		}
	}
	return DNF{Conjuncts: insertAndAbsorb(merged)}
}

// OR computes the disjunction of two DNFs: concatenation plus absorption.
func OR(x, y DNF) DNF {
	if x.IsTrue || y.IsTrue {
		return TrueDNF()
	}
	all := append(append([]Conjunct{}, x.Conjuncts...), y.Conjuncts...)
	return DNF{Conjuncts: insertAndAbsorb(all)}
}

// Satisfiable reports whether d has at least one conjunct (or is the
// constant True).
func (d DNF) Satisfiable() bool {
	return d.IsTrue || len(d.Conjuncts) > 0
}

// Normalize converts f to DNF under polarity pos (spec §4.2).
func Normalize(atoms *Atoms, f term.Formula, pos bool) DNF {
	switch x := f.(type) {
	case *term.Neg:
		return Normalize(atoms, x.F, !pos)
	case *term.And:
		if pos {
			out := TrueDNF()
			for _, c := range x.Conjuncts {
				out = AND(out, Normalize(atoms, c, pos))
			}
			return out
		}
		out := FalseDNF()
		for _, c := range x.Conjuncts {
			out = OR(out, Normalize(atoms, c, pos))
		}
		return out
	case term.True:
		if pos {
			return TrueDNF()
		}
		return FalseDNF()
	case *term.FlexAnd:
		// A FlexAnd reaching DNF conversion unexpanded (bounds not
		// concrete, spec §4.1(c)) is treated as an opaque atom: it
		// cannot be distributed further without instantiating its
		// bounds, which is the expander's job, not DNF's. Intern x
		// itself rather than a shared placeholder — keyOf has no case
		// for *term.FlexAnd, so this falls to the same fresh-id-per-call
		// path *term.ForAll uses, keeping structurally distinct flex
		// atoms from colliding onto one AtomID.
		id := atoms.Intern(x)
		return Atom(id, pos)
	default:
		id := atoms.Intern(f)
		return Atom(id, pos)
	}
}
