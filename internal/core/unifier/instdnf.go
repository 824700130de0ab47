// Package unifier implements spec §4.4: construction of metavariable
// instantiations satisfying target atoms against the equalized model, and
// resolution over 2-4 universal clauses. It is the second-largest
// component of the checker core (spec §2, "Unifier ... 25%").
//
// Grounded on cuelang.org/go/internal/core/adt/disjunct.go and unify.go
// (CUE's unification-with-choice search over Vertex alternatives) for the
// "instantiation search returns a DNF of candidate bindings" shape, and on
// the dnf package's AND/OR algebra, reused here over a different key type
// (metavariable -> class id instead of atom id -> sign). Unlike the dnf
// package, InstAND and InstOR do not absorb subsumed conjuncts.
package unifier

import "github.com/ayutac/mizar-go/internal/core/equalizer"

// InstConjunct is one candidate instantiation: a partial assignment from
// FreeVar number to equivalence class id.
type InstConjunct map[int]equalizer.ClassID

func (c InstConjunct) merge(o InstConjunct) (InstConjunct, bool) {
	out := make(InstConjunct, len(c)+len(o))
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

// InstDNF is the second DNF variant spec §9 describes: either the
// constant True (every assignment works) or a set of candidate
// conjuncts (assigning any one of them refutes the target atom).
type InstDNF struct {
	IsTrue    bool
	Conjuncts []InstConjunct
}

func InstTrue() InstDNF  { return InstDNF{IsTrue: true} }
func InstFalse() InstDNF { return InstDNF{} }

func InstAtom(c InstConjunct) InstDNF {
	return InstDNF{Conjuncts: []InstConjunct{c}}
}

// InstAND computes the meet of two instantiation DNFs (spec §4.4's
// per-clause meet ⋀_i P_i).
func InstAND(x, y InstDNF) InstDNF {
	if x.IsTrue {
		return y
	}
	if y.IsTrue {
		return x
	}
	var merged []InstConjunct
	for _, a := range x.Conjuncts {
		for _, b := range y.Conjuncts {
			if m, ok := a.merge(b); ok {
				merged = append(merged, m)
			}
		}
	}
	return InstDNF{Conjuncts: merged}
}

// InstOR computes the join of two instantiation DNFs.
func InstOR(x, y InstDNF) InstDNF {
	if x.IsTrue || y.IsTrue {
		return InstTrue()
	}
	return InstDNF{Conjuncts: append(append([]InstConjunct{}, x.Conjuncts...), y.Conjuncts...)}
}

// Satisfiable reports whether d has a usable assignment.
func (d InstDNF) Satisfiable() bool {
	return d.IsTrue || len(d.Conjuncts) > 0
}
