// This file implements falsify (spec §4.4, §4.5): given one or more
// formulas asserted true (the negated thesis and/or a resolution
// candidate's remaining literals), find an instantiation of their free
// variables under which they fail against the equalized basis.
package unifier

import (
	"github.com/ayutac/mizar-go/internal/core/dnf"
	"github.com/ayutac/mizar-go/internal/core/term"
)

// Falsify implements spec §4.4's falsify: open each formula's leading
// universals with fresh FreeVars, normalize the body to DNF under
// positive polarity, and require every disjunct to be refutable — the
// meet of its atoms' compute_inst results (refuteClause) must yield at
// least one consistent binding that falsifies every atom in the
// disjunct at once. A disjunct with no such binding means this pass
// could not derive a contradiction; Falsify reports false rather than
// guess.
func (u *Unifier) Falsify(fs []term.Formula) bool {
	for _, f := range fs {
		if !u.falsifyOne(f) {
			return false
		}
	}
	return true
}

func (u *Unifier) falsifyOne(f term.Formula) bool {
	body, _ := term.OpenQuantifiers(f, u.newFreeVar)
	atoms := dnf.NewAtoms()
	d := dnf.Normalize(atoms, body, true)
	if !d.IsTrue && len(d.Conjuncts) == 0 {
		// Already the constant False: nothing to refute.
		return true
	}
	if d.IsTrue {
		// The body holds unconditionally; no assignment refutes it.
		return false
	}
	for _, clause := range d.Conjuncts {
		if !u.refuteClause(atoms, clause) {
			return false
		}
	}
	return true
}

// refuteClause implements spec §4.4's falsify criterion literally: the
// per-clause meet ⋀_i P_i of the atoms' ComputeInst results must be
// non-empty, where P_i is the set of metavariable bindings under which
// atom i is refuted. The free vars opened by falsifyOne are shared
// across every atom in the clause (they all come from the same
// OpenQuantifiers call), so a single binding witnessing every P_i at
// once is exactly what InstAND's meet computes: find one assignment
// that falsifies every atom in the conjunction simultaneously, which
// refutes the clause since the universal this clause came from only
// needed one counterexample instance to fail.
func (u *Unifier) refuteClause(atoms *dnf.Atoms, clause dnf.Conjunct) bool {
	combined := InstTrue()
	for id, pos := range clause {
		atom := atoms.Get(id)
		combined = InstAND(combined, u.ComputeInst(atom, pos))
		if !combined.Satisfiable() {
			return false
		}
	}
	return combined.Satisfiable()
}
