// This file implements resolution (spec §4.4, §4.5): given 2-4
// universally-quantified clauses, find a single pair of complementary
// literals across two of them, and show the resolvent (the clauses' other
// literals, as one disjunction) is unconditionally refuted.
package unifier

import (
	"github.com/ayutac/mizar-go/internal/core/dnf"
	"github.com/ayutac/mizar-go/internal/core/term"
)

// literal is one atom of an opened clause together with its polarity.
type literal struct {
	Atom term.Formula
	Pos  bool
}

func collectLiterals(f term.Formula) []literal {
	var out []literal
	term.Walk(f, true, func(a term.Formula, pos bool, depth int) term.Formula {
		out = append(out, literal{Atom: a, Pos: pos})
		return a
	})
	return out
}

type litRef struct {
	clause int
	index  int
}

// Resolution implements spec §4.4's resolution step: fs must hold 2 to 4
// clauses (spec §9, "resolution is bounded to 2-4 clauses to keep the
// search space small"). It looks for complementary literals across
// distinct clauses and requires exactly one such candidate pair ("admit
// at most one candidate pair" — spec §9): zero means no resolution
// opportunity exists, more than one means the choice is ambiguous and
// this pass declines to guess. Given the single candidate, it resolves
// the pair away and requires the remaining literals, taken together as
// one disjunction, be unconditionally refutable.
func (u *Unifier) Resolution(fs []term.Formula) bool {
	if len(fs) < 2 || len(fs) > 4 {
		return false
	}

	clauses := make([][]literal, len(fs))
	for i, f := range fs {
		body, _ := term.OpenQuantifiers(f, u.newFreeVar)
		clauses[i] = collectLiterals(body)
	}

	var candidates [][2]litRef
	for i := range clauses {
		for j := i + 1; j < len(clauses); j++ {
			for li, a := range clauses[i] {
				for lj, b := range clauses[j] {
					if u.complementary(a, b) {
						candidates = append(candidates, [2]litRef{{i, li}, {j, lj}})
					}
				}
			}
		}
	}

	if len(candidates) != 1 {
		return false
	}
	pair := candidates[0]

	var remaining []literal
	for i, clause := range clauses {
		for k, lit := range clause {
			if (i == pair[0].clause && k == pair[0].index) || (i == pair[1].clause && k == pair[1].index) {
				continue
			}
			remaining = append(remaining, lit)
		}
	}
	if len(remaining) == 0 {
		// The resolved pair was the entirety of both clauses: the empty
		// resolvent is an immediate contradiction.
		return true
	}

	atoms := dnf.NewAtoms()
	conj := dnf.Conjunct{}
	for _, lit := range remaining {
		id := atoms.Intern(lit.Atom)
		if existing, ok := conj[id]; ok && existing != lit.Pos {
			// The remaining literals already contradict each other
			// (A and ¬A both present): trivially refuted.
			return true
		}
		conj[id] = lit.Pos
	}
	return u.refuteClause(atoms, conj)
}

func (u *Unifier) complementary(a, b literal) bool {
	if a.Pos == b.Pos {
		return false
	}
	return u.UnifyFormula(a.Atom, b.Atom, InstConjunct{})
}
