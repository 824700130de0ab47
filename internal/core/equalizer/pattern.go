package equalizer

import "github.com/ayutac/mizar-go/internal/core/term"

// matchPattern structurally matches pattern (a registered rule's LHS,
// containing Locus placeholders) against actual (a class-indexed term,
// i.e. one whose compound arguments are already term.EqClass references),
// returning the Locus bindings extracted on success. Used by reductions
// (spec §4.3 step 6), identifications (step 4), and functor clusters
// (step 12) — all three are "instantiate a registered pattern against a
// class" operations with the same shape (spec §4.3's inst_term / locate_term
// pair, collapsed here into one match-then-substitute step since this
// checker core builds its own class space directly rather than needing a
// separate locate pass).
func matchPattern(pattern, actual term.Term) ([]term.Term, bool) {
	bindings := map[int]term.Term{}
	maxLocus := -1
	if !unifyPattern(pattern, actual, bindings, &maxLocus) {
		return nil, false
	}
	args := make([]term.Term, maxLocus+1)
	for i := range args {
		if b, ok := bindings[i]; ok {
			args[i] = b
		}
	}
	return args, true
}

func unifyPattern(pattern, actual term.Term, bindings map[int]term.Term, maxLocus *int) bool {
	switch p := pattern.(type) {
	case term.Locus:
		if p.Nr > *maxLocus {
			*maxLocus = p.Nr
		}
		if existing, ok := bindings[p.Nr]; ok {
			return term.Equal(existing, actual)
		}
		bindings[p.Nr] = actual
		return true
	case term.Numeral:
		a, ok := actual.(term.Numeral)
		return ok && term.CompareNumeral(p, a) == 0
	case term.Bound, term.Constant, term.FreeVar, term.Infer:
		return term.Equal(pattern, actual)
	default:
		pNr, pOk := term.ConstrNr(pattern)
		aNr, aOk := term.ConstrNr(actual)
		if !pOk || !aOk || pNr != aNr {
			return false
		}
		pArgs, aArgs := term.Args(pattern), term.Args(actual)
		if len(pArgs) != len(aArgs) {
			return false
		}
		for i := range pArgs {
			if !unifyPattern(pArgs[i], aArgs[i], bindings, maxLocus) {
				return false
			}
		}
		return true
	}
}
