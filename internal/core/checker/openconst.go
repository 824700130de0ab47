package checker

import "github.com/ayutac/mizar-go/internal/core/term"

// openPositiveConstants implements spec §4.2's open_quantifiers<Constant>
// restricted to the driver's precheck step (spec §4.5 step 2): a
// positive-polarity universal is eagerly eliminated into a fresh fixed
// variable so the equalizer can reason about it as ground knowledge.
//
// A universal whose body, once every leading quantifier is stripped, is
// itself a disjunction of literals (De Morgan's Neg{And{Neg l1, Neg l2,
// ...}} encoding — GLOSSARY has no separate Or variant) is left
// unopened: such a clause is exactly what spec §4.4's resolution needs to
// see intact, reusing the SAME bound variable identity across the
// several literals of the clause, and across clauses once resolution
// pairs them up with metavariables. Eagerly grounding it here with one
// arbitrary constant would make every literal refer to an unrelated
// witness and permanently defeat resolution (spec §8 scenario (e)). This
// is a judgment call the spec text does not fully disambiguate; see
// DESIGN.md for the rationale recorded alongside the four labeled open
// questions.
func openPositiveConstants(f term.Formula, pos bool, lc localPusher) term.Formula {
	switch x := f.(type) {
	case *term.Neg:
		return &term.Neg{F: openPositiveConstants(x.F, !pos, lc)}
	case *term.And:
		out := make([]term.Formula, len(x.Conjuncts))
		for i, c := range x.Conjuncts {
			out[i] = openPositiveConstants(c, pos, lc)
		}
		return &term.And{Conjuncts: out}
	case *term.ForAll:
		if !pos {
			return &term.ForAll{Domain: x.Domain, Body: openPositiveConstants(x.Body, pos, lc)}
		}
		if isClausal(peelForAlls(x)) {
			return x
		}
		c := lc.PushFixedVar(x.Domain)
		body := term.SubstTopFormula(x.Body, c)
		return openPositiveConstants(body, pos, lc)
	case *term.FlexAnd:
		return &term.FlexAnd{Lo: x.Lo, Hi: x.Hi, Body: openPositiveConstants(x.Body, pos, lc)}
	default:
		return f
	}
}

// localPusher is the one LocalContext method openPositiveConstants needs,
// named narrowly so this file stays testable against a fake.
type localPusher interface {
	PushFixedVar(ty *term.Type) term.Constant
}

func peelForAlls(f term.Formula) term.Formula {
	for {
		fa, ok := f.(*term.ForAll)
		if !ok {
			return f
		}
		f = fa.Body
	}
}

func isClausal(f term.Formula) bool {
	n, ok := f.(*term.Neg)
	if !ok {
		return false
	}
	_, ok = n.F.(*term.And)
	return ok
}
