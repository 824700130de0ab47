// Package expand implements the first pipeline stage (spec §4.1): expand
// definitional equivalences, normalize redefined constructors, and unfold
// small bounded-range FlexAnd conjunctions.
//
// Grounded on cuelang.org/go/internal/core/adt/comprehension.go and
// simplify.go for the shape of "rewrite a formula under a polarity,
// contributing extra conjuncts" passes. It recurses over formulas itself
// rather than through term.Walk.
package expand

import (
	"github.com/ayutac/mizar-go/internal/core/global"
	"github.com/ayutac/mizar-go/internal/core/term"
)

// Expand rewrites f so that (a) every redefined constructor occurrence
// points at its root with superfluous leading arguments dropped, (b)
// every well-matched registered expansion whose assumption is trivially
// true contributes a conjunct, and (c) small concrete FlexAnd ranges are
// unfolded (spec §4.1).
func Expand(g *global.Global, lc *global.LocalContext, f term.Formula, pos bool) term.Formula {
	return expand(g, lc, f, pos, 0)
}

func expand(g *global.Global, lc *global.LocalContext, f term.Formula, pos bool, depth int) term.Formula {
	switch x := f.(type) {
	case *term.Neg:
		return &term.Neg{F: expand(g, lc, x.F, !pos, depth)}
	case *term.And:
		out := make([]term.Formula, len(x.Conjuncts))
		for i, c := range x.Conjuncts {
			out[i] = expand(g, lc, c, pos, depth)
		}
		return &term.And{Conjuncts: out}
	case *term.ForAll:
		// Under negative polarity inside a universal, the scope is
		// expanded under the same (negative) polarity, as spec §4.1's
		// polarity-handling note describes; the bound variable is
		// tracked (not substituted: expansion runs before quantifier
		// opening) by bumping depth.
		return &term.ForAll{Domain: x.Domain, Body: expand(g, lc, x.Body, pos, depth+1)}
	case *term.FlexAnd:
		if body, ok := unfoldFlex(g, x); ok {
			expanded := expand(g, lc, body, pos, depth)
			if g.Flags.LegacyFlexHandling {
				// The original checker's expand_flex keeps the
				// pre-expansion FlexAnd conjunct alongside the unfolded
				// range (conjs starts with f1 before the substituted
				// bodies are appended); the modern convention drops it
				// once the range has been unfolded. x is returned
				// unexpanded here (not re-passed to expand) since it
				// is the same term that was just unfolded above.
				return &term.And{Conjuncts: []term.Formula{x, expanded}}
			}
			return expanded
		}
		return &term.FlexAnd{Lo: x.Lo, Hi: x.Hi, Body: expand(g, lc, x.Body, pos, depth+2)}
	case *term.Pred:
		return expandAtom(g, adjustPred(g, x), pos)
	case *term.Attr:
		return expandAtom(g, adjustAttr(g, x), pos)
	case *term.Is:
		return expandAtom(g, adjustIs(g, x), pos)
	default:
		return f
	}
}

func adjustPred(g *global.Global, x *term.Pred) *term.Pred {
	nr, args := g.Constructors.Adjust(x.Nr, x.Args)
	return &term.Pred{Nr: nr, Args: args}
}

func adjustAttr(g *global.Global, x *term.Attr) *term.Attr {
	nr, args := g.Constructors.Adjust(x.Nr, x.Args)
	return &term.Attr{Nr: nr, Pos: x.Pos, Args: args}
}

func adjustIs(g *global.Global, x *term.Is) *term.Is {
	nr, args := g.Constructors.AdjustType(x.Ty.Nr, x.Ty.Args)
	ty := *x.Ty
	ty.Nr, ty.Args = nr, args
	return &term.Is{Term: x.Term, Ty: &ty}
}

// expandAtom contributes the body of every registered expansion whose
// pattern matches atom and whose assumption is trivially true (spec
// §4.1(b)). The contributed conjunct is polarity-aware: it is wrapped
// under Neg when pos is false, so that adding it to the enclosing And
// never silently changes satisfiability of a purely negative occurrence.
func expandAtom(g *global.Global, atom term.Formula, pos bool) term.Formula {
	var extra []term.Formula
	for _, exp := range g.Expansions.List {
		args, ok := matchPattern(exp.Pattern, atom)
		if !ok || !triviallyTrue(exp.Assumption) {
			continue
		}
		body := term.SubstLociFormula(exp.Body, args)
		if !pos {
			body = &term.Neg{F: body}
		}
		extra = append(extra, body)
	}
	if len(extra) == 0 {
		return atom
	}
	return &term.And{Conjuncts: append([]term.Formula{atom}, extra...)}
}

// matchPattern reports whether atom has the same shape (constructor
// number) as pattern, returning atom's actual arguments for Locus
// substitution in the expansion body.
func matchPattern(pattern, atom term.Formula) ([]term.Term, bool) {
	switch p := pattern.(type) {
	case *term.Pred:
		a, ok := atom.(*term.Pred)
		if !ok || a.Nr != p.Nr {
			return nil, false
		}
		return a.Args, true
	case *term.Attr:
		a, ok := atom.(*term.Attr)
		if !ok || a.Nr != p.Nr {
			return nil, false
		}
		return a.Args, true
	case *term.Is:
		a, ok := atom.(*term.Is)
		if !ok || a.Ty.Nr != p.Ty.Nr {
			return nil, false
		}
		return append([]term.Term{a.Term}, a.Ty.Args...), true
	default:
		return nil, false
	}
}

// triviallyTrue reports whether an expansion's guard is the trivial
// assumption. Real accommodators may register richer assumptions (e.g.
// "argument i is nonempty"); this checker only ever sees assumptions the
// accommodator has already proven trivial at registration time, so a
// non-True assumption is treated conservatively as not (yet) known to
// hold and the expansion does not fire.
func triviallyTrue(f term.Formula) bool {
	_, ok := f.(term.True)
	return ok
}

// unfoldFlex implements spec §4.1(c): when x's bounds are concrete
// numerals with Hi-Lo <= 100, unfold into an explicit conjunction of
// instantiated bodies, substituting each numeral i for the innermost
// bound variable (GLOSSARY "Flex-and").
func unfoldFlex(g *global.Global, x *term.FlexAnd) (term.Formula, bool) {
	loN, loOK := x.Lo.(term.Numeral)
	hiN, hiOK := x.Hi.(term.Numeral)
	if !loOK || !hiOK {
		return nil, false
	}
	lo, ok1 := loN.Int64()
	hi, ok2 := hiN.Int64()
	if !ok1 || !ok2 || hi < lo || hi-lo > 100 {
		return nil, false
	}
	conjuncts := make([]term.Formula, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		conjuncts = append(conjuncts, instantiateFlexBody(g, x.Body, i))
	}
	return &term.And{Conjuncts: conjuncts}, true
}

// instantiateFlexBody substitutes numeral i for the innermost bound
// variable of body and decrements deeper bound indices by one (spec
// §4.1: "substitutes each numeral i for the innermost bound variable,
// decrementing deeper bound indices by one"). The
// FlexExpansionBug flag reproduces the historical off-by-one: after the
// same substitution it shifts every remaining bound index down by one more
// (spec §9, Open Question 1).
func instantiateFlexBody(g *global.Global, body term.Formula, i int64) term.Formula {
	n := term.NewNumeral(i)
	if g.Flags.FlexExpansionBug {
		return term.ShiftFormula(term.SubstTopFormula(body, n), 0, -1)
	}
	return term.SubstTopFormula(body, n)
}
