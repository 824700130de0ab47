// Package checker implements the checker driver (spec §4.5): it
// orchestrates Expand, quantifier distribution and opening, DNF
// conversion, and the per-conjunct equalizer/unifier pipeline behind the
// single justify entry point (spec §6).
package checker

import "github.com/ayutac/mizar-go/internal/core/term"

// DistributeQuantifiers implements spec §4.2's distribute_quantifiers:
// push ∀x.(A∧B) into (∀x.A)∧(∀x.B) when both conjuncts mention x, or drop
// the quantifier (shifting indices down) from whichever side does not
// mention it. Recurses into every formula shape so the rewrite applies at
// every nesting depth, not just the outermost quantifier.
func DistributeQuantifiers(f term.Formula) term.Formula {
	switch x := f.(type) {
	case *term.Neg:
		return &term.Neg{F: DistributeQuantifiers(x.F)}
	case *term.And:
		out := make([]term.Formula, len(x.Conjuncts))
		for i, c := range x.Conjuncts {
			out[i] = DistributeQuantifiers(c)
		}
		return &term.And{Conjuncts: out}
	case *term.ForAll:
		body := DistributeQuantifiers(x.Body)
		and, ok := body.(*term.And)
		if !ok {
			return &term.ForAll{Domain: x.Domain, Body: body}
		}
		pieces := make([]term.Formula, 0, len(and.Conjuncts))
		for _, c := range and.Conjuncts {
			if mentionsBound(c, 0) {
				pieces = append(pieces, &term.ForAll{Domain: x.Domain, Body: c})
			} else {
				pieces = append(pieces, term.ShiftFormula(c, 0, -1))
			}
		}
		if len(pieces) == 1 {
			return pieces[0]
		}
		return &term.And{Conjuncts: pieces}
	case *term.FlexAnd:
		return &term.FlexAnd{Lo: x.Lo, Hi: x.Hi, Body: DistributeQuantifiers(x.Body)}
	default:
		return f
	}
}

// mentionsBound reports whether f contains a free occurrence of Bound(depth)
// relative to f's own nesting (i.e. depth counts binders crossed since the
// quantifier distribute_quantifiers is deciding whether to keep).
func mentionsBound(f term.Formula, depth int) bool {
	switch x := f.(type) {
	case *term.Neg:
		return mentionsBound(x.F, depth)
	case *term.And:
		for _, c := range x.Conjuncts {
			if mentionsBound(c, depth) {
				return true
			}
		}
		return false
	case *term.ForAll:
		return mentionsBound(x.Body, depth+1)
	case *term.FlexAnd:
		return mentionsTerm(x.Lo, depth) || mentionsTerm(x.Hi, depth) || mentionsBound(x.Body, depth+2)
	case *term.Pred:
		return mentionsArgs(x.Args, depth)
	case *term.Attr:
		return mentionsArgs(x.Args, depth)
	case *term.SchPred:
		return mentionsArgs(x.Args, depth)
	case *term.PrivPred:
		return mentionsArgs(x.Args, depth)
	case *term.Is:
		return mentionsTerm(x.Term, depth) || mentionsType(x.Ty, depth)
	default:
		return false
	}
}

func mentionsArgs(args []term.Term, depth int) bool {
	for _, a := range args {
		if mentionsTerm(a, depth) {
			return true
		}
	}
	return false
}

func mentionsType(ty *term.Type, depth int) bool {
	if ty == nil {
		return false
	}
	return mentionsArgs(ty.Args, depth)
}

func mentionsTerm(t term.Term, depth int) bool {
	switch x := t.(type) {
	case term.Bound:
		return x.Index == depth
	case *term.Fraenkel:
		n := len(x.Args)
		for _, a := range x.Args {
			if mentionsType(a, depth) {
				return true
			}
		}
		return mentionsTerm(x.Scope, depth+n) || mentionsTerm(x.Value, depth+n) || mentionsBound(x.Compr, depth+n)
	case *term.Choice:
		return mentionsType(x.Ty, depth)
	default:
		if args := term.Args(t); args != nil {
			return mentionsArgs(args, depth)
		}
		return false
	}
}
