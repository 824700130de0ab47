package unifier

import (
	"github.com/ayutac/mizar-go/internal/core/equalizer"
	"github.com/ayutac/mizar-go/internal/core/global"
	"github.com/ayutac/mizar-go/internal/core/term"
)

// cacheKey is a (FreeVar, EqClass) pair, the unit the unifier caches
// unification results on (spec §4.4: "caches per-(FreeVar, EqClass) pair
// results to avoid exponential re-traversal of class lists").
type cacheKey struct {
	fv  int
	cls equalizer.ClassID
}

// Unifier runs falsify/resolution against one equalized DNF conjunct's
// model. One Unifier serves all falsify/resolution calls for that
// conjunct. Each call opens its quantifiers with fresh FreeVar numbers,
// which are never reused, so cache entries recorded by one call never
// match the FreeVars of another.
type Unifier struct {
	G     *global.Global
	LC    *global.LocalContext
	Model *equalizer.Equalizer

	PosBasis, NegBasis []term.Formula

	freeVarTypes []*term.Type
	nextFreeVar  int
	cache        map[cacheKey]bool
}

// New creates a Unifier over model's surviving basis.
func New(g *global.Global, lc *global.LocalContext, model *equalizer.Equalizer, pos, neg []term.Formula) *Unifier {
	return &Unifier{G: g, LC: lc, Model: model, PosBasis: pos, NegBasis: neg, cache: map[cacheKey]bool{}}
}

// newFreeVar is the V=FreeVar generator passed to term.OpenQuantifiers
// (spec §4.2).
func (u *Unifier) newFreeVar(domain *term.Type) term.Term {
	nr := u.nextFreeVar
	u.nextFreeVar++
	u.freeVarTypes = append(u.freeVarTypes, domain)
	return term.FreeVar{Nr: nr}
}

func (u *Unifier) cacheHas(k cacheKey) bool {
	_, ok := u.cache[k]
	return ok
}

func (u *Unifier) cacheSet(k cacheKey, v bool) {
	u.cache[k] = v
}
