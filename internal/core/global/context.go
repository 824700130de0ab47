package global

import (
	"fmt"
	"log"

	"github.com/ayutac/mizar-go/internal/core/term"
	"github.com/ayutac/mizar-go/internal/errs"
)

// LocalContext is the mutable, single-owner state threaded through one
// justify call (spec §3.5, §5). Every scope it owns is opened at the
// start of a justification (or a nested operation) and truncated on
// exit, in strict stack discipline; nothing here is shared across
// concurrent justifications, and nothing escapes the calling goroutine
// (spec §5 "Resource ownership").
type LocalContext struct {
	// FixedVar holds the types of constants introduced by positive
	// quantifier opening, indexed by Constant.Nr (spec §4.2).
	FixedVar []*term.Type

	// InferConst caches previously interned constant terms, indexed by
	// Infer.Nr (spec §3.1 "Infer(n)").
	InferConst []term.Term

	// BoundVar tracks the domain types of the quantifiers currently
	// enclosing the point of traversal, used to validate invariant
	// §3.4.6 (every Bound(n) is within the tracked depth).
	BoundVar []*term.Type

	// termCache is a stack of scopes (innermost last); a lookup checks
	// from the top down. Opened with OpenTermCacheScope, closed with
	// CloseTermCacheScope, mirroring spec §3.5's "term_cache scopes are
	// opened at the start of a justification and truncated on exit."
	termCache []map[string]term.Term

	Strict  bool
	LogEval int
}

// NewLocalContext creates an empty context configured from flags.
func NewLocalContext(strict bool, logEval int) *LocalContext {
	return &LocalContext{Strict: strict, LogEval: logEval}
}

// Frame is a snapshot of the scope lengths that stack-discipline state
// must be truncated back to on exit (spec §3.5 step 1, §5).
type Frame struct {
	fixedVar   int
	inferConst int
}

// Snapshot records the current scope lengths.
func (lc *LocalContext) Snapshot() Frame {
	return Frame{fixedVar: len(lc.FixedVar), inferConst: len(lc.InferConst)}
}

// Restore truncates fixed_var and infer_const back to f, dropping every
// allocation made since the snapshot (spec §3.5).
func (lc *LocalContext) Restore(f Frame) {
	lc.FixedVar = lc.FixedVar[:f.fixedVar]
	lc.InferConst = lc.InferConst[:f.inferConst]
}

// PushFixedVar introduces a fresh fixed variable of type ty and returns
// the Constant referencing it (spec §4.2, positive quantifier opening).
func (lc *LocalContext) PushFixedVar(ty *term.Type) term.Constant {
	nr := len(lc.FixedVar)
	lc.FixedVar = append(lc.FixedVar, ty)
	return term.Constant{Nr: nr}
}

// PushBoundVar / PopBoundVar track the enclosing quantifier domains while
// a formula is being walked, supporting invariant §3.4.6's depth check.
func (lc *LocalContext) PushBoundVar(ty *term.Type) {
	lc.BoundVar = append(lc.BoundVar, ty)
}

func (lc *LocalContext) PopBoundVar() {
	lc.BoundVar = lc.BoundVar[:len(lc.BoundVar)-1]
}

// CheckBoundDepth asserts invariant §3.4.6: idx must name one of the
// currently tracked enclosing binders.
func (lc *LocalContext) CheckBoundDepth(idx int) {
	errs.Assertf(lc.Strict, idx >= 0 && idx < len(lc.BoundVar),
		"Bound(%d) escapes tracked depth %d", idx, len(lc.BoundVar))
}

// OpenTermCacheScope opens a new, empty term-cache scope.
func (lc *LocalContext) OpenTermCacheScope() {
	lc.termCache = append(lc.termCache, map[string]term.Term{})
}

// CloseTermCacheScope drops the innermost term-cache scope and everything
// cached in it.
func (lc *LocalContext) CloseTermCacheScope() {
	lc.termCache = lc.termCache[:len(lc.termCache)-1]
}

// CacheLookup searches every open scope, innermost first, for a cached
// evaluation of key.
func (lc *LocalContext) CacheLookup(key string) (term.Term, bool) {
	for i := len(lc.termCache) - 1; i >= 0; i-- {
		if v, ok := lc.termCache[i][key]; ok {
			return v, true
		}
	}
	return nil, false
}

// CacheStore records the evaluation of key in the innermost open scope.
func (lc *LocalContext) CacheStore(key string, v term.Term) {
	lc.termCache[len(lc.termCache)-1][key] = v
}

// Logf emits a verbosity-gated diagnostic line (spec §6: "Logging (when
// enabled) emits the current conjunct formula to stderr before
// processing"). It mirrors the teacher's adt.Logf in spirit but without
// the nesting/disjunct bookkeeping this checker has no use for, since
// there is exactly one linear pipeline per conjunct rather than a
// disjunction search tree.
func (lc *LocalContext) Logf(format string, args ...interface{}) {
	if lc.LogEval <= 0 {
		return
	}
	log.Output(2, fmt.Sprintf(format, args...))
}
