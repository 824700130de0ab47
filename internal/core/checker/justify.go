package checker

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/ayutac/mizar-go/internal/core/dnf"
	"github.com/ayutac/mizar-go/internal/core/equalizer"
	"github.com/ayutac/mizar-go/internal/core/expand"
	"github.com/ayutac/mizar-go/internal/core/global"
	"github.com/ayutac/mizar-go/internal/core/term"
	"github.com/ayutac/mizar-go/internal/core/unifier"
	"github.com/ayutac/mizar-go/internal/errs"
)

// Justify implements spec §4.5/§6: decide whether premises (the
// assumptions plus the negated goal, which Justify conjoins) is
// refutable. It panics via errs.Bug on a violated invariant and returns a
// *errs.JustifyFailure if some DNF conjunct survives both the equalizer
// and the unifier; a nil return is success.
func Justify(g *global.Global, lc *global.LocalContext, premises []term.Formula, idx uint32) error {
	frame := lc.Snapshot()
	lc.OpenTermCacheScope()
	defer lc.CloseTermCacheScope()
	defer lc.Restore(frame)

	var f term.Formula
	if len(premises) == 1 {
		f = premises[0]
	} else {
		f = &term.And{Conjuncts: premises}
	}

	// run is a correlation id for this call's log lines only; it never
	// influences control flow, so the lack of determinism it introduces
	// is harmless (spec §5 does not require log output to be
	// reproducible, only the refutability verdict).
	run := uuid.New()
	lc.Logf("justify[%s] %d: expanding %d premise(s)", run, idx, len(premises))
	f = expand.Expand(g, lc, f, true)
	f = DistributeQuantifiers(f)
	f = openPositiveConstants(f, true, lc)

	atoms := dnf.NewAtoms()
	d := dnf.Normalize(atoms, f, true)

	if d.IsTrue {
		return &errs.JustifyFailure{Idx: idx, Reason: "premises normalize to a tautology with nothing to refute"}
	}
	for i, conj := range d.Conjuncts {
		lc.Logf("justify[%s] %d: conjunct %d: %v", run, idx, i, conj)
		refuted, err := refuteConjunct(g, lc, atoms, conj)
		if err != nil {
			return err
		}
		if !refuted {
			return &errs.JustifyFailure{Idx: idx, Reason: fmt.Sprintf("DNF conjunct %d survived equalizer and unifier", i)}
		}
	}
	return nil
}

// refuteConjunct runs one DNF conjunct through the equalizer and, if it
// survives, the unifier (spec §4.5 step 3: "for each DNF conjunct, run
// equate -> pre_unification -> unifier; require each to return
// unsatisfiable").
func refuteConjunct(g *global.Global, lc *global.LocalContext, atoms *dnf.Atoms, conj dnf.Conjunct) (bool, error) {
	e := equalizer.New(g, lc)
	if err := e.Run(atoms, conj); err != nil {
		if errs.IsUnsat(err) {
			return true, nil
		}
		return false, err
	}

	pos, neg := e.Basis()
	u := unifier.New(g, lc, e, pos, neg)

	var universals []term.Formula
	for _, fo := range pos {
		if fa, ok := fo.(*term.ForAll); ok {
			universals = append(universals, fa)
		}
	}
	if len(universals) == 0 {
		return false, nil
	}
	if u.Falsify(universals) {
		return true, nil
	}
	return tryResolution(u, universals), nil
}

// tryResolution attempts spec §4.4's resolution over every 2-4-sized
// subset of the remaining universal atoms. The search is bounded to the
// first few candidates the conjunct actually produced, matching the
// resolution procedure's own clause-count cap (spec §7: "refuses to run
// unless the clause count is in [2,4]").
func tryResolution(u *unifier.Unifier, universals []term.Formula) bool {
	n := len(universals)
	if n > 8 {
		n = 8
	}
	pool := universals[:n]
	for size := 2; size <= 4 && size <= len(pool); size++ {
		if combinationRefutes(u, pool, size) {
			return true
		}
	}
	return false
}

func combinationRefutes(u *unifier.Unifier, pool []term.Formula, size int) bool {
	idx := make([]int, size)
	for i := range idx {
		idx[i] = i
	}
	for {
		subset := make([]term.Formula, size)
		for i, k := range idx {
			subset[i] = pool[k]
		}
		if u.Resolution(subset) {
			return true
		}
		if !nextCombination(idx, len(pool)) {
			return false
		}
	}
}

// nextCombination advances idx (a strictly increasing index tuple) to the
// next combination of len(idx) elements out of n, reporting whether one
// exists.
func nextCombination(idx []int, n int) bool {
	k := len(idx)
	i := k - 1
	for ; i >= 0; i-- {
		if idx[i] != i+n-k {
			break
		}
	}
	if i < 0 {
		return false
	}
	idx[i]++
	for j := i + 1; j < k; j++ {
		idx[j] = idx[j-1] + 1
	}
	return true
}
