package equalizer

import "github.com/ayutac/mizar-go/internal/core/dnf"

// Run executes the full equalizer pipeline (spec §4.3) on one DNF
// conjunct: classify atoms, seed special elements and identifications,
// equate pending pairs, run reductions/identities to a fixpoint, renumber,
// check basis contradictions, propagate positive/negative arithmetic-like
// facts, round up clusters, and pre-unify. It returns an errs.Unsat as
// soon as any step derives ⊥; otherwise nil, and the surviving basis is
// available via Basis() for the unifier.
func (e *Equalizer) Run(atoms *dnf.Atoms, conj dnf.Conjunct) error {
	e.Reset()
	if err := e.Classify(atoms, conj); err != nil {
		return err
	}
	e.AugmentSymmetry()
	if err := e.SeedSpecialElements(); err != nil {
		return err
	}
	if err := e.EqualizeIdentifications(); err != nil {
		return err
	}
	if err := e.EqualizePending(); err != nil {
		return err
	}
	if err := e.RunIdentityLoop(); err != nil {
		return err
	}
	e.Renumber()
	if err := e.CheckBasisContradictions(); err != nil {
		return err
	}
	if err := e.PropagatePositive(); err != nil {
		return err
	}
	if err := e.PropagateNegative(); err != nil {
		return err
	}
	if err := e.RoundUpClusters(); err != nil {
		return err
	}
	if err := e.PreUnification(); err != nil {
		return err
	}
	return nil
}
