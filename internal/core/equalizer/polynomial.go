package equalizer

// This file implements spec §9's Open Question 3: the original library's
// identity loop calls out to a linear-equation/polynomial solver at a
// fixed point in the pass order, reasoning about numeral-weighted sums
// this checker's congruence closure has no model for on its own. Rather
// than invent arithmetic semantics the spec does not describe, the three
// hooks below are kept as explicit, documented no-ops at the exact point
// the original calls them (between reductions and the algebraic identity
// pass, spec §4.3 step 7), so a future polynomial layer has a real seam
// to fill instead of the call site being invented from scratch. See
// DESIGN.md's Open Questions entry for the reasoning.

// ProcessLinearEquations collects numeral-weighted sum equalities implied
// by the current class state and would feed them to a solver. No class
// carries enough arithmetic structure yet for this to do anything; it
// always reports no change.
func (e *Equalizer) ProcessLinearEquations() (bool, error) {
	return false, nil
}

// EquatePolynomials would merge classes the linear solver proved equal.
// A no-op until ProcessLinearEquations produces equations to solve.
func (e *Equalizer) EquatePolynomials() (bool, error) {
	return false, nil
}

// ClearPolynomialValues resets any cached polynomial state between
// conjuncts, mirroring Reset's per-field truncation for the congruence
// tables. A no-op since no polynomial state is collected yet.
func (e *Equalizer) ClearPolynomialValues() {}
