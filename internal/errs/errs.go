// Package errs defines the error taxonomy used across the checker.
//
// The checker has two distinct outcomes that are not Go errors in the usual
// sense (spec §7): the Unsat signal, which is the happy path of refutation
// and is threaded as an explicit return value through every loop, and
// justification failure, which is a fatal condition raised only at the
// top-level Justify call. This package also carries the small set of
// internal-invariant assertions shared by every pipeline stage.
package errs

import (
	"errors"
	"fmt"
)

// Unsat is returned by equalizer and unifier operations to signal that the
// current DNF conjunct (or clause, or resolution attempt) has been shown
// unsatisfiable. Its only payload is Reason, a diagnostic tag that control
// flow never inspects.
type Unsat struct {
	// Reason is a short, human-readable tag for debug logging only. It must
	// never be inspected by control flow.
	Reason string
}

func (u Unsat) Error() string { return "unsat: " + u.Reason }

// NewUnsat constructs an Unsat signal with a formatted reason.
func NewUnsat(format string, args ...interface{}) Unsat {
	return Unsat{Reason: fmt.Sprintf(format, args...)}
}

// IsUnsat reports whether err is (or wraps) an Unsat signal.
func IsUnsat(err error) bool {
	var u Unsat
	return errors.As(err, &u)
}

// JustifyFailure is the fatal error surfaced to the caller of Justify when
// some DNF conjunct survives both the equalizer and the unifier. There is
// no retry at this level (spec §7); the containing proof check aborts.
type JustifyFailure struct {
	Idx    uint32
	Reason string
}

func (e *JustifyFailure) Error() string {
	return fmt.Sprintf("justification %d not refuted: %s", e.Idx, e.Reason)
}

// Bug panics to report a violated data-model invariant or an unreachable
// match arm. These are programming errors, not Unsat signals, and must
// never be converted into a silent failure: they indicate a bug in an
// earlier phase of the pipeline (spec §7).
func Bug(format string, args ...interface{}) {
	panic("mizar-go: invariant violated: " + fmt.Sprintf(format, args...))
}

// Assertf panics if cond is false and strict is set, mirroring the
// teacher's adt.Assertf (internal/core/adt/log.go): in non-strict builds an
// assertion failure is tolerated because it is expected to be caught
// correctly downstream, at the cost of a worse diagnostic.
func Assertf(strict, cond bool, format string, args ...interface{}) {
	if !cond && strict {
		panic("mizar-go: assertion failed: " + fmt.Sprintf(format, args...))
	}
}
