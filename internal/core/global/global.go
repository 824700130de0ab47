package global

import "github.com/ayutac/mizar-go/internal/checkflags"

// Global bundles every table the checker treats as read-only for the
// lifetime of a justification (spec §5: "Global ... is treated as
// read-only for the lifetime of a justification"). It is built once by
// the (external) library accommodator and shared across every call to
// Justify.
type Global struct {
	Constructors    *Constructors
	Requirements    *Requirements
	Clusters        *Clusters
	Reductions      *Reductions
	Identifications *Identifications
	Expansions      *Expansions
	Flags           checkflags.Config
}
