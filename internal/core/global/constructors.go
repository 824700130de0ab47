// Package global holds the frozen, read-only tables the checker consumes
// (spec §3.2, §6) and the mutable per-justification LocalContext (spec
// §3.5). Nothing in this package decides refutability; it only models the
// library accommodator's output in the shape the checker core needs.
//
// Grounded on cuelang.org/go/internal/core/runtime (a read-only Runtime
// bundling constructor/index tables passed into every OpContext) and on
// internal/core/adt/context.go's Config/Runtime split between immutable
// shared state and the mutable per-call OpContext.
package global

import "github.com/ayutac/mizar-go/internal/core/term"

// ConstructorKind distinguishes the seven families of registered symbol
// spec §6 names.
type ConstructorKind int

const (
	PredicateKind ConstructorKind = iota
	FunctorKind
	AttributeKind
	AggregateKind
	SelectorKind
	ModeKind
	StructKind
)

// Properties is a bitset of the constructor flags spec §3.2/§6 list.
type Properties uint32

const (
	Commutative Properties = 1 << iota
	Symmetric
	Asymmetric
	Connected
	Reflexive
	Irreflexive
	Idempotent
	Involutive
	Projective
	Abstract
)

func (p Properties) Has(f Properties) bool { return p&f != 0 }

// Constructor is one entry of the Constructors table.
type Constructor struct {
	Kind ConstructorKind
	Nr   int
	// Arity is the total argument count as seen by the caller, before
	// adjustment.
	Arity int
	// Redefines is the root constructor this one redirects to, or -1 if
	// this constructor is already a root (GLOSSARY "Adjust").
	Redefines int
	// Superfluous is the count of leading arguments dropped when
	// adjusting to Redefines.
	Superfluous int
	Properties  Properties
	// Arg1, Arg2 are the designated argument positions used by
	// reflexivity/irreflexivity/symmetry/connectedness checks (spec §4.3
	// step 9, §4.4's compute_inst).
	Arg1, Arg2 int
}

// Constructors is the by-id lookup table for every registered symbol.
type Constructors struct {
	list []Constructor
}

// NewConstructors builds a table indexed by Constructor.Nr. Entries must
// be dense from 0; gaps are a caller error.
func NewConstructors(entries []Constructor) *Constructors {
	c := &Constructors{list: make([]Constructor, len(entries))}
	for _, e := range entries {
		c.list[e.Nr] = e
	}
	return c
}

// Get returns the constructor registered under nr.
func (c *Constructors) Get(nr int) Constructor {
	if nr < 0 || nr >= len(c.list) {
		panic("global: constructor id out of range")
	}
	return c.list[nr]
}

// Adjust implements GLOSSARY "Adjust": for a redefined constructor,
// replace it with its root constructor and drop the leading superfluous
// arguments (spec §4.1(a)).
func (c *Constructors) Adjust(nr int, args []term.Term) (int, []term.Term) {
	ctor := c.Get(nr)
	for ctor.Redefines >= 0 {
		if ctor.Superfluous > 0 && ctor.Superfluous <= len(args) {
			args = args[ctor.Superfluous:]
		}
		nr = ctor.Redefines
		ctor = c.Get(nr)
	}
	return nr, args
}

// AdjustType is the Type-level counterpart of Adjust, used when comparing
// radices (spec §4.3 step 9) and when applying reductions (spec §4.3
// step 6) that are keyed by a type's root mode/struct id.
func (c *Constructors) AdjustType(nr int, args []term.Term) (int, []term.Term) {
	return c.Adjust(nr, args)
}

// AdjustArity is the arity-only counterpart of Adjust, used by the
// equalizer's interning pass (spec §4.3 step 2) which only has
// equivalence-class ids for arguments, not terms, at intern time.
func (c *Constructors) AdjustArity(nr int, n int) (root int, drop int) {
	ctor := c.Get(nr)
	for ctor.Redefines >= 0 {
		if ctor.Superfluous > 0 && ctor.Superfluous <= n {
			n -= ctor.Superfluous
			drop += ctor.Superfluous
		}
		nr = ctor.Redefines
		ctor = c.Get(nr)
	}
	return nr, drop
}
