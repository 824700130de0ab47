// Package term defines the syntactic object model shared by every stage of
// the checker pipeline: Term, Formula, Type, and Attr (spec §3.1–3.2), plus
// a generic polarity-threaded visitor (spec §9, "Polarity-threaded
// recursion"), used by the unifier's resolution step to collect literals.
// The expander, the DNF builder and the equalizer recurse on their own.
//
// Grounded on cuelang.org/go/internal/core/adt/expr.go (the tagged-variant
// Expr/Value hierarchy with a closed marker-method interface) and
// internal/core/adt/adt.go (the Node/Expr/Value interface shape).
package term

import "github.com/cockroachdb/apd/v3"

// Term is the closed interface implemented by every term variant in
// spec §3.1. A private marker method keeps the set of implementers closed
// to this package, mirroring the teacher's adt.Expr pattern.
type Term interface {
	isTerm()
}

// Bound is a de-Bruijn index, relative to the quantifier nesting at the
// point of occurrence (spec §3.1, invariant in spec §3.4.6).
type Bound struct{ Index int }

// Constant references the n-th entry of the local context's fixed-variable
// stack.
type Constant struct{ Nr int }

// FreeVar is a metavariable introduced by the unifier. FreeVars are only
// meaningful during a single falsify/resolution call (spec §3.5).
type FreeVar struct{ Nr int }

// Locus is a placeholder inside a registered cluster or definition body,
// replaced by an actual argument when the cluster/definition is
// instantiated.
type Locus struct{ Nr int }

// Infer references a previously interned constant term, found via the
// equalizer's infers cache.
type Infer struct{ Nr int }

// Numeral is a non-negative integer literal. The value is held as an
// apd.Decimal (as the teacher holds adt.Num's value) rather than a native
// integer so that the equalizer's congruence key and the open arithmetic
// hole share one numeric representation.
type Numeral struct{ Value *apd.Decimal }

// Functor is the application of a registered functor constructor to a
// positional argument list.
type Functor struct {
	Nr   int
	Args []Term
}

// SchFunc is the application of a schematic (locally bound) functor.
type SchFunc struct {
	Nr   int
	Args []Term
}

// PrivFunc is the application of a private (article-local) functor.
type PrivFunc struct {
	Nr   int
	Args []Term
}

// Aggregate is a structure-constructor application.
type Aggregate struct {
	Nr   int
	Args []Term
}

// Selector projects a field out of an Aggregate.
type Selector struct {
	Nr   int
	Args []Term
}

// Fraenkel is a set-comprehension term binding len(Args) variables:
// { Value(xs) : xs in Scope, Compr(xs) }.
type Fraenkel struct {
	Args  []*Type
	Scope Term
	Value Term
	Compr Formula
}

// Choice is a Hilbert choice term for a given type.
type Choice struct{ Ty *Type }

// EqClass is an equivalence-class placeholder, produced and consumed by the
// equalizer and by the unifier when it matches terms against classes
// (spec §3.1): once a term is interned, all further references to it are
// rewritten to EqClass(id).
type EqClass struct{ ID int }

// EqMark names one specific witness mark within an equivalence class. The
// equalizer's ClassOf and InternTerm accept it, but no pass of this checker
// produces one: supercluster attribute arguments are rewritten through
// EqClass ids (spec §4.3 step 8).
type EqMark struct{ ID int }

func (Bound) isTerm()     {}
func (Constant) isTerm()  {}
func (FreeVar) isTerm()   {}
func (Locus) isTerm()     {}
func (Infer) isTerm()     {}
func (Numeral) isTerm()   {}
func (*Functor) isTerm()  {}
func (*SchFunc) isTerm()  {}
func (*PrivFunc) isTerm() {}
func (*Aggregate) isTerm() {}
func (*Selector) isTerm() {}
func (*Fraenkel) isTerm() {}
func (*Choice) isTerm()   {}
func (EqClass) isTerm()   {}
func (EqMark) isTerm()    {}

// Args returns the argument list of any application-shaped term, or nil
// for atomic terms. It is used pervasively by the congruent visitor so
// that callers do not need a type switch for every application variant.
func Args(t Term) []Term {
	switch x := t.(type) {
	case *Functor:
		return x.Args
	case *SchFunc:
		return x.Args
	case *PrivFunc:
		return x.Args
	case *Aggregate:
		return x.Args
	case *Selector:
		return x.Args
	default:
		return nil
	}
}

// ConstrNr returns the constructor number of an application-shaped term
// and reports whether t is such a term.
func ConstrNr(t Term) (nr int, ok bool) {
	switch x := t.(type) {
	case *Functor:
		return x.Nr, true
	case *SchFunc:
		return x.Nr, true
	case *PrivFunc:
		return x.Nr, true
	case *Aggregate:
		return x.Nr, true
	case *Selector:
		return x.Nr, true
	default:
		return 0, false
	}
}

// WithArgs returns a shallow copy of t with its argument list replaced.
// t must be an application-shaped term (Args(t) != nil or the empty
// argument case); other variants panic, mirroring the teacher's approach
// of keeping congruent rewriting total over the cases it claims to cover.
func WithArgs(t Term, args []Term) Term {
	switch x := t.(type) {
	case *Functor:
		y := *x
		y.Args = args
		return &y
	case *SchFunc:
		y := *x
		y.Args = args
		return &y
	case *PrivFunc:
		y := *x
		y.Args = args
		return &y
	case *Aggregate:
		y := *x
		y.Args = args
		return &y
	case *Selector:
		y := *x
		y.Args = args
		return &y
	default:
		panic("term.WithArgs: not an application-shaped term")
	}
}
