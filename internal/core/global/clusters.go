package global

import "github.com/ayutac/mizar-go/internal/core/term"

// ConditionalCluster is a registered implication "primary type with these
// antecedent attributes implies these consequent attributes" (spec §3.2,
// GLOSSARY "Cluster"). Primary gives the Locus-indexed argument types the
// rule is registered against; Antecedent is tested against the class's
// current attributes; Consequent is merged into the class's supercluster
// when the rule fires (spec §4.3 step 12).
type ConditionalCluster struct {
	Primary      []*term.Type
	AntecedentTy *term.Type
	Antecedent   term.Attrs
	Consequent   term.Attrs
}

// FunctorCluster is a registered fact "this functor applied to arguments
// of these primary types has these result attributes" (spec §3.2).
// Pattern is a Functor/Aggregate/Selector term (one whose
// arguments are Locus placeholders); Consequent attributes are merged
// into the result class's supercluster when the pattern matches.
type FunctorCluster struct {
	Primary    []*term.Type
	Pattern    term.Term
	Consequent term.Attrs
}

// Clusters bundles both registered rounds of round-up rules.
type Clusters struct {
	Conditional []ConditionalCluster
	Functor     []FunctorCluster
}

// Reduction is a rewrite rule lhs -> rhs guarded by the primary types of
// its Loci (spec §3.2, §4.3 step 6).
type Reduction struct {
	Primary []*term.Type
	Lhs     term.Term
	Rhs     term.Term
}

// Reductions is the registered list of rewrite rules.
type Reductions struct {
	List []Reduction
}

// Identification is a registered definitional equality between two
// locus-parameterized terms (spec §3.2, §4.3 step 4 "settings").
type Identification struct {
	Primary []*term.Type
	Lhs     term.Term
	Rhs     term.Term
}

// Identifications is the registered list of definitional equalities.
type Identifications struct {
	List []Identification
}

// Expansion is a registered predicate/attribute expansion: an assumption
// that, when trivially true, licenses contributing Body as an additional
// (polarity-aware) conjunct wherever Pattern occurs (spec §4.1(b)).
type Expansion struct {
	Pattern    term.Formula
	Assumption term.Formula
	Body       term.Formula
}

// Expansions is the registered list of definitional expansions.
type Expansions struct {
	List []Expansion
}
