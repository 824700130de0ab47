// Package checkfixture loads a YAML description of a Global table plus one
// or more premise formulas from a .txtar archive and builds the
// global.Global/global.LocalContext pair checker.Justify expects (spec
// §10's test-tooling commitment). It stands in for the real library
// accommodator, which spec §1's Non-goals explicitly keep out of scope.
//
// Grounded on internal/cuetxtar/txtar.go: that package wraps
// golang.org/x/tools/txtar plus a thin per-test-case abstraction around a
// *testing.T; this package plays the same role for Mizar fixtures, but
// decodes a YAML table out of the archive instead of building CUE
// instances.
package checkfixture

import (
	"fmt"

	"github.com/ayutac/mizar-go/internal/checkflags"
	"github.com/ayutac/mizar-go/internal/core/global"
	"github.com/ayutac/mizar-go/internal/core/term"
	"gopkg.in/yaml.v3"
)

// Fixture is the YAML-decoded shape of one scenario's "fixture.yaml" file.
type Fixture struct {
	Constructors []ConstructorDTO   `yaml:"constructors"`
	Requirements map[string]int     `yaml:"requirements"`
	Clusters     []ClusterDTO       `yaml:"clusters,omitempty"`
	Reductions   []ReductionDTO     `yaml:"reductions,omitempty"`
	Premises     []FormulaDTO       `yaml:"premises"`
	Flags        *FlagsDTO          `yaml:"flags,omitempty"`
	Want         WantDTO            `yaml:"want"`
}

// FlagsDTO mirrors the fields of checkflags.Config a fixture may want to
// pin explicitly rather than take the zero-value default.
type FlagsDTO struct {
	Strict             *bool `yaml:"strict,omitempty"`
	LogEval            *int  `yaml:"log_eval,omitempty"`
	LegacyFlexHandling *bool `yaml:"legacy_flex_handling,omitempty"`
	AttrSortBug        *bool `yaml:"attr_sort_bug,omitempty"`
	FlexExpansionBug   *bool `yaml:"flex_expansion_bug,omitempty"`
}

func (f *FlagsDTO) apply(c checkflags.Config) checkflags.Config {
	if f == nil {
		return c
	}
	if f.Strict != nil {
		c.Strict = *f.Strict
	}
	if f.LogEval != nil {
		c.LogEval = *f.LogEval
	}
	if f.LegacyFlexHandling != nil {
		c.LegacyFlexHandling = *f.LegacyFlexHandling
	}
	if f.AttrSortBug != nil {
		c.AttrSortBug = *f.AttrSortBug
	}
	if f.FlexExpansionBug != nil {
		c.FlexExpansionBug = *f.FlexExpansionBug
	}
	return c
}

// WantDTO describes the expected outcome of running checker.Justify on the
// fixture's premises.
type WantDTO struct {
	// Refuted is true when Justify is expected to succeed (nil error):
	// the premises are unsatisfiable, i.e. the justification holds.
	Refuted bool `yaml:"refuted"`
	// ReasonContains, if set, must be a substring of a failing
	// *errs.JustifyFailure's Reason.
	ReasonContains string `yaml:"reason_contains,omitempty"`
}

// ConstructorDTO is the YAML shape of one global.Constructor entry.
type ConstructorDTO struct {
	Kind        string   `yaml:"kind"`
	Nr          int      `yaml:"nr"`
	Arity       int      `yaml:"arity"`
	Redefines   int      `yaml:"redefines"`
	Superfluous int      `yaml:"superfluous"`
	Properties  []string `yaml:"properties,omitempty"`
	Arg1        int      `yaml:"arg1"`
	Arg2        int      `yaml:"arg2"`
}

var constructorKinds = map[string]global.ConstructorKind{
	"predicate": global.PredicateKind,
	"functor":   global.FunctorKind,
	"attribute": global.AttributeKind,
	"aggregate": global.AggregateKind,
	"selector":  global.SelectorKind,
	"mode":      global.ModeKind,
	"struct":    global.StructKind,
}

var constructorProps = map[string]global.Properties{
	"commutative": global.Commutative,
	"symmetric":   global.Symmetric,
	"asymmetric":  global.Asymmetric,
	"connected":   global.Connected,
	"reflexive":   global.Reflexive,
	"irreflexive": global.Irreflexive,
	"idempotent":  global.Idempotent,
	"involutive":  global.Involutive,
	"projective":  global.Projective,
	"abstract":    global.Abstract,
}

func (c ConstructorDTO) build() (global.Constructor, error) {
	kind, ok := constructorKinds[c.Kind]
	if !ok {
		return global.Constructor{}, fmt.Errorf("checkfixture: unknown constructor kind %q", c.Kind)
	}
	var props global.Properties
	for _, p := range c.Properties {
		flag, ok := constructorProps[p]
		if !ok {
			return global.Constructor{}, fmt.Errorf("checkfixture: unknown constructor property %q", p)
		}
		props |= flag
	}
	redef := c.Redefines
	if redef == 0 {
		redef = -1
	}
	return global.Constructor{
		Kind:        kind,
		Nr:          c.Nr,
		Arity:       c.Arity,
		Redefines:   redef,
		Superfluous: c.Superfluous,
		Properties:  props,
		Arg1:        c.Arg1,
		Arg2:        c.Arg2,
	}, nil
}

// ClusterDTO is the YAML shape of one global.ConditionalCluster entry.
// There is no DTO for global.FunctorCluster: Build fills only
// Clusters.Conditional.
type ClusterDTO struct {
	Primary      []TypeDTO  `yaml:"primary"`
	AntecedentTy *TypeDTO   `yaml:"antecedent_ty,omitempty"`
	Antecedent   []AttrFact `yaml:"antecedent"`
	Consequent   []AttrFact `yaml:"consequent"`
}

// AttrFact is the YAML shape of one term.AttrFact entry.
type AttrFact struct {
	Nr  int  `yaml:"nr"`
	Pos bool `yaml:"pos"`
}

func (a AttrFact) build() term.AttrFact {
	return term.AttrFact{Nr: a.Nr, Pos: a.Pos}
}

func buildAttrs(facts []AttrFact) term.Attrs {
	var attrs term.Attrs
	for _, f := range facts {
		attrs.Insert(f.build(), false)
	}
	return attrs
}

func (c ClusterDTO) build() (global.ConditionalCluster, error) {
	primary := make([]*term.Type, len(c.Primary))
	for i, p := range c.Primary {
		ty, err := p.build()
		if err != nil {
			return global.ConditionalCluster{}, err
		}
		primary[i] = ty
	}
	var antTy *term.Type
	if c.AntecedentTy != nil {
		var err error
		antTy, err = c.AntecedentTy.build()
		if err != nil {
			return global.ConditionalCluster{}, err
		}
	}
	return global.ConditionalCluster{
		Primary:      primary,
		AntecedentTy: antTy,
		Antecedent:   buildAttrs(c.Antecedent),
		Consequent:   buildAttrs(c.Consequent),
	}, nil
}

// ReductionDTO is the YAML shape of one global.Reduction entry.
type ReductionDTO struct {
	Primary []TypeDTO `yaml:"primary"`
	Lhs     TermDTO   `yaml:"lhs"`
	Rhs     TermDTO   `yaml:"rhs"`
}

func (r ReductionDTO) build() (global.Reduction, error) {
	primary := make([]*term.Type, len(r.Primary))
	for i, p := range r.Primary {
		ty, err := p.build()
		if err != nil {
			return global.Reduction{}, err
		}
		primary[i] = ty
	}
	lhs, err := r.Lhs.build()
	if err != nil {
		return global.Reduction{}, err
	}
	rhs, err := r.Rhs.build()
	if err != nil {
		return global.Reduction{}, err
	}
	return global.Reduction{Primary: primary, Lhs: lhs, Rhs: rhs}, nil
}

// Build turns the decoded fixture into a ready-to-use Global, a fresh
// LocalContext, and the list of premise formulas to hand to
// checker.Justify.
func (fx *Fixture) Build() (*global.Global, *global.LocalContext, []term.Formula, error) {
	entries := make([]global.Constructor, len(fx.Constructors))
	for i, c := range fx.Constructors {
		built, err := c.build()
		if err != nil {
			return nil, nil, nil, err
		}
		entries[i] = built
	}
	constructors := global.NewConstructors(entries)

	reqs := make(map[global.Requirement]int, len(fx.Requirements))
	for name, nr := range fx.Requirements {
		reqs[global.Requirement(name)] = nr
	}
	requirements := global.NewRequirements(reqs)

	var conditional []global.ConditionalCluster
	for _, c := range fx.Clusters {
		built, err := c.build()
		if err != nil {
			return nil, nil, nil, err
		}
		conditional = append(conditional, built)
	}
	clusters := &global.Clusters{Conditional: conditional}

	var reductions []global.Reduction
	for _, r := range fx.Reductions {
		built, err := r.build()
		if err != nil {
			return nil, nil, nil, err
		}
		reductions = append(reductions, built)
	}

	flags := fx.Flags.apply(checkflags.Config{Strict: true})
	g := &global.Global{
		Constructors:    constructors,
		Requirements:    requirements,
		Clusters:        clusters,
		Reductions:      &global.Reductions{List: reductions},
		Identifications: &global.Identifications{},
		Expansions:      &global.Expansions{},
		Flags:           flags,
	}

	lc := global.NewLocalContext(flags.Strict, flags.LogEval)

	premises := make([]term.Formula, len(fx.Premises))
	for i, p := range fx.Premises {
		f, err := p.build()
		if err != nil {
			return nil, nil, nil, fmt.Errorf("checkfixture: premise %d: %w", i, err)
		}
		premises[i] = f
	}

	return g, lc, premises, nil
}

// Parse decodes one fixture.yaml payload.
func Parse(data []byte) (*Fixture, error) {
	var fx Fixture
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("checkfixture: %w", err)
	}
	return &fx, nil
}
