package checkfixture

import (
	"fmt"

	"github.com/cockroachdb/apd/v3"

	"github.com/ayutac/mizar-go/internal/core/term"
)

// TermDTO is a discriminated union over every term.Term variant (spec
// §3.1), decoded from one YAML mapping with exactly one recognized key
// set. The shape mirrors FormulaDTO below; see its doc comment for the
// rationale.
type TermDTO struct {
	Bound    *int       `yaml:"bound,omitempty"`
	Const    *int       `yaml:"const,omitempty"`
	FreeVar  *int       `yaml:"freevar,omitempty"`
	Locus    *int       `yaml:"locus,omitempty"`
	Infer    *int       `yaml:"infer,omitempty"`
	Numeral  *int64     `yaml:"numeral,omitempty"`
	Functor  *AppDTO    `yaml:"functor,omitempty"`
	SchFunc  *AppDTO    `yaml:"schfunc,omitempty"`
	PrivFunc *AppDTO    `yaml:"privfunc,omitempty"`
	Agg      *AppDTO    `yaml:"aggregate,omitempty"`
	Selector *AppDTO    `yaml:"selector,omitempty"`
}

// AppDTO is the shared shape of every application-headed term (Functor,
// SchFunc, PrivFunc, Aggregate, Selector): a constructor number and a
// positional argument list.
type AppDTO struct {
	Nr   int       `yaml:"nr"`
	Args []TermDTO `yaml:"args,omitempty"`
}

func (a AppDTO) buildArgs() ([]term.Term, error) {
	args := make([]term.Term, len(a.Args))
	for i, d := range a.Args {
		t, err := d.build()
		if err != nil {
			return nil, err
		}
		args[i] = t
	}
	return args, nil
}

func (d TermDTO) build() (term.Term, error) {
	switch {
	case d.Bound != nil:
		return term.Bound{Index: *d.Bound}, nil
	case d.Const != nil:
		return term.Constant{Nr: *d.Const}, nil
	case d.FreeVar != nil:
		return term.FreeVar{Nr: *d.FreeVar}, nil
	case d.Locus != nil:
		return term.Locus{Nr: *d.Locus}, nil
	case d.Infer != nil:
		return term.Infer{Nr: *d.Infer}, nil
	case d.Numeral != nil:
		return term.Numeral{Value: apd.New(*d.Numeral, 0)}, nil
	case d.Functor != nil:
		args, err := d.Functor.buildArgs()
		if err != nil {
			return nil, err
		}
		return &term.Functor{Nr: d.Functor.Nr, Args: args}, nil
	case d.SchFunc != nil:
		args, err := d.SchFunc.buildArgs()
		if err != nil {
			return nil, err
		}
		return &term.SchFunc{Nr: d.SchFunc.Nr, Args: args}, nil
	case d.PrivFunc != nil:
		args, err := d.PrivFunc.buildArgs()
		if err != nil {
			return nil, err
		}
		return &term.PrivFunc{Nr: d.PrivFunc.Nr, Args: args}, nil
	case d.Agg != nil:
		args, err := d.Agg.buildArgs()
		if err != nil {
			return nil, err
		}
		return &term.Aggregate{Nr: d.Agg.Nr, Args: args}, nil
	case d.Selector != nil:
		args, err := d.Selector.buildArgs()
		if err != nil {
			return nil, err
		}
		return &term.Selector{Nr: d.Selector.Nr, Args: args}, nil
	default:
		return nil, fmt.Errorf("checkfixture: empty term")
	}
}

// TypeDTO is the YAML shape of one term.Type.
type TypeDTO struct {
	Kind  string     `yaml:"kind"`
	Nr    int        `yaml:"nr"`
	Args  []TermDTO  `yaml:"args,omitempty"`
	Lower []AttrFact `yaml:"lower,omitempty"`
	Upper []AttrFact `yaml:"upper,omitempty"`
}

var typeKinds = map[string]term.Kind{
	"mode":   term.Mode,
	"struct": term.Struct,
}

func (d TypeDTO) build() (*term.Type, error) {
	kind, ok := typeKinds[d.Kind]
	if !ok {
		return nil, fmt.Errorf("checkfixture: unknown type kind %q", d.Kind)
	}
	args := make([]term.Term, len(d.Args))
	for i, a := range d.Args {
		t, err := a.build()
		if err != nil {
			return nil, err
		}
		args[i] = t
	}
	return &term.Type{
		Kind:  kind,
		Nr:    d.Nr,
		Args:  args,
		Lower: buildAttrs(d.Lower),
		Upper: buildAttrs(d.Upper),
	}, nil
}

// FormulaDTO is a discriminated union over every term.Formula variant
// (spec §3.1). YAML has no native sum-type support, so each alternative
// gets its own optional field; exactly one is expected to be set per
// node, mirroring how the teacher's internal config DTOs (e.g.
// cueconfig's moduleFile) decode a closed set of shapes through plain
// struct tags rather than a custom UnmarshalYAML per node.
type FormulaDTO struct {
	Neg      *FormulaDTO  `yaml:"neg,omitempty"`
	And      []FormulaDTO `yaml:"and,omitempty"`
	ForAll   *ForAllDTO   `yaml:"forall,omitempty"`
	Pred     *AppDTO      `yaml:"pred,omitempty"`
	NegPred  *AppDTO      `yaml:"not_pred,omitempty"`
	Attr     *AttrDTO     `yaml:"attr,omitempty"`
	Is       *IsDTO       `yaml:"is,omitempty"`
	SchPred  *AppDTO      `yaml:"schpred,omitempty"`
	PrivPred *AppDTO      `yaml:"privpred,omitempty"`
	FlexAnd  *FlexAndDTO  `yaml:"flexand,omitempty"`
	True     bool         `yaml:"true,omitempty"`
}

// ForAllDTO is the YAML shape of a universal quantifier.
type ForAllDTO struct {
	Domain TypeDTO    `yaml:"domain"`
	Body   FormulaDTO `yaml:"body"`
}

// AttrDTO is the YAML shape of a term.Attr formula node.
type AttrDTO struct {
	Nr   int       `yaml:"nr"`
	Pos  bool      `yaml:"pos"`
	Args []TermDTO `yaml:"args"`
}

// IsDTO is the YAML shape of a term.Is formula node.
type IsDTO struct {
	Term TermDTO `yaml:"term"`
	Ty   TypeDTO `yaml:"ty"`
}

// FlexAndDTO is the YAML shape of a term.FlexAnd formula node.
type FlexAndDTO struct {
	Lo   TermDTO    `yaml:"lo"`
	Hi   TermDTO    `yaml:"hi"`
	Body FormulaDTO `yaml:"body"`
}

func (d FormulaDTO) build() (term.Formula, error) {
	switch {
	case d.Neg != nil:
		f, err := d.Neg.build()
		if err != nil {
			return nil, err
		}
		return &term.Neg{F: f}, nil
	case d.And != nil:
		out := make([]term.Formula, len(d.And))
		for i, c := range d.And {
			f, err := c.build()
			if err != nil {
				return nil, err
			}
			out[i] = f
		}
		return &term.And{Conjuncts: out}, nil
	case d.ForAll != nil:
		dom, err := d.ForAll.Domain.build()
		if err != nil {
			return nil, err
		}
		body, err := d.ForAll.Body.build()
		if err != nil {
			return nil, err
		}
		return &term.ForAll{Domain: dom, Body: body}, nil
	case d.Pred != nil:
		args, err := d.Pred.buildArgs()
		if err != nil {
			return nil, err
		}
		return &term.Pred{Nr: d.Pred.Nr, Args: args}, nil
	case d.NegPred != nil:
		args, err := d.NegPred.buildArgs()
		if err != nil {
			return nil, err
		}
		return &term.Neg{F: &term.Pred{Nr: d.NegPred.Nr, Args: args}}, nil
	case d.Attr != nil:
		args := make([]term.Term, len(d.Attr.Args))
		for i, a := range d.Attr.Args {
			t, err := a.build()
			if err != nil {
				return nil, err
			}
			args[i] = t
		}
		return &term.Attr{Nr: d.Attr.Nr, Pos: d.Attr.Pos, Args: args}, nil
	case d.Is != nil:
		t, err := d.Is.Term.build()
		if err != nil {
			return nil, err
		}
		ty, err := d.Is.Ty.build()
		if err != nil {
			return nil, err
		}
		return &term.Is{Term: t, Ty: ty}, nil
	case d.SchPred != nil:
		args, err := d.SchPred.buildArgs()
		if err != nil {
			return nil, err
		}
		return &term.SchPred{Nr: d.SchPred.Nr, Args: args}, nil
	case d.PrivPred != nil:
		args, err := d.PrivPred.buildArgs()
		if err != nil {
			return nil, err
		}
		return &term.PrivPred{Nr: d.PrivPred.Nr, Args: args}, nil
	case d.FlexAnd != nil:
		lo, err := d.FlexAnd.Lo.build()
		if err != nil {
			return nil, err
		}
		hi, err := d.FlexAnd.Hi.build()
		if err != nil {
			return nil, err
		}
		body, err := d.FlexAnd.Body.build()
		if err != nil {
			return nil, err
		}
		return &term.FlexAnd{Lo: lo, Hi: hi, Body: body}, nil
	case d.True:
		return term.True{}, nil
	default:
		return nil, fmt.Errorf("checkfixture: empty formula")
	}
}
