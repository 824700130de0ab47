package unifier

import (
	"testing"

	"github.com/ayutac/mizar-go/internal/core/equalizer"
	"github.com/ayutac/mizar-go/internal/core/global"
	"github.com/ayutac/mizar-go/internal/core/term"
)

func newTestUnifier(constructors []global.Constructor) (*Unifier, *equalizer.Equalizer) {
	g := &global.Global{
		Constructors:    global.NewConstructors(constructors),
		Requirements:    global.NewRequirements(nil),
		Clusters:        &global.Clusters{},
		Reductions:      &global.Reductions{},
		Identifications: &global.Identifications{},
		Expansions:      &global.Expansions{},
	}
	lc := global.NewLocalContext(true, 0)
	model := equalizer.New(g, lc)
	u := New(g, lc, model, nil, nil)
	return u, model
}

func TestFalsifyRefutesIrreflexiveSelfPredicate(t *testing.T) {
	// forall x. Irr(x, x), where Irr is registered irreflexive on its
	// two designated argument positions: the body is unconditionally
	// false, so asserting it true for every x is an immediate
	// contradiction (spec §8 scenario (a)).
	u, _ := newTestUnifier([]global.Constructor{
		{Kind: global.PredicateKind, Nr: 0, Arity: 2, Redefines: -1, Properties: global.Irreflexive, Arg1: 0, Arg2: 1},
	})

	f := &term.ForAll{
		Domain: &term.Type{Kind: term.Mode, Nr: 0},
		Body:   &term.Pred{Nr: 0, Args: []term.Term{term.Bound{Index: 0}, term.Bound{Index: 0}}},
	}

	if !u.Falsify([]term.Formula{f}) {
		t.Errorf("Falsify did not refute forall x. Irr(x,x) for an irreflexive predicate")
	}
}

func TestFalsifyDoesNotRefuteReflexiveSelfPredicate(t *testing.T) {
	// forall x. Refl(x, x) for a reflexive predicate holds unconditionally,
	// so there is nothing to refute.
	u, _ := newTestUnifier([]global.Constructor{
		{Kind: global.PredicateKind, Nr: 0, Arity: 2, Redefines: -1, Properties: global.Reflexive, Arg1: 0, Arg2: 1},
	})

	f := &term.ForAll{
		Domain: &term.Type{Kind: term.Mode, Nr: 0},
		Body:   &term.Pred{Nr: 0, Args: []term.Term{term.Bound{Index: 0}, term.Bound{Index: 0}}},
	}

	if u.Falsify([]term.Formula{f}) {
		t.Errorf("Falsify incorrectly refuted a tautological reflexive self-predicate")
	}
}

func TestResolutionRejectsOutOfRangeClauseCounts(t *testing.T) {
	u, _ := newTestUnifier(nil)
	if u.Resolution(nil) {
		t.Errorf("Resolution accepted zero clauses")
	}
	five := make([]term.Formula, 5)
	for i := range five {
		five[i] = term.True{}
	}
	if u.Resolution(five) {
		t.Errorf("Resolution accepted 5 clauses, want rejection above the 2-4 cap")
	}
}

func TestResolutionRefutesComplementaryUnitClauses(t *testing.T) {
	// Two unit clauses forall x. P(x) and forall x. not P(x): the single
	// candidate pair resolves to the empty clause, an immediate
	// contradiction (spec §8 scenario (e), collapsed to the 2-clause case).
	u, _ := newTestUnifier([]global.Constructor{
		{Kind: global.PredicateKind, Nr: 0, Arity: 1, Redefines: -1},
	})

	dom := &term.Type{Kind: term.Mode, Nr: 0}
	c1 := &term.ForAll{Domain: dom, Body: &term.Pred{Nr: 0, Args: []term.Term{term.Bound{Index: 0}}}}
	c2 := &term.ForAll{Domain: dom, Body: &term.Neg{F: &term.Pred{Nr: 0, Args: []term.Term{term.Bound{Index: 0}}}}}

	if !u.Resolution([]term.Formula{c1, c2}) {
		t.Errorf("Resolution did not refute two complementary unit clauses")
	}
}
