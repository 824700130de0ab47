package equalizer

import (
	"testing"

	"github.com/kr/pretty"

	"github.com/ayutac/mizar-go/internal/core/global"
	"github.com/ayutac/mizar-go/internal/core/term"
)

func newTestGlobal() *global.Global {
	constructors := global.NewConstructors([]global.Constructor{
		{Kind: global.FunctorKind, Nr: 0, Arity: 1, Redefines: -1},
	})
	return &global.Global{
		Constructors:    constructors,
		Requirements:    global.NewRequirements(nil),
		Clusters:        &global.Clusters{},
		Reductions:      &global.Reductions{},
		Identifications: &global.Identifications{},
		Expansions:      &global.Expansions{},
	}
}

func TestInternTermDedupsLeaves(t *testing.T) {
	g := newTestGlobal()
	lc := global.NewLocalContext(true, 0)
	e := New(g, lc)

	a := e.InternTerm(term.Constant{Nr: 0})
	b := e.InternTerm(term.Constant{Nr: 0})
	if a != b {
		t.Errorf("two occurrences of the same Constant landed in different classes: %d vs %d", a, b)
	}
}

func TestUnionThenCongruentApplicationMerges(t *testing.T) {
	g := newTestGlobal()
	lc := global.NewLocalContext(true, 0)
	e := New(g, lc)

	c0 := e.InternTerm(term.Constant{Nr: 0})
	c1 := e.InternTerm(term.Constant{Nr: 1})
	if err := e.Union(c0, c1); err != nil {
		t.Fatalf("Union: %v", err)
	}

	fa := e.InternTerm(&term.Functor{Nr: 0, Args: []term.Term{term.Constant{Nr: 0}}})
	fb := e.InternTerm(&term.Functor{Nr: 0, Args: []term.Term{term.Constant{Nr: 1}}})

	if e.resolve(fa) != e.resolve(fb) {
		t.Errorf("congruence did not merge f(a) and f(b) after a=b: %# v", pretty.Formatter(e.classes))
	}
}

func TestUnionMergesHigherIntoLower(t *testing.T) {
	g := newTestGlobal()
	lc := global.NewLocalContext(true, 0)
	e := New(g, lc)

	a := e.InternTerm(term.Constant{Nr: 0})
	b := e.InternTerm(term.Constant{Nr: 1})
	hi, lo := a, b
	if hi < lo {
		hi, lo = lo, hi
	}
	if err := e.Union(hi, lo); err != nil {
		t.Fatalf("Union: %v", err)
	}
	if got := e.resolve(hi); got != lo {
		t.Errorf("Union(%d, %d) resolved to %d, want the lower id %d", hi, lo, got, lo)
	}
}

func TestRenumberCompactsAwayMergedClasses(t *testing.T) {
	g := newTestGlobal()
	lc := global.NewLocalContext(true, 0)
	e := New(g, lc)

	a := e.InternTerm(term.Constant{Nr: 0})
	b := e.InternTerm(term.Constant{Nr: 1})
	if err := e.Union(a, b); err != nil {
		t.Fatalf("Union: %v", err)
	}
	e.Renumber()

	for _, c := range e.Classes() {
		if len(c.Members) == 0 {
			t.Errorf("Renumber left a merged-away class in Classes(): %#v", c)
		}
	}
}
