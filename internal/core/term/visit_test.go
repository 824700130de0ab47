package term

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/kr/pretty"
)

func TestWalkPolarity(t *testing.T) {
	// not (P(0) and forall x. Q(x, 0))
	f := &Neg{F: &And{Conjuncts: []Formula{
		&Pred{Nr: 1, Args: []Term{Bound{Index: 0}}},
		&ForAll{
			Domain: &Type{Kind: Mode, Nr: 0},
			Body:   &Pred{Nr: 2, Args: []Term{Bound{Index: 0}, Bound{Index: 1}}},
		},
	}}}

	type visit struct {
		nr    int
		pos   bool
		depth int
	}
	var got []visit
	Walk(f, true, func(a Formula, pos bool, depth int) Formula {
		p, ok := a.(*Pred)
		if !ok {
			t.Fatalf("unexpected atom %#v", a)
		}
		got = append(got, visit{nr: p.Nr, pos: pos, depth: depth})
		return a
	})

	want := []visit{
		{nr: 1, pos: false, depth: 0},
		{nr: 2, pos: false, depth: 1},
	}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(visit{})); diff != "" {
		t.Errorf("Walk polarity/depth mismatch (-want +got):\n%s\n%# v", diff, pretty.Formatter(got))
	}
}

func TestShiftTermCutoff(t *testing.T) {
	in := &Functor{Nr: 5, Args: []Term{Bound{Index: 0}, Bound{Index: 2}}}
	got := ShiftTerm(in, 1, 3)
	want := &Functor{Nr: 5, Args: []Term{Bound{Index: 0}, Bound{Index: 5}}}
	if !Equal(got, want) {
		t.Errorf("ShiftTerm = %# v, want %# v", pretty.Formatter(got), pretty.Formatter(want))
	}
}

func TestOpenQuantifiersIntroducesOneVarPerBinder(t *testing.T) {
	f := &ForAll{
		Domain: &Type{Kind: Mode, Nr: 1},
		Body: &ForAll{
			Domain: &Type{Kind: Mode, Nr: 2},
			Body:   &Pred{Nr: 9, Args: []Term{Bound{Index: 0}, Bound{Index: 1}}},
		},
	}

	var doms []*Type
	next := 0
	body, domains := OpenQuantifiers(f, func(ty *Type) Term {
		doms = append(doms, ty)
		v := Constant{Nr: next}
		next++
		return v
	})

	if len(domains) != 2 {
		t.Fatalf("OpenQuantifiers returned %d domains, want 2", len(domains))
	}
	p, ok := body.(*Pred)
	if !ok {
		t.Fatalf("opened body is %#v, want *Pred", body)
	}
	want := []Term{Constant{Nr: 1}, Constant{Nr: 0}}
	if !Equal(p.Args[0], want[0]) || !Equal(p.Args[1], want[1]) {
		t.Errorf("opened args = %#v, want %#v", p.Args, want)
	}
}
