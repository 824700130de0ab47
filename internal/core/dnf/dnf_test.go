package dnf

import (
	"testing"

	"github.com/kr/pretty"

	"github.com/ayutac/mizar-go/internal/core/term"
)

func TestAtomsInternDedups(t *testing.T) {
	atoms := NewAtoms()
	p1 := &term.Pred{Nr: 3, Args: []term.Term{term.Constant{Nr: 0}}}
	p2 := &term.Pred{Nr: 3, Args: []term.Term{term.Constant{Nr: 0}}}
	p3 := &term.Pred{Nr: 3, Args: []term.Term{term.Constant{Nr: 1}}}

	id1 := atoms.Intern(p1)
	id2 := atoms.Intern(p2)
	id3 := atoms.Intern(p3)

	if id1 != id2 {
		t.Errorf("Intern did not dedup structurally identical atoms: %d != %d", id1, id2)
	}
	if id1 == id3 {
		t.Errorf("Intern collapsed distinct atoms into one id: %d", id1)
	}
}

func TestNormalizeDistributesOrOverAnd(t *testing.T) {
	// not (not P and not Q) and R  ==  (P or Q) and R
	// DNF:  (P and R) or (Q and R)
	atoms := NewAtoms()
	pPred := &term.Pred{Nr: 1}
	qPred := &term.Pred{Nr: 2}
	rPred := &term.Pred{Nr: 3}

	f := &term.And{Conjuncts: []term.Formula{
		&term.Neg{F: &term.And{Conjuncts: []term.Formula{
			&term.Neg{F: pPred},
			&term.Neg{F: qPred},
		}}},
		rPred,
	}}

	d := Normalize(atoms, f, true)
	if d.IsTrue {
		t.Fatalf("Normalize reported IsTrue for a non-tautology")
	}
	if len(d.Conjuncts) != 2 {
		t.Fatalf("Normalize produced %d conjuncts, want 2: %# v", len(d.Conjuncts), pretty.Formatter(d))
	}

	pID := atoms.Intern(pPred)
	qID := atoms.Intern(qPred)
	rID := atoms.Intern(rPred)

	sawP, sawQ := false, false
	for _, c := range d.Conjuncts {
		if c[rID] != true {
			t.Errorf("conjunct missing positive R: %v", c)
		}
		switch {
		case c[pID] == true && len(c) == 2:
			sawP = true
		case c[qID] == true && len(c) == 2:
			sawQ = true
		default:
			t.Errorf("unexpected conjunct shape: %v", c)
		}
	}
	if !sawP || !sawQ {
		t.Errorf("expected one P-conjunct and one Q-conjunct, got %# v", pretty.Formatter(d.Conjuncts))
	}
}

func TestANDAbsorbsFalse(t *testing.T) {
	atoms := NewAtoms()
	p := Atom(atoms.Intern(&term.Pred{Nr: 1}), true)
	if got := AND(p, FalseDNF()); got.Satisfiable() {
		t.Errorf("AND(p, False) should be unsatisfiable, got %# v", pretty.Formatter(got))
	}
}

func TestORWithTrueIsTrue(t *testing.T) {
	atoms := NewAtoms()
	p := Atom(atoms.Intern(&term.Pred{Nr: 1}), true)
	got := OR(p, TrueDNF())
	if !got.IsTrue {
		t.Errorf("OR(p, True) = %# v, want IsTrue", pretty.Formatter(got))
	}
}
