package term

// Equal reports whether a and b are syntactically identical terms. It is
// used by the equalizer's clash-propagation check (spec §4.3 step 7:
// "any two marks in different classes whose outer constructor and
// arguments match structurally force a merge") and by basis contradiction
// checks that compare raw (pre-equalization) terms.
func Equal(a, b Term) bool {
	return compareTerm(a, b) == 0
}

// Similar reports whether a and b share the same top-level constructor,
// regardless of argument equality (GLOSSARY-adjacent notion used by the
// unifier's resolution step, spec §4.4: "structurally Similar (same top
// constructor, any args)").
func Similar(a, b Term) bool {
	if termRank(a) != termRank(b) {
		return false
	}
	switch x := a.(type) {
	case Bound:
		return x.Index == b.(Bound).Index
	case Constant:
		return x.Nr == b.(Constant).Nr
	case FreeVar:
		return true
	case Locus:
		return x.Nr == b.(Locus).Nr
	case Infer:
		return x.Nr == b.(Infer).Nr
	case Numeral:
		return true
	case EqClass:
		return x.ID == b.(EqClass).ID
	case EqMark:
		return x.ID == b.(EqMark).ID
	default:
		nrA, okA := ConstrNr(a)
		nrB, okB := ConstrNr(b)
		return okA && okB && nrA == nrB && sameShape(a, b)
	}
}

func sameShape(a, b Term) bool {
	switch a.(type) {
	case *Functor:
		_, ok := b.(*Functor)
		return ok
	case *SchFunc:
		_, ok := b.(*SchFunc)
		return ok
	case *PrivFunc:
		_, ok := b.(*PrivFunc)
		return ok
	case *Aggregate:
		_, ok := b.(*Aggregate)
		return ok
	case *Selector:
		_, ok := b.(*Selector)
		return ok
	}
	return false
}

// FormulaSimilar is the formula-level counterpart of Similar, used by the
// unifier's resolution step to find candidate opposite-signed atom pairs
// (spec §4.4).
func FormulaSimilar(a, b Formula) bool {
	switch x := a.(type) {
	case *Pred:
		y, ok := b.(*Pred)
		return ok && x.Nr == y.Nr
	case *Attr:
		y, ok := b.(*Attr)
		return ok && x.Nr == y.Nr
	case *SchPred:
		y, ok := b.(*SchPred)
		return ok && x.Nr == y.Nr
	case *PrivPred:
		y, ok := b.(*PrivPred)
		return ok && x.Nr == y.Nr
	case *Is:
		y, ok := b.(*Is)
		return ok && x.Ty.Radix().SameRadix(y.Ty.Radix())
	default:
		return false
	}
}
