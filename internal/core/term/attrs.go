package term

import "github.com/mpvl/unique"

// AttrFact is one fact in an equivalence class's supercluster or in a
// Type's attribute clusters: a predicate symbol, its sign, and its
// arguments (spec §3.1 "Attribute (Attr)"). It is distinct from the
// surface term.Attr formula node: AttrFact is the settled, sorted-bag
// representation used once an atom has been classified.
type AttrFact struct {
	Nr   int
	Pos  bool
	Args []Term
}

// Attrs is either Inconsistent (a witness that the bag derives ⊥) or a
// Consistent sorted, deduplicated list of facts (spec §3.1, invariant
// §3.4.3). Every mutator in this file preserves "Consistent implies
// sorted-and-unique"; callers must route every insertion through Insert.
type Attrs struct {
	Inconsistent bool
	List         []AttrFact
}

// less orders and compares two AttrFacts: by constructor number, then
// sign, then a tie-break on arguments (spec §3.1).
// attrSortBug reproduces the historical tie-break (spec §9, Open
// Question 2; see DESIGN.md for which ordering is the default).
func less(a, b AttrFact, attrSortBug bool) bool {
	if a.Nr != b.Nr {
		return a.Nr < b.Nr
	}
	if a.Pos != b.Pos {
		return !a.Pos && b.Pos // negative sorts before positive, matching the historical encoding of Pred/Attr pairs
	}
	if attrSortBug {
		// The buggy ordering compares arguments by slice length only,
		// which can leave equal-length, differently-shaped argument
		// lists in either relative order.
		return len(a.Args) < len(b.Args)
	}
	return lessArgs(a.Args, b.Args)
}

func lessArgs(a, b []Term) bool {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if c := compareTerm(a[i], b[i]); c != 0 {
			return c < 0
		}
	}
	return len(a) < len(b)
}

// compareTerm gives a total, deterministic (if not semantically
// meaningful) order over terms, used only for stable sorting.
func compareTerm(a, b Term) int {
	ka, kb := termRank(a), termRank(b)
	if ka != kb {
		return ka - kb
	}
	switch x := a.(type) {
	case Bound:
		return x.Index - b.(Bound).Index
	case Constant:
		return x.Nr - b.(Constant).Nr
	case FreeVar:
		return x.Nr - b.(FreeVar).Nr
	case Locus:
		return x.Nr - b.(Locus).Nr
	case Infer:
		return x.Nr - b.(Infer).Nr
	case Numeral:
		return CompareNumeral(x, b.(Numeral))
	case EqClass:
		return x.ID - b.(EqClass).ID
	case EqMark:
		return x.ID - b.(EqMark).ID
	default:
		nrA, _ := ConstrNr(a)
		nrB, _ := ConstrNr(b)
		if nrA != nrB {
			return nrA - nrB
		}
		return lessArgsCompare(Args(a), Args(b))
	}
}

func lessArgsCompare(a, b []Term) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if c := compareTerm(a[i], b[i]); c != 0 {
			return c
		}
	}
	return len(a) - len(b)
}

func termRank(t Term) int {
	switch t.(type) {
	case Bound:
		return 0
	case Constant:
		return 1
	case FreeVar:
		return 2
	case Locus:
		return 3
	case Infer:
		return 4
	case Numeral:
		return 5
	case EqClass:
		return 6
	case EqMark:
		return 7
	default:
		return 8
	}
}

// sortableAttrs adapts []AttrFact to github.com/mpvl/unique's Interface
// (sort.Interface plus Truncate), so that Insert can sort-and-dedup in one
// pass exactly as the teacher's go.mod-listed mpvl/unique is meant to be
// used, rather than hand-rolling a dedup loop.
type sortableAttrs struct {
	list        *[]AttrFact
	attrSortBug bool
}

func (s sortableAttrs) Len() int { return len(*s.list) }
func (s sortableAttrs) Less(i, j int) bool {
	return less((*s.list)[i], (*s.list)[j], s.attrSortBug)
}
func (s sortableAttrs) Swap(i, j int) {
	(*s.list)[i], (*s.list)[j] = (*s.list)[j], (*s.list)[i]
}
func (s sortableAttrs) Truncate(n int) { *s.list = (*s.list)[:n] }

func equalFact(a, b AttrFact) bool {
	if a.Nr != b.Nr || a.Pos != b.Pos || len(a.Args) != len(b.Args) {
		return false
	}
	for i := range a.Args {
		if compareTerm(a.Args[i], b.Args[i]) != 0 {
			return false
		}
	}
	return true
}

// Insert adds fact to a Attrs, keeping it sorted and deduplicated
// (invariant §3.4.3/§3.1). If fact contradicts an existing entry (same
// predicate, same arguments, opposite sign) the bag becomes Inconsistent,
// which is the unsatisfiability signal described in spec §7.
func (a *Attrs) Insert(fact AttrFact, attrSortBug bool) {
	if a.Inconsistent {
		return
	}
	for _, f := range a.List {
		if f.Nr == fact.Nr && f.Pos != fact.Pos && lessArgsCompare(f.Args, fact.Args) == 0 {
			a.Inconsistent = true
			return
		}
	}
	for _, f := range a.List {
		if equalFact(f, fact) {
			return
		}
	}
	a.List = append(a.List, fact)
	unique.Sort(sortableAttrs{list: &a.List, attrSortBug: attrSortBug})
}

// Has reports whether a Consistent bag contains a fact with the given
// predicate number and sign.
func (a *Attrs) Has(nr int, pos bool) (AttrFact, bool) {
	if a.Inconsistent {
		return AttrFact{}, false
	}
	for _, f := range a.List {
		if f.Nr == nr && f.Pos == pos {
			return f, true
		}
	}
	return AttrFact{}, false
}

// Merge inserts every fact of other into a, used when two equivalence
// classes (or a cluster consequent and a class) are combined.
func (a *Attrs) Merge(other Attrs, attrSortBug bool) {
	if other.Inconsistent {
		a.Inconsistent = true
		return
	}
	for _, f := range other.List {
		a.Insert(f, attrSortBug)
		if a.Inconsistent {
			return
		}
	}
}
