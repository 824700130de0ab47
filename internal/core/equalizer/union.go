package equalizer

import (
	"github.com/ayutac/mizar-go/internal/core/term"
	"github.com/ayutac/mizar-go/internal/errs"
)

// Union implements union_terms (spec §4.3 step 5): union-find merge of
// two classes. Per spec §5's ordering guarantee ("unions only merge from
// higher id into lower id"), the higher-numbered class is always merged
// into the lower-numbered one, so every merge is deterministic regardless
// of call order (spec §8 property 4).
func (e *Equalizer) Union(a, b ClassID) error {
	a, b = e.resolve(a), e.resolve(b)
	if a == b {
		return nil
	}
	lo, hi := a, b
	if hi < lo {
		lo, hi = hi, lo
	}
	return e.union(hi, lo)
}

// union merges the class named from into to ("every mark in from is
// retargeted, supercluster entries are re-inserted, every type is
// re-inserted" — spec §4.3 step 5). number disagreement between the two
// classes raises Unsat immediately.
func (e *Equalizer) union(from, to ClassID) error {
	fc := e.classes[from]
	tc := e.classes[to]
	if fc == nil || tc == nil || len(fc.Members) == 0 || len(tc.Members) == 0 {
		errs.Bug("equalizer: union of non-live classes %d, %d", from, to)
	}
	if fc.Number != nil && tc.Number != nil {
		if term.CompareNumeral(*fc.Number, *tc.Number) != 0 {
			return errs.NewUnsat("classes %d and %d carry disagreeing numerals", from, to)
		}
	} else if fc.Number != nil {
		tc.Number = fc.Number
	}

	for _, m := range fc.Members {
		e.marks[m].Owner = to
		tc.Members = append(tc.Members, m)
	}
	fc.Members = nil
	e.redirect[from] = to

	if err := e.mergeSuper(tc, fc.Super); err != nil {
		return err
	}
	for _, ty := range fc.Types {
		if err := e.InsertType(tc, ty); err != nil {
			return err
		}
	}

	e.clash = true
	return nil
}
