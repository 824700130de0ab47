package term

import "github.com/cockroachdb/apd/v3"

// NewNumeral constructs a Numeral from a machine integer, used by the
// expander when unfolding a FlexAnd over a concrete range (spec §4.1).
func NewNumeral(n int64) Numeral {
	return Numeral{Value: apd.New(n, 0)}
}

// Int64 extracts a machine integer from n, reporting false if the value
// does not fit or is not an integer.
func (n Numeral) Int64() (int64, bool) {
	i, err := n.Value.Int64()
	return i, err == nil
}

// CompareNumeral gives a total order over Numeral values, falling back to
// a textual comparison if either value does not fit in an int64 (the open
// arithmetic hole, spec §9 "Numeric attributes").
func CompareNumeral(a, b Numeral) int {
	ai, aok := a.Int64()
	bi, bok := b.Int64()
	if aok && bok {
		switch {
		case ai < bi:
			return -1
		case ai > bi:
			return 1
		default:
			return 0
		}
	}
	as, bs := a.Value.String(), b.Value.String()
	switch {
	case as < bs:
		return -1
	case as > bs:
		return 1
	default:
		return 0
	}
}
