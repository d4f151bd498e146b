package permu

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Rim is the repeated-insertion-model encoding of a permutation of length n:
// a vector of n-1 entries where entry e-1 records the index at which element
// e is inserted into a sequence that starts as [0]. Entry e-1 is in [0, e].
type Rim[T constraints.Unsigned] []T

// ZerosRim returns an all-zero RIM vector of the given length.
func ZerosRim[T constraints.Unsigned](length int) Rim[T] {
	return make(Rim[T], length)
}

// Encode fills r with the RIM representation of p. Elements n-1 down to 1 are
// located in a shrinking copy of p; their index at removal time is the
// insertion index that reconstructs p.
func (r Rim[T]) Encode(p Permutation[T]) error {
	if len(p) != len(r)+1 {
		return fmt.Errorf("%w: permutation length must be %d (got %d)", ErrLength, len(r)+1, len(p))
	}
	work := p.Clone()
	for e := len(p) - 1; e >= 1; e-- {
		elem := toElem[T](e)
		idx := -1
		for i, v := range work {
			if v == elem {
				idx = i
				break
			}
		}
		if idx < 0 {
			panic(fmt.Sprintf("permu: element %d missing, input is not a permutation", e))
		}
		r[e-1] = toElem[T](idx)
		work = append(work[:idx], work[idx+1:]...)
	}
	return nil
}

// Decode reconstructs into out the permutation encoded by r: starting from
// [0], element e is inserted at index r[e-1]. An index past the current
// sequence length is clamped to it, so out-of-range entries of sampled
// vectors still decode to a valid permutation.
func (r Rim[T]) Decode(out Permutation[T]) error {
	if len(out) != len(r)+1 {
		return fmt.Errorf("%w: permutation length must be %d (got %d)", ErrLength, len(r)+1, len(out))
	}
	seq := make([]T, 1, len(out))
	seq[0] = 0
	for e := 1; e < len(out); e++ {
		idx := int(uint64(r[e-1]))
		if idx > len(seq) {
			idx = len(seq)
		}
		seq = append(seq, 0)
		copy(seq[idx+1:], seq[idx:])
		seq[idx] = toElem[T](e)
	}
	copy(out, seq)
	return nil
}
