package permu

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Inversion is the inversion-vector encoding of a permutation of length n:
// a vector of n-1 entries where entry i counts the elements after position i
// that are smaller than the element at i. Entry i is always in [0, n-1-i].
type Inversion[T constraints.Unsigned] []T

// ZerosInversion returns an all-zero inversion vector of the given length.
func ZerosInversion[T constraints.Unsigned](length int) Inversion[T] {
	return make(Inversion[T], length)
}

// Encode fills inv with the inversion representation of p.
// The vector must be one entry shorter than the permutation.
func (inv Inversion[T]) Encode(p Permutation[T]) error {
	if len(p)-1 != len(inv) {
		return fmt.Errorf("%w: inversion length must be %d (got %d)", ErrLength, len(p)-1, len(inv))
	}
	for i := range inv {
		n := 0
		for j := i + 1; j < len(p); j++ {
			if p[i] > p[j] {
				n++
			}
		}
		inv[i] = toElem[T](n)
	}
	return nil
}

// Decode reconstructs into out the permutation encoded by inv: a shrinking
// identity list is kept, and step i places its inv[i]-th remaining element
// (with an implicit trailing 0 entry). It panics if an entry indexes past the
// remaining elements, which means inv was never a valid encoding.
func (inv Inversion[T]) Decode(out Permutation[T]) error {
	if len(out)-1 != len(inv) {
		return fmt.Errorf("%w: permutation length must be %d (got %d)", ErrLength, len(inv)+1, len(out))
	}
	rest := Identity[T](len(out))
	for i := range out {
		idx := 0
		if i < len(inv) {
			idx = int(uint64(inv[i]))
		}
		if idx >= len(rest) {
			panic(fmt.Sprintf("permu: inversion entry %d at position %d is not a valid encoding", idx, i))
		}
		out[i] = rest[idx]
		rest = append(rest[:idx], rest[idx+1:]...)
	}
	return nil
}
