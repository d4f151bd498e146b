// Package permu implements permutation vectors, their inversion and
// repeated-insertion-model (RIM) encodings, populations of such vectors, and
// the positional distribution engine used to learn from and sample new
// populations.
//
// All vector types are generic over a fixed-width unsigned element type.
// Shape violations are reported as recoverable errors; a value that does not
// fit the element type is a programming error and panics.
package permu

import (
	"fmt"
	"math/rand"

	"golang.org/x/exp/constraints"
)

// Permutation is an ordered sequence of distinct values covering [0, len).
type Permutation[T constraints.Unsigned] []T

// maxElem reports the largest value representable by T.
func maxElem[T constraints.Unsigned]() uint64 {
	return uint64(^T(0))
}

// toElem narrows a non-negative int to the element type. A value outside the
// type's range means the element type was too small for the configured
// length, which is a programmer error.
func toElem[T constraints.Unsigned](v int) T {
	if v < 0 || uint64(v) > maxElem[T]() {
		panic(fmt.Sprintf("permu: value %d does not fit element type", v))
	}
	return T(v)
}

// Identity returns the permutation [0,1,...,length-1].
// It panics if length-1 is not representable by T.
func Identity[T constraints.Unsigned](length int) Permutation[T] {
	p := make(Permutation[T], length)
	for i := range p {
		p[i] = toElem[T](i)
	}
	return p
}

// Random returns a uniformly random permutation of the given length, built
// by rejection sampling: values in [0,length) are drawn and appended only if
// not already present. It panics if length exceeds the range of T.
func Random[T constraints.Unsigned](length int, rng *rand.Rand) Permutation[T] {
	if length > 0 && uint64(length-1) > maxElem[T]() {
		panic(fmt.Sprintf("permu: cannot build a permutation of length %d with this element type", length))
	}
	p := make(Permutation[T], 0, length)
	for len(p) < length {
		v := T(rng.Intn(length))
		if !contains(p, v) {
			p = append(p, v)
		}
	}
	return p
}

// FromSlice validates seq and returns it as a Permutation.
func FromSlice[T constraints.Unsigned](seq []T) (Permutation[T], error) {
	p := Permutation[T](seq)
	if !p.IsPermutation() {
		return nil, fmt.Errorf("%w: %v", ErrNotPermutation, seq)
	}
	return p, nil
}

// IsPermutation reports whether every value of [0,len) occurs exactly once.
func (p Permutation[T]) IsPermutation() bool {
	seen := make([]bool, len(p))
	for _, v := range p {
		i := int(uint64(v))
		if i >= len(p) || seen[i] {
			return false
		}
		seen[i] = true
	}
	return true
}

// Invert fills out with the composition inverse of p: out[p[i]] = i.
func (p Permutation[T]) Invert(out Permutation[T]) error {
	if len(out) != len(p) {
		return fmt.Errorf("%w: inverse length must be %d (got %d)", ErrLength, len(p), len(out))
	}
	for i, v := range p {
		out[int(uint64(v))] = toElem[T](i)
	}
	return nil
}

// Clone returns a copy of p.
func (p Permutation[T]) Clone() Permutation[T] {
	c := make(Permutation[T], len(p))
	copy(c, p)
	return c
}

func contains[T constraints.Unsigned](vec []T, v T) bool {
	for _, x := range vec {
		if x == v {
			return true
		}
	}
	return false
}
