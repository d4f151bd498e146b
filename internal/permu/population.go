package permu

import (
	"fmt"
	"math/rand"

	"golang.org/x/exp/constraints"
)

// PermuPopulation is an ordered collection of same-length permutations.
type PermuPopulation[T constraints.Unsigned] struct {
	Vectors []Permutation[T]
}

// InversionPopulation is an ordered collection of same-length inversion
// vectors.
type InversionPopulation[T constraints.Unsigned] struct {
	Vectors []Inversion[T]
}

// RimPopulation is an ordered collection of same-length RIM vectors.
type RimPopulation[T constraints.Unsigned] struct {
	Vectors []Rim[T]
}

// newBacking allocates size vectors of the given length over one contiguous
// backing array.
func newBacking[T constraints.Unsigned](size, length int) [][]T {
	backing := make([]T, size*length)
	vecs := make([][]T, size)
	for i := range vecs {
		vecs[i] = backing[i*length : (i+1)*length]
	}
	return vecs
}

// ZerosPermuPopulation returns a population of size all-zero vectors of the
// given length. The vectors are not permutations until filled.
func ZerosPermuPopulation[T constraints.Unsigned](size, length int) PermuPopulation[T] {
	vecs := newBacking[T](size, length)
	p := PermuPopulation[T]{Vectors: make([]Permutation[T], size)}
	for i := range p.Vectors {
		p.Vectors[i] = vecs[i]
	}
	return p
}

// IdentityPermuPopulation returns a population of size identity permutations.
func IdentityPermuPopulation[T constraints.Unsigned](size, length int) PermuPopulation[T] {
	p := ZerosPermuPopulation[T](size, length)
	for _, v := range p.Vectors {
		for i := range v {
			v[i] = toElem[T](i)
		}
	}
	return p
}

// RandomPermuPopulation returns a population of size uniformly random
// permutations of the given length.
func RandomPermuPopulation[T constraints.Unsigned](size, length int, rng *rand.Rand) PermuPopulation[T] {
	p := PermuPopulation[T]{Vectors: make([]Permutation[T], size)}
	for i := range p.Vectors {
		p.Vectors[i] = Random[T](length, rng)
	}
	return p
}

// PermuPopulationFromVectors builds a population from the given vectors.
// All vectors must share one length; the sequences are not checked for
// permutation validity.
func PermuPopulationFromVectors[T constraints.Unsigned](vecs [][]T) (PermuPopulation[T], error) {
	if err := sameLength(vecs); err != nil {
		return PermuPopulation[T]{}, err
	}
	p := PermuPopulation[T]{Vectors: make([]Permutation[T], len(vecs))}
	for i, v := range vecs {
		p.Vectors[i] = v
	}
	return p, nil
}

// ZerosInversionPopulation returns a population of size all-zero inversion
// vectors, which together encode a population of identity permutations.
func ZerosInversionPopulation[T constraints.Unsigned](size, length int) InversionPopulation[T] {
	vecs := newBacking[T](size, length)
	p := InversionPopulation[T]{Vectors: make([]Inversion[T], size)}
	for i := range p.Vectors {
		p.Vectors[i] = vecs[i]
	}
	return p
}

// InversionPopulationFromVectors builds a population from the given vectors.
func InversionPopulationFromVectors[T constraints.Unsigned](vecs [][]T) (InversionPopulation[T], error) {
	if err := sameLength(vecs); err != nil {
		return InversionPopulation[T]{}, err
	}
	p := InversionPopulation[T]{Vectors: make([]Inversion[T], len(vecs))}
	for i, v := range vecs {
		p.Vectors[i] = v
	}
	return p, nil
}

// ZerosRimPopulation returns a population of size all-zero RIM vectors.
func ZerosRimPopulation[T constraints.Unsigned](size, length int) RimPopulation[T] {
	vecs := newBacking[T](size, length)
	p := RimPopulation[T]{Vectors: make([]Rim[T], size)}
	for i := range p.Vectors {
		p.Vectors[i] = vecs[i]
	}
	return p
}

// RimPopulationFromVectors builds a population from the given vectors.
func RimPopulationFromVectors[T constraints.Unsigned](vecs [][]T) (RimPopulation[T], error) {
	if err := sameLength(vecs); err != nil {
		return RimPopulation[T]{}, err
	}
	p := RimPopulation[T]{Vectors: make([]Rim[T], len(vecs))}
	for i, v := range vecs {
		p.Vectors[i] = v
	}
	return p, nil
}

func sameLength[T constraints.Unsigned](vecs [][]T) error {
	if len(vecs) == 0 {
		return fmt.Errorf("%w: empty population", ErrLength)
	}
	length := len(vecs[0])
	for i, v := range vecs {
		if len(v) != length {
			return fmt.Errorf("%w: vector %d has length %d, want %d", ErrLength, i, len(v), length)
		}
	}
	return nil
}

// Size returns the number of vectors in the population.
func (p PermuPopulation[T]) Size() int { return len(p.Vectors) }

// Size returns the number of vectors in the population.
func (p InversionPopulation[T]) Size() int { return len(p.Vectors) }

// Size returns the number of vectors in the population.
func (p RimPopulation[T]) Size() int { return len(p.Vectors) }

// Learn builds the positional count distribution of the population.
// The population must not be empty.
func (p PermuPopulation[T]) Learn() *Distribution {
	return learn(PermuKind, asRaw(p.Vectors))
}

// Learn builds the positional count distribution of the population.
func (p InversionPopulation[T]) Learn() *Distribution {
	return learn(InversionKind, asRaw(p.Vectors))
}

// Learn builds the positional count distribution of the population.
func (p RimPopulation[T]) Learn() *Distribution {
	return learn(RimKind, asRaw(p.Vectors))
}

// Sample fills the population in place with permutations drawn from d,
// softening d first if it has not been softened yet. Values already placed
// in an individual are excluded from later draws, so every sampled vector is
// a permutation.
func (p *PermuPopulation[T]) Sample(d *Distribution, rng *rand.Rand) error {
	return sample(d, PermuKind, rng, asRaw(p.Vectors))
}

// Sample fills the population in place with inversion vectors drawn from d,
// softening d first if it has not been softened yet.
func (p *InversionPopulation[T]) Sample(d *Distribution, rng *rand.Rand) error {
	return sample(d, InversionKind, rng, asRaw(p.Vectors))
}

// Sample fills the population in place with RIM vectors drawn from d,
// softening d first if it has not been softened yet.
func (p *RimPopulation[T]) Sample(d *Distribution, rng *rand.Rand) error {
	return sample(d, RimKind, rng, asRaw(p.Vectors))
}

// ToPermus decodes every inversion vector into the matching slot of out.
// Population sizes and vector lengths must agree. A vector that is not a
// valid encoding panics, as in Inversion.Decode.
func (p InversionPopulation[T]) ToPermus(out *PermuPopulation[T]) error {
	if len(out.Vectors) != len(p.Vectors) {
		return fmt.Errorf("%w: population sizes %d and %d differ", ErrLength, len(p.Vectors), len(out.Vectors))
	}
	for i, inv := range p.Vectors {
		if err := inv.Decode(out.Vectors[i]); err != nil {
			return err
		}
	}
	return nil
}

// FromPermus encodes every permutation of src into the matching slot of p.
func (p *InversionPopulation[T]) FromPermus(src PermuPopulation[T]) error {
	if len(src.Vectors) != len(p.Vectors) {
		return fmt.Errorf("%w: population sizes %d and %d differ", ErrLength, len(p.Vectors), len(src.Vectors))
	}
	for i, perm := range src.Vectors {
		if err := p.Vectors[i].Encode(perm); err != nil {
			return err
		}
	}
	return nil
}

// ToPermus decodes every RIM vector into the matching slot of out.
func (p RimPopulation[T]) ToPermus(out *PermuPopulation[T]) error {
	if len(out.Vectors) != len(p.Vectors) {
		return fmt.Errorf("%w: population sizes %d and %d differ", ErrLength, len(p.Vectors), len(out.Vectors))
	}
	for i, r := range p.Vectors {
		if err := r.Decode(out.Vectors[i]); err != nil {
			return err
		}
	}
	return nil
}

// FromPermus encodes every permutation of src into the matching slot of p.
func (p *RimPopulation[T]) FromPermus(src PermuPopulation[T]) error {
	if len(src.Vectors) != len(p.Vectors) {
		return fmt.Errorf("%w: population sizes %d and %d differ", ErrLength, len(p.Vectors), len(src.Vectors))
	}
	for i, perm := range src.Vectors {
		if err := p.Vectors[i].Encode(perm); err != nil {
			return err
		}
	}
	return nil
}

// asRaw views a slice of named vector types as plain slices for the
// learn/sample engine.
func asRaw[S ~[]T, T constraints.Unsigned](vecs []S) [][]T {
	raw := make([][]T, len(vecs))
	for i, v := range vecs {
		raw[i] = v
	}
	return raw
}
