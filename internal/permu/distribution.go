package permu

import (
	"fmt"
	"math/rand"

	"golang.org/x/exp/constraints"
)

// Kind tags a Distribution with the vector representation it was learned
// from. A distribution may only be sampled into a population of the same
// representation.
type Kind int

const (
	PermuKind Kind = iota
	InversionKind
	RimKind
)

func (k Kind) String() string {
	switch k {
	case PermuKind:
		return "permutation"
	case InversionKind:
		return "inversion"
	case RimKind:
		return "rim"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Distribution is a positions × values matrix of non-negative counts learned
// from a population, plus a one-way soften flag. The first Sample call adds
// Laplace (+1) smoothing to the admissible region of the matrix and sets
// Soften; later calls leave the counts untouched.
type Distribution struct {
	Kind   Kind
	Counts [][]int
	Soften bool
}

// learn builds the count matrix for a population of encoded vectors. Rows
// are vector positions; permutation vectors of length n draw values from
// [0,n) while inversion/RIM vectors of length n-1 draw from [0,n), so the
// value axis is rows wide for PermuKind and rows+1 wide otherwise.
func learn[T constraints.Unsigned](kind Kind, vectors [][]T) *Distribution {
	rows := len(vectors[0])
	cols := rows
	if kind != PermuKind {
		cols = rows + 1
	}
	counts := make([][]int, rows)
	backing := make([]int, rows*cols)
	for i := range counts {
		counts[i] = backing[i*cols : (i+1)*cols]
	}
	for _, vec := range vectors {
		for pos, val := range vec {
			counts[pos][int(uint64(val))]++
		}
	}
	return &Distribution{Kind: kind, Counts: counts}
}

// admissible reports how many leading columns of row i can hold a
// structurally possible value: all of them for permutations, n-i for
// inversion vectors (entry i is at most n-1-i) and i+2 for RIM vectors
// (entry i is at most i+1). Columns beyond stay at zero weight.
func (d *Distribution) admissible(i int) int {
	switch d.Kind {
	case InversionKind:
		return len(d.Counts) + 1 - i
	case RimKind:
		return min(i+2, len(d.Counts)+1)
	default:
		return len(d.Counts[i])
	}
}

// soften applies add-one smoothing exactly once.
func (d *Distribution) soften() {
	if d.Soften {
		return
	}
	for i, row := range d.Counts {
		limit := d.admissible(i)
		for j := 0; j < limit; j++ {
			row[j]++
		}
	}
	d.Soften = true
}

// sample fills every vector of out with values drawn from d. Positions are
// visited in a fresh random order per individual so sampling order does not
// correlate with position. For PermuKind, values already placed in the
// individual are excluded from the draw; inversion/RIM values may repeat.
func sample[T constraints.Unsigned](d *Distribution, kind Kind, rng *rand.Rand, out [][]T) error {
	if len(out) == 0 {
		return nil
	}
	if len(d.Counts) != len(out[0]) {
		return fmt.Errorf("%w: distribution has %d positions, population vectors have %d", ErrLength, len(d.Counts), len(out[0]))
	}
	if d.Kind != kind {
		return fmt.Errorf("%w: have %s, want %s", ErrDistrType, d.Kind, kind)
	}
	d.soften()

	length := len(d.Counts)
	var used []bool
	if kind == PermuKind {
		used = make([]bool, length)
	}
	for vi := range out {
		for i := range used {
			used[i] = false
		}
		for _, pos := range rng.Perm(length) {
			v := drawWeighted(d.Counts[pos], used, rng)
			out[vi][pos] = toElem[T](v)
			if used != nil {
				used[v] = true
			}
		}
	}
	return nil
}

// drawWeighted picks one column index of row by weighted random choice,
// skipping excluded values: a uniform real in [0, total) is drawn and the
// cumulative sum of eligible weights is walked until it exceeds the draw.
func drawWeighted(row []int, excluded []bool, rng *rand.Rand) int {
	total := 0
	for v, w := range row {
		if excluded != nil && excluded[v] {
			continue
		}
		total += w
	}
	r := rng.Float64() * float64(total)

	sum := 0
	last := -1
	for v, w := range row {
		if excluded != nil && excluded[v] || w == 0 {
			continue
		}
		sum += w
		last = v
		if float64(sum) > r {
			return v
		}
	}
	if last < 0 {
		panic("permu: no eligible value to sample")
	}
	return last
}
