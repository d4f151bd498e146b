package permu

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentity(t *testing.T) {
	assert.Equal(t, Permutation[uint8]{0, 1, 2, 3, 4}, Identity[uint8](5))
	assert.Empty(t, Identity[uint8](0))
}

func TestRandomIsPermutation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		p := Random[uint8](40, rng)
		require.Len(t, p, 40)
		require.True(t, p.IsPermutation())
	}
}

func TestRandomSizes(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for n := 1; n <= 64; n++ {
		p := Random[uint16](n, rng)
		require.True(t, p.IsPermutation(), "length %d", n)
	}
}

func TestRandomPanicsOnTooSmallElementType(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	assert.Panics(t, func() { Random[uint8](300, rng) })
}

func TestFromSlice(t *testing.T) {
	p, err := FromSlice([]uint8{0, 3, 2, 1})
	require.NoError(t, err)
	assert.Equal(t, Permutation[uint8]{0, 3, 2, 1}, p)

	for _, bad := range [][]uint8{
		{1, 2, 3},    // missing 0
		{0, 1, 4, 3}, // out of range
		{0, 1, 1, 3}, // duplicate
	} {
		_, err := FromSlice(bad)
		assert.ErrorIs(t, err, ErrNotPermutation, "%v", bad)
	}
}

func TestIsPermutation(t *testing.T) {
	assert.True(t, Permutation[uint8]{0}.IsPermutation())
	assert.True(t, Permutation[uint8]{2, 0, 1}.IsPermutation())
	assert.False(t, Permutation[uint8]{2, 2, 1}.IsPermutation())
	assert.False(t, Permutation[uint8]{3, 0, 1}.IsPermutation())
}

func TestInvert(t *testing.T) {
	p := Permutation[uint8]{2, 0, 3, 1}
	inv := make(Permutation[uint8], 4)
	require.NoError(t, p.Invert(inv))
	assert.Equal(t, Permutation[uint8]{1, 3, 0, 2}, inv)

	// Inverting twice restores the original.
	back := make(Permutation[uint8], 4)
	require.NoError(t, inv.Invert(back))
	assert.Equal(t, p, back)

	err := p.Invert(make(Permutation[uint8], 3))
	assert.ErrorIs(t, err, ErrLength)
}

func TestClone(t *testing.T) {
	p := Permutation[uint16]{1, 0, 2}
	c := p.Clone()
	c[0] = 2
	assert.Equal(t, Permutation[uint16]{1, 0, 2}, p)
}
