package permu

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZerosInversionPopulationDecodesToIdentity(t *testing.T) {
	const size, length = 20, 10

	invs := ZerosInversionPopulation[uint8](size, length-1)
	out := ZerosPermuPopulation[uint8](size, length)
	require.NoError(t, invs.ToPermus(&out))

	want := IdentityPermuPopulation[uint8](size, length)
	assert.Equal(t, want.Vectors, out.Vectors)
}

func TestInversionPopulationFromPermus(t *testing.T) {
	const size, length = 5, 4

	permus := IdentityPermuPopulation[uint8](size, length)
	invs := ZerosInversionPopulation[uint8](size, length-1)
	// Scribble over the vectors so the encode has to overwrite them.
	for _, v := range invs.Vectors {
		v[0] = 1
	}
	require.NoError(t, invs.FromPermus(permus))
	assert.Equal(t, ZerosInversionPopulation[uint8](size, length-1).Vectors, invs.Vectors)
}

func TestRimPopulationRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	const size, length = 8, 12

	src := RandomPermuPopulation[uint16](size, length, rng)
	rims := ZerosRimPopulation[uint16](size, length-1)
	require.NoError(t, rims.FromPermus(src))

	back := ZerosPermuPopulation[uint16](size, length)
	require.NoError(t, rims.ToPermus(&back))
	assert.Equal(t, src.Vectors, back.Vectors)
}

func TestPopulationFromVectorsRejectsRagged(t *testing.T) {
	_, err := InversionPopulationFromVectors([][]uint16{
		{0, 2, 0, 0},
		{1, 0, 0},
		{0, 0, 0, 0},
	})
	assert.ErrorIs(t, err, ErrLength)

	_, err = PermuPopulationFromVectors[uint16](nil)
	assert.ErrorIs(t, err, ErrLength)
}

func TestPopulationSizeMismatch(t *testing.T) {
	invs := ZerosInversionPopulation[uint8](3, 4)
	out := ZerosPermuPopulation[uint8](2, 5)
	assert.ErrorIs(t, invs.ToPermus(&out), ErrLength)

	rims := ZerosRimPopulation[uint8](3, 4)
	assert.ErrorIs(t, rims.FromPermus(ZerosPermuPopulation[uint8](4, 5)), ErrLength)
}

func TestRandomPermuPopulation(t *testing.T) {
	rng := rand.New(rand.NewSource(22))
	pop := RandomPermuPopulation[uint8](15, 7, rng)
	require.Equal(t, 15, pop.Size())
	for _, v := range pop.Vectors {
		require.True(t, v.IsPermutation())
	}
}

func TestLearnSampleGenerationCycle(t *testing.T) {
	// One full generate-learn-sample-decode cycle over the inversion
	// representation, as the EDA loop runs it.
	rng := rand.New(rand.NewSource(23))
	const size, length = 25, 9

	permus := RandomPermuPopulation[uint8](size, length, rng)
	invs := ZerosInversionPopulation[uint8](size, length-1)
	require.NoError(t, invs.FromPermus(permus))

	d := invs.Learn()
	sampled := ZerosInversionPopulation[uint8](size, length-1)
	require.NoError(t, sampled.Sample(d, rng))

	next := ZerosPermuPopulation[uint8](size, length)
	require.NoError(t, sampled.ToPermus(&next))
	for _, v := range next.Vectors {
		require.True(t, v.IsPermutation())
	}
}
