package permu

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRimDecode(t *testing.T) {
	r := Rim[uint8]{0, 2, 2}
	out := make(Permutation[uint8], 4)
	require.NoError(t, r.Decode(out))
	assert.Equal(t, Permutation[uint8]{1, 0, 3, 2}, out)
}

func TestRimEncode(t *testing.T) {
	p := Permutation[uint8]{1, 0, 3, 2}
	r := ZerosRim[uint8](3)
	require.NoError(t, r.Encode(p))
	assert.Equal(t, Rim[uint8]{0, 2, 2}, r)
}

func TestRimRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for n := 2; n <= 50; n++ {
		for i := 0; i < 20; i++ {
			p := Random[uint8](n, rng)
			r := ZerosRim[uint8](n - 1)
			require.NoError(t, r.Encode(p))
			out := make(Permutation[uint8], n)
			require.NoError(t, r.Decode(out))
			require.Equal(t, p, out, "length %d", n)
		}
	}
}

func TestRimRoundTripVectorSide(t *testing.T) {
	// encode(decode(v)) == v whenever v[i] <= i+1.
	rng := rand.New(rand.NewSource(12))
	for trial := 0; trial < 100; trial++ {
		r := make(Rim[uint8], 9)
		for i := range r {
			r[i] = uint8(rng.Intn(i + 2))
		}
		p := make(Permutation[uint8], 10)
		require.NoError(t, r.Decode(p))
		back := ZerosRim[uint8](9)
		require.NoError(t, back.Encode(p))
		require.Equal(t, r, back)
	}
}

func TestRimDecodeClampsOutOfRangeIndex(t *testing.T) {
	// Element 1 can only go to index 0 or 1; an index of 9 is clamped to the
	// current sequence length instead of failing.
	r := Rim[uint8]{9, 0, 0}
	out := make(Permutation[uint8], 4)
	require.NoError(t, r.Decode(out))
	assert.True(t, out.IsPermutation())
	assert.Equal(t, Permutation[uint8]{3, 2, 0, 1}, out)
}

func TestRimLengthErrors(t *testing.T) {
	err := ZerosRim[uint8](2).Encode(Identity[uint8](4))
	assert.ErrorIs(t, err, ErrLength)

	err = ZerosRim[uint8](3).Decode(make(Permutation[uint8], 3))
	assert.ErrorIs(t, err, ErrLength)
}

func TestRimRandomTenRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	p := Random[uint16](10, rng)
	r := ZerosRim[uint16](9)
	require.NoError(t, r.Encode(p))
	out := make(Permutation[uint16], 10)
	require.NoError(t, r.Decode(out))
	assert.Equal(t, p, out)
}
