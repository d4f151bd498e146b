package bench

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalcIntStats(t *testing.T) {
	s := CalcIntStats([]int{4, 2, 6}, false)
	assert.Equal(t, 3, s.N)
	assert.Equal(t, 2, s.Best)
	assert.InDelta(t, 4.0, s.Mean, 1e-9)
	assert.InDelta(t, 2.0, s.Std, 1e-9)

	s = CalcIntStats([]int{4, 2, 6}, true)
	assert.Equal(t, 6, s.Best)
}

func TestCalcIntStatsDegenerate(t *testing.T) {
	assert.Equal(t, IntStats{}, CalcIntStats(nil, false))

	s := CalcIntStats([]int{7}, false)
	assert.Equal(t, 7, s.Best)
	assert.InDelta(t, 7.0, s.Mean, 1e-9)
	assert.Zero(t, s.Std)
}

func TestCalcFloatStats(t *testing.T) {
	s := CalcFloatStats([]float64{1.5, 0.5, 1.0})
	assert.Equal(t, 3, s.N)
	assert.InDelta(t, 0.5, s.Best, 1e-9)
	assert.InDelta(t, 1.0, s.Mean, 1e-9)
	assert.InDelta(t, 0.5, s.Std, 1e-9)
}
