package kappa

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCalculator_BadClassCount(t *testing.T) {
	_, err := NewCalculator(0)
	require.ErrorIs(t, err, ErrBadClassCount)
}

func TestCalculator_IdenticalNonConstant(t *testing.T) {
	c, err := NewCalculator(4)
	require.NoError(t, err)
	x := []int8{0, 1, 2, 3, 1, 2}

	for _, w := range []Weight{Linear, Squared} {
		k, err := c.Compute(x, x, w)
		require.NoError(t, err)
		require.InDelta(t, 1.0, k, 1e-9)
	}
}

func TestCalculator_ConstantIdentical(t *testing.T) {
	c, err := NewCalculator(3)
	require.NoError(t, err)
	x := []int8{1, 1, 1, 1}
	k, err := c.Squared(x, x)
	require.NoError(t, err)
	require.Equal(t, 1.0, k)
}

func TestCalculator_LengthMismatch(t *testing.T) {
	c, _ := NewCalculator(2)
	_, err := c.Linear([]int8{0}, []int8{0, 1})
	require.ErrorIs(t, err, ErrLengthMismatch)
}

func TestCalculator_Empty(t *testing.T) {
	c, _ := NewCalculator(2)
	_, err := c.Linear(nil, nil)
	require.ErrorIs(t, err, ErrEmpty)
}

func TestCalculator_LessThanOrEqualOne(t *testing.T) {
	c, err := NewCalculator(4)
	require.NoError(t, err)
	obs := []int8{0, 1, 2, 3, 0, 1, 2, 3}
	sim := []int8{3, 2, 1, 0, 0, 1, 2, 3}

	k, err := c.Squared(obs, sim)
	require.NoError(t, err)
	require.LessOrEqual(t, k, 1.0+1e-9)
}

func TestCalculator_WeightSymmetry(t *testing.T) {
	// Both weightings are symmetric in i/j: W[i,j]=W[j,i] is an arithmetic
	// identity of |i-j| and (i-j)^2, checked directly here over a 5x5 grid.
	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			require.Equal(t, math.Abs(float64(i-j)), math.Abs(float64(j-i)))
			require.Equal(t, float64(i-j)*float64(i-j), float64(j-i)*float64(j-i))
		}
	}
}

func TestCalculator_ReuseAcrossCalls(t *testing.T) {
	c, err := NewCalculator(3)
	require.NoError(t, err)

	k1, err := c.Squared([]int8{0, 1, 2}, []int8{0, 1, 2})
	require.NoError(t, err)
	require.Equal(t, 1.0, k1)

	// Every weighted cell is (0,2) in both observed and expected, so the
	// ratio is exactly 1 and kappa is exactly 0.
	k2, err := c.Squared([]int8{0, 0, 0}, []int8{2, 2, 2})
	require.NoError(t, err)
	require.Equal(t, 0.0, k2)
}
