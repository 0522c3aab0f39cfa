package gen

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRandomModel_ValidAcrossSeedsAndDepths(t *testing.T) {
	for _, depth := range []int{1, 2, 3, 4} {
		for seed := int64(0); seed < 10; seed++ {
			rng := rand.New(rand.NewSource(seed))
			m, err := RandomModel(rng, depth)
			require.NoError(t, err)
			require.NotNil(t, m)
			require.GreaterOrEqual(t, m.NumLeaves(), 1)
		}
	}
}

func TestRandomModel_RespectsScaleRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	m, err := RandomModel(rng, 3, WithScaleRange(2, 2))
	require.NoError(t, err)
	for _, a := range m.Attributes {
		require.Equal(t, 2, a.Scale.Size())
	}
}

func TestRandomModel_RespectsChildRange(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	m, err := RandomModel(rng, 3, WithChildRange(2, 2))
	require.NoError(t, err)
	for _, a := range m.Attributes {
		if !a.IsLeaf() {
			require.Len(t, a.Children, 2)
		}
	}
}

func TestRandomModel_NilRand(t *testing.T) {
	_, err := RandomModel(nil, 2)
	require.ErrorIs(t, err, ErrNeedRandSource)
}

func TestRandomModel_BadDepth(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	_, err := RandomModel(rng, 0)
	require.ErrorIs(t, err, ErrBadDepth)
}

func TestRandomModel_MaxDepthFour(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	m, err := RandomModel(rng, 4)
	require.NoError(t, err)
	require.NotNil(t, m.Root())
}
