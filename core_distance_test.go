package optics

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Points: (0,0), (3,0), (0,4) -- distances: d01=3, d02=4, d12=5
func threePoints(t *testing.T) []*DoubleVector {
	t.Helper()
	return []*DoubleVector{vec(t, 0, 0, 0), vec(t, 1, 3, 0), vec(t, 2, 0, 4)}
}

func TestCoreDistances_3Points(t *testing.T) {
	objs := threePoints(t)
	idx := newTestTree(t, DefaultIndexConfig(), objs)

	tests := []struct {
		minPts int
		want   []DoubleDistance
	}{
		// The object itself is its own first neighbor.
		{1, []DoubleDistance{0, 0, 0}},
		{2, []DoubleDistance{3, 3, 4}},
		{3, []DoubleDistance{4, 5, 5}},
		{4, []DoubleDistance{InfiniteDistance, InfiniteDistance, InfiniteDistance}},
	}
	for _, tc := range tests {
		core, err := CoreDistances[*DoubleVector](context.Background(), idx, objs, tc.minPts, InfiniteDistance, euclid(), 2)
		require.NoError(t, err)
		for i := range objs {
			assert.Equal(t, tc.want[i], core[i], "minPts=%d core[%d]", tc.minPts, i)
		}
	}
}

func TestCoreDistances_EpsilonCutoff(t *testing.T) {
	objs := threePoints(t)
	idx := newTestTree(t, DefaultIndexConfig(), objs)

	core, err := CoreDistances[*DoubleVector](context.Background(), idx, objs, 2, 3.5, euclid(), 1)
	require.NoError(t, err)
	assert.Equal(t, DoubleDistance(3), core[0])
	assert.Equal(t, DoubleDistance(3), core[1])
	assert.True(t, core[2].IsInfinite())
}

func TestCoreDistances_IdenticalPoints(t *testing.T) {
	objs := []*DoubleVector{vec(t, 0, 1, 1), vec(t, 1, 1, 1), vec(t, 2, 1, 1)}
	idx := newTestTree(t, DefaultIndexConfig(), objs)

	core, err := CoreDistances[*DoubleVector](context.Background(), idx, objs, 3, InfiniteDistance, euclid(), 1)
	require.NoError(t, err)
	for i := range core {
		assert.Zero(t, core[i])
	}
}

func TestCoreDistances_MatchClusterOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(91))
	objs := randomVectors(t, rng, 200, 2, 0)
	idx := newTestTree(t, DefaultIndexConfig(), objs)
	df := euclid()

	for _, eps := range []DoubleDistance{InfiniteDistance, 6} {
		order, err := OPTICS[*DoubleVector](idx, objs, Config{Epsilon: eps, MinPts: 4})
		require.NoError(t, err)
		fromOrder := map[DBID]DoubleDistance{}
		for i, e := range order.Entries {
			fromOrder[e.ID()] = order.CoreDistances[i]
		}

		core, err := CoreDistances[*DoubleVector](context.Background(), idx, objs, 4, eps, df, 4)
		require.NoError(t, err)
		require.Len(t, core, len(objs))
		for i, o := range objs {
			assert.Equal(t, fromOrder[o.ID()], core[i], "object %d eps=%v", o.ID(), eps)
		}
	}
}

func TestCoreDistances_Errors(t *testing.T) {
	objs := []*DoubleVector{vec(t, 1, 0, 0)}
	idx := newTestTree(t, DefaultIndexConfig(), objs)

	_, err := CoreDistances[*DoubleVector](context.Background(), idx, objs, 0, InfiniteDistance, euclid(), 1)
	assert.Error(t, err)

	// Fewer objects than minPts: undefined core distance.
	core, err := CoreDistances[*DoubleVector](context.Background(), idx, objs, 2, InfiniteDistance, euclid(), 1)
	require.NoError(t, err)
	assert.True(t, core[0].IsInfinite())
}

func TestCoreDistance_SortedNeighbors(t *testing.T) {
	nb := []QueryResult{{ID: 1, Distance: 0}, {ID: 2, Distance: 1}, {ID: 3, Distance: 4}}
	assert.Equal(t, DoubleDistance(0), coreDistance(nb, 1))
	assert.Equal(t, DoubleDistance(4), coreDistance(nb, 3))
	assert.True(t, coreDistance(nb, 4).IsInfinite())
	assert.True(t, coreDistance(nb, 0).IsInfinite())
	assert.True(t, coreDistance(nil, 1).IsInfinite())
}
