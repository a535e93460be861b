package optics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReachabilityDistance_3Points(t *testing.T) {
	// 3 points: (0,0), (3,0), (0,4) -- distances: d01=3, d02=4, d12=5
	// Core distances with MinPts=2: [3, 3, 4]
	dist := [3][3]DoubleDistance{
		{0, 3, 4},
		{3, 0, 5},
		{4, 5, 0},
	}
	core := []DoubleDistance{3, 3, 4}

	// reach[p][o] = max(core[p], dist[p][o])
	expected := [3][3]DoubleDistance{
		{3, 3, 4},
		{3, 3, 5},
		{4, 5, 4},
	}
	for p := 0; p < 3; p++ {
		for o := 0; o < 3; o++ {
			assert.Equal(t, expected[p][o], ReachabilityDistance(core[p], dist[p][o]), "reach[%d][%d]", p, o)
		}
	}
}

func TestReachabilityDistance_NotSymmetric(t *testing.T) {
	// Unlike the distance, reachability depends on which side is the core object.
	assert.Equal(t, DoubleDistance(3), ReachabilityDistance(3, 1))
	assert.Equal(t, DoubleDistance(7), ReachabilityDistance(7, 1))
}

func TestReachabilityDistance_Undefined(t *testing.T) {
	assert.True(t, ReachabilityDistance(InfiniteDistance, 1).IsInfinite())
	assert.True(t, ReachabilityDistance(2, InfiniteDistance).IsInfinite())
	assert.Equal(t, DoubleDistance(5), ReachabilityDistance(3, 5))
	assert.Zero(t, ReachabilityDistance(0, 0))
}
