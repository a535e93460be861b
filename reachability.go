package optics

// ReachabilityDistance returns the reachability of an object from a core
// object: the larger of the core object's core distance and the distance
// between the two. An undefined (infinite) core distance yields an
// infinite reachability.
func ReachabilityDistance(coreDistance, distance DoubleDistance) DoubleDistance {
	return max(coreDistance, distance)
}
