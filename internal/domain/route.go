package domain

// ResolvedRoute is the ordered waypoint list produced by resolving a routine
// against the keypoint graph. It is immutable planning data: built once per
// routine invocation and owned by the execution controller until the run ends.
//
// Invariant: len(Coords) == len(SegmentDurations)+1 == len(SegmentDistancesM)+1.
type ResolvedRoute struct {
	Coords            []Point
	SegmentDurations  []float64 // seconds per hop
	SegmentDistancesM []float64 // meters per hop

	// Aggregates over all matched edges, rounded to 2 decimal places.
	TotalDistanceM float64
	TotalDurationS float64
	MeanDifficulty float64
}

// Segments returns the number of hops in the route.
func (r *ResolvedRoute) Segments() int {
	return len(r.SegmentDurations)
}

// RouteAnnouncement is the observer-facing description of a resolved routine,
// published when execution is accepted and before any motion is dispatched.
type RouteAnnouncement struct {
	RunID          string
	RoutineID      int
	Waypoints      []Point
	TotalDistanceM float64
	TotalDurationS float64
	MeanDifficulty float64
}
