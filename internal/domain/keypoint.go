package domain

// Point is an integer coordinate in the map's image space.
// The Y axis grows downward, as in the source imagery the map was traced from.
type Point struct {
	X int
	Y int
}

// MapEdge is one directed edge of the keypoint graph.
// Edges are immutable once loaded; the store never mutates them after startup.
// The (SrcID, DstID, Code) triple identifies an edge for resolution but is not
// guaranteed unique in storage.
type MapEdge struct {
	SrcID       int
	SrcCoord    Point
	DstID       int
	DstCoord    Point
	Difficulty  float64 // 0.0 (trivial) to 5.0 (hardest)
	Code        int     // trajectory code disambiguating parallel edges
	Description string
	DistanceCM  float64
	DurationS   float64
}

// Stop is one entry of a routine definition: a landmark to visit and the
// trajectory code selecting which outgoing edge to take from it.
type Stop struct {
	NodeID int
	Code   int
}
