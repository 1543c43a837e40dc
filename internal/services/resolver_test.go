package services

import (
	"errors"
	"testing"

	"routine-planner-service/internal/domain"
)

func TestResolveSingleSegment(t *testing.T) {
	edges := []domain.MapEdge{
		{
			SrcID: 1, SrcCoord: domain.Point{X: 0, Y: 0},
			DstID: 2, DstCoord: domain.Point{X: 100, Y: 0},
			Difficulty: 1.0, Code: 0, DistanceCM: 100, DurationS: 10,
		},
	}
	stops := []domain.Stop{{NodeID: 1, Code: 0}, {NodeID: 2, Code: 0}}

	route, err := Resolve(stops, edges)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantCoords := []domain.Point{{X: 0, Y: 0}, {X: 100, Y: 0}}
	if len(route.Coords) != len(wantCoords) {
		t.Fatalf("coords = %v, want %v", route.Coords, wantCoords)
	}
	for i, c := range wantCoords {
		if route.Coords[i] != c {
			t.Fatalf("coords[%d] = %v, want %v", i, route.Coords[i], c)
		}
	}

	if len(route.SegmentDurations) != 1 || route.SegmentDurations[0] != 10.0 {
		t.Fatalf("segment durations = %v, want [10]", route.SegmentDurations)
	}
	if route.SegmentDistancesM[0] != 1.0 {
		t.Fatalf("segment distance = %v, want 1.0 m", route.SegmentDistancesM[0])
	}
}

func TestResolveAggregates(t *testing.T) {
	edges := []domain.MapEdge{
		{SrcID: 1, DstID: 2, Code: 0, DstCoord: domain.Point{X: 10, Y: 0}, Difficulty: 1.0, DistanceCM: 150, DurationS: 8},
		{SrcID: 2, DstID: 3, Code: 0, DstCoord: domain.Point{X: 10, Y: 10}, Difficulty: 2.0, DistanceCM: 50, DurationS: 4.5},
	}
	stops := []domain.Stop{{NodeID: 1, Code: 0}, {NodeID: 2, Code: 0}, {NodeID: 3, Code: 0}}

	route, err := Resolve(stops, edges)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := len(route.Coords); got != len(route.SegmentDurations)+1 {
		t.Fatalf("len(coords) = %d, want len(durations)+1 = %d", got, len(route.SegmentDurations)+1)
	}
	if route.TotalDistanceM != 2.0 {
		t.Errorf("total distance = %v, want 2.0", route.TotalDistanceM)
	}
	if route.TotalDurationS != 12.5 {
		t.Errorf("total duration = %v, want 12.5", route.TotalDurationS)
	}
	if route.MeanDifficulty != 1.5 {
		t.Errorf("mean difficulty = %v, want 1.5", route.MeanDifficulty)
	}
}

func TestResolveTrajectoryCodeSelectsEdge(t *testing.T) {
	edges := []domain.MapEdge{
		{SrcID: 1, DstID: 2, Code: 0, DstCoord: domain.Point{X: 10, Y: 0}, DurationS: 5},
		{SrcID: 1, DstID: 2, Code: 1, DstCoord: domain.Point{X: 10, Y: 0}, DurationS: 9},
	}
	stops := []domain.Stop{{NodeID: 1, Code: 1}, {NodeID: 2, Code: 0}}

	route, err := Resolve(stops, edges)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if route.SegmentDurations[0] != 9 {
		t.Fatalf("duration = %v, want the code=1 edge's 9", route.SegmentDurations[0])
	}
}

// Duplicate (src, dst, code) triples are legal in storage; the last one wins
// so operator overrides appended later in the map file take effect.
func TestResolveDuplicateEdgeLastWins(t *testing.T) {
	edges := []domain.MapEdge{
		{SrcID: 1, DstID: 2, Code: 0, DstCoord: domain.Point{X: 10, Y: 0}, DurationS: 5},
		{SrcID: 1, DstID: 2, Code: 0, DstCoord: domain.Point{X: 20, Y: 0}, DurationS: 7},
	}
	stops := []domain.Stop{{NodeID: 1, Code: 0}, {NodeID: 2, Code: 0}}

	route, err := Resolve(stops, edges)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if route.Coords[1] != (domain.Point{X: 20, Y: 0}) {
		t.Fatalf("coords[1] = %v, want the later edge's (20,0)", route.Coords[1])
	}
	if route.SegmentDurations[0] != 7 {
		t.Fatalf("duration = %v, want 7", route.SegmentDurations[0])
	}
}

func TestResolveNoTrajectoryFound(t *testing.T) {
	edges := []domain.MapEdge{
		{SrcID: 1, DstID: 2, Code: 0, DstCoord: domain.Point{X: 10, Y: 0}, DurationS: 5},
	}
	stops := []domain.Stop{{NodeID: 1, Code: 0}, {NodeID: 2, Code: 0}, {NodeID: 9, Code: 0}}

	route, err := Resolve(stops, edges)
	if route != nil {
		t.Fatalf("expected no partial route, got %+v", route)
	}

	var notFound *NoTrajectoryFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NoTrajectoryFoundError, got %v", err)
	}
	if notFound.From != 2 || notFound.To != 9 {
		t.Fatalf("error hop = %d->%d, want 2->9", notFound.From, notFound.To)
	}
}

func TestResolveNeedsTwoStops(t *testing.T) {
	if _, err := Resolve([]domain.Stop{{NodeID: 1}}, nil); err == nil {
		t.Fatal("expected error for a single-stop routine")
	}
}
