package services

import (
	"errors"
	"math"

	"routine-planner-service/internal/domain"
)

// Resolve a routine (ordered stops) into a waypoint list with per-segment
// timing by walking the keypoint graph.
//
// For each consecutive pair of stops, the matching edge has
// SrcID == stops[i].NodeID, DstID == stops[i+1].NodeID and
// Code == stops[i].Code. When several edges match, the last one in storage
// order wins, so operator overrides appended later in the map file take
// effect without editing earlier rows.
//
// A hop with no matching edge fails the whole resolution with
// NoTrajectoryFoundError; anything accumulated so far is discarded.
func Resolve(stops []domain.Stop, edges []domain.MapEdge) (*domain.ResolvedRoute, error) {
	if len(stops) < 2 {
		return nil, errors.New("resolve route: need at least 2 stops")
	}

	route := &domain.ResolvedRoute{
		Coords:            make([]domain.Point, 0, len(stops)),
		SegmentDurations:  make([]float64, 0, len(stops)-1),
		SegmentDistancesM: make([]float64, 0, len(stops)-1),
	}

	var (
		totalDistanceM float64
		totalDuration  float64
		difficultySum  float64
	)

	for i := 0; i < len(stops)-1; i++ {
		var match *domain.MapEdge
		for j := range edges {
			e := &edges[j]
			if e.SrcID == stops[i].NodeID && e.DstID == stops[i+1].NodeID && e.Code == stops[i].Code {
				match = e
			}
		}
		if match == nil {
			return nil, &NoTrajectoryFoundError{From: stops[i].NodeID, To: stops[i+1].NodeID}
		}

		if len(route.Coords) == 0 {
			route.Coords = append(route.Coords, match.SrcCoord)
		}
		route.Coords = append(route.Coords, match.DstCoord)
		route.SegmentDurations = append(route.SegmentDurations, match.DurationS)
		route.SegmentDistancesM = append(route.SegmentDistancesM, match.DistanceCM/100)

		totalDuration += match.DurationS
		totalDistanceM += match.DistanceCM / 100
		difficultySum += match.Difficulty
	}

	segments := float64(len(route.SegmentDurations))
	route.TotalDistanceM = round2(totalDistanceM)
	route.TotalDurationS = round2(totalDuration)
	route.MeanDifficulty = round2(difficultySum / segments)

	return route, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
