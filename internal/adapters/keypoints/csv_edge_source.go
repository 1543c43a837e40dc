// Package keypoints provides the adapters that load the keypoint graph:
// a CSV file source (the map as traced by operators) and a database/sql
// repository for deployments that serve the map from a SQL table.
package keypoints

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"routine-planner-service/internal/domain"
	"routine-planner-service/internal/ports"
)

// Column layout of key_points.csv, header row skipped.
const (
	colSrcID = iota
	colSrcX
	colSrcY
	colDstID
	colDstX
	colDstY
	colDifficulty
	colCode
	colDescription
	colDistance
	colTime
	columnCount
)

// CSVEdgeSource loads map edges from a key_points.csv file.
type CSVEdgeSource struct {
	Path string
}

func NewCSVEdgeSource(path string) *CSVEdgeSource {
	return &CSVEdgeSource{Path: path}
}

// LoadEdges reads the whole file. A missing file is a configuration problem
// (wrapping ports.ErrConfigurationMissing), not a crash.
func (s *CSVEdgeSource) LoadEdges(ctx context.Context) ([]domain.MapEdge, error) {
	if _, err := os.Stat(s.Path); err != nil {
		return nil, fmt.Errorf("load keypoints %q: %w", s.Path, ports.ErrConfigurationMissing)
	}

	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("load keypoints %q: %w", s.Path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("load keypoints %q: parse csv: %w", s.Path, err)
	}

	edges := make([]domain.MapEdge, 0, len(records))
	for i, rec := range records {
		if i == 0 {
			continue // header
		}
		edge, err := parseEdge(rec)
		if err != nil {
			return nil, fmt.Errorf("load keypoints %q: row %d: %w", s.Path, i+1, err)
		}
		edges = append(edges, edge)
	}

	return edges, nil
}

func parseEdge(rec []string) (domain.MapEdge, error) {
	if len(rec) != columnCount {
		return domain.MapEdge{}, fmt.Errorf("want %d columns, got %d", columnCount, len(rec))
	}

	ints := make([]int, 6)
	for i, col := range []int{colSrcID, colSrcX, colSrcY, colDstID, colDstX, colDstY} {
		n, err := strconv.Atoi(rec[col])
		if err != nil {
			return domain.MapEdge{}, fmt.Errorf("column %d: %w", col+1, err)
		}
		ints[i] = n
	}

	difficulty, err := strconv.ParseFloat(rec[colDifficulty], 64)
	if err != nil {
		return domain.MapEdge{}, fmt.Errorf("difficulty: %w", err)
	}
	code, err := strconv.Atoi(rec[colCode])
	if err != nil {
		return domain.MapEdge{}, fmt.Errorf("trajectory code: %w", err)
	}
	distance, err := strconv.ParseFloat(rec[colDistance], 64)
	if err != nil {
		return domain.MapEdge{}, fmt.Errorf("distance: %w", err)
	}
	duration, err := strconv.ParseFloat(rec[colTime], 64)
	if err != nil {
		return domain.MapEdge{}, fmt.Errorf("time: %w", err)
	}

	return domain.MapEdge{
		SrcID:       ints[0],
		SrcCoord:    domain.Point{X: ints[1], Y: ints[2]},
		DstID:       ints[3],
		DstCoord:    domain.Point{X: ints[4], Y: ints[5]},
		Difficulty:  difficulty,
		Code:        code,
		Description: rec[colDescription],
		DistanceCM:  distance,
		DurationS:   duration,
	}, nil
}
