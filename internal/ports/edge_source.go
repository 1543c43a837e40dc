package ports

import (
	"context"
	"errors"

	"routine-planner-service/internal/domain"
)

// ErrConfigurationMissing reports that a backing map resource is absent.
// Callers must treat it as "no edges available" and fail the resolution
// rather than operate on partial data.
var ErrConfigurationMissing = errors.New("configuration missing")

// Port: a boundary for loading the keypoint graph from a data source.
// The edge set is read-only for the lifetime of the process.
type EdgeSource interface {
	// Load all map edges. A missing backing resource yields an error
	// wrapping ErrConfigurationMissing, never a partial edge set.
	LoadEdges(ctx context.Context) ([]domain.MapEdge, error)
}
