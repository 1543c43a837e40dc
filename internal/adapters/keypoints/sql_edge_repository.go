package keypoints

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"routine-planner-service/internal/domain"
	"routine-planner-service/internal/ports"
)

// SQLEdgeRepository serves the keypoint graph from a map_edges table
// created by InitSchema. Reads are dialect-neutral (the explicit id column
// carries insertion order on both sqlite and postgres); the dialect-specific
// DDL and import statements live in schema.go.
type SQLEdgeRepository struct {
	DB *sql.DB
}

func NewSQLEdgeRepository(db *sql.DB) *SQLEdgeRepository {
	return &SQLEdgeRepository{DB: db}
}

// LoadEdges reads the full edge table in insertion order, preserving the
// storage order the resolver's last-match-wins policy depends on.
func (r *SQLEdgeRepository) LoadEdges(ctx context.Context) ([]domain.MapEdge, error) {
	if r.DB == nil {
		return nil, errors.New("edge repository: db is nil")
	}

	q := `
	SELECT
		src_id, src_x, src_y,
		dst_id, dst_x, dst_y,
		difficulty, code, description,
		distance_cm, duration_s
	FROM map_edges
	ORDER BY id;
	`

	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("load edges: query map_edges table: %w", mapMissingTable(err))
	}
	defer rows.Close()

	var edges []domain.MapEdge
	for rows.Next() {
		var e domain.MapEdge
		if err := rows.Scan(
			&e.SrcID, &e.SrcCoord.X, &e.SrcCoord.Y,
			&e.DstID, &e.DstCoord.X, &e.DstCoord.Y,
			&e.Difficulty, &e.Code, &e.Description,
			&e.DistanceCM, &e.DurationS,
		); err != nil {
			return nil, fmt.Errorf("load edges: scan rows: %w", err)
		}
		edges = append(edges, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load edges: row iteration: %w", err)
	}

	return edges, nil
}

// mapMissingTable folds missing-table driver errors into the
// configuration-missing condition so callers handle an unprovisioned
// database the same way as an absent CSV file. Matching is textual because
// sqlite and postgres report the condition through different error types;
// it is kept narrow (sqlite "no such table", postgres "relation ... does
// not exist") so other query failures surface as what they are.
func mapMissingTable(err error) error {
	msg := err.Error()
	missing := strings.Contains(msg, "no such table") ||
		(strings.Contains(msg, "relation") && strings.Contains(msg, "does not exist"))
	if missing {
		return fmt.Errorf("%v: %w", err, ports.ErrConfigurationMissing)
	}
	return err
}
