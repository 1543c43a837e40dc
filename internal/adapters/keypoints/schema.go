package keypoints

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// InitSchema creates the map_edges table if it does not exist, using the
// dialect's DDL.
func InitSchema(db *sql.DB, dialect Dialect) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	if _, err := db.Exec(dialect.createTable()); err != nil {
		return fmt.Errorf("init schema: create map_edges: %w", err)
	}

	return nil
}

// ImportFromCSV replaces the map_edges table contents with the edges of a
// key_points.csv file, preserving file order.
func ImportFromCSV(ctx context.Context, db *sql.DB, dialect Dialect, csvPath string) error {
	if db == nil {
		return errors.New("import edges: DB is nil")
	}

	edges, err := NewCSVEdgeSource(csvPath).LoadEdges(ctx)
	if err != nil {
		return fmt.Errorf("import edges: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("import edges: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM map_edges;`); err != nil {
		return fmt.Errorf("import edges: clear table: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(`
	INSERT INTO map_edges (
		src_id, src_x, src_y,
		dst_id, dst_x, dst_y,
		difficulty, code, description,
		distance_cm, duration_s
	)
	VALUES (%s);
	`, dialect.placeholders(11)))
	if err != nil {
		return fmt.Errorf("import edges: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range edges {
		if _, err := stmt.ExecContext(ctx,
			e.SrcID, e.SrcCoord.X, e.SrcCoord.Y,
			e.DstID, e.DstCoord.X, e.DstCoord.Y,
			e.Difficulty, e.Code, e.Description,
			e.DistanceCM, e.DurationS,
		); err != nil {
			return fmt.Errorf("import edges: insert src=%d dst=%d code=%d: %w", e.SrcID, e.DstID, e.Code, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("import edges: commit tx: %w", err)
	}

	return nil
}
