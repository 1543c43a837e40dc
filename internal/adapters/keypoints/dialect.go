package keypoints

import (
	"fmt"
	"strings"
)

// Dialect captures the SQL differences between the supported drivers:
// the auto-incrementing insertion-order column and placeholder syntax.
type Dialect int

const (
	DialectSQLite Dialect = iota
	DialectPostgres
)

// DialectForDriver maps a database/sql driver name to its dialect.
func DialectForDriver(driver string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "sqlite", "sqlite3":
		return DialectSQLite, nil
	case "pgx", "postgres":
		return DialectPostgres, nil
	default:
		return 0, fmt.Errorf("edge store: unsupported driver %q", driver)
	}
}

// createTable returns the map_edges DDL. The id column fixes the insertion
// order the resolver's last-match-wins policy depends on; Postgres has no
// queryable rowid, so the order column must be explicit in both dialects.
func (d Dialect) createTable() string {
	idColumn := "id          INTEGER PRIMARY KEY AUTOINCREMENT"
	if d == DialectPostgres {
		idColumn = "id          BIGSERIAL PRIMARY KEY"
	}

	return fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS map_edges (
		%s,
		src_id      INTEGER NOT NULL,
		src_x       INTEGER NOT NULL,
		src_y       INTEGER NOT NULL,
		dst_id      INTEGER NOT NULL,
		dst_x       INTEGER NOT NULL,
		dst_y       INTEGER NOT NULL,
		difficulty  REAL    NOT NULL,
		code        INTEGER NOT NULL,
		description TEXT    NOT NULL,
		distance_cm REAL    NOT NULL,
		duration_s  REAL    NOT NULL
	);
	`, idColumn)
}

// placeholders returns the VALUES placeholder list for n bound columns:
// "?, ?, ..." for sqlite, "$1, $2, ..." for postgres.
func (d Dialect) placeholders(n int) string {
	parts := make([]string, n)
	for i := range parts {
		if d == DialectPostgres {
			parts[i] = fmt.Sprintf("$%d", i+1)
		} else {
			parts[i] = "?"
		}
	}
	return strings.Join(parts, ", ")
}
