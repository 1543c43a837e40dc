package keypoints

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"

	"routine-planner-service/internal/domain"
	"routine-planner-service/internal/ports"
)

func openSqliteDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "edges.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSQLEdgeRepositoryImportAndLoad(t *testing.T) {
	db := openSqliteDB(t)
	ctx := context.Background()

	if err := InitSchema(db, DialectSQLite); err != nil {
		t.Fatalf("init schema: %v", err)
	}

	csvPath := writeTempCSV(t, sampleCSV)
	if err := ImportFromCSV(ctx, db, DialectSQLite, csvPath); err != nil {
		t.Fatalf("import: %v", err)
	}

	edges, err := NewSQLEdgeRepository(db).LoadEdges(ctx)
	if err != nil {
		t.Fatalf("load edges: %v", err)
	}
	if len(edges) != 2 {
		t.Fatalf("got %d edges, want 2", len(edges))
	}

	// File order must survive the round trip: the resolver's
	// last-match-wins policy depends on it.
	want := domain.MapEdge{
		SrcID: 2, SrcCoord: domain.Point{X: 100, Y: 0},
		DstID: 3, DstCoord: domain.Point{X: 100, Y: 100},
		Difficulty: 2.5, Code: 1, Description: "ramp south",
		DistanceCM: 140.0, DurationS: 7.5,
	}
	if edges[0].SrcID != 1 {
		t.Fatalf("edge[0].SrcID = %d, want 1", edges[0].SrcID)
	}
	if edges[1] != want {
		t.Fatalf("edge[1] = %+v, want %+v", edges[1], want)
	}

	// A re-import replaces the table contents rather than appending.
	if err := ImportFromCSV(ctx, db, DialectSQLite, csvPath); err != nil {
		t.Fatalf("second import: %v", err)
	}
	edges, err = NewSQLEdgeRepository(db).LoadEdges(ctx)
	if err != nil {
		t.Fatalf("load edges after re-import: %v", err)
	}
	if len(edges) != 2 {
		t.Fatalf("got %d edges after re-import, want 2", len(edges))
	}
}

func TestSQLEdgeRepositoryMissingTable(t *testing.T) {
	db := openSqliteDB(t)

	_, err := NewSQLEdgeRepository(db).LoadEdges(context.Background())
	if !errors.Is(err, ports.ErrConfigurationMissing) {
		t.Fatalf("expected configuration-missing error, got %v", err)
	}
}

func TestDialectForDriver(t *testing.T) {
	cases := []struct {
		driver  string
		want    Dialect
		wantErr bool
	}{
		{driver: "sqlite", want: DialectSQLite},
		{driver: "sqlite3", want: DialectSQLite},
		{driver: "pgx", want: DialectPostgres},
		{driver: "postgres", want: DialectPostgres},
		{driver: "mysql", wantErr: true},
		{driver: "", wantErr: true},
	}

	for _, tc := range cases {
		got, err := DialectForDriver(tc.driver)
		if tc.wantErr {
			if err == nil {
				t.Errorf("DialectForDriver(%q): expected error", tc.driver)
			}
			continue
		}
		if err != nil {
			t.Errorf("DialectForDriver(%q): %v", tc.driver, err)
			continue
		}
		if got != tc.want {
			t.Errorf("DialectForDriver(%q) = %v, want %v", tc.driver, got, tc.want)
		}
	}
}

func TestDialectPlaceholders(t *testing.T) {
	if got := DialectSQLite.placeholders(3); got != "?, ?, ?" {
		t.Fatalf("sqlite placeholders = %q", got)
	}
	if got := DialectPostgres.placeholders(3); got != "$1, $2, $3" {
		t.Fatalf("postgres placeholders = %q", got)
	}
}
