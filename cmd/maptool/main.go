package main

import (
	"context"
	"log"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"routine-planner-service/internal/adapters/keypoints"
	"routine-planner-service/internal/config"
	"routine-planner-service/internal/platform/db"
)

// maptool imports a key_points.csv map into the map_edges SQL table so the
// server can run with EDGES_DSN instead of the CSV file.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	dsn := os.Getenv("EDGES_DSN")
	if strings.TrimSpace(dsn) == "" {
		log.Fatal("EDGES_DSN is required")
	}
	driver := config.Get("EDGES_DRIVER", "sqlite")
	csvPath := config.Get("KEYPOINTS_PATH", "configs/key_points.csv")

	dialect, err := keypoints.DialectForDriver(driver)
	if err != nil {
		log.Fatal(err)
	}

	sqlDB, err := db.Open(driver, dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer sqlDB.Close()

	log.Println("Initializing map schema...")
	if err := keypoints.InitSchema(sqlDB, dialect); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	log.Printf("Importing edges from %s...", csvPath)
	if err := keypoints.ImportFromCSV(context.Background(), sqlDB, dialect, csvPath); err != nil {
		log.Fatalf("import failed: %v", err)
	}
	log.Println("Import complete.")
}
