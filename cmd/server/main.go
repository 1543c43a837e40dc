package main

import (
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"routine-planner-service/internal/adapters/actuation"
	"routine-planner-service/internal/adapters/keypoints"
	"routine-planner-service/internal/adapters/routines"
	"routine-planner-service/internal/api"
	"routine-planner-service/internal/config"
	"routine-planner-service/internal/events"
	"routine-planner-service/internal/platform/db"
	"routine-planner-service/internal/ports"
	"routine-planner-service/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (CSV/SQL keypoints, yaml routines, HTTP robot)
// behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	catalog, err := routines.LoadCatalog(cfg.RoutinesPath)
	if err != nil {
		log.Fatal(err)
	}

	// The keypoint graph comes from the CSV map file unless a SQL DSN is
	// configured, in which case the imported map_edges table serves it.
	var edges ports.EdgeSource
	if cfg.EdgesDSN != "" {
		sqlDB, err := db.Open(cfg.EdgesDriver, cfg.EdgesDSN)
		if err != nil {
			log.Fatal(err)
		}
		defer sqlDB.Close()
		edges = keypoints.NewSQLEdgeRepository(sqlDB)
	} else {
		edges = keypoints.NewCSVEdgeSource(cfg.KeypointsPath)
	}

	robot, err := actuation.NewRobotClient(cfg.RobotURL, cfg.RequestTimeout)
	if err != nil {
		log.Fatal(err)
	}

	bus := events.NewBus()
	defer bus.Close()

	status := services.NewStatusStore()

	ctrl, err := services.NewController(
		services.Config{
			TurnTimeS:            cfg.TurnTimeS,
			TurnAccelFraction:    cfg.TurnAccelFraction,
			TurnSamples:          cfg.TurnSamples,
			ForwardAccelFraction: cfg.ForwardAccelFraction,
			ForwardSamples:       cfg.ForwardSamples,
			DispatchMargin:       cfg.DispatchMargin,
		},
		catalog, edges, robot, robot, bus, status,
	)
	if err != nil {
		log.Fatal(err)
	}

	router := api.NewRouter(ctrl, catalog, status, bus)

	// The write timeout is generous because /events holds streaming
	// responses open and routine runs outlive single requests.
	log.Printf("Server listening addr=:%s routines=%d", cfg.Port, len(catalog.IDs()))
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      0,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
