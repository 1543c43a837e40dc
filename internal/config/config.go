// Package config reads service configuration from the environment.
// A .env file, when present, is loaded by the composition roots before
// Load is called.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config is the full service configuration with defaults applied.
type Config struct {
	Port string

	RoutinesPath  string
	KeypointsPath string

	// When EdgesDSN is set the keypoint graph is read from a SQL table
	// instead of the CSV file.
	EdgesDriver string
	EdgesDSN    string

	RobotURL       string
	RequestTimeout time.Duration

	// Profile shaping. Variable names (including spellings) are preserved
	// from the robot's deployment environment.
	TurnAccelFraction    float64 // TURN_ACELERATION_FC
	TurnSamples          int     // TURN_CRTL_POINTS
	ForwardAccelFraction float64 // FORWARE_ACELERATION_FC
	ForwardSamples       int     // FORWARE_CRTL_POINTS
	TurnTimeS            float64 // TURN_TIME

	DispatchMargin time.Duration
}

// Load parses the environment into a Config. Unset variables fall back to
// the same defaults the robot ships with.
func Load() (Config, error) {
	cfg := Config{
		Port:          Get("PORT", "8080"),
		RoutinesPath:  Get("ROUTINES_PATH", "configs/routines.yaml"),
		KeypointsPath: Get("KEYPOINTS_PATH", "configs/key_points.csv"),
		EdgesDriver:   Get("EDGES_DRIVER", "sqlite"),
		EdgesDSN:      os.Getenv("EDGES_DSN"),
		RobotURL:      Get("ROBOT_URL", "http://localhost:9090"),
	}

	var err error
	if cfg.TurnAccelFraction, err = GetFloat("TURN_ACELERATION_FC", 0.3); err != nil {
		return Config{}, err
	}
	if cfg.TurnSamples, err = GetInt("TURN_CRTL_POINTS", 30); err != nil {
		return Config{}, err
	}
	if cfg.ForwardAccelFraction, err = GetFloat("FORWARE_ACELERATION_FC", 0.3); err != nil {
		return Config{}, err
	}
	if cfg.ForwardSamples, err = GetInt("FORWARE_CRTL_POINTS", 30); err != nil {
		return Config{}, err
	}
	if cfg.TurnTimeS, err = GetFloat("TURN_TIME", 3.0); err != nil {
		return Config{}, err
	}

	marginS, err := GetFloat("DISPATCH_TIMEOUT_MARGIN", 5.0)
	if err != nil {
		return Config{}, err
	}
	cfg.DispatchMargin = time.Duration(marginS * float64(time.Second))

	timeoutS, err := GetFloat("ROBOT_REQUEST_TIMEOUT", 120.0)
	if err != nil {
		return Config{}, err
	}
	cfg.RequestTimeout = time.Duration(timeoutS * float64(time.Second))

	return cfg, nil
}

// Get returns the value of an environment variable or a fallback.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// GetFloat parses a float environment variable or returns a fallback.
func GetFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("config: parse %s=%q: %w", key, v, err)
	}
	return f, nil
}

// GetInt parses an integer environment variable or returns a fallback.
func GetInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: parse %s=%q: %w", key, v, err)
	}
	return n, nil
}
