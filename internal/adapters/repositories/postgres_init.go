package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Initialize the Postgres schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createJobsQuery := `
	CREATE TABLE IF NOT EXISTS jobs (
		id TEXT PRIMARY KEY,
		latitude DOUBLE PRECISION,
		longitude DOUBLE PRECISION,
		service_time INTEGER NOT NULL DEFAULT 0,
		time_window_start BIGINT NOT NULL DEFAULT 0,
		time_window_end BIGINT NOT NULL DEFAULT 0,
		amount INTEGER
	);
	`

	createVehiclesQuery := `
	CREATE TABLE IF NOT EXISTS vehicles (
		id TEXT PRIMARY KEY,
		capacity INTEGER NOT NULL,
		shift_start BIGINT NOT NULL DEFAULT 0,
		shift_end BIGINT NOT NULL DEFAULT 0,
		start_location_lat DOUBLE PRECISION,
		start_location_lon DOUBLE PRECISION
	);
	`

	createResultsQuery := `
	CREATE TABLE IF NOT EXISTS optimization_results (
		id UUID PRIMARY KEY,
		result JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_optimization_results_created_at
	ON optimization_results (created_at DESC);
	`

	statements := []string{
		createJobsQuery,
		createVehiclesQuery,
		createResultsQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type JobSeed struct {
	ID              string   `json:"id"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
	ServiceTime     int      `json:"service_time"`
	TimeWindowStart int64    `json:"time_window_start"`
	TimeWindowEnd   int64    `json:"time_window_end"`
	Amount          *int64   `json:"amount"`
}

type VehicleSeed struct {
	ID               string   `json:"id"`
	Capacity         int      `json:"capacity"`
	ShiftStart       int64    `json:"shift_start"`
	ShiftEnd         int64    `json:"shift_end"`
	StartLocationLat *float64 `json:"start_location_lat"`
	StartLocationLon *float64 `json:"start_location_lon"`
}

type seedFile struct {
	Jobs     []JobSeed     `json:"jobs"`
	Vehicles []VehicleSeed `json:"vehicles"`
}

// Populate the database with demo jobs and vehicles from a JSON file.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed data: read %q: %w", jsonPath, err)
	}

	var data seedFile
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed data: parse json: %w", err)
	}

	for i, j := range data.Jobs {
		if strings.TrimSpace(j.ID) == "" {
			return fmt.Errorf("seed data: job at index %d: id cannot be empty", i+1)
		}
	}
	for i, v := range data.Vehicles {
		if strings.TrimSpace(v.ID) == "" {
			return fmt.Errorf("seed data: vehicle at index %d: id cannot be empty", i+1)
		}
		if v.Capacity <= 0 {
			return fmt.Errorf("seed data: vehicle %q: capacity must be positive", v.ID)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed data: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	jobStmt, err := tx.Prepare(`
	INSERT INTO jobs (id, latitude, longitude, service_time, time_window_start, time_window_end, amount)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (id) DO UPDATE
	SET latitude = EXCLUDED.latitude,
		longitude = EXCLUDED.longitude,
		service_time = EXCLUDED.service_time,
		time_window_start = EXCLUDED.time_window_start,
		time_window_end = EXCLUDED.time_window_end,
		amount = EXCLUDED.amount;
	`)
	if err != nil {
		return fmt.Errorf("seed data: prepare job insert: %w", err)
	}
	defer jobStmt.Close()

	for _, j := range data.Jobs {
		_, err := jobStmt.Exec(j.ID, j.Latitude, j.Longitude, j.ServiceTime, j.TimeWindowStart, j.TimeWindowEnd, j.Amount)
		if err != nil {
			return fmt.Errorf("seed data: insert job id=%q: %w", j.ID, err)
		}
	}

	vehicleStmt, err := tx.Prepare(`
	INSERT INTO vehicles (id, capacity, shift_start, shift_end, start_location_lat, start_location_lon)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (id) DO UPDATE
	SET capacity = EXCLUDED.capacity,
		shift_start = EXCLUDED.shift_start,
		shift_end = EXCLUDED.shift_end,
		start_location_lat = EXCLUDED.start_location_lat,
		start_location_lon = EXCLUDED.start_location_lon;
	`)
	if err != nil {
		return fmt.Errorf("seed data: prepare vehicle insert: %w", err)
	}
	defer vehicleStmt.Close()

	for _, v := range data.Vehicles {
		_, err := vehicleStmt.Exec(v.ID, v.Capacity, v.ShiftStart, v.ShiftEnd, v.StartLocationLat, v.StartLocationLon)
		if err != nil {
			return fmt.Errorf("seed data: insert vehicle id=%q: %w", v.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed data: commit tx: %w", err)
	}

	return nil
}
