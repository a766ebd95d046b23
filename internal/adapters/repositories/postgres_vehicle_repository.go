package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/platform/obs"
)

// Postgres-backed implementation of the VehicleRepository port.
type PostgresVehicleRepository struct{ DB *sql.DB }

func NewPostgresVehicleRepository(db *sql.DB) *PostgresVehicleRepository {
	return &PostgresVehicleRepository{DB: db}
}

// Insert a new vehicle and return the stored row.
func (r *PostgresVehicleRepository) CreateVehicle(ctx context.Context, vehicle *domain.Vehicle) (_ *domain.Vehicle, err error) {
	defer obs.Time(ctx, "vehicles.Create")(&err)

	if r.DB == nil {
		return nil, errors.New("vehicle repository: DB is nil")
	}

	query := `
	INSERT INTO vehicles (id, capacity, shift_start, shift_end, start_location_lat, start_location_lon)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id, capacity, shift_start, shift_end, start_location_lat, start_location_lon;
	`

	var stored domain.Vehicle
	err = r.DB.QueryRowContext(
		ctx, query,
		vehicle.ID, vehicle.Capacity, vehicle.ShiftStart, vehicle.ShiftEnd,
		vehicle.StartLocationLat, vehicle.StartLocationLon,
	).Scan(
		&stored.ID, &stored.Capacity, &stored.ShiftStart, &stored.ShiftEnd,
		&stored.StartLocationLat, &stored.StartLocationLon,
	)
	if err != nil {
		return nil, fmt.Errorf("create vehicle id=%q: %w", vehicle.ID, err)
	}

	return &stored, nil
}

// Return all vehicles stored in the database.
func (r *PostgresVehicleRepository) ListVehicles(ctx context.Context) (_ []*domain.Vehicle, err error) {
	defer obs.Time(ctx, "vehicles.List")(&err)

	if r.DB == nil {
		return nil, errors.New("vehicle repository: DB is nil")
	}

	query := `
	SELECT id, capacity, shift_start, shift_end, start_location_lat, start_location_lon
	FROM vehicles
	ORDER BY id;
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: query vehicles table: %w", err)
	}
	defer rows.Close()

	vehicles := make([]*domain.Vehicle, 0, 16)
	for rows.Next() {
		var v domain.Vehicle
		err := rows.Scan(
			&v.ID, &v.Capacity, &v.ShiftStart, &v.ShiftEnd,
			&v.StartLocationLat, &v.StartLocationLon,
		)
		if err != nil {
			return nil, fmt.Errorf("list vehicles: scan row: %w", err)
		}
		vehicles = append(vehicles, &v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list vehicles: row iteration: %w", err)
	}

	return vehicles, nil
}

// Delete a vehicle by id. Unknown ids are not an error.
func (r *PostgresVehicleRepository) DeleteVehicle(ctx context.Context, id string) (err error) {
	defer obs.Time(ctx, "vehicles.Delete")(&err)

	if r.DB == nil {
		return errors.New("vehicle repository: DB is nil")
	}

	if _, err := r.DB.ExecContext(ctx, `DELETE FROM vehicles WHERE id = $1;`, id); err != nil {
		return fmt.Errorf("delete vehicle id=%q: %w", id, err)
	}

	return nil
}
