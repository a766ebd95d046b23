package ports

import (
	"context"

	"route-optimizer-service/internal/domain"
)

// Port: a boundary for storing and retrieving Vehicle entities.
type VehicleRepository interface {
	// Insert a new vehicle and return the stored row.
	CreateVehicle(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error)
	// Retrieve all stored vehicles.
	ListVehicles(ctx context.Context) ([]*domain.Vehicle, error)
	// Delete a vehicle by id. Deleting an unknown id is not an error.
	DeleteVehicle(ctx context.Context, id string) error
}
