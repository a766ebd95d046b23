package ports

import (
	"context"

	"route-optimizer-service/internal/domain"
)

// Port: a boundary for storing and retrieving Job entities.
type JobRepository interface {
	// Insert a new job and return the stored row.
	CreateJob(ctx context.Context, job *domain.Job) (*domain.Job, error)
	// Retrieve all stored jobs.
	ListJobs(ctx context.Context) ([]*domain.Job, error)
	// Delete a job by id. Deleting an unknown id is not an error.
	DeleteJob(ctx context.Context, id string) error
}
