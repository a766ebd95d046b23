package ports

import (
	"context"
	"encoding/json"

	"route-optimizer-service/internal/domain"
)

// Port: a boundary for persisting optimization outcomes. Stored results are
// immutable; the store assigns the identifier and creation timestamp.
type ResultRepository interface {
	// Persist a raw engine payload and return the stored record.
	CreateResult(ctx context.Context, result json.RawMessage) (*domain.OptimizationResult, error)
	// Retrieve stored results, newest first.
	ListResults(ctx context.Context) ([]*domain.OptimizationResult, error)
}
