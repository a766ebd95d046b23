package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/platform/obs"
)

// Postgres-backed implementation of the ResultRepository port. Rows are
// write-once: the engine payload is stored verbatim as JSONB with a locally
// generated UUID and a store-assigned creation timestamp.
type PostgresResultRepository struct{ DB *sql.DB }

func NewPostgresResultRepository(db *sql.DB) *PostgresResultRepository {
	return &PostgresResultRepository{DB: db}
}

// Persist a raw engine payload and return the stored record. Failures wrap
// domain.PersistenceError so callers can surface the right error kind.
func (r *PostgresResultRepository) CreateResult(ctx context.Context, result json.RawMessage) (_ *domain.OptimizationResult, err error) {
	defer obs.Time(ctx, "results.Create")(&err)

	if r.DB == nil {
		return nil, &domain.PersistenceError{Op: "insert result", Err: errors.New("result repository: DB is nil")}
	}

	query := `
	INSERT INTO optimization_results (id, result)
	VALUES ($1, $2)
	RETURNING id, result, created_at;
	`

	var stored domain.OptimizationResult
	err = r.DB.QueryRowContext(ctx, query, uuid.NewString(), []byte(result)).
		Scan(&stored.ID, &stored.Result, &stored.CreatedAt)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "insert result", Err: err}
	}

	return &stored, nil
}

// Return all stored results, newest first.
func (r *PostgresResultRepository) ListResults(ctx context.Context) (_ []*domain.OptimizationResult, err error) {
	defer obs.Time(ctx, "results.List")(&err)

	if r.DB == nil {
		return nil, errors.New("result repository: DB is nil")
	}

	query := `
	SELECT id, result, created_at
	FROM optimization_results
	ORDER BY created_at DESC;
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list results: query optimization_results table: %w", err)
	}
	defer rows.Close()

	results := make([]*domain.OptimizationResult, 0, 16)
	for rows.Next() {
		var res domain.OptimizationResult
		if err := rows.Scan(&res.ID, &res.Result, &res.CreatedAt); err != nil {
			return nil, fmt.Errorf("list results: scan row: %w", err)
		}
		results = append(results, &res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list results: row iteration: %w", err)
	}

	return results, nil
}
