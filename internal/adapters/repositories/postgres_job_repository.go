package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/platform/obs"
)

// Postgres-backed implementation of the JobRepository port.
type PostgresJobRepository struct{ DB *sql.DB }

func NewPostgresJobRepository(db *sql.DB) *PostgresJobRepository {
	return &PostgresJobRepository{DB: db}
}

// Insert a new job and return the stored row.
func (r *PostgresJobRepository) CreateJob(ctx context.Context, job *domain.Job) (_ *domain.Job, err error) {
	defer obs.Time(ctx, "jobs.Create")(&err)

	if r.DB == nil {
		return nil, errors.New("job repository: DB is nil")
	}

	query := `
	INSERT INTO jobs (id, latitude, longitude, service_time, time_window_start, time_window_end, amount)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING id, latitude, longitude, service_time, time_window_start, time_window_end, amount;
	`

	var stored domain.Job
	err = r.DB.QueryRowContext(
		ctx, query,
		job.ID, job.Latitude, job.Longitude,
		job.ServiceTime, job.TimeWindowStart, job.TimeWindowEnd, job.Amount,
	).Scan(
		&stored.ID, &stored.Latitude, &stored.Longitude,
		&stored.ServiceTime, &stored.TimeWindowStart, &stored.TimeWindowEnd, &stored.Amount,
	)
	if err != nil {
		return nil, fmt.Errorf("create job id=%q: %w", job.ID, err)
	}

	return &stored, nil
}

// Return all jobs stored in the database.
func (r *PostgresJobRepository) ListJobs(ctx context.Context) (_ []*domain.Job, err error) {
	defer obs.Time(ctx, "jobs.List")(&err)

	if r.DB == nil {
		return nil, errors.New("job repository: DB is nil")
	}

	query := `
	SELECT id, latitude, longitude, service_time, time_window_start, time_window_end, amount
	FROM jobs
	ORDER BY id;
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list jobs: query jobs table: %w", err)
	}
	defer rows.Close()

	jobs := make([]*domain.Job, 0, 64)
	for rows.Next() {
		var j domain.Job
		err := rows.Scan(
			&j.ID, &j.Latitude, &j.Longitude,
			&j.ServiceTime, &j.TimeWindowStart, &j.TimeWindowEnd, &j.Amount,
		)
		if err != nil {
			return nil, fmt.Errorf("list jobs: scan row: %w", err)
		}
		jobs = append(jobs, &j)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list jobs: row iteration: %w", err)
	}

	return jobs, nil
}

// Delete a job by id. Unknown ids are not an error.
func (r *PostgresJobRepository) DeleteJob(ctx context.Context, id string) (err error) {
	defer obs.Time(ctx, "jobs.Delete")(&err)

	if r.DB == nil {
		return errors.New("job repository: DB is nil")
	}

	if _, err := r.DB.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1;`, id); err != nil {
		return fmt.Errorf("delete job id=%q: %w", id, err)
	}

	return nil
}
