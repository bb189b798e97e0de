package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/cert-roadmap/internal/types"
)

// SearchLimit is the maximum number of jobs SearchJobs returns.
const SearchLimit = 20

// CreateJob inserts a job posting. A nil ID is replaced with a fresh one.
func (db *DB) CreateJob(ctx context.Context, job *types.Job) (*types.Job, error) {
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	_, err := db.pool.Exec(ctx,
		`INSERT INTO jobs (id, title, company, location, description)
		 VALUES ($1, $2, $3, $4, $5)`,
		job.ID, job.Title, job.Company, job.Location, job.Description,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	return job, nil
}

// GetJob retrieves a job by ID. A missing job returns nil without error.
func (db *DB) GetJob(ctx context.Context, id uuid.UUID) (*types.Job, error) {
	var j types.Job
	err := db.pool.QueryRow(ctx,
		`SELECT id, title, company, location, description FROM jobs WHERE id = $1`,
		id,
	).Scan(&j.ID, &j.Title, &j.Company, &j.Location, &j.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return &j, nil
}

// FindJobByTitle returns the oldest job whose title contains title, or nil.
func (db *DB) FindJobByTitle(ctx context.Context, title string) (*types.Job, error) {
	var j types.Job
	err := db.pool.QueryRow(ctx,
		`SELECT id, title, company, location, description FROM jobs
		 WHERE title ILIKE $1 ORDER BY created_at, id LIMIT 1`,
		likePattern(title),
	).Scan(&j.ID, &j.Title, &j.Company, &j.Location, &j.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find job by title: %w", err)
	}
	return &j, nil
}

// SearchJobs lists up to SearchLimit jobs whose title contains title.
func (db *DB) SearchJobs(ctx context.Context, title string) ([]types.JobSummary, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, title, company, location FROM jobs
		 WHERE title ILIKE $1 ORDER BY created_at, id LIMIT $2`,
		likePattern(title), SearchLimit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search jobs: %w", err)
	}
	defer rows.Close()

	jobs := []types.JobSummary{}
	for rows.Next() {
		var j types.JobSummary
		if err := rows.Scan(&j.ID, &j.Title, &j.Company, &j.Location); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate jobs: %w", err)
	}
	return jobs, nil
}

// DescriptionsByTitle returns descriptions of up to limit jobs whose title contains title.
func (db *DB) DescriptionsByTitle(ctx context.Context, title string, limit int) ([]string, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT description FROM jobs
		 WHERE title ILIKE $1 AND description <> '' ORDER BY created_at, id LIMIT $2`,
		likePattern(title), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list job descriptions: %w", err)
	}
	defer rows.Close()

	var descs []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan job description: %w", err)
		}
		descs = append(descs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate job descriptions: %w", err)
	}
	return descs, nil
}

// DeleteJob removes a job.
func (db *DB) DeleteJob(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("job not found: %s", id)
	}
	return nil
}
