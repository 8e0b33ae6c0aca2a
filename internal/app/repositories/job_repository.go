package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tnpcell/portal/internal/app/models"
	"github.com/tnpcell/portal/internal/db"
	"github.com/tnpcell/portal/internal/pkg/apperrors"
	"github.com/tnpcell/portal/internal/pkg/logger"
)

// JobRepository handles job posting database operations
type JobRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewJobRepository creates a new JobRepository
func NewJobRepository(db *pgxpool.Pool) *JobRepository {
	return &JobRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new job posting and returns its id
func (r *JobRepository) Create(ctx context.Context, job *models.Job) (int64, error) {
	sql, args, err := r.sb.Insert("jobs").
		Columns("name", "link", "description").
		Values(job.Name, job.Link, job.Description).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create job query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Str("name", job.Name).Msg("Error creating job")
		return 0, fmt.Errorf("error creating job: %w", err)
	}

	logger.Info().Int64("jobID", id).Str("name", job.Name).Msg("Job created")
	return id, nil
}

// GetByID retrieves a job posting by id
func (r *JobRepository) GetByID(ctx context.Context, id int64) (*models.Job, error) {
	sql, args, err := r.sb.Select("id", "name", "link", "description", "created_at").
		From("jobs").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get job query: %w", err)
	}

	var j models.Job
	err = r.db.QueryRow(ctx, sql, args...).Scan(&j.ID, &j.Name, &j.Link, &j.Description, &j.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, fmt.Errorf("error retrieving job: %w", err)
	}

	return &j, nil
}

// List returns all job postings, newest first
func (r *JobRepository) List(ctx context.Context) ([]models.Job, error) {
	sql, args, err := r.sb.Select("id", "name", "link", "description", "created_at").
		From("jobs").
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list jobs query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing jobs: %w", err)
	}
	defer rows.Close()

	var jobs []models.Job
	for rows.Next() {
		var j models.Job
		if err := rows.Scan(&j.ID, &j.Name, &j.Link, &j.Description, &j.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning job row: %w", err)
		}
		jobs = append(jobs, j)
	}

	return jobs, rows.Err()
}

// DeleteCascade removes a job and every application referencing it, in one
// transaction.
func (r *JobRepository) DeleteCascade(ctx context.Context, id int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM applications WHERE job_id = $1`, id); err != nil {
			return fmt.Errorf("error deleting job applications: %w", err)
		}

		tag, err := tx.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("error deleting job: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrJobNotFound
		}

		logger.Info().Int64("jobID", id).Msg("Job deleted with applications")
		return nil
	})
}
