package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tnpcell/portal/internal/app/models"
	"github.com/tnpcell/portal/internal/pkg/apperrors"
	"github.com/tnpcell/portal/internal/pkg/dberrors"
	"github.com/tnpcell/portal/internal/pkg/logger"
)

// ApplicationRepository handles job application database operations
type ApplicationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(db *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new application. The unique (student_id, job_id)
// constraint is what prevents duplicate applications atomically.
func (r *ApplicationRepository) Create(ctx context.Context, studentID, jobID int64) (int64, error) {
	sql, args, err := r.sb.Insert("applications").
		Columns("student_id", "job_id").
		Values(studentID, jobID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create application query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "applications_student_id_job_id_key") {
			logger.Warn().Int64("studentID", studentID).Int64("jobID", jobID).Msg("Duplicate application attempt")
			return 0, apperrors.ErrAlreadyApplied
		}
		logger.Error().Err(err).Int64("studentID", studentID).Int64("jobID", jobID).Msg("Error creating application")
		return 0, fmt.Errorf("error creating application: %w", err)
	}

	logger.Info().Int64("applicationID", id).Int64("studentID", studentID).Int64("jobID", jobID).Msg("Application created")
	return id, nil
}

// ListByStudent returns a student's applications joined with their jobs
func (r *ApplicationRepository) ListByStudent(ctx context.Context, studentID int64) ([]models.Application, error) {
	sql, args, err := r.sb.Select(
		"a.id", "a.student_id", "a.job_id", "a.applied_at",
		"j.id", "j.name", "j.link", "j.description", "j.created_at").
		From("applications a").
		Join("jobs j ON j.id = a.job_id").
		Where(squirrel.Eq{"a.student_id": studentID}).
		OrderBy("a.applied_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list applications query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing applications: %w", err)
	}
	defer rows.Close()

	var applications []models.Application
	for rows.Next() {
		var a models.Application
		var j models.Job
		if err := rows.Scan(
			&a.ID, &a.StudentID, &a.JobID, &a.AppliedAt,
			&j.ID, &j.Name, &j.Link, &j.Description, &j.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning application row: %w", err)
		}
		a.Job = &j
		applications = append(applications, a)
	}

	return applications, rows.Err()
}

// ListByJob returns a job's applications joined with their students
func (r *ApplicationRepository) ListByJob(ctx context.Context, jobID int64) ([]models.Application, error) {
	sql, args, err := r.sb.Select(
		"a.id", "a.student_id", "a.job_id", "a.applied_at",
		"s.id", "s.email", "s.roll_number", "s.password", "s.name", "s.course",
		"s.branch", "s.year", "s.phone_number", "s.status", "s.registered_at", "s.created_at", "s.updated_at").
		From("applications a").
		Join("students s ON s.id = a.student_id").
		Where(squirrel.Eq{"a.job_id": jobID}).
		OrderBy("a.applied_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list applicants query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing applicants: %w", err)
	}
	defer rows.Close()

	var applications []models.Application
	for rows.Next() {
		var a models.Application
		var s models.Student
		if err := rows.Scan(
			&a.ID, &a.StudentID, &a.JobID, &a.AppliedAt,
			&s.ID, &s.Email, &s.RollNumber, &s.Password, &s.Name, &s.Course,
			&s.Branch, &s.Year, &s.PhoneNumber, &s.Status, &s.RegisteredAt, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning applicant row: %w", err)
		}
		a.Student = &s
		applications = append(applications, a)
	}

	return applications, rows.Err()
}
