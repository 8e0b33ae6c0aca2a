package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/tnpcell/portal/internal/app/models"
	"github.com/tnpcell/portal/internal/app/models/dto"
)

// JobStore is the subset of the job repository the service needs
type JobStore interface {
	Create(ctx context.Context, job *models.Job) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Job, error)
	List(ctx context.Context) ([]models.Job, error)
	DeleteCascade(ctx context.Context, id int64) error
}

// ApplicationStore is the subset of the application repository the service needs
type ApplicationStore interface {
	Create(ctx context.Context, studentID, jobID int64) (int64, error)
	ListByStudent(ctx context.Context, studentID int64) ([]models.Application, error)
	ListByJob(ctx context.Context, jobID int64) ([]models.Application, error)
}

// JobService handles job postings and applications
type JobService struct {
	jobs         JobStore
	applications ApplicationStore
	logger       zerolog.Logger
}

// NewJobService creates a new JobService
func NewJobService(jobs JobStore, applications ApplicationStore, logger zerolog.Logger) *JobService {
	return &JobService{
		jobs:         jobs,
		applications: applications,
		logger:       logger,
	}
}

// CreateJob publishes a new job posting
func (s *JobService) CreateJob(ctx context.Context, req *dto.CreateJobRequest) (*models.Job, error) {
	job := &models.Job{
		Name:        req.Name,
		Link:        req.Link,
		Description: req.Description,
	}

	id, err := s.jobs.Create(ctx, job)
	if err != nil {
		return nil, err
	}
	job.ID = id

	return job, nil
}

// ListJobs returns all job postings
func (s *JobService) ListJobs(ctx context.Context) ([]models.Job, error) {
	return s.jobs.List(ctx)
}

// DeleteJob removes a job posting and its applications
func (s *JobService) DeleteJob(ctx context.Context, id int64) error {
	return s.jobs.DeleteCascade(ctx, id)
}

// Apply creates an application linking the student to the job. Duplicate
// applications are rejected by the storage-layer uniqueness constraint.
func (s *JobService) Apply(ctx context.Context, studentID, jobID int64) (*models.Application, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	id, err := s.applications.Create(ctx, studentID, jobID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("studentID", studentID).Int64("jobID", jobID).Msg("Student applied to job")
	return &models.Application{
		ID:        id,
		StudentID: studentID,
		JobID:     jobID,
		Job:       job,
	}, nil
}

// ListStudentApplications returns a student's applications with job details
func (s *JobService) ListStudentApplications(ctx context.Context, studentID int64) ([]models.Application, error) {
	return s.applications.ListByStudent(ctx, studentID)
}

// ListApplicants returns the applications for a job with student details
func (s *JobService) ListApplicants(ctx context.Context, jobID int64) ([]models.Application, error) {
	if _, err := s.jobs.GetByID(ctx, jobID); err != nil {
		return nil, err
	}

	return s.applications.ListByJob(ctx, jobID)
}
