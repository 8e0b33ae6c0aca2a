package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tnpcell/portal/internal/app/models"
	"github.com/tnpcell/portal/internal/app/models/dto"
	"github.com/tnpcell/portal/internal/pkg/apperrors"
)

// -------- test fakes --------

type fakeJobStore struct {
	jobs    map[int64]*models.Job
	nextID  int64
	deleted []int64
}

func newFakeJobStore() *fakeJobStore {
	return &fakeJobStore{jobs: make(map[int64]*models.Job), nextID: 1}
}

func (f *fakeJobStore) Create(ctx context.Context, job *models.Job) (int64, error) {
	id := f.nextID
	f.nextID++
	copied := *job
	copied.ID = id
	f.jobs[id] = &copied
	return id, nil
}

func (f *fakeJobStore) GetByID(ctx context.Context, id int64) (*models.Job, error) {
	job, ok := f.jobs[id]
	if !ok {
		return nil, apperrors.ErrJobNotFound
	}
	return job, nil
}

func (f *fakeJobStore) List(ctx context.Context) ([]models.Job, error) {
	var out []models.Job
	for _, j := range f.jobs {
		out = append(out, *j)
	}
	return out, nil
}

func (f *fakeJobStore) DeleteCascade(ctx context.Context, id int64) error {
	if _, ok := f.jobs[id]; !ok {
		return apperrors.ErrJobNotFound
	}
	delete(f.jobs, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type applicationKey struct {
	studentID, jobID int64
}

type fakeApplicationStore struct {
	applications map[applicationKey]int64
	nextID       int64
}

func newFakeApplicationStore() *fakeApplicationStore {
	return &fakeApplicationStore{applications: make(map[applicationKey]int64), nextID: 1}
}

func (f *fakeApplicationStore) Create(ctx context.Context, studentID, jobID int64) (int64, error) {
	key := applicationKey{studentID, jobID}
	if _, ok := f.applications[key]; ok {
		return 0, apperrors.ErrAlreadyApplied
	}
	id := f.nextID
	f.nextID++
	f.applications[key] = id
	return id, nil
}

func (f *fakeApplicationStore) ListByStudent(ctx context.Context, studentID int64) ([]models.Application, error) {
	var out []models.Application
	for key, id := range f.applications {
		if key.studentID == studentID {
			out = append(out, models.Application{ID: id, StudentID: key.studentID, JobID: key.jobID})
		}
	}
	return out, nil
}

func (f *fakeApplicationStore) ListByJob(ctx context.Context, jobID int64) ([]models.Application, error) {
	var out []models.Application
	for key, id := range f.applications {
		if key.jobID == jobID {
			out = append(out, models.Application{ID: id, StudentID: key.studentID, JobID: key.jobID})
		}
	}
	return out, nil
}

// -------- tests --------

func TestCreateJob(t *testing.T) {
	jobs := newFakeJobStore()
	svc := NewJobService(jobs, newFakeApplicationStore(), zerolog.Nop())

	job, err := svc.CreateJob(context.Background(), &dto.CreateJobRequest{
		Name:        "SDE Intern",
		Link:        "https://example.com/sde-intern",
		Description: "Six month internship.",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), job.ID)
	assert.Equal(t, "SDE Intern", job.Name)
}

func TestApply_Success(t *testing.T) {
	jobs := newFakeJobStore()
	applications := newFakeApplicationStore()
	svc := NewJobService(jobs, applications, zerolog.Nop())
	job, err := svc.CreateJob(context.Background(), &dto.CreateJobRequest{
		Name: "SDE Intern", Link: "https://example.com", Description: "x",
	})
	require.NoError(t, err)

	application, err := svc.Apply(context.Background(), 7, job.ID)

	require.NoError(t, err)
	assert.Equal(t, int64(7), application.StudentID)
	assert.Equal(t, job.ID, application.JobID)
	require.NotNil(t, application.Job)
	assert.Equal(t, "SDE Intern", application.Job.Name)
}

func TestApply_UnknownJob(t *testing.T) {
	svc := NewJobService(newFakeJobStore(), newFakeApplicationStore(), zerolog.Nop())

	_, err := svc.Apply(context.Background(), 7, 42)

	require.ErrorIs(t, err, apperrors.ErrJobNotFound)
}

func TestApply_DuplicateApplication(t *testing.T) {
	jobs := newFakeJobStore()
	svc := NewJobService(jobs, newFakeApplicationStore(), zerolog.Nop())
	job, err := svc.CreateJob(context.Background(), &dto.CreateJobRequest{
		Name: "SDE Intern", Link: "https://example.com", Description: "x",
	})
	require.NoError(t, err)

	_, err = svc.Apply(context.Background(), 7, job.ID)
	require.NoError(t, err)

	_, err = svc.Apply(context.Background(), 7, job.ID)
	require.ErrorIs(t, err, apperrors.ErrAlreadyApplied)
}

func TestDeleteJob_Unknown(t *testing.T) {
	svc := NewJobService(newFakeJobStore(), newFakeApplicationStore(), zerolog.Nop())

	err := svc.DeleteJob(context.Background(), 42)

	require.ErrorIs(t, err, apperrors.ErrJobNotFound)
}

func TestListApplicants_UnknownJob(t *testing.T) {
	svc := NewJobService(newFakeJobStore(), newFakeApplicationStore(), zerolog.Nop())

	_, err := svc.ListApplicants(context.Background(), 42)

	require.ErrorIs(t, err, apperrors.ErrJobNotFound)
}

func TestListStudentApplications(t *testing.T) {
	jobs := newFakeJobStore()
	applications := newFakeApplicationStore()
	svc := NewJobService(jobs, applications, zerolog.Nop())
	job, err := svc.CreateJob(context.Background(), &dto.CreateJobRequest{
		Name: "SDE Intern", Link: "https://example.com", Description: "x",
	})
	require.NoError(t, err)
	_, err = svc.Apply(context.Background(), 7, job.ID)
	require.NoError(t, err)

	mine, err := svc.ListStudentApplications(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, mine, 1)

	others, err := svc.ListStudentApplications(context.Background(), 8)
	require.NoError(t, err)
	assert.Empty(t, others)
}
