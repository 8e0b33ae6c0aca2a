package dto

import (
	"time"

	"github.com/tnpcell/portal/internal/app/models"
)

// CreateJobRequest represents a new job posting
type CreateJobRequest struct {
	Name        string `json:"name" binding:"required"`
	Link        string `json:"link" binding:"required"`
	Description string `json:"description" binding:"required"`
}

// ApplicationResponse is an application joined with its job
type ApplicationResponse struct {
	ID        int64       `json:"id"`
	AppliedAt time.Time   `json:"appliedAt"`
	Job       *models.Job `json:"job,omitempty"`
}

// ApplicantResponse is an application joined with its student, for the
// admin per-job applicant listing
type ApplicantResponse struct {
	ID        int64           `json:"id"`
	AppliedAt time.Time       `json:"appliedAt"`
	Student   *StudentProfile `json:"student,omitempty"`
}
