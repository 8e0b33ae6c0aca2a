package models

import "time"

// Job defines the job posting model based on the 'jobs' table
type Job struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Link        string    `json:"link" db:"link"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// Application links one student to one job. The (student, job) pair is
// unique at the storage layer, which is what prevents duplicate
// applications under concurrent requests.
type Application struct {
	ID        int64     `json:"id" db:"id"`
	StudentID int64     `json:"studentId" db:"student_id"`
	JobID     int64     `json:"jobId" db:"job_id"`
	AppliedAt time.Time `json:"appliedAt" db:"applied_at"`

	// Relations (populated when needed)
	Job     *Job     `json:"job,omitempty"`
	Student *Student `json:"student,omitempty"`
}
