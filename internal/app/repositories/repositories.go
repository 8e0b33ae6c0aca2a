package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	StudentRepository      *StudentRepository
	ApprovedRollRepository *ApprovedRollRepository
	AdminRepository        *AdminRepository
	JobRepository          *JobRepository
	ApplicationRepository  *ApplicationRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		StudentRepository:      NewStudentRepository(db),
		ApprovedRollRepository: NewApprovedRollRepository(db),
		AdminRepository:        NewAdminRepository(db),
		JobRepository:          NewJobRepository(db),
		ApplicationRepository:  NewApplicationRepository(db),
	}
}
