package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/tnpcell/portal/internal/app/models"
	"github.com/tnpcell/portal/internal/app/models/dto"
	"github.com/tnpcell/portal/internal/pkg/apperrors"
	"github.com/tnpcell/portal/internal/pkg/auth"
)

// AdminStore is the subset of the admin repository the service needs
type AdminStore interface {
	GetByEmail(ctx context.Context, email string) (*models.Admin, error)
}

// StudentAdminStore covers the admin-side student operations
type StudentAdminStore interface {
	ListByStatus(ctx context.Context, status models.StudentStatus) ([]models.Student, error)
	ListAll(ctx context.Context) ([]models.Student, error)
	UpdateApproval(ctx context.Context, rollNumber string, approve bool) error
	BulkUpdateApproval(ctx context.Context, rollNumbers []string, approve bool) (int64, error)
	DeleteCascade(ctx context.Context, id int64) error
	BulkDeleteCascade(ctx context.Context, rollNumbers []string) (int64, error)
}

// AdminService handles admin authentication and student management
type AdminService struct {
	admins     AdminStore
	students   StudentAdminStore
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAdminService creates a new AdminService
func NewAdminService(admins AdminStore, students StudentAdminStore, jwtService *auth.JWTService, logger zerolog.Logger) *AdminService {
	return &AdminService{
		admins:     admins,
		students:   students,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Login authenticates an admin and issues a session token
func (s *AdminService) Login(ctx context.Context, req *dto.AdminLoginRequest) (*models.Admin, string, error) {
	admin, err := s.admins.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return nil, "", apperrors.NewCustomError(apperrors.ErrInvalidCredentials, "Invalid email or password.")
	}

	if !auth.CheckPassword(admin.Password, req.Password) {
		return nil, "", apperrors.NewCustomError(apperrors.ErrInvalidCredentials, "Invalid email or password.")
	}

	token, err := s.jwtService.GenerateToken(admin.ID, admin.Email, "", admin.Name, models.RoleAdmin)
	if err != nil {
		return nil, "", fmt.Errorf("token generation error: %w", err)
	}

	s.logger.Info().Str("email", admin.Email).Msg("Admin logged in")
	return admin, token, nil
}

// ListPendingStudents returns students awaiting approval
func (s *AdminService) ListPendingStudents(ctx context.Context) ([]models.Student, error) {
	return s.students.ListByStatus(ctx, models.StatusPending)
}

// ListStudents returns all students
func (s *AdminService) ListStudents(ctx context.Context) ([]models.Student, error) {
	return s.students.ListAll(ctx)
}

// SetApproval approves or unapproves a single student by roll number
func (s *AdminService) SetApproval(ctx context.Context, rollNumber string, approve bool) error {
	if err := s.students.UpdateApproval(ctx, rollNumber, approve); err != nil {
		return err
	}

	s.logger.Info().Str("rollNumber", rollNumber).Bool("approve", approve).Msg("Student approval changed")
	return nil
}

// BulkSetApproval applies the same approval state to every matching student
// in one multi-row update. Returns the modified count; non-matching roll
// numbers are silently ignored.
func (s *AdminService) BulkSetApproval(ctx context.Context, rollNumbers []string, approve bool) (int64, error) {
	if len(rollNumbers) == 0 {
		return 0, apperrors.NewBadRequestError("Provide at least one roll number.")
	}

	return s.students.BulkUpdateApproval(ctx, rollNumbers, approve)
}

// DeleteStudent removes a student of any state together with their applications
func (s *AdminService) DeleteStudent(ctx context.Context, id int64) error {
	return s.students.DeleteCascade(ctx, id)
}

// BulkDeleteStudents removes every matching student and their applications
// in one transaction, returning the deleted count.
func (s *AdminService) BulkDeleteStudents(ctx context.Context, rollNumbers []string) (int64, error) {
	if len(rollNumbers) == 0 {
		return 0, apperrors.NewBadRequestError("Provide at least one roll number.")
	}

	return s.students.BulkDeleteCascade(ctx, rollNumbers)
}
