package services

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/rs/zerolog"
	"github.com/tnpcell/portal/internal/app/models"
	"github.com/tnpcell/portal/internal/app/models/dto"
	"github.com/tnpcell/portal/internal/pkg/apperrors"
	"github.com/tnpcell/portal/internal/pkg/auth"
)

// AllowList is the read-only lookup over the pre-approved roll numbers.
// It is populated entirely outside the request lifecycle by the roster
// import, so registration logic never depends on the import pipeline.
type AllowList interface {
	Contains(ctx context.Context, rollNumber string) (bool, error)
}

// StudentStore is the subset of the student repository the service needs
type StudentStore interface {
	Create(ctx context.Context, student *models.Student) (int64, error)
	GetByEmail(ctx context.Context, email string) (*models.Student, error)
	GetByRollNumber(ctx context.Context, rollNumber string) (*models.Student, error)
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	RollNumberExists(ctx context.Context, rollNumber string) (bool, error)
	UpdateProfile(ctx context.Context, id int64, name, course, branch string, year int, phoneNumber string) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	Delete(ctx context.Context, id int64) error
}

// StudentService handles self-service student operations: registration
// against the allow-list, the login gate, cancellation, and profile upkeep.
type StudentService struct {
	students   StudentStore
	allowList  AllowList
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewStudentService creates a new StudentService
func NewStudentService(students StudentStore, allowList AllowList, jwtService *auth.JWTService, logger zerolog.Logger) *StudentService {
	return &StudentService{
		students:   students,
		allowList:  allowList,
		jwtService: jwtService,
		logger:     logger,
	}
}

// normalizeEmail lowercases and trims an email address
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// validatePassword checks password strength: at least 8 characters with
// one letter and one digit.
func validatePassword(password string) error {
	if len(password) < 8 {
		return apperrors.NewCustomError(apperrors.ErrPasswordTooWeak, "Password must be at least 8 characters long.")
	}

	hasLetter := false
	hasDigit := false
	for _, char := range password {
		if unicode.IsLetter(char) {
			hasLetter = true
		}
		if unicode.IsDigit(char) {
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return apperrors.NewCustomError(apperrors.ErrPasswordTooWeak, "Password must contain at least one letter and one digit.")
	}

	return nil
}

// Register creates a new student record. Membership in the allow-list at
// creation time decides whether the record starts approved or pending.
func (s *StudentService) Register(ctx context.Context, req *dto.RegisterStudentRequest) (*models.Student, error) {
	email := normalizeEmail(req.Email)
	rollNumber := strings.TrimSpace(req.RollNumber)

	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}

	// Roll number is checked before email; both collide with 409.
	exists, err := s.students.RollNumberExists(ctx, rollNumber)
	if err != nil {
		return nil, fmt.Errorf("error checking roll number: %w", err)
	}
	if exists {
		return nil, apperrors.NewCustomError(apperrors.ErrRollNumberExists, "A student with this roll number is already registered.")
	}

	exists, err = s.students.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("error checking email: %w", err)
	}
	if exists {
		return nil, apperrors.NewCustomError(apperrors.ErrEmailAlreadyExists, "A student with this email is already registered.")
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	student := &models.Student{
		Email:       email,
		RollNumber:  rollNumber,
		Password:    hashedPassword,
		Name:        req.Name,
		Course:      req.Course,
		Branch:      req.Branch,
		Year:        req.Year,
		PhoneNumber: req.PhoneNumber,
		Status:      models.StatusPending,
	}

	allowed, err := s.allowList.Contains(ctx, rollNumber)
	if err != nil {
		return nil, fmt.Errorf("error checking allow-list: %w", err)
	}
	if allowed {
		student.Status = models.StatusApproved
		// registered_at is filled by the approval update path; on creation
		// the repository stores the value we set here, so stamp it now.
		now := timeNow()
		student.RegisteredAt = &now
	}

	id, err := s.students.Create(ctx, student)
	if err != nil {
		return nil, err
	}
	student.ID = id

	s.logger.Info().
		Str("rollNumber", rollNumber).
		Bool("autoApproved", allowed).
		Msg("Student registered")

	return student, nil
}

// Login authenticates a student and issues a session token. The error is
// deliberately identical for unknown email and wrong password; a valid
// credential pair on a pending record fails distinctly.
func (s *StudentService) Login(ctx context.Context, req *dto.LoginRequest) (*models.Student, string, error) {
	student, err := s.students.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return nil, "", apperrors.NewCustomError(apperrors.ErrInvalidCredentials, "Invalid email or password.")
	}

	if !auth.CheckPassword(student.Password, req.Password) {
		return nil, "", apperrors.NewCustomError(apperrors.ErrInvalidCredentials, "Invalid email or password.")
	}

	if !student.Approved() {
		return nil, "", apperrors.NewCustomError(apperrors.ErrAccountPending, "Your registration is pending approval. Please wait for the placement cell to approve it.")
	}

	token, err := s.jwtService.GenerateToken(student.ID, student.Email, student.RollNumber, student.Name, models.RoleStudent)
	if err != nil {
		return nil, "", fmt.Errorf("token generation error: %w", err)
	}

	return student, token, nil
}

// CancelRegistration deletes a still-pending self-registration. Email takes
// precedence when both identifiers are present; only one lookup key is used.
func (s *StudentService) CancelRegistration(ctx context.Context, req *dto.CancelRegistrationRequest) error {
	email := normalizeEmail(req.Email)
	rollNumber := strings.TrimSpace(req.RollNumber)

	var (
		student *models.Student
		err     error
	)
	switch {
	case email != "":
		student, err = s.students.GetByEmail(ctx, email)
	case rollNumber != "":
		student, err = s.students.GetByRollNumber(ctx, rollNumber)
	default:
		return apperrors.NewBadRequestError("Provide your email or roll number to cancel the registration.")
	}
	if err != nil {
		return err
	}

	if student.Approved() {
		return apperrors.NewCustomError(apperrors.ErrRegistrationActive, "This registration has already been approved and can no longer be cancelled.")
	}

	if err := s.students.Delete(ctx, student.ID); err != nil {
		return err
	}

	s.logger.Info().Str("rollNumber", student.RollNumber).Msg("Pending registration cancelled")
	return nil
}

// GetProfile retrieves a student by session id
func (s *StudentService) GetProfile(ctx context.Context, studentID int64) (*models.Student, error) {
	return s.students.GetByID(ctx, studentID)
}

// UpdateProfile updates a student's mutable profile fields
func (s *StudentService) UpdateProfile(ctx context.Context, studentID int64, req *dto.UpdateProfileRequest) (*models.Student, error) {
	err := s.students.UpdateProfile(ctx, studentID, req.Name, req.Course, req.Branch, req.Year, req.PhoneNumber)
	if err != nil {
		return nil, err
	}

	return s.students.GetByID(ctx, studentID)
}

// ChangePassword replaces a student's password after verifying the current one
func (s *StudentService) ChangePassword(ctx context.Context, studentID int64, req *dto.ChangePasswordRequest) error {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return err
	}

	if !auth.CheckPassword(student.Password, req.CurrentPassword) {
		return apperrors.NewCustomError(apperrors.ErrWrongCurrentPassword, "Your current password is incorrect.")
	}

	if err := validatePassword(req.NewPassword); err != nil {
		return err
	}

	hashedPassword, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	if err := s.students.UpdatePassword(ctx, studentID, hashedPassword); err != nil {
		return err
	}

	s.logger.Info().Int64("studentID", studentID).Msg("Student password changed")
	return nil
}
