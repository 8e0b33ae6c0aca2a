package dto

import (
	"time"

	"github.com/tnpcell/portal/internal/app/models"
)

// RegisterStudentRequest represents a self-registration request.
// All fields are required.
type RegisterStudentRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	RollNumber  string `json:"rollNumber" binding:"required"`
	Course      string `json:"course" binding:"required"`
	Branch      string `json:"branch" binding:"required"`
	Year        int    `json:"year" binding:"required,gt=0"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
}

// RegisterResponse is returned for both the approved and pending outcomes;
// the HTTP status code (201 vs 202) tells the client which one happened.
type RegisterResponse struct {
	Message    string               `json:"message"`
	Email      string               `json:"email"`
	RollNumber string               `json:"rollNumber"`
	Status     models.StudentStatus `json:"status"`
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is returned on successful login; the session token itself
// travels in an http-only cookie, not in the body.
type LoginResponse struct {
	Message string          `json:"message"`
	Student *StudentProfile `json:"student,omitempty"`
}

// CancelRegistrationRequest withdraws a pending self-registration.
// At least one identifier must be supplied; email wins when both are.
type CancelRegistrationRequest struct {
	Email      string `json:"email"`
	RollNumber string `json:"rollNumber"`
}

// UpdateProfileRequest represents a student profile update
type UpdateProfileRequest struct {
	Name        string `json:"name" binding:"required"`
	Course      string `json:"course" binding:"required"`
	Branch      string `json:"branch" binding:"required"`
	Year        int    `json:"year" binding:"required,gt=0"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
}

// ChangePasswordRequest represents an in-session password change
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

// StudentProfile is the student view returned by the API
type StudentProfile struct {
	ID           int64                `json:"id"`
	Email        string               `json:"email"`
	RollNumber   string               `json:"rollNumber"`
	Name         string               `json:"name"`
	Course       string               `json:"course"`
	Branch       string               `json:"branch"`
	Year         int                  `json:"year"`
	PhoneNumber  string               `json:"phoneNumber"`
	Status       models.StudentStatus `json:"status"`
	RegisteredAt *time.Time           `json:"registeredAt,omitempty"`
}

// NewStudentProfile maps a student model to its API view
func NewStudentProfile(s *models.Student) *StudentProfile {
	return &StudentProfile{
		ID:           s.ID,
		Email:        s.Email,
		RollNumber:   s.RollNumber,
		Name:         s.Name,
		Course:       s.Course,
		Branch:       s.Branch,
		Year:         s.Year,
		PhoneNumber:  s.PhoneNumber,
		Status:       s.Status,
		RegisteredAt: s.RegisteredAt,
	}
}
