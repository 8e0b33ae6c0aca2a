package models

import (
	"time"
)

// StudentStatus is the registration state of a student record. The original
// portal tracked two booleans (approved, registered) that were always flipped
// together; a single status makes the half-set combination unrepresentable.
// "Unregistered" is simply the absence of a row.
type StudentStatus string

const (
	// StatusPending is a self-registered student awaiting admin approval
	StatusPending StudentStatus = "PENDING"
	// StatusApproved is a student allowed to log in
	StatusApproved StudentStatus = "APPROVED"
)

// Student defines the student model based on the 'students' table
type Student struct {
	ID           int64         `json:"id" db:"id" example:"1"`
	Email        string        `json:"email" db:"email" example:"a@college.edu"`
	RollNumber   string        `json:"rollNumber" db:"roll_number" example:"CS101"`
	Password     string        `json:"-" db:"password"` // bcrypt hash, excluded from JSON
	Name         string        `json:"name" db:"name" example:"Asha Rao"`
	Course       string        `json:"course" db:"course" example:"B.Tech"`
	Branch       string        `json:"branch" db:"branch" example:"Computer Science"`
	Year         int           `json:"year" db:"year" example:"3"`
	PhoneNumber  string        `json:"phoneNumber" db:"phone_number" example:"9876543210"`
	Status       StudentStatus `json:"status" db:"status" example:"PENDING"`
	RegisteredAt *time.Time    `json:"registeredAt,omitempty" db:"registered_at"` // set iff status is APPROVED
	CreatedAt    time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time     `json:"updatedAt" db:"updated_at"`
}

// Approved reports whether the student may log in
func (s *Student) Approved() bool {
	return s.Status == StatusApproved
}
