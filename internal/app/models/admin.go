package models

import "time"

// Session roles carried in the JWT role claim
const (
	RoleStudent = "STUDENT"
	RoleAdmin   = "ADMIN"
)

// Admin defines the admin model based on the 'admins' table
type Admin struct {
	ID        int64     `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Password  string    `json:"-" db:"password"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
