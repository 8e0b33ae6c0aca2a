package models

import "time"

// ApprovedRoll is an allow-list entry based on the 'approved_rolls' table.
// Rows are written only by the offline roster import, never by the API.
type ApprovedRoll struct {
	ID         int64     `json:"id" db:"id"`
	RollNumber string    `json:"rollNumber" db:"roll_number"`
	AddedAt    time.Time `json:"addedAt" db:"added_at"`
}
