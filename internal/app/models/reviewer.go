package models

import "time"

// Reviewer defines a staff account allowed to act on applications, based on
// the 'reviewers' table. Transitions record the acting reviewer for audit.
type Reviewer struct {
	ID           int64        `json:"id" db:"id" example:"1"`
	Email        string       `json:"email" db:"email" example:"officer@uni.edu"`
	FullName     string       `json:"fullName" db:"full_name" example:"Mehmet Demir"`
	PasswordHash string       `json:"-" db:"password_hash"`
	Role         ReviewerRole `json:"role" db:"role" example:"ADMISSION_OFFICER"`
	IsActive     bool         `json:"isActive" db:"is_active" example:"true"`
	CreatedAt    time.Time    `json:"createdAt" db:"created_at"`
}
