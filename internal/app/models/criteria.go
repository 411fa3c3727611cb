package models

import "time"

// EligibilityCriteria defines the rule set an application is evaluated
// against, based on the 'eligibility_criteria' table. At most one record per
// program is active at a time; evaluation always uses the active record.
type EligibilityCriteria struct {
	ID                int64    `json:"id" db:"id" example:"1"`
	ProgramID         int64    `json:"programId" db:"program_id" example:"3"`
	MinimumMarks      *float64 `json:"minimumMarks,omitempty" db:"minimum_marks" example:"60"`
	MinimumCGPA       *float64 `json:"minimumCgpa,omitempty" db:"minimum_cgpa" example:"2.5"`
	RequiredSubjects  []string `json:"requiredSubjects,omitempty" db:"required_subjects" example:"Mathematics,Physics"`
	AgeLimit          *int     `json:"ageLimit,omitempty" db:"age_limit" example:"25"`
	OtherRequirements string   `json:"otherRequirements,omitempty" db:"other_requirements"`
	IsActive          bool     `json:"isActive" db:"is_active" example:"true"`
	CreatedAt         time.Time `json:"createdAt" db:"created_at"`
}
