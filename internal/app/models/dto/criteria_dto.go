package dto

import "github.com/derya/admitly/internal/app/models"

// CreateCriteriaRequest is the payload for publishing a program's active
// eligibility criteria. Creating a record deactivates the previous active one.
type CreateCriteriaRequest struct {
	ProgramID         int64    `json:"programId" binding:"required" example:"3"`
	MinimumMarks      *float64 `json:"minimumMarks,omitempty" binding:"omitempty,gte=0,lte=100" example:"60"`
	MinimumCGPA       *float64 `json:"minimumCgpa,omitempty" binding:"omitempty,gte=0,lte=4" example:"2.5"`
	RequiredSubjects  []string `json:"requiredSubjects,omitempty" example:"Mathematics,Physics"`
	AgeLimit          *int     `json:"ageLimit,omitempty" binding:"omitempty,gt=0" example:"25"`
	OtherRequirements string   `json:"otherRequirements,omitempty"`
}

// ToModel converts the request to the criteria model
func (r CreateCriteriaRequest) ToModel() *models.EligibilityCriteria {
	return &models.EligibilityCriteria{
		ProgramID:         r.ProgramID,
		MinimumMarks:      r.MinimumMarks,
		MinimumCGPA:       r.MinimumCGPA,
		RequiredSubjects:  r.RequiredSubjects,
		AgeLimit:          r.AgeLimit,
		OtherRequirements: r.OtherRequirements,
		IsActive:          true,
	}
}
