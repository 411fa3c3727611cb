package dto

import (
	"github.com/derya/admitly/internal/app/admission"
)

// WeightsRequest is the weight configuration for merit computation. Only the
// four recognized components exist; unknown keys are rejected by binding.
type WeightsRequest struct {
	Academic   float64 `json:"academic" binding:"required,gt=0" example:"0.5"`
	EntryTest  float64 `json:"entryTest" binding:"omitempty,gte=0" example:"0.3"`
	Interview  float64 `json:"interview" binding:"omitempty,gte=0" example:"0.2"`
	Experience float64 `json:"experience" binding:"omitempty,gte=0"`
}

// GenerateMeritListRequest is the payload for generating a merit list
type GenerateMeritListRequest struct {
	ProgramID      int64           `json:"programId" binding:"required" example:"3"`
	Batch          string          `json:"batch" binding:"required" example:"2026"`
	Semester       string          `json:"semester" binding:"required,oneof=FALL SPRING" example:"FALL"`
	TotalSeats     int             `json:"totalSeats" binding:"required,gt=0" example:"50"`
	Weights        *WeightsRequest `json:"weights,omitempty"`
	WaitlistFactor *float64        `json:"waitlistFactor,omitempty" binding:"omitempty,gte=0" example:"0.2"`
}

// ToWeights converts the request weights to the engine's weight configuration
func (r *WeightsRequest) ToWeights() admission.Weights {
	return admission.Weights{
		Academic:   r.Academic,
		EntryTest:  r.EntryTest,
		Interview:  r.Interview,
		Experience: r.Experience,
	}
}
