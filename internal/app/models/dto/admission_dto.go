package dto

import (
	"time"

	"github.com/derya/admitly/internal/app/models"
)

// SubmitApplicationRequest is the payload for creating a new application
type SubmitApplicationRequest struct {
	ApplicantName  string     `json:"applicantName" binding:"required" example:"Ayşe Yılmaz"`
	ApplicantEmail string     `json:"applicantEmail" binding:"required,email" example:"ayse@example.com"`
	DateOfBirth    *time.Time `json:"dateOfBirth,omitempty" example:"2004-05-12T00:00:00Z"`
	ProgramID      int64      `json:"programId" binding:"required" example:"3"`
	Batch          string     `json:"batch" binding:"required" example:"2026"`
	Semester       string     `json:"semester" binding:"required,oneof=FALL SPRING" example:"FALL"`
	Remarks        string     `json:"remarks,omitempty"`
}

// AcademicHistoryEntryRequest is one degree record supplied for an
// eligibility check
type AcademicHistoryEntryRequest struct {
	DegreeName     string   `json:"degreeName" binding:"required" example:"Mathematics"`
	Marks          float64  `json:"marks" binding:"required,gte=0,lte=100" example:"86.4"`
	CGPA           *float64 `json:"cgpa,omitempty" binding:"omitempty,gte=0,lte=4" example:"3.4"`
	GraduationYear int      `json:"graduationYear" binding:"required" example:"2025"`
}

// TestScoresRequest carries optional exam results with an eligibility check
type TestScoresRequest struct {
	EntryTest  *float64 `json:"entryTest,omitempty" binding:"omitempty,gte=0,lte=100" example:"72"`
	Interview  *float64 `json:"interview,omitempty" binding:"omitempty,gte=0,lte=100" example:"80"`
	Experience *float64 `json:"experience,omitempty" binding:"omitempty,gte=0,lte=100" example:"55"`
}

// CheckEligibilityRequest is the payload for running an eligibility check
type CheckEligibilityRequest struct {
	AcademicHistory []AcademicHistoryEntryRequest `json:"academicHistory" binding:"required,dive"`
	TestScores      *TestScoresRequest            `json:"testScores,omitempty"`
	AdmissionDate   *time.Time                    `json:"admissionDate,omitempty" example:"2026-09-01T00:00:00Z"`
}

// EligibilityCheckResponse reports the verdict of an eligibility check
type EligibilityCheckResponse struct {
	ApplicationID     int64                    `json:"applicationId" example:"17"`
	EligibilityStatus models.EligibilityStatus `json:"eligibilityStatus" example:"ELIGIBLE"`
	EligibilityScore  float64                  `json:"eligibilityScore" example:"86.4"`
	Status            models.ApplicationStatus `json:"status" example:"ELIGIBLE"`
}

// TransitionRequest is the payload for an explicit lifecycle transition.
// InterviewAt is required when transitioning to INTERVIEW_SCHEDULED; Reason is
// required when reopening a closed application.
type TransitionRequest struct {
	TargetStatus string     `json:"targetStatus" binding:"required" example:"INTERVIEW_SCHEDULED"`
	Reason       string     `json:"reason,omitempty" example:"Documents re-submitted after appeal"`
	InterviewAt  *time.Time `json:"interviewAt,omitempty" example:"2026-04-10T14:00:00Z"`
}

// ApplicationListResponse is one page of a filtered application listing
type ApplicationListResponse struct {
	Applications []*models.AdmissionApplication `json:"applications"`
	Pagination   PaginationInfo                 `json:"pagination"`
}

// ToModel converts a request entry to the evaluation model
func (r AcademicHistoryEntryRequest) ToModel() models.AcademicHistoryEntry {
	return models.AcademicHistoryEntry{
		DegreeName:     r.DegreeName,
		Marks:          r.Marks,
		CGPA:           r.CGPA,
		GraduationYear: r.GraduationYear,
	}
}
