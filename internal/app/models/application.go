package models

import "time"

// ApplicationStatus is the lifecycle state of an admission application
type ApplicationStatus string

// Application lifecycle states
const (
	StatusSubmitted          ApplicationStatus = "SUBMITTED"
	StatusUnderReview        ApplicationStatus = "UNDER_REVIEW"
	StatusEligible           ApplicationStatus = "ELIGIBLE"
	StatusNotEligible        ApplicationStatus = "NOT_ELIGIBLE"
	StatusInterviewScheduled ApplicationStatus = "INTERVIEW_SCHEDULED"
	StatusSelected           ApplicationStatus = "SELECTED"
	StatusWaitlisted         ApplicationStatus = "WAITLISTED"
	StatusRejected           ApplicationStatus = "REJECTED"
	StatusFeeSubmitted       ApplicationStatus = "FEE_SUBMITTED"
	StatusEnrolled           ApplicationStatus = "ENROLLED"
)

// EligibilityStatus is the verdict of an eligibility check
type EligibilityStatus string

// Eligibility verdicts
const (
	EligibilityEligible    EligibilityStatus = "ELIGIBLE"
	EligibilityNotEligible EligibilityStatus = "NOT_ELIGIBLE"
	EligibilityPending     EligibilityStatus = "PENDING"
)

// AdmissionApplication defines one applicant's application to a program,
// based on the 'admission_applications' table. There is at most one per
// (applicant email, program).
type AdmissionApplication struct {
	ID                int64             `json:"id" db:"id" example:"1"`
	ApplicationNumber string            `json:"applicationNumber" db:"application_number" example:"APP-2026-7F3A9C21"` // Unique, human-readable
	ApplicantName     string            `json:"applicantName" db:"applicant_name" example:"Ayşe Yılmaz"`
	ApplicantEmail    string            `json:"applicantEmail" db:"applicant_email" example:"ayse@example.com"`
	DateOfBirth       *time.Time        `json:"dateOfBirth,omitempty" db:"date_of_birth"`
	ProgramID         int64             `json:"programId" db:"program_id" example:"3"`
	Batch             string            `json:"batch" db:"batch" example:"2026"`
	Semester          Semester          `json:"semester" db:"semester" example:"FALL"`
	AppliedAt         time.Time         `json:"appliedAt" db:"applied_at"`
	Status            ApplicationStatus `json:"status" db:"status" example:"SUBMITTED"`

	// Set once an eligibility check has run
	EligibilityStatus *EligibilityStatus `json:"eligibilityStatus,omitempty" db:"eligibility_status"`
	EligibilityScore  *float64           `json:"eligibilityScore,omitempty" db:"eligibility_score" example:"84.5"`

	// Sub-scores used for merit computation, normalized to 0-100
	EntryTestScore  *float64 `json:"entryTestScore,omitempty" db:"entry_test_score" example:"72"`
	InterviewScore  *float64 `json:"interviewScore,omitempty" db:"interview_score" example:"80"`
	ExperienceScore *float64 `json:"experienceScore,omitempty" db:"experience_score"`

	// Set by merit-list generation
	MeritRank *int `json:"meritRank,omitempty" db:"merit_rank" example:"12"`

	InterviewAt *time.Time `json:"interviewAt,omitempty" db:"interview_at"`
	Remarks     string     `json:"remarks,omitempty" db:"remarks"`
	ReviewedBy  *int64     `json:"reviewedBy,omitempty" db:"reviewed_by"`
	ReviewedAt  *time.Time `json:"reviewedAt,omitempty" db:"reviewed_at"`
}

// ApplicationFilter narrows an application listing. Nil/zero fields are not
// applied.
type ApplicationFilter struct {
	ProgramID *int64
	Batch     string
	Semester  *Semester
	Status    *ApplicationStatus
}

// AcademicHistoryEntry is one prior degree supplied by the caller for an
// eligibility check. It is evaluated, not persisted.
type AcademicHistoryEntry struct {
	DegreeName     string   `json:"degreeName" example:"High School Diploma"`
	Marks          float64  `json:"marks" example:"86.4"` // Aggregate percentage, 0-100
	CGPA           *float64 `json:"cgpa,omitempty" example:"3.4"`
	GraduationYear int      `json:"graduationYear" example:"2025"`
}
