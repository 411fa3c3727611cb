package models

import "time"

// MeritOutcome is the seat-allocation result for one ranked applicant
type MeritOutcome string

// Allocation outcomes
const (
	OutcomeSelected   MeritOutcome = "SELECTED"
	OutcomeWaitlisted MeritOutcome = "WAITLISTED"
	OutcomeRejected   MeritOutcome = "REJECTED"
)

// MeritList is one generation of the ranked list for a (program, batch,
// semester) key, based on the 'merit_lists' table. Generations are never
// overwritten; regenerating inserts a new one with a higher version.
type MeritList struct {
	ID             int64     `json:"id" db:"id" example:"1"`
	ProgramID      int64     `json:"programId" db:"program_id" example:"3"`
	Batch          string    `json:"batch" db:"batch" example:"2026"`
	Semester       Semester  `json:"semester" db:"semester" example:"FALL"`
	Generation     int       `json:"generation" db:"generation" example:"2"` // Monotonic per key
	TotalSeats     int       `json:"totalSeats" db:"total_seats" example:"50"`
	WaitlistFactor float64   `json:"waitlistFactor" db:"waitlist_factor" example:"0.2"`
	PublishedAt    time.Time `json:"publishedAt" db:"published_at"`

	Entries []MeritApplication `json:"entries"`
}

// MeritApplication is one entry of a merit list. Applicant fields are
// denormalized for list display.
type MeritApplication struct {
	ApplicationID     int64        `json:"applicationId" db:"application_id" example:"17"`
	ApplicationNumber string       `json:"applicationNumber" db:"application_number" example:"APP-2026-7F3A9C21"`
	ApplicantName     string       `json:"applicantName" db:"applicant_name" example:"Ayşe Yılmaz"`
	Score             float64      `json:"score" db:"score" example:"81.75"`
	Rank              int          `json:"rank" db:"rank" example:"4"`
	Outcome           MeritOutcome `json:"outcome" db:"outcome" example:"SELECTED"`
}
