package admission

import (
	"fmt"
	"math"

	"github.com/derya/admitly/internal/app/models"
	"github.com/derya/admitly/internal/pkg/apperrors"
)

// DefaultWaitlistFactor sizes the waitlist at 20% of total seats when the
// caller does not supply a factor.
const DefaultWaitlistFactor = 0.2

// AllocatedApplication is a ranked applicant with its seat-allocation outcome.
type AllocatedApplication struct {
	RankedApplication
	Outcome models.MeritOutcome
}

// Allocate labels ranked applicants against a fixed seat count: ranks up to
// totalSeats are selected, the next ceil(totalSeats*waitlistFactor) are
// waitlisted, the rest rejected. A pool smaller than totalSeats is selected
// in full with no waitlist.
func Allocate(ranked []RankedApplication, totalSeats int, waitlistFactor float64) ([]AllocatedApplication, error) {
	if totalSeats <= 0 {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("total seats must be positive, got %d", totalSeats))
	}
	if waitlistFactor < 0 {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("waitlist factor cannot be negative, got %v", waitlistFactor))
	}

	waitlistSize := int(math.Ceil(float64(totalSeats) * waitlistFactor))

	allocated := make([]AllocatedApplication, len(ranked))
	for i, r := range ranked {
		outcome := models.OutcomeRejected
		switch {
		case r.Rank <= totalSeats:
			outcome = models.OutcomeSelected
		case r.Rank <= totalSeats+waitlistSize:
			outcome = models.OutcomeWaitlisted
		}
		allocated[i] = AllocatedApplication{RankedApplication: r, Outcome: outcome}
	}
	return allocated, nil
}

// StatusFor maps an allocation outcome to the lifecycle status written back
// to the application.
func StatusFor(outcome models.MeritOutcome) models.ApplicationStatus {
	switch outcome {
	case models.OutcomeSelected:
		return models.StatusSelected
	case models.OutcomeWaitlisted:
		return models.StatusWaitlisted
	default:
		return models.StatusRejected
	}
}
