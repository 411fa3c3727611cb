// Package admission holds the pure computation of the admissions engine:
// eligibility evaluation, merit scoring, ranking, seat allocation and the
// application lifecycle table. Nothing in this package touches I/O.
package admission

import (
	"github.com/derya/admitly/internal/app/models"
	"github.com/derya/admitly/internal/pkg/apperrors"
)

// transitions enumerates every legal (current -> next) pair. A status missing
// a target here cannot reach it, whatever the caller claims.
//
// NOT_ELIGIBLE and REJECTED are terminal except for the administrative reopen
// back to UNDER_REVIEW, which requires a reason (enforced by the service).
// SELECTED and WAITLISTED stay reachable from each other so a merit-list
// regeneration can move applicants across the seat boundary.
var transitions = map[models.ApplicationStatus][]models.ApplicationStatus{
	models.StatusSubmitted:   {models.StatusUnderReview},
	models.StatusUnderReview: {models.StatusEligible, models.StatusNotEligible},
	models.StatusEligible: {
		models.StatusInterviewScheduled,
		models.StatusSelected,
		models.StatusWaitlisted,
		models.StatusRejected,
	},
	models.StatusInterviewScheduled: {
		models.StatusSelected,
		models.StatusWaitlisted,
		models.StatusRejected,
	},
	models.StatusSelected: {
		models.StatusFeeSubmitted,
		models.StatusWaitlisted,
		models.StatusRejected,
	},
	models.StatusWaitlisted: {
		models.StatusSelected,
		models.StatusRejected,
	},
	models.StatusNotEligible:  {models.StatusUnderReview},
	models.StatusRejected:     {models.StatusUnderReview},
	models.StatusFeeSubmitted: {models.StatusEnrolled},
	models.StatusEnrolled:     {},
}

// AllowedTargets returns the statuses reachable from current. The returned
// slice is a copy.
func AllowedTargets(current models.ApplicationStatus) []models.ApplicationStatus {
	targets := transitions[current]
	out := make([]models.ApplicationStatus, len(targets))
	copy(out, targets)
	return out
}

// KnownStatus reports whether s is a defined lifecycle status.
func KnownStatus(s models.ApplicationStatus) bool {
	_, ok := transitions[s]
	return ok
}

// ValidateTransition checks whether current -> target is a legal lifecycle
// step. It returns an InvalidTransitionError naming the allowed set when it
// is not.
func ValidateTransition(current, target models.ApplicationStatus) error {
	for _, allowed := range transitions[current] {
		if allowed == target {
			return nil
		}
	}

	allowed := make([]string, 0, len(transitions[current]))
	for _, t := range transitions[current] {
		allowed = append(allowed, string(t))
	}
	return apperrors.NewInvalidTransitionError(string(current), string(target), allowed)
}

// IsReopen reports whether a transition is the administrative reopen of a
// terminal decision. Reopens require a recorded reason.
func IsReopen(current, target models.ApplicationStatus) bool {
	if target != models.StatusUnderReview {
		return false
	}
	return current == models.StatusNotEligible || current == models.StatusRejected
}

// RankableStatuses are the statuses included in a merit-list generation
// snapshot. Allocation outcomes are included so regenerating a list for the
// same key re-ranks the same pool instead of finding it empty.
func RankableStatuses() []models.ApplicationStatus {
	return []models.ApplicationStatus{
		models.StatusEligible,
		models.StatusInterviewScheduled,
		models.StatusSelected,
		models.StatusWaitlisted,
	}
}
