package admission

import (
	"strings"
	"time"

	"github.com/derya/admitly/internal/app/models"
)

// TestScores carries the optional exam results supplied with an eligibility
// check. They do not influence the verdict; they are stored for later merit
// computation.
type TestScores struct {
	EntryTest  *float64
	Interview  *float64
	Experience *float64
}

// EvaluateOptions supplies the dates needed for the age-limit check. Either
// may be unknown, in which case an age limit cannot be verified.
type EvaluateOptions struct {
	DateOfBirth   *time.Time
	AdmissionDate *time.Time
}

// EligibilityResult is the outcome of an eligibility evaluation. Score is the
// applicant's best aggregate marks and is informative even when the verdict
// is NOT_ELIGIBLE.
type EligibilityResult struct {
	Verdict models.EligibilityStatus
	Score   float64
}

// Evaluate checks an academic history against a program's criteria.
//
// The evaluation fails closed: without an active rule set the verdict is
// PENDING, never ELIGIBLE. A criterion that is defined but cannot be checked
// from the supplied data (no history entries, no CGPA on any entry, unknown
// birth or admission date) also yields PENDING. NOT_ELIGIBLE is returned only
// when at least one checkable criterion is actually violated.
func Evaluate(history []models.AcademicHistoryEntry, criteria *models.EligibilityCriteria, opts EvaluateOptions) EligibilityResult {
	score := bestMarks(history)

	if criteria == nil || !criteria.IsActive {
		return EligibilityResult{Verdict: models.EligibilityPending, Score: score}
	}

	var violated, pending bool

	if criteria.MinimumMarks != nil {
		if len(history) == 0 {
			pending = true
		} else if score < *criteria.MinimumMarks {
			violated = true
		}
	}

	if criteria.MinimumCGPA != nil {
		cgpa, known := bestCGPA(history)
		if !known {
			pending = true
		} else if cgpa < *criteria.MinimumCGPA {
			violated = true
		}
	}

	if len(criteria.RequiredSubjects) > 0 {
		if len(history) == 0 {
			pending = true
		} else {
			for _, subject := range criteria.RequiredSubjects {
				if !hasSubject(history, subject) {
					violated = true
					break
				}
			}
		}
	}

	if criteria.AgeLimit != nil {
		if opts.DateOfBirth == nil || opts.AdmissionDate == nil {
			// Unverifiable, not failing
			pending = true
		} else if ageAt(*opts.DateOfBirth, *opts.AdmissionDate) > *criteria.AgeLimit {
			violated = true
		}
	}

	switch {
	case violated:
		return EligibilityResult{Verdict: models.EligibilityNotEligible, Score: score}
	case pending:
		return EligibilityResult{Verdict: models.EligibilityPending, Score: score}
	default:
		return EligibilityResult{Verdict: models.EligibilityEligible, Score: score}
	}
}

// ageAt returns full years between a birth date and a reference date.
func ageAt(birthDate, at time.Time) int {
	years := at.Year() - birthDate.Year()
	// Birthday not yet reached in the reference year
	if at.YearDay() < birthDate.YearDay() {
		years--
	}
	return years
}

// bestMarks returns the maximum aggregate marks across the history, 0 for an
// empty history.
func bestMarks(history []models.AcademicHistoryEntry) float64 {
	var best float64
	for _, entry := range history {
		if entry.Marks > best {
			best = entry.Marks
		}
	}
	return best
}

// bestCGPA returns the maximum CGPA across entries that carry one. The second
// return is false when no entry does.
func bestCGPA(history []models.AcademicHistoryEntry) (float64, bool) {
	var best float64
	var known bool
	for _, entry := range history {
		if entry.CGPA == nil {
			continue
		}
		if !known || *entry.CGPA > best {
			best = *entry.CGPA
			known = true
		}
	}
	return best, known
}

// hasSubject reports whether any history entry's degree label matches the
// subject, case-insensitively.
func hasSubject(history []models.AcademicHistoryEntry, subject string) bool {
	for _, entry := range history {
		if strings.EqualFold(strings.TrimSpace(entry.DegreeName), strings.TrimSpace(subject)) {
			return true
		}
	}
	return false
}
