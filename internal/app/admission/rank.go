package admission

import (
	"math"
	"sort"
	"time"
)

// ScoredApplication is one applicant entering the ranking step.
type ScoredApplication struct {
	ApplicationID     int64
	ApplicationNumber string
	ApplicantName     string
	AppliedAt         time.Time
	Score             float64
}

// RankedApplication is a scored applicant with its assigned rank.
type RankedApplication struct {
	ScoredApplication
	Rank int
}

// Rank orders applicants by score descending and assigns dense ranks 1..N.
//
// Ties within ScoreEpsilon break on earlier submission, then on the smaller
// application number. Application numbers are unique, so the order is total
// and no rank is ever shared.
func Rank(scored []ScoredApplication) []RankedApplication {
	ordered := make([]ScoredApplication, len(scored))
	copy(ordered, scored)

	sort.Slice(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if diff := a.Score - b.Score; math.Abs(diff) > ScoreEpsilon {
			return diff > 0
		}
		if !a.AppliedAt.Equal(b.AppliedAt) {
			return a.AppliedAt.Before(b.AppliedAt)
		}
		return a.ApplicationNumber < b.ApplicationNumber
	})

	ranked := make([]RankedApplication, len(ordered))
	for i, s := range ordered {
		ranked[i] = RankedApplication{ScoredApplication: s, Rank: i + 1}
	}
	return ranked
}
