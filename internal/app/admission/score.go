package admission

import (
	"fmt"

	"github.com/derya/admitly/internal/pkg/apperrors"
)

// ScoreEpsilon is the smallest score difference treated as meaningful for
// ranking. Differences at or below it are ties and fall through to the
// deterministic tie-break.
const ScoreEpsilon = 1e-6

// SubScores carries one applicant's component scores, each pre-normalized to
// 0-100 by the caller. Academic is always present (it is the eligibility
// score); the remaining components are optional program features.
type SubScores struct {
	Academic   float64
	EntryTest  *float64
	Interview  *float64
	Experience *float64
}

// Weights is the configured weight per recognized component. A zero weight
// means the component does not count for this program. Weights need not sum
// to 1; ComputeScore renormalizes over the components actually supplied.
type Weights struct {
	Academic   float64 `json:"academic" yaml:"academic"`
	EntryTest  float64 `json:"entryTest" yaml:"entry_test"`
	Interview  float64 `json:"interview" yaml:"interview"`
	Experience float64 `json:"experience" yaml:"experience"`
}

// ComputeScore combines sub-scores into a single merit score in [0, 100].
//
// Only components with both a supplied score and a positive weight
// contribute, and the divisor is the sum of exactly those weights. An
// applicant missing an optional component is therefore scored against the
// weights that apply to the data they have, not penalized for the gap.
func ComputeScore(sub SubScores, weights Weights) (float64, error) {
	if weights.Academic <= 0 {
		return 0, apperrors.NewValidationError(
			fmt.Sprintf("academic weight must be positive, got %v", weights.Academic))
	}

	weighted := sub.Academic * weights.Academic
	weightSum := weights.Academic

	if sub.EntryTest != nil && weights.EntryTest > 0 {
		weighted += *sub.EntryTest * weights.EntryTest
		weightSum += weights.EntryTest
	}
	if sub.Interview != nil && weights.Interview > 0 {
		weighted += *sub.Interview * weights.Interview
		weightSum += weights.Interview
	}
	if sub.Experience != nil && weights.Experience > 0 {
		weighted += *sub.Experience * weights.Experience
		weightSum += weights.Experience
	}

	return weighted / weightSum, nil
}
