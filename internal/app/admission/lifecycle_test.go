package admission

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/derya/admitly/internal/app/models"
	"github.com/derya/admitly/internal/pkg/apperrors"
)

func TestValidateTransition_LegalSteps(t *testing.T) {
	legal := []struct {
		from, to models.ApplicationStatus
	}{
		{models.StatusSubmitted, models.StatusUnderReview},
		{models.StatusUnderReview, models.StatusEligible},
		{models.StatusUnderReview, models.StatusNotEligible},
		{models.StatusEligible, models.StatusInterviewScheduled},
		{models.StatusEligible, models.StatusSelected},
		{models.StatusInterviewScheduled, models.StatusWaitlisted},
		{models.StatusSelected, models.StatusFeeSubmitted},
		{models.StatusFeeSubmitted, models.StatusEnrolled},
		{models.StatusWaitlisted, models.StatusSelected},
		{models.StatusNotEligible, models.StatusUnderReview},
		{models.StatusRejected, models.StatusUnderReview},
	}

	for _, tc := range legal {
		assert.NoError(t, ValidateTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestValidateTransition_IllegalJumps(t *testing.T) {
	t.Run("submitted cannot enroll directly", func(t *testing.T) {
		err := ValidateTransition(models.StatusSubmitted, models.StatusEnrolled)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)

		var transitionErr *apperrors.InvalidTransitionError
		require.True(t, errors.As(err, &transitionErr))
		assert.Equal(t, string(models.StatusSubmitted), transitionErr.Current)
		assert.Equal(t, string(models.StatusEnrolled), transitionErr.Requested)
		assert.Equal(t, []string{string(models.StatusUnderReview)}, transitionErr.Allowed)
	})

	t.Run("enrolled is terminal", func(t *testing.T) {
		err := ValidateTransition(models.StatusEnrolled, models.StatusUnderReview)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
	})

	t.Run("fee cannot be submitted before selection", func(t *testing.T) {
		err := ValidateTransition(models.StatusEligible, models.StatusFeeSubmitted)
		require.Error(t, err)
	})

	t.Run("eligibility verdicts only come out of review", func(t *testing.T) {
		err := ValidateTransition(models.StatusSubmitted, models.StatusEligible)
		require.Error(t, err)
	})
}

func TestIsReopen(t *testing.T) {
	assert.True(t, IsReopen(models.StatusNotEligible, models.StatusUnderReview))
	assert.True(t, IsReopen(models.StatusRejected, models.StatusUnderReview))
	assert.False(t, IsReopen(models.StatusSubmitted, models.StatusUnderReview))
	assert.False(t, IsReopen(models.StatusRejected, models.StatusSelected))
}

func TestAllowedTargets_ReturnsCopy(t *testing.T) {
	targets := AllowedTargets(models.StatusUnderReview)
	require.NotEmpty(t, targets)
	targets[0] = models.StatusEnrolled

	// Mutating the returned slice must not corrupt the table.
	assert.NoError(t, ValidateTransition(models.StatusUnderReview, models.StatusEligible))
}

func TestRankableStatuses(t *testing.T) {
	statuses := RankableStatuses()
	assert.Contains(t, statuses, models.StatusEligible)
	assert.Contains(t, statuses, models.StatusInterviewScheduled)
	assert.NotContains(t, statuses, models.StatusSubmitted)
	assert.NotContains(t, statuses, models.StatusNotEligible)
	assert.NotContains(t, statuses, models.StatusEnrolled)
}
