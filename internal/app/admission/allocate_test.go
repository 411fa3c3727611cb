package admission

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/derya/admitly/internal/app/models"
	"github.com/derya/admitly/internal/pkg/apperrors"
)

func rankedPool(n int) []RankedApplication {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	pool := make([]RankedApplication, n)
	for i := 0; i < n; i++ {
		pool[i] = RankedApplication{
			ScoredApplication: ScoredApplication{
				ApplicationID:     int64(i + 1),
				ApplicationNumber: fmt.Sprintf("APP-2026-%04d", i),
				AppliedAt:         base,
				Score:             float64(100 - i),
			},
			Rank: i + 1,
		}
	}
	return pool
}

func TestAllocate_SeatBound(t *testing.T) {
	allocated, err := Allocate(rankedPool(100), 50, 0.2)
	require.NoError(t, err)
	require.Len(t, allocated, 100)

	var selected, waitlisted, rejected int
	for _, a := range allocated {
		switch a.Outcome {
		case models.OutcomeSelected:
			selected++
			assert.LessOrEqual(t, a.Rank, 50)
		case models.OutcomeWaitlisted:
			waitlisted++
			assert.Greater(t, a.Rank, 50)
			assert.LessOrEqual(t, a.Rank, 60)
		case models.OutcomeRejected:
			rejected++
			assert.Greater(t, a.Rank, 60)
		}
	}
	assert.Equal(t, 50, selected)
	assert.Equal(t, 10, waitlisted)
	assert.Equal(t, 40, rejected)
}

func TestAllocate_SmallPool(t *testing.T) {
	allocated, err := Allocate(rankedPool(30), 50, 0.2)
	require.NoError(t, err)
	require.Len(t, allocated, 30)

	for _, a := range allocated {
		assert.Equal(t, models.OutcomeSelected, a.Outcome)
	}
}

func TestAllocate_WaitlistRoundsUp(t *testing.T) {
	// 7 seats at factor 0.2 gives ceil(1.4) = 2 waitlist slots.
	allocated, err := Allocate(rankedPool(12), 7, 0.2)
	require.NoError(t, err)

	var waitlisted int
	for _, a := range allocated {
		if a.Outcome == models.OutcomeWaitlisted {
			waitlisted++
		}
	}
	assert.Equal(t, 2, waitlisted)
}

func TestAllocate_InvalidInputs(t *testing.T) {
	t.Run("non-positive seats", func(t *testing.T) {
		_, err := Allocate(rankedPool(5), 0, 0.2)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("negative waitlist factor", func(t *testing.T) {
		_, err := Allocate(rankedPool(5), 10, -0.1)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, models.StatusSelected, StatusFor(models.OutcomeSelected))
	assert.Equal(t, models.StatusWaitlisted, StatusFor(models.OutcomeWaitlisted))
	assert.Equal(t, models.StatusRejected, StatusFor(models.OutcomeRejected))
}
