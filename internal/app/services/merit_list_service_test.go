package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/derya/admitly/internal/app/admission"
	"github.com/derya/admitly/internal/app/models"
	"github.com/derya/admitly/internal/pkg/apperrors"
)

func floatPtr(v float64) *float64 { return &v }

func seedPool(t *testing.T, repo *fakeApplicationRepo, n int) {
	t.Helper()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		app := &models.AdmissionApplication{
			ApplicationNumber: fmt.Sprintf("APP-2026-%04d", i),
			ApplicantName:     fmt.Sprintf("Applicant %d", i),
			ApplicantEmail:    fmt.Sprintf("applicant%d@example.com", i),
			ProgramID:         3,
			Batch:             "2026",
			Semester:          models.SemesterFall,
			AppliedAt:         base.Add(time.Duration(i) * time.Minute),
			Status:            models.StatusEligible,
			EligibilityScore:  floatPtr(float64(50 + i%50)),
			EntryTestScore:    floatPtr(float64(40 + i%60)),
		}
		require.NoError(t, repo.Create(context.Background(), app))
	}
}

func generateParams() GenerateParams {
	return GenerateParams{
		ProgramID:  3,
		Batch:      "2026",
		Semester:   models.SemesterFall,
		TotalSeats: 50,
		Weights:    admission.Weights{Academic: 0.6, EntryTest: 0.4},
		ActorID:    1,
	}
}

func TestGenerate_AllocatesAgainstSeats(t *testing.T) {
	appRepo := newFakeApplicationRepo()
	listRepo := newFakeMeritListRepo()
	seedPool(t, appRepo, 100)

	svc := NewMeritListService(appRepo, listRepo, 4, 0, zerolog.Nop())
	list, warnings, err := svc.Generate(context.Background(), generateParams())
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, list.Entries, 100)
	assert.Equal(t, 1, list.Generation)

	var selected, waitlisted, rejected int
	for i, entry := range list.Entries {
		assert.Equal(t, i+1, entry.Rank, "ranks are dense and ordered")
		switch entry.Outcome {
		case models.OutcomeSelected:
			selected++
		case models.OutcomeWaitlisted:
			waitlisted++
		case models.OutcomeRejected:
			rejected++
		}
	}
	assert.Equal(t, 50, selected)
	assert.Equal(t, 10, waitlisted)
	assert.Equal(t, 40, rejected)

	// Outcomes and ranks were written back to the applications
	app, err := appRepo.GetByID(context.Background(), list.Entries[0].ApplicationID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusSelected, app.Status)
	require.NotNil(t, app.MeritRank)
	assert.Equal(t, 1, *app.MeritRank)
}

func TestGenerate_ConfiguredWaitlistFactor(t *testing.T) {
	appRepo := newFakeApplicationRepo()
	listRepo := newFakeMeritListRepo()
	seedPool(t, appRepo, 100)

	// A request without its own factor falls back to the configured one
	svc := NewMeritListService(appRepo, listRepo, 4, 0.5, zerolog.Nop())
	list, _, err := svc.Generate(context.Background(), generateParams())
	require.NoError(t, err)

	var waitlisted int
	for _, entry := range list.Entries {
		if entry.Outcome == models.OutcomeWaitlisted {
			waitlisted++
		}
	}
	assert.Equal(t, 25, waitlisted)

	// A factor carried by the request still wins over the configured default
	params := generateParams()
	params.WaitlistFactor = 0.1
	list, _, err = svc.Generate(context.Background(), params)
	require.NoError(t, err)

	waitlisted = 0
	for _, entry := range list.Entries {
		if entry.Outcome == models.OutcomeWaitlisted {
			waitlisted++
		}
	}
	assert.Equal(t, 5, waitlisted)
}

func TestGenerate_VersionedRegeneration(t *testing.T) {
	appRepo := newFakeApplicationRepo()
	listRepo := newFakeMeritListRepo()
	seedPool(t, appRepo, 40)

	svc := NewMeritListService(appRepo, listRepo, 4, 0, zerolog.Nop())
	params := generateParams()

	first, _, err := svc.Generate(context.Background(), params)
	require.NoError(t, err)
	second, _, err := svc.Generate(context.Background(), params)
	require.NoError(t, err)

	assert.Equal(t, 1, first.Generation)
	assert.Equal(t, 2, second.Generation)

	// Identical inputs produce identical rank/outcome assignments
	require.Equal(t, len(first.Entries), len(second.Entries))
	for i := range first.Entries {
		assert.Equal(t, first.Entries[i].ApplicationID, second.Entries[i].ApplicationID)
		assert.Equal(t, first.Entries[i].Rank, second.Entries[i].Rank)
		assert.Equal(t, first.Entries[i].Outcome, second.Entries[i].Outcome)
	}

	// Both generations are retained
	latest, err := svc.GetLatest(context.Background(), params.ProgramID, params.Batch, params.Semester)
	require.NoError(t, err)
	assert.Equal(t, 2, latest.Generation)
	_, err = svc.GetByID(context.Background(), first.ID)
	assert.NoError(t, err)
}

func TestGenerate_SmallPoolAllSelected(t *testing.T) {
	appRepo := newFakeApplicationRepo()
	listRepo := newFakeMeritListRepo()
	seedPool(t, appRepo, 30)

	svc := NewMeritListService(appRepo, listRepo, 4, 0, zerolog.Nop())
	list, _, err := svc.Generate(context.Background(), generateParams())
	require.NoError(t, err)

	for _, entry := range list.Entries {
		assert.Equal(t, models.OutcomeSelected, entry.Outcome)
	}
}

func TestGenerate_ConflictBecomesWarning(t *testing.T) {
	appRepo := newFakeApplicationRepo()
	listRepo := newFakeMeritListRepo()
	seedPool(t, appRepo, 10)

	// Simulate a reviewer rejecting application 5 after the snapshot would
	// be taken. The guard fails for it; everything else proceeds.
	svc := NewMeritListService(appRepo, listRepo, 1, 0, zerolog.Nop())
	appRepo.force(5, models.StatusEnrolled)

	list, warnings, err := svc.Generate(context.Background(), generateParams())
	require.NoError(t, err)
	require.NotNil(t, list)
	assert.Len(t, list.Entries, 9)
	assert.Empty(t, warnings)
}

func TestGenerate_WriteBackConflictIsSkipped(t *testing.T) {
	appRepo := newFakeApplicationRepo()
	listRepo := &conflictOnWriteBackRepo{fakeMeritListRepo: newFakeMeritListRepo(), appRepo: appRepo}
	seedPool(t, appRepo, 5)

	svc := NewMeritListService(appRepo, listRepo, 1, 0, zerolog.Nop())
	list, warnings, err := svc.Generate(context.Background(), generateParams())
	require.NoError(t, err)
	require.NotNil(t, list)

	// The contested application is reported, not fatal
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "skipped")
}

// conflictOnWriteBackRepo flips one application's status between the list
// save and the status write-back, like a concurrent reviewer action would.
type conflictOnWriteBackRepo struct {
	*fakeMeritListRepo
	appRepo *fakeApplicationRepo
}

func (r *conflictOnWriteBackRepo) Save(ctx context.Context, list *models.MeritList) error {
	if err := r.fakeMeritListRepo.Save(ctx, list); err != nil {
		return err
	}
	r.appRepo.force(list.Entries[0].ApplicationID, models.StatusEnrolled)
	return nil
}

func TestGenerate_Validation(t *testing.T) {
	svc := NewMeritListService(newFakeApplicationRepo(), newFakeMeritListRepo(), 4, 0, zerolog.Nop())

	t.Run("non-positive seats abort before any write", func(t *testing.T) {
		params := generateParams()
		params.TotalSeats = 0
		_, _, err := svc.Generate(context.Background(), params)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("zero academic weight aborts", func(t *testing.T) {
		params := generateParams()
		params.Weights = admission.Weights{EntryTest: 1}
		_, _, err := svc.Generate(context.Background(), params)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("empty pool is reported", func(t *testing.T) {
		_, _, err := svc.Generate(context.Background(), generateParams())
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrEmptyCandidatePool)
	})
}

func TestGenerate_UnscorableApplicantBecomesWarning(t *testing.T) {
	appRepo := newFakeApplicationRepo()
	listRepo := newFakeMeritListRepo()
	seedPool(t, appRepo, 4)

	// One applicant without an eligibility score cannot enter the ranking
	app := &models.AdmissionApplication{
		ApplicationNumber: "APP-2026-NOSCORE",
		ApplicantName:     "No Score",
		ApplicantEmail:    "noscore@example.com",
		ProgramID:         3,
		Batch:             "2026",
		Semester:          models.SemesterFall,
		AppliedAt:         time.Now(),
		Status:            models.StatusEligible,
	}
	require.NoError(t, appRepo.Create(context.Background(), app))

	svc := NewMeritListService(appRepo, listRepo, 4, 0, zerolog.Nop())
	list, warnings, err := svc.Generate(context.Background(), generateParams())
	require.NoError(t, err)
	assert.Len(t, list.Entries, 4)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "APP-2026-NOSCORE")
}
