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

func intPtr(v int) *int { return &v }

func int64Ptr(v int64) *int64 { return &v }

func newAdmissionService(appRepo *fakeApplicationRepo, criteriaRepo *fakeCriteriaRepo) *AdmissionService {
	return NewAdmissionService(appRepo, criteriaRepo, zerolog.Nop())
}

func submitTestApplication(t *testing.T, svc *AdmissionService) *models.AdmissionApplication {
	t.Helper()
	app := &models.AdmissionApplication{
		ApplicantName:  "Ayşe Yılmaz",
		ApplicantEmail: "ayse@example.com",
		ProgramID:      3,
		Batch:          "2026",
		Semester:       models.SemesterFall,
	}
	require.NoError(t, svc.SubmitApplication(context.Background(), app))
	return app
}

func TestSubmitApplication(t *testing.T) {
	svc := newAdmissionService(newFakeApplicationRepo(), newFakeCriteriaRepo())

	app := submitTestApplication(t, svc)
	assert.Equal(t, models.StatusSubmitted, app.Status)
	assert.NotEmpty(t, app.ApplicationNumber)
	assert.NotZero(t, app.ID)

	t.Run("missing applicant data fails validation", func(t *testing.T) {
		err := svc.SubmitApplication(context.Background(), &models.AdmissionApplication{ProgramID: 3})
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})
}

func TestListApplications(t *testing.T) {
	appRepo := newFakeApplicationRepo()
	svc := newAdmissionService(appRepo, newFakeCriteriaRepo())

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	seed := func(i int, programID int64, batch string, status models.ApplicationStatus) {
		t.Helper()
		require.NoError(t, appRepo.Create(context.Background(), &models.AdmissionApplication{
			ApplicationNumber: fmt.Sprintf("APP-2026-%04d", i),
			ApplicantName:     fmt.Sprintf("Applicant %d", i),
			ApplicantEmail:    fmt.Sprintf("applicant%d@example.com", i),
			ProgramID:         programID,
			Batch:             batch,
			Semester:          models.SemesterFall,
			AppliedAt:         base.Add(time.Duration(i) * time.Minute),
			Status:            status,
		}))
	}
	for i := 0; i < 12; i++ {
		seed(i, 3, "2026", models.StatusSubmitted)
	}
	seed(12, 3, "2026", models.StatusEligible)
	seed(13, 4, "2026", models.StatusSubmitted)
	seed(14, 3, "2025", models.StatusSubmitted)

	t.Run("filters combine", func(t *testing.T) {
		status := models.StatusSubmitted
		apps, total, err := svc.ListApplications(context.Background(), models.ApplicationFilter{
			ProgramID: int64Ptr(3),
			Batch:     "2026",
			Status:    &status,
		}, 1, 50)
		require.NoError(t, err)
		assert.Equal(t, int64(12), total)
		assert.Len(t, apps, 12)
		for _, app := range apps {
			assert.Equal(t, int64(3), app.ProgramID)
			assert.Equal(t, "2026", app.Batch)
			assert.Equal(t, models.StatusSubmitted, app.Status)
		}
	})

	t.Run("pages window the listing newest first", func(t *testing.T) {
		apps, total, err := svc.ListApplications(context.Background(), models.ApplicationFilter{}, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(15), total)
		require.Len(t, apps, 10)
		assert.Equal(t, "APP-2026-0014", apps[0].ApplicationNumber)

		apps, _, err = svc.ListApplications(context.Background(), models.ApplicationFilter{}, 2, 10)
		require.NoError(t, err)
		assert.Len(t, apps, 5)
	})

	t.Run("non-positive program id fails validation", func(t *testing.T) {
		_, _, err := svc.ListApplications(context.Background(), models.ApplicationFilter{ProgramID: int64Ptr(0)}, 1, 10)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})
}

func TestCheckEligibility_Verdicts(t *testing.T) {
	history := []models.AcademicHistoryEntry{{DegreeName: "High School", Marks: 75}}

	t.Run("eligible verdict moves the application to ELIGIBLE", func(t *testing.T) {
		appRepo := newFakeApplicationRepo()
		criteriaRepo := newFakeCriteriaRepo()
		require.NoError(t, criteriaRepo.Create(context.Background(), &models.EligibilityCriteria{
			ProgramID:    3,
			MinimumMarks: floatPtr(60),
		}))
		svc := newAdmissionService(appRepo, criteriaRepo)
		app := submitTestApplication(t, svc)

		updated, err := svc.CheckEligibility(context.Background(), app.ID, history, nil, nil, 1)
		require.NoError(t, err)
		assert.Equal(t, models.StatusEligible, updated.Status)
		require.NotNil(t, updated.EligibilityStatus)
		assert.Equal(t, models.EligibilityEligible, *updated.EligibilityStatus)
		assert.Equal(t, 75.0, *updated.EligibilityScore)
	})

	t.Run("not eligible verdict does not auto-reject", func(t *testing.T) {
		appRepo := newFakeApplicationRepo()
		criteriaRepo := newFakeCriteriaRepo()
		require.NoError(t, criteriaRepo.Create(context.Background(), &models.EligibilityCriteria{
			ProgramID:    3,
			MinimumMarks: floatPtr(90),
		}))
		svc := newAdmissionService(appRepo, criteriaRepo)
		app := submitTestApplication(t, svc)

		updated, err := svc.CheckEligibility(context.Background(), app.ID, history, nil, nil, 1)
		require.NoError(t, err)
		// NOT_ELIGIBLE, not REJECTED: a reviewer must act
		assert.Equal(t, models.StatusNotEligible, updated.Status)
	})

	t.Run("missing criteria leaves the application under review", func(t *testing.T) {
		appRepo := newFakeApplicationRepo()
		svc := newAdmissionService(appRepo, newFakeCriteriaRepo())
		app := submitTestApplication(t, svc)

		updated, err := svc.CheckEligibility(context.Background(), app.ID, history, nil, nil, 1)
		require.NoError(t, err)
		assert.Equal(t, models.StatusUnderReview, updated.Status)
		require.NotNil(t, updated.EligibilityStatus)
		assert.Equal(t, models.EligibilityPending, *updated.EligibilityStatus)
	})

	t.Run("supplied test scores are stored for merit computation", func(t *testing.T) {
		appRepo := newFakeApplicationRepo()
		criteriaRepo := newFakeCriteriaRepo()
		require.NoError(t, criteriaRepo.Create(context.Background(), &models.EligibilityCriteria{
			ProgramID:    3,
			MinimumMarks: floatPtr(60),
		}))
		svc := newAdmissionService(appRepo, criteriaRepo)
		app := submitTestApplication(t, svc)

		scores := &admission.TestScores{EntryTest: floatPtr(72), Experience: floatPtr(55)}
		_, err := svc.CheckEligibility(context.Background(), app.ID, history, scores, nil, 1)
		require.NoError(t, err)

		stored, err := appRepo.GetByID(context.Background(), app.ID)
		require.NoError(t, err)
		require.NotNil(t, stored.EntryTestScore)
		assert.Equal(t, 72.0, *stored.EntryTestScore)
		require.NotNil(t, stored.ExperienceScore)
		assert.Equal(t, 55.0, *stored.ExperienceScore)
	})

	t.Run("age limit without admission date stays pending", func(t *testing.T) {
		appRepo := newFakeApplicationRepo()
		criteriaRepo := newFakeCriteriaRepo()
		require.NoError(t, criteriaRepo.Create(context.Background(), &models.EligibilityCriteria{
			ProgramID: 3,
			AgeLimit:  intPtr(25),
		}))
		svc := newAdmissionService(appRepo, criteriaRepo)
		app := submitTestApplication(t, svc)

		updated, err := svc.CheckEligibility(context.Background(), app.ID, history, nil, nil, 1)
		require.NoError(t, err)
		assert.Equal(t, models.StatusUnderReview, updated.Status)
	})
}

func TestTransition(t *testing.T) {
	interviewAt := time.Date(2026, 4, 10, 14, 0, 0, 0, time.UTC)

	setupEligible := func(t *testing.T) (*AdmissionService, *fakeApplicationRepo, *models.AdmissionApplication) {
		appRepo := newFakeApplicationRepo()
		criteriaRepo := newFakeCriteriaRepo()
		require.NoError(t, criteriaRepo.Create(context.Background(), &models.EligibilityCriteria{
			ProgramID:    3,
			MinimumMarks: floatPtr(60),
		}))
		svc := newAdmissionService(appRepo, criteriaRepo)
		app := submitTestApplication(t, svc)
		_, err := svc.CheckEligibility(context.Background(), app.ID,
			[]models.AcademicHistoryEntry{{DegreeName: "High School", Marks: 80}}, nil, nil, 1)
		require.NoError(t, err)
		return svc, appRepo, app
	}

	t.Run("submitted cannot enroll directly", func(t *testing.T) {
		svc := newAdmissionService(newFakeApplicationRepo(), newFakeCriteriaRepo())
		app := submitTestApplication(t, svc)

		_, err := svc.Transition(context.Background(), app.ID, models.StatusEnrolled, 1, "", nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
	})

	t.Run("submitted to under review succeeds", func(t *testing.T) {
		svc := newAdmissionService(newFakeApplicationRepo(), newFakeCriteriaRepo())
		app := submitTestApplication(t, svc)

		updated, err := svc.Transition(context.Background(), app.ID, models.StatusUnderReview, 1, "", nil)
		require.NoError(t, err)
		assert.Equal(t, models.StatusUnderReview, updated.Status)
	})

	t.Run("interview scheduling needs a time", func(t *testing.T) {
		svc, _, app := setupEligible(t)

		_, err := svc.Transition(context.Background(), app.ID, models.StatusInterviewScheduled, 1, "", nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

		updated, err := svc.Transition(context.Background(), app.ID, models.StatusInterviewScheduled, 1, "", &interviewAt)
		require.NoError(t, err)
		assert.Equal(t, models.StatusInterviewScheduled, updated.Status)
	})

	t.Run("selected walks to enrolled through fee submission", func(t *testing.T) {
		svc, appRepo, app := setupEligible(t)
		appRepo.force(app.ID, models.StatusSelected)

		_, err := svc.Transition(context.Background(), app.ID, models.StatusEnrolled, 1, "", nil)
		require.Error(t, err, "fee must be submitted first")

		_, err = svc.Transition(context.Background(), app.ID, models.StatusFeeSubmitted, 1, "", nil)
		require.NoError(t, err)
		updated, err := svc.Transition(context.Background(), app.ID, models.StatusEnrolled, 1, "", nil)
		require.NoError(t, err)
		assert.Equal(t, models.StatusEnrolled, updated.Status)
	})

	t.Run("reopen requires a reason and records the actor", func(t *testing.T) {
		svc, appRepo, app := setupEligible(t)
		appRepo.force(app.ID, models.StatusRejected)

		_, err := svc.Transition(context.Background(), app.ID, models.StatusUnderReview, 7, "", nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

		updated, err := svc.Transition(context.Background(), app.ID, models.StatusUnderReview, 7, "Documents re-submitted after appeal", nil)
		require.NoError(t, err)
		assert.Equal(t, models.StatusUnderReview, updated.Status)

		stored, err := appRepo.GetByID(context.Background(), app.ID)
		require.NoError(t, err)
		require.NotNil(t, stored.ReviewedBy)
		assert.Equal(t, int64(7), *stored.ReviewedBy)
		assert.Equal(t, "Documents re-submitted after appeal", stored.Remarks)
	})

	t.Run("unknown application", func(t *testing.T) {
		svc := newAdmissionService(newFakeApplicationRepo(), newFakeCriteriaRepo())
		_, err := svc.Transition(context.Background(), 999, models.StatusUnderReview, 1, "", nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrApplicationNotFound)
	})
}

func TestCreateCriteria(t *testing.T) {
	svc := newAdmissionService(newFakeApplicationRepo(), newFakeCriteriaRepo())

	t.Run("criteria without any check is rejected", func(t *testing.T) {
		err := svc.CreateCriteria(context.Background(), &models.EligibilityCriteria{ProgramID: 3})
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("new criteria supersede the active record", func(t *testing.T) {
		first := &models.EligibilityCriteria{ProgramID: 3, MinimumMarks: floatPtr(50)}
		require.NoError(t, svc.CreateCriteria(context.Background(), first))
		second := &models.EligibilityCriteria{ProgramID: 3, MinimumMarks: floatPtr(65)}
		require.NoError(t, svc.CreateCriteria(context.Background(), second))

		active, err := svc.GetActiveCriteria(context.Background(), 3)
		require.NoError(t, err)
		assert.Equal(t, second.ID, active.ID)
	})
}
