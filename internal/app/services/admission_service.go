package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/derya/admitly/internal/app/admission"
	"github.com/derya/admitly/internal/app/models"
	"github.com/derya/admitly/internal/pkg/apperrors"
	"github.com/derya/admitly/internal/pkg/helpers"
)

// AdmissionService handles application submission, eligibility checks and
// explicit lifecycle transitions
type AdmissionService struct {
	applicationRepo ApplicationRepository
	criteriaRepo    CriteriaRepository
	logger          zerolog.Logger
}

// NewAdmissionService creates a new admission service instance
func NewAdmissionService(applicationRepo ApplicationRepository, criteriaRepo CriteriaRepository, logger zerolog.Logger) *AdmissionService {
	return &AdmissionService{
		applicationRepo: applicationRepo,
		criteriaRepo:    criteriaRepo,
		logger:          logger,
	}
}

// SubmitApplication creates a new application in status SUBMITTED with a
// generated application number
func (s *AdmissionService) SubmitApplication(ctx context.Context, application *models.AdmissionApplication) error {
	if application.ApplicantName == "" || application.ApplicantEmail == "" {
		return apperrors.NewValidationError("applicant name and email are required")
	}
	if application.ProgramID <= 0 {
		return apperrors.NewValidationError("program ID must be positive")
	}

	now := time.Now()
	application.ApplicationNumber = helpers.GenerateApplicationNumber(now)
	application.AppliedAt = now
	application.Status = models.StatusSubmitted

	if err := s.applicationRepo.Create(ctx, application); err != nil {
		return err
	}

	s.logger.Info().
		Int64("applicationId", application.ID).
		Str("applicationNumber", application.ApplicationNumber).
		Int64("programId", application.ProgramID).
		Msg("Application submitted")
	return nil
}

// GetApplication retrieves one application by ID
func (s *AdmissionService) GetApplication(ctx context.Context, id int64) (*models.AdmissionApplication, error) {
	if id <= 0 {
		return nil, apperrors.NewValidationError("invalid application ID")
	}
	return s.applicationRepo.GetByID(ctx, id)
}

// ListApplications retrieves a page of applications matching the filter
func (s *AdmissionService) ListApplications(ctx context.Context, filter models.ApplicationFilter, page, size int) ([]*models.AdmissionApplication, int64, error) {
	if filter.ProgramID != nil && *filter.ProgramID <= 0 {
		return nil, 0, apperrors.NewValidationError("program ID must be positive")
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	return s.applicationRepo.List(ctx, filter, offset, limit)
}

// CheckEligibility evaluates an application's academic history against the
// program's active criteria and records the verdict.
//
// Requesting a check on a SUBMITTED application moves it to UNDER_REVIEW
// first. ELIGIBLE and NOT_ELIGIBLE verdicts transition the application; a
// PENDING verdict leaves it in UNDER_REVIEW awaiting more data. A
// NOT_ELIGIBLE verdict does not auto-reject: rejection stays a reviewer
// decision.
func (s *AdmissionService) CheckEligibility(ctx context.Context, applicationID int64, history []models.AcademicHistoryEntry, testScores *admission.TestScores, admissionDate *time.Time, actorID int64) (*models.AdmissionApplication, error) {
	application, err := s.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	if application.Status == models.StatusSubmitted {
		change := models.StatusChange{
			Status:     models.StatusUnderReview,
			ReviewedBy: actorID,
			ReviewedAt: now,
		}
		if err := s.applicationRepo.UpdateStatusIf(ctx, applicationID, []models.ApplicationStatus{models.StatusSubmitted}, change); err != nil {
			return nil, err
		}
		application.Status = models.StatusUnderReview
	}

	if application.Status != models.StatusUnderReview {
		return nil, apperrors.NewInvalidTransitionError(
			string(application.Status), string(models.StatusUnderReview),
			[]string{string(models.StatusSubmitted), string(models.StatusUnderReview)})
	}

	criteria, err := s.criteriaRepo.GetActiveByProgram(ctx, application.ProgramID)
	if err != nil && !errors.Is(err, apperrors.ErrCriteriaNotFound) {
		return nil, fmt.Errorf("error retrieving criteria: %w", err)
	}

	result := admission.Evaluate(history, criteria, admission.EvaluateOptions{
		DateOfBirth:   application.DateOfBirth,
		AdmissionDate: admissionDate,
	})

	var entryTest, interview, experience *float64
	if testScores != nil {
		entryTest = testScores.EntryTest
		interview = testScores.Interview
		experience = testScores.Experience
	}

	if err := s.applicationRepo.UpdateEligibility(ctx, applicationID, result.Verdict, result.Score, entryTest, interview, experience); err != nil {
		return nil, err
	}
	application.EligibilityStatus = &result.Verdict
	application.EligibilityScore = &result.Score
	if entryTest != nil {
		application.EntryTestScore = entryTest
	}
	if interview != nil {
		application.InterviewScore = interview
	}
	if experience != nil {
		application.ExperienceScore = experience
	}

	// PENDING leaves the application in UNDER_REVIEW
	var target models.ApplicationStatus
	switch result.Verdict {
	case models.EligibilityEligible:
		target = models.StatusEligible
	case models.EligibilityNotEligible:
		target = models.StatusNotEligible
	}

	if target != "" {
		change := models.StatusChange{
			Status:     target,
			ReviewedBy: actorID,
			ReviewedAt: now,
		}
		if err := s.applicationRepo.UpdateStatusIf(ctx, applicationID, []models.ApplicationStatus{models.StatusUnderReview}, change); err != nil {
			return nil, err
		}
		application.Status = target
	}

	s.logger.Info().
		Int64("applicationId", applicationID).
		Str("verdict", string(result.Verdict)).
		Float64("score", result.Score).
		Msg("Eligibility check completed")

	return application, nil
}

// Transition applies an explicit lifecycle transition requested by a
// reviewer. Reopening a terminal decision requires a reason, which is
// recorded in the application's remarks.
func (s *AdmissionService) Transition(ctx context.Context, applicationID int64, target models.ApplicationStatus, actorID int64, reason string, interviewAt *time.Time) (*models.AdmissionApplication, error) {
	application, err := s.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	if err := admission.ValidateTransition(application.Status, target); err != nil {
		return nil, err
	}

	reopen := admission.IsReopen(application.Status, target)
	if reopen && reason == "" {
		return nil, apperrors.NewValidationError("reopening a closed application requires a reason")
	}
	if target == models.StatusInterviewScheduled && interviewAt == nil {
		return nil, apperrors.NewValidationError("scheduling an interview requires an interview time")
	}

	change := models.StatusChange{
		Status:      target,
		InterviewAt: interviewAt,
		Remarks:     reason,
		ReviewedBy:  actorID,
		ReviewedAt:  time.Now(),
	}
	if err := s.applicationRepo.UpdateStatusIf(ctx, applicationID, []models.ApplicationStatus{application.Status}, change); err != nil {
		return nil, err
	}

	event := s.logger.Info().
		Int64("applicationId", applicationID).
		Str("from", string(application.Status)).
		Str("to", string(target)).
		Int64("actorId", actorID)
	if reopen {
		event = event.Str("reason", reason)
	}
	event.Msg("Application status changed")

	application.Status = target
	application.ReviewedBy = &actorID
	if interviewAt != nil {
		application.InterviewAt = interviewAt
	}
	return application, nil
}

// CreateCriteria publishes a program's active eligibility criteria
func (s *AdmissionService) CreateCriteria(ctx context.Context, criteria *models.EligibilityCriteria) error {
	if criteria.ProgramID <= 0 {
		return apperrors.NewValidationError("program ID must be positive")
	}
	if criteria.MinimumMarks == nil && criteria.MinimumCGPA == nil &&
		len(criteria.RequiredSubjects) == 0 && criteria.AgeLimit == nil {
		return apperrors.NewValidationError("criteria must define at least one check")
	}

	if err := s.criteriaRepo.Create(ctx, criteria); err != nil {
		return err
	}

	s.logger.Info().
		Int64("programId", criteria.ProgramID).
		Int64("criteriaId", criteria.ID).
		Msg("Eligibility criteria published")
	return nil
}

// GetActiveCriteria retrieves the active criteria for a program
func (s *AdmissionService) GetActiveCriteria(ctx context.Context, programID int64) (*models.EligibilityCriteria, error) {
	if programID <= 0 {
		return nil, apperrors.NewValidationError("invalid program ID")
	}
	return s.criteriaRepo.GetActiveByProgram(ctx, programID)
}
