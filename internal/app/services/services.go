package services

import (
	"context"

	"github.com/derya/admitly/internal/app/models"
)

// Repository capabilities consumed by the services. The pgx implementations
// live in the repositories package; tests substitute in-memory fakes so the
// scoring, ranking and allocation logic runs without I/O.

// ApplicationRepository is the persistence capability for applications
type ApplicationRepository interface {
	Create(ctx context.Context, application *models.AdmissionApplication) error
	GetByID(ctx context.Context, id int64) (*models.AdmissionApplication, error)
	FindByProgramBatchSemester(ctx context.Context, programID int64, batch string, semester models.Semester, statuses []models.ApplicationStatus) ([]*models.AdmissionApplication, error)
	List(ctx context.Context, filter models.ApplicationFilter, offset uint64, limit int) ([]*models.AdmissionApplication, int64, error)
	UpdateEligibility(ctx context.Context, id int64, status models.EligibilityStatus, score float64, entryTest, interview, experience *float64) error
	UpdateStatusIf(ctx context.Context, id int64, expected []models.ApplicationStatus, change models.StatusChange) error
}

// CriteriaRepository is the persistence capability for eligibility criteria
type CriteriaRepository interface {
	GetActiveByProgram(ctx context.Context, programID int64) (*models.EligibilityCriteria, error)
	Create(ctx context.Context, criteria *models.EligibilityCriteria) error
}

// MeritListRepository is the persistence capability for merit lists
type MeritListRepository interface {
	Save(ctx context.Context, list *models.MeritList) error
	GetByID(ctx context.Context, id int64) (*models.MeritList, error)
	GetLatest(ctx context.Context, programID int64, batch string, semester models.Semester) (*models.MeritList, error)
}

// ReviewerRepository is the persistence capability for reviewer accounts
type ReviewerRepository interface {
	GetByEmail(ctx context.Context, email string) (*models.Reviewer, error)
}
