package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/derya/admitly/internal/app/admission"
	"github.com/derya/admitly/internal/app/models"
	"github.com/derya/admitly/internal/pkg/apperrors"
)

// GenerateParams are the inputs of one merit-list generation
type GenerateParams struct {
	ProgramID      int64
	Batch          string
	Semester       models.Semester
	TotalSeats     int
	Weights        admission.Weights
	WaitlistFactor float64
	ActorID        int64
}

// MeritListService orchestrates scoring, ranking, allocation and persistence
// of merit lists
type MeritListService struct {
	applicationRepo ApplicationRepository
	meritListRepo   MeritListRepository
	concurrency     int
	waitlistFactor  float64
	logger          zerolog.Logger

	// Generation is a critical section per (program, batch, semester) key;
	// different keys proceed independently.
	mu       sync.Mutex
	keyLocks map[string]*sync.Mutex
}

// NewMeritListService creates a new merit list service instance. The
// waitlistFactor is the configured default applied when a generation request
// does not carry its own.
func NewMeritListService(applicationRepo ApplicationRepository, meritListRepo MeritListRepository, concurrency int, waitlistFactor float64, logger zerolog.Logger) *MeritListService {
	if concurrency <= 0 {
		concurrency = 8
	}
	if waitlistFactor <= 0 {
		waitlistFactor = admission.DefaultWaitlistFactor
	}
	return &MeritListService{
		applicationRepo: applicationRepo,
		meritListRepo:   meritListRepo,
		concurrency:     concurrency,
		waitlistFactor:  waitlistFactor,
		logger:          logger,
		keyLocks:        make(map[string]*sync.Mutex),
	}
}

// lockKey returns the mutex serializing generation for one key
func (s *MeritListService) lockKey(key string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.keyLocks[key]
	if !ok {
		lock = &sync.Mutex{}
		s.keyLocks[key] = lock
	}
	return lock
}

// Generate computes and persists a new merit-list generation.
//
// It snapshots every application in a rankable status for the key, scores
// them in parallel, ranks and allocates them, saves the list under the next
// generation version, then writes each application's outcome back with an
// optimistic status guard. An application that moved concurrently is skipped
// and reported in the returned warnings; re-running is always safe because
// generations are additive.
func (s *MeritListService) Generate(ctx context.Context, params GenerateParams) (*models.MeritList, []string, error) {
	// Whole-run validation happens before any read or write
	if params.TotalSeats <= 0 {
		return nil, nil, apperrors.NewValidationError(
			fmt.Sprintf("total seats must be positive, got %d", params.TotalSeats))
	}
	if params.Weights.Academic <= 0 {
		return nil, nil, apperrors.NewValidationError("academic weight must be positive")
	}
	waitlistFactor := params.WaitlistFactor
	if waitlistFactor == 0 {
		waitlistFactor = s.waitlistFactor
	}

	key := fmt.Sprintf("%d/%s/%s", params.ProgramID, params.Batch, params.Semester)
	lock := s.lockKey(key)
	lock.Lock()
	defer lock.Unlock()

	applications, err := s.applicationRepo.FindByProgramBatchSemester(
		ctx, params.ProgramID, params.Batch, params.Semester, admission.RankableStatuses())
	if err != nil {
		return nil, nil, fmt.Errorf("error reading candidate pool: %w", err)
	}
	if len(applications) == 0 {
		return nil, nil, apperrors.ErrEmptyCandidatePool
	}

	scored, warnings := s.scorePool(ctx, applications, params.Weights)
	if len(scored) == 0 {
		return nil, warnings, apperrors.NewValidationError("no application in the pool could be scored")
	}

	ranked := admission.Rank(scored)
	allocated, err := admission.Allocate(ranked, params.TotalSeats, waitlistFactor)
	if err != nil {
		return nil, warnings, err
	}

	list := &models.MeritList{
		ProgramID:      params.ProgramID,
		Batch:          params.Batch,
		Semester:       params.Semester,
		TotalSeats:     params.TotalSeats,
		WaitlistFactor: waitlistFactor,
		PublishedAt:    time.Now(),
		Entries:        make([]models.MeritApplication, len(allocated)),
	}
	for i, a := range allocated {
		list.Entries[i] = models.MeritApplication{
			ApplicationID:     a.ApplicationID,
			ApplicationNumber: a.ApplicationNumber,
			ApplicantName:     a.ApplicantName,
			Score:             a.Score,
			Rank:              a.Rank,
			Outcome:           a.Outcome,
		}
	}

	if err := s.meritListRepo.Save(ctx, list); err != nil {
		return nil, warnings, fmt.Errorf("error saving merit list: %w", err)
	}

	// Write outcomes back per application. A conflict on one application is
	// recorded and skipped; losing one contested record beats losing the run.
	now := time.Now()
	for _, a := range allocated {
		rank := a.Rank
		change := models.StatusChange{
			Status:     admission.StatusFor(a.Outcome),
			MeritRank:  &rank,
			ReviewedBy: params.ActorID,
			ReviewedAt: now,
		}
		err := s.applicationRepo.UpdateStatusIf(ctx, a.ApplicationID, admission.RankableStatuses(), change)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf(
				"application %s skipped: %v", a.ApplicationNumber, err))
			s.logger.Warn().
				Int64("applicationId", a.ApplicationID).
				Err(err).
				Msg("Skipped application during merit-list write-back")
		}
	}

	s.logger.Info().
		Str("key", key).
		Int("generation", list.Generation).
		Int("poolSize", len(applications)).
		Int("warnings", len(warnings)).
		Msg("Merit list generated")

	return list, warnings, nil
}

// scorePool computes each applicant's merit score. Scoring is independent
// per applicant, so it fans out on a bounded errgroup; per-applicant
// failures become warnings and never abort the validly scored rest.
func (s *MeritListService) scorePool(ctx context.Context, applications []*models.AdmissionApplication, weights admission.Weights) ([]admission.ScoredApplication, []string) {
	scored := make([]admission.ScoredApplication, 0, len(applications))
	var warnings []string
	var mu sync.Mutex

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for _, application := range applications {
		app := application
		g.Go(func() error {
			if app.EligibilityScore == nil {
				mu.Lock()
				warnings = append(warnings, fmt.Sprintf(
					"application %s skipped: no eligibility score on record", app.ApplicationNumber))
				mu.Unlock()
				return nil
			}

			sub := admission.SubScores{
				Academic:   *app.EligibilityScore,
				EntryTest:  app.EntryTestScore,
				Interview:  app.InterviewScore,
				Experience: app.ExperienceScore,
			}
			score, err := admission.ComputeScore(sub, weights)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				warnings = append(warnings, fmt.Sprintf(
					"application %s skipped: %v", app.ApplicationNumber, err))
				return nil
			}
			scored = append(scored, admission.ScoredApplication{
				ApplicationID:     app.ID,
				ApplicationNumber: app.ApplicationNumber,
				ApplicantName:     app.ApplicantName,
				AppliedAt:         app.AppliedAt,
				Score:             score,
			})
			return nil
		})
	}

	// Workers only report through the shared slices
	_ = g.Wait()

	return scored, warnings
}

// GetByID retrieves one merit list with entries
func (s *MeritListService) GetByID(ctx context.Context, id int64) (*models.MeritList, error) {
	if id <= 0 {
		return nil, apperrors.NewValidationError("invalid merit list ID")
	}
	return s.meritListRepo.GetByID(ctx, id)
}

// GetLatest retrieves the latest generation for a key
func (s *MeritListService) GetLatest(ctx context.Context, programID int64, batch string, semester models.Semester) (*models.MeritList, error) {
	if programID <= 0 || batch == "" {
		return nil, apperrors.NewValidationError("program ID and batch are required")
	}
	return s.meritListRepo.GetLatest(ctx, programID, batch, semester)
}
