package services

import (
	"context"
	"sort"
	"sync"

	"github.com/derya/admitly/internal/app/models"
	"github.com/derya/admitly/internal/pkg/apperrors"
)

// In-memory repository fakes. They mimic the persistence contracts the pgx
// implementations provide, including the optimistic status guard and the
// per-key generation counter.

type fakeApplicationRepo struct {
	mu     sync.Mutex
	nextID int64
	apps   map[int64]*models.AdmissionApplication
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{apps: make(map[int64]*models.AdmissionApplication)}
}

func (r *fakeApplicationRepo) Create(_ context.Context, application *models.AdmissionApplication) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	application.ID = r.nextID
	clone := *application
	r.apps[application.ID] = &clone
	return nil
}

func (r *fakeApplicationRepo) GetByID(_ context.Context, id int64) (*models.AdmissionApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.apps[id]
	if !ok {
		return nil, apperrors.ErrApplicationNotFound
	}
	clone := *app
	return &clone, nil
}

func (r *fakeApplicationRepo) FindByProgramBatchSemester(_ context.Context, programID int64, batch string, semester models.Semester, statuses []models.ApplicationStatus) ([]*models.AdmissionApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.AdmissionApplication
	for _, app := range r.apps {
		if app.ProgramID != programID || app.Batch != batch || app.Semester != semester {
			continue
		}
		for _, s := range statuses {
			if app.Status == s {
				clone := *app
				out = append(out, &clone)
				break
			}
		}
	}
	return out, nil
}

func (r *fakeApplicationRepo) List(_ context.Context, filter models.ApplicationFilter, offset uint64, limit int) ([]*models.AdmissionApplication, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*models.AdmissionApplication
	for _, app := range r.apps {
		if filter.ProgramID != nil && app.ProgramID != *filter.ProgramID {
			continue
		}
		if filter.Batch != "" && app.Batch != filter.Batch {
			continue
		}
		if filter.Semester != nil && app.Semester != *filter.Semester {
			continue
		}
		if filter.Status != nil && app.Status != *filter.Status {
			continue
		}
		clone := *app
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].AppliedAt.Equal(matched[j].AppliedAt) {
			return matched[i].AppliedAt.After(matched[j].AppliedAt)
		}
		return matched[i].ApplicationNumber < matched[j].ApplicationNumber
	})
	total := int64(len(matched))
	if offset >= uint64(len(matched)) {
		return nil, total, nil
	}
	matched = matched[offset:]
	if limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, total, nil
}

func (r *fakeApplicationRepo) UpdateEligibility(_ context.Context, id int64, status models.EligibilityStatus, score float64, entryTest, interview, experience *float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.apps[id]
	if !ok {
		return apperrors.ErrApplicationNotFound
	}
	app.EligibilityStatus = &status
	app.EligibilityScore = &score
	if entryTest != nil {
		app.EntryTestScore = entryTest
	}
	if interview != nil {
		app.InterviewScore = interview
	}
	if experience != nil {
		app.ExperienceScore = experience
	}
	return nil
}

func (r *fakeApplicationRepo) UpdateStatusIf(_ context.Context, id int64, expected []models.ApplicationStatus, change models.StatusChange) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.apps[id]
	if !ok {
		return apperrors.ErrApplicationNotFound
	}
	matched := false
	for _, s := range expected {
		if app.Status == s {
			matched = true
			break
		}
	}
	if !matched {
		return apperrors.ErrConflict
	}
	app.Status = change.Status
	if change.MeritRank != nil {
		app.MeritRank = change.MeritRank
	}
	if change.InterviewAt != nil {
		app.InterviewAt = change.InterviewAt
	}
	if change.Remarks != "" {
		app.Remarks = change.Remarks
	}
	app.ReviewedBy = &change.ReviewedBy
	app.ReviewedAt = &change.ReviewedAt
	return nil
}

// force sets an application's status directly, bypassing the guard, to
// simulate concurrent modification between snapshot and write-back.
func (r *fakeApplicationRepo) force(id int64, status models.ApplicationStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.apps[id].Status = status
}

type fakeCriteriaRepo struct {
	mu       sync.Mutex
	active   map[int64]*models.EligibilityCriteria
	nextID   int64
	failWith error
}

func newFakeCriteriaRepo() *fakeCriteriaRepo {
	return &fakeCriteriaRepo{active: make(map[int64]*models.EligibilityCriteria)}
}

func (r *fakeCriteriaRepo) GetActiveByProgram(_ context.Context, programID int64) (*models.EligibilityCriteria, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	criteria, ok := r.active[programID]
	if !ok {
		return nil, apperrors.ErrCriteriaNotFound
	}
	return criteria, nil
}

func (r *fakeCriteriaRepo) Create(_ context.Context, criteria *models.EligibilityCriteria) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	criteria.ID = r.nextID
	criteria.IsActive = true
	r.active[criteria.ProgramID] = criteria
	return nil
}

type fakeMeritListRepo struct {
	mu     sync.Mutex
	nextID int64
	lists  []*models.MeritList
}

func newFakeMeritListRepo() *fakeMeritListRepo {
	return &fakeMeritListRepo{}
}

func (r *fakeMeritListRepo) Save(_ context.Context, list *models.MeritList) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	generation := 0
	for _, existing := range r.lists {
		if existing.ProgramID == list.ProgramID && existing.Batch == list.Batch && existing.Semester == list.Semester {
			if existing.Generation > generation {
				generation = existing.Generation
			}
		}
	}
	r.nextID++
	list.ID = r.nextID
	list.Generation = generation + 1
	clone := *list
	clone.Entries = append([]models.MeritApplication(nil), list.Entries...)
	r.lists = append(r.lists, &clone)
	return nil
}

func (r *fakeMeritListRepo) GetByID(_ context.Context, id int64) (*models.MeritList, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, list := range r.lists {
		if list.ID == id {
			return list, nil
		}
	}
	return nil, apperrors.ErrMeritListNotFound
}

func (r *fakeMeritListRepo) GetLatest(_ context.Context, programID int64, batch string, semester models.Semester) (*models.MeritList, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *models.MeritList
	for _, list := range r.lists {
		if list.ProgramID != programID || list.Batch != batch || list.Semester != semester {
			continue
		}
		if latest == nil || list.Generation > latest.Generation {
			latest = list
		}
	}
	if latest == nil {
		return nil, apperrors.ErrMeritListNotFound
	}
	return latest, nil
}

type fakeReviewerRepo struct {
	reviewers map[string]*models.Reviewer
}

func (r *fakeReviewerRepo) GetByEmail(_ context.Context, email string) (*models.Reviewer, error) {
	reviewer, ok := r.reviewers[email]
	if !ok {
		return nil, apperrors.ErrReviewerNotFound
	}
	return reviewer, nil
}
