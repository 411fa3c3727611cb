package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all repository instances
type Repositories struct {
	ApplicationRepository *ApplicationRepository
	CriteriaRepository    *CriteriaRepository
	MeritListRepository   *MeritListRepository
	ReviewerRepository    *ReviewerRepository
}

// NewRepositories creates all repositories over one connection pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		ApplicationRepository: NewApplicationRepository(db),
		CriteriaRepository:    NewCriteriaRepository(db),
		MeritListRepository:   NewMeritListRepository(db),
		ReviewerRepository:    NewReviewerRepository(db),
	}
}
