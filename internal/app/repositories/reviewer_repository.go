package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/derya/admitly/internal/app/models"
	"github.com/derya/admitly/internal/pkg/apperrors"
	"github.com/derya/admitly/internal/pkg/dberrors"
)

// ReviewerRepository handles database operations for reviewer accounts
type ReviewerRepository struct {
	db *pgxpool.Pool
}

// NewReviewerRepository creates a new reviewer repository
func NewReviewerRepository(db *pgxpool.Pool) *ReviewerRepository {
	return &ReviewerRepository{
		db: db,
	}
}

// GetByEmail retrieves a reviewer by email
func (r *ReviewerRepository) GetByEmail(ctx context.Context, email string) (*models.Reviewer, error) {
	query := `
		SELECT id, email, full_name, password_hash, role, is_active, created_at
		FROM reviewers
		WHERE email = $1
	`

	var reviewer models.Reviewer
	err := r.db.QueryRow(ctx, query, email).Scan(
		&reviewer.ID,
		&reviewer.Email,
		&reviewer.FullName,
		&reviewer.PasswordHash,
		&reviewer.Role,
		&reviewer.IsActive,
		&reviewer.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrReviewerNotFound
		}
		return nil, fmt.Errorf("error retrieving reviewer: %w", err)
	}

	return &reviewer, nil
}

// Create inserts a new reviewer account
func (r *ReviewerRepository) Create(ctx context.Context, reviewer *models.Reviewer) error {
	query := `
		INSERT INTO reviewers (email, full_name, password_hash, role, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		reviewer.Email,
		reviewer.FullName,
		reviewer.PasswordHash,
		reviewer.Role,
		reviewer.IsActive,
	).Scan(&reviewer.ID, &reviewer.CreatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.NewConflictError("reviewer with this email already exists")
		}
		return fmt.Errorf("error creating reviewer: %w", err)
	}

	return nil
}
