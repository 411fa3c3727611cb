package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/derya/admitly/internal/app/models"
	"github.com/derya/admitly/internal/db"
	"github.com/derya/admitly/internal/pkg/apperrors"
)

// CriteriaRepository handles database operations for eligibility criteria
type CriteriaRepository struct {
	db *pgxpool.Pool
}

// NewCriteriaRepository creates a new criteria repository
func NewCriteriaRepository(db *pgxpool.Pool) *CriteriaRepository {
	return &CriteriaRepository{
		db: db,
	}
}

// GetActiveByProgram retrieves the single active criteria record for a
// program. ErrCriteriaNotFound means no rule set is published.
func (r *CriteriaRepository) GetActiveByProgram(ctx context.Context, programID int64) (*models.EligibilityCriteria, error) {
	query := `
		SELECT id, program_id, minimum_marks, minimum_cgpa, required_subjects,
		       age_limit, other_requirements, is_active, created_at
		FROM eligibility_criteria
		WHERE program_id = $1 AND is_active = TRUE
	`

	var criteria models.EligibilityCriteria
	err := r.db.QueryRow(ctx, query, programID).Scan(
		&criteria.ID,
		&criteria.ProgramID,
		&criteria.MinimumMarks,
		&criteria.MinimumCGPA,
		&criteria.RequiredSubjects,
		&criteria.AgeLimit,
		&criteria.OtherRequirements,
		&criteria.IsActive,
		&criteria.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCriteriaNotFound
		}
		return nil, fmt.Errorf("error retrieving criteria: %w", err)
	}

	return &criteria, nil
}

// Create publishes a new active criteria record for a program, deactivating
// the previous active one in the same transaction. Superseded records remain
// for audit.
func (r *CriteriaRepository) Create(ctx context.Context, criteria *models.EligibilityCriteria) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`UPDATE eligibility_criteria SET is_active = FALSE WHERE program_id = $1 AND is_active = TRUE`,
			criteria.ProgramID,
		)
		if err != nil {
			return fmt.Errorf("error deactivating previous criteria: %w", err)
		}

		err = tx.QueryRow(ctx, `
			INSERT INTO eligibility_criteria
				(program_id, minimum_marks, minimum_cgpa, required_subjects,
				 age_limit, other_requirements, is_active)
			VALUES ($1, $2, $3, $4, $5, $6, TRUE)
			RETURNING id, created_at
		`,
			criteria.ProgramID,
			criteria.MinimumMarks,
			criteria.MinimumCGPA,
			criteria.RequiredSubjects,
			criteria.AgeLimit,
			criteria.OtherRequirements,
		).Scan(&criteria.ID, &criteria.CreatedAt)
		if err != nil {
			return fmt.Errorf("error creating criteria: %w", err)
		}
		criteria.IsActive = true
		return nil
	})
}
