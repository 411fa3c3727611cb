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

// MeritListRepository handles database operations for merit lists
type MeritListRepository struct {
	db *pgxpool.Pool
}

// NewMeritListRepository creates a new merit list repository
func NewMeritListRepository(db *pgxpool.Pool) *MeritListRepository {
	return &MeritListRepository{
		db: db,
	}
}

// Save inserts a merit list and its entries in one transaction, assigning the
// next generation version for the (program, batch, semester) key. Prior
// generations are never touched.
func (r *MeritListRepository) Save(ctx context.Context, list *models.MeritList) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO merit_lists
				(program_id, batch, semester, generation, total_seats, waitlist_factor, published_at)
			SELECT $1, $2, $3, COALESCE(MAX(generation), 0) + 1, $4, $5, $6
			FROM merit_lists
			WHERE program_id = $1 AND batch = $2 AND semester = $3
			RETURNING id, generation
		`,
			list.ProgramID,
			list.Batch,
			list.Semester,
			list.TotalSeats,
			list.WaitlistFactor,
			list.PublishedAt,
		).Scan(&list.ID, &list.Generation)
		if err != nil {
			return fmt.Errorf("error creating merit list: %w", err)
		}

		for i := range list.Entries {
			entry := &list.Entries[i]
			_, err = tx.Exec(ctx, `
				INSERT INTO merit_list_entries
					(merit_list_id, application_id, application_number, applicant_name, score, rank, outcome)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
			`,
				list.ID,
				entry.ApplicationID,
				entry.ApplicationNumber,
				entry.ApplicantName,
				entry.Score,
				entry.Rank,
				entry.Outcome,
			)
			if err != nil {
				return fmt.Errorf("error inserting merit list entry: %w", err)
			}
		}

		return nil
	})
}

// GetByID retrieves one merit list with its entries
func (r *MeritListRepository) GetByID(ctx context.Context, id int64) (*models.MeritList, error) {
	query := `
		SELECT id, program_id, batch, semester, generation, total_seats, waitlist_factor, published_at
		FROM merit_lists
		WHERE id = $1
	`
	return r.getOne(ctx, query, id)
}

// GetLatest retrieves the highest-generation merit list for a key
func (r *MeritListRepository) GetLatest(ctx context.Context, programID int64, batch string, semester models.Semester) (*models.MeritList, error) {
	query := `
		SELECT id, program_id, batch, semester, generation, total_seats, waitlist_factor, published_at
		FROM merit_lists
		WHERE program_id = $1 AND batch = $2 AND semester = $3
		ORDER BY generation DESC
		LIMIT 1
	`
	return r.getOne(ctx, query, programID, batch, semester)
}

func (r *MeritListRepository) getOne(ctx context.Context, query string, args ...interface{}) (*models.MeritList, error) {
	var list models.MeritList
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&list.ID,
		&list.ProgramID,
		&list.Batch,
		&list.Semester,
		&list.Generation,
		&list.TotalSeats,
		&list.WaitlistFactor,
		&list.PublishedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMeritListNotFound
		}
		return nil, fmt.Errorf("error retrieving merit list: %w", err)
	}

	entries, err := r.getEntries(ctx, list.ID)
	if err != nil {
		return nil, err
	}
	list.Entries = entries

	return &list, nil
}

func (r *MeritListRepository) getEntries(ctx context.Context, listID int64) ([]models.MeritApplication, error) {
	rows, err := r.db.Query(ctx, `
		SELECT application_id, application_number, applicant_name, score, rank, outcome
		FROM merit_list_entries
		WHERE merit_list_id = $1
		ORDER BY rank
	`, listID)
	if err != nil {
		return nil, fmt.Errorf("error querying merit list entries: %w", err)
	}
	defer rows.Close()

	var entries []models.MeritApplication
	for rows.Next() {
		var entry models.MeritApplication
		if err := rows.Scan(
			&entry.ApplicationID,
			&entry.ApplicationNumber,
			&entry.ApplicantName,
			&entry.Score,
			&entry.Rank,
			&entry.Outcome,
		); err != nil {
			return nil, fmt.Errorf("error scanning merit list entry: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
