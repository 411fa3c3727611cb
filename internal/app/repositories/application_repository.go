package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/derya/admitly/internal/app/models"
	"github.com/derya/admitly/internal/pkg/apperrors"
	"github.com/derya/admitly/internal/pkg/dberrors"
)

const applicationColumns = `
	id, application_number, applicant_name, applicant_email, date_of_birth,
	program_id, batch, semester, applied_at, status,
	eligibility_status, eligibility_score,
	entry_test_score, interview_score, experience_score,
	merit_rank, interview_at, remarks, reviewed_by, reviewed_at`

// ApplicationRepository handles database operations for admission applications
type ApplicationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new application and sets its generated ID
func (r *ApplicationRepository) Create(ctx context.Context, application *models.AdmissionApplication) error {
	query := `
		INSERT INTO admission_applications
			(application_number, applicant_name, applicant_email, date_of_birth,
			 program_id, batch, semester, applied_at, status, remarks)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		application.ApplicationNumber,
		application.ApplicantName,
		application.ApplicantEmail,
		application.DateOfBirth,
		application.ProgramID,
		application.Batch,
		application.Semester,
		application.AppliedAt,
		application.Status,
		application.Remarks,
	).Scan(&application.ID)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "admission_applications_applicant_program_key") {
			return apperrors.ErrApplicantAlreadyApplied
		}
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrApplicationNumberExists
		}
		return fmt.Errorf("error creating application: %w", err)
	}

	return nil
}

// GetByID retrieves an application by ID
func (r *ApplicationRepository) GetByID(ctx context.Context, id int64) (*models.AdmissionApplication, error) {
	query := `SELECT` + applicationColumns + `
		FROM admission_applications
		WHERE id = $1
	`

	application, err := scanApplication(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("error retrieving application: %w", err)
	}

	return application, nil
}

// FindByProgramBatchSemester retrieves all applications for a key whose
// status is in the given set, ordered by submission time. This is the
// snapshot read of merit-list generation.
func (r *ApplicationRepository) FindByProgramBatchSemester(ctx context.Context, programID int64, batch string, semester models.Semester, statuses []models.ApplicationStatus) ([]*models.AdmissionApplication, error) {
	query := `SELECT` + applicationColumns + `
		FROM admission_applications
		WHERE program_id = $1 AND batch = $2 AND semester = $3 AND status = ANY($4)
		ORDER BY applied_at, application_number
	`

	statusStrings := make([]string, len(statuses))
	for i, s := range statuses {
		statusStrings[i] = string(s)
	}

	rows, err := r.db.Query(ctx, query, programID, batch, semester, statusStrings)
	if err != nil {
		return nil, fmt.Errorf("error querying applications: %w", err)
	}
	defer rows.Close()

	var applications []*models.AdmissionApplication
	for rows.Next() {
		application, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning application: %w", err)
		}
		applications = append(applications, application)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return applications, nil
}

// List retrieves a page of applications matching the filter, newest first,
// along with the total number of matches.
func (r *ApplicationRepository) List(ctx context.Context, filter models.ApplicationFilter, offset uint64, limit int) ([]*models.AdmissionApplication, int64, error) {
	whereCondition := squirrel.And{}
	if filter.ProgramID != nil {
		whereCondition = append(whereCondition, squirrel.Eq{"program_id": *filter.ProgramID})
	}
	if filter.Batch != "" {
		whereCondition = append(whereCondition, squirrel.Eq{"batch": filter.Batch})
	}
	if filter.Semester != nil {
		whereCondition = append(whereCondition, squirrel.Eq{"semester": *filter.Semester})
	}
	if filter.Status != nil {
		whereCondition = append(whereCondition, squirrel.Eq{"status": *filter.Status})
	}

	countSelect := r.sb.Select("COUNT(*)").From("admission_applications")
	if len(whereCondition) > 0 {
		countSelect = countSelect.Where(whereCondition)
	}
	countQuery, countArgs, err := countSelect.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting applications: %w", err)
	}

	baseSelect := r.sb.Select(applicationColumns).
		From("admission_applications").
		OrderBy("applied_at DESC", "application_number").
		Offset(offset).
		Limit(uint64(limit))
	if len(whereCondition) > 0 {
		baseSelect = baseSelect.Where(whereCondition)
	}
	query, args, err := baseSelect.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building list query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error querying applications: %w", err)
	}
	defer rows.Close()

	var applications []*models.AdmissionApplication
	for rows.Next() {
		application, err := scanApplication(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning application: %w", err)
		}
		applications = append(applications, application)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return applications, total, nil
}

// UpdateEligibility writes the eligibility verdict and score after a check,
// along with any test scores supplied for later merit computation. Nil test
// scores leave stored values untouched.
func (r *ApplicationRepository) UpdateEligibility(ctx context.Context, id int64, status models.EligibilityStatus, score float64, entryTest, interview, experience *float64) error {
	query := `
		UPDATE admission_applications
		SET eligibility_status = $2,
		    eligibility_score = $3,
		    entry_test_score = COALESCE($4, entry_test_score),
		    interview_score = COALESCE($5, interview_score),
		    experience_score = COALESCE($6, experience_score)
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query, id, status, score, entryTest, interview, experience)
	if err != nil {
		return fmt.Errorf("error updating eligibility: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrApplicationNotFound
	}
	return nil
}

// UpdateStatusIf applies a status change only while the application is still
// in one of the expected statuses. It returns ErrConflict when the guard
// fails, which callers treat as a concurrent modification.
func (r *ApplicationRepository) UpdateStatusIf(ctx context.Context, id int64, expected []models.ApplicationStatus, change models.StatusChange) error {
	query := `
		UPDATE admission_applications
		SET status = $2,
		    merit_rank = COALESCE($3, merit_rank),
		    interview_at = COALESCE($4, interview_at),
		    remarks = CASE WHEN $5 <> '' THEN $5 ELSE remarks END,
		    reviewed_by = $6,
		    reviewed_at = $7
		WHERE id = $1 AND status = ANY($8)
	`

	expectedStrings := make([]string, len(expected))
	for i, s := range expected {
		expectedStrings[i] = string(s)
	}

	tag, err := r.db.Exec(ctx, query,
		id,
		change.Status,
		change.MeritRank,
		change.InterviewAt,
		change.Remarks,
		change.ReviewedBy,
		change.ReviewedAt,
		expectedStrings,
	)
	if err != nil {
		return fmt.Errorf("error updating application status: %w", err)
	}

	if tag.RowsAffected() == 0 {
		// Either the row is gone or its status moved under us.
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return apperrors.ErrConflict
	}

	return nil
}

// scanApplication reads one application row
func scanApplication(row pgx.Row) (*models.AdmissionApplication, error) {
	var application models.AdmissionApplication
	err := row.Scan(
		&application.ID,
		&application.ApplicationNumber,
		&application.ApplicantName,
		&application.ApplicantEmail,
		&application.DateOfBirth,
		&application.ProgramID,
		&application.Batch,
		&application.Semester,
		&application.AppliedAt,
		&application.Status,
		&application.EligibilityStatus,
		&application.EligibilityScore,
		&application.EntryTestScore,
		&application.InterviewScore,
		&application.ExperienceScore,
		&application.MeritRank,
		&application.InterviewAt,
		&application.Remarks,
		&application.ReviewedBy,
		&application.ReviewedAt,
	)
	if err != nil {
		return nil, err
	}
	return &application, nil
}
