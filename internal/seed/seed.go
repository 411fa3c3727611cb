// Package seed creates default data on startup
package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/derya/admitly/internal/app/models"
	appRepos "github.com/derya/admitly/internal/app/repositories"
	"github.com/derya/admitly/internal/pkg/apperrors"
	"github.com/derya/admitly/internal/pkg/auth"
)

// CreateDefaultData ensures a default admin reviewer exists so a fresh
// deployment can be logged into. Existing data is never modified.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	reviewerRepo := appRepos.NewReviewerRepository(dbPool)

	const adminEmail = "admin@admitly.local"
	_, err := reviewerRepo.GetByEmail(ctx, adminEmail)
	if err == nil {
		lgr.Debug().Str("email", adminEmail).Msg("Default admin reviewer already exists")
		return nil
	}
	if !errors.Is(err, apperrors.ErrReviewerNotFound) {
		return err
	}

	// TODO: read the initial password from configuration instead of a
	// hardcoded default
	hash, err := auth.HashPassword("change-me")
	if err != nil {
		return err
	}

	admin := &appModels.Reviewer{
		Email:        adminEmail,
		FullName:     "Default Admin",
		PasswordHash: hash,
		Role:         appModels.RoleAdmin,
		IsActive:     true,
	}
	if err := reviewerRepo.Create(ctx, admin); err != nil {
		lgr.Error().Err(err).Msg("Error creating default admin reviewer")
		return err
	}

	lgr.Info().Str("email", adminEmail).Msg("Default admin reviewer created, change its password")
	return nil
}
