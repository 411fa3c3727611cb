package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/derya/admitly/internal/pkg/apperrors"
	"github.com/derya/admitly/internal/pkg/auth"
)

// AuthService handles reviewer authentication
type AuthService struct {
	reviewerRepo ReviewerRepository
	jwtService   *auth.JWTService
	logger       zerolog.Logger
}

// NewAuthService creates a new auth service instance
func NewAuthService(reviewerRepo ReviewerRepository, jwtService *auth.JWTService, logger zerolog.Logger) *AuthService {
	return &AuthService{
		reviewerRepo: reviewerRepo,
		jwtService:   jwtService,
		logger:       logger,
	}
}

// Login verifies reviewer credentials and issues an access token
func (s *AuthService) Login(ctx context.Context, email, password string) (token string, expiresIn int, err error) {
	reviewer, err := s.reviewerRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrReviewerNotFound) {
			// Same response as a wrong password
			return "", 0, apperrors.ErrInvalidCredentials
		}
		return "", 0, err
	}

	if !reviewer.IsActive {
		return "", 0, apperrors.ErrAccountDisabled
	}

	if !auth.CheckPassword(reviewer.PasswordHash, password) {
		return "", 0, apperrors.ErrInvalidCredentials
	}

	token, expiresIn, err = s.jwtService.GenerateToken(reviewer.ID, reviewer.Email, string(reviewer.Role))
	if err != nil {
		return "", 0, err
	}

	s.logger.Info().
		Int64("reviewerId", reviewer.ID).
		Str("email", reviewer.Email).
		Msg("Reviewer logged in")
	return token, expiresIn, nil
}
