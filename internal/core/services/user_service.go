package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/propfolio/propfolio-backend/internal/apperrors"
	"github.com/propfolio/propfolio-backend/internal/core/domain"
	portsrepo "github.com/propfolio/propfolio-backend/internal/core/ports/repositories"
	portssvc "github.com/propfolio/propfolio-backend/internal/core/ports/services"
	"github.com/propfolio/propfolio-backend/internal/dto"
	"github.com/propfolio/propfolio-backend/internal/utils"
)

// userService provides account operations.
type userService struct {
	BaseService
	userRepo portsrepo.UserRepository
}

// NewUserService creates a new user service.
func NewUserService(repo portsrepo.UserRepository) portssvc.UserSvcFacade {
	return &userService{userRepo: repo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// CreateUser registers a new dashboard user with a bcrypt-hashed password.
func (s *userService) CreateUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	userID := uuid.NewString()
	user := domain.User{
		UserID:       userID,
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to save user", slog.String("email", req.Email))
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	s.LogInfo(ctx, "User registered", slog.String("user_id", user.UserID))
	return &user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

func (s *userService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.userRepo.FindUserByEmail(ctx, email)
}

// SetRefreshToken stores the hash of a freshly issued refresh token.
func (s *userService) SetRefreshToken(ctx context.Context, userID string, rawToken string, expiry time.Time) error {
	tokenHash := utils.HashRefreshToken(rawToken)
	if err := s.userRepo.UpdateRefreshToken(ctx, userID, tokenHash, &expiry, time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to store refresh token", slog.String("user_id", userID))
		return err
	}
	return nil
}

// ClearRefreshToken drops the stored refresh token on logout.
func (s *userService) ClearRefreshToken(ctx context.Context, userID string) error {
	if err := s.userRepo.UpdateRefreshToken(ctx, userID, "", nil, time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to clear refresh token", slog.String("user_id", userID))
		return err
	}
	return nil
}

// FindOrCreateGoogleUser resolves a Google identity to a local user, creating
// the account on first sign-in. Google accounts carry no usable password; a
// random one is hashed so the column stays non-empty.
func (s *userService) FindOrCreateGoogleUser(ctx context.Context, info *domain.GoogleUserInfo) (*domain.User, error) {
	if info == nil || info.Email == "" {
		return nil, fmt.Errorf("google user info missing email: %w", apperrors.ErrValidation)
	}

	user, err := s.userRepo.FindUserByEmail(ctx, info.Email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up google user: %w", err)
	}

	randomPassword, err := utils.GenerateSecureRandomString(32)
	if err != nil {
		return nil, fmt.Errorf("failed to generate placeholder password: %w", err)
	}
	hash, err := utils.HashPassword(randomPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash placeholder password: %w", err)
	}

	now := time.Now()
	userID := uuid.NewString()
	newUser := domain.User{
		UserID:       userID,
		Name:         info.Name,
		Email:        info.Email,
		PasswordHash: hash,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.userRepo.SaveUser(ctx, newUser); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Lost a race with a concurrent first sign-in; fetch the winner.
			return s.userRepo.FindUserByEmail(ctx, info.Email)
		}
		return nil, fmt.Errorf("failed to create google user: %w", err)
	}

	s.LogInfo(ctx, "User created via google sign-in", slog.String("user_id", newUser.UserID))
	return &newUser, nil
}
