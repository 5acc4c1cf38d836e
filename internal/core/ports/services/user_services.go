package services

import (
	"context"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"

	"github.com/propfolio/propfolio-backend/internal/core/domain"
	"github.com/propfolio/propfolio-backend/internal/dto"
)

// UserSvcFacade exposes user account operations.
type UserSvcFacade interface {
	// CreateUser registers a new dashboard user with a bcrypt-hashed password.
	CreateUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)

	// GetUserByID retrieves a user by id.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// GetUserByEmail retrieves a user by login email.
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// SetRefreshToken stores the hash of a freshly issued refresh token.
	SetRefreshToken(ctx context.Context, userID string, rawToken string, expiry time.Time) error

	// ClearRefreshToken drops the stored refresh token (logout).
	ClearRefreshToken(ctx context.Context, userID string) error

	// FindOrCreateGoogleUser resolves a Google identity to a local user,
	// creating the account on first sign-in.
	FindOrCreateGoogleUser(ctx context.Context, info *domain.GoogleUserInfo) (*domain.User, error)
}

// TokenSvcFacade handles access and refresh token lifecycle.
type TokenSvcFacade interface {
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
	GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error)
	ValidateAndParseRefreshToken(ctx context.Context, userID string, refreshTokenString string) (*domain.User, error)
}

// GoogleOAuthHandlerSvcFacade wraps the Google OAuth dance.
type GoogleOAuthHandlerSvcFacade interface {
	GenerateStateString(ctx context.Context) (string, error)
	GetGoogleLoginURL(ctx context.Context, state string) string
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)
	GetUserInfo(ctx context.Context, token *oauth2.Token) (*domain.GoogleUserInfo, error)
	ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error)
}
