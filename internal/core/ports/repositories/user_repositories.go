package repositories

import (
	"context"
	"time"

	"github.com/propfolio/propfolio-backend/internal/core/domain"
)

// UserRepository defines persistence operations for dashboard users.
type UserRepository interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error

	// FindUserByID retrieves a user by its unique identifier.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by email (login identifier).
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// UpdateRefreshToken stores the hashed refresh token and its expiry for a user.
	UpdateRefreshToken(ctx context.Context, userID string, tokenHash string, expiry *time.Time, now time.Time) error
}
