package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/propfolio/propfolio-backend/internal/apperrors"
	"github.com/propfolio/propfolio-backend/internal/core/domain"
	portsrepo "github.com/propfolio/propfolio-backend/internal/core/ports/repositories"
	"github.com/propfolio/propfolio-backend/internal/models"
)

type PgxUserRepository struct {
	db *pgxpool.Pool
}

func newPgxUserRepository(db *pgxpool.Pool) portsrepo.UserRepository {
	return &PgxUserRepository{db: db}
}

var _ portsrepo.UserRepository = (*PgxUserRepository)(nil)

func toModelUser(d domain.User) models.User {
	return models.User{
		UserID:                 d.UserID,
		Name:                   d.Name,
		Email:                  d.Email,
		PasswordHash:           d.PasswordHash,
		RefreshTokenHash:       d.RefreshTokenHash,
		RefreshTokenExpiryTime: d.RefreshTokenExpiryTime,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:                 m.UserID,
		Name:                   m.Name,
		Email:                  m.Email,
		PasswordHash:           m.PasswordHash,
		RefreshTokenHash:       m.RefreshTokenHash,
		RefreshTokenExpiryTime: m.RefreshTokenExpiryTime,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	modelUser := toModelUser(user)
	query := `
        INSERT INTO users (user_id, name, email, password_hash, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
    `
	_, err := r.db.Exec(ctx, query,
		modelUser.UserID,
		modelUser.Name,
		modelUser.Email,
		modelUser.PasswordHash,
		modelUser.CreatedAt,
		modelUser.CreatedBy,
		modelUser.LastUpdatedAt,
		modelUser.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("email already registered: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `
		SELECT user_id, name, email, password_hash, refresh_token_hash, refresh_token_expiry_time,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM users
		WHERE user_id = $1;
	`
	modelUser, err := r.scanUser(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by ID %s: %w", userID, err)
	}
	domainUser := toDomainUser(modelUser)
	return &domainUser, nil
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT user_id, name, email, password_hash, refresh_token_hash, refresh_token_expiry_time,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM users
		WHERE email = $1;
	`
	modelUser, err := r.scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	domainUser := toDomainUser(modelUser)
	return &domainUser, nil
}

func (r *PgxUserRepository) UpdateRefreshToken(ctx context.Context, userID string, tokenHash string, expiry *time.Time, now time.Time) error {
	// last_updated_by is the user themselves for token rotation.
	query := `
        UPDATE users
        SET refresh_token_hash = $1, refresh_token_expiry_time = $2, last_updated_at = $3, last_updated_by = $4
        WHERE user_id = $4;
    `
	cmdTag, err := r.db.Exec(ctx, query, nullString(tokenHash), expiry, now, userID)
	if err != nil {
		return fmt.Errorf("failed to update refresh token: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUserRepository) scanUser(row pgx.Row) (models.User, error) {
	var m models.User
	var refreshTokenHash sql.NullString
	err := row.Scan(
		&m.UserID,
		&m.Name,
		&m.Email,
		&m.PasswordHash,
		&refreshTokenHash,
		&m.RefreshTokenExpiryTime,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.User{}, err
	}
	m.RefreshTokenHash = refreshTokenHash.String
	return m, nil
}
