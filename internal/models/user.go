package models

import "time"

// User is the users table row.
type User struct {
	UserID                 string     `db:"user_id"`
	Name                   string     `db:"name"`
	Email                  string     `db:"email"`
	PasswordHash           string     `db:"password_hash"`
	RefreshTokenHash       string     `db:"refresh_token_hash"`        // Nullable
	RefreshTokenExpiryTime *time.Time `db:"refresh_token_expiry_time"` // Nullable
	AuditFields
}
