package domain

import "time"

// User represents a dashboard account. Owners, who hold properties, are the
// primary user kind; the same identity may also appear as a guest on
// reservations and payment rows.
type User struct {
	UserID       string `json:"userID"` // Primary Key (UUID)
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`

	// Refresh token state, stored hashed. Nil expiry means no token issued.
	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`

	AuditFields
}

// GoogleUserInfo holds the subset of the Google userinfo payload consumed
// during OAuth sign-in.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}
