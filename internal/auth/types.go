package auth

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
)

// validate backs IsValidEmail. The library's email rule checks syntax
// only, never deliverability.
var validate = validator.New()

// maxEmailLength is the maximum allowed email address length.
const maxEmailLength = 254

// IsValidEmail checks if an email address meets format requirements.
func IsValidEmail(email string) bool {
	if email == "" || len(email) > maxEmailLength {
		return false
	}
	return validate.Var(email, "email") == nil
}

// User represents an account in the system.
//
// Admins manage other accounts and see every task. Banned accounts keep
// their credentials but are denied everything requiring authorisation.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // never serialised
	IsBanned     bool      `json:"is_banned"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Session represents a server-side login session.
//
// The session ID travels inside the access token's "sid" claim; revoking
// the row invalidates the token before its expiry.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
	Revoked   bool      `json:"revoked"`
	CreatedAt time.Time `json:"created_at"`
}

// Active reports whether the session can still authenticate requests.
func (s *Session) Active(now time.Time) bool {
	return s != nil && !s.Revoked && now.Before(s.ExpiresAt)
}

// Sentinel errors for auth operations.
var (
	ErrUserNotFound     = errors.New("the requested user does not exist")
	ErrEmailExists      = errors.New("email already registered")
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrSessionNotFound  = errors.New("session not found")
	ErrTokenInvalid     = errors.New("invalid token")
)
