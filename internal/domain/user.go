package domain

import (
	"errors"
	"time"
)

// Sentinel errors returned by the user repository. ErrUserNotFound is a
// normal outcome for lookups; ErrDuplicateEmail signals a lost insert race
// on the email uniqueness constraint.
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// User represents a row in the user_login table. Email is the
// reconciliation key and immutable after creation.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Picture   string    `json:"picture"`
	GoogleID  string    `json:"google_id"`
	CreatedAt time.Time `json:"created_at"`
}

// PublicUser is the client-safe projection of a User
type PublicUser struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// Public returns the client-safe projection of the user
func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:      u.ID,
		Email:   u.Email,
		Name:    u.Name,
		Picture: u.Picture,
	}
}

// GoogleClaims holds the verified claims extracted from a Google ID token
type GoogleClaims struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
	Subject string `json:"sub"`
}

// LoginResult is the response body of a successful login
type LoginResult struct {
	AccessToken string      `json:"accessToken"`
	User        *PublicUser `json:"user"`
}

// SessionResult is the response body of a successful session verification.
// NewToken is present only when the presented token was near expiry.
type SessionResult struct {
	User     *PublicUser `json:"user"`
	NewToken string      `json:"newToken,omitempty"`
}
