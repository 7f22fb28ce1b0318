package repository

import (
	"context"

	"fluto-auth/internal/domain"
)

// UserRepository defines the interface for user data operations. Each
// operation is a single round trip; there is no transaction spanning calls.
type UserRepository interface {
	// GetByID retrieves a user by ID; returns domain.ErrUserNotFound when
	// no row matches
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail retrieves a user by email; returns domain.ErrUserNotFound
	// when no row matches
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Create inserts a new user and returns the stored row; returns
	// domain.ErrDuplicateEmail when a concurrent insert won the email
	// uniqueness race
	Create(ctx context.Context, email, name, picture, googleID string) (*domain.User, error)

	// Update overwrites name, picture and google_id of an existing user
	// and returns the stored row
	Update(ctx context.Context, id, name, picture, googleID string) (*domain.User, error)
}
