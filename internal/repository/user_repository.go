package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"fluto-auth/internal/domain"
	"fluto-auth/pkg/database"
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique constraint errors
const uniqueViolation = "23505"

// userRepository handles user_login operations with PostgreSQL
type userRepository struct {
	db *database.PostgresDB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.PostgresDB) UserRepository {
	return &userRepository{
		db: db,
	}
}

// GetByEmail retrieves a user by email
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, email, COALESCE(name, ''), COALESCE(picture, ''), google_id, created_at
		FROM user_login
		WHERE email = $1
	`

	user := &domain.User{}
	err := r.db.Pool.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.Picture,
		&user.GoogleID,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

// GetByID retrieves a user by ID
func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `
		SELECT id, email, COALESCE(name, ''), COALESCE(picture, ''), google_id, created_at
		FROM user_login
		WHERE id = $1
	`

	user := &domain.User{}
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.Picture,
		&user.GoogleID,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

// Create inserts a new user row. The ID is generated here; created_at comes
// back from the database so callers see the stored value.
func (r *userRepository) Create(ctx context.Context, email, name, picture, googleID string) (*domain.User, error) {
	query := `
		INSERT INTO user_login (id, email, name, picture, google_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`

	user := &domain.User{
		ID:       uuid.NewString(),
		Email:    email,
		Name:     name,
		Picture:  picture,
		GoogleID: googleID,
	}

	err := r.db.Pool.QueryRow(ctx, query,
		user.ID,
		user.Email,
		user.Name,
		user.Picture,
		user.GoogleID,
	).Scan(&user.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Update overwrites the mutable fields of a user. Email is never touched.
func (r *userRepository) Update(ctx context.Context, id, name, picture, googleID string) (*domain.User, error) {
	query := `
		UPDATE user_login
		SET name = $2, picture = $3, google_id = $4
		WHERE id = $1
		RETURNING id, email, COALESCE(name, ''), COALESCE(picture, ''), google_id, created_at
	`

	user := &domain.User{}
	err := r.db.Pool.QueryRow(ctx, query, id, name, picture, googleID).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.Picture,
		&user.GoogleID,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}
