package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/example/vocabquiz/internal/apperr"
	"github.com/example/vocabquiz/pkg/models"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

// UserRepository handles database operations for users
type UserRepository struct {
	q sqlx.ExtContext
}

// NewUserRepository creates a new repository instance
func NewUserRepository(q sqlx.ExtContext) *UserRepository {
	return &UserRepository{q: q}
}

// Create inserts a new user. A taken username yields apperr.ErrConflict.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	query := r.q.Rebind(`
		INSERT INTO users (username, password_hash, created_at)
		VALUES (?, ?, ?)
		RETURNING id
	`)
	err := r.q.QueryRowxContext(ctx, query, user.Username, user.PasswordHash, user.CreatedAt).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: username %q is already taken", apperr.ErrConflict, user.Username)
		}
		return apperr.Persistence("create user", err)
	}
	return nil
}

// GetByID returns a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	query := r.q.Rebind("SELECT id, username, password_hash, created_at FROM users WHERE id = ?")
	if err := sqlx.GetContext(ctx, r.q, &user, query, id); err != nil {
		return nil, notFoundOr(err, "user", id, "get user")
	}
	return &user, nil
}

// GetByUsername returns a user by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	query := r.q.Rebind("SELECT id, username, password_hash, created_at FROM users WHERE username = ?")
	if err := sqlx.GetContext(ctx, r.q, &user, query, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: user %q", apperr.ErrNotFound, username)
		}
		return nil, apperr.Persistence("get user", err)
	}
	return &user, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
