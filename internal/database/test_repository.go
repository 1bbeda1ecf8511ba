package database

import (
	"context"

	"github.com/example/vocabquiz/internal/apperr"
	"github.com/example/vocabquiz/pkg/models"
	"github.com/jmoiron/sqlx"
)

// TestRepository handles database operations for tests
type TestRepository struct {
	q sqlx.ExtContext
}

// NewTestRepository creates a new repository instance
func NewTestRepository(q sqlx.ExtContext) *TestRepository {
	return &TestRepository{q: q}
}

// Create inserts a new test without entries
func (r *TestRepository) Create(ctx context.Context, test *models.Test) error {
	query := r.q.Rebind(`
		INSERT INTO tests (user_id, test_name, language_from, language_to)
		VALUES (?, ?, ?, ?)
		RETURNING id
	`)
	err := r.q.QueryRowxContext(ctx, query,
		test.UserID,
		test.Name,
		test.LanguageFrom,
		test.LanguageTo,
	).Scan(&test.ID)
	if err != nil {
		return apperr.Persistence("create test", err)
	}
	return nil
}

// GetByID returns a test by ID
func (r *TestRepository) GetByID(ctx context.Context, id int64) (*models.Test, error) {
	var test models.Test
	query := r.q.Rebind(`
		SELECT id, user_id, test_name, language_from, language_to
		FROM tests
		WHERE id = ?
	`)
	if err := sqlx.GetContext(ctx, r.q, &test, query, id); err != nil {
		return nil, notFoundOr(err, "test", id, "get test")
	}
	return &test, nil
}

// OwnerOf returns the id of the user owning the test
func (r *TestRepository) OwnerOf(ctx context.Context, id int64) (int64, error) {
	var owner int64
	query := r.q.Rebind("SELECT user_id FROM tests WHERE id = ?")
	if err := sqlx.GetContext(ctx, r.q, &owner, query, id); err != nil {
		return 0, notFoundOr(err, "test", id, "get test owner")
	}
	return owner, nil
}

// ListByUser returns all tests of a user in creation order
func (r *TestRepository) ListByUser(ctx context.Context, userID int64) ([]models.Test, error) {
	tests := []models.Test{}
	query := r.q.Rebind(`
		SELECT id, user_id, test_name, language_from, language_to
		FROM tests
		WHERE user_id = ?
		ORDER BY id
	`)
	if err := sqlx.SelectContext(ctx, r.q, &tests, query, userID); err != nil {
		return nil, apperr.Persistence("list tests", err)
	}
	return tests, nil
}

// Update writes name and languages of an existing test. The owner column is never touched.
func (r *TestRepository) Update(ctx context.Context, test *models.Test) error {
	query := r.q.Rebind(`
		UPDATE tests SET
			test_name = ?,
			language_from = ?,
			language_to = ?
		WHERE id = ?
	`)
	result, err := r.q.ExecContext(ctx, query,
		test.Name,
		test.LanguageFrom,
		test.LanguageTo,
		test.ID,
	)
	if err != nil {
		return apperr.Persistence("update test", err)
	}
	return requireAffected(result, "test", test.ID)
}

// Delete removes a test row. Children must be removed in the same transaction beforehand.
func (r *TestRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.q.ExecContext(ctx, r.q.Rebind("DELETE FROM tests WHERE id = ?"), id)
	if err != nil {
		return apperr.Persistence("delete test", err)
	}
	return requireAffected(result, "test", id)
}
