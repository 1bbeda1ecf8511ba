package database

import (
	"context"
	"time"

	"github.com/example/vocabquiz/internal/apperr"
	"github.com/example/vocabquiz/pkg/models"
	"github.com/jmoiron/sqlx"
)

// TestResultRepository handles database operations for test results.
// Results are append-only: there is no update.
type TestResultRepository struct {
	q sqlx.ExtContext
}

// NewTestResultRepository creates a new repository instance
func NewTestResultRepository(q sqlx.ExtContext) *TestResultRepository {
	return &TestResultRepository{q: q}
}

// Create inserts a new test result
func (r *TestResultRepository) Create(ctx context.Context, result *models.TestResult) error {
	if result.DateTaken.IsZero() {
		result.DateTaken = time.Now().UTC()
	}

	query := r.q.Rebind(`
		INSERT INTO test_results (
			user_id, test_id, score, total_questions, percentage, date_taken
		) VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id
	`)
	err := r.q.QueryRowxContext(ctx, query,
		result.UserID,
		result.TestID,
		result.Score,
		result.TotalQuestions,
		result.Percentage,
		result.DateTaken,
	).Scan(&result.ID)
	if err != nil {
		return apperr.Persistence("save test result", err)
	}
	return nil
}

// ListByUser returns all test results for a user, newest first, with the test name joined in
func (r *TestResultRepository) ListByUser(ctx context.Context, userID int64) ([]models.TestResult, error) {
	results := []models.TestResult{}
	query := r.q.Rebind(`
		SELECT r.id, r.user_id, r.test_id, COALESCE(t.test_name, '') AS test_name,
		       r.score, r.total_questions, r.percentage, r.date_taken
		FROM test_results r
		LEFT JOIN tests t ON t.id = r.test_id
		WHERE r.user_id = ?
		ORDER BY r.date_taken DESC, r.id DESC
	`)
	if err := sqlx.SelectContext(ctx, r.q, &results, query, userID); err != nil {
		return nil, apperr.Persistence("get test results", err)
	}
	return results, nil
}

// CountByTest returns how many results reference a test
func (r *TestResultRepository) CountByTest(ctx context.Context, testID int64) (int, error) {
	var count int
	query := r.q.Rebind("SELECT COUNT(*) FROM test_results WHERE test_id = ?")
	if err := sqlx.GetContext(ctx, r.q, &count, query, testID); err != nil {
		return 0, apperr.Persistence("count test results", err)
	}
	return count, nil
}

// DeleteByTest removes the history of a test. Only used when the test itself is deleted.
func (r *TestResultRepository) DeleteByTest(ctx context.Context, testID int64) (int64, error) {
	result, err := r.q.ExecContext(ctx, r.q.Rebind("DELETE FROM test_results WHERE test_id = ?"), testID)
	if err != nil {
		return 0, apperr.Persistence("delete test results", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, apperr.Persistence("get rows affected", err)
	}
	return rows, nil
}
