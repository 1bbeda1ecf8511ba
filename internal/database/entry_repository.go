package database

import (
	"context"

	"github.com/example/vocabquiz/internal/apperr"
	"github.com/example/vocabquiz/pkg/models"
	"github.com/jmoiron/sqlx"
)

// EntryRepository handles database operations for entries
type EntryRepository struct {
	q sqlx.ExtContext
}

// NewEntryRepository creates a new repository instance
func NewEntryRepository(q sqlx.ExtContext) *EntryRepository {
	return &EntryRepository{q: q}
}

// Create inserts a new entry
func (r *EntryRepository) Create(ctx context.Context, entry *models.Entry) error {
	query := r.q.Rebind(`
		INSERT INTO entries (test_id, word_or_sentence_from, word_or_sentence_to)
		VALUES (?, ?, ?)
		RETURNING id
	`)
	err := r.q.QueryRowxContext(ctx, query, entry.TestID, entry.TextFrom, entry.TextTo).Scan(&entry.ID)
	if err != nil {
		return apperr.Persistence("create entry", err)
	}
	return nil
}

// GetByID returns an entry by ID
func (r *EntryRepository) GetByID(ctx context.Context, id int64) (*models.Entry, error) {
	var entry models.Entry
	query := r.q.Rebind(`
		SELECT id, test_id, word_or_sentence_from, word_or_sentence_to
		FROM entries
		WHERE id = ?
	`)
	if err := sqlx.GetContext(ctx, r.q, &entry, query, id); err != nil {
		return nil, notFoundOr(err, "entry", id, "get entry")
	}
	return &entry, nil
}

// ListByTest returns the entries of a test in canonical order (ascending id)
func (r *EntryRepository) ListByTest(ctx context.Context, testID int64) ([]models.Entry, error) {
	entries := []models.Entry{}
	query := r.q.Rebind(`
		SELECT id, test_id, word_or_sentence_from, word_or_sentence_to
		FROM entries
		WHERE test_id = ?
		ORDER BY id ASC
	`)
	if err := sqlx.SelectContext(ctx, r.q, &entries, query, testID); err != nil {
		return nil, apperr.Persistence("list entries", err)
	}
	return entries, nil
}

// CountByTest returns the number of entries of a test
func (r *EntryRepository) CountByTest(ctx context.Context, testID int64) (int, error) {
	var count int
	query := r.q.Rebind("SELECT COUNT(*) FROM entries WHERE test_id = ?")
	if err := sqlx.GetContext(ctx, r.q, &count, query, testID); err != nil {
		return 0, apperr.Persistence("count entries", err)
	}
	return count, nil
}

// Update modifies the texts of an existing entry
func (r *EntryRepository) Update(ctx context.Context, entry *models.Entry) error {
	query := r.q.Rebind(`
		UPDATE entries SET
			word_or_sentence_from = ?,
			word_or_sentence_to = ?
		WHERE id = ?
	`)
	result, err := r.q.ExecContext(ctx, query, entry.TextFrom, entry.TextTo, entry.ID)
	if err != nil {
		return apperr.Persistence("update entry", err)
	}
	return requireAffected(result, "entry", entry.ID)
}

// Delete removes an entry
func (r *EntryRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.q.ExecContext(ctx, r.q.Rebind("DELETE FROM entries WHERE id = ?"), id)
	if err != nil {
		return apperr.Persistence("delete entry", err)
	}
	return requireAffected(result, "entry", id)
}

// DeleteByTest removes every entry of a test and returns how many were removed
func (r *EntryRepository) DeleteByTest(ctx context.Context, testID int64) (int64, error) {
	result, err := r.q.ExecContext(ctx, r.q.Rebind("DELETE FROM entries WHERE test_id = ?"), testID)
	if err != nil {
		return 0, apperr.Persistence("delete entries", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, apperr.Persistence("get rows affected", err)
	}
	return rows, nil
}
