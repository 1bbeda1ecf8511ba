package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/example/vocabquiz/internal/apperr"
	"github.com/jmoiron/sqlx"
)

// WithTx runs fn inside one transaction. Any error returned by fn rolls back everything fn did.
// Inside fn only tx may be used: with sqlite the pool holds a single connection.
func WithTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return apperr.Persistence("start transaction", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return apperr.Persistence("commit transaction", err)
	}
	return nil
}

// notFoundOr converts sql.ErrNoRows into a NotFound error and anything else into a persistence error
func notFoundOr(err error, resource string, id int64, op string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound(resource, id)
	}
	return apperr.Persistence(op, err)
}

// requireAffected turns a zero-row mutation into a NotFound error
func requireAffected(result sql.Result, resource string, id int64) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return apperr.Persistence("get rows affected", err)
	}
	if rows == 0 {
		return apperr.NotFound(resource, id)
	}
	return nil
}
