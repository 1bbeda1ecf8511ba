// Package guard checks that the acting user owns a test before it is changed or quizzed.
package guard

import (
	"context"
	"fmt"

	"github.com/example/vocabquiz/internal/apperr"
	"github.com/example/vocabquiz/internal/database"
	"github.com/example/vocabquiz/pkg/models"
	"github.com/jmoiron/sqlx"
)

// Guard resolves ownership through the test repository. An entry is owned through its parent test.
type Guard struct {
	tests   *database.TestRepository
	entries *database.EntryRepository
}

// New creates a guard reading through q, which may be a *sqlx.DB or a *sqlx.Tx
func New(q sqlx.ExtContext) *Guard {
	return &Guard{
		tests:   database.NewTestRepository(q),
		entries: database.NewEntryRepository(q),
	}
}

// RequireActor fails for an absent identity
func RequireActor(actorID int64) error {
	if actorID <= 0 {
		return fmt.Errorf("%w: an authenticated user is required", apperr.ErrForbidden)
	}
	return nil
}

// OwnsTest reports whether actorID owns testID. Lookup failures count as not owned.
func (g *Guard) OwnsTest(ctx context.Context, actorID, testID int64) bool {
	_, err := g.Test(ctx, actorID, testID)
	return err == nil
}

// Test loads testID and fails unless actorID owns it
func (g *Guard) Test(ctx context.Context, actorID, testID int64) (*models.Test, error) {
	if err := RequireActor(actorID); err != nil {
		return nil, err
	}
	test, err := g.tests.GetByID(ctx, testID)
	if err != nil {
		return nil, err
	}
	if test.UserID != actorID {
		return nil, apperr.Forbidden("test", testID)
	}
	return test, nil
}

// Entry loads entryID together with its parent test and fails unless actorID owns the test
func (g *Guard) Entry(ctx context.Context, actorID, entryID int64) (*models.Entry, *models.Test, error) {
	if err := RequireActor(actorID); err != nil {
		return nil, nil, err
	}
	entry, err := g.entries.GetByID(ctx, entryID)
	if err != nil {
		return nil, nil, err
	}
	test, err := g.Test(ctx, actorID, entry.TestID)
	if err != nil {
		return nil, nil, err
	}
	return entry, test, nil
}
