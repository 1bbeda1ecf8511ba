package guard

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/example/vocabquiz/internal/apperr"
	"github.com/example/vocabquiz/internal/database"
	"github.com/example/vocabquiz/pkg/models"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	db    *sqlx.DB
	owner int64
	other int64
	test  int64
	entry int64
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	db, err := database.Connect(database.Config{
		Driver: database.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "guard.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	users := database.NewUserRepository(db)
	owner := &models.User{Username: "owner", PasswordHash: "x"}
	other := &models.User{Username: "other", PasswordHash: "x"}
	require.NoError(t, users.Create(ctx, owner))
	require.NoError(t, users.Create(ctx, other))

	test := &models.Test{UserID: owner.ID, Name: "Animals", LanguageFrom: "en", LanguageTo: "es"}
	require.NoError(t, database.NewTestRepository(db).Create(ctx, test))
	entry := &models.Entry{TestID: test.ID, TextFrom: "dog", TextTo: "perro"}
	require.NoError(t, database.NewEntryRepository(db).Create(ctx, entry))

	return fixture{db: db, owner: owner.ID, other: other.ID, test: test.ID, entry: entry.ID}
}

func TestOwnsTest(t *testing.T) {
	f := newFixture(t)
	g := New(f.db)
	ctx := context.Background()

	assert.True(t, g.OwnsTest(ctx, f.owner, f.test))
	assert.False(t, g.OwnsTest(ctx, f.other, f.test))
	assert.False(t, g.OwnsTest(ctx, 0, f.test))
	assert.False(t, g.OwnsTest(ctx, -1, f.test))
	assert.False(t, g.OwnsTest(ctx, f.owner, f.test+100))
}

func TestTestErrors(t *testing.T) {
	f := newFixture(t)
	g := New(f.db)
	ctx := context.Background()

	test, err := g.Test(ctx, f.owner, f.test)
	require.NoError(t, err)
	assert.Equal(t, "Animals", test.Name)

	_, err = g.Test(ctx, f.other, f.test)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	_, err = g.Test(ctx, 0, f.test)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	_, err = g.Test(ctx, f.owner, f.test+100)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestEntryOwnedThroughParent(t *testing.T) {
	f := newFixture(t)
	g := New(f.db)
	ctx := context.Background()

	entry, test, err := g.Entry(ctx, f.owner, f.entry)
	require.NoError(t, err)
	assert.Equal(t, "dog", entry.TextFrom)
	assert.Equal(t, f.test, test.ID)

	_, _, err = g.Entry(ctx, f.other, f.entry)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	_, _, err = g.Entry(ctx, f.owner, f.entry+100)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
