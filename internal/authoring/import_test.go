package authoring

import (
	"context"
	"strings"
	"testing"

	"github.com/example/vocabquiz/internal/apperr"
	"github.com/example/vocabquiz/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportEntriesCSV(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	alice := createUser(t, db, "alice")
	testID, err := svc.CreateTest(ctx, alice, "Animals", "en", "es")
	require.NoError(t, err)

	data := "english,spanish\ndog,perro\ncat,gato\nfish,\n"
	result, err := svc.ImportEntries(ctx, alice, testID, "animals.csv", strings.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 3, result.TotalProcessed)
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 1, result.Skipped)
	assert.Empty(t, result.Errors)

	entries, err := database.NewEntryRepository(db).ListByTest(ctx, testID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "dog", entries[0].TextFrom)
	assert.Equal(t, "gato", entries[1].TextTo)
}

func TestImportEntriesRejectsInvalidRows(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	testID, err := svc.CreateTest(ctx, alice, "Animals", "en", "es")
	require.NoError(t, err)

	data := "english,spanish\ndog,perro\n<b>,gato\n"
	_, err = svc.ImportEntries(ctx, alice, testID, "animals.csv", strings.NewReader(data))
	require.ErrorIs(t, err, apperr.ErrValidation)
	assert.Contains(t, err.Error(), "Row 3")

	count, err := database.NewEntryRepository(db).CountByTest(ctx, testID)
	require.NoError(t, err)
	assert.Zero(t, count)

	_, err = svc.ImportEntries(ctx, bob, testID, "animals.csv", strings.NewReader("a,b\nc,d\n"))
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	_, err = svc.ImportEntries(ctx, alice, testID, "animals.txt", strings.NewReader("a,b\n"))
	assert.ErrorIs(t, err, apperr.ErrValidation)
}
