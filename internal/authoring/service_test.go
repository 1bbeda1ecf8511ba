package authoring

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/vocabquiz/internal/apperr"
	"github.com/example/vocabquiz/internal/database"
	"github.com/example/vocabquiz/pkg/models"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, *sqlx.DB) {
	t.Helper()

	db, err := database.Connect(database.Config{
		Driver: database.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "authoring.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewService(db, DefaultTextPolicy()), db
}

func createUser(t *testing.T, db *sqlx.DB, name string) int64 {
	t.Helper()

	user := &models.User{Username: name, PasswordHash: "x"}
	require.NoError(t, database.NewUserRepository(db).Create(context.Background(), user))
	return user.ID
}

func strPtr(s string) *string { return &s }

func TestCreateTestValidation(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	alice := createUser(t, db, "alice")

	id, err := svc.CreateTest(ctx, alice, "  Animals 1 ", "EN", "es")
	require.NoError(t, err)

	tests, err := svc.ListMyTests(ctx, alice)
	require.NoError(t, err)
	require.Len(t, tests, 1)
	assert.Equal(t, id, tests[0].ID)
	assert.Equal(t, "Animals 1", tests[0].Name)
	assert.Equal(t, "en", tests[0].LanguageFrom)
	assert.Equal(t, "English", tests[0].LanguageFromDetails.Name)
	assert.Equal(t, "es", tests[0].LanguageToDetails.CountryCode)

	cases := []struct {
		name, from, to string
	}{
		{"ab", "en", "es"},
		{strings.Repeat("a", 51), "en", "es"},
		{"Animals!", "en", "es"},
		{"Animals", "en", "zz"},
		{"Animals", "qq", "es"},
		{"Animals", "en", "en"},
	}
	for _, tc := range cases {
		_, err := svc.CreateTest(ctx, alice, tc.name, tc.from, tc.to)
		assert.ErrorIs(t, err, apperr.ErrValidation, "name=%q from=%q to=%q", tc.name, tc.from, tc.to)
	}

	_, err = svc.CreateTest(ctx, 0, "Animals", "en", "es")
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	id, err = svc.CreateTest(ctx, alice, "Ñandú y pingüino", "es", "de")
	require.NoError(t, err)
	assert.NotZero(t, id)
}

func TestOwnershipIsEnforced(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	testID, err := svc.CreateTest(ctx, alice, "Animals", "en", "es")
	require.NoError(t, err)
	entry, err := svc.AddEntry(ctx, alice, testID, "dog", "perro")
	require.NoError(t, err)

	for _, actor := range []int64{bob, 0, -7} {
		_, err = svc.UpdateTest(ctx, actor, testID, models.TestUpdate{Name: strPtr("Stolen")})
		assert.ErrorIs(t, err, apperr.ErrForbidden)
		assert.ErrorIs(t, svc.DeleteTest(ctx, actor, testID), apperr.ErrForbidden)
		_, err = svc.AddEntry(ctx, actor, testID, "cat", "gato")
		assert.ErrorIs(t, err, apperr.ErrForbidden)
		_, err = svc.UpdateEntry(ctx, actor, entry.ID, "cat", "gato")
		assert.ErrorIs(t, err, apperr.ErrForbidden)
		assert.ErrorIs(t, svc.DeleteEntry(ctx, actor, entry.ID), apperr.ErrForbidden)
		_, err = svc.GetTestForEdit(ctx, actor, testID)
		assert.ErrorIs(t, err, apperr.ErrForbidden)
	}

	_, err = svc.UpdateTest(ctx, alice, testID+100, models.TestUpdate{Name: strPtr("Nope")})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	form, err := svc.GetTestForEdit(ctx, alice, testID)
	require.NoError(t, err)
	assert.Equal(t, "Animals", form.Test.Name)
	require.Len(t, form.Entries, 1)
	assert.Equal(t, "dog", form.Entries[0].TextFrom)
	assert.NotEmpty(t, form.LanguageOptions)
}

func TestUpdateTestPartial(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	alice := createUser(t, db, "alice")

	testID, err := svc.CreateTest(ctx, alice, "Animals", "en", "es")
	require.NoError(t, err)

	test, err := svc.UpdateTest(ctx, alice, testID, models.TestUpdate{LanguageTo: strPtr("fr")})
	require.NoError(t, err)
	assert.Equal(t, "Animals", test.Name)
	assert.Equal(t, "fr", test.LanguageTo)

	_, err = svc.UpdateTest(ctx, alice, testID, models.TestUpdate{LanguageTo: strPtr("en")})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.UpdateTest(ctx, alice, testID, models.TestUpdate{Name: strPtr("x"), LanguageTo: strPtr("de")})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	stored, err := database.NewTestRepository(db).GetByID(ctx, testID)
	require.NoError(t, err)
	assert.Equal(t, "fr", stored.LanguageTo)
	assert.Equal(t, alice, stored.UserID)
}

func TestDeleteTestCascades(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	alice := createUser(t, db, "alice")

	for _, n := range []int{0, 1, 5} {
		testID, err := svc.CreateTest(ctx, alice, "Cascade", "en", "es")
		require.NoError(t, err)
		for i := 0; i < n; i++ {
			_, err := svc.AddEntry(ctx, alice, testID, "word", "palabra")
			require.NoError(t, err)
		}
		result := &models.TestResult{UserID: alice, TestID: testID, Score: 1, TotalQuestions: 1, Percentage: 100}
		require.NoError(t, database.NewTestResultRepository(db).Create(ctx, result))

		require.NoError(t, svc.DeleteTest(ctx, alice, testID))

		count, err := database.NewEntryRepository(db).CountByTest(ctx, testID)
		require.NoError(t, err)
		assert.Zero(t, count)
		results, err := database.NewTestResultRepository(db).CountByTest(ctx, testID)
		require.NoError(t, err)
		assert.Zero(t, results)
		_, err = database.NewTestRepository(db).GetByID(ctx, testID)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	}
}

func TestEntryValidation(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	alice := createUser(t, db, "alice")
	testID, err := svc.CreateTest(ctx, alice, "Phrases", "en", "es")
	require.NoError(t, err)

	entry, err := svc.AddEntry(ctx, alice, testID, "  What's up? ", "¿Qué tal?")
	assert.ErrorIs(t, err, apperr.ErrValidation, "inverted question mark is not in the allow-list")
	assert.Nil(t, entry)

	entry, err = svc.AddEntry(ctx, alice, testID, "  What's up? ", "Qué tal")
	require.NoError(t, err)
	assert.Equal(t, "What's up?", entry.TextFrom)

	_, err = svc.AddEntry(ctx, alice, testID, strings.Repeat("a", 251), "b")
	assert.ErrorIs(t, err, apperr.ErrValidation)
	_, err = svc.AddEntry(ctx, alice, testID, "a", "  ")
	assert.ErrorIs(t, err, apperr.ErrValidation)
	_, err = svc.AddEntry(ctx, alice, testID, "<script>", "b")
	assert.ErrorIs(t, err, apperr.ErrValidation)

	updated, err := svc.UpdateEntry(ctx, alice, entry.ID, "hi", "hola")
	require.NoError(t, err)
	assert.Equal(t, "hola", updated.TextTo)

	require.NoError(t, svc.DeleteEntry(ctx, alice, entry.ID))
	assert.ErrorIs(t, svc.DeleteEntry(ctx, alice, entry.ID), apperr.ErrNotFound)
}

func TestSubmitTestEditReconciles(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	alice := createUser(t, db, "alice")
	testID, err := svc.CreateTest(ctx, alice, "Animals", "en", "es")
	require.NoError(t, err)

	dog, err := svc.AddEntry(ctx, alice, testID, "dog", "perro")
	require.NoError(t, err)
	cat, err := svc.AddEntry(ctx, alice, testID, "cat", "gato")
	require.NoError(t, err)

	form, err := svc.SubmitTestEdit(ctx, alice, testID, models.TestEdit{
		TestUpdate: models.TestUpdate{Name: strPtr("Pets")},
		Entries: []models.EntryEdit{
			{ID: dog.ID, TextFrom: "dog", TextTo: "can"},
			{TextFrom: "bird", TextTo: "pájaro"},
			{TextFrom: "fish", TextTo: ""},
			{TextFrom: "", TextTo: ""},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Pets", form.Test.Name)
	require.Len(t, form.Entries, 3)
	assert.Equal(t, dog.ID, form.Entries[0].ID)
	assert.Equal(t, "can", form.Entries[0].TextTo)
	assert.Equal(t, *cat, form.Entries[1], "omitted entry stays untouched")
	assert.Equal(t, "bird", form.Entries[2].TextFrom)
}

func TestSubmitTestEditIsAtomic(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	alice := createUser(t, db, "alice")
	testID, err := svc.CreateTest(ctx, alice, "Animals", "en", "es")
	require.NoError(t, err)
	otherID, err := svc.CreateTest(ctx, alice, "Colors", "en", "es")
	require.NoError(t, err)
	red, err := svc.AddEntry(ctx, alice, otherID, "red", "rojo")
	require.NoError(t, err)

	_, err = svc.SubmitTestEdit(ctx, alice, testID, models.TestEdit{
		TestUpdate: models.TestUpdate{Name: strPtr("Renamed")},
		Entries: []models.EntryEdit{
			{TextFrom: "dog", TextTo: "perro"},
			{ID: red.ID, TextFrom: "red", TextTo: "rouge"},
		},
	})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	form, err := svc.GetTestForEdit(ctx, alice, testID)
	require.NoError(t, err)
	assert.Equal(t, "Animals", form.Test.Name)
	assert.Empty(t, form.Entries)

	_, err = svc.SubmitTestEdit(ctx, alice, testID, models.TestEdit{
		Entries: []models.EntryEdit{
			{TextFrom: "dog", TextTo: "perro"},
			{TextFrom: "cat", TextTo: strings.Repeat("g", 300)},
		},
	})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	count, err := database.NewEntryRepository(db).CountByTest(ctx, testID)
	require.NoError(t, err)
	assert.Zero(t, count)
}
