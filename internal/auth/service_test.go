package auth

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/example/vocabquiz/internal/apperr"
	"github.com/example/vocabquiz/internal/database"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	db, err := database.Connect(database.Config{
		Driver: database.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "auth.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewService(db, "test-secret", time.Hour)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user, token, err := svc.Register(ctx, " alice ", "password123")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotEqual(t, "password123", user.PasswordHash)

	id, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)

	token, err = svc.Login(ctx, "alice", "password123")
	require.NoError(t, err)
	id, err = svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)

	_, err = svc.Login(ctx, "alice", "wrong-password")
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
	_, err = svc.Login(ctx, "nobody", "password123")
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)

	_, _, err = svc.Register(ctx, "alice", "another-pass")
	assert.ErrorIs(t, err, apperr.ErrConflict)

	profile, err := svc.Profile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", profile.Username)
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, tc := range []struct{ username, password string }{
		{"al", "password123"},
		{"alice smith", "password123"},
		{"alice", "short"},
	} {
		_, _, err := svc.Register(ctx, tc.username, tc.password)
		assert.ErrorIs(t, err, apperr.ErrValidation, "username=%q", tc.username)
	}
}

func TestValidateTokenRejects(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)

	other := &Service{jwtSecret: []byte("other-secret"), tokenTTL: time.Hour, now: time.Now}
	forged, err := other.GenerateToken(1)
	require.NoError(t, err)
	_, err = svc.ValidateToken(forged)
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)

	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := svc.GenerateToken(1)
	require.NoError(t, err)
	svc.now = time.Now
	_, err = svc.ValidateToken(expired)
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"user_id": 1})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.ValidateToken(unsigned)
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
}
