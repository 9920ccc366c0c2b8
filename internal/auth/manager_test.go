package auth

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billfold/billfold/internal/shared"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestManager(t *testing.T) (*Manager, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewManager(client, time.Hour), mr
}

func TestCreateAndResolve(t *testing.T) {
	manager, _ := newTestManager(t)
	ownerID := uuid.New()

	token, err := manager.Create(context.Background(), ownerID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := manager.Resolve(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, ownerID, got)
}

func TestResolveUnknownToken(t *testing.T) {
	manager, _ := newTestManager(t)

	_, err := manager.Resolve(context.Background(), "not-a-token")
	require.ErrorIs(t, err, shared.ErrSessionExpired)
}

func TestResolveExpiredToken(t *testing.T) {
	manager, mr := newTestManager(t)

	token, err := manager.Create(context.Background(), uuid.New())
	require.NoError(t, err)

	mr.FastForward(2 * time.Hour)

	_, err = manager.Resolve(context.Background(), token)
	require.ErrorIs(t, err, shared.ErrSessionExpired)
}

func TestRevoke(t *testing.T) {
	manager, _ := newTestManager(t)

	token, err := manager.Create(context.Background(), uuid.New())
	require.NoError(t, err)

	require.NoError(t, manager.Revoke(context.Background(), token))

	_, err = manager.Resolve(context.Background(), token)
	require.ErrorIs(t, err, shared.ErrSessionExpired)
}

func TestTokensAreUnique(t *testing.T) {
	manager, _ := newTestManager(t)
	ownerID := uuid.New()

	first, err := manager.Create(context.Background(), ownerID)
	require.NoError(t, err)
	second, err := manager.Create(context.Background(), ownerID)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestRequireOwnerMiddleware(t *testing.T) {
	manager, _ := newTestManager(t)
	ownerID := uuid.New()

	token, err := manager.Create(context.Background(), ownerID)
	require.NoError(t, err)

	var gotOwner uuid.UUID
	handler := RequireOwner(testLogger(), manager)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotOwner = shared.OwnerFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	// Valid token passes through with the owner in context.
	req := httptest.NewRequest(http.MethodGet, "/customers", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, ownerID, gotOwner)

	// Missing header is rejected.
	req = httptest.NewRequest(http.MethodGet, "/customers", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Garbage token is rejected.
	req = httptest.NewRequest(http.MethodGet, "/customers", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
