package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog/internal/auth"
	"blog/internal/db"
	"blog/internal/store"
)

func newTestManager(t *testing.T, ttl time.Duration) (*auth.Manager, int64) {
	t.Helper()
	dbc, err := db.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { dbc.Close() })
	require.NoError(t, db.Migrate(dbc))

	u, err := store.New(dbc).Users.Create(context.Background(), "a@example.com", "Tester", "hash")
	require.NoError(t, err)

	return auth.NewManager(dbc, ttl), u.ID
}

func sessionRequest(rec *httptest.ResponseRecorder) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestSessionLifecycle(t *testing.T) {
	m, uid := newTestManager(t, time.Hour)

	rec := httptest.NewRecorder()
	require.NoError(t, m.Create(rec, uid))

	r := sessionRequest(rec)
	got, ok := m.CurrentUserID(r)
	assert.True(t, ok)
	assert.Equal(t, uid, got)

	m.Destroy(httptest.NewRecorder(), r)
	_, ok = m.CurrentUserID(r)
	assert.False(t, ok)
}

func TestExpiredSessionReadsAsAnonymous(t *testing.T) {
	m, uid := newTestManager(t, -time.Minute)

	rec := httptest.NewRecorder()
	require.NoError(t, m.Create(rec, uid))

	_, ok := m.CurrentUserID(sessionRequest(rec))
	assert.False(t, ok)
}

func TestNoCookieIsAnonymous(t *testing.T) {
	m, _ := newTestManager(t, time.Hour)
	_, ok := m.CurrentUserID(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, ok)
}

func TestPasswordHashRoundtrip(t *testing.T) {
	hash, err := auth.HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)
	assert.True(t, auth.CheckPassword("s3cret-pass", hash))
	assert.False(t, auth.CheckPassword("wrong", hash))
}
