package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpctx "github.com/vbote/auth-server/internal/api/http/context"
	"github.com/vbote/auth-server/internal/mocks"
	"github.com/vbote/auth-server/internal/model"
	"github.com/vbote/auth-server/internal/testutil"
)

func newAuthenticate(t *testing.T) (*mocks.SessionService, *Authenticate) {
	t.Helper()
	svc := &mocks.SessionService{}
	t.Cleanup(func() { svc.AssertExpectations(t) })
	return svc, NewAuthenticate(svc, httpctx.NewManager(), testutil.MakeNoopLogger())
}

func TestAuthenticate_MissingToken(t *testing.T) {
	t.Parallel()

	_, m := newAuthenticate(t)

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	m.Handle(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestAuthenticate_InvalidSession(t *testing.T) {
	t.Parallel()

	svc, m := newAuthenticate(t)

	svc.On("ValidateSession", mock.Anything, "bad-token").
		Return(model.Session{}, model.ErrSessionInvalid)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler must not run")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	rec := httptest.NewRecorder()

	m.Handle(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_BlockedUser(t *testing.T) {
	t.Parallel()

	svc, m := newAuthenticate(t)

	svc.On("ValidateSession", mock.Anything, "blocked-token").
		Return(model.Session{}, model.ErrUserBlocked)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler must not run")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer blocked-token")
	rec := httptest.NewRecorder()

	m.Handle(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAuthenticate_Success_InjectsSession(t *testing.T) {
	t.Parallel()

	svc, m := newAuthenticate(t)

	session := model.Session{ID: uuid.New(), UserID: uuid.New(), Token: "good-token", Active: true}
	svc.On("ValidateSession", mock.Anything, "good-token").Return(session, nil)

	manager := httpctx.NewManager()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok := manager.GetSessionFromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, session.ID, got.ID)
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()

	m.Handle(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestAuthenticate_RawTokenWithoutBearerPrefix(t *testing.T) {
	t.Parallel()

	svc, m := newAuthenticate(t)

	session := model.Session{ID: uuid.New(), Token: "raw-token", Active: true}
	svc.On("ValidateSession", mock.Anything, "raw-token").Return(session, nil)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "raw-token")
	rec := httptest.NewRecorder()

	m.Handle(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
