package context

import (
	"context"

	"github.com/vbote/auth-server/internal/model"
)

type ctxKey int

const sessionKey ctxKey = iota

// Manager implements model.ContextManager for HTTP request contexts.
type Manager struct{}

// NewManager creates a new context Manager.
func NewManager() *Manager {
	return &Manager{}
}

// SetSessionToContext returns a context carrying the authenticated session.
func (m *Manager) SetSessionToContext(ctx context.Context, session model.Session) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

// GetSessionFromContext extracts the authenticated session, if any.
func (m *Manager) GetSessionFromContext(ctx context.Context) (model.Session, bool) {
	session, ok := ctx.Value(sessionKey).(model.Session)
	return session, ok
}
