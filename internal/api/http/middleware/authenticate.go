package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/vbote/auth-server/internal/logger"
	"github.com/vbote/auth-server/internal/model"
)

// SessionValidator resolves bearer tokens to active sessions.
type SessionValidator interface {
	ValidateSession(ctx context.Context, token string) (model.Session, error)
}

// Authenticate validates bearer tokens and injects the session into the
// request context.
type Authenticate struct {
	sessions       SessionValidator
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(sessions SessionValidator, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{sessions: sessions, contextManager: contextManager, logger: logger}
}

// Handle parses the Authorization header, validates the session and
// passes the request on with the session in context.
func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if tokenString == "" {
			writeError(w, http.StatusUnauthorized, "missing authorization token")
			return
		}

		session, err := m.sessions.ValidateSession(r.Context(), tokenString)
		if err != nil {
			m.logger.Debug("Authenticate middleware: validation failed",
				"error", err.Error())
			if errors.Is(err, model.ErrUserBlocked) {
				writeError(w, http.StatusForbidden, model.ErrUserBlocked.Error())
				return
			}
			writeError(w, http.StatusUnauthorized, model.ErrSessionInvalid.Error())
			return
		}

		ctx := m.contextManager.SetSessionToContext(r.Context(), session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
