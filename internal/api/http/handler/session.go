package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/vbote/auth-server/internal/logger"
	"github.com/vbote/auth-server/internal/model"
)

// SessionService defines session lifecycle operations.
type SessionService interface {
	Login(ctx context.Context, username, password, ipAddress string) (model.Session, error)
	Logout(ctx context.Context, token string) error
	CloseAllUserSessions(ctx context.Context, userID uuid.UUID) (int64, error)
	GetActiveSessions(ctx context.Context) ([]model.Session, error)
	GetActiveSessionsByUserID(ctx context.Context, userID uuid.UUID) ([]model.Session, error)
}

// Session handles HTTP endpoints for session management.
type Session struct {
	service        SessionService
	contextManager model.ContextManager
	validator      *validator.Validate
	logger         *logger.Logger
}

// NewSession creates a new Session handler.
func NewSession(service SessionService, contextManager model.ContextManager, logger *logger.Logger) *Session {
	return &Session{
		service:        service,
		contextManager: contextManager,
		validator:      validator.New(),
		logger:         logger,
	}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	SessionID uuid.UUID `json:"session_id"`
	UserID    uuid.UUID `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

type sessionResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	IPAddress string    `json:"ip_address"`
	CreatedAt time.Time `json:"created_at"`
	Active    bool      `json:"active"`
}

type logoutResponse struct {
	Message             string `json:"message"`
	SessionsClosedCount int64  `json:"sessions_closed_count"`
}

// Login creates a new session for valid credentials.
func (h *Session) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeValidationError(w, err)
		return
	}

	h.logger.Info("Session handler: processing login request",
		"username", req.Username)

	session, err := h.service.Login(r.Context(), req.Username, req.Password, clientIP(r))
	if err != nil {
		h.logger.Error("Session handler: login failed",
			"username", req.Username,
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Token:     session.Token,
		SessionID: session.ID,
		UserID:    session.UserID,
		CreatedAt: session.CreatedAt,
	})
}

// Logout deactivates the session of the presented bearer token.
func (h *Session) Logout(w http.ResponseWriter, r *http.Request) {
	h.logger.Info("Session handler: processing logout request")

	if err := h.service.Logout(r.Context(), bearerToken(r)); err != nil {
		h.logger.Error("Session handler: logout failed",
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, logoutResponse{
		Message:             "Logout successful",
		SessionsClosedCount: 1,
	})
}

// Validate returns the session the authenticate middleware resolved
// for the presented token.
func (h *Session) Validate(w http.ResponseWriter, r *http.Request) {
	session, ok := h.contextManager.GetSessionFromContext(r.Context())
	if !ok {
		handleError(w, model.ErrSessionInvalid)
		return
	}

	writeJSON(w, http.StatusOK, toSessionResponse(session))
}

// GetActiveSessions lists every active session.
func (h *Session) GetActiveSessions(w http.ResponseWriter, r *http.Request) {
	h.logger.Debug("Session handler: listing active sessions")

	sessions, err := h.service.GetActiveSessions(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toSessionResponseList(sessions))
}

// GetActiveSessionsByUserID lists the active sessions of one user.
func (h *Session) GetActiveSessionsByUserID(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		writeValidationError(w, err)
		return
	}

	h.logger.Debug("Session handler: listing active sessions",
		"user_id", userID)

	sessions, err := h.service.GetActiveSessionsByUserID(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toSessionResponseList(sessions))
}

// CloseAllUserSessions deactivates every active session of one user.
func (h *Session) CloseAllUserSessions(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		writeValidationError(w, err)
		return
	}

	h.logger.Info("Session handler: closing all sessions",
		"user_id", userID)

	closed, err := h.service.CloseAllUserSessions(r.Context(), userID)
	if err != nil {
		h.logger.Error("Session handler: close all sessions failed",
			"user_id", userID,
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, logoutResponse{
		Message:             "All sessions closed for user",
		SessionsClosedCount: closed,
	})
}

func toSessionResponse(session model.Session) sessionResponse {
	return sessionResponse{
		ID:        session.ID,
		UserID:    session.UserID,
		IPAddress: session.IPAddress,
		CreatedAt: session.CreatedAt,
		Active:    session.Active,
	}
}

func toSessionResponseList(sessions []model.Session) []sessionResponse {
	responses := make([]sessionResponse, 0, len(sessions))
	for _, session := range sessions {
		responses = append(responses, toSessionResponse(session))
	}
	return responses
}

// bearerToken extracts the token from the Authorization header,
// accepting both "Bearer <token>" and a raw token value.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	return strings.TrimPrefix(header, "Bearer ")
}

// clientIP resolves the caller address, preferring proxy headers.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	return r.RemoteAddr
}
