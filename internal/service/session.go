package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vbote/auth-server/internal/logger"
	"github.com/vbote/auth-server/internal/model"
)

// Session implements the session lifecycle: issuing sessions on login,
// validating them on every authenticated call, and invalidating them on
// logout or administrative action.
type Session struct {
	userStore    model.UserStore
	sessionStore model.SessionStore
	hasher       model.PasswordHasher
	issuer       model.TokenIssuer
	logger       *logger.Logger
}

// NewSession creates a new Session service.
func NewSession(
	userStore model.UserStore,
	sessionStore model.SessionStore,
	hasher model.PasswordHasher,
	issuer model.TokenIssuer,
	logger *logger.Logger,
) *Session {
	return &Session{
		userStore:    userStore,
		sessionStore: sessionStore,
		hasher:       hasher,
		issuer:       issuer,
		logger:       logger,
	}
}

// Login authenticates credentials and creates a new active session
// carrying the token the issuer produced. Unknown usernames and wrong
// passwords fail with the same ErrAuthenticationFailed so callers
// cannot enumerate accounts. The blocked flag is deliberately not
// checked here; a blocked user obtains a session but cannot pass
// ValidateSession afterward.
func (s *Session) Login(ctx context.Context, username, password, ipAddress string) (model.Session, error) {
	s.logger.Info("Session service: login attempt",
		"username", username,
		"ip_address", ipAddress)

	user, err := s.userStore.GetByUsername(ctx, username)
	if errors.Is(err, model.ErrNotFound) {
		return model.Session{}, model.ErrAuthenticationFailed
	}
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to get user by username: %w", err)
	}

	if !s.hasher.Matches(password, user.PasswordHash) {
		s.logger.Warn("Session service: invalid password",
			"username", username)
		return model.Session{}, model.ErrAuthenticationFailed
	}

	tokenString, err := s.issuer.Issue(user)
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to issue token: %w", err)
	}

	session := model.Session{
		ID:        uuid.New(),
		UserID:    user.ID,
		Token:     tokenString,
		IPAddress: ipAddress,
		CreatedAt: time.Now(),
		Active:    true,
	}

	savedSession, err := s.sessionStore.Create(ctx, session)
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to create session: %w", err)
	}

	s.logger.Info("Session service: login successful",
		"username", username,
		"session_id", savedSession.ID)

	return savedSession, nil
}

// ValidateSession resolves a bearer token to its active session.
// Tokens that fail issuer validation, resolve to no session, or resolve
// to a deactivated session all fail with ErrSessionInvalid. A valid
// session owned by a blocked user fails with ErrUserBlocked while the
// session row itself stays active; blocking is enforced lazily here,
// not against existing sessions.
func (s *Session) ValidateSession(ctx context.Context, token string) (model.Session, error) {
	s.logger.Debug("Session service: validating session token")

	if err := s.issuer.Validate(token); err != nil {
		s.logger.Debug("Session service: token failed issuer validation",
			"error", err.Error())
		return model.Session{}, model.ErrSessionInvalid
	}

	session, err := s.sessionStore.GetByToken(ctx, token)
	if errors.Is(err, model.ErrNotFound) {
		return model.Session{}, model.ErrSessionInvalid
	}
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to get session by token: %w", err)
	}

	if !session.Active {
		return model.Session{}, model.ErrSessionInvalid
	}

	user, err := s.userStore.GetByID(ctx, session.UserID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Session{}, model.ErrSessionInvalid
	}
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to get session owner: %w", err)
	}

	if !user.CanLogin() {
		s.logger.Info("Session service: session owner is blocked",
			"username", user.Username,
			"session_id", session.ID)
		return model.Session{}, model.ErrUserBlocked
	}

	return session, nil
}

// Logout deactivates the session identified by token. An unknown token
// fails with ErrSessionInvalid; logging out an already-inactive session
// is idempotent and succeeds.
func (s *Session) Logout(ctx context.Context, token string) error {
	s.logger.Info("Session service: logout attempt")

	session, err := s.sessionStore.GetByToken(ctx, token)
	if errors.Is(err, model.ErrNotFound) {
		return model.ErrSessionInvalid
	}
	if err != nil {
		return fmt.Errorf("failed to get session by token: %w", err)
	}

	session.Active = false
	if _, err := s.sessionStore.Update(ctx, session); err != nil {
		return fmt.Errorf("failed to deactivate session: %w", err)
	}

	s.logger.Info("Session service: logout successful",
		"session_id", session.ID)

	return nil
}

// CloseAllUserSessions deactivates every active session of the given
// user in one atomic statement and returns the number deactivated.
// A login committing independently after the statement has run stays
// active; the bulk operation does not lock out concurrent logins.
func (s *Session) CloseAllUserSessions(ctx context.Context, userID uuid.UUID) (int64, error) {
	s.logger.Info("Session service: closing all sessions",
		"user_id", userID)

	if _, err := s.userStore.GetByID(ctx, userID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return 0, model.ErrUserNotFound
		}
		return 0, fmt.Errorf("failed to get user by id: %w", err)
	}

	closed, err := s.sessionStore.DeactivateAllByUserID(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to deactivate sessions: %w", err)
	}

	s.logger.Info("Session service: closed sessions",
		"user_id", userID,
		"count", closed)

	return closed, nil
}

// GetActiveSessions returns every currently active session.
func (s *Session) GetActiveSessions(ctx context.Context) ([]model.Session, error) {
	s.logger.Debug("Session service: getting all active sessions")

	sessions, err := s.sessionStore.FindAllActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to find active sessions: %w", err)
	}
	return sessions, nil
}

// GetActiveSessionsByUserID returns the active sessions of one user,
// failing with ErrUserNotFound if the user does not exist.
func (s *Session) GetActiveSessionsByUserID(ctx context.Context, userID uuid.UUID) ([]model.Session, error) {
	s.logger.Debug("Session service: getting active sessions",
		"user_id", userID)

	if _, err := s.userStore.GetByID(ctx, userID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	sessions, err := s.sessionStore.FindAllActiveByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find active sessions by user id: %w", err)
	}
	return sessions, nil
}
