package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Session represents a server-side login session identified by a bearer
// token. Active starts true and may only ever transition to false.
type Session struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Token     string
	IPAddress string
	CreatedAt time.Time
	Active    bool
}

// BelongsTo reports whether the session is owned by the given user.
func (s Session) BelongsTo(userID uuid.UUID) bool {
	return s.UserID == userID
}

// SessionStore defines persistence operations for sessions.
type SessionStore interface {
	GetByToken(ctx context.Context, token string) (Session, error)
	Create(ctx context.Context, session Session) (Session, error)
	Update(ctx context.Context, session Session) (Session, error)
	FindAllActive(ctx context.Context) ([]Session, error)
	FindAllActiveByUserID(ctx context.Context, userID uuid.UUID) ([]Session, error)
	DeactivateAllByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
}
