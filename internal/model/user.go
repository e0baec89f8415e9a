package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Role is the authorization level of a user account.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// User represents a stored user account.
type User struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	Role         Role
	Blocked      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CanLogin reports whether the account may pass session validation.
func (u User) CanLogin() bool {
	return !u.Blocked
}

// UserFilter restricts FindAllWithFilters results. Nil fields mean
// no constraint; set fields combine conjunctively.
type UserFilter struct {
	Username *string
	Role     *Role
	Blocked  *bool
}

// UserStore defines persistence operations for users.
type UserStore interface {
	GetByUsername(ctx context.Context, username string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Create(ctx context.Context, user User) (User, error)
	Update(ctx context.Context, user User) (User, error)
	FindAllWithFilters(ctx context.Context, filter UserFilter) ([]User, error)
}
