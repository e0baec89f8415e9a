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

// CreateUserParams carries the input of User.Create. Password is the
// plaintext; it is hashed before anything is persisted.
type CreateUserParams struct {
	Username string
	Password string
	Role     model.Role
	Blocked  bool
}

// UpdateUserParams carries the input of User.Update. Username, Role and
// Blocked replace the stored values unconditionally; Password is
// re-hashed only when non-empty, otherwise the existing hash is kept.
type UpdateUserParams struct {
	Username string
	Password string
	Role     model.Role
	Blocked  bool
}

// User implements account management: creation, updates and the
// blocked flag that the session service enforces lazily at validation
// time.
type User struct {
	userStore model.UserStore
	hasher    model.PasswordHasher
	logger    *logger.Logger
}

// NewUser creates a new User service.
func NewUser(userStore model.UserStore, hasher model.PasswordHasher, logger *logger.Logger) *User {
	return &User{
		userStore: userStore,
		hasher:    hasher,
		logger:    logger,
	}
}

// Create persists a new user account. The plaintext password is hashed
// and never stored; role defaults to USER when unset and blocked
// defaults to false.
func (s *User) Create(ctx context.Context, params CreateUserParams) (model.User, error) {
	s.logger.Info("User service: creating user",
		"username", params.Username)

	exists, err := s.userStore.ExistsByUsername(ctx, params.Username)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to check username: %w", err)
	}
	if exists {
		return model.User{}, model.ErrUserAlreadyExists
	}

	passwordHash, err := s.hasher.Hash(params.Password)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	role := params.Role
	if role == "" {
		role = model.RoleUser
	}

	now := time.Now()
	user := model.User{
		ID:           uuid.New(),
		Username:     params.Username,
		PasswordHash: passwordHash,
		Role:         role,
		Blocked:      params.Blocked,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	savedUser, err := s.userStore.Create(ctx, user)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User service: user created",
		"user_id", savedUser.ID)

	return savedUser, nil
}

// GetAll returns users matching the filter. Absent filter fields put no
// constraint on the corresponding column.
func (s *User) GetAll(ctx context.Context, filter model.UserFilter) ([]model.User, error) {
	s.logger.Debug("User service: getting all users")

	users, err := s.userStore.FindAllWithFilters(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find users: %w", err)
	}
	return users, nil
}

// GetByID looks up a single user, failing with ErrUserNotFound when the
// id does not resolve.
func (s *User) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	s.logger.Debug("User service: getting user",
		"user_id", id)

	user, err := s.userStore.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, model.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user, nil
}

// Update replaces the account's username, role and blocked flag. A
// username change is re-checked for uniqueness against other accounts.
func (s *User) Update(ctx context.Context, id uuid.UUID, params UpdateUserParams) (model.User, error) {
	s.logger.Info("User service: updating user",
		"user_id", id)

	user, err := s.userStore.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, model.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	if user.Username != params.Username {
		exists, err := s.userStore.ExistsByUsername(ctx, params.Username)
		if err != nil {
			return model.User{}, fmt.Errorf("failed to check username: %w", err)
		}
		if exists {
			return model.User{}, model.ErrUserAlreadyExists
		}
	}

	user.Username = params.Username
	user.Role = params.Role
	user.Blocked = params.Blocked

	if params.Password != "" {
		passwordHash, err := s.hasher.Hash(params.Password)
		if err != nil {
			return model.User{}, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = passwordHash
	}

	user.UpdatedAt = time.Now()

	updatedUser, err := s.userStore.Update(ctx, user)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.Info("User service: user updated",
		"user_id", updatedUser.ID)

	return updatedUser, nil
}

// Block sets the blocked flag. Existing active sessions are not
// revoked; the session service rejects them at the next validation.
func (s *User) Block(ctx context.Context, id uuid.UUID) (model.User, error) {
	s.logger.Info("User service: blocking user",
		"user_id", id)

	return s.setBlocked(ctx, id, true)
}

// Unblock clears the blocked flag.
func (s *User) Unblock(ctx context.Context, id uuid.UUID) (model.User, error) {
	s.logger.Info("User service: unblocking user",
		"user_id", id)

	return s.setBlocked(ctx, id, false)
}

func (s *User) setBlocked(ctx context.Context, id uuid.UUID, blocked bool) (model.User, error) {
	user, err := s.userStore.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, model.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	user.Blocked = blocked
	user.UpdatedAt = time.Now()

	updatedUser, err := s.userStore.Update(ctx, user)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to update user: %w", err)
	}
	return updatedUser, nil
}
