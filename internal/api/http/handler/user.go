package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/vbote/auth-server/internal/logger"
	"github.com/vbote/auth-server/internal/model"
	"github.com/vbote/auth-server/internal/service"
)

// UserService defines user account management operations.
type UserService interface {
	Create(ctx context.Context, params service.CreateUserParams) (model.User, error)
	GetAll(ctx context.Context, filter model.UserFilter) ([]model.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (model.User, error)
	Update(ctx context.Context, id uuid.UUID, params service.UpdateUserParams) (model.User, error)
	Block(ctx context.Context, id uuid.UUID) (model.User, error)
	Unblock(ctx context.Context, id uuid.UUID) (model.User, error)
}

// User handles HTTP endpoints for user management.
type User struct {
	service   UserService
	validator *validator.Validate
	logger    *logger.Logger
}

// NewUser creates a new User handler.
func NewUser(service UserService, logger *logger.Logger) *User {
	return &User{
		service:   service,
		validator: validator.New(),
		logger:    logger,
	}
}

type createUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Password string `json:"password" validate:"required,min=6,max=100"`
	Role     string `json:"role" validate:"omitempty,oneof=ADMIN USER"`
}

type updateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Password string `json:"password" validate:"omitempty,min=6,max=100"`
	Role     string `json:"role" validate:"omitempty,oneof=ADMIN USER"`
	Blocked  bool   `json:"blocked"`
}

type userResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	Blocked   bool      `json:"blocked"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Create registers a new user account.
func (h *User) Create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeValidationError(w, err)
		return
	}

	h.logger.Info("User handler: processing create request",
		"username", req.Username)

	user, err := h.service.Create(r.Context(), service.CreateUserParams{
		Username: req.Username,
		Password: req.Password,
		Role:     model.Role(req.Role),
	})
	if err != nil {
		h.logger.Error("User handler: create failed",
			"username", req.Username,
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toUserResponse(user))
}

// GetAll lists users matching the optional query filters.
func (h *User) GetAll(w http.ResponseWriter, r *http.Request) {
	h.logger.Debug("User handler: listing users")

	var filter model.UserFilter

	if username := r.URL.Query().Get("username"); username != "" {
		filter.Username = &username
	}
	if roleParam := r.URL.Query().Get("role"); roleParam != "" {
		role := model.Role(roleParam)
		if role.Valid() {
			filter.Role = &role
		} else {
			h.logger.Warn("User handler: invalid role filter",
				"role", roleParam)
		}
	}
	if blockedParam := r.URL.Query().Get("blocked"); blockedParam != "" {
		blocked := blockedParam == "true"
		filter.Blocked = &blocked
	}

	users, err := h.service.GetAll(r.Context(), filter)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponseList(users))
}

// GetByID returns a single user.
func (h *User) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeValidationError(w, err)
		return
	}

	h.logger.Debug("User handler: getting user",
		"user_id", id)

	user, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

// Update replaces a user's account attributes.
func (h *User) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeValidationError(w, err)
		return
	}

	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeValidationError(w, err)
		return
	}

	h.logger.Info("User handler: processing update request",
		"user_id", id)

	role := model.Role(req.Role)
	if role == "" {
		role = model.RoleUser
	}

	user, err := h.service.Update(r.Context(), id, service.UpdateUserParams{
		Username: req.Username,
		Password: req.Password,
		Role:     role,
		Blocked:  req.Blocked,
	})
	if err != nil {
		h.logger.Error("User handler: update failed",
			"user_id", id,
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

// Block sets the blocked flag on a user account.
func (h *User) Block(w http.ResponseWriter, r *http.Request) {
	h.toggleBlocked(w, r, h.service.Block)
}

// Unblock clears the blocked flag on a user account.
func (h *User) Unblock(w http.ResponseWriter, r *http.Request) {
	h.toggleBlocked(w, r, h.service.Unblock)
}

func (h *User) toggleBlocked(w http.ResponseWriter, r *http.Request, op func(context.Context, uuid.UUID) (model.User, error)) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeValidationError(w, err)
		return
	}

	user, err := op(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

func toUserResponse(user model.User) userResponse {
	return userResponse{
		ID:        user.ID,
		Username:  user.Username,
		Role:      string(user.Role),
		Blocked:   user.Blocked,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func toUserResponseList(users []model.User) []userResponse {
	responses := make([]userResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, toUserResponse(user))
	}
	return responses
}
