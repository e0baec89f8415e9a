package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vbote/auth-server/internal/api/http/handler"
	"github.com/vbote/auth-server/internal/api/http/middleware"
	"github.com/vbote/auth-server/internal/logger"
	"github.com/vbote/auth-server/internal/model"
	"github.com/vbote/auth-server/internal/service"
)

// Router wires HTTP handlers and middleware for the API.
type Router struct {
	sessionService *service.Session
	userService    *service.User
	contextManager model.ContextManager
	logger         *logger.Logger
}

// New creates a new Router instance.
func New(
	sessionService *service.Session,
	userService *service.User,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		sessionService: sessionService,
		userService:    userService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Register builds the chi mux with all routes and middleware. Session
// inspection and bulk invalidation require a valid bearer session;
// login, logout and the user CRUD surface are open.
func (r *Router) Register() http.Handler {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.sessionService, r.contextManager, r.logger)

	sessionHandler := handler.NewSession(r.sessionService, r.contextManager, r.logger)
	userHandler := handler.NewUser(r.userService, r.logger)

	mux := chi.NewRouter()
	mux.Use(logging.Handle)

	mux.Route("/api/sessions", func(api chi.Router) {
		api.Post("/login", sessionHandler.Login)
		api.Post("/logout", sessionHandler.Logout)

		api.Group(func(protected chi.Router) {
			protected.Use(authenticate.Handle)
			protected.Get("/", sessionHandler.GetActiveSessions)
			protected.Get("/validate", sessionHandler.Validate)
			protected.Get("/user/{userID}", sessionHandler.GetActiveSessionsByUserID)
			protected.Delete("/user/{userID}", sessionHandler.CloseAllUserSessions)
		})
	})

	mux.Route("/api/users", func(api chi.Router) {
		api.Post("/", userHandler.Create)
		api.Get("/", userHandler.GetAll)
		api.Get("/{id}", userHandler.GetByID)
		api.Put("/{id}", userHandler.Update)
		api.Patch("/{id}/block", userHandler.Block)
		api.Patch("/{id}/unblock", userHandler.Unblock)
	})

	return mux
}
