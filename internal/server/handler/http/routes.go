// Package http provides HTTP routing and middleware configuration
// for the task tracker service.
package http

import (
	"net/http"

	"github.com/atinyakov/TaskTracker/internal/middleware"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs and returns an HTTP handler that serves
// the task tracker API.
//
// Routes:
//
//	GET    /healthz              → liveness probe
//	GET    /metrics              → Prometheus exposition
//	POST   /auth/signup          → authHandler.SignUp
//	POST   /auth/signin          → authHandler.SignIn
//	GET    /tasks                → taskHandler.List         (bearer auth)
//	POST   /tasks                → taskHandler.Create       (bearer auth)
//	GET    /tasks/{id}           → taskHandler.Get          (bearer auth)
//	PATCH  /tasks/{id}/status    → taskHandler.UpdateStatus (bearer auth)
//	DELETE /tasks/{id}           → taskHandler.Delete       (bearer auth)
//
// Request bodies must be JSON; anything else is a 400. Under /tasks the
// bearer check runs before the content-type check and before any body is read.
func NewRouter(
	authHandler *AuthHandler,
	taskHandler *TaskHandler,
	verifier middleware.TokenVerifier,
	metrics *middleware.Metrics,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)
	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))
	r.Use(metrics.Handler)

	r.Get("/healthz", Health)
	r.Method(http.MethodGet, "/metrics", metrics.Exposition())

	// Public endpoints
	r.Route("/auth", func(r chi.Router) {
		r.Use(requireJSON(logger))
		r.Post("/signup", authHandler.SignUp)
		r.Post("/signin", authHandler.SignIn)
	})

	// Protected group: requires a valid bearer token
	r.Route("/tasks", func(r chi.Router) {
		r.Use(middleware.BearerAuth(verifier, logger))
		r.Use(requireJSON(logger))

		r.Get("/", taskHandler.List)
		r.Post("/", taskHandler.Create)
		r.Get("/{id}", taskHandler.Get)
		r.Patch("/{id}/status", taskHandler.UpdateStatus)
		r.Delete("/{id}", taskHandler.Delete)
	})

	return r
}

// Health answers liveness probes.
func Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
