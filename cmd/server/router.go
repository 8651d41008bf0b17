package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/task-api/internal/api"
	apiMiddleware "github.com/phrazzld/task-api/internal/api/middleware"
	"github.com/phrazzld/task-api/internal/api/shared"
)

// setupRouter creates the router with middleware and all routes. Routes are
// served at the root and again under /api.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(apiMiddleware.Recover)
	r.Use(apiMiddleware.NewCORSMiddleware(app.config.CORS.AllowedOrigins))

	// Set before /api is mounted so the subrouter inherits them.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusNotFound, "Resource not found", shared.CodeNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusMethodNotAllowed, "Method not allowed", shared.CodeMethodNotAllowed)
	})

	routes := app.routes()
	r.Group(routes)
	r.Route("/api", routes)

	return r
}

// routes registers the API endpoints on r.
func (app *application) routes() func(r chi.Router) {
	taskHandler := api.NewTaskHandler(app.taskService, app.logger)
	authHandler := api.NewAuthHandler(app.authenticator, app.logger)
	healthHandler := api.NewHealthHandler(app.config.Server.Environment)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.authenticator)

	return func(r chi.Router) {
		r.Get("/health", healthHandler.Health)
		r.Post("/auth/login", authHandler.Login)

		// Public; must come before the {id} routes.
		r.Get("/tasks/statistics", taskHandler.Statistics)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Get("/tasks", taskHandler.ListTasks)
			r.Post("/tasks", taskHandler.CreateTask)
			r.Put("/tasks/{id}", taskHandler.UpdateTask)
			r.Delete("/tasks/{id}", taskHandler.DeleteTask)
		})
	}
}
