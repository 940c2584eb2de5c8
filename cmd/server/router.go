package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mar333yas333/task-manager-api/internal/api"
	apimiddleware "github.com/mar333yas333/task-manager-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware. It accepts the application dependencies to create handlers
// and register routes. Returns the configured router.
func (app *application) setupRouter() http.Handler {
	// Create a router
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	r.Use(apimiddleware.TraceMiddleware) // Trace IDs tie error responses to log lines

	// Create API handlers using the application's services
	authHandler := api.NewAuthHandler(
		app.userStore,
		app.tokenService,
		app.passwordVerifier,
		app.logger,
	)
	userHandler := api.NewUserHandler(app.userStore, app.passwordVerifier, app.logger)
	taskHandler := api.NewTaskHandler(app.taskStore, app.logger)
	dashboardHandler := api.NewDashboardHandler(app.taskStore, app.logger)
	healthHandler := api.NewHealthHandler()
	authMiddleware := apimiddleware.NewAuthMiddleware(app.tokenService)

	// Register routes
	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)

		// Health check endpoint (public, probes no dependencies)
		r.Get("/health", healthHandler.Health)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Post("/logout", authHandler.Logout)

			// Profile endpoints
			r.Get("/users/profile", userHandler.GetProfile)
			r.Put("/users/profile", userHandler.UpdateProfile)
			r.Delete("/users/profile", userHandler.DeleteAccount)

			// Task endpoints; chi matches the static view segments before
			// the {id} parameter
			r.Get("/tasks", taskHandler.ListTasks)
			r.Post("/tasks", taskHandler.CreateTask)
			r.Get("/tasks/overdue", taskHandler.OverdueTasks)
			r.Get("/tasks/upcoming", taskHandler.UpcomingTasks)
			r.Get("/tasks/today", taskHandler.TodayTasks)
			r.Get("/tasks/{id}", taskHandler.GetTask)
			r.Put("/tasks/{id}", taskHandler.UpdateTask)
			r.Patch("/tasks/{id}", taskHandler.PatchTask)
			r.Delete("/tasks/{id}", taskHandler.DeleteTask)
			r.Patch("/tasks/{id}/complete", taskHandler.CompleteTask)

			// Dashboard endpoint
			r.Get("/dashboard", dashboardHandler.GetDashboard)
		})
	})

	return r
}
