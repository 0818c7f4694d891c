package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/boundq/internal/api"
	apiMiddleware "github.com/phrazzld/boundq/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))

	taskHandler := api.NewTaskHandler(app.taskRunner)
	queueHandler := api.NewQueueHandler(app.taskRunner, app.history)

	r.Route("/api", func(r chi.Router) {
		if app.jwtService != nil {
			r.Use(apiMiddleware.NewAuthMiddleware(app.jwtService).Authenticate)
		}

		r.Route("/tasks", func(r chi.Router) {
			r.Post("/", taskHandler.SubmitTasks)
			r.Get("/", taskHandler.ListTasks)
			r.Get("/{id}", taskHandler.GetTask)
		})

		r.Route("/queue", func(r chi.Router) {
			r.Get("/", queueHandler.Stats)
			r.Post("/pause", queueHandler.Pause)
			r.Post("/resume", queueHandler.Resume)
			r.Post("/start", queueHandler.Start)
			r.Post("/clear", queueHandler.Clear)
		})

		r.Get("/events", queueHandler.Events)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
