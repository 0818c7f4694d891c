package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/boundq/internal/config"
	"github.com/phrazzld/boundq/internal/events"
	"github.com/phrazzld/boundq/internal/service/auth"
	"github.com/phrazzld/boundq/internal/task"
)

// probeQueueName names the queue in published events.
const probeQueueName = "probes"

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	taskStore *task.MemoryTaskStore
	prober    *task.Prober

	// nil when auth is disabled
	jwtService auth.JWTService

	eventEmitter *events.InMemoryEventEmitter
	history      *events.History

	taskRunner *task.TaskRunner
}

// newApplication creates a new application instance with all dependencies
// initialized. client is used for probes; nil uses a default client.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	client *http.Client,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	if cfg.Auth.Enabled() {
		var err error
		app.jwtService, err = auth.NewJWTService(cfg.Auth)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
		}
		logger.Info("JWT authentication enabled",
			"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)
	} else {
		logger.Warn("JWT authentication disabled, admin API is unprotected")
	}

	app.eventEmitter = events.NewInMemoryEventEmitter(logger.With("component", "event_emitter"))
	app.history = events.NewHistory(cfg.Queue.EventHistory)
	app.eventEmitter.RegisterHandler(app.history)

	app.taskStore = task.NewMemoryTaskStore()
	app.prober = task.NewProber(task.ProberConfig{
		Method:            cfg.Probe.Method,
		Timeout:           cfg.Probe.Timeout(),
		UserAgent:         cfg.Probe.UserAgent,
		ExpectStatusBelow: cfg.Probe.ExpectStatusBelow,
	}, client, logger.With("component", "prober"))

	app.taskRunner = setupTaskRunner(ctx, app)

	logger.Info("Application initialized successfully")
	return app, nil
}

// setupTaskRunner builds the task runner and publishes its queue's lifecycle
// to the application's event emitter.
func setupTaskRunner(ctx context.Context, app *application) *task.TaskRunner {
	publisher := events.NewQueueObserver[task.Task, task.ProbeResult](
		ctx,
		app.eventEmitter,
		probeQueueName,
		func(t task.Task) string { return t.ID.String() },
		app.logger,
	).WithErrorFormatter(task.FailureMessage)

	runner := task.NewTaskRunner(
		ctx,
		app.taskStore,
		app.prober.Probe,
		app.config.Queue.Options(),
		app.logger,
		publisher,
	)
	publisher.WithStats(runner.Stats)

	return runner
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup stops the task runner, discarding pending tasks and waiting for
// running probes until ctx is done.
func (app *application) cleanup(ctx context.Context) {
	if app.taskRunner != nil {
		if err := app.taskRunner.Stop(ctx); err != nil {
			app.logger.Error("Error stopping task runner", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed",
		"tasks_by_status", app.taskStore.CountByStatus())
}
