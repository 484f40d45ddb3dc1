package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/flashdeck/flashdeck-api/internal/config"
	"github.com/flashdeck/flashdeck-api/internal/platform/clock"
	"github.com/flashdeck/flashdeck-api/internal/platform/postgres"
	"github.com/flashdeck/flashdeck-api/internal/service"
	"github.com/flashdeck/flashdeck-api/internal/service/auth"
	"github.com/flashdeck/flashdeck-api/internal/service/card_review"
	"github.com/flashdeck/flashdeck-api/internal/store"
	"github.com/flashdeck/flashdeck-api/internal/task"
)

// application holds the shared application dependencies to simplify wiring
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB
	clock  clock.Clock

	// Stores
	userStore     store.UserStore
	deckStore     store.DeckStore
	cardStore     store.CardStore
	studyLogStore store.StudyLogStore

	// Services
	jwtService        auth.JWTService
	passwordHasher    *auth.BcryptHasher
	loginThrottle     *auth.LoginThrottle
	deckService       *service.DeckService
	cardService       *service.CardService
	studyService      *service.StudyService
	cardReviewService card_review.CardReviewService

	// Background work
	taskRunner *task.Runner
}

// newApplication builds the application with all dependencies initialized.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
		clock:  clock.New(),
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.passwordHasher = auth.NewBcryptHasher()
	app.loginThrottle = auth.NewLoginThrottle(app.clock, logger)

	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.deckStore = postgres.NewPostgresDeckStore(db, logger)
	app.cardStore = postgres.NewPostgresCardStore(db, logger)
	app.studyLogStore = postgres.NewPostgresStudyLogStore(db, logger)

	app.deckService = service.NewDeckService(app.deckStore, app.cardStore, logger)
	app.cardService = service.NewCardService(app.cardStore, app.clock, logger)
	app.studyService = service.NewStudyService(app.studyLogStore, app.clock, logger)
	app.cardReviewService = card_review.NewCardReviewService(app.cardStore, app.clock, logger)

	app.taskRunner = setupTaskRunner(app)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the HTTP server and blocks until shutdown.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// setupTaskRunner starts the background runner with the periodic login
// throttle sweep.
func setupTaskRunner(app *application) *task.Runner {
	runner := task.NewRunner(app.logger)

	sweepInterval := time.Duration(app.config.Auth.ThrottleSweepIntervalMinutes) * time.Minute
	runner.Register(task.NewThrottleSweepJob(app.loginThrottle, sweepInterval))

	runner.Start()
	return runner
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.taskRunner != nil {
		app.taskRunner.Stop()
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
