package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/phrazzld/repetify-api/internal/config"
	"github.com/phrazzld/repetify-api/internal/domain"
	"github.com/phrazzld/repetify-api/internal/domain/review"
	"github.com/phrazzld/repetify-api/internal/platform/postgres"
	"github.com/phrazzld/repetify-api/internal/service/auth"
	"github.com/phrazzld/repetify-api/internal/service/deck"
	"github.com/phrazzld/repetify-api/internal/store"
)

// application holds the wired dependencies for the running server.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	clock domain.Clock

	userStore store.UserStore
	deckStore store.DeckStore
	cardStore store.CardStore

	jwtService     auth.JWTService
	passwordHasher auth.PasswordHasher
	deckService    deck.Service
}

// newApplication wires all application components from the configuration.
func newApplication(cfg *config.Config, log *slog.Logger) (*application, error) {
	db, err := setupDatabase(cfg, log)
	if err != nil {
		return nil, err
	}

	if err := postgres.RunMigrations(db); err != nil {
		return nil, err
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	clock := domain.NewSystemClock()
	deckStore := postgres.NewPostgresDeckStore(db, log)
	cardStore := postgres.NewPostgresCardStore(db, log)
	userStore := postgres.NewPostgresUserStore(db, log)

	deckService := deck.NewService(
		deckStore,
		cardStore,
		review.NewScheduler(clock),
		clock,
		log,
	)

	return &application{
		config:         cfg,
		logger:         log,
		db:             db,
		clock:          clock,
		userStore:      userStore,
		deckStore:      deckStore,
		cardStore:      cardStore,
		jwtService:     jwtService,
		passwordHasher: auth.NewBcryptHasher(bcrypt.DefaultCost),
		deckService:    deckService,
	}, nil
}

// run starts the HTTP server and blocks until shutdown.
func (app *application) run() error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", app.config.Server.Port),
		Handler:           app.setupRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	shutdownErr := make(chan error, 1)
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		sig := <-quit

		app.logger.Info("shutting down server", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		shutdownErr <- srv.Shutdown(ctx)
	}()

	app.logger.Info("starting server", slog.Int("port", app.config.Server.Port))

	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	if err := <-shutdownErr; err != nil {
		return err
	}

	app.logger.Info("server stopped")
	return app.db.Close()
}
