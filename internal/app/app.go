package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/klokku/occasions/internal/config"
	"github.com/klokku/occasions/internal/database"
	"github.com/klokku/occasions/pkg/kv_store"
	log "github.com/sirupsen/logrus"
)

// Application wires configuration, storage, router, and server lifecycle.
type Application struct {
	cfg    config.Application
	router *mux.Router
	srv    *http.Server
	db     *pgxpool.Pool
}

// NewApplication constructs the full HTTP application, ready to Run().
func NewApplication() (*Application, error) {
	cfg, err := config.Load("./config/application.yaml")
	if err != nil {
		return nil, err
	}

	store, db, err := openStore(cfg)
	if err != nil {
		return nil, err
	}

	r := mux.NewRouter()

	// Build dependencies (services, handlers...)
	deps := BuildDependencies(store, cfg)

	SetupMiddleware(r, deps, cfg)

	RegisterRoutes(r, deps, cfg)

	srv := &http.Server{
		Handler:      r,
		Addr:         cfg.Listen,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Application{cfg: cfg, router: r, srv: srv, db: db}, nil
}

// openStore returns the key-value store selected by the configuration. The pool is nil for
// in-memory storage.
func openStore(cfg config.Application) (kv_store.Store, *pgxpool.Pool, error) {
	if cfg.Storage.Type == config.MemoryStorage {
		log.Warn("Using in-memory storage, events are lost on restart")
		return kv_store.NewMemoryStore(), nil, nil
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	if err := database.Migrate(cfg.Database); err != nil {
		db.Close()
		return nil, nil, err
	}
	return kv_store.NewPostgresStore(db), db, nil
}

// Run starts the HTTP server and blocks until it fails or the process is interrupted.
func (a *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errs := make(chan error, 1)
	go func() {
		log.Infof("Starting server on %s", a.srv.Addr)
		errs <- a.srv.ListenAndServe()
	}()

	var err error
	select {
	case err = <-errs:
	case <-ctx.Done():
		log.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err = a.srv.Shutdown(shutdownCtx)
	}

	if a.db != nil {
		a.db.Close()
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
