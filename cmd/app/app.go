package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/estadio/stadium-api/internal/api"
	"github.com/estadio/stadium-api/internal/config"
	"github.com/estadio/stadium-api/internal/db"
	"github.com/estadio/stadium-api/internal/logger"
	"github.com/estadio/stadium-api/internal/notify"
)

const (
	natsAttempts    = 5
	natsBackoff     = 2 * time.Second
	shutdownTimeout = 10 * time.Second
)

func Start(configPath string) error {
	conf, postgresDB, err := bootstrap(configPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := notify.NewHub()
	go hub.Run(ctx)

	notifiers := notify.Multi{hub}
	if conf.NATS.URL != "" {
		conn, err := notify.ConnectNATS(conf.NATS.URL, natsAttempts, natsBackoff)
		if err != nil {
			return fmt.Errorf("failed to connect to nats -> %w", err)
		}
		defer conn.Drain()

		notifiers = append(notifiers, notify.NewNATSPublisher(conn, conf.NATS.SubjectPrefix))
	}

	s := api.NewServer(conf, postgresDB, notifiers, hub)

	srv := &http.Server{
		Addr:              ":" + s.Config.API.Port,
		Handler:           s.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info(fmt.Sprintf("starting server at %v", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err = <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start the server -> %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	zap.L().Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err = srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down the server -> %w", err)
	}

	return nil
}

// Migrate creates or updates the schema and exits.
func Migrate(configPath string) error {
	_, postgresDB, err := bootstrap(configPath)
	if err != nil {
		return err
	}

	sqlDB, err := postgresDB.DB()
	if err != nil {
		return fmt.Errorf("postgresDB.DB -> %w", err)
	}
	defer sqlDB.Close()

	zap.L().Info("schema migrated")

	return nil
}

func bootstrap(configPath string) (*config.AppConfig, *gorm.DB, error) {
	conf, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment, conf.Log.File); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger -> %w", err)
	}

	dbURL := os.Getenv("DATABASE_URL")
	var postgresDB *gorm.DB
	if dbURL != "" {
		postgresDB, err = db.OpenPostgresWithURL(dbURL)
	} else {
		postgresDB, err = db.OpenPostgres(conf.Postgres)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database -> %w", err)
	}

	return conf, postgresDB, nil
}
