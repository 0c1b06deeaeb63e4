package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nnamm/go-workout-tracker/internal/auth"
	"github.com/nnamm/go-workout-tracker/internal/catalog"
	"github.com/nnamm/go-workout-tracker/internal/config"
	"github.com/nnamm/go-workout-tracker/internal/database"
	"github.com/nnamm/go-workout-tracker/internal/logging"
	"github.com/nnamm/go-workout-tracker/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	log "github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := flag.String("config", "", "path for the TOML config file (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %s", err)
	}

	logging.Setup(logging.LoggerSetupParams{
		LogFileName:   cfg.Logging.File,
		LogToStdout:   cfg.Logging.LogToStdout,
		LogLevel:      cfg.Logging.Level,
		LogFormatJSON: cfg.Logging.FormatJSON,
	})
	log.Warnf("---->> running in [%s] environment", cfg.Env)

	if cfg.Auth.JWTSecret == "" {
		log.Fatalf("JWT secret not set, use JWT_SECRET env var or auth.jwt_secret to set it")
	}
	if cfg.Catalog.APIKey == "" {
		log.Errorf("exercise catalog API key not set, use CATALOG_API_KEY env var to set it")
	}

	// Configure database connection settings
	db, err := database.NewDatabaseWithConfig(&cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect database: %s", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Errorf("failed to close database: %s", err)
		}
	}()
	if pg, ok := db.(*database.PostgresDB); ok {
		log.WithFields(log.Fields(pg.GetPoolInfo())).Info("postgres pool ready")
	} else {
		log.Infof("sqlite database ready at %s", cfg.Database.SQLitePath)
	}

	metricsManager := metrics.NewManager("workout_tracker", "server", prometheus.DefaultRegisterer)
	catalogClient := catalog.NewClient(cfg.Catalog, metricsManager)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           newRouter(cfg, db, catalogClient, metricsManager, promhttp.Handler()),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
	}

	chOsInterrupt := make(chan os.Signal, 1)
	signal.Notify(chOsInterrupt, os.Interrupt, syscall.SIGTERM)

	chServerErr := make(chan error, 1)
	go func() {
		log.Infof("server is running on http://localhost:%d", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			chServerErr <- err
		}
	}()

	select {
	case sig := <-chOsInterrupt:
		log.Warnf("signal [%s] received, shutting down", sig)
	case err := <-chServerErr:
		log.Errorf("server failed: %s", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Errorf("graceful shutdown failed: %s", err)
	}
	log.Info("server stopped")
}

// newRouter wires the handlers, middleware and the auth layer
func newRouter(
	cfg *config.Config,
	db database.DBInterface,
	exercises *catalog.Client,
	metricsManager *metrics.Manager,
	metricsHandler http.Handler,
) http.Handler {
	authMiddleware := auth.NewMiddleware(
		auth.Config{Secret: cfg.Auth.JWTSecret, Issuer: cfg.Auth.JWTIssuer},
		auth.SkipPaths(healthzPath, metricsPath),
	)
	return routes(cfg, db, exercises, metricsManager, metricsHandler, authMiddleware)
}
