// Package main initializes and starts the task tracker HTTP server,
// setting up configuration, logging, storage, services, handlers and
// graceful shutdown.
package main

import (
	"cmp"
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	nethttp "net/http"

	"github.com/atinyakov/TaskTracker/internal/auth"
	"github.com/atinyakov/TaskTracker/internal/config"
	"github.com/atinyakov/TaskTracker/internal/db"
	"github.com/atinyakov/TaskTracker/internal/logger"
	"github.com/atinyakov/TaskTracker/internal/middleware"
	"github.com/atinyakov/TaskTracker/internal/repository"
	"github.com/atinyakov/TaskTracker/internal/server/handler/http"
	"github.com/atinyakov/TaskTracker/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	if err := log.Init(options.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Log.Sync() }()
	zapLogger := log.Log

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		authRepo service.AuthRepository
		taskRepo service.TaskRepository
	)
	if options.DatabaseDSN == "" {
		zapLogger.Warn("no database DSN configured, using in-memory storage")
		authRepo = repository.NewMemoryAuthRepository()
		taskRepo = repository.NewMemoryTaskRepository()
	} else {
		// Initialize PostgreSQL connection and apply migrations.
		postgresDB, err := db.InitPostgres(ctx, options.DatabaseDSN)
		if err != nil {
			zapLogger.Fatal("cannot init database", zap.Error(err))
		}
		defer postgresDB.Close()

		authRepo = repository.NewPostgresAuthRepository(postgresDB)
		taskRepo = repository.NewPostgresTaskRepository(postgresDB)
	}

	secret := []byte(options.TokenSecret)
	if len(secret) == 0 {
		zapLogger.Warn("no token secret configured, generating an ephemeral one; tokens will not survive a restart")
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			zapLogger.Fatal("failed to generate token secret", zap.Error(err))
		}
	}
	issuer := auth.NewJWTIssuer(secret, options.TokenTTL)

	// Initialize business-logic services.
	authService := service.NewAuthService(authRepo, auth.BcryptHasher{}, issuer)
	taskService := service.NewTaskService(taskRepo)

	// Create HTTP handlers for auth and task endpoints.
	authHandler := &http.AuthHandler{AuthService: authService, Log: zapLogger}
	taskHandler := &http.TaskHandler{TaskService: taskService, Log: zapLogger}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := middleware.NewMetrics(reg)

	// Build the router with middleware and routes.
	router := http.NewRouter(authHandler, taskHandler, issuer, metrics, zapLogger)

	server := &nethttp.Server{
		Addr:              options.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zapLogger.Info("starting HTTP server",
			zap.String("addr", options.Port),
			zap.Bool("postgres", options.DatabaseDSN != ""),
		)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, nethttp.ErrServerClosed) {
			zapLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	case <-ctx.Done():
		zapLogger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			zapLogger.Error("graceful shutdown failed", zap.Error(err))
		}
	}
}
