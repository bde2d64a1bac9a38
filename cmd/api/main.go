package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Jav1009/community-service-api/internal/app"
	"github.com/Jav1009/community-service-api/internal/clock"
	"github.com/Jav1009/community-service-api/internal/config"
	"github.com/Jav1009/community-service-api/internal/logging"
	"github.com/Jav1009/community-service-api/internal/storage/postgres"
	transporthttp "github.com/Jav1009/community-service-api/internal/transport/http"
	"github.com/Jav1009/community-service-api/migrations"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg.Environment)
	defer func() { _ = logger.Sync() }()

	startupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(startupCtx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("connect to db", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(startupCtx); err != nil {
		logger.Fatal("db ping", zap.Error(err))
	}
	if err := migrations.Apply(startupCtx, pool); err != nil {
		logger.Fatal("apply migrations", zap.Error(err))
	}

	serviceRepo := postgres.NewServiceRepository(pool)
	catalogSvc := app.NewCatalogService(serviceRepo, clock.NewSystem(), logger)
	bookingRepo := postgres.NewBookingRepository(pool)
	bookingSvc := app.NewBookingService(bookingRepo, clock.NewSystem(), logger)

	mux := http.NewServeMux()
	mux.Handle("/api/services", transporthttp.HandleServices(catalogSvc, logger))
	mux.Handle("/api/services/", transporthttp.HandleServiceByID(catalogSvc, logger))
	mux.Handle("/api/bookings", transporthttp.HandleBookings(bookingSvc, cfg.DefaultUserID, logger))
	mux.Handle("/api/bookings/", transporthttp.HandleBookingByID(bookingSvc, cfg.AdminToken, logger))
	mux.Handle("/", transporthttp.HandleRoot())

	handler := transporthttp.RequestLogger(transporthttp.CORS(cfg.CORSOrigins, mux), logger)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	logger.Info("api listening",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment))

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
		}
	case <-stopCtx.Done():
		logger.Info("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server shutdown error", zap.Error(err))
	}
	logger.Info("server stopped")
}
