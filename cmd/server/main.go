package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/communityhours/hours-dashboard/internal/authguard"
	"github.com/communityhours/hours-dashboard/internal/backend"
	"github.com/communityhours/hours-dashboard/internal/router"
	"github.com/communityhours/hours-dashboard/internal/system/config"
	"github.com/communityhours/hours-dashboard/internal/system/database"
	"github.com/communityhours/hours-dashboard/internal/system/log"
	"github.com/communityhours/hours-dashboard/internal/system/middleware"
)

// Version information (set by build script)
var (
	version   = "dev"
	buildDate = "unknown"
)

// housekeepingInterval is used when idle auth sessions never expire
const housekeepingInterval = 5 * time.Minute

func main() {
	// A missing .env is normal outside local development
	_ = godotenv.Load()

	// Priority: CONFIG_PATH env var > auto-discovered configs/config.yaml
	configPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(configPath)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	logger := log.Init(cfg.Logging.Level, cfg.Logging.Format, os.Stdout)
	logger.WithFields(logrus.Fields{
		"version":    version,
		"build_date": buildDate,
		"log_level":  logger.GetLevel().String(),
	}).Info("Starting Community Hours Dashboard server...")

	if logger.GetLevel() < logrus.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	var db *database.DB
	if cfg.Database.Enabled {
		db, err = database.Initialize(&cfg.Database, logger)
		if err != nil {
			logger.WithError(err).Fatal("Failed to initialize database")
		}
		defer db.Close()
	} else {
		logger.Warn("Database disabled, board report snapshots are unavailable")
	}

	if !cfg.Security.VerifyTokens {
		logger.Warn("Bearer token verification is disabled, do not run this configuration in production")
	}

	client := backend.NewClient(&cfg.Backend, backend.ForwardedToken, logger)
	defer client.Close()

	guard := authguard.NewGuard(cfg.Security.MaxAuthFailures, cfg.Security.AuthFailureSession)

	routerOpts := router.Options{
		Logger: logger,
		CORS:   cfg.CORS,
		Identity: middleware.IdentityOptions{
			Secret: []byte(cfg.Security.JWTSecret),
			Verify: cfg.Security.VerifyTokens,
		},
	}
	if db != nil {
		routerOpts.Database = db
	}
	engine, v1 := router.SetupRouter(routerOpts)
	registerServices(v1, cfg, client, guard, db)

	server := &http.Server{
		Addr:           cfg.Server.GetServerAddress(),
		Handler:        engine,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go runHousekeeping(ctx, guard, db, cfg.Security.AuthFailureSession, logger)

	go func() {
		logger.WithField("addr", server.Addr).Info("Starting HTTP server...")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Failed to start server")
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}
	unregisterServices()

	logger.Info("Server exited gracefully")
}

// runHousekeeping drops idle auth guard sessions and logs database pool stats
// until ctx is done. db may be nil.
func runHousekeeping(
	ctx context.Context,
	guard *authguard.Guard,
	db *database.DB,
	ttl time.Duration,
	logger *logrus.Logger,
) {
	if ttl <= 0 {
		ttl = housekeepingInterval
	}
	ticker := time.NewTicker(ttl)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := guard.Sweep(); removed > 0 {
				logger.WithField("sessions", removed).Debug("Expired idle auth sessions")
			}
			if db != nil {
				db.LogStats()
			}
		}
	}
}
