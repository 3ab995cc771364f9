package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	attendanceUsecases "fieldpulse/internal/application/attendance/usecases"
	locationUsecases "fieldpulse/internal/application/location/usecases"
	"fieldpulse/internal/infrastructure/cache"
	"fieldpulse/internal/infrastructure/config"
	"fieldpulse/internal/infrastructure/database"
	"fieldpulse/internal/infrastructure/migration"
	"fieldpulse/internal/infrastructure/repository"
	"fieldpulse/internal/infrastructure/scheduler"
	"fieldpulse/internal/infrastructure/services"
	httpRouter "fieldpulse/internal/interfaces/http"
	"fieldpulse/internal/interfaces/http/handlers"
	"fieldpulse/internal/shared/biztime"
	"fieldpulse/internal/shared/logger"
)

var (
	env         string
	autoMigrate bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the FieldPulse HTTP server with specified configuration.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Automatically run database migrations on startup (not recommended for production)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	ginMode := mapEnvToGinMode(env)

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cfg.Server.Mode = ginMode

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	biztime.MustInit(cfg.Attendance.Timezone)

	log := logger.NewLogger()

	log.Infow("starting server",
		"environment", env,
		"timezone", cfg.Attendance.Timezone,
		"auto_migrate", autoMigrate,
	)

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	if autoMigrate {
		if env == "production" {
			log.Warnw("auto-migration is enabled in production environment")
		}
		if err := migration.Run(database.Get(), log); err != nil {
			return fmt.Errorf("auto-migration failed: %w", err)
		}
	}

	// Redis is a fast path only; ingestion works without it
	lastLocationCache := connectLocationCache(cfg, log)

	hub := services.NewPresenceHub(log, &services.PresenceHubConfig{
		MaxConns:   cfg.Location.MaxConns,
		ThrottleMs: cfg.Location.ThrottleMs,
	})
	defer hub.Shutdown()

	attendanceRepo := repository.NewAttendanceDayRepository(database.Get(), log)
	eventRepo := repository.NewLocationEventRepository(database.Get(), log)
	currentRepo := repository.NewCurrentLocationRepository(database.Get(), log)
	bindingRepo := repository.NewDeviceBindingRepository(database.Get(), log)

	togglePunchUC := attendanceUsecases.NewTogglePunchUseCase(attendanceRepo, hub, log)
	getTodayUC := attendanceUsecases.NewGetTodayAttendanceUseCase(attendanceRepo, log)
	ingestUC := locationUsecases.NewIngestLocationUseCase(eventRepo, currentRepo, bindingRepo, lastLocationCache, hub, log)
	cleanupUC := locationUsecases.NewCleanupLocationsUseCase(eventRepo, currentRepo, cfg.Location.RetentionHours, log)

	schedulerMgr, err := scheduler.NewSchedulerManager(log)
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}
	if err := schedulerMgr.RegisterLocationRetentionJob(cleanupUC, cfg.Location.IntervalHours); err != nil {
		return fmt.Errorf("failed to register retention job: %w", err)
	}
	schedulerMgr.Start()
	defer schedulerMgr.Stop()

	router := httpRouter.NewRouter(
		handlers.NewAttendanceHandler(togglePunchUC, getTodayUC, log),
		handlers.NewLocationHandler(ingestUC, log),
		handlers.NewAdminLocationHandler(cleanupUC, schedulerMgr, log),
		handlers.NewStreamHandler(hub, log),
		hub,
		cfg,
		log,
	)
	router.SetupRoutes()

	srv := &http.Server{
		Addr:        cfg.Server.GetAddr(),
		Handler:     router.GetEngine(),
		ReadTimeout: 15 * time.Second,
		// no WriteTimeout: SSE connections are long-lived
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		log.Infow("server starting",
			"address", cfg.Server.GetAddr(),
			"mode", cfg.Server.Mode,
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorw("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
		return err
	}

	log.Infow("server exited gracefully")
	return nil
}

// connectLocationCache dials Redis and returns the last-location cache, or
// nil when Redis is unreachable. A nil cache skips the fast path.
func connectLocationCache(cfg *config.Config, log logger.Interface) locationUsecases.LastLocationCache {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Warnw("redis unavailable, location fast path disabled",
			"addr", cfg.Redis.GetAddr(),
			"error", err,
		)
		return nil
	}

	log.Infow("redis connected", "addr", cfg.Redis.GetAddr())
	return cache.NewRedisLastLocationCache(client, cfg.Location.RetentionHours)
}

func mapEnvToGinMode(environment string) string {
	switch environment {
	case "production", "prod", "release":
		return "release"
	case "test", "testing":
		return "test"
	default:
		return "debug"
	}
}
