package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Jennaleighwilder/launchpad-conference-platform-sub001/internal/actions"
	"github.com/Jennaleighwilder/launchpad-conference-platform-sub001/internal/adapter/repository/postgres"
	"github.com/Jennaleighwilder/launchpad-conference-platform-sub001/internal/api"
	"github.com/Jennaleighwilder/launchpad-conference-platform-sub001/internal/config"
	"github.com/Jennaleighwilder/launchpad-conference-platform-sub001/internal/domain/event"
	"github.com/Jennaleighwilder/launchpad-conference-platform-sub001/internal/lifecycle"
	"github.com/Jennaleighwilder/launchpad-conference-platform-sub001/pkg/aiclient"
	"github.com/Jennaleighwilder/launchpad-conference-platform-sub001/pkg/db"
	zaplog "github.com/Jennaleighwilder/launchpad-conference-platform-sub001/pkg/log"
	"github.com/Jennaleighwilder/launchpad-conference-platform-sub001/pkg/mailclient"
	"github.com/Jennaleighwilder/launchpad-conference-platform-sub001/pkg/snowflake"
	"github.com/Jennaleighwilder/launchpad-conference-platform-sub001/sql/migrations"
)

// RunServer starts the HTTP server and the periodic lifecycle runner.
func RunServer() {
	app := fx.New(
		fx.Provide(
			// Config
			config.Load,

			// External providers
			aiclient.NewFromEnv,
			mailclient.NewFromEnv,

			// Domain adapters (bind interfaces)
			fx.Annotate(
				postgres.NewRepository,
				fx.As(new(event.Repository)),
			),
			fx.Annotate(
				postgres.NewLifecycleLogStore,
				fx.As(new(event.LifecycleLog)),
			),

			// Actions
			actions.NewComposer,
			actions.NewNotifier,
			actions.NewProvider,

			// Engine
			lifecycle.NewEngine,
			lifecycle.NewRunner,

			// API
			api.NewRouter,
		),
		db.Module,        // Database module
		snowflake.Module, // Snowflake ID module
		zaplog.Module,    // Logger module
		fx.Invoke(registerHooks),
	)

	app.Run()
}

// RunEnginePass wires the engine without fx and performs a single pass. This
// is the one-shot path external schedulers invoke through the CLI.
func RunEnginePass(ctx context.Context) (lifecycle.Summary, error) {
	cfg := config.Load()

	logger, err := zaplog.NewLogger(cfg)
	if err != nil {
		return lifecycle.Summary{}, err
	}
	defer logger.Sync()

	gdb, err := db.NewGorm(cfg, logger)
	if err != nil {
		return lifecycle.Summary{}, err
	}

	ids, err := snowflake.NewNode()
	if err != nil {
		return lifecycle.Summary{}, err
	}

	provider := actions.NewProvider(
		actions.NewComposer(aiclient.NewFromEnv(), logger),
		actions.NewNotifier(mailclient.NewFromEnv(), logger),
	)

	engine := lifecycle.NewEngine(
		postgres.NewRepository(gdb),
		postgres.NewLifecycleLogStore(gdb),
		provider,
		ids,
		cfg,
		logger,
	)

	runCtx, cancel := context.WithTimeout(ctx, cfg.LifecycleRunTimeout)
	defer cancel()

	return engine.RunOnce(runCtx)
}

// RunMigrations executes database migrations (up or down).
func RunMigrations(command string) error {
	if command == "" {
		command = "up"
	}

	cfg := config.Load()
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	logger.Info("Starting database migration...", zap.String("command", command))

	dbURL := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBHost,
		cfg.DBPort,
		cfg.DBName,
		cfg.DBSSLMode,
	)

	d, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("load migration files: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", d, dbURL)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}

	switch command {
	case "up":
		if err := m.Up(); err != nil && err != migrate.ErrNoChange {
			return fmt.Errorf("migration up failed: %w", err)
		}
		logger.Info("Migration up applied successfully")
	case "down":
		if err := m.Down(); err != nil && err != migrate.ErrNoChange {
			return fmt.Errorf("migration down failed: %w", err)
		}
		logger.Info("Migration down applied successfully")
	default:
		return fmt.Errorf("unknown migration command: %s", command)
	}

	return nil
}

func registerHooks(lc fx.Lifecycle, router *api.Router, runner *lifecycle.Runner, cfg *config.Config, logger *zap.Logger) {
	var runnerCancel context.CancelFunc

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("Starting HTTP server", zap.String("port", cfg.Port))

			runnerCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
			runnerCancel = cancel
			go runner.Run(runnerCtx)

			go func() {
				if err := router.Run(); err != nil && err != http.ErrServerClosed {
					logger.Fatal("Server failed to start", zap.Error(err))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Shutting down HTTP server gracefully...")

			if runnerCancel != nil {
				runnerCancel()
			}

			shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
			defer cancel()

			if err := router.Shutdown(shutdownCtx); err != nil {
				logger.Error("Server forced to shutdown", zap.Error(err))
				return err
			}

			logger.Info("HTTP server stopped gracefully")
			return nil
		},
	})
}
