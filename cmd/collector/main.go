// cmd/collector/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github-profile-collector/internal/api"
	"github-profile-collector/internal/config"
	"github-profile-collector/internal/database"
	"github-profile-collector/internal/enricher"
	"github-profile-collector/internal/github"
	"github-profile-collector/internal/storage"
	"github-profile-collector/internal/syncer"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		slog.Error("Application error", "error", err)
		os.Exit(1)
	}
}

// app carries what every subcommand needs once configuration is loaded.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:          "collector",
		Short:        "Collect a GitHub account's profile, repositories and contribution data",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Initialize structured logger
			logLevel := new(slog.LevelVar)
			handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
			a.logger = slog.New(handler)
			slog.SetDefault(a.logger)

			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			setLogLevel(cfg.LogLevel, logLevel)
			a.cfg = cfg
			a.logger.Info("Configuration loaded successfully")
			return nil
		},
	}

	root.AddCommand(newCollectCmd(a))
	root.AddCommand(newServeCmd(a))
	return root
}

func newCollectCmd(a *app) *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Run one collection and write the JSON files",
		RunE: func(cmd *cobra.Command, args []string) error {
			if outputDir != "" {
				a.cfg.OutputDir = outputDir
			}
			ctx := cmd.Context()

			sinks := []syncer.Sink{storage.NewFileStore(a.cfg.OutputDir, a.logger)}
			if a.cfg.DBURL != "" {
				dbpool, err := openDatabase(ctx, a.cfg.DBURL, a.logger)
				if err != nil {
					return err
				}
				defer dbpool.Close()
				sinks = append(sinks, storage.NewPostgresStore(dbpool, a.logger, a.cfg.DBKeepHistory))
			}

			s, err := a.newSyncer(sinks)
			if err != nil {
				return err
			}
			snap, err := s.RunOnce(ctx)
			if err != nil {
				return err
			}
			a.logger.Info("Collection finished",
				"repositories", len(snap.Repositories),
				"total_repositories", snap.TotalRepositoryCount,
				"output_dir", a.cfg.OutputDir,
			)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory (overrides OUTPUT_DIR)")
	return cmd
}

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Collect periodically into PostgreSQL and serve the latest snapshot over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.DBURL == "" {
				return errors.New("DB_URL is required for serve")
			}
			ctx := cmd.Context()

			dbpool, err := openDatabase(ctx, a.cfg.DBURL, a.logger)
			if err != nil {
				return err
			}
			defer dbpool.Close()

			sinks := []syncer.Sink{
				storage.NewFileStore(a.cfg.OutputDir, a.logger),
				storage.NewPostgresStore(dbpool, a.logger, a.cfg.DBKeepHistory),
			}
			s, err := a.newSyncer(sinks)
			if err != nil {
				return err
			}

			// Start the syncer in a separate goroutine
			go s.Start(ctx)

			srv := &http.Server{
				Addr:              a.cfg.HTTPAddr,
				Handler:           api.NewRouter(database.New(dbpool), a.logger),
				ReadHeaderTimeout: 10 * time.Second,
			}
			errCh := make(chan error, 1)
			go func() {
				a.logger.Info("HTTP server listening", "addr", a.cfg.HTTPAddr)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("http server failed: %w", err)
				}
				return nil
			case <-ctx.Done():
				a.logger.Info("Shutdown signal received. Exiting.")
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}

func (a *app) newSyncer(sinks []syncer.Sink) (*syncer.Syncer, error) {
	ghClient := github.NewClient(a.cfg.GithubToken, a.logger)
	if a.cfg.GithubAPIURL != "" {
		if err := ghClient.SetBaseURL(a.cfg.GithubAPIURL); err != nil {
			return nil, err
		}
	}

	e := enricher.NewEnricher(ghClient, a.logger, enricher.Options{
		StatsAttempts:     a.cfg.StatsMaxAttempts,
		StatsInitialDelay: a.cfg.StatsInitialDelay,
		Throttle:          throttle(a.cfg.EnrichThrottle),
	})
	pipeline := enricher.NewPipeline(e, a.cfg.WorkerConcurrency, a.logger)

	return syncer.NewSyncer(ghClient, pipeline, sinks, a.logger, a.cfg.GithubUser, a.cfg.IncludeForks, a.cfg.SyncInterval)
}

// throttle maps a configured zero to "disabled"; Options treats zero as "use the default".
func throttle(d time.Duration) time.Duration {
	if d == 0 {
		return -1
	}
	return d
}

func openDatabase(ctx context.Context, dbURL string, logger *slog.Logger) (*pgxpool.Pool, error) {
	dbpool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	logger.Info("Database connection established")

	if err := runMigrations(dbURL); err != nil {
		dbpool.Close()
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}
	logger.Info("Database migrations applied successfully")
	return dbpool, nil
}

func runMigrations(dbURL string) error {
	m, err := migrate.New("file://migrations", dbURL)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}

func setLogLevel(level string, v *slog.LevelVar) {
	switch level {
	case "debug":
		v.Set(slog.LevelDebug)
	case "warn":
		v.Set(slog.LevelWarn)
	case "error":
		v.Set(slog.LevelError)
	default:
		v.Set(slog.LevelInfo)
	}
}
