package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpapi "procurement/internal/adapters/in/http"
	"procurement/internal/adapters/out/postgres/migration"
	"procurement/internal/pkg/logger"
	"procurement/internal/pkg/tracing"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type rootOptions struct {
	envFile string
}

// NewRootCommand builds the procurement CLI.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "procurement",
		Short:         "B2B procurement order and quote service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	root.AddCommand(newServeCmd(opts))
	root.AddCommand(newMigrateCmd(opts))
	return root
}

// Execute runs the CLI until the command finishes or SIGINT/SIGTERM arrives.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return err
	}
	return nil
}

func setup(opts *rootOptions) (Config, *zap.Logger, error) {
	cfg, err := LoadConfig(opts.envFile)
	if err != nil {
		return Config{}, nil, err
	}
	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Encoding:    cfg.LogEncoding,
		ServiceName: cfg.ServiceName,
		Environment: cfg.Environment,
	})
	if err != nil {
		return Config{}, nil, fmt.Errorf("build logger: %w", err)
	}
	return cfg, log, nil
}

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "serve",
		Aliases: []string{"start"},
		Short:   "Run the HTTP API and scheduled jobs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := setup(opts)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()
			return serve(cmd.Context(), cfg, log)
		},
	}
}

func serve(ctx context.Context, cfg Config, log *zap.Logger) error {
	provider, err := tracing.Setup(ctx, tracing.Config{
		Enabled:     cfg.TracingEnabled,
		Exporter:    cfg.TracingExporter,
		Endpoint:    cfg.OTLPEndpoint,
		Insecure:    cfg.OTLPInsecure,
		ServiceName: cfg.ServiceName,
		Environment: cfg.Environment,
	}, log)
	if err != nil {
		return fmt.Errorf("tracing: %w", err)
	}

	root, err := NewCompositionRoot(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := root.Close(); err != nil {
			log.Warn("Close adapters", zap.Error(err))
		}
	}()

	e, err := httpapi.NewRouter(ctx, httpapi.NewServer(root.HTTPHandlers()), log, cfg.EchoLevel())
	if err != nil {
		return err
	}

	jobManager := root.JobManager()
	if err := jobManager.StartAll(); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		addr := net.JoinHostPort("0.0.0.0", cfg.HTTPPort)
		log.Info("HTTP server listening", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), cfg.ShutdownTimeout)
		defer cancel()

		jobManager.StopAll()
		return errors.Join(e.Shutdown(shutdownCtx), provider.Shutdown(shutdownCtx))
	})

	return g.Wait()
}

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the PostgreSQL schema",
	}

	var steps int
	var all bool

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(cmd.Context(), opts, func(ctx context.Context, m *migration.Migrator) error {
				if err := m.Up(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
				return nil
			})
		},
	}

	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(cmd.Context(), opts, func(ctx context.Context, m *migration.Migrator) error {
				if err := m.Down(ctx, steps, all); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "migrations rolled back")
				return nil
			})
		},
	}
	downCmd.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")
	downCmd.Flags().BoolVar(&all, "all", false, "roll back every migration")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(cmd.Context(), opts, func(ctx context.Context, m *migration.Migrator) error {
				version, err := m.Version(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "schema version %d\n", version)
				return nil
			})
		},
	}

	cmd.AddCommand(upCmd, downCmd, versionCmd)
	return cmd
}

func withMigrator(ctx context.Context, opts *rootOptions, fn func(context.Context, *migration.Migrator) error) error {
	cfg, log, err := setup(opts)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	db, err := OpenPostgres(cfg)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	m, err := migration.New(sqlDB, log)
	if err != nil {
		return err
	}
	return fn(ctx, m)
}
