// Command b4ugo runs the country catalog API.
//
//	b4ugo serve     apply migrations, then serve HTTP until SIGINT/SIGTERM
//	b4ugo migrate   apply migrations and exit
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/deppfellow/b4ugo/internal/config"
	"github.com/deppfellow/b4ugo/internal/database"
	"github.com/deppfellow/b4ugo/internal/handler"
	"github.com/deppfellow/b4ugo/internal/logger"
	"github.com/deppfellow/b4ugo/internal/repository"
	"github.com/deppfellow/b4ugo/internal/router"
	"github.com/deppfellow/b4ugo/internal/server"
	"github.com/deppfellow/b4ugo/internal/service"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           config.ServiceName,
		Short:         "Country catalog API: traditional dress, famous places, food and languages",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCmd(), newMigrateCmd())
	return root
}

func newServeCmd() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), func(ctx context.Context, cfg *config.Config, log *zerolog.Logger, ls *logger.LoggerService) error {
				if migrate {
					if err := database.Migrate(ctx, log, cfg); err != nil {
						return fmt.Errorf("failed to migrate database: %w", err)
					}
				}
				return serve(ctx, cfg, log, ls)
			})
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", true, "apply pending migrations before serving")
	return cmd
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), func(ctx context.Context, cfg *config.Config, log *zerolog.Logger, _ *logger.LoggerService) error {
				return database.Migrate(ctx, log, cfg)
			})
		},
	}
}

type runFunc func(ctx context.Context, cfg *config.Config, log *zerolog.Logger, ls *logger.LoggerService) error

// run loads configuration, sets up logging and cancels ctx on SIGINT or
// SIGTERM before handing over to fn.
func run(parent context.Context, fn runFunc) error {
	if parent == nil {
		parent = context.Background()
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		// No logger yet: configuration decides how to build it.
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		return err
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	defer loggerService.Shutdown()

	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := fn(ctx, cfg, &log, loggerService); err != nil {
		log.Error().Err(err).Msg("exiting")
		return err
	}
	return nil
}

func serve(ctx context.Context, cfg *config.Config, log *zerolog.Logger, ls *logger.LoggerService) error {
	srv, err := server.New(ctx, cfg, log, ls)
	if err != nil {
		return err
	}

	repos := repository.NewRepositories(srv)

	services, err := service.NewServices(srv, repos)
	if err != nil {
		return fmt.Errorf("failed to create services: %w", err)
	}

	handlers := handler.NewHandlers(srv, services)
	srv.SetupHTTPServer(router.NewRouter(srv, handlers))

	g, gctx := errgroup.WithContext(ctx)

	g.Go(srv.Start)

	g.Go(func() error {
		<-gctx.Done()

		log.Info().Msg("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	log.Info().Msg("server exited properly")
	return nil
}
