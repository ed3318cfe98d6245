package serve

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/lucas/ecommerce/app"
	"github.com/lucas/ecommerce/cmd/internal/setup"
	"github.com/lucas/ecommerce/database"
	"github.com/lucas/ecommerce/models"
)

const (
	migrateFlag = "migrate"
	seedFlag    = "seed"
)

func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Start the HTTP API.

Examples:
  ecommerce serve                    # start server only
  ecommerce serve --migrate          # apply migrations first
  ecommerce serve --migrate --seed   # apply migrations and load sample data`,
		RunE: run,
	}
	cmd.Flags().Bool(migrateFlag, false, "Run database migrations on startup")
	cmd.Flags().Bool(seedFlag, false, "Seed the database with sample data on startup")
	return cmd
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup.Load()
	if err != nil {
		return err
	}
	logger.Info("Starting catalog service...")

	if migrate, _ := cmd.Flags().GetBool(migrateFlag); migrate {
		if err := database.Migrate(cfg.DatabaseURL, database.Up, logger); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if seed, _ := cmd.Flags().GetBool(seedFlag); seed {
		if err := database.SeedData(ctx, db, logger); err != nil {
			return err
		}
	}

	// Introspection errors are fatal.
	policy, err := app.NewPolicy(db.NamingStrategy, cfg.DisabledMethods)
	if err != nil {
		logger.WithError(err).Fatal("Failed to configure resource exposure")
	}

	products, err := models.NewProductsRepository(db)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize products repository")
	}
	categories, err := models.NewCategoriesRepository(db)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize categories repository")
	}
	logger.Info("Repositories initialized.")

	router, err := app.NewRouter(cfg, policy, app.Repositories{
		Products:   products,
		Categories: categories,
	}, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to build router")
	}

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Infof("Starting server on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("Server stopped")
	return nil
}
