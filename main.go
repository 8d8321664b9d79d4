package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go-attackboard/config"
	"go-attackboard/db"
	"go-attackboard/loader"
	"go-attackboard/logging"
	"go-attackboard/metrics"
	"go-attackboard/processor"
	"go-attackboard/render"
	"go-attackboard/routes"
	"go-attackboard/summarization"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:   "attackboard",
		Short: "Casualty dashboard over Al-Shabaab attack records",
		// serve is the default action
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ./"+config.DefaultPath+" if present)")

	root.AddCommand(newServeCmd(), newReportCmd(), newSeedCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads config and builds the process logger.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(cfg.Attackboard.Logging.Level, cfg.Attackboard.Logging.Development)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Load the dataset once and serve the dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer db.CloseFirestore()

	a := cfg.Attackboard
	gin.SetMode(a.Server.Mode)

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	dashboard, err := processor.LoadDashboard(ctx, a, logger, m)
	if err != nil {
		logger.Error("Failed to load dataset", zap.Error(err))
		return err
	}

	briefer := summarization.NewBriefer(a.Briefing, logger)
	if briefer == nil {
		logger.Info("Briefing disabled, OPENAI_API_KEY not set or briefing.disabled is true")
	}

	srv := &http.Server{
		Addr:        a.Server.Addr,
		Handler:     routes.SetupRouter(dashboard, briefer, m, logger),
		ReadTimeout: a.Server.ReadTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Server starting", zap.String("addr", a.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen on %s: %w", a.Server.Addr, err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
		return err
	}
	return nil
}

func newReportCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the dashboard summary, breakdowns and severity counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := render.ParseFormat(format)
			if err != nil {
				return err
			}

			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			defer logger.Sync()
			defer db.CloseFirestore()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			dashboard, err := processor.LoadDashboard(ctx, cfg.Attackboard, logger, nil)
			if err != nil {
				return err
			}
			return render.New(f).Render(cmd.OutOrStdout(), dashboard)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(render.FormatTable), "output format: table or json")
	return cmd
}

func newSeedCmd() *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Copy attack records from a CSV into the Firestore collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			defer logger.Sync()

			src := cfg.Attackboard.Source
			if from == "" {
				from = src.Path
			}
			if from == "" {
				from = config.DefaultSource
			}
			if src.FirebaseCredentials == "" {
				return errors.New("FIREBASE_CREDENTIALS must be set to seed Firestore")
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			records, stats, err := loader.LoadCSV(ctx, from, src.Timeout, logger)
			if err != nil {
				return err
			}

			client, err := db.InitFirestore(ctx, src.FirebaseCredentials)
			if err != nil {
				return fmt.Errorf("connecting to Firestore: %w", err)
			}
			defer db.CloseFirestore()

			written, err := db.PutAttackRecords(ctx, client, src.Collection, records)
			if err != nil {
				return fmt.Errorf("seeding %s: %w", src.Collection, err)
			}
			logger.Info("Seeded attack records",
				zap.String("from", from),
				zap.String("collection", src.Collection),
				zap.Int("rows", stats.Rows),
				zap.Int("written", written))
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d records to %s\n", written, src.Collection)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "CSV path or URL (default: source.path)")
	return cmd
}
