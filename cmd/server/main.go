package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"sipkagroup/server/config"
	"sipkagroup/server/internal/api"
	"sipkagroup/server/internal/catalog"
	"sipkagroup/server/internal/contact"
	"sipkagroup/server/internal/processor"
	"sipkagroup/server/internal/queue"
	"sipkagroup/server/internal/scene"
	"sipkagroup/server/internal/scheduler"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "sipka",
		Short:         "Sipka Group property site",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(serveCmd(), sceneCmd(), validateCmd())
	return cmd
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			return serve(cfg, newLogger(cfg))
		},
	}
}

func sceneCmd() *cobra.Command {
	var (
		width     int
		userAgent string
	)

	cmd := &cobra.Command{
		Use:   "scene",
		Short: "Print the city scene built for a viewport as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.Default()
			if err != nil {
				return err
			}

			profile := scene.ResolveProfile(width, userAgent)
			s, err := scene.Build(cat.All(), profile, scene.NewMemoryAllocator())
			if err != nil {
				return fmt.Errorf("failed to build scene: %w", err)
			}
			defer s.Release()

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(api.SceneResponse{
				Viewport: width,
				Mode:     profile.Mode,
				Ambient:  s.Ambient(),
				Scene:    s,
			})
		},
	}

	cmd.Flags().IntVar(&width, "width", 1280, "Viewport width in CSS pixels")
	cmd.Flags().StringVar(&userAgent, "ua", "", "User agent string")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the embedded property catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.Default()
			if err != nil {
				return err
			}

			// Both quality modes must build from the catalog as shipped
			for _, mode := range []scene.Mode{scene.ModeFull, scene.ModeConstrained} {
				alloc := scene.NewMemoryAllocator()
				s, err := scene.Build(cat.All(), scene.ProfileFor(mode), alloc)
				if err != nil {
					return fmt.Errorf("%s scene: %w", mode, err)
				}
				s.Release()
				if alloc.Live() != 0 {
					return fmt.Errorf("%s scene leaked %d resources", mode, alloc.Live())
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "catalog ok: %d properties\n", cat.Len())
			return nil
		},
	}
}

func newLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	if cfg.Logging.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		logger.WithError(err).Warn("Invalid log level, using info")
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

func serve(cfg *config.Config, logger *logrus.Logger) error {
	gin.SetMode(cfg.Server.GinMode)

	cat, err := catalog.Default()
	if err != nil {
		return err
	}
	logger.WithField("properties", cat.Len()).Info("Loaded property catalog")

	// Contact submissions are simulated: queued, held for the delay, then marked sent
	store := contact.NewStore()
	q := queue.NewSubmissionQueue(cfg.Contact.QueueSize, logger)
	proc := processor.NewSubmissionProcessor(store, q, cfg.ContactDelay(), cfg.Contact.Workers, logger)
	proc.Start()
	defer proc.Stop()

	sweeper := scheduler.NewScheduler(store, cfg.Contact.SweepInterval, cfg.Contact.Retention, logger)
	sweeper.Start()
	defer sweeper.Stop()

	handler := api.NewHandler(cfg, cat, contact.NewService(store, q, logger), api.NewMetrics(), logger)
	router, err := api.NewRouter(handler)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Received shutdown signal")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	logger.Info("Server stopped")
	return nil
}
