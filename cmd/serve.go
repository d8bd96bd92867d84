package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"orarctl/pkg/api"
	"orarctl/pkg/metrics"
	"orarctl/pkg/scraper"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the timetables as a JSON API",
	Long:  `Run the HTTP API until SIGINT or SIGTERM, then shut down gracefully.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		defer logger.Sync()

		if port, _ := cmd.Flags().GetString("port"); port != "" {
			cfg.Server.Port = port
		}
		if cfg.IsProduction() {
			gin.SetMode(gin.ReleaseMode)
		}

		opts, err := api.OptionsFromConfig(cfg)
		if err != nil {
			return err
		}

		m := metrics.New()
		client := newClient(cfg, logger, scraper.WithObserver(m))
		router, err := api.NewRouter(client, m, logger, opts)
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr:    "0.0.0.0:" + cfg.Server.Port,
			Handler: router,
		}

		errCh := make(chan error, 1)
		logger.Info("starting server", zap.String("addr", srv.Addr), zap.String("source", cfg.Source.BaseURL))
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		select {
		case err := <-errCh:
			return err
		case <-quit:
		}
		logger.Info("server is shutting down")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			return err
		}

		logger.Info("server stopped gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "", "Port to listen on (overrides server.port)")
}
