package commands

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	httpadapter "github.com/randomtoy/cardtable-go/internal/adapters/http"
	"github.com/randomtoy/cardtable-go/internal/app"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve a shared table over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(os.Stdout)

			opts, err := controllerOptions()
			if err != nil {
				return err
			}

			svc := app.NewTableService(store, logger)
			handler, err := httpadapter.NewHandler(cmd.Context(), svc, cfg.LayoutID, logger, opts...)
			if err != nil {
				return err
			}

			e := echo.New()
			e.HideBanner = true
			e.HidePort = true

			e.Use(httpadapter.RequestIDMiddleware())
			e.Use(httpadapter.LoggingMiddleware(logger))
			handler.Register(e)

			// Graceful shutdown.
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			errc := make(chan error, 1)
			go func() {
				logger.Info("starting server", "addr", cfg.HTTPAddr, "layout_id", cfg.LayoutID)
				if err := e.Start(cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errc <- err
				}
			}()

			select {
			case err := <-errc:
				logger.Error("server error", "error", err)
				return err
			case <-ctx.Done():
			}
			logger.Info("shutting down")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := e.Shutdown(shutdownCtx); err != nil {
				logger.Error("shutdown error", "error", err)
				return err
			}
			return nil
		},
	}
}
