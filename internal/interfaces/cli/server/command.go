package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	httpRouter "agencydesk/internal/interfaces/http"
	"agencydesk/internal/interfaces/cli/bootstrap"
)

var (
	flags     bootstrap.Flags
	ephemeral bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the agencydesk HTTP API with the configured storage and notification sinks.`,
		RunE:  run,
	}

	flags.Register(cmd)
	cmd.Flags().BoolVar(&ephemeral, "ephemeral", false, "Keep all data in memory and discard it on exit")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		flags.Env = envVar
	}

	cfg, log, err := bootstrap.Init(flags)
	if err != nil {
		return err
	}
	if ephemeral {
		cfg.Storage.Driver = httpRouter.StorageMemory
	}

	log.Infow("starting server",
		"environment", flags.Env,
		"storage", cfg.Storage.Driver,
		"blob", cfg.Blob.Driver)

	gin.SetMode(bootstrap.GinMode(flags.Env))
	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	container, err := httpRouter.NewContainer(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	container.Start()

	// WriteTimeout stays unset: notification streams are long-lived responses.
	srv := &http.Server{
		Addr:              cfg.Server.GetAddr(),
		Handler:           container.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Infow("server starting", "address", srv.Addr, "mode", gin.Mode())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		container.Shutdown()
		container.Close()
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Infow("shutting down server...")

	container.Shutdown()
	defer container.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
		return err
	}

	log.Infow("server exited gracefully")
	return nil
}
