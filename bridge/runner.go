// Package bridge wires the transports, the dispatcher and the TouchDesigner
// client into a runnable process.
package bridge

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"

	"github.com/tdmcp/tdbridge/internal/logging"
	"github.com/tdmcp/tdbridge/server"
	"github.com/tdmcp/tdbridge/td"
)

// Run parses options and serves the selected transport until the stream
// closes or a termination signal arrives. Signals drain before exit, the
// same way the shutdown method does.
func Run(args []string) error {
	options := &Options{}
	if _, err := flags.ParseArgs(options, args); err != nil {
		return err
	}
	logger, err := logging.New(options.LogFile)
	if err != nil {
		return err
	}

	backend := td.New(options.URL, td.WithLogger(logger))
	srv := server.New(backend, server.WithLogger(logger))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info().Str("mode", options.Mode).Str("backend", options.URL).Msg("bridge starting")
	switch options.Mode {
	case "stdio":
		return srv.Stdio().ListenAndServe(ctx)
	case "sse":
		httpServer := srv.SSE().HTTPServer(options.Listen)
		errors := make(chan error, 1)
		go func() {
			errors <- httpServer.ListenAndServe()
		}()
		select {
		case err := <-errors:
			return err
		case <-ctx.Done():
			drainCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := httpServer.Shutdown(drainCtx); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		}
	default:
		return fmt.Errorf("unsupported mode: %v", options.Mode)
	}
}
