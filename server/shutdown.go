package server

import (
	"context"
	"time"

	"github.com/viant/jsonrpc"

	"github.com/tdmcp/tdbridge/schema"
)

// Shutdown handles the shutdown method: the success response goes out first,
// then the process exits after a short grace delay so the transport can
// flush. External termination signals follow the same drain-then-exit path
// in cmd/tdbridge.
func (h *Handler) Shutdown(ctx context.Context, request *jsonrpc.Request) (*schema.ShutdownResult, *jsonrpc.Error) {
	h.logger.Info().Msg("shutdown requested")
	go func() {
		time.Sleep(h.grace)
		h.exit(0)
	}()
	return &schema.ShutdownResult{}, nil
}
