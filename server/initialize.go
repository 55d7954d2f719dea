package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/viant/jsonrpc"

	"github.com/tdmcp/tdbridge/schema"
)

// Initialize handles the initialize method. The backend status probe is
// bounded and advisory: the session is marked initialized whether or not
// TouchDesigner is reachable yet, so the assistant can start first and the
// backend can catch up.
func (h *Handler) Initialize(ctx context.Context, request *jsonrpc.Request) (*schema.InitializeResult, *jsonrpc.Error) {
	params := schema.InitializeRequestParams{}
	if len(request.Params) > 0 {
		if err := json.Unmarshal(request.Params, &params); err != nil {
			return nil, jsonrpc.NewInvalidParamsError(fmt.Sprintf("failed to parse: %v", err), request.Params)
		}
	}

	probeCtx, cancel := context.WithTimeout(ctx, h.probeTimeout)
	defer cancel()
	if status, err := h.backend.Status(probeCtx); err != nil {
		h.logger.Warn().Err(err).Msg("backend status probe failed, continuing without it")
	} else {
		h.logger.Info().Str("status", status.Status).Str("version", status.Version).
			Bool("touchdesigner", status.TouchDesigner).Msg("backend reachable")
	}
	h.session.MarkInitialized()

	if params.ProtocolVersion != "" && params.ProtocolVersion != schema.LatestProtocolVersion {
		h.logger.Warn().Str("requested", params.ProtocolVersion).
			Str("supported", schema.LatestProtocolVersion).Msg("protocol version mismatch")
	}
	return &schema.InitializeResult{
		ProtocolVersion: schema.LatestProtocolVersion,
		Capabilities: schema.ServerCapabilities{
			Tools:     &schema.ToolsCapability{},
			Resources: &schema.ResourcesCapability{},
			Prompts:   &schema.PromptsCapability{},
		},
		ServerInfo: h.info,
	}, nil
}
