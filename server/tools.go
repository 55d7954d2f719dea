package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/viant/jsonrpc"

	"github.com/tdmcp/tdbridge/catalog"
	"github.com/tdmcp/tdbridge/schema"
)

// ListTools handles the tools/list method. The catalog is the single source
// of truth for what the bridge forwards.
func (h *Handler) ListTools(ctx context.Context, request *jsonrpc.Request) (*schema.ListToolsResult, *jsonrpc.Error) {
	return &schema.ListToolsResult{Tools: catalog.Tools()}, nil
}

// CallTool handles the tools/call method. The initialization gate runs before
// anything else so an early invoke fails the same way for every tool name.
func (h *Handler) CallTool(ctx context.Context, request *jsonrpc.Request) (json.RawMessage, *jsonrpc.Error) {
	if !h.session.Initialized() {
		return nil, schema.NewNotInitialized()
	}
	params := schema.CallToolRequestParams{}
	if err := json.Unmarshal(request.Params, &params); err != nil {
		return nil, jsonrpc.NewInvalidParamsError(fmt.Sprintf("failed to parse: %v", err), request.Params)
	}
	if params.Name == "" {
		return nil, jsonrpc.NewInvalidParamsError("missing tool name", request.Params)
	}
	return h.backend.Call(ctx, params.Name, params.Arguments)
}
