package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/viant/jsonrpc"

	"github.com/tdmcp/tdbridge/schema"
)

// GetContext handles the getContext method by forwarding the query to the
// backend's context endpoint.
func (h *Handler) GetContext(ctx context.Context, request *jsonrpc.Request) (*schema.ContextResult, *jsonrpc.Error) {
	params := schema.GetContextParams{}
	if len(request.Params) > 0 {
		if err := json.Unmarshal(request.Params, &params); err != nil {
			return nil, jsonrpc.NewInvalidParamsError(fmt.Sprintf("failed to parse: %v", err), request.Params)
		}
	}
	return h.backend.Context(ctx, &params)
}
