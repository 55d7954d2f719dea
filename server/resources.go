package server

import (
	"context"

	"github.com/viant/jsonrpc"

	"github.com/tdmcp/tdbridge/schema"
)

// ListResources handles the resources/list method. The bridge advertises no
// resources but must still answer the enumeration.
func (h *Handler) ListResources(ctx context.Context, request *jsonrpc.Request) (*schema.ListResourcesResult, *jsonrpc.Error) {
	return &schema.ListResourcesResult{Resources: []schema.Resource{}}, nil
}
