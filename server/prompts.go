package server

import (
	"context"

	"github.com/viant/jsonrpc"

	"github.com/tdmcp/tdbridge/schema"
)

// ListPrompts handles the prompts/list method.
func (h *Handler) ListPrompts(ctx context.Context, request *jsonrpc.Request) (*schema.ListPromptsResult, *jsonrpc.Error) {
	return &schema.ListPromptsResult{Prompts: []schema.Prompt{}}, nil
}
