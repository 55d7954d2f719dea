package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/viant/jsonrpc"

	"github.com/tdmcp/tdbridge/schema"
)

// Handler dispatches one JSON-RPC request at a time. Handlers may run
// concurrently; responses are matched by the caller-assigned id, so
// out-of-order completion is expected.
type Handler struct {
	*Server
}

// Serve handles an incoming JSON-RPC request. Every request with an id
// produces exactly one response on the same transport instance.
func (h *Handler) Serve(ctx context.Context, request *jsonrpc.Request, response *jsonrpc.Response) {
	response.Jsonrpc = jsonrpc.Version
	response.Id = request.Id
	if request.Jsonrpc != jsonrpc.Version {
		response.Error = jsonrpc.NewInvalidRequest(
			fmt.Sprintf("unsupported jsonrpc version: %q", request.Jsonrpc), nil)
		return
	}
	h.logger.Debug().Str("method", request.Method).Msg("dispatching request")

	switch request.Method {
	case schema.MethodInitialize:
		result, rpcErr := h.Initialize(ctx, request)
		h.setResponse(response, result, rpcErr)
	case schema.MethodPing:
		h.setResponse(response, &schema.PingResult{}, nil)
	case schema.MethodToolsList:
		result, rpcErr := h.ListTools(ctx, request)
		h.setResponse(response, result, rpcErr)
	case schema.MethodToolsCall:
		result, rpcErr := h.CallTool(ctx, request)
		h.setResponse(response, result, rpcErr)
	case schema.MethodResourcesList:
		result, rpcErr := h.ListResources(ctx, request)
		h.setResponse(response, result, rpcErr)
	case schema.MethodPromptsList:
		result, rpcErr := h.ListPrompts(ctx, request)
		h.setResponse(response, result, rpcErr)
	case schema.MethodGetContext:
		result, rpcErr := h.GetContext(ctx, request)
		h.setResponse(response, result, rpcErr)
	case schema.MethodShutdown:
		result, rpcErr := h.Shutdown(ctx, request)
		h.setResponse(response, result, rpcErr)
	default:
		response.Error = jsonrpc.NewMethodNotFound(
			fmt.Sprintf("method: %v not found", request.Method), nil)
	}
}

func (h *Handler) setResponse(response *jsonrpc.Response, result interface{}, rpcError *jsonrpc.Error) {
	if rpcError != nil {
		response.Error = rpcError
		return
	}
	data, err := json.Marshal(result)
	if err != nil {
		response.Error = jsonrpc.NewInternalError(err.Error(), nil)
		return
	}
	response.Result = data
}

// OnNotification handles fire-and-forget notifications; they never produce a
// response.
func (h *Handler) OnNotification(ctx context.Context, notification *jsonrpc.Notification) {
	switch notification.Method {
	case schema.MethodNotificationInitialized:
		h.logger.Info().Msg("client confirmed initialization")
	default:
		h.logger.Debug().Str("method", notification.Method).Msg("ignoring notification")
	}
}
