package server

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/viant/jsonrpc"
)

// The transport owns envelope framing: it decodes raw bytes into a request or
// notification and encodes responses, but never interprets their contents.

// envelope mirrors the wire shape with the id kept raw, so presence and
// explicit null can be told apart and the id can be echoed verbatim.
type envelope struct {
	Jsonrpc string          `json:"jsonrpc"`
	Id      json.RawMessage `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

func (e *envelope) isNotification() bool {
	return len(e.Id) == 0 || bytes.Equal(bytes.TrimSpace(e.Id), []byte("null"))
}

func (e *envelope) request() *jsonrpc.Request {
	var id interface{}
	_ = json.Unmarshal(e.Id, &id)
	return &jsonrpc.Request{Jsonrpc: e.Jsonrpc, Id: id, Method: e.Method, Params: e.Params}
}

// responseEnvelope serializes a response. The id is always present, null for
// unidentifiable requests, and exactly one of result or error is set.
type responseEnvelope struct {
	Jsonrpc string          `json:"jsonrpc"`
	Id      interface{}     `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *jsonrpc.Error  `json:"error,omitempty"`
}

func marshalResponse(response *jsonrpc.Response) ([]byte, error) {
	return json.Marshal(&responseEnvelope{
		Jsonrpc: jsonrpc.Version,
		Id:      response.Id,
		Result:  response.Result,
		Error:   response.Error,
	})
}

func parseErrorResponse(err error) []byte {
	data, _ := marshalResponse(&jsonrpc.Response{
		Error: jsonrpc.NewParsingError("failed to parse request: "+err.Error(), nil),
	})
	return data
}

// handleLine decodes one framed envelope and produces the encoded response,
// or nil for notifications. Malformed input yields a null-id parse error and
// never affects neighbouring envelopes.
func handleLine(ctx context.Context, handler *Handler, line []byte) []byte {
	decoded := envelope{}
	if err := json.Unmarshal(line, &decoded); err != nil {
		return parseErrorResponse(err)
	}
	if decoded.isNotification() {
		handler.OnNotification(ctx, &jsonrpc.Notification{Method: decoded.Method, Params: decoded.Params})
		return nil
	}
	request := decoded.request()
	response := &jsonrpc.Response{}
	handler.Serve(ctx, request, response)
	data, err := marshalResponse(response)
	if err != nil {
		data, _ = marshalResponse(&jsonrpc.Response{
			Id:    request.Id,
			Error: jsonrpc.NewInternalError(err.Error(), nil),
		})
	}
	return data
}
