// Package td implements the HTTP client for the TouchDesigner command
// endpoint. Each tool invocation becomes exactly one outbound call; the
// backend itself serializes commands onto its main thread, so concurrent
// calls from here are safe.
package td

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/viant/jsonrpc"

	"github.com/tdmcp/tdbridge/schema"
)

// Client talks to a running TouchDesigner MCP endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeoutFor func(name string) time.Duration
	logger     zerolog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTimeoutFor overrides the per-tool timeout lookup.
func WithTimeoutFor(timeoutFor func(name string) time.Duration) Option {
	return func(c *Client) {
		c.timeoutFor = timeoutFor
	}
}

// New creates a client for the given base URL, e.g. http://127.0.0.1:8053.
func New(baseURL string, options ...Option) *Client {
	ret := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
		timeoutFor: TimeoutFor,
		logger:     zerolog.Nop(),
	}
	for _, option := range options {
		option(ret)
	}
	return ret
}

// Status is the payload of GET /api/status, used as the connectivity probe.
type Status struct {
	Status        string `json:"status"`
	TouchDesigner bool   `json:"touchdesigner"`
	Version       string `json:"version"`
}

// Status probes the backend. The caller bounds the wait via ctx.
func (c *Client) Status(ctx context.Context) (*Status, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/status", nil)
	if err != nil {
		return nil, err
	}
	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status probe returned %v", response.StatusCode)
	}
	status := &Status{}
	if err := json.NewDecoder(response.Body).Decode(status); err != nil {
		return nil, fmt.Errorf("failed to decode status: %w", err)
	}
	return status, nil
}

type commandEnvelope struct {
	Method string                 `json:"method"`
	Params map[string]interface{} `json:"params"`
}

type backendError struct {
	Code    int             `json:"code,omitempty"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

type backendResponse struct {
	Result json.RawMessage `json:"result,omitempty"`
	Error  *backendError   `json:"error,omitempty"`
}

// rpcError translates a backend error into the RPC domain: a structured code
// passes through verbatim, a code-less error gets the default backend code.
func (e *backendError) rpcError() *jsonrpc.Error {
	if e.Code == 0 {
		return schema.NewBackendError(e.Message, e.Data)
	}
	return jsonrpc.NewError(e.Code, e.Message, e.Data)
}

// Call forwards one tool invocation to POST /mcp under the tool's timeout
// budget. Structured backend errors pass through with their original code;
// transport failures and timeouts surface as connection errors. Successful
// payloads are normalized so the caller always sees a content envelope.
func (c *Client) Call(ctx context.Context, name string, arguments map[string]interface{}) (json.RawMessage, *jsonrpc.Error) {
	if arguments == nil {
		arguments = map[string]interface{}{}
	}
	timeout := c.timeoutFor(name)
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	started := time.Now()
	body, rpcErr := c.post(ctx, "/mcp", &commandEnvelope{Method: name, Params: arguments})
	if rpcErr != nil {
		c.logger.Warn().Str("tool", name).Dur("elapsed", time.Since(started)).
			Str("error", rpcErr.Message).Msg("tool call failed")
		return nil, rpcErr
	}
	response := backendResponse{}
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, schema.NewConnectionError(fmt.Errorf("malformed backend response: %w", err))
	}
	if response.Error != nil {
		c.logger.Warn().Str("tool", name).Int("code", response.Error.Code).Msg("backend reported error")
		return nil, response.Error.rpcError()
	}
	c.logger.Debug().Str("tool", name).Dur("elapsed", time.Since(started)).Msg("tool call completed")
	return normalizeResult(response.Result), nil
}

// Context forwards a getContext query to POST /context.
func (c *Client) Context(ctx context.Context, params *schema.GetContextParams) (*schema.ContextResult, *jsonrpc.Error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()

	body, rpcErr := c.post(ctx, "/context", params)
	if rpcErr != nil {
		return nil, rpcErr
	}
	envelope := struct {
		ContextItems []schema.ContextItem `json:"contextItems"`
		Error        *backendError        `json:"error,omitempty"`
	}{}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, schema.NewConnectionError(fmt.Errorf("malformed backend response: %w", err))
	}
	if envelope.Error != nil {
		return nil, envelope.Error.rpcError()
	}
	if envelope.ContextItems == nil {
		envelope.ContextItems = []schema.ContextItem{}
	}
	return &schema.ContextResult{ContextItems: envelope.ContextItems}, nil
}

// post issues one JSON POST and returns the raw body. The backend returns
// structured error bodies with non-2xx statuses, so the body is read either
// way; only transport-level failures become connection errors here.
func (c *Client) post(ctx context.Context, path string, payload interface{}) (json.RawMessage, *jsonrpc.Error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, jsonrpc.NewInternalError(err.Error(), nil)
	}
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, schema.NewConnectionError(err)
	}
	request.Header.Set("Content-Type", "application/json")
	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, schema.NewConnectionError(err)
	}
	defer response.Body.Close()
	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, schema.NewConnectionError(err)
	}
	return body, nil
}

// normalizeResult guarantees the uniform caller-facing result shape: a
// payload that already carries a content field passes through untouched,
// anything else is wrapped as a single text item holding its JSON form.
func normalizeResult(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 {
		raw = json.RawMessage(`null`)
	}
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err == nil {
		if _, ok := probe["content"]; ok {
			return raw
		}
	}
	wrapped, err := json.Marshal(schema.NewTextResult(string(raw)))
	if err != nil {
		// unreachable for a struct of strings, but keep the invariant
		return json.RawMessage(`{"content":[]}`)
	}
	return wrapped
}
