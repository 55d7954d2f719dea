package schema

import "github.com/viant/jsonrpc"

// Error codes outside the JSON-RPC predefined range. BackendError and
// ConnectionError mirror the codes the TouchDesigner endpoint itself uses, so
// a caller sees one consistent numbering regardless of where a fault surfaced.
const (
	// NotInitialized is returned for tools/call before initialize completed.
	NotInitialized = -32002
	// BackendError wraps a structured backend error that carries no code of its own.
	BackendError = -32001
	// ConnectionError covers timeouts and transport failures toward the backend.
	ConnectionError = -32000
)

// NewNotInitialized creates a not-initialized error
func NewNotInitialized() *jsonrpc.Error {
	return jsonrpc.NewError(NotInitialized, "server not initialized: call initialize first", nil)
}

// NewBackendError creates a backend error with the default backend code
func NewBackendError(message string, data interface{}) *jsonrpc.Error {
	return jsonrpc.NewError(BackendError, message, data)
}

// NewConnectionError creates a connection error carrying the transport failure text
func NewConnectionError(err error) *jsonrpc.Error {
	return jsonrpc.NewError(ConnectionError, "connection error: "+err.Error(), nil)
}
