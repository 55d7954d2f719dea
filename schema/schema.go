package schema

import "encoding/json"

// Implementation identifies an MCP implementation by name and version.
type Implementation struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// ServerCapabilities declares the capability groups this server answers for.
type ServerCapabilities struct {
	Tools     *ToolsCapability     `json:"tools,omitempty"`
	Resources *ResourcesCapability `json:"resources,omitempty"`
	Prompts   *PromptsCapability   `json:"prompts,omitempty"`
}

type ToolsCapability struct{}

type ResourcesCapability struct{}

type PromptsCapability struct{}

// InitializeRequestParams holds the client side of the initialize handshake.
type InitializeRequestParams struct {
	ProtocolVersion string          `json:"protocolVersion,omitempty"`
	ClientInfo      *Implementation `json:"clientInfo,omitempty"`
	Capabilities    json.RawMessage `json:"capabilities,omitempty"`
}

// InitializeResult is the server side of the initialize handshake.
type InitializeResult struct {
	ProtocolVersion string             `json:"protocolVersion"`
	Capabilities    ServerCapabilities `json:"capabilities"`
	ServerInfo      Implementation     `json:"serverInfo"`
}

// PingResult is intentionally empty.
type PingResult struct{}

// ShutdownResult is intentionally empty; the response is sent before the
// process drains and exits.
type ShutdownResult struct{}

// Resource describes an addressable resource. The bridge advertises none,
// but resources/list must still answer with an empty collection.
type Resource struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MimeType    string `json:"mimeType,omitempty"`
}

// ListResourcesResult is the result of resources/list.
type ListResourcesResult struct {
	Resources []Resource `json:"resources"`
}

// Prompt describes a reusable prompt template. The bridge advertises none.
type Prompt struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ListPromptsResult is the result of prompts/list.
type ListPromptsResult struct {
	Prompts []Prompt `json:"prompts"`
}

// GetContextParams is the getContext request payload forwarded to the backend.
type GetContextParams struct {
	Query string `json:"query"`
	User  string `json:"user,omitempty"`
}

// ContextItem is one unit of project context returned by the backend.
type ContextItem struct {
	URI      string                 `json:"uri"`
	Content  string                 `json:"content"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// ContextResult is the result of getContext.
type ContextResult struct {
	ContextItems []ContextItem `json:"contextItems"`
}
