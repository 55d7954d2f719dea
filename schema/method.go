package schema

const (
	MethodInitialize              = "initialize"
	MethodPing                    = "ping"
	MethodToolsList               = "tools/list"
	MethodToolsCall               = "tools/call"
	MethodResourcesList           = "resources/list"
	MethodPromptsList             = "prompts/list"
	MethodGetContext              = "getContext"
	MethodShutdown                = "shutdown"
	MethodNotificationInitialized = "notifications/initialized"
)

// LatestProtocolVersion is the protocol revision this server negotiates. A
// client requesting a different revision is logged but not rejected.
const LatestProtocolVersion = "2024-11-05"
