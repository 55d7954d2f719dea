package td

import "time"

// DefaultTimeout bounds any tool call whose name is absent from the table,
// so tools added to the catalog keep working before this table learns them.
const DefaultTimeout = 10 * time.Second

// toolTimeouts is hand-maintained alongside the tool catalog. create waits on
// TouchDesigner's cook cycle, execute_python runs arbitrary user code.
var toolTimeouts = map[string]time.Duration{
	"create":          15 * time.Second,
	"delete":          10 * time.Second,
	"set":             10 * time.Second,
	"get":             10 * time.Second,
	"list":            10 * time.Second,
	"execute_python":  30 * time.Second,
	"list_parameters": 10 * time.Second,
}

// TimeoutFor returns the call budget for a tool name.
func TimeoutFor(name string) time.Duration {
	if timeout, ok := toolTimeouts[name]; ok {
		return timeout
	}
	return DefaultTimeout
}

// TimeoutTableNames returns the tool names the timeout table knows about.
func TimeoutTableNames() []string {
	var names []string
	for name := range toolTimeouts {
		names = append(names, name)
	}
	return names
}
