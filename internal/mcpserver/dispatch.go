package mcpserver

// Method is the closed set of methods the server understands. Every request
// maps to exactly one value; anything unrecognised is MethodUnknown.
type Method int

const (
	MethodUnknown Method = iota
	MethodInitialize
	MethodInitialized
	MethodToolsList
	MethodToolsCall
	MethodPing
)

var methodNames = map[string]Method{
	"initialize":                MethodInitialize,
	"initialized":               MethodInitialized,
	"notifications/initialized": MethodInitialized,
	"tools/list":                MethodToolsList,
	"tools/call":                MethodToolsCall,
	"ping":                      MethodPing,
}

// ParseMethod maps a wire method name to its Method.
func ParseMethod(name string) Method {
	if m, ok := methodNames[name]; ok {
		return m
	}
	return MethodUnknown
}

func (m Method) String() string {
	switch m {
	case MethodInitialize:
		return "initialize"
	case MethodInitialized:
		return "initialized"
	case MethodToolsList:
		return "tools/list"
	case MethodToolsCall:
		return "tools/call"
	case MethodPing:
		return "ping"
	case MethodUnknown:
		return "unknown"
	}
	return "unknown"
}
