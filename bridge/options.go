package bridge

// Options is the startup configuration, read once; none of it is
// hot-reloadable.
type Options struct {
	Mode    string `short:"m" long:"mode" description:"transport mode" choice:"stdio" choice:"sse" default:"stdio" env:"TDBRIDGE_MODE"`
	URL     string `short:"u" long:"url" description:"TouchDesigner base url" default:"http://127.0.0.1:8053" env:"TDBRIDGE_URL"`
	Listen  string `short:"l" long:"listen" description:"listen address for sse mode" default:"127.0.0.1:5001" env:"TDBRIDGE_LISTEN"`
	LogFile string `long:"log" description:"diagnostic log file" env:"TDBRIDGE_LOG"`
}
