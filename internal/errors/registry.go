package errors

// template is one registered error code.
type template struct {
	Category   Category
	Message    string
	Suggestion string
}

// registry maps stable error codes to their templates. Codes are grouped by
// hundreds: E1xx config, E2xx transport, E3xx capture, E4xx CLI usage.
var registry = map[string]template{
	"E101": {
		Category:   CategoryConfig,
		Message:    "no canvaswire.json found",
		Suggestion: "create canvaswire.json next to your program, or rely on the defaults",
	},
	"E102": {
		Category:   CategoryConfig,
		Message:    "canvaswire.json is not valid",
		Suggestion: "check that canvaswire.json is valid JSON",
	},
	"E103": {
		Category:   CategoryConfig,
		Message:    "unknown transport kind",
		Suggestion: "transport.kind must be one of: stream, mailbox, websocket",
	},

	"E201": {
		Category:   CategoryTransport,
		Message:    "cannot open frame channel",
		Suggestion: "check that the channel path exists and is writable",
	},
	"E202": {
		Category:   CategoryTransport,
		Message:    "cannot reach renderer endpoint",
		Suggestion: "check the websocket URL and that the bridge is running",
	},

	"E301": {
		Category:   CategoryCapture,
		Message:    "cannot read capture",
		Suggestion: "check the capture path",
	},
	"E302": {
		Category:   CategoryCapture,
		Message:    "capture is malformed",
		Suggestion: "the file is truncated or not a frame stream; re-record it",
	},

	"E401": {
		Category:   CategoryCLI,
		Message:    "invalid command arguments",
		Suggestion: "run the command with --help for usage",
	},
}
