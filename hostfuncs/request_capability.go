package hostfuncs

import (
	"log/slog"

	"github.com/dop251/goja"
)

// RequestCapability installs a global request(url, method) function backed
// by PerformRequest. The call is blocking: the returned value is a
// HostResponse-shaped object, not a promise, and control does not return to
// the script until the transport call completes or degrades.
type RequestCapability struct {
	logger *slog.Logger
	opts   []RequestOption
}

// NewRequestCapability creates the request capability. A nil logger falls
// back to slog.Default().
func NewRequestCapability(logger *slog.Logger, opts ...RequestOption) *RequestCapability {
	if logger == nil {
		logger = slog.Default()
	}
	return &RequestCapability{logger: logger, opts: opts}
}

// Name implements Capability.
func (c *RequestCapability) Name() string {
	return "request"
}

// Install binds the global request function.
func (c *RequestCapability) Install(b Binding) error {
	handler := func(call goja.FunctionCall) goja.Value {
		url := call.Argument(0).String()
		method := call.Argument(1).String()

		resp, err := PerformRequest(b.Context, url, method, c.opts...)
		if err != nil {
			// Host invariant violation (unsupported method). Abort unwinds
			// past script try/catch to the host, which aborts the run.
			Abort(err)
		}
		c.logger.Debug("request completed",
			slog.String("url", url),
			slog.String("method", method),
			slog.Int("status", resp.StatusCode),
		)
		return b.VM.ToValue(resp)
	}
	return b.VM.Set("request", b.Func("request", handler))
}
