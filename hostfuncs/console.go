package hostfuncs

import (
	"log/slog"

	"github.com/dop251/goja"
)

// ConsoleCapability installs a console.log-shaped logging capability.
// Script values are coerced to text and written to the host's diagnostic
// stream; by construction the capability cannot fail.
type ConsoleCapability struct {
	logger *slog.Logger
}

// NewConsoleCapability creates the console capability. A nil logger falls
// back to slog.Default().
func NewConsoleCapability(logger *slog.Logger) *ConsoleCapability {
	if logger == nil {
		logger = slog.Default()
	}
	return &ConsoleCapability{logger: logger}
}

// Name implements Capability.
func (c *ConsoleCapability) Name() string {
	return "console"
}

// Install binds a global console object exposing log.
func (c *ConsoleCapability) Install(b Binding) error {
	obj := b.VM.NewObject()
	if err := obj.Set("log", b.Func("console.log", c.log)); err != nil {
		return err
	}
	return b.VM.Set("console", obj)
}

// log records the coerced value as an attribute, never as the record
// message, so plugin output cannot masquerade as a host log line.
func (c *ConsoleCapability) log(call goja.FunctionCall) goja.Value {
	c.logger.Info("console.log",
		slog.String("message", call.Argument(0).String()),
		slog.String("source", "plugin"),
	)
	return goja.Undefined()
}
