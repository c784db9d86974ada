package host

import (
	"context"
	stdErrors "errors"
	"log/slog"

	"github.com/dop251/goja"

	cerrors "github.com/chouten-app/chouten-cli/domain/errors"
)

// Invoke calls the invocation's method on the plugin instance and resolves
// its promise-like result to a JSON string.
//
// The engine drains its promise job queue when the call returns, so entry
// points whose chains settle without host-driven pumping are observed as
// settled here. A promise still pending at that point yields
// errors.ErrUnresolved: the run completed, but there is no value to print.
func (s *Session) Invoke(ctx context.Context, inv Invocation) (out string, err error) {
	if s.plugin == nil {
		return "", &cerrors.ScriptExecutionError{Stage: inv.Method, Detail: "no plugin loaded"}
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", ctxErr
	}
	defer recoverAbort(&err)

	fn, ok := goja.AssertFunction(s.plugin.Get(inv.Method))
	if !ok {
		return "", &cerrors.ScriptExecutionError{Stage: inv.Method, Detail: "plugin does not implement this method"}
	}

	args := make([]goja.Value, len(inv.Args))
	for i, a := range inv.Args {
		args[i] = s.vm.ToValue(a)
	}

	s.logger.Debug("invoking plugin method", slog.String("method", inv.Method))
	v, callErr := fn(s.plugin, args...)
	if callErr != nil {
		return "", &cerrors.ScriptExecutionError{Stage: inv.Method, Err: callErr}
	}

	return s.resolve(inv.Method, v)
}

// resolve extracts the settled value of a promise-like completion value and
// serializes it.
func (s *Session) resolve(method string, v goja.Value) (string, error) {
	if v == nil {
		return "", cerrors.ErrUnresolved
	}

	if p, ok := v.Export().(*goja.Promise); ok {
		switch p.State() {
		case goja.PromiseStateFulfilled:
			v = p.Result()
		case goja.PromiseStateRejected:
			return "", &cerrors.ScriptExecutionError{Stage: method, Detail: rejectionText(p.Result())}
		default:
			// Pending: the entry point needs host-driven pumping this
			// synchronous bridge does not provide.
			return "", cerrors.ErrUnresolved
		}
	}
	// Plain values count as immediately resolved.

	return s.stringify(v)
}

// stringify serializes a value with the runtime's own JSON.stringify so
// script-defined toJSON hooks are honored.
func (s *Session) stringify(v goja.Value) (string, error) {
	jsonObj := s.vm.Get("JSON").ToObject(s.vm)
	stringify, ok := goja.AssertFunction(jsonObj.Get("stringify"))
	if !ok {
		return "", &cerrors.BootstrapError{Err: stdErrors.New("JSON.stringify is not callable")}
	}

	out, err := stringify(jsonObj, v)
	if err != nil {
		return "", &cerrors.ScriptExecutionError{Stage: "serialize", Err: err}
	}
	if goja.IsUndefined(out) {
		return "", cerrors.ErrUnresolved
	}
	return out.String(), nil
}

func rejectionText(v goja.Value) string {
	if v == nil {
		return "promise rejected"
	}
	return "promise rejected: " + v.String()
}
