package host

import (
	"log/slog"

	"github.com/dop251/goja"

	cerrors "github.com/chouten-app/chouten-cli/domain/errors"
	"github.com/chouten-app/chouten-cli/hostfuncs"
)

// instantiateExpr constructs the single plugin instance from the script's
// default export. The instance is also bound to the well-known global
// identifier "instance" so plugin code can reach it.
const instantiateExpr = "new source.default()"

// LoadPlugin compiles the plugin source as a single script unit, runs its
// top-level code, and instantiates the default export. Capabilities are
// already installed, so top-level code may use them at load time. Any
// failure is fatal to the run; there is no partial-success state.
func (s *Session) LoadPlugin(name string, source []byte) (err error) {
	defer recoverAbort(&err)

	prog, compileErr := goja.Compile(name, string(source), false)
	if compileErr != nil {
		return &cerrors.ScriptCompileError{Name: name, Err: compileErr}
	}

	if _, runErr := s.vm.RunProgram(prog); runErr != nil {
		return &cerrors.ScriptExecutionError{Stage: "load", Err: runErr}
	}

	v, instErr := s.vm.RunString(instantiateExpr)
	if instErr != nil {
		return &cerrors.ScriptExecutionError{Stage: "instantiate", Err: instErr}
	}
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return &cerrors.ScriptExecutionError{Stage: "instantiate", Detail: "source.default did not construct an object"}
	}

	obj := v.ToObject(s.vm)
	if bindErr := s.vm.Set("instance", obj); bindErr != nil {
		return &cerrors.ScriptExecutionError{Stage: "instantiate", Err: bindErr}
	}
	s.plugin = obj

	s.logger.Debug("plugin instantiated", slog.String("name", name))
	return nil
}

// recoverAbort converts a capability abort (e.g. an unsupported transport
// method) into the returned error. Anything else keeps unwinding.
func recoverAbort(err *error) {
	r := recover()
	if r == nil {
		return
	}
	if cause, ok := hostfuncs.AbortCause(r); ok {
		*err = cause
		return
	}
	panic(r)
}
