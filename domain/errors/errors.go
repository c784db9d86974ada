// Package errors provides the typed error taxonomy for the CLI.
// All error types support matching via errors.As() and errors.Is().
//
// Propagation policy: everything upstream of script execution (arguments,
// file, bootstrap, compile) fails fast with one of these types. Transport
// faults inside the request capability are never represented here - they are
// absorbed into a degraded response so the script's promise chain is never
// broken by the host.
package errors

import (
	stdErrors "errors"
	"fmt"
)

// ErrUnresolved is returned when the invoked entry point's promise is still
// pending after the runtime's job queue has drained. The run is considered
// complete: the caller prints a diagnostic instead of a result and exits 0.
var ErrUnresolved = stdErrors.New("promise did not resolve to a value")

// ArgumentError reports invalid command-line input. No script interaction is
// attempted after one of these. The message is shown to the user verbatim.
type ArgumentError struct {
	Message string
}

func (e *ArgumentError) Error() string {
	return e.Message
}

// NewUsageError creates the generic usage ArgumentError.
func NewUsageError() *ArgumentError {
	return &ArgumentError{Message: "usage: chouten <filename> <option> <url?>"}
}

// NewMissingURLError creates the ArgumentError for a verb that needs a URL.
func NewMissingURLError(option string) *ArgumentError {
	return &ArgumentError{Message: fmt.Sprintf("URL is required for %s option.", option)}
}

// NewUnknownOptionError creates the ArgumentError for an unrecognized verb.
func NewUnknownOptionError() *ArgumentError {
	return &ArgumentError{Message: "No option found."}
}

// FileReadError reports an unreadable plugin file.
type FileReadError struct {
	Path string
	Err  error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("plugin file %s could not be read: %v", e.Path, e.Err)
}

func (e *FileReadError) Unwrap() error {
	return e.Err
}

// BootstrapError reports a failure to initialize the scripting runtime or to
// install a capability into it.
type BootstrapError struct {
	Err error
}

func (e *BootstrapError) Error() string {
	return fmt.Sprintf("runtime bootstrap failed: %v", e.Err)
}

func (e *BootstrapError) Unwrap() error {
	return e.Err
}

// ScriptCompileError reports that the plugin source failed to compile as a
// single script unit.
type ScriptCompileError struct {
	Name string
	Err  error
}

func (e *ScriptCompileError) Error() string {
	return fmt.Sprintf("failed to compile %s: %v", e.Name, e.Err)
}

func (e *ScriptCompileError) Unwrap() error {
	return e.Err
}

// ScriptExecutionError reports that script code threw or rejected.
// Stage names what was running: "load" for top-level code, "instantiate" for
// the plugin constructor, or the invoked method name. For promise rejections
// Err is nil and Detail carries the rejection value's text.
type ScriptExecutionError struct {
	Stage  string
	Detail string
	Err    error
}

func (e *ScriptExecutionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("script failed during %s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("script failed during %s: %s", e.Stage, e.Detail)
}

func (e *ScriptExecutionError) Unwrap() error {
	return e.Err
}

// UnsupportedMethodError reports a script requesting a transport method the
// host does not broker. This is a host invariant violation and is always
// fatal - it is never degraded into a response and the script cannot catch
// it.
type UnsupportedMethodError struct {
	Method string
}

func (e *UnsupportedMethodError) Error() string {
	return fmt.Sprintf("unsupported request method %q: only GET and POST are allowed", e.Method)
}
