package host

import (
	"github.com/chouten-app/chouten-cli/domain/entities"
	cerrors "github.com/chouten-app/chouten-cli/domain/errors"
)

// Invocation describes one method call against the plugin instance: the
// method name and its bound arguments. It is consumed once by Invoke.
//
// The URL travels as a bound argument through the engine's call-by-name
// primitive - it is never spliced into generated source text, so a URL
// containing quote characters cannot inject script code.
type Invocation struct {
	Method string
	Args   []string
}

// NewInvocation maps a verb (plus its URL when required) to a method call
// description. A missing URL for the five URL-requiring verbs is a terminal
// argument error, reported before any script interaction.
func NewInvocation(verb entities.Verb, url string) (Invocation, error) {
	if !verb.Valid() {
		return Invocation{}, cerrors.NewUnknownOptionError()
	}
	if !verb.RequiresURL() {
		return Invocation{Method: string(verb)}, nil
	}
	if url == "" {
		return Invocation{}, cerrors.NewMissingURLError(verb.Flag())
	}
	return Invocation{Method: string(verb), Args: []string{url}}, nil
}
