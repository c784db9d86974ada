// Package params builds and validates the CLI intent from positional
// arguments.
package params

import (
	stdErrors "errors"

	"github.com/go-playground/validator/v10"

	"github.com/chouten-app/chouten-cli/domain/entities"
	cerrors "github.com/chouten-app/chouten-cli/domain/errors"
)

// validate is a package-level singleton; constructing a validator per call
// is expensive.
var validate = validator.New()

// Params is the immutable CLI intent: which plugin file to load, which verb
// to invoke, and the URL argument for the verbs that take one.
type Params struct {
	Filename string        `validate:"required"`
	Verb     entities.Verb `validate:"required,oneof=discover search info media servers sources"`
	URL      string        `validate:"required_unless=Verb discover"`
}

// Parse builds Params from the positional arguments (program name excluded):
//
//	<filename> <option> [<url>]
//
// Every failure is an *errors.ArgumentError; no script interaction happens
// after one.
func Parse(args []string) (*Params, error) {
	if len(args) < 2 {
		return nil, cerrors.NewUsageError()
	}
	if len(args) > 3 {
		return nil, cerrors.NewUsageError()
	}

	verb, ok := entities.ParseVerb(args[1])
	if !ok {
		return nil, cerrors.NewUnknownOptionError()
	}

	p := &Params{
		Filename: args[0],
		Verb:     verb,
	}
	if len(args) == 3 {
		p.URL = args[2]
	}

	if err := p.check(); err != nil {
		return nil, err
	}
	return p, nil
}

// check runs struct validation and maps field failures back to the user-facing
// argument errors.
func (p *Params) check() error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !stdErrors.As(err, &fieldErrs) {
		return cerrors.NewUsageError()
	}

	for _, fe := range fieldErrs {
		switch fe.Field() {
		case "URL":
			return cerrors.NewMissingURLError(p.Verb.Flag())
		case "Verb":
			return cerrors.NewUnknownOptionError()
		}
	}
	return cerrors.NewUsageError()
}
