package schema

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	"github.com/chouten-app/chouten-cli/domain/entities"
)

// Validate checks a resolved result document against the verb's schema.
// The document must be the JSON text the invocation engine produced.
func Validate(verb entities.Verb, document []byte) error {
	schemaBytes, err := Generate(verb)
	if err != nil {
		return err
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaBytes),
		gojsonschema.NewBytesLoader(document),
	)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	if result.Valid() {
		return nil
	}

	msg := fmt.Sprintf("result does not match the %s schema:", verb)
	for _, e := range result.Errors() {
		msg += fmt.Sprintf("\n- %s: %s", e.Field(), e.Description())
	}
	return fmt.Errorf("%s", msg)
}
