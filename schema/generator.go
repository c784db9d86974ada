// Package schema provides JSON Schemas for the per-verb result shapes and
// optional validation of resolved plugin results against them.
package schema

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"

	"github.com/chouten-app/chouten-cli/domain/entities"
)

// Generate returns the JSON Schema for the value a verb's entry point is
// expected to resolve to. Schemas are permissive (additional properties
// allowed) since plugins evolve independently of the host.
func Generate(verb entities.Verb) ([]byte, error) {
	r := reflector()
	switch verb {
	case entities.VerbDiscover:
		return wrapArray(r.Reflect(&entities.DiscoverSection{}))
	case entities.VerbSearch:
		return wrapArray(r.Reflect(&entities.SearchResult{}))
	case entities.VerbInfo:
		return marshal(r.Reflect(&entities.InfoData{}))
	case entities.VerbMedia:
		return wrapArray(r.Reflect(&entities.MediaList{}))
	case entities.VerbServers:
		return wrapArray(r.Reflect(&entities.ServerData{}))
	case entities.VerbSources:
		return marshal(r.Reflect(&entities.SourceSet{}))
	}
	return nil, fmt.Errorf("no schema for verb %q", verb)
}

func reflector() *jsonschema.Reflector {
	return &jsonschema.Reflector{
		Anonymous:                 true,
		ExpandedStruct:            true,
		DoNotReference:            true, // inline nested types, no $refs
		AllowAdditionalProperties: true,
	}
}

// wrapArray builds the schema for a verb that resolves to a list.
func wrapArray(elem *jsonschema.Schema) ([]byte, error) {
	elem.Version = ""
	return marshal(&jsonschema.Schema{
		Type:  "array",
		Items: elem,
	})
}

func marshal(s *jsonschema.Schema) ([]byte, error) {
	// The validator autodetects drafts from $schema and does not know
	// 2020-12; dropping the marker keeps it in keyword-hybrid mode.
	s.Version = ""
	out, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return out, nil
}
