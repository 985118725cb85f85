// Package schema publishes JSON Schemas for the slide input and routing
// output documents.
//
// The slide schema is deliberately open: additional properties are allowed
// because decks carry generator-specific fields the router ignores.
package schema

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"

	"github.com/matzehuels/slidelayout/pkg/core/content"
	"github.com/matzehuels/slidelayout/pkg/pipeline"
)

// Version is stamped on every generated schema.
const Version = "1.0.0"

// Names of the published schemas.
const (
	NameSlide  = "slide"
	NameResult = "result"
)

// Names lists the published schemas.
var Names = []string{NameSlide, NameResult}

func reflector() *jsonschema.Reflector {
	return &jsonschema.Reflector{
		AllowAdditionalProperties: true,
		DoNotReference:            false,
		ExpandedStruct:            true,
	}
}

// Slide returns the schema of a single slide.
func Slide() *jsonschema.Schema {
	s := reflector().Reflect(&content.Slide{})
	s.Title = "Slide"
	s.Description = "Semantic content of one slide. Every field is optional and unknown fields are kept."
	s.Version = Version
	s.AdditionalProperties = jsonschema.TrueSchema
	return s
}

// Result returns the schema of one routing result.
func Result() *jsonschema.Schema {
	s := reflector().Reflect(&pipeline.SlideResult{})
	s.Title = "Slide routing result"
	s.Description = "Layout chosen for one slide and the rule that chose it."
	s.Version = Version
	return s
}

// ByName returns the schema registered under name.
func ByName(name string) (*jsonschema.Schema, error) {
	switch name {
	case NameSlide, "":
		return Slide(), nil
	case NameResult:
		return Result(), nil
	default:
		return nil, fmt.Errorf("unknown schema: %q (must be one of: slide, result)", name)
	}
}

// JSON returns the indented JSON encoding of the named schema.
func JSON(name string) ([]byte, error) {
	s, err := ByName(name)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return data, nil
}
