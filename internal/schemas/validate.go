// Package schemas checks configuration documents against their JSON Schemas.
package schemas

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	bundled "github.com/jonathan/internship-finder/schemas"
)

// ValidationError lists every schema violation found in one document.
type ValidationError struct {
	Document string
	Errors   []FieldError
}

// FieldError is a single violation. Field is a dotted path, or "(root)".
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s failed validation:\n", ve.Document)
	for i, fe := range ve.Errors {
		fmt.Fprintf(&sb, "  %d. %s: %s\n", i+1, fe.Field, fe.Message)
	}
	return sb.String()
}

// SchemaLoadError means the schema itself could not be compiled.
type SchemaLoadError struct {
	Schema string
	Cause  error
}

func (e *SchemaLoadError) Error() string {
	return fmt.Sprintf("failed to load schema %s: %v", e.Schema, e.Cause)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

var (
	configSchemaOnce sync.Once
	configSchema     *gojsonschema.Schema
	configSchemaErr  error
)

// ValidateConfig checks raw config file bytes against the bundled config schema.
func ValidateConfig(doc []byte) error {
	configSchemaOnce.Do(func() {
		configSchema, configSchemaErr = compile("config.schema.json", bundled.ConfigSchema)
	})
	if configSchemaErr != nil {
		return configSchemaErr
	}
	return check("config", configSchema, doc)
}

func compile(name, schema string) (*gojsonschema.Schema, error) {
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schema))
	if err != nil {
		return nil, &SchemaLoadError{Schema: name, Cause: err}
	}
	return compiled, nil
}

func check(name string, schema *gojsonschema.Schema, doc []byte) error {
	if !json.Valid(doc) {
		return &ValidationError{
			Document: name,
			Errors:   []FieldError{{Field: "(root)", Message: "document is not valid JSON"}},
		}
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return &ValidationError{
			Document: name,
			Errors:   []FieldError{{Field: "(root)", Message: err.Error()}},
		}
	}
	if result.Valid() {
		return nil
	}

	verr := &ValidationError{Document: name, Errors: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		verr.Errors = append(verr.Errors, FieldError{Field: desc.Field(), Message: desc.Description()})
	}
	return verr
}
