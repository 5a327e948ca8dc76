// Package schemas checks persisted documents records against JSON Schemas.
package schemas

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	rootschemas "github.com/jonathan/resume-editor/schemas"
	"github.com/xeipuuv/gojsonschema"
)

// ValidationError lists every schema violation in a record.
type ValidationError struct {
	Errors []FieldError
}

// FieldError is one violation; Field is a dotted path such as
// "resumeData.experience.0.company".
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		fmt.Fprintf(&sb, "  %d. %s: %s\n", i+1, err.Field, err.Message)
	}
	return sb.String()
}

// SchemaLoadError means the schema itself could not be read or compiled.
type SchemaLoadError struct {
	Source  string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Source, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// Schema is a compiled JSON Schema.
type Schema struct {
	source string
	schema *gojsonschema.Schema
}

// Compile parses schema text. source names it in errors.
func Compile(source, text string) (*Schema, error) {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(text))
	if err != nil {
		return nil, &SchemaLoadError{Source: source, Message: "schema failed to compile", Cause: err}
	}
	return &Schema{source: source, schema: s}, nil
}

// CompileFile reads and compiles a schema file.
func CompileFile(path string) (*Schema, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		return nil, &SchemaLoadError{Source: path, Message: "schema file unreadable", Cause: err}
	}
	return Compile(path, string(text))
}

// Validate checks data. Malformed JSON is reported as a root violation.
func (s *Schema) Validate(data []byte) error {
	result, err := s.schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return &ValidationError{Errors: []FieldError{{Field: "(root)", Message: err.Error()}}}
	}
	return resultError(result)
}

var documents = sync.OnceValues(func() (*Schema, error) {
	return Compile("documents.schema.json", rootschemas.Documents)
})

// ValidateDocuments checks a documents record against the bundled schema.
func ValidateDocuments(data []byte) error {
	s, err := documents()
	if err != nil {
		return err
	}
	return s.Validate(data)
}

// ValidateJSON checks a JSON file against a schema file.
func ValidateJSON(schemaPath, jsonPath string) error {
	s, err := CompileFile(schemaPath)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", jsonPath, err)
	}
	return s.Validate(data)
}

// ValidateJSONString checks JSON text against schema text.
func ValidateJSONString(schemaContent, jsonContent string) error {
	s, err := Compile("(string schema)", schemaContent)
	if err != nil {
		return err
	}
	return s.Validate([]byte(jsonContent))
}

// resultError turns a failed result into a ValidationError sorted by field
// so output is stable.
func resultError(result *gojsonschema.Result) error {
	if result.Valid() {
		return nil
	}

	errs := make([]FieldError, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		errs = append(errs, FieldError{Field: field, Message: desc.Description()})
	}
	sort.SliceStable(errs, func(i, j int) bool { return errs[i].Field < errs[j].Field })
	return &ValidationError{Errors: errs}
}
