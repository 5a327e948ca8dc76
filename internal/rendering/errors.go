package rendering

import (
	"errors"
	"fmt"
)

// ErrExportInProgress is returned when a paged export is requested while
// another one is still running.
var ErrExportInProgress = errors.New("an export is already in progress")

// TemplateError represents an error parsing or executing an HTML template
type TemplateError struct {
	Message string
	Cause   error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("template error: %s", e.Message)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// RenderError represents a general rendering failure
type RenderError struct {
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("render error: %s", e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// ExportError wraps a failed export. UserMessage is safe to show as-is.
type ExportError struct {
	Format  Format
	Message string
	Cause   error
}

func (e *ExportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("export %s: %s: %v", e.Format, e.Message, e.Cause)
	}
	return fmt.Sprintf("export %s: %s", e.Format, e.Message)
}

func (e *ExportError) Unwrap() error {
	return e.Cause
}

// UserMessage is the notice shown when an export fails.
func (e *ExportError) UserMessage() string {
	return fmt.Sprintf("Failed to generate %s. Please try again.", e.Format.Label())
}
