// Package server provides the HTTP API for the résumé editor.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-editor/internal/editing"
	"github.com/jonathan/resume-editor/internal/rendering"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		unknown    *editing.UnknownSectionError
		entryErr   *editing.EntryError
		mergeErr   *editing.MergeError
		validation *ErrValidation
		exportErr  *rendering.ExportError
	)

	switch {
	case errors.As(err, &unknown), errors.As(err, &entryErr):
		return http.StatusNotFound
	case errors.Is(err, editing.ErrNotEditing), errors.Is(err, rendering.ErrExportInProgress):
		return http.StatusConflict
	case errors.As(err, &mergeErr), errors.As(err, &validation), errors.Is(err, editing.ErrNotList):
		return http.StatusBadRequest
	case errors.As(err, &exportErr):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// publicMessage is the error text sent to clients. Export failures get the
// export's notice and other internal failures a fixed message; the detail
// only goes to the log.
func publicMessage(err error) string {
	var exportErr *rendering.ExportError
	if errors.As(err, &exportErr) {
		return exportErr.UserMessage()
	}
	if HTTPStatus(err) == http.StatusInternalServerError {
		return "internal error"
	}
	return err.Error()
}

// validationError converts the first validator failure into an ErrValidation.
func validationError(err error) error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		ve := validationErrors[0]
		return &ErrValidation{Field: ve.Field(), Message: ve.Tag()}
	}
	return &ErrValidation{Field: "request", Message: "invalid request"}
}
