package server

import (
	"mime"
	"net/http"
	"strconv"

	"github.com/jonathan/resume-editor/internal/rendering"
	"github.com/jonathan/resume-editor/internal/types"
)

// ExportRequest is built from the export path.
type ExportRequest struct {
	Document string `validate:"required,oneof=resume cover_letter cover-letter"`
	Format   string `validate:"required,oneof=html htm pdf doc word txt text"`
}

// handleExport renders the committed document and sends it as a download.
// Choosing an export closes the export menu whether or not it succeeds.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	req := ExportRequest{
		Document: r.PathValue("document"),
		Format:   r.PathValue("format"),
	}
	if err := s.validator.Struct(req); err != nil {
		s.handleError(w, r, validationError(err))
		return
	}

	kind, err := types.ParseDocumentKind(req.Document)
	if err != nil {
		s.handleError(w, r, &ErrValidation{Field: "document", Message: err.Error()})
		return
	}
	format, err := rendering.ParseFormat(req.Format)
	if err != nil {
		s.handleError(w, r, &ErrValidation{Field: "format", Message: err.Error()})
		return
	}

	s.workspace.SetExportMenuOpen(false)

	artifact, err := s.exporter.Export(r.Context(), s.workspace.Snapshot(), kind, format, rendering.Options{GeneratedAt: s.now()})
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", artifact.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": artifact.Filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(artifact.Data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(artifact.Data); err != nil {
		s.logger.WithError(err).Warn("failed to write export")
	}
}

// handlePrint serves the print layout inline, for the browser's print dialog.
func (s *Server) handlePrint(w http.ResponseWriter, r *http.Request) {
	kind, err := types.ParseDocumentKind(r.PathValue("document"))
	if err != nil {
		s.handleError(w, r, &ErrValidation{Field: "document", Message: err.Error()})
		return
	}

	page, err := rendering.RenderHTML(s.workspace.Snapshot(), kind, rendering.Options{GeneratedAt: s.now()})
	if err != nil {
		s.handleError(w, r, &rendering.ExportError{Format: rendering.FormatHTML, Message: "failed to render HTML", Cause: err})
		return
	}

	w.Header().Set("Content-Type", rendering.FormatHTML.ContentType())
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(page)); err != nil {
		s.logger.WithError(err).Warn("failed to write print page")
	}
}
