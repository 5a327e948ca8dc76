package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/resume-editor/internal/types"
)

// maxBodyBytes bounds request bodies; documents are small.
const maxBodyBytes = 1 << 20

// TabRequest is the body of PUT /workspace/tab.
type TabRequest struct {
	Tab string `json:"tab" validate:"required,oneof=resume cover_letter"`
}

// ExportMenuRequest is the body of PUT /workspace/export-menu.
type ExportMenuRequest struct {
	Open *bool `json:"open" validate:"required"`
}

// handleGetDocuments returns the committed documents.
func (s *Server) handleGetDocuments(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.workspace.Snapshot())
}

// handleGetWorkspace returns the active tab, export menu and edit focus.
func (s *Server) handleGetWorkspace(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.workspace.View())
}

// handleSetTab switches the visible document.
func (s *Server) handleSetTab(w http.ResponseWriter, r *http.Request) {
	var req TabRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	kind, err := types.ParseDocumentKind(req.Tab)
	if err != nil {
		s.handleError(w, r, &ErrValidation{Field: "tab", Message: err.Error()})
		return
	}
	s.workspace.SetActiveTab(kind)
	s.jsonResponse(w, http.StatusOK, s.workspace.View())
}

// handleSetExportMenu opens or closes the export menu.
func (s *Server) handleSetExportMenu(w http.ResponseWriter, r *http.Request) {
	var req ExportMenuRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}
	s.workspace.SetExportMenuOpen(*req.Open)
	s.jsonResponse(w, http.StatusOK, s.workspace.View())
}

// decodeAndValidate decodes a JSON body into req and validates it. On failure
// it writes the error response and returns false.
func (s *Server) decodeAndValidate(w http.ResponseWriter, r *http.Request, req any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	if err := s.validator.Struct(req); err != nil {
		s.handleError(w, r, validationError(err))
		return false
	}
	return true
}
