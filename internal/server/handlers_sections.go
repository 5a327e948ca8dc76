package server

import (
	"io"
	"net/http"
	"strconv"

	"github.com/jonathan/resume-editor/internal/editing"
	"github.com/jonathan/resume-editor/internal/types"
)

// SectionResponse describes one section: its committed value and, while it
// is being edited, the working buffer.
type SectionResponse struct {
	Section  editing.SectionID  `json:"section"`
	Document types.DocumentKind `json:"document"`
	State    editing.State      `json:"state"`
	Value    any                `json:"value"`
	Buffer   any                `json:"buffer,omitempty"`
}

// sectionID parses the {section} path value, writing a 404 on failure.
func (s *Server) sectionID(w http.ResponseWriter, r *http.Request) (editing.SectionID, bool) {
	id, err := editing.ParseSection(r.PathValue("section"))
	if err != nil {
		s.handleError(w, r, err)
		return "", false
	}
	return id, true
}

func (s *Server) sectionResponse(id editing.SectionID) SectionResponse {
	controller := s.workspace.Controller()
	resp := SectionResponse{
		Section:  id,
		Document: id.Document(),
		State:    controller.State(id),
		Value:    editing.SectionValue(controller.Snapshot(), id),
	}
	if buf, err := controller.Buffer(id); err == nil {
		resp.Buffer = buf
	}
	return resp
}

// handleGetSection returns a section's state, value and buffer.
func (s *Server) handleGetSection(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sectionID(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, s.sectionResponse(id))
}

// handleEditSection puts a section into editing, moving focus from any other.
func (s *Server) handleEditSection(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sectionID(w, r)
	if !ok {
		return
	}
	if err := s.workspace.Controller().EnterEdit(id); err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.sectionResponse(id))
}

// handleUpdateBuffer merges a JSON partial into the section's buffer.
func (s *Server) handleUpdateBuffer(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sectionID(w, r)
	if !ok {
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := s.workspace.Controller().MergeBuffer(id, body); err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.sectionResponse(id))
}

// handleCommitSection commits the buffer and returns the new documents.
func (s *Server) handleCommitSection(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sectionID(w, r)
	if !ok {
		return
	}

	docs, err := s.workspace.Controller().Commit(id)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, docs)
}

// handleDiscardSection drops the buffer.
func (s *Server) handleDiscardSection(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sectionID(w, r)
	if !ok {
		return
	}
	if err := s.workspace.Controller().Discard(id); err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.sectionResponse(id))
}

// pathIndex parses a non-negative integer path value, writing a 400 on
// failure.
func (s *Server) pathIndex(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	n, err := strconv.Atoi(r.PathValue(name))
	if err != nil || n < 0 {
		s.handleError(w, r, &ErrValidation{Field: name, Message: "must be a non-negative integer"})
		return 0, false
	}
	return n, true
}

// handleAddEntry appends a blank entry to a list section's buffer.
func (s *Server) handleAddEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sectionID(w, r)
	if !ok {
		return
	}
	if err := s.workspace.Controller().AddEntry(id); err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.sectionResponse(id))
}

// handleRemoveEntry drops one entry from a list section's buffer.
func (s *Server) handleRemoveEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sectionID(w, r)
	if !ok {
		return
	}
	i, ok := s.pathIndex(w, r, "entry")
	if !ok {
		return
	}
	if err := s.workspace.Controller().RemoveEntry(id, i); err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.sectionResponse(id))
}

// handleAddBullet appends an empty achievement or description line.
func (s *Server) handleAddBullet(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sectionID(w, r)
	if !ok {
		return
	}
	i, ok := s.pathIndex(w, r, "entry")
	if !ok {
		return
	}
	if err := s.workspace.Controller().AddBullet(id, i); err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.sectionResponse(id))
}

// handleRemoveBullet drops one achievement or description line.
func (s *Server) handleRemoveBullet(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sectionID(w, r)
	if !ok {
		return
	}
	i, ok := s.pathIndex(w, r, "entry")
	if !ok {
		return
	}
	j, ok := s.pathIndex(w, r, "bullet")
	if !ok {
		return
	}
	if err := s.workspace.Controller().RemoveBullet(id, i, j); err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.sectionResponse(id))
}
