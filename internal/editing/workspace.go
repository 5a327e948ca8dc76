package editing

import (
	"sync"

	"github.com/jonathan/resume-editor/internal/types"
	"github.com/sirupsen/logrus"
)

// Workspace is the application state shared by the HTTP API and the CLI:
// the documents (through the controller), the active tab and whether the
// export menu is open.
type Workspace struct {
	controller *Controller

	mu             sync.RWMutex
	activeTab      types.DocumentKind
	exportMenuOpen bool
}

// View is a serializable summary of the workspace.
type View struct {
	ActiveTab      types.DocumentKind `json:"activeTab"`
	ExportMenuOpen bool               `json:"exportMenuOpen"`
	EditingSection SectionID          `json:"editingSection,omitempty"`
}

// NewWorkspace creates a workspace on the résumé tab.
func NewWorkspace(initial types.Documents, logger logrus.FieldLogger) *Workspace {
	return &Workspace{
		controller: NewController(initial, logger),
		activeTab:  types.KindResume,
	}
}

// Controller returns the section edit controller.
func (w *Workspace) Controller() *Controller {
	return w.controller
}

// Snapshot returns a copy of the committed documents.
func (w *Workspace) Snapshot() types.Documents {
	return w.controller.Snapshot()
}

// ActiveTab returns the document currently shown.
func (w *Workspace) ActiveTab() types.DocumentKind {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.activeTab
}

// SetActiveTab switches documents. Switching closes the export menu.
func (w *Workspace) SetActiveTab(kind types.DocumentKind) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.activeTab != kind {
		w.exportMenuOpen = false
	}
	w.activeTab = kind
}

// ExportMenuOpen reports whether the export menu is open.
func (w *Workspace) ExportMenuOpen() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.exportMenuOpen
}

// SetExportMenuOpen opens or closes the export menu.
func (w *Workspace) SetExportMenuOpen(open bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.exportMenuOpen = open
}

// View returns the current workspace summary.
func (w *Workspace) View() View {
	section, _ := w.controller.Editing()

	w.mu.RLock()
	defer w.mu.RUnlock()
	return View{
		ActiveTab:      w.activeTab,
		ExportMenuOpen: w.exportMenuOpen,
		EditingSection: section,
	}
}
