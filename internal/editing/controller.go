package editing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"sync"

	"github.com/jonathan/resume-editor/internal/types"
	"github.com/sirupsen/logrus"
)

// Listener is notified with the new committed snapshot after every commit.
type Listener func(types.Documents)

// Controller owns the committed documents and a single working buffer.
// Edits go to the buffer; only Commit changes the committed documents.
// All methods are safe for concurrent use.
type Controller struct {
	mu        sync.Mutex
	committed types.Documents
	active    SectionID
	buffer    types.Documents
	listeners []Listener
	logger    logrus.FieldLogger
}

// NewController creates a controller over an initial snapshot.
func NewController(initial types.Documents, logger logrus.FieldLogger) *Controller {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Controller{
		committed: initial.Clone(),
		logger:    logger.WithField("component", "editing"),
	}
}

// OnCommit registers a listener called after each commit, outside the lock.
func (c *Controller) OnCommit(l Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, l)
}

// Snapshot returns a copy of the committed documents.
func (c *Controller) Snapshot() types.Documents {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.committed.Clone()
}

// Editing returns the section being edited and whether there is one.
func (c *Controller) Editing() (SectionID, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active, c.active != ""
}

// State returns the visible state of a section.
func (c *Controller) State(id SectionID) State {
	id, err := ParseSection(string(id))
	if err != nil {
		return Viewing
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active == id {
		return Editing
	}
	return Viewing
}

// EnterEdit copies the committed value into the working buffer and puts the
// section in the editing state. A section already being edited moves focus:
// its buffer is dropped.
func (c *Controller) EnterEdit(id SectionID) error {
	id, err := ParseSection(string(id))
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active != "" && c.active != id {
		c.logger.WithFields(logrus.Fields{
			"section":  string(id),
			"previous": string(c.active),
		}).Debug("dropping open buffer")
	}
	c.active = id
	c.buffer = c.committed.Clone()
	return nil
}

// Buffer returns a copy of the section's working value.
func (c *Controller) Buffer(id SectionID) (any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id, err := c.checkEditing(id)
	if err != nil {
		return nil, err
	}
	return SectionValue(c.buffer, id), nil
}

// UpdateBuffer applies fn to the working documents. Only the edited
// section's part of the buffer is ever committed. No validation is done.
func (c *Controller) UpdateBuffer(id SectionID, fn func(*types.Documents)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.checkEditing(id); err != nil {
		return err
	}
	fn(&c.buffer)
	return nil
}

// MergeBuffer merges a JSON partial into the section's working value. For
// object sections absent fields keep their buffered value; list sections are
// replaced by the given array.
func (c *Controller) MergeBuffer(id SectionID, partial []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	id, err := c.checkEditing(id)
	if err != nil {
		return err
	}

	// decode into a scratch copy so a bad partial leaves the buffer untouched
	scratch := c.buffer.Clone()
	target := sectionValue(&scratch, id)
	if id.isList() {
		v := reflect.ValueOf(target).Elem()
		v.Set(reflect.Zero(v.Type()))
	}

	dec := json.NewDecoder(bytes.NewReader(partial))
	dec.DisallowUnknownFields()
	if err := dec.Decode(target); err != nil {
		return &MergeError{Section: id, Cause: err}
	}
	c.buffer = scratch
	return nil
}

// Commit replaces the committed section with the buffered value and returns
// to viewing. Committing personal info also copies it into the cover letter
// before listeners run.
func (c *Controller) Commit(id SectionID) (types.Documents, error) {
	c.mu.Lock()
	id, err := c.checkEditing(id)
	if err != nil {
		c.mu.Unlock()
		return types.Documents{}, err
	}

	next := c.committed.Clone()
	copySection(&next, c.buffer, id)
	if id == SectionPersonalInfo {
		next.SyncPersonalInfo()
	}
	c.committed = next
	c.active = ""
	c.buffer = types.Documents{}

	listeners := append([]Listener(nil), c.listeners...)
	snapshot := next.Clone()
	c.mu.Unlock()

	c.logger.WithField("section", string(id)).Info("section committed")
	for _, l := range listeners {
		l(snapshot.Clone())
	}
	return snapshot, nil
}

// Discard drops the working buffer; the committed documents are untouched.
func (c *Controller) Discard(id SectionID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.checkEditing(id); err != nil {
		return err
	}
	c.active = ""
	c.buffer = types.Documents{}
	return nil
}

// Replace installs new committed documents without notifying listeners and
// drops any open buffer. Used when restoring saved state.
func (c *Controller) Replace(docs types.Documents) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.committed = docs.Clone()
	c.active = ""
	c.buffer = types.Documents{}
}

// checkEditing returns the canonical id when it is the section being edited.
func (c *Controller) checkEditing(id SectionID) (SectionID, error) {
	id, err := ParseSection(string(id))
	if err != nil {
		return "", err
	}
	if c.active != id {
		return "", fmt.Errorf("%s: %w", id, ErrNotEditing)
	}
	return id, nil
}

// MergeError is returned when a partial cannot be decoded into a section.
type MergeError struct {
	Section SectionID
	Cause   error
}

func (e *MergeError) Error() string {
	return fmt.Sprintf("invalid value for section %s: %v", e.Section, e.Cause)
}

func (e *MergeError) Unwrap() error {
	return e.Cause
}
