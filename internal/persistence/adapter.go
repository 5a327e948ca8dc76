package persistence

import (
	"context"
	"sync"
	"time"

	"github.com/jonathan/resume-editor/internal/editing"
	"github.com/jonathan/resume-editor/internal/types"
	"github.com/sirupsen/logrus"
)

// DefaultDebounce is how long the adapter waits for edits to settle.
const DefaultDebounce = time.Second

// writeTimeout bounds a single store write.
const writeTimeout = 10 * time.Second

// Adapter saves the documents through a Store. Saves are debounced with a
// single pending timer: a save arriving before the timer fires replaces the
// pending state and restarts the wait, so a burst of edits becomes one write
// of the final state. Failures are logged and never returned to editors.
type Adapter struct {
	store  Store
	delay  time.Duration
	logger logrus.FieldLogger

	mu        sync.Mutex
	timer     *time.Timer
	pending   *types.Documents
	hydrating bool
	writeMu   sync.Mutex
}

// NewAdapter creates an adapter. A non-positive delay uses DefaultDebounce.
func NewAdapter(store Store, delay time.Duration, logger logrus.FieldLogger) *Adapter {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Adapter{
		store:  store,
		delay:  delay,
		logger: logger.WithField("component", "persistence"),
	}
}

// Watch saves every commit made through the controller.
func (a *Adapter) Watch(c *editing.Controller) {
	c.OnCommit(a.Save)
}

// Save schedules a debounced write of docs. It is ignored while hydrating.
func (a *Adapter) Save(docs types.Documents) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.hydrating {
		a.logger.Debug("save suppressed during hydration")
		return
	}

	snapshot := docs.Clone()
	a.pending = &snapshot
	if a.timer != nil {
		a.timer.Stop()
	}
	a.timer = time.AfterFunc(a.delay, a.fire)
}

// Pending reports whether a write is scheduled.
func (a *Adapter) Pending() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pending != nil
}

func (a *Adapter) fire() {
	docs := a.take()
	if docs == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	_ = a.write(ctx, *docs)
}

// take removes the pending state and stops its timer.
func (a *Adapter) take() *types.Documents {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	docs := a.pending
	a.pending = nil
	return docs
}

// Flush writes any pending state immediately.
func (a *Adapter) Flush(ctx context.Context) error {
	docs := a.take()
	if docs == nil {
		return nil
	}
	return a.write(ctx, *docs)
}

func (a *Adapter) write(ctx context.Context, docs types.Documents) error {
	// a timer write and a flush must not interleave
	a.writeMu.Lock()
	defer a.writeMu.Unlock()

	start := time.Now()
	data, err := Encode(docs)
	if err != nil {
		a.logger.WithError(err).Warn("failed to encode documents")
		return err
	}
	if err := a.store.Save(ctx, data); err != nil {
		a.logger.WithError(err).Warn("failed to save documents; continuing in memory")
		return err
	}
	a.logger.WithFields(logrus.Fields{
		"bytes":       len(data),
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("documents saved")
	return nil
}

// Load returns the saved documents. Any failure (store error, missing,
// malformed or schema-invalid record) yields false and is logged.
func (a *Adapter) Load(ctx context.Context) (*types.Documents, bool) {
	data, err := a.store.Load(ctx)
	if err != nil {
		a.logger.WithError(err).Warn("failed to load documents")
		return nil, false
	}
	if len(data) == 0 {
		return nil, false
	}

	docs, err := Decode(data)
	if err != nil {
		a.logger.WithError(err).Warn("ignoring unreadable saved documents")
		return nil, false
	}
	return docs, true
}

// Hydrate restores saved documents into the workspace. Saves requested while
// hydrating are dropped so restored data is not written straight back.
func (a *Adapter) Hydrate(ctx context.Context, ws *editing.Workspace) bool {
	a.mu.Lock()
	a.hydrating = true
	a.mu.Unlock()
	defer func() {
		a.mu.Lock()
		a.hydrating = false
		a.mu.Unlock()
	}()

	docs, ok := a.Load(ctx)
	if !ok {
		a.logger.Info("no saved documents; starting from the sample")
		return false
	}
	ws.Controller().Replace(*docs)
	a.logger.Info("restored saved documents")
	return true
}
