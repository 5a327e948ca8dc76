// Package persistence saves and restores the documents record with a
// debounced writer over a pluggable store.
package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/jonathan/resume-editor/internal/schemas"
	"github.com/jonathan/resume-editor/internal/types"
)

// LocalKey is the fixed key of the documents record in local storage.
const LocalKey = "resumeData"

// Store reads and writes the raw documents record. Load returns nil, nil
// when nothing has been saved.
type Store interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}

// KeyValue is a small string store used for installation metadata.
type KeyValue interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Encode serializes the documents record.
func Encode(docs types.Documents) ([]byte, error) {
	data, err := json.Marshal(docs)
	if err != nil {
		return nil, fmt.Errorf("failed to encode documents: %w", err)
	}
	return data, nil
}

// Decode validates a record against the documents schema and decodes it.
func Decode(data []byte) (*types.Documents, error) {
	if err := schemas.ValidateDocuments(data); err != nil {
		return nil, err
	}
	var docs types.Documents
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode documents: %w", err)
	}
	return &docs, nil
}

// MemoryStore keeps the record in memory.
type MemoryStore struct {
	mu     sync.Mutex
	data   []byte
	values map[string]string
	writes int
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Load implements Store.
func (m *MemoryStore) Load(ctx context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, nil
	}
	return append([]byte(nil), m.data...), nil
}

// Save implements Store.
func (m *MemoryStore) Save(ctx context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), data...)
	m.writes++
	return nil
}

// Writes returns how many times Save has been called.
func (m *MemoryStore) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// Get implements KeyValue.
func (m *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// Set implements KeyValue.
func (m *MemoryStore) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}
