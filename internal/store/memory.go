package store

import (
	"context"
	"sync"
)

// MemoryBackend is a simple in-memory backend used by unit tests and
// ephemeral runs. Documents are deep-copied in both directions.
type MemoryBackend struct {
	mu  sync.RWMutex
	doc *Document

	// ReadErr and WriteErr, when set, are returned instead of doing the
	// operation.
	ReadErr  error
	WriteErr error
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

func (m *MemoryBackend) Name() string { return "memory" }

func (m *MemoryBackend) Read(ctx context.Context) (*Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	if m.doc == nil {
		return nil, ErrNoDocument
	}
	return m.doc.Clone(), nil
}

func (m *MemoryBackend) Write(ctx context.Context, doc *Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.doc = doc.Clone()
	return nil
}
