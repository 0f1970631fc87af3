// Package registry hands assembled documents to the extension registry of the
// running session.
package registry

import (
	"context"
	"sync"

	"brtoolchain/internal/document"
)

// Sink activates a document in the current session. Sinks do not deduplicate;
// callers never submit the same installation twice in one session.
type Sink interface {
	Register(ctx context.Context, doc document.Document) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, doc document.Document) error

// Register implements Sink.
func (f SinkFunc) Register(ctx context.Context, doc document.Document) error {
	return f(ctx, doc)
}

// MemorySink keeps registered documents in memory.
type MemorySink struct {
	mu   sync.Mutex
	docs []document.Document
}

// Register implements Sink.
func (m *MemorySink) Register(_ context.Context, doc document.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs = append(m.docs, doc)
	return nil
}

// Documents returns the registered documents in submission order.
func (m *MemorySink) Documents() []document.Document {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]document.Document(nil), m.docs...)
}

// ByKind returns the registered documents of one kind.
func (m *MemorySink) ByKind(kind document.Kind) []document.Document {
	var out []document.Document
	for _, doc := range m.Documents() {
		if doc.Kind == kind {
			out = append(out, doc)
		}
	}
	return out
}
