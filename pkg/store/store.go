// Package store persists built diagrams under a name.
//
// The [Store] interface has two implementations: [MemoryStore] for
// development and tests, and [MongoStore] for durable storage shared
// between server instances. Stored diagrams use the serialization form
// from pkg/graph, which carries bson tags for exactly this purpose.
package store

import (
	"context"
	"slices"
	"sync"

	"github.com/storeman/graph-uml/pkg/errors"
	"github.com/storeman/graph-uml/pkg/graph"
)

// Store saves and retrieves named diagrams.
type Store interface {
	// Save stores a diagram under name, replacing any previous version.
	Save(ctx context.Context, name string, d graph.Diagram) error

	// Load retrieves a diagram by name. A missing name fails with
	// errors.ErrCodeDiagramNotFound.
	Load(ctx context.Context, name string) (graph.Diagram, error)

	// List returns all stored diagram names, sorted.
	List(ctx context.Context) ([]string, error)

	// Delete removes a stored diagram. Deleting a missing name is not
	// an error.
	Delete(ctx context.Context, name string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// MemoryStore is an in-memory Store for development and tests.
type MemoryStore struct {
	mu       sync.RWMutex
	diagrams map[string]graph.Diagram
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{diagrams: make(map[string]graph.Diagram)}
}

// Save implements Store.
func (s *MemoryStore) Save(ctx context.Context, name string, d graph.Diagram) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.diagrams[name] = d
	return nil
}

// Load implements Store.
func (s *MemoryStore) Load(ctx context.Context, name string) (graph.Diagram, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.diagrams[name]
	if !ok {
		return graph.Diagram{}, errors.New(errors.ErrCodeDiagramNotFound, "diagram %q not found", name)
	}
	return d, nil
}

// List implements Store.
func (s *MemoryStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.diagrams))
	for name := range s.diagrams {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

// Delete implements Store.
func (s *MemoryStore) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.diagrams, name)
	return nil
}

// Close implements Store.
func (s *MemoryStore) Close(ctx context.Context) error { return nil }

var _ Store = (*MemoryStore)(nil)
