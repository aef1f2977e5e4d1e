package store

import (
	"context"
	"sync"
)

// MemoryStore keeps the document in process memory. It is the variant used
// for demos and tests; everything is lost when the process exits.
type MemoryStore struct {
	mu  sync.Mutex
	doc Document
}

func NewMemoryStore(initial Document) *MemoryStore {
	return &MemoryStore{doc: initial.Clone()}
}

func (s *MemoryStore) Load(ctx context.Context) (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone(), nil
}

func (s *MemoryStore) Save(ctx context.Context, doc Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = doc.Clone()
	return nil
}
