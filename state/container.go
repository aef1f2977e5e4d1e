package state

import (
	"context"
	"fmt"
	"sync"

	"mesai/store"
)

// Container owns the shared application state. It is created once, passed
// explicitly to the layers that need it, and hands out snapshots so
// component logic never touches shared memory. Every state-changing
// operation replaces the whole document as a single value and then rewrites
// the remote copy.
type Container struct {
	mu    sync.RWMutex
	doc   store.Document
	store store.Store
}

// Open loads the document once at session start.
func Open(ctx context.Context, st store.Store) (*Container, error) {
	doc, err := st.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("open state: %w", err)
	}
	return &Container{doc: doc, store: st}, nil
}

// Snapshot returns an independent copy of the current document. Callers
// filter it down to their role's visible subset before any computation.
func (c *Container) Snapshot() store.Document {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.doc.Clone()
}

// Replace swaps in the new document and persists it. The optimistic local
// update stands even when the remote write fails; the error is surfaced to
// the caller, who owes the user a failure notification. There is no retry
// and no rollback.
func (c *Container) Replace(ctx context.Context, doc store.Document) error {
	c.mu.Lock()
	c.doc = doc.Clone()
	c.mu.Unlock()

	if err := c.store.Save(ctx, doc); err != nil {
		return fmt.Errorf("persist document: %w", err)
	}
	return nil
}
