package store

import (
	"context"

	"mesai/models"
)

// Document is the entire persisted state: one JSON object with two arrays.
// There is no schema version field; readers tolerate either array being
// absent and treat it as empty.
type Document struct {
	Records []models.OvertimeEntry `json:"records"`
	Users   []models.User          `json:"users"`
}

func (d Document) Clone() Document {
	out := Document{
		Records: make([]models.OvertimeEntry, len(d.Records)),
		Users:   make([]models.User, len(d.Users)),
	}
	copy(out.Records, d.Records)
	copy(out.Users, d.Users)
	return out
}

// Store persists the shared document as a single value. Load runs once at
// session start; Save replaces the full remote content atomically on every
// state-changing operation. Concurrent sessions follow last-writer-wins;
// callers needing stronger guarantees must layer conditional writes on top.
type Store interface {
	Load(ctx context.Context) (Document, error)
	Save(ctx context.Context, doc Document) error
}
