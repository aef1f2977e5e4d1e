package overtime

import "mesai/models"

// StagingList is a client-local batch of validated entries waiting for one
// bulk commit into the shared collection. Entries in the list already carry
// their final status and classification; commit only appends them.
type StagingList struct {
	entries []models.OvertimeEntry
}

func (l *StagingList) Add(entry models.OvertimeEntry) {
	l.entries = append(l.entries, entry)
}

// Remove drops the staged entry with the given id and reports whether it
// was present.
func (l *StagingList) Remove(id string) bool {
	for i := range l.entries {
		if l.entries[i].ID == id {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Entries returns a copy of the staged batch in insertion order.
func (l *StagingList) Entries() []models.OvertimeEntry {
	out := make([]models.OvertimeEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *StagingList) Len() int {
	return len(l.entries)
}

// Drain empties the list and returns what it held, in insertion order.
func (l *StagingList) Drain() []models.OvertimeEntry {
	out := l.entries
	l.entries = nil
	return out
}
