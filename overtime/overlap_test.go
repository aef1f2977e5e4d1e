package overtime

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mesai/models"
)

func TestOverlaps(t *testing.T) {
	existing := []models.OvertimeEntry{
		{ID: "a", Date: "2025-03-10", Start: "08:00", End: "10:00", Status: models.StatusPending},
	}

	tests := []struct {
		name  string
		date  string
		start string
		end   string
		want  bool
	}{
		{"partial overlap", "2025-03-10", "09:00", "11:00", true},
		{"contained", "2025-03-10", "08:30", "09:30", true},
		{"containing", "2025-03-10", "07:00", "11:00", true},
		{"identical", "2025-03-10", "08:00", "10:00", true},
		{"touching end is free", "2025-03-10", "10:00", "12:00", false},
		{"touching start is free", "2025-03-10", "06:00", "08:00", false},
		{"different date", "2025-03-11", "09:00", "11:00", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.date, tt.start, tt.end, existing, ""))
		})
	}
}

func TestOverlapsIgnoresRejected(t *testing.T) {
	existing := []models.OvertimeEntry{
		{ID: "a", Date: "2025-03-10", Start: "08:00", End: "10:00", Status: models.StatusRejected},
	}
	assert.False(t, Overlaps("2025-03-10", "09:00", "11:00", existing, ""))
}

func TestOverlapsExcludesEditedEntry(t *testing.T) {
	existing := []models.OvertimeEntry{
		{ID: "a", Date: "2025-03-10", Start: "08:00", End: "10:00", Status: models.StatusPending},
		{ID: "b", Date: "2025-03-10", Start: "12:00", End: "14:00", Status: models.StatusApproved},
	}
	// Widening entry a against itself is fine until it reaches entry b.
	assert.False(t, Overlaps("2025-03-10", "08:00", "11:00", existing, "a"))
	assert.True(t, Overlaps("2025-03-10", "08:00", "13:00", existing, "a"))
}

func TestOverlapsMinuteBoundary(t *testing.T) {
	existing := []models.OvertimeEntry{
		{ID: "a", Date: "2025-03-10", Start: "09:30", End: "10:30", Status: models.StatusApproved},
	}
	assert.False(t, Overlaps("2025-03-10", "09:05", "09:30", existing, ""))
	assert.True(t, Overlaps("2025-03-10", "09:05", "09:31", existing, ""))
}
