package overtime

import (
	"fmt"

	"mesai/models"
)

// Warning codes for non-fatal data-quality findings. Warnings are rendered
// to the admin, never block an operation and never auto-correct anything.
const (
	WarnUnassignedEmployee = "unassigned_employee"
	WarnOrphanedSubmitter  = "orphaned_submitter"
)

type Warning struct {
	Code     string `json:"code"`
	Username string `json:"username"`
	Message  string `json:"message"`
}

// IntegrityWarnings scans a snapshot for the two known data-quality states:
// employees without a manager reference, and entries whose submitter is
// missing from the user collection.
func IntegrityWarnings(records []models.OvertimeEntry, users []models.User) []Warning {
	var out []Warning

	known := make(map[string]bool, len(users))
	for _, u := range users {
		known[u.Username] = true
		if u.Unassigned() {
			out = append(out, Warning{
				Code:     WarnUnassignedEmployee,
				Username: u.Username,
				Message:  fmt.Sprintf("employee %s has no team lead assigned and cannot be supervised for approval", u.Username),
			})
		}
	}

	seen := map[string]bool{}
	for _, e := range records {
		if known[e.Username] || seen[e.Username] {
			continue
		}
		seen[e.Username] = true
		out = append(out, Warning{
			Code:     WarnOrphanedSubmitter,
			Username: e.Username,
			Message:  fmt.Sprintf("entries reference submitter %s who is no longer in the user collection", e.Username),
		})
	}
	return out
}
