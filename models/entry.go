package models

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

type Category string

const (
	CategoryWeekday Category = "weekday"
	CategoryWeekend Category = "weekend"
	CategoryHoliday Category = "holiday"
)

// OvertimeEntry is one claimed overtime interval for one submitter on one
// date. Name is a denormalized copy of the submitter's display name taken at
// creation time; it is never re-derived from the user collection, so the
// historical name survives later renames.
type OvertimeEntry struct {
	ID       string `json:"id"`
	Period   string `json:"period"`
	Name     string `json:"name"`
	Date     string `json:"date"`  // ISO date, no time zone
	Start    string `json:"start"` // "HH:MM"
	End      string `json:"end"`   // "HH:MM", same day; overnight unsupported
	Reason   string `json:"reason"`
	Username string `json:"username"` // submitter, immutable once created
	// SubmittedAt is a local display string ("02.01.2006 15:04:05"). It is
	// parseable for recency ordering but carries no timezone.
	SubmittedAt string   `json:"submitted_at"`
	Status      Status   `json:"status"`
	Category    Category `json:"category"`
	Multiplier  float64  `json:"multiplier"`
	// RejectionReason is present exactly when Status is rejected.
	RejectionReason string `json:"rejection_reason,omitempty"`
}

// Active reports whether the entry counts for overlap detection. Rejected
// entries free their time range for resubmission.
func (e *OvertimeEntry) Active() bool {
	return e.Status != StatusRejected
}

func (e *OvertimeEntry) IsPending() bool {
	return e.Status == StatusPending
}

// SubmittedBy reports whether the entry belongs to the given username.
func (e *OvertimeEntry) SubmittedBy(username string) bool {
	return e.Username == username
}
