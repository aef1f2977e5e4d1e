package overtime

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"mesai/models"
)

// SubmittedAtLayout is the local display format recorded on every entry at
// submission time. It sorts correctly only after parsing, not lexically.
const SubmittedAtLayout = "02.01.2006 15:04:05"

// Service owns the create/approve/reject/edit/delete transitions for
// overtime entries. All methods are synchronous and deterministic given
// their inputs; validation failures return discriminated errors and leave
// every argument untouched.
type Service struct {
	Classifier *Classifier

	// Now and NewID exist so tests can pin timestamps and identifiers.
	Now   func() time.Time
	NewID func() string
}

func NewService(classifier *Classifier) *Service {
	return &Service{
		Classifier: classifier,
		Now:        time.Now,
		NewID:      uuid.NewString,
	}
}

// EntryInput is the submitter-editable portion of an entry.
type EntryInput struct {
	Period string
	Date   string
	Start  string
	End    string
	Reason string
}

// AdminEntryInput is the unrestricted force-edit payload. Status may be set
// to any value; no validation beyond authorization applies.
type AdminEntryInput struct {
	Period          string
	Date            string
	Start           string
	End             string
	Reason          string
	Status          models.Status
	RejectionReason string
}

// Stage validates a candidate entry and, on success, returns it ready for
// the actor's staging list. The existing slice must hold the actor's
// committed entries together with anything already staged; validation order
// is justification, duration, overlap, first failure wins.
//
// A plain employee submission starts out pending. A team lead or admin
// entering their own time is created already approved: the workflow
// shortcut for leads who would otherwise approve themselves.
func (s *Service) Stage(actor *models.User, in EntryInput, existing []models.OvertimeEntry) (models.OvertimeEntry, error) {
	if err := s.validate(in, existing, ""); err != nil {
		return models.OvertimeEntry{}, err
	}

	status := models.StatusPending
	if !actor.IsEmployee() {
		status = models.StatusApproved
	}

	class := s.Classifier.Classify(in.Date)
	return models.OvertimeEntry{
		ID:          s.NewID(),
		Period:      in.Period,
		Name:        actor.DisplayName(),
		Date:        in.Date,
		Start:       in.Start,
		End:         in.End,
		Reason:      in.Reason,
		Username:    actor.Username,
		SubmittedAt: s.Now().Format(SubmittedAtLayout),
		Status:      status,
		Category:    class.Category,
		Multiplier:  class.Multiplier,
	}, nil
}

func (s *Service) validate(in EntryInput, existing []models.OvertimeEntry, excludeID string) error {
	if strings.TrimSpace(in.Reason) == "" {
		return validationErr(CodeEmptyJustification, "justification must not be empty")
	}
	if Hours(in.Start, in.End) <= 0 {
		return validationErr(CodeInvalidTimeRange, "end time must be after start time on the same day")
	}
	if Overlaps(in.Date, in.Start, in.End, existing, excludeID) {
		return validationErr(CodeOverlap, "an active entry already covers part of %s %s-%s", in.Date, in.Start, in.End)
	}
	return nil
}

// Approve moves a pending entry to approved. The actor must be an admin or
// the submitter's own team lead; no other field changes.
func (s *Service) Approve(actor, submitter *models.User, entry *models.OvertimeEntry) error {
	if err := s.authorizeDecision(actor, submitter, "approve"); err != nil {
		return err
	}
	if !entry.IsPending() {
		return validationErr(CodeNotPending, "only pending entries can be approved")
	}
	entry.Status = models.StatusApproved
	entry.RejectionReason = ""
	return nil
}

// Reject moves a pending entry to rejected and stores the reason. The core
// accepts an empty reason; the HTTP surface requires one.
func (s *Service) Reject(actor, submitter *models.User, entry *models.OvertimeEntry, reason string) error {
	if err := s.authorizeDecision(actor, submitter, "reject"); err != nil {
		return err
	}
	if !entry.IsPending() {
		return validationErr(CodeNotPending, "only pending entries can be rejected")
	}
	entry.Status = models.StatusRejected
	entry.RejectionReason = reason
	return nil
}

func (s *Service) authorizeDecision(actor, submitter *models.User, action string) error {
	if actor.IsAdmin() {
		return nil
	}
	if submitter != nil && actor.Supervises(submitter) {
		return nil
	}
	return authorizationErr(actor.Username, action+" this entry")
}

// UpdateSelf applies a submitter's edit to their own pending entry. Unlike
// the admin path it re-runs the full validation set against the current
// collection, so a self-service edit can never introduce a new conflict.
// The classification is recomputed from the (possibly changed) date.
func (s *Service) UpdateSelf(actor *models.User, entry *models.OvertimeEntry, in EntryInput, collection []models.OvertimeEntry) error {
	if !entry.SubmittedBy(actor.Username) {
		return authorizationErr(actor.Username, "edit an entry they did not submit")
	}
	if !entry.IsPending() {
		return validationErr(CodeNotPending, "only pending entries can be edited")
	}
	if err := s.validate(in, collection, entry.ID); err != nil {
		return err
	}

	class := s.Classifier.Classify(in.Date)
	entry.Period = in.Period
	entry.Date = in.Date
	entry.Start = in.Start
	entry.End = in.End
	entry.Reason = in.Reason
	entry.Category = class.Category
	entry.Multiplier = class.Multiplier
	return nil
}

// UpdateByAdmin force-edits any field of any entry regardless of status,
// including the status itself. It is a trusted override: no overlap or
// duration validation runs. Classification is recomputed from the new date
// and the rejection reason is kept only while the status stays rejected.
func (s *Service) UpdateByAdmin(actor *models.User, entry *models.OvertimeEntry, in AdminEntryInput) error {
	if !actor.IsAdmin() {
		return authorizationErr(actor.Username, "force-edit entries")
	}

	class := s.Classifier.Classify(in.Date)
	entry.Period = in.Period
	entry.Date = in.Date
	entry.Start = in.Start
	entry.End = in.End
	entry.Reason = in.Reason
	entry.Status = in.Status
	entry.Category = class.Category
	entry.Multiplier = class.Multiplier
	if in.Status == models.StatusRejected {
		entry.RejectionReason = in.RejectionReason
	} else {
		entry.RejectionReason = ""
	}
	return nil
}

// AuthorizeDelete decides who may remove an entry: admins always, the
// submitter only while it is still pending.
func (s *Service) AuthorizeDelete(actor *models.User, entry *models.OvertimeEntry) error {
	if actor.IsAdmin() {
		return nil
	}
	if entry.SubmittedBy(actor.Username) {
		if !entry.IsPending() {
			return validationErr(CodeNotPending, "only pending entries can be deleted")
		}
		return nil
	}
	return authorizationErr(actor.Username, "delete an entry they did not submit")
}
