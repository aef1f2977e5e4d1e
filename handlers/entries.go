package handlers

import (
	"log"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"mesai/config"
	"mesai/middleware"
	"mesai/models"
	"mesai/overtime"
	"mesai/state"
)

// EntryHandler serves the personal overtime workflow shared by every role:
// stage new entries, commit the batch, browse history, edit or delete own
// pending entries.
type EntryHandler struct {
	calendar  *config.Calendar
	service   *overtime.Service
	container *state.Container

	mu      sync.Mutex
	staging map[string]*overtime.StagingList // keyed by username
}

func NewEntryHandler(cal *config.Calendar, service *overtime.Service, container *state.Container) *EntryHandler {
	return &EntryHandler{
		calendar:  cal,
		service:   service,
		container: container,
		staging:   make(map[string]*overtime.StagingList),
	}
}

func (h *EntryHandler) stagingFor(username string) *overtime.StagingList {
	h.mu.Lock()
	defer h.mu.Unlock()
	list, ok := h.staging[username]
	if !ok {
		list = &overtime.StagingList{}
		h.staging[username] = list
	}
	return list
}

type entryRequest struct {
	Period string `json:"period"`
	Date   string `json:"date"`
	Start  string `json:"start"`
	End    string `json:"end"`
	Reason string `json:"reason"`
}

func (r entryRequest) input() overtime.EntryInput {
	return overtime.EntryInput{
		Period: r.Period,
		Date:   r.Date,
		Start:  r.Start,
		End:    r.End,
		Reason: r.Reason,
	}
}

// History lists the user's own entries, newest submission first, with the
// approved-hours total.
func (h *EntryHandler) History(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	doc := h.container.Snapshot()

	mine := overtime.EntriesOf(doc.Records, user.Username)
	total := overtime.ApprovedHours(mine)
	// Committed order is append order; reverse for newest-first display.
	for i, j := 0, len(mine)-1; i < j; i, j = i+1, j-1 {
		mine[i], mine[j] = mine[j], mine[i]
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"entries":              mine,
		"total_approved_hours": total,
	})
}

// Classify previews the pay-rate class for a date while the form is still
// being filled in. An empty date yields the weekday default.
func (h *EntryHandler) Classify(w http.ResponseWriter, r *http.Request) {
	class := h.service.Classifier.Classify(r.URL.Query().Get("date"))
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"category":   class.Category,
		"multiplier": class.Multiplier,
	})
}

// Stage validates a candidate entry against the user's committed entries
// plus anything already staged, and adds it to the staging list.
func (h *EntryHandler) Stage(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var req entryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !h.calendar.ValidPeriod(req.Period) {
		respondJSON(w, http.StatusUnprocessableEntity, map[string]string{
			"error": "unknown pay period " + req.Period,
			"code":  overtime.CodeInvalidPeriod,
		})
		return
	}

	doc := h.container.Snapshot()
	list := h.stagingFor(user.Username)
	existing := append(overtime.EntriesOf(doc.Records, user.Username), list.Entries()...)

	entry, err := h.service.Stage(user, req.input(), existing)
	if err != nil {
		respondCoreError(w, err)
		return
	}

	list.Add(entry)
	respondJSON(w, http.StatusCreated, entry)
}

func (h *EntryHandler) Staged(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"entries": h.stagingFor(user.Username).Entries(),
	})
}

func (h *EntryHandler) Unstage(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if !h.stagingFor(user.Username).Remove(chi.URLParam(r, "id")) {
		respondError(w, http.StatusNotFound, "staged entry not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

// Commit appends the staged batch to the shared collection in one
// replacement. On a failed remote write the local update stands; the
// failure is reported so the user can be notified.
func (h *EntryHandler) Commit(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	list := h.stagingFor(user.Username)
	if list.Len() == 0 {
		respondError(w, http.StatusBadRequest, "nothing staged")
		return
	}

	batch := list.Drain()
	doc := h.container.Snapshot()
	doc.Records = append(doc.Records, batch...)

	if err := h.container.Replace(r.Context(), doc); err != nil {
		log.Printf("commit persist failed for %s: %v", user.Username, err)
		respondJSON(w, http.StatusBadGateway, map[string]interface{}{
			"error":     "failed to persist shared document",
			"committed": len(batch),
		})
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"committed": len(batch)})
}

// Update applies a self-service edit to the user's own pending entry.
func (h *EntryHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	id := chi.URLParam(r, "id")

	var req entryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !h.calendar.ValidPeriod(req.Period) {
		respondJSON(w, http.StatusUnprocessableEntity, map[string]string{
			"error": "unknown pay period " + req.Period,
			"code":  overtime.CodeInvalidPeriod,
		})
		return
	}

	doc := h.container.Snapshot()
	entry := findEntry(doc.Records, id)
	if entry == nil {
		respondError(w, http.StatusNotFound, "entry not found")
		return
	}

	collection := overtime.EntriesOf(doc.Records, user.Username)
	if err := h.service.UpdateSelf(user, entry, req.input(), collection); err != nil {
		respondCoreError(w, err)
		return
	}

	if err := h.container.Replace(r.Context(), doc); err != nil {
		log.Printf("update persist failed for %s: %v", user.Username, err)
		respondJSON(w, http.StatusBadGateway, map[string]interface{}{
			"error": "failed to persist shared document",
			"entry": entry,
		})
		return
	}
	respondJSON(w, http.StatusOK, entry)
}

// Delete removes the user's own pending entry from the collection.
func (h *EntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	id := chi.URLParam(r, "id")

	doc := h.container.Snapshot()
	entry := findEntry(doc.Records, id)
	if entry == nil {
		respondError(w, http.StatusNotFound, "entry not found")
		return
	}
	if err := h.service.AuthorizeDelete(user, entry); err != nil {
		respondCoreError(w, err)
		return
	}

	doc.Records = removeEntry(doc.Records, id)
	if err := h.container.Replace(r.Context(), doc); err != nil {
		log.Printf("delete persist failed for %s: %v", user.Username, err)
		respondJSON(w, http.StatusBadGateway, map[string]string{
			"error": "failed to persist shared document",
		})
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func findEntry(records []models.OvertimeEntry, id string) *models.OvertimeEntry {
	for i := range records {
		if records[i].ID == id {
			return &records[i]
		}
	}
	return nil
}

func removeEntry(records []models.OvertimeEntry, id string) []models.OvertimeEntry {
	out := records[:0]
	for _, e := range records {
		if e.ID != id {
			out = append(out, e)
		}
	}
	return out
}
