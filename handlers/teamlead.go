package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"mesai/middleware"
	"mesai/models"
	"mesai/overtime"
	"mesai/state"
)

// TeamHandler serves the team lead console: roster overview, the pending
// approval queue and the decided history for direct reports. Admins can use
// the same endpoints; for them the roster is their own direct reports, which
// is usually empty.
type TeamHandler struct {
	service   *overtime.Service
	container *state.Container
}

func NewTeamHandler(service *overtime.Service, container *state.Container) *TeamHandler {
	return &TeamHandler{service: service, container: container}
}

// Overview returns the roster, summary stats, the pending queue and the
// decided history, the latter optionally narrowed by period and person
// query parameters.
func (h *TeamHandler) Overview(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	doc := h.container.Snapshot()

	roster := overtime.Roster(doc.Users, user.Username)
	names := make([]string, len(roster))
	for i, u := range roster {
		names[i] = u.Username
	}
	visible := overtime.VisibleToLead(doc.Records, names)

	var pending, decided []models.OvertimeEntry
	period := r.URL.Query().Get("period")
	person := r.URL.Query().Get("person")
	for _, e := range visible {
		if e.IsPending() {
			pending = append(pending, e)
			continue
		}
		if period != "" && e.Period != period {
			continue
		}
		if person != "" && e.Username != person {
			continue
		}
		decided = append(decided, e)
	}

	stats := overtime.TeamStatsFor(doc.Records, roster)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"roster": roster,
		"stats": map[string]interface{}{
			"roster_size":    stats.RosterSize,
			"pending_count":  stats.PendingCount,
			"approved_hours": stats.ApprovedHours,
		},
		"pending": pending,
		"decided": decided,
	})
}

// Approve grants a pending entry submitted by a direct report.
func (h *TeamHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, func(actor, submitter *models.User, entry *models.OvertimeEntry) error {
		return h.service.Approve(actor, submitter, entry)
	})
}

// Reject declines a pending entry. A reason is mandatory here even though
// the core would accept an empty one.
func (h *TeamHandler) Reject(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Reason string `json:"reason"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Reason) == "" {
		respondError(w, http.StatusBadRequest, "a rejection reason is required")
		return
	}

	h.decide(w, r, func(actor, submitter *models.User, entry *models.OvertimeEntry) error {
		return h.service.Reject(actor, submitter, entry, req.Reason)
	})
}

func (h *TeamHandler) decide(w http.ResponseWriter, r *http.Request, apply func(actor, submitter *models.User, entry *models.OvertimeEntry) error) {
	user := middleware.GetUserFromContext(r.Context())
	id := chi.URLParam(r, "id")

	doc := h.container.Snapshot()
	entry := findEntry(doc.Records, id)
	if entry == nil {
		respondError(w, http.StatusNotFound, "entry not found")
		return
	}

	var submitter *models.User
	for i := range doc.Users {
		if doc.Users[i].Username == entry.Username {
			submitter = &doc.Users[i]
			break
		}
	}

	if err := apply(user, submitter, entry); err != nil {
		respondCoreError(w, err)
		return
	}

	if err := h.container.Replace(r.Context(), doc); err != nil {
		log.Printf("decision persist failed for %s on entry %s: %v", user.Username, id, err)
		respondJSON(w, http.StatusBadGateway, map[string]interface{}{
			"error": "failed to persist shared document",
			"entry": entry,
		})
		return
	}
	respondJSON(w, http.StatusOK, entry)
}
