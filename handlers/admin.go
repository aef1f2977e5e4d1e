package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"mesai/config"
	"mesai/export"
	"mesai/middleware"
	"mesai/models"
	"mesai/overtime"
	"mesai/state"
)

// AdminHandler serves the management console: the full record collection
// with filters and force-edit, user administration, reports and the CSV
// export.
type AdminHandler struct {
	calendar  *config.Calendar
	service   *overtime.Service
	container *state.Container
}

func NewAdminHandler(cal *config.Calendar, service *overtime.Service, container *state.Container) *AdminHandler {
	return &AdminHandler{calendar: cal, service: service, container: container}
}

// Records lists every entry in the collection, narrowed by the q, period,
// status and department query parameters, together with data-quality
// warnings for the current snapshot.
func (h *AdminHandler) Records(w http.ResponseWriter, r *http.Request) {
	doc := h.container.Snapshot()

	filter := overtime.RecordFilter{
		Text:       r.URL.Query().Get("q"),
		Period:     r.URL.Query().Get("period"),
		Status:     models.Status(r.URL.Query().Get("status")),
		Department: r.URL.Query().Get("department"),
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"records":  filter.Apply(doc.Records, doc.Users, h.calendar.FallbackDepartment),
		"warnings": overtime.IntegrityWarnings(doc.Records, doc.Users),
	})
}

type adminEntryRequest struct {
	Period          string        `json:"period"`
	Date            string        `json:"date"`
	Start           string        `json:"start"`
	End             string        `json:"end"`
	Reason          string        `json:"reason"`
	Status          models.Status `json:"status"`
	RejectionReason string        `json:"rejection_reason"`
}

// UpdateRecord force-edits any entry, including its status. The override is
// trusted: no duration or overlap validation runs.
func (h *AdminHandler) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	id := chi.URLParam(r, "id")

	var req adminEntryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	doc := h.container.Snapshot()
	entry := findEntry(doc.Records, id)
	if entry == nil {
		respondError(w, http.StatusNotFound, "entry not found")
		return
	}

	in := overtime.AdminEntryInput{
		Period:          req.Period,
		Date:            req.Date,
		Start:           req.Start,
		End:             req.End,
		Reason:          req.Reason,
		Status:          req.Status,
		RejectionReason: req.RejectionReason,
	}
	if err := h.service.UpdateByAdmin(user, entry, in); err != nil {
		respondCoreError(w, err)
		return
	}

	if err := h.container.Replace(r.Context(), doc); err != nil {
		log.Printf("record update persist failed for %s: %v", id, err)
		respondJSON(w, http.StatusBadGateway, map[string]interface{}{
			"error": "failed to persist shared document",
			"entry": entry,
		})
		return
	}
	respondJSON(w, http.StatusOK, entry)
}

// DeleteRecord removes any entry regardless of status or submitter.
func (h *AdminHandler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	doc := h.container.Snapshot()
	if findEntry(doc.Records, id) == nil {
		respondError(w, http.StatusNotFound, "entry not found")
		return
	}

	doc.Records = removeEntry(doc.Records, id)
	if err := h.container.Replace(r.Context(), doc); err != nil {
		log.Printf("record delete persist failed for %s: %v", id, err)
		respondJSON(w, http.StatusBadGateway, map[string]string{
			"error": "failed to persist shared document",
		})
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Reports aggregates the whole collection: totals, cost, per-department
// approved hours, the top submitters leaderboard and recent activity. The
// top query parameter caps the leaderboard and activity lengths, default 5.
func (h *AdminHandler) Reports(w http.ResponseWriter, r *http.Request) {
	doc := h.container.Snapshot()

	top := 5
	if raw := r.URL.Query().Get("top"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			top = n
		}
	}

	stats := overtime.AdminStatsFor(doc.Records, doc.Users, h.calendar.FallbackDepartment)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"total_hours":    stats.TotalHours,
		"approved_hours": stats.ApprovedHours,
		"pending_count":  stats.PendingCount,
		"cost":           stats.Cost,
		"departments":    stats.Departments,
		"top_submitters": overtime.TopSubmitters(doc.Records, top),
		"recent":         overtime.RecentActivity(doc.Records, top),
	})
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	doc := h.container.Snapshot()
	respondJSON(w, http.StatusOK, map[string]interface{}{"users": doc.Users})
}

type userRequest struct {
	Username   string      `json:"username"`
	Name       string      `json:"name"`
	Role       models.Role `json:"role"`
	Department string      `json:"department"`
	Manager    string      `json:"manager"`
}

func validRole(r models.Role) bool {
	switch r {
	case models.RoleAdmin, models.RoleTeamLead, models.RoleEmployee:
		return true
	}
	return false
}

// CreateUser adds an account. Usernames are unique; the manager reference
// survives only on employees.
func (h *AdminHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Username) == "" {
		respondError(w, http.StatusBadRequest, "username is required")
		return
	}
	if !validRole(req.Role) {
		respondError(w, http.StatusBadRequest, "unknown role")
		return
	}

	doc := h.container.Snapshot()
	for _, u := range doc.Users {
		if u.Username == req.Username {
			respondError(w, http.StatusConflict, "username already exists")
			return
		}
	}

	user := models.User{
		ID:         uuid.NewString(),
		Username:   req.Username,
		Name:       req.Name,
		Role:       req.Role,
		Department: req.Department,
		Manager:    req.Manager,
	}
	user.Normalize()
	doc.Users = append(doc.Users, user)

	if err := h.container.Replace(r.Context(), doc); err != nil {
		log.Printf("user create persist failed for %s: %v", req.Username, err)
		respondJSON(w, http.StatusBadGateway, map[string]interface{}{
			"error": "failed to persist shared document",
			"user":  user,
		})
		return
	}
	respondJSON(w, http.StatusCreated, user)
}

// UpdateUser edits an account in place. The username is the join key for
// entries and rosters and stays fixed.
func (h *AdminHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req userRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !validRole(req.Role) {
		respondError(w, http.StatusBadRequest, "unknown role")
		return
	}

	doc := h.container.Snapshot()
	var user *models.User
	for i := range doc.Users {
		if doc.Users[i].ID == id {
			user = &doc.Users[i]
			break
		}
	}
	if user == nil {
		respondError(w, http.StatusNotFound, "user not found")
		return
	}

	user.Name = req.Name
	user.Role = req.Role
	user.Department = req.Department
	user.Manager = req.Manager
	user.Normalize()

	if err := h.container.Replace(r.Context(), doc); err != nil {
		log.Printf("user update persist failed for %s: %v", user.Username, err)
		respondJSON(w, http.StatusBadGateway, map[string]interface{}{
			"error": "failed to persist shared document",
			"user":  user,
		})
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// DeleteUser removes an account. Entries submitted by the user stay in the
// collection and surface as orphaned-submitter warnings.
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetUserFromContext(r.Context())
	id := chi.URLParam(r, "id")

	doc := h.container.Snapshot()
	idx := -1
	for i := range doc.Users {
		if doc.Users[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		respondError(w, http.StatusNotFound, "user not found")
		return
	}
	if doc.Users[idx].Username == actor.Username {
		respondError(w, http.StatusBadRequest, "cannot delete your own account")
		return
	}

	doc.Users = append(doc.Users[:idx], doc.Users[idx+1:]...)
	if err := h.container.Replace(r.Context(), doc); err != nil {
		log.Printf("user delete persist failed for %s: %v", id, err)
		respondJSON(w, http.StatusBadGateway, map[string]string{
			"error": "failed to persist shared document",
		})
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ExportCSV streams the full record collection as a spreadsheet download.
func (h *AdminHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	doc := h.container.Snapshot()

	filename := "overtime_records_" + time.Now().Format("2006-01-02") + ".csv"
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := export.WriteCSV(w, doc.Records); err != nil {
		log.Printf("csv export failed: %v", err)
	}
}
