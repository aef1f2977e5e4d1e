package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"mesai/config"
	"mesai/identity"
	"mesai/middleware"
	"mesai/overtime"
	"mesai/state"
	"mesai/store"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := &config.Config{JWTSecret: "test-secret", JWTExpiration: time.Hour}
	middleware.SetJWTSecret(cfg.JWTSecret)
	cal := config.DefaultCalendar()

	hash, err := bcrypt.GenerateFromPassword([]byte("pass"), bcrypt.MinCost)
	require.NoError(t, err)
	var accounts []identity.Account
	for _, u := range store.SeedDocument().Users {
		accounts = append(accounts, identity.Account{Username: u.Username, Name: u.Name, PasswordHash: string(hash)})
	}
	accounts = append(accounts, identity.Account{Username: "new.hire@example.com", Name: "New Hire", PasswordHash: string(hash)})
	provider, err := identity.NewStaticProvider(accounts)
	require.NoError(t, err)

	container, err := state.Open(context.Background(), store.NewMemoryStore(store.SeedDocument()))
	require.NoError(t, err)

	service := overtime.NewService(overtime.NewClassifier(cal.Holidays, time.Weekday(cal.WeekendDay)))

	srv := httptest.NewServer(NewRouter(Deps{
		Config:    cfg,
		Calendar:  cal,
		Service:   service,
		Container: container,
		Provider:  provider,
	}))
	t.Cleanup(srv.Close)
	return srv
}

func login(t *testing.T, srv *httptest.Server, username string) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{Jar: jar}

	resp, err := client.Post(srv.URL+"/api/login", "application/json",
		strings.NewReader(fmt.Sprintf(`{"username":%q,"password":"pass"}`, username)))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return client
}

func doJSON(t *testing.T, client *http.Client, method, url string, body interface{}, out interface{}) int {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/login", "application/json",
		strings.NewReader(`{"username":"mehmet.user@example.com","password":"wrong"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestUnauthenticatedRequestsAreRefused(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/entries")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLoginAutoProvisionsUnknownIdentity(t *testing.T) {
	srv := newTestServer(t)
	client := login(t, srv, "new.hire@example.com")

	var session struct {
		User struct {
			Username   string `json:"username"`
			Role       string `json:"role"`
			Department string `json:"department"`
		} `json:"user"`
		Periods []string `json:"periods"`
	}
	status := doJSON(t, client, http.MethodGet, srv.URL+"/api/session", nil, &session)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "new.hire@example.com", session.User.Username)
	assert.Equal(t, "employee", session.User.Role)
	assert.Equal(t, "General", session.User.Department)
	assert.Len(t, session.Periods, 12)
}

func TestSubmitApproveFlow(t *testing.T) {
	srv := newTestServer(t)
	employee := login(t, srv, "mehmet.user@example.com")

	// Stage and commit one entry.
	entryReq := map[string]string{
		"period": "2024-03", "date": "2024-03-11",
		"start": "18:00", "end": "20:00", "reason": "release support",
	}
	var staged struct {
		ID     string  `json:"id"`
		Status string  `json:"status"`
		Mult   float64 `json:"multiplier"`
	}
	status := doJSON(t, employee, http.MethodPost, srv.URL+"/api/staging", entryReq, &staged)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "pending", staged.Status)
	assert.Equal(t, 1.0, staged.Mult)

	var committed struct {
		Committed int `json:"committed"`
	}
	status = doJSON(t, employee, http.MethodPost, srv.URL+"/api/staging/commit", nil, &committed)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, committed.Committed)

	// The team lead sees it pending and approves it.
	leadClient := login(t, srv, "ali.lead@example.com")
	var team struct {
		Pending []struct {
			ID string `json:"id"`
		} `json:"pending"`
		Stats struct {
			RosterSize   int `json:"roster_size"`
			PendingCount int `json:"pending_count"`
		} `json:"stats"`
	}
	status = doJSON(t, leadClient, http.MethodGet, srv.URL+"/api/team", nil, &team)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, team.Pending, 1)
	assert.Equal(t, staged.ID, team.Pending[0].ID)
	assert.Equal(t, 1, team.Stats.RosterSize)
	assert.Equal(t, 1, team.Stats.PendingCount)

	var decided struct {
		Status string `json:"status"`
	}
	status = doJSON(t, leadClient, http.MethodPost, srv.URL+"/api/team/entries/"+staged.ID+"/approve", nil, &decided)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "approved", decided.Status)

	// The submitter sees the approved entry and its hours.
	var history struct {
		Entries []struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"entries"`
		Total string `json:"total_approved_hours"`
	}
	status = doJSON(t, employee, http.MethodGet, srv.URL+"/api/entries", nil, &history)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, history.Entries, 1)
	assert.Equal(t, "approved", history.Entries[0].Status)
	assert.Equal(t, "2", history.Total)
}

func TestRejectRequiresReason(t *testing.T) {
	srv := newTestServer(t)
	employee := login(t, srv, "mehmet.user@example.com")

	entryReq := map[string]string{
		"period": "2024-03", "date": "2024-03-12",
		"start": "18:00", "end": "19:00", "reason": "support",
	}
	var staged struct {
		ID string `json:"id"`
	}
	require.Equal(t, http.StatusCreated,
		doJSON(t, employee, http.MethodPost, srv.URL+"/api/staging", entryReq, &staged))
	require.Equal(t, http.StatusOK,
		doJSON(t, employee, http.MethodPost, srv.URL+"/api/staging/commit", nil, nil))

	leadClient := login(t, srv, "ali.lead@example.com")
	url := srv.URL + "/api/team/entries/" + staged.ID + "/reject"

	assert.Equal(t, http.StatusBadRequest,
		doJSON(t, leadClient, http.MethodPost, url, map[string]string{"reason": "  "}, nil))

	var rejected struct {
		Status string `json:"status"`
		Reason string `json:"rejection_reason"`
	}
	require.Equal(t, http.StatusOK,
		doJSON(t, leadClient, http.MethodPost, url, map[string]string{"reason": "not agreed"}, &rejected))
	assert.Equal(t, "rejected", rejected.Status)
	assert.Equal(t, "not agreed", rejected.Reason)
}

func TestStagingRejectsUnknownPeriod(t *testing.T) {
	srv := newTestServer(t)
	employee := login(t, srv, "mehmet.user@example.com")

	entryReq := map[string]string{
		"period": "2031-01", "date": "2024-03-11",
		"start": "18:00", "end": "20:00", "reason": "support",
	}
	var failure struct {
		Code string `json:"code"`
	}
	status := doJSON(t, employee, http.MethodPost, srv.URL+"/api/staging", entryReq, &failure)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, overtime.CodeInvalidPeriod, failure.Code)
}

func TestRoleBoundaries(t *testing.T) {
	srv := newTestServer(t)

	employee := login(t, srv, "mehmet.user@example.com")
	assert.Equal(t, http.StatusForbidden,
		doJSON(t, employee, http.MethodGet, srv.URL+"/api/team", nil, nil))
	assert.Equal(t, http.StatusForbidden,
		doJSON(t, employee, http.MethodGet, srv.URL+"/api/admin/users", nil, nil))

	leadClient := login(t, srv, "ali.lead@example.com")
	assert.Equal(t, http.StatusForbidden,
		doJSON(t, leadClient, http.MethodGet, srv.URL+"/api/admin/users", nil, nil))
}

func TestAdminUserManagement(t *testing.T) {
	srv := newTestServer(t)
	admin := login(t, srv, "ahmet.admin@example.com")

	var created struct {
		ID      string `json:"id"`
		Manager string `json:"manager"`
	}
	status := doJSON(t, admin, http.MethodPost, srv.URL+"/api/admin/users", map[string]string{
		"username": "can.user@example.com", "name": "Can Oz",
		"role": "employee", "department": "Engineering", "manager": "ali.lead@example.com",
	}, &created)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "ali.lead@example.com", created.Manager)

	// Duplicate usernames are refused.
	assert.Equal(t, http.StatusConflict,
		doJSON(t, admin, http.MethodPost, srv.URL+"/api/admin/users", map[string]string{
			"username": "can.user@example.com", "role": "employee",
		}, nil))

	// Promoting to team lead clears the manager reference.
	var updated struct {
		Role    string `json:"role"`
		Manager string `json:"manager"`
	}
	status = doJSON(t, admin, http.MethodPut, srv.URL+"/api/admin/users/"+created.ID, map[string]string{
		"name": "Can Oz", "role": "team_lead",
		"department": "Engineering", "manager": "ali.lead@example.com",
	}, &updated)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "team_lead", updated.Role)
	assert.Empty(t, updated.Manager)

	assert.Equal(t, http.StatusOK,
		doJSON(t, admin, http.MethodDelete, srv.URL+"/api/admin/users/"+created.ID, nil, nil))
	assert.Equal(t, http.StatusNotFound,
		doJSON(t, admin, http.MethodDelete, srv.URL+"/api/admin/users/"+created.ID, nil, nil))
}

func TestAdminDeletingUserKeepsEntries(t *testing.T) {
	srv := newTestServer(t)
	employee := login(t, srv, "mehmet.user@example.com")

	entryReq := map[string]string{
		"period": "2024-03", "date": "2024-03-11",
		"start": "18:00", "end": "20:00", "reason": "support",
	}
	require.Equal(t, http.StatusCreated,
		doJSON(t, employee, http.MethodPost, srv.URL+"/api/staging", entryReq, nil))
	require.Equal(t, http.StatusOK,
		doJSON(t, employee, http.MethodPost, srv.URL+"/api/staging/commit", nil, nil))

	admin := login(t, srv, "ahmet.admin@example.com")
	var users struct {
		Users []struct {
			ID       string `json:"id"`
			Username string `json:"username"`
		} `json:"users"`
	}
	require.Equal(t, http.StatusOK,
		doJSON(t, admin, http.MethodGet, srv.URL+"/api/admin/users", nil, &users))
	var mehmetID string
	for _, u := range users.Users {
		if u.Username == "mehmet.user@example.com" {
			mehmetID = u.ID
		}
	}
	require.NotEmpty(t, mehmetID)
	require.Equal(t, http.StatusOK,
		doJSON(t, admin, http.MethodDelete, srv.URL+"/api/admin/users/"+mehmetID, nil, nil))

	var records struct {
		Records []struct {
			Username string `json:"username"`
		} `json:"records"`
		Warnings []struct {
			Code     string `json:"code"`
			Username string `json:"username"`
		} `json:"warnings"`
	}
	require.Equal(t, http.StatusOK,
		doJSON(t, admin, http.MethodGet, srv.URL+"/api/admin/records", nil, &records))
	require.Len(t, records.Records, 1)
	assert.Equal(t, "mehmet.user@example.com", records.Records[0].Username)

	found := false
	for _, warn := range records.Warnings {
		if warn.Code == overtime.WarnOrphanedSubmitter && warn.Username == "mehmet.user@example.com" {
			found = true
		}
	}
	assert.True(t, found, "orphaned submitter warning expected")
}

func TestAdminExportCSV(t *testing.T) {
	srv := newTestServer(t)
	admin := login(t, srv, "ahmet.admin@example.com")

	resp, err := admin.Get(srv.URL + "/api/admin/export/csv")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")
}
