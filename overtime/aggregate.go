package overtime

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"mesai/models"
)

// Aggregation is pure and stateless over a snapshot of the shared record
// collection; every view recomputes its derived numbers on read. Sums use
// decimals so a long run of 2-decimal durations never accumulates
// floating-point noise.

// Roster returns the users whose manager reference equals the team lead's
// username.
func Roster(users []models.User, lead string) []models.User {
	var out []models.User
	for _, u := range users {
		if u.Manager == lead {
			out = append(out, u)
		}
	}
	return out
}

// VisibleToLead filters the collection down to entries submitted by the
// given roster usernames.
func VisibleToLead(records []models.OvertimeEntry, roster []string) []models.OvertimeEntry {
	members := make(map[string]bool, len(roster))
	for _, r := range roster {
		members[r] = true
	}
	var out []models.OvertimeEntry
	for _, e := range records {
		if members[e.Username] {
			out = append(out, e)
		}
	}
	return out
}

// EntriesOf returns the entries submitted by one user.
func EntriesOf(records []models.OvertimeEntry, username string) []models.OvertimeEntry {
	var out []models.OvertimeEntry
	for _, e := range records {
		if e.SubmittedBy(username) {
			out = append(out, e)
		}
	}
	return out
}

// ApprovedHours sums the duration of all approved entries in the slice.
func ApprovedHours(records []models.OvertimeEntry) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range records {
		if e.Status == models.StatusApproved {
			sum = sum.Add(decimal.NewFromFloat(EntryHours(e.Start, e.End)))
		}
	}
	return sum
}

// TeamStats is the team-lead dashboard summary.
type TeamStats struct {
	RosterSize    int
	PendingCount  int
	ApprovedHours decimal.Decimal
}

func TeamStatsFor(records []models.OvertimeEntry, roster []models.User) TeamStats {
	names := make([]string, len(roster))
	for i, u := range roster {
		names[i] = u.Username
	}
	visible := VisibleToLead(records, names)

	pending := 0
	for _, e := range visible {
		if e.IsPending() {
			pending++
		}
	}
	return TeamStats{
		RosterSize:    len(roster),
		PendingCount:  pending,
		ApprovedHours: ApprovedHours(visible),
	}
}

// AdminStats aggregates the entire collection for the reporting console.
type AdminStats struct {
	TotalHours    decimal.Decimal   // every status
	ApprovedHours decimal.Decimal
	PendingCount  int
	Cost          decimal.Decimal   // sum over approved of duration x multiplier
	Departments   []DepartmentHours // approved hours per department, descending
}

type DepartmentHours struct {
	Department string
	Hours      decimal.Decimal
}

func AdminStatsFor(records []models.OvertimeEntry, users []models.User, fallbackDept string) AdminStats {
	stats := AdminStats{
		TotalHours:    decimal.Zero,
		ApprovedHours: decimal.Zero,
		Cost:          decimal.Zero,
	}
	byDept := map[string]decimal.Decimal{}

	for _, e := range records {
		hours := decimal.NewFromFloat(EntryHours(e.Start, e.End))
		stats.TotalHours = stats.TotalHours.Add(hours)
		switch e.Status {
		case models.StatusApproved:
			stats.ApprovedHours = stats.ApprovedHours.Add(hours)
			stats.Cost = stats.Cost.Add(hours.Mul(decimal.NewFromFloat(e.Multiplier)))
			dept := ResolveDepartment(users, e.Username, fallbackDept)
			byDept[dept] = byDept[dept].Add(hours)
		case models.StatusPending:
			stats.PendingCount++
		}
	}

	for dept, hours := range byDept {
		stats.Departments = append(stats.Departments, DepartmentHours{Department: dept, Hours: hours})
	}
	sort.Slice(stats.Departments, func(i, j int) bool {
		a, b := stats.Departments[i], stats.Departments[j]
		if !a.Hours.Equal(b.Hours) {
			return a.Hours.GreaterThan(b.Hours)
		}
		return a.Department < b.Department
	})
	return stats
}

// ResolveDepartment looks up the submitter's department at read time. A
// submitter missing from the user collection lands in the fallback bucket.
func ResolveDepartment(users []models.User, username, fallback string) string {
	for _, u := range users {
		if u.Username == username {
			if u.Department != "" {
				return u.Department
			}
			return fallback
		}
	}
	return fallback
}

// SubmitterHours is one leaderboard row.
type SubmitterHours struct {
	Username string
	Name     string
	Hours    decimal.Decimal
}

// TopSubmitters ranks submitters by approved hours, descending, keeping the
// first n. The display name is taken from their most recent entry.
func TopSubmitters(records []models.OvertimeEntry, n int) []SubmitterHours {
	totals := map[string]decimal.Decimal{}
	names := map[string]string{}
	for _, e := range records {
		if e.Status != models.StatusApproved {
			continue
		}
		totals[e.Username] = totals[e.Username].Add(decimal.NewFromFloat(EntryHours(e.Start, e.End)))
		names[e.Username] = e.Name
	}

	out := make([]SubmitterHours, 0, len(totals))
	for username, hours := range totals {
		out = append(out, SubmitterHours{Username: username, Name: names[username], Hours: hours})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Hours.Equal(out[j].Hours) {
			return out[i].Hours.GreaterThan(out[j].Hours)
		}
		return out[i].Username < out[j].Username
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// RecentActivity orders the collection by submission timestamp, most recent
// first, keeping the first n. Unparseable timestamps sort last.
func RecentActivity(records []models.OvertimeEntry, n int) []models.OvertimeEntry {
	out := make([]models.OvertimeEntry, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		ti, okI := parseSubmittedAt(out[i].SubmittedAt)
		tj, okJ := parseSubmittedAt(out[j].SubmittedAt)
		if okI != okJ {
			return okI
		}
		return ti.After(tj)
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

func parseSubmittedAt(s string) (time.Time, bool) {
	t, err := time.Parse(SubmittedAtLayout, s)
	return t, err == nil
}

// RecordFilter narrows the admin record view. Empty fields match
// everything; Text matches case-insensitively against the submitter's
// display name and the justification.
type RecordFilter struct {
	Text       string
	Period     string
	Status     models.Status
	Department string
}

func (f RecordFilter) Apply(records []models.OvertimeEntry, users []models.User, fallbackDept string) []models.OvertimeEntry {
	text := strings.ToLower(f.Text)
	var out []models.OvertimeEntry
	for _, e := range records {
		if text != "" &&
			!strings.Contains(strings.ToLower(e.Name), text) &&
			!strings.Contains(strings.ToLower(e.Reason), text) {
			continue
		}
		if f.Period != "" && e.Period != f.Period {
			continue
		}
		if f.Status != "" && e.Status != f.Status {
			continue
		}
		if f.Department != "" && ResolveDepartment(users, e.Username, fallbackDept) != f.Department {
			continue
		}
		out = append(out, e)
	}
	return out
}
