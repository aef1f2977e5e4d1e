package models

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleTeamLead Role = "team_lead"
	RoleEmployee Role = "employee"
)

// User is one account in the shared document. Username is the join key
// everywhere: entries reference their submitter by username and employees
// reference their team lead by username. Both references are weak; deleting
// a user never cascades into entries.
type User struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	Name       string `json:"name"`
	Role       Role   `json:"role"`
	Department string `json:"department,omitempty"`
	// Manager holds the username of the supervising team lead. Only
	// meaningful for employees; cleared on every write for other roles.
	Manager string `json:"manager,omitempty"`
}

func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Username
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsTeamLead() bool {
	return u.Role == RoleTeamLead
}

func (u *User) IsEmployee() bool {
	return u.Role == RoleEmployee
}

// Unassigned reports the data-quality state of an employee without a team
// lead. Such a user cannot be supervised for approval; the admin surface
// warns about it but never auto-corrects it.
func (u *User) Unassigned() bool {
	return u.IsEmployee() && u.Manager == ""
}

// Supervises reports whether other is a direct report of u.
func (u *User) Supervises(other *User) bool {
	return u.IsTeamLead() && other.Manager == u.Username
}

func (u *User) CanManageUsers() bool {
	return u.IsAdmin()
}

func (u *User) CanExport() bool {
	return u.IsAdmin()
}

func (u *User) CanViewAllEntries() bool {
	return u.IsAdmin()
}

// Normalize enforces the user-write invariant that a team lead or admin
// never carries a manager reference.
func (u *User) Normalize() {
	if !u.IsEmployee() {
		u.Manager = ""
	}
}
