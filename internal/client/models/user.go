// Package models defines the wire-level records the campus events backend
// returns. Records are immutable snapshots: each successful fetch replaces
// the previous value wholesale, nothing mutates them in place.
package models

// Role values as issued by the backend.
const (
	RoleAdmin       = "admin"
	RoleOrganizer   = "organizer"
	RoleParticipant = "participant"
)

// User is the authenticated user's profile snapshot.
type User struct {
	ID          string   `json:"_id"`
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	Email       string   `json:"email"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions,omitempty"`
	Department  string   `json:"department,omitempty"`
	StudentID   string   `json:"studentId,omitempty"`
	Phone       string   `json:"phone,omitempty"`
	Avatar      string   `json:"avatar,omitempty"`
	IsActive    bool     `json:"isActive"`
	CreatedAt   string   `json:"createdAt,omitempty"`
}

// FullName joins first and last name for display.
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
