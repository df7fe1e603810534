package domain

// Role is the coarse permission level attached to a session.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStudent Role = "student"
)

// Session describes the caller of a request. The zero value is an anonymous caller.
type Session struct {
	Subject string
	Email   string
	Name    string
	Role    Role
}

// Authenticated reports whether the session belongs to a signed-in user.
func (s Session) Authenticated() bool { return s.Email != "" }

// IsAdmin reports whether the session may mutate the schedule.
func (s Session) IsAdmin() bool { return s.Authenticated() && s.Role == RoleAdmin }
