package models

// Platform roles carried in the "role" token claim. The broadcast server
// gates privileged message kinds on RoleAdmin; the remaining roles exist
// for role-room addressing only.
const (
	RoleAdmin        = "admin"
	RolePsychologist = "psychologist"
	RoleClient       = "client"
)

// Identity is the authenticated principal bound to a realtime connection.
// A connection without an Identity is anonymous and belongs to the public
// room only.
type Identity struct {
	// UserID is the platform user identifier from the token subject claim.
	UserID string `json:"user_id"`

	// Role is the platform role from the token role claim.
	Role string `json:"role"`
}

// IsAdmin reports whether the identity holds the elevated platform role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
