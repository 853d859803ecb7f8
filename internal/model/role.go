package model

import "github.com/google/uuid"

// Role is the coarse authorization level carried in the session.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// Principal is the authenticated caller. It is built by the auth middleware
// and passed explicitly into every service call that makes an access decision.
type Principal struct {
	UserID   uuid.UUID `json:"user_id"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
	Role     Role      `json:"role"`
}

func (p Principal) IsAdmin() bool { return p.Role == RoleAdmin }

// Actor is the value written to audit columns.
func (p Principal) Actor() string {
	if p.UserID == uuid.Nil {
		return "system"
	}
	return p.UserID.String()
}

// SystemPrincipal is used by seeders and CLI tasks.
var SystemPrincipal = Principal{FullName: "system", Role: RoleAdmin}
