package core

// Role identifies what a connection is allowed to do in a room.
type Role string

const (
	// RoleGM owns a room and broadcasts store data to players.
	RoleGM Role = "gm"
	// RolePlayer joins an existing room by code.
	RolePlayer Role = "player"
)

// ParseRole maps a wire role string to a Role. ok is false for anything
// outside the two recognized values; callers default to RolePlayer then.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleGM:
		return RoleGM, true
	case RolePlayer:
		return RolePlayer, true
	default:
		return RolePlayer, false
	}
}
