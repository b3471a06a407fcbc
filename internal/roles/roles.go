// Package roles encodes the platform's role hierarchy and decides who may
// moderate whom.
package roles

// Role is a user's privilege level as stored on the user record.
type Role int

const (
	Member     Role = 0
	Admin      Role = 1
	SuperAdmin Role = 2
)

func (r Role) String() string {
	switch r {
	case Member:
		return "member"
	case Admin:
		return "admin"
	case SuperAdmin:
		return "superadmin"
	default:
		return "unknown"
	}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == Member || r == Admin || r == SuperAdmin
}

// IsOperator reports whether r may resolve reports and issue penalties.
func IsOperator(r Role) bool {
	return r == Admin || r == SuperAdmin
}

// CanActOn reports whether a user holding actor may take a moderation action
// against a user holding target. Admins act on members only; superadmins act
// on members and admins but never on another superadmin. Unknown roles are
// always denied. Self-action is the caller's responsibility since it needs
// the user ids, not the roles.
func CanActOn(actor, target Role) bool {
	if !actor.Valid() || !target.Valid() {
		return false
	}
	switch actor {
	case Admin:
		return target == Member
	case SuperAdmin:
		return target == Member || target == Admin
	default:
		return false
	}
}
