package constants

import "fmt"

// Role names (stored in roles.role_name)
const (
	RoleAdmin      = "admin"
	RoleDispatcher = "dispatcher"
	RoleTeacher    = "teacher"
	RoleStudent    = "student"
)

// Role error message templates
const (
	ErrOnlyAdminsCanAccess      = "only admin may access %s"
	ErrOnlyDispatchersCanAccess = "only admin or dispatcher may access %s"
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorDispatcher(feature string) string {
	return fmt.Sprintf(ErrOnlyDispatchersCanAccess, feature)
}

// ==========================
// Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleAdmin,
		RoleDispatcher,
		RoleTeacher,
		RoleStudent,
	}

	// may change the schedule and master data
	DispatcherAndAbove = []string{
		RoleAdmin,
		RoleDispatcher,
	}

	AdminOnly = []string{
		RoleAdmin,
	}
)

// IsKnownRole is used when seeding and assigning roles.
func IsKnownRole(name string) bool {
	for _, r := range AllRoles {
		if r == name {
			return true
		}
	}
	return false
}
