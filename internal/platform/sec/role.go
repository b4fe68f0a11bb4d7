// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Full system access: categories, parameters, journal.
	RoleAdmin UserRole = "admin"

	// Maintains reference dictionaries.
	RoleCurator UserRole = "curator"

	// Registers patients, researches and annotates cell images.
	RoleResearcher UserRole = "researcher"

	// Default role for freshly registered users (read-only).
	RoleMember UserRole = "member"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// Valid reports whether r is one of the known roles.
func (r UserRole) Valid() bool {
	return r.level() > 0
}

func (r UserRole) level() int {
	switch r {
	case RoleAdmin:
		return 40
	case RoleCurator:
		return 30
	case RoleResearcher:
		return 20
	case RoleMember:
		return 10
	default:
		return 0
	}
}
