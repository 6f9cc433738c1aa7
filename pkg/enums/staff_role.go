package enums

import "fmt"

// StaffRole represents a back-office permissions role.
type StaffRole string

const (
	StaffRoleSuperAdmin StaffRole = "super_admin"
	StaffRoleAdmin      StaffRole = "admin"
	StaffRoleStaff      StaffRole = "staff"
)

var validStaffRoles = []StaffRole{
	StaffRoleSuperAdmin,
	StaffRoleAdmin,
	StaffRoleStaff,
}

// String implements fmt.Stringer.
func (r StaffRole) String() string {
	return string(r)
}

// IsValid reports whether the value is a known StaffRole.
func (r StaffRole) IsValid() bool {
	for _, candidate := range validStaffRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the role grants access to admin-only routes.
func (r StaffRole) IsAdmin() bool {
	return r == StaffRoleAdmin || r == StaffRoleSuperAdmin
}

// ParseStaffRole converts raw input into a StaffRole.
func ParseStaffRole(value string) (StaffRole, error) {
	for _, candidate := range validStaffRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid staff role %q", value)
}
