package model

// Permission is the effective access level a user has on a list.
type Permission string

// Permission levels, from weakest to strongest.
const (
	PermissionNone  Permission = "none"
	PermissionView  Permission = "view"
	PermissionEdit  Permission = "edit"
	PermissionOwner Permission = "owner"
)

// AtLeast checks if the permission meets or exceeds the minimum required level.
func (p Permission) AtLeast(minimum Permission) bool {
	levels := map[Permission]int{
		PermissionView:  1,
		PermissionEdit:  2,
		PermissionOwner: 3,
	}
	level, ok := levels[p]
	if !ok {
		return false
	}
	return level >= levels[minimum]
}

// ValidSharePermission checks if a value is grantable through a share.
// Only view and edit can be granted; owner is never a share level.
func ValidSharePermission(p Permission) bool {
	return p == PermissionView || p == PermissionEdit
}
