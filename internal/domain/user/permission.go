package user

// Permission is a named capability checked by route middleware.
type Permission string

const (
	// PermissionViewAllRecords allows reading every employee's attendance.
	PermissionViewAllRecords Permission = "attendance:view_all"
	// PermissionManageSettings allows updating office location and shift policy.
	PermissionManageSettings Permission = "settings:manage"
)

var rolePermissions = map[Role][]Permission{
	RoleKaryawan: {},
	RoleKepala:   {PermissionViewAllRecords},
	RoleAdmin:    {PermissionViewAllRecords, PermissionManageSettings},
}

// HasPermission reports whether role carries permission.
func HasPermission(role Role, permission Permission) bool {
	for _, p := range rolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}
