package user

type Permission string

const (
	PermissionAttendanceViewAll Permission = "attendance.view_all"
	PermissionAttendanceApprove Permission = "attendance.approve"
	PermissionAttendanceJustify Permission = "attendance.justify"
	PermissionAttendanceDelete  Permission = "attendance.delete"

	PermissionEmployeeViewAll Permission = "employee.view_all"
	PermissionEmployeeManage  Permission = "employee.manage"

	PermissionSettingsView   Permission = "settings.view"
	PermissionSettingsManage Permission = "settings.manage"

	PermissionPayrollView  Permission = "payroll.view"
	PermissionPaymentsView Permission = "payments.view"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionAttendanceViewAll,
		PermissionAttendanceApprove,
		PermissionAttendanceJustify,
		PermissionAttendanceDelete,
		PermissionEmployeeViewAll,
		PermissionEmployeeManage,
		PermissionSettingsView,
		PermissionSettingsManage,
		PermissionPayrollView,
		PermissionPaymentsView,
	},
	RoleReviewer: {
		PermissionAttendanceViewAll,
		PermissionAttendanceApprove,
		PermissionEmployeeViewAll,
		PermissionSettingsView,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	for _, p := range RolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}
