package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasPermission(t *testing.T) {
	assert.True(t, HasPermission(RoleAdmin, PermissionAttendanceDelete))
	assert.True(t, HasPermission(RoleReviewer, PermissionAttendanceApprove))
	assert.False(t, HasPermission(RoleReviewer, PermissionAttendanceDelete))
	assert.False(t, HasPermission(RoleReviewer, PermissionSettingsManage))
	assert.False(t, HasPermission(Role("ghost"), PermissionSettingsView))
}

func TestUserRoles(t *testing.T) {
	admin := User{Role: RoleAdmin}
	reviewer := User{Role: RoleReviewer}

	assert.True(t, admin.IsAdmin())
	assert.True(t, admin.CanReview())
	assert.False(t, reviewer.IsAdmin())
	assert.True(t, reviewer.CanReview())
	assert.True(t, IsValidRole("reviewer"))
	assert.False(t, IsValidRole("owner"))
}
