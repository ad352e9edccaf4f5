package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{"", RoleStudent, false},
		{"student", RoleStudent, false},
		{" Instructor ", RoleInstructor, false},
		{"admin", "", true},
	}
	for _, tt := range tests {
		got, err := ParseRole(tt.in)
		if tt.wantErr {
			require.ErrorIs(t, err, ErrInvalidRole, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestRoleCapabilities(t *testing.T) {
	assert.True(t, RoleStudent.Can(CapProfileRead))
	assert.False(t, RoleStudent.Can(CapCoursesManage))
	assert.True(t, RoleInstructor.Can(CapCoursesManage))
	assert.False(t, Role("admin").Can(CapProfileRead))

	caps := RoleStudent.Capabilities()
	caps[0] = CapCoursesManage
	assert.False(t, RoleStudent.Can(CapCoursesManage), "capabilities must be a copy")
}

func TestIdentityOmitsSecrets(t *testing.T) {
	tok := "reset"
	u := &User{ID: "u1", Name: "Ada", Email: "ada@x.com", PasswordHash: "hash", Role: RoleInstructor, ResetToken: &tok}
	id := u.Identity()
	assert.Equal(t, "u1", id.ID)
	assert.Equal(t, "Ada", id.Name)
	assert.True(t, id.Can(CapCoursesManage))
}
