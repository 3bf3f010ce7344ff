package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	user, err := NewUser("  Admin ", "supersecret", "Administrator", RoleSuperadmin)
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Username, "username normalized to lowercase")
	assert.True(t, user.Active)
	assert.NotEqual(t, "supersecret", user.PasswordHash)

	_, err = NewUser("", "supersecret", "", RoleEmployee)
	assert.Error(t, err)

	_, err = NewUser("ana", "short", "", RoleEmployee)
	assert.Error(t, err)

	_, err = NewUser("ana", "supersecret", "", Role("manager"))
	assert.Error(t, err)
}

func TestUser_CheckPassword(t *testing.T) {
	user, err := NewUser("ana", "supersecret", "Ana", RoleEmployee)
	require.NoError(t, err)

	assert.True(t, user.CheckPassword("supersecret"))
	assert.False(t, user.CheckPassword("wrong"))
}

func TestUser_ChangePassword(t *testing.T) {
	user, err := NewUser("ana", "supersecret", "Ana", RoleEmployee)
	require.NoError(t, err)

	assert.Error(t, user.ChangePassword("short"))
	require.NoError(t, user.ChangePassword("evenmoresecret"))
	assert.True(t, user.CheckPassword("evenmoresecret"))
	assert.False(t, user.CheckPassword("supersecret"))
}

func TestUser_ActivationAndRole(t *testing.T) {
	user, err := NewUser("ana", "supersecret", "Ana", RoleEmployee)
	require.NoError(t, err)

	require.NoError(t, user.ChangeRole(RoleSuperadmin))
	assert.Equal(t, RoleSuperadmin, user.Role)
	assert.Error(t, user.ChangeRole(Role("nope")))

	require.NoError(t, user.Deactivate())
	assert.Error(t, user.Deactivate())
	require.NoError(t, user.Reactivate())
	assert.Error(t, user.Reactivate())
}
