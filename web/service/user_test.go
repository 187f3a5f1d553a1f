package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultUsersSeeded(t *testing.T) {
	setup()
	defer teardown()

	userService := UserService{}

	admin := userService.CheckUser("admin", "admin")
	require.NotNil(t, admin)
	assert.True(t, admin.IsAdmin)

	user := userService.CheckUser("user", "123")
	require.NotNil(t, user)
	assert.False(t, user.IsAdmin)
}

func TestCheckUserRejectsBadCredentials(t *testing.T) {
	setup()
	defer teardown()

	userService := UserService{}

	assert.Nil(t, userService.CheckUser("admin", "wrong"))
	assert.Nil(t, userService.CheckUser("nobody", "admin"))
}

func TestCreateUser(t *testing.T) {
	setup()
	defer teardown()

	userService := UserService{}

	alice, err := userService.CreateUser("alice", "secret")
	require.NoError(t, err)
	assert.False(t, alice.IsAdmin)

	got := userService.CheckUser("alice", "secret")
	require.NotNil(t, got)
	assert.Equal(t, "alice", got.Username)
}

func TestCreateUserDuplicate(t *testing.T) {
	setup()
	defer teardown()

	userService := UserService{}

	// "admin" is seeded, so re-registering it must fail and leave the
	// record untouched.
	_, err := userService.CreateUser("admin", "x")
	assert.ErrorIs(t, err, ErrUserExists)

	admin := userService.CheckUser("admin", "admin")
	require.NotNil(t, admin)
	assert.True(t, admin.IsAdmin)
}

func TestCreateUserEmptyUsername(t *testing.T) {
	setup()
	defer teardown()

	userService := UserService{}

	_, err := userService.CreateUser("   ", "pw")
	assert.ErrorIs(t, err, ErrEmptyUsername)
}

func TestUsernamesAreCaseSensitive(t *testing.T) {
	setup()
	defer teardown()

	userService := UserService{}

	_, err := userService.CreateUser("Alice", "one")
	require.NoError(t, err)
	_, err = userService.CreateUser("alice", "two")
	require.NoError(t, err)

	assert.NotNil(t, userService.CheckUser("Alice", "one"))
	assert.NotNil(t, userService.CheckUser("alice", "two"))
	assert.Nil(t, userService.CheckUser("ALICE", "one"))
}

func TestOnlyAdminUsernameGetsAdminRole(t *testing.T) {
	setup()
	defer teardown()

	userService := UserService{}

	user, err := userService.CreateUser("moderator", "pw")
	require.NoError(t, err)
	assert.False(t, user.IsAdmin)
}
