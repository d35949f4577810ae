package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole_ValidRanks(t *testing.T) {
	role, err := ParseRole(5)
	require.NoError(t, err)
	assert.Equal(t, RoleGuest, role)

	role, err = ParseRole(15)
	require.NoError(t, err)
	assert.Equal(t, RoleMember, role)

	role, err = ParseRole(20)
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, role)
}

func TestParseRole_UnknownRank(t *testing.T) {
	_, err := ParseRole(10)
	assert.ErrorIs(t, err, ErrUnknownRole)

	_, err = ParseRole(0)
	assert.ErrorIs(t, err, ErrUnknownRole)

	_, err = ParseRole(-1)
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestRoleFromName(t *testing.T) {
	role, err := RoleFromName("admin")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, role)

	role, err = RoleFromName(" Member ")
	require.NoError(t, err)
	assert.Equal(t, RoleMember, role)

	_, err = RoleFromName("owner")
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestRole_AtLeast(t *testing.T) {
	assert.True(t, RoleAdmin.AtLeast(RoleMember))
	assert.True(t, RoleMember.AtLeast(RoleMember))
	assert.False(t, RoleGuest.AtLeast(RoleMember))
}

func TestRole_UnmarshalJSON_RejectsUnknownRank(t *testing.T) {
	var m WorkspaceMembership
	err := json.Unmarshal([]byte(`{"id":"m1","user_id":"u1","workspace_slug":"ws1","role":42}`), &m)
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestRole_UnmarshalJSON_ValidRank(t *testing.T) {
	var m WorkspaceMembership
	err := json.Unmarshal([]byte(`{"id":"m1","user_id":"u1","workspace_slug":"ws1","role":20}`), &m)
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, m.Role)
}

func TestRole_String(t *testing.T) {
	assert.Equal(t, "admin", RoleAdmin.String())
	assert.Equal(t, "member", RoleMember.String())
	assert.Equal(t, "guest", RoleGuest.String())
	assert.Equal(t, "role(42)", Role(42).String())
}
