package account

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_StartsAsCustomer(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	acc, err := New("ann@example.com", Profile{Name: "Ann"}, now)
	require.NoError(t, err)
	assert.Equal(t, RoleCustomer, acc.Role)
	assert.Equal(t, StatusNone, acc.Status)
	assert.Equal(t, now.UnixMilli(), acc.Timestamp)
	assert.False(t, acc.ID.IsZero())

	_, err = New("", Profile{}, now)
	assert.ErrorIs(t, err, ErrEmailRequired)
}

func TestParseRole(t *testing.T) {
	for _, s := range []string{"customer", "seller", "admin"} {
		r, err := ParseRole(s)
		require.NoError(t, err)
		assert.Equal(t, Role(s), r)
	}

	_, err := ParseRole("owner")
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestCanRequestRoleChange(t *testing.T) {
	acc := &Account{Status: StatusNone}
	assert.True(t, acc.CanRequestRoleChange())

	acc.Status = StatusVerified
	assert.True(t, acc.CanRequestRoleChange())

	acc.Status = StatusRequested
	assert.False(t, acc.CanRequestRoleChange())
}
