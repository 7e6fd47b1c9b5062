package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zhima-Mochi/plantbay/internal/domain/account"
)

func newSessions(t *testing.T, ttl time.Duration) *Sessions {
	t.Helper()
	s, err := NewSessions("test-secret", ttl)
	require.NoError(t, err)
	return s
}

func TestSessions_IssueVerify(t *testing.T) {
	s := newSessions(t, 0)
	token, exp, err := s.Issue(Identity{Email: "ann@example.com"})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(DefaultTTL), exp, time.Minute)

	p, err := s.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", p.Email)
}

func TestSessions_RejectsBadTokens(t *testing.T) {
	s := newSessions(t, time.Hour)

	_, _, err := s.Issue(Identity{})
	assert.ErrorIs(t, err, ErrEmailRequired)

	_, err = s.Verify("")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = s.Verify("not.a.token")
	assert.ErrorIs(t, err, ErrUnauthorized)

	other := newSessions(t, time.Hour)
	other.secret = []byte("different")
	forged, _, err := other.Issue(Identity{Email: "ann@example.com"})
	require.NoError(t, err)
	_, err = s.Verify(forged)
	assert.ErrorIs(t, err, ErrUnauthorized)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, claims{Email: "ann@example.com"})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = s.Verify(unsigned)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestSessions_Expired(t *testing.T) {
	s := newSessions(t, time.Hour)
	token, _, err := s.Issue(Identity{Email: "ann@example.com"})
	require.NoError(t, err)

	s.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = s.Verify(token)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestNewSessions_RequiresSecret(t *testing.T) {
	_, err := NewSessions("", time.Hour)
	assert.ErrorIs(t, err, ErrNoSecret)
}

type roles map[string]account.Role

func (r roles) GetRole(_ context.Context, email string) (account.Role, error) {
	if email == "broken@example.com" {
		return "", errors.New("store down")
	}
	role, ok := r[email]
	if !ok {
		return "", account.ErrNotFound
	}
	return role, nil
}

func TestAuthorize(t *testing.T) {
	resolver := roles{"sam@example.com": account.RoleSeller, "ann@example.com": account.RoleCustomer}
	as := func(email string) context.Context {
		return WithPrincipal(context.Background(), &Principal{Email: email})
	}
	sellerOnly := []Capability{Session(), Role(resolver, account.RoleSeller)}

	assert.ErrorIs(t, Authorize(context.Background(), sellerOnly...), ErrUnauthorized)
	assert.NoError(t, Authorize(as("sam@example.com"), sellerOnly...))
	err := Authorize(as("ann@example.com"), sellerOnly...)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Equal(t, "forbidden access! Action only Seller", err.Error())
	assert.ErrorIs(t, Authorize(as("ghost@example.com"), sellerOnly...), ErrForbidden)

	err = Authorize(as("broken@example.com"), sellerOnly...)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrForbidden)

	assert.NoError(t, Authorize(as("ann@example.com"), Session()))
}
