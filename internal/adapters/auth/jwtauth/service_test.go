package jwtauth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guidedog-records/internal/adapters/auth/tokenstore"
	"guidedog-records/internal/ports/auth"
)

func newService(t *testing.T) *Service {
	t.Helper()
	s, err := New(Config{Secret: "test-secret", TTL: time.Hour, Issuer: "guidedog"}, tokenstore.NewMemory())
	require.NoError(t, err)
	return s
}

func TestIssueAndVerify(t *testing.T) {
	s := newService(t)

	token, exp, err := s.Issue(auth.Claims{UserID: "u-1", Role: "trainer", Name: "Ana"})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := s.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "trainer", claims.Role)
	assert.Equal(t, "Ana", claims.Name)
	assert.NotEmpty(t, claims.TokenID)
}

func TestVerify_Rejects(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	_, err := s.Verify(ctx, "")
	assert.ErrorIs(t, err, ErrTokenEmpty)

	_, err = s.Verify(ctx, "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)

	other, err := New(Config{Secret: "other"}, nil)
	require.NoError(t, err)
	token, _, err := other.Issue(auth.Claims{UserID: "u-1"})
	require.NoError(t, err)
	_, err = s.Verify(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// firmado con "none"
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, &tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "u-1"},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = s.Verify(ctx, unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Expired(t *testing.T) {
	s := newService(t)
	s.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, _, err := s.Issue(auth.Claims{UserID: "u-1"})
	require.NoError(t, err)

	_, err = s.Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRevoke(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	token, _, err := s.Issue(auth.Claims{UserID: "u-1", Role: "admin"})
	require.NoError(t, err)

	require.NoError(t, s.Revoke(ctx, token))

	_, err = s.Verify(ctx, token)
	assert.ErrorIs(t, err, ErrRevoked)

	// otro token del mismo usuario sigue válido
	token2, _, err := s.Issue(auth.Claims{UserID: "u-1", Role: "admin"})
	require.NoError(t, err)
	_, err = s.Verify(ctx, token2)
	assert.NoError(t, err)
}

func TestNew_RequiresSecret(t *testing.T) {
	_, err := New(Config{Secret: " "}, nil)
	assert.ErrorIs(t, err, ErrNotConfigured)
}
