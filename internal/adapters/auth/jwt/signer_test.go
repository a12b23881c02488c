package jwt

import (
	"context"
	"testing"
	"time"

	"pet-adoption/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSigner(t *testing.T, secret string) *Signer {
	t.Helper()
	s, err := NewSigner(secret, "pet-adoption", time.Hour)
	require.NoError(t, err)
	return s
}

func TestSigner_IssueThenVerify(t *testing.T) {
	s := newTestSigner(t, "secret")

	tok, err := s.Issue(context.Background(), "user-1")
	require.NoError(t, err)

	c, err := s.Verify(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", c.UserID)
	assert.False(t, c.ExpiresAt.IsZero())
}

func TestSigner_RejectsOtherSecret(t *testing.T) {
	tok, err := newTestSigner(t, "secret-a").Issue(context.Background(), "user-1")
	require.NoError(t, err)

	_, err = newTestSigner(t, "secret-b").Verify(context.Background(), tok)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestSigner_RejectsExpired(t *testing.T) {
	s := newTestSigner(t, "secret")
	s.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	tok, err := s.Issue(context.Background(), "user-1")
	require.NoError(t, err)

	s.now = time.Now
	_, err = s.Verify(context.Background(), tok)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestSigner_RejectsOtherAlgorithmAndGarbage(t *testing.T) {
	s := newTestSigner(t, "secret")

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"user_id": "user-1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for _, tok := range []string{none, "not-a-token", "  "} {
		_, err := s.Verify(context.Background(), tok)
		assert.ErrorIs(t, err, auth.ErrInvalidToken, tok)
	}
}

func TestSigner_RejectsMissingUserID(t *testing.T) {
	s := newTestSigner(t, "secret")
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss": "pet-adoption",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = s.Verify(context.Background(), tok)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestNewSigner_EmptySecret(t *testing.T) {
	_, err := NewSigner(" ", "x", time.Hour)
	assert.ErrorIs(t, err, ErrEmptySecret)
}
