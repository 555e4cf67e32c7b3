// internal/adapters/out/auth/jwt_verifier_test.go
package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "customer-1",
		"exp": exp.Unix(),
	})
	s, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func TestVerifyAcceptsLiveToken(t *testing.T) {
	v := NewJWTVerifier(StaticTokenSource(signedToken(t, time.Now().Add(time.Hour))))
	assert.NoError(t, v.Verify(context.Background()))
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	v := NewJWTVerifier(StaticTokenSource(signedToken(t, time.Now().Add(-time.Hour))))
	err := v.Verify(context.Background())
	require.ErrorIs(t, err, ErrNotSignedIn)
}

func TestVerifyRejectsEmptyToken(t *testing.T) {
	v := NewJWTVerifier(StaticTokenSource(""))
	require.ErrorIs(t, v.Verify(context.Background()), ErrNotSignedIn)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	v := NewJWTVerifier(StaticTokenSource("not-a-jwt"))
	require.ErrorIs(t, v.Verify(context.Background()), ErrNotSignedIn)
}

func TestTokenPassesThroughRawToken(t *testing.T) {
	raw := signedToken(t, time.Now().Add(time.Hour))
	v := NewJWTVerifier(StaticTokenSource(raw))
	got, err := v.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, raw, got)
}
