// internal/adapters/out/auth/jwt_verifier.go
package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTVerifier checks the session token locally without a network round
// trip: parse, check expiry. The backend still authenticates every
// request, so an expired token caught here only saves a doomed call.
type JWTVerifier struct {
	Tokens TokenSource
	Leeway time.Duration
}

func NewJWTVerifier(tokens TokenSource) *JWTVerifier {
	return &JWTVerifier{Tokens: tokens, Leeway: 30 * time.Second}
}

func (v *JWTVerifier) Verify(ctx context.Context) error {
	if v == nil || v.Tokens == nil {
		return ErrNotSignedIn
	}

	raw, err := v.Tokens.IDToken(ctx)
	if err != nil {
		return fmt.Errorf("jwt_verifier: read token: %w", err)
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ErrNotSignedIn
	}

	// Signature verification belongs to the backend; only the claims
	// matter here.
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return fmt.Errorf("%w: malformed token: %v", ErrNotSignedIn, err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return fmt.Errorf("%w: missing exp claim", ErrNotSignedIn)
	}
	if time.Now().After(exp.Time.Add(v.Leeway)) {
		return fmt.Errorf("%w: token expired", ErrNotSignedIn)
	}
	return nil
}

// Token implements the store API client's bearer TokenProvider.
func (v *JWTVerifier) Token(ctx context.Context) (string, error) {
	if v == nil || v.Tokens == nil {
		return "", ErrNotSignedIn
	}
	raw, err := v.Tokens.IDToken(ctx)
	if err != nil {
		return "", err
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrNotSignedIn
	}
	return raw, nil
}
