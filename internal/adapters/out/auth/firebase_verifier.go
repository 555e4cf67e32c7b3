// internal/adapters/out/auth/firebase_verifier.go
package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"
)

var ErrNotSignedIn = errors.New("auth: not signed in")

// TokenSource yields the current session's raw ID token, or "" when no
// user is signed in.
type TokenSource interface {
	IDToken(ctx context.Context) (string, error)
}

// StaticTokenSource wraps a fixed token string.
type StaticTokenSource string

func (t StaticTokenSource) IDToken(ctx context.Context) (string, error) {
	return string(t), nil
}

// FirebaseVerifier checks the session token against Firebase Auth. It
// implements the checkout orchestrator's SessionVerifier port and doubles
// as the store API client's bearer TokenProvider.
type FirebaseVerifier struct {
	Auth   *fbauth.Client
	Tokens TokenSource
}

func NewFirebaseVerifier(client *fbauth.Client, tokens TokenSource) *FirebaseVerifier {
	return &FirebaseVerifier{Auth: client, Tokens: tokens}
}

func (v *FirebaseVerifier) Verify(ctx context.Context) error {
	if v == nil || v.Auth == nil {
		return errors.New("firebase_verifier: auth client is nil")
	}

	idToken, err := v.currentToken(ctx)
	if err != nil {
		return err
	}

	if _, err := v.Auth.VerifyIDToken(ctx, idToken); err != nil {
		log.Printf("[firebase_verifier] token rejected: %v", err)
		return fmt.Errorf("%w: %v", ErrNotSignedIn, err)
	}
	return nil
}

// Token implements the store API client's bearer TokenProvider.
func (v *FirebaseVerifier) Token(ctx context.Context) (string, error) {
	return v.currentToken(ctx)
}

func (v *FirebaseVerifier) currentToken(ctx context.Context) (string, error) {
	if v.Tokens == nil {
		return "", ErrNotSignedIn
	}
	idToken, err := v.Tokens.IDToken(ctx)
	if err != nil {
		return "", fmt.Errorf("firebase_verifier: read token: %w", err)
	}
	idToken = strings.TrimSpace(idToken)
	if idToken == "" {
		return "", ErrNotSignedIn
	}
	return idToken, nil
}
