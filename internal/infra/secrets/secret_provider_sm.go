// internal/infra/secrets/secret_provider_sm.go
package secrets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	secretspb "google.golang.org/genproto/googleapis/cloud/secretmanager/v1"
)

var (
	ErrSecretNotConfigured = errors.New("secret_provider: not configured")
	ErrSecretEmptyID       = errors.New("secret_provider: secret id is empty")
	ErrSecretNotFound      = errors.New("secret_provider: secret not found")
)

// SecretProviderSM reads secret values (SendGrid API key, store API
// token) from Google Secret Manager.
type SecretProviderSM struct {
	Client    *secretmanager.Client
	ProjectID string
}

func NewSecretProviderSM(ctx context.Context, projectID string) (*SecretProviderSM, error) {
	pid := strings.TrimSpace(projectID)
	if pid == "" {
		pid = strings.TrimSpace(os.Getenv("GOOGLE_CLOUD_PROJECT"))
	}
	if pid == "" {
		pid = strings.TrimSpace(os.Getenv("GCP_PROJECT"))
	}
	if pid == "" {
		return nil, fmt.Errorf("%w: projectID is empty", ErrSecretNotConfigured)
	}

	c, err := secretmanager.NewClient(ctx)
	if err != nil {
		return nil, err
	}

	return &SecretProviderSM{
		Client:    c,
		ProjectID: pid,
	}, nil
}

// Get returns the latest version of the named secret as a trimmed string.
func (p *SecretProviderSM) Get(ctx context.Context, secretID string) (string, error) {
	if p == nil || p.Client == nil {
		return "", ErrSecretNotConfigured
	}

	id := strings.TrimSpace(secretID)
	if id == "" {
		return "", ErrSecretEmptyID
	}

	name := fmt.Sprintf("projects/%s/secrets/%s/versions/latest", p.ProjectID, id)

	res, err := p.Client.AccessSecretVersion(ctx, &secretspb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSecretNotFound, err)
	}
	if res == nil || res.Payload == nil {
		return "", ErrSecretNotFound
	}

	s := strings.TrimSpace(string(res.Payload.Data))
	if s == "" {
		return "", ErrSecretNotFound
	}
	return s, nil
}

func (p *SecretProviderSM) Close() error {
	if p == nil || p.Client == nil {
		return nil
	}
	return p.Client.Close()
}
