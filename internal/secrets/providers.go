package secrets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// SecretManagerProvider reads credentials from the latest version of a GCP
// Secret Manager secret whose payload is the credentials JSON.
type SecretManagerProvider struct {
	projectID string
	client    *secretmanager.Client
}

// NewSecretManagerProvider creates a provider with its own client. Close it
// when done.
func NewSecretManagerProvider(ctx context.Context, projectID string) (*SecretManagerProvider, error) {
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("NewSecretManagerProvider: creating client: %w", err)
	}
	return &SecretManagerProvider{projectID: projectID, client: client}, nil
}

// Close closes the Secret Manager client.
func (p *SecretManagerProvider) Close() error {
	if p.client != nil {
		return p.client.Close()
	}
	return nil
}

// Credentials implements Provider.
func (p *SecretManagerProvider) Credentials(ctx context.Context, secretID string) (*Credentials, error) {
	name := secretID
	if !strings.HasPrefix(secretID, "projects/") {
		name = fmt.Sprintf("projects/%s/secrets/%s/versions/latest", p.projectID, secretID)
	}

	resp, err := p.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("SecretManagerProvider: %s: %w", name, ErrSecretNotFound)
		}
		return nil, fmt.Errorf("SecretManagerProvider: accessing %s: %w", name, err)
	}

	creds, err := ParseCredentials(resp.GetPayload().GetData())
	if err != nil {
		return nil, fmt.Errorf("SecretManagerProvider: %s: %w", name, err)
	}
	return creds, nil
}

// EnvProvider reads credentials from DB_USERNAME, DB_PASSWORD, DB_HOST,
// DB_PORT and DB_NAME. A non-empty secret ID switches the prefix, e.g.
// "reporting" reads REPORTING_DB_HOST. Characters not allowed in variable
// names become underscores, so "dataops-hub" reads DATAOPS_HUB_DB_HOST.
type EnvProvider struct {
	lookup func(string) (string, bool)
}

// NewEnvProvider reads from the process environment.
func NewEnvProvider() *EnvProvider {
	return &EnvProvider{lookup: os.LookupEnv}
}

// Credentials implements Provider.
func (p *EnvProvider) Credentials(ctx context.Context, secretID string) (*Credentials, error) {
	prefix := "DB_"
	if secretID != "" {
		prefix = envPrefix(secretID) + "_DB_"
	}

	values := make(map[string]string)
	found := false
	for _, field := range []string{"USERNAME", "PASSWORD", "HOST", "PORT", "NAME"} {
		v, ok := p.lookup(prefix + field)
		if ok {
			found = true
		}
		values[field] = v
	}
	if !found {
		return nil, fmt.Errorf("EnvProvider: no %s* variables: %w", prefix, ErrSecretNotFound)
	}

	creds := &Credentials{
		Username: values["USERNAME"],
		Password: values["PASSWORD"],
		Host:     values["HOST"],
		DBName:   values["NAME"],
	}
	if values["PORT"] != "" {
		if err := creds.Port.UnmarshalJSON([]byte(values["PORT"])); err != nil {
			return nil, fmt.Errorf("EnvProvider: %w: %v", ErrMalformedSecret, err)
		}
	}
	if err := creds.Validate(); err != nil {
		return nil, fmt.Errorf("EnvProvider: %w", err)
	}
	return creds, nil
}

func envPrefix(secretID string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		case r >= 'a' && r <= 'z':
			return r - 'a' + 'A'
		default:
			return '_'
		}
	}, secretID)
}

// IsConfigError reports whether err belongs to the credential error class.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrSecretNotFound) || errors.Is(err, ErrMalformedSecret)
}
