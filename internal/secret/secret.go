// Package secret fetches the database credential from Secrets Manager.
package secret

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
)

// DefaultPort is used when the secret has no port.
const DefaultPort = 5432

var (
	// ErrMissingSecretID is returned when no secret identifier is configured.
	ErrMissingSecretID = errors.New("secret id is empty")
	// ErrSecretNotFound is returned when the identifier does not resolve to a
	// secret string.
	ErrSecretNotFound = errors.New("secret not found")
	// ErrMalformedSecret is returned when the secret string is not a
	// credential.
	ErrMalformedSecret = errors.New("malformed secret")
)

// Credential is the JSON document Secrets Manager stores for an RDS
// database. Host and Engine are set by the target attachment.
type Credential struct {
	Username string `json:"username"`
	Password string `json:"password"`
	DBName   string `json:"dbname,omitempty"`
	Port     int    `json:"port,omitempty"`
	Host     string `json:"host,omitempty"`
	Engine   string `json:"engine,omitempty"`
}

// GetSecretValueAPI is the subset of the Secrets Manager client the fetcher uses.
type GetSecretValueAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// Fetcher reads credentials with one GetSecretValue call per Fetch.
type Fetcher struct {
	Client GetSecretValueAPI
}

// NewFetcher returns a Fetcher using client.
func NewFetcher(client GetSecretValueAPI) *Fetcher {
	return &Fetcher{Client: client}
}

// Fetch returns the current credential stored under secretID.
func (f *Fetcher) Fetch(ctx context.Context, secretID string) (Credential, error) {
	if secretID == "" {
		return Credential{}, ErrMissingSecretID
	}

	out, err := f.Client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretID),
	})
	if err != nil {
		var notFound *types.ResourceNotFoundException
		if errors.As(err, &notFound) {
			return Credential{}, fmt.Errorf("%w: %s", ErrSecretNotFound, secretID)
		}
		return Credential{}, fmt.Errorf("getting secret %s: %w", secretID, err)
	}
	if out.SecretString == nil {
		return Credential{}, fmt.Errorf("%w: %s has no secret string", ErrSecretNotFound, secretID)
	}

	cred, err := Parse(*out.SecretString)
	if err != nil {
		return Credential{}, fmt.Errorf("secret %s: %w", secretID, err)
	}
	return cred, nil
}

// Parse decodes a credential document. The port may be a JSON number or a
// numeric string.
func Parse(payload string) (Credential, error) {
	var raw struct {
		Credential
		Port json.RawMessage `json:"port"`
	}
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return Credential{}, fmt.Errorf("%w: %v", ErrMalformedSecret, err)
	}

	cred := raw.Credential
	if cred.Username == "" || cred.Password == "" {
		return Credential{}, fmt.Errorf("%w: username and password are required", ErrMalformedSecret)
	}

	port, err := parsePort(raw.Port)
	if err != nil {
		return Credential{}, fmt.Errorf("%w: %v", ErrMalformedSecret, err)
	}
	cred.Port = port
	return cred, nil
}

func parsePort(raw json.RawMessage) (int, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return DefaultPort, nil
	}

	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return checkPort(n)
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, fmt.Errorf("port must be a number, got %s", raw)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("port must be a number, got %q", s)
	}
	return checkPort(n)
}

func checkPort(n int) (int, error) {
	if n < 1 || n > 65535 {
		return 0, fmt.Errorf("port out of range: %d", n)
	}
	return n, nil
}
