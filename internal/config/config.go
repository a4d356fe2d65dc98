// Package config loads handler configuration from the Lambda environment.
package config

import (
	"errors"
	"os"
	"strings"
)

// Environment variable names set by the stack.
const (
	EnvProxyEndpoint = "PROXY_ENDPOINT"
	EnvSecretID      = "SECRET_ID"
	EnvRegion        = "AWS_REGION"
	EnvLogLevel      = "LOG_LEVEL"
	EnvInsertName    = "INSERT_NAME"
	EnvDatabaseName  = "DB_NAME"
)

// DefaultInsertName is inserted when neither the event nor INSERT_NAME
// names a row.
const DefaultInsertName = "non-97"

// Config holds the handler settings.
type Config struct {
	ProxyEndpoint string // RDS Proxy endpoint host
	SecretID      string // ARN or name of the admin secret
	Region        string
	LogLevel      string // debug, info, warn, error (default "info")
	InsertName    string // default row name for the query handler
	// DatabaseName is used when the secret carries no dbname.
	DatabaseName string
}

// LoadFromEnv reads the configuration from environment variables and fills
// defaults. It does not validate; database handlers call Validate.
func LoadFromEnv() *Config {
	cfg := &Config{
		ProxyEndpoint: strings.TrimSpace(os.Getenv(EnvProxyEndpoint)),
		SecretID:      strings.TrimSpace(os.Getenv(EnvSecretID)),
		Region:        os.Getenv(EnvRegion),
		LogLevel:      strings.ToLower(os.Getenv(EnvLogLevel)),
		InsertName:    os.Getenv(EnvInsertName),
		DatabaseName:  os.Getenv(EnvDatabaseName),
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.InsertName == "" {
		cfg.InsertName = DefaultInsertName
	}
	return cfg
}

// Validate checks the settings a database handler needs.
func (c *Config) Validate() error {
	var errs []error
	if c.ProxyEndpoint == "" {
		errs = append(errs, errors.New(EnvProxyEndpoint+" is required"))
	}
	if c.SecretID == "" {
		errs = append(errs, errors.New(EnvSecretID+" is required"))
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, errors.New(EnvLogLevel+" must be one of debug, info, warn, error"))
	}
	return errors.Join(errs...)
}
