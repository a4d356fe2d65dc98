package database

import (
	"context"
	"crypto/tls"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lex00/lambda-aurora-go/internal/secret"
)

func TestConnConfig(t *testing.T) {
	cred := secret.Credential{
		Username: "postgresAdmin",
		Password: "p@ss:/word",
		DBName:   "testDB",
		Port:     5432,
	}

	cfg, err := ConnConfig("db-proxy.proxy-abc.ap-northeast-1.rds.amazonaws.com", cred, "fallback")
	require.NoError(t, err)

	assert.Equal(t, "db-proxy.proxy-abc.ap-northeast-1.rds.amazonaws.com", cfg.Host)
	assert.Equal(t, uint16(5432), cfg.Port)
	assert.Equal(t, "postgresAdmin", cfg.User)
	assert.Equal(t, "p@ss:/word", cfg.Password)
	assert.Equal(t, "testDB", cfg.Database)
	assert.Equal(t, DefaultConnectTimeout, cfg.ConnectTimeout)

	// sslmode=require: TLS without certificate verification and no
	// plaintext fallback.
	require.NotNil(t, cfg.TLSConfig)
	assert.IsType(t, &tls.Config{}, cfg.TLSConfig)
	assert.Empty(t, cfg.Fallbacks)
}

func TestConnConfig_Defaults(t *testing.T) {
	cfg, err := ConnConfig("proxy", secret.Credential{Username: "u", Password: "p"}, "testDB")
	require.NoError(t, err)
	assert.Equal(t, uint16(secret.DefaultPort), cfg.Port)
	assert.Equal(t, "testDB", cfg.Database)
}

func TestConnConfig_EmptyEndpoint(t *testing.T) {
	_, err := ConnConfig("", secret.Credential{Username: "u", Password: "p"}, "testDB")
	require.Error(t, err)
}

func TestConnector_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c := &Connector{
		Endpoint:   "127.0.0.1",
		Credential: secret.Credential{Username: "u", Password: "p", Port: 1},
		Database:   "testDB",
	}
	sess, err := c.Connect(ctx)
	require.Error(t, err)
	assert.Nil(t, sess)
	assert.Contains(t, err.Error(), "connecting to 127.0.0.1")
}
