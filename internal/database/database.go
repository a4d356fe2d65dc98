// Package database opens connections to the cluster through RDS Proxy.
//
// Each invocation opens one connection and closes it before returning;
// connection pooling is left to the proxy.
package database

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/jackc/pgx/v4"
	"go.uber.org/zap"

	"github.com/lex00/lambda-aurora-go/internal/secret"
	"github.com/lex00/lambda-aurora-go/internal/table"
)

// DefaultConnectTimeout bounds the TCP and TLS handshake with the proxy.
const DefaultConnectTimeout = 10 * time.Second

// ConnConfig builds the connection configuration for endpoint. TLS is
// required. database is used when cred has no dbname.
func ConnConfig(endpoint string, cred secret.Credential, database string) (*pgx.ConnConfig, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("proxy endpoint is empty")
	}

	port := cred.Port
	if port == 0 {
		port = secret.DefaultPort
	}
	if cred.DBName != "" {
		database = cred.DBName
	}

	dsn := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cred.Username, cred.Password),
		Host:   net.JoinHostPort(endpoint, strconv.Itoa(port)),
		Path:   "/" + database,
		RawQuery: url.Values{
			"sslmode":         {"require"},
			"connect_timeout": {strconv.Itoa(int(DefaultConnectTimeout / time.Second))},
		}.Encode(),
	}

	cfg, err := pgx.ParseConfig(dsn.String())
	if err != nil {
		return nil, fmt.Errorf("parsing connection config: %w", err)
	}
	return cfg, nil
}

// Connector opens one connection per Connect call.
type Connector struct {
	Endpoint   string
	Credential secret.Credential
	// Database is used when Credential has no dbname.
	Database string
	Logger   *zap.Logger
}

// Connect opens a connection and returns a session over it. The caller must
// Close the session.
func (c *Connector) Connect(ctx context.Context) (table.Session, error) {
	cfg, err := ConnConfig(c.Endpoint, c.Credential, c.Database)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	conn, err := pgx.ConnectConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", c.Endpoint, err)
	}

	c.logger().Debug("connected",
		zap.String("endpoint", c.Endpoint),
		zap.String("database", cfg.Database),
		zap.Duration("elapsed", time.Since(start)),
	)
	return &session{Repository: table.NewRepository(conn), conn: conn, logger: c.logger()}, nil
}

func (c *Connector) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

type session struct {
	*table.Repository
	conn   *pgx.Conn
	logger *zap.Logger
}

func (s *session) Close(ctx context.Context) error {
	if err := s.conn.Close(ctx); err != nil {
		return fmt.Errorf("closing connection: %w", err)
	}
	s.logger.Debug("connection closed")
	return nil
}
