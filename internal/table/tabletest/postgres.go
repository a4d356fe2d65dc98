// Package tabletest starts a throwaway PostgreSQL with test_table for
// integration tests.
package tabletest

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/jackc/pgx/v4"
	"github.com/ory/dockertest/v3"
	"github.com/stretchr/testify/require"
)

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// GetDockerHost is the host published container ports are reached on.
func GetDockerHost() string {
	return getEnv("DOCKERTEST_HOST", "localhost")
}

// StartupPostgreSQL runs postgres in docker, creates test_table and returns
// a DSN for it. The test is skipped in short mode or without docker.
func StartupPostgreSQL(t *testing.T) string {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping docker test in short mode")
	}

	require := require.New(t)

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("docker unavailable: %v", err)
	}
	if err := pool.Client.Ping(); err != nil {
		t.Skipf("docker unavailable: %v", err)
	}

	resource, err := pool.Run("postgres", "13", []string{"POSTGRES_PASSWORD=postgres", "POSTGRES_DB=testDB"})
	require.NoError(err, "start postgres")

	t.Cleanup(func() {
		require.NoError(pool.Purge(resource), "purge resource %s", resource.Container.Name)
	})

	dsn := fmt.Sprintf("postgres://postgres:postgres@%s:%s/testDB?sslmode=disable",
		GetDockerHost(), resource.GetPort("5432/tcp"))

	var conn *pgx.Conn
	// the server may not accept connections yet
	err = pool.Retry(func() error {
		conn, err = pgx.Connect(context.Background(), dsn)
		if err != nil {
			return err
		}
		return conn.Ping(context.Background())
	})
	require.NoError(err, "wait for postgres connection")
	defer conn.Close(context.Background())

	_, err = conn.Exec(context.Background(), `CREATE TABLE test_table (
		id         SERIAL PRIMARY KEY,
		name       TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`)
	require.NoError(err, "create test_table")

	return dsn
}

// Connect opens a connection to dsn and closes it when the test ends.
func Connect(t *testing.T, dsn string) *pgx.Conn {
	t.Helper()

	conn, err := pgx.Connect(context.Background(), dsn)
	require.NoError(t, err, "connect to postgres")
	t.Cleanup(func() { conn.Close(context.Background()) })

	return conn
}
