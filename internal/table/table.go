// Package table reads and writes test_table.
package table

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

// Row is one row of test_table.
type Row struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// QueryResult is the query handler's response.
type QueryResult struct {
	BeforeInsertQueryRows []Row `json:"beforeInsertQueryRows"`
	AfterInsertQueryRows  []Row `json:"afterInsertQueryRows"`
}

// AccessResult is the read-only handler's response.
type AccessResult struct {
	Rows []Row `json:"rows"`
}

// Store reads and writes test_table.
type Store interface {
	SelectAll(ctx context.Context) ([]Row, error)
	Insert(ctx context.Context, name string) error
}

// Session is a Store bound to one open connection.
type Session interface {
	Store
	Close(ctx context.Context) error
}

// Connector opens sessions.
type Connector interface {
	Connect(ctx context.Context) (Session, error)
}

// Querier is the subset of *pgx.Conn the repository uses.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const (
	selectAllSQL = `SELECT id, name, created_at FROM test_table ORDER BY id`
	insertSQL    = `INSERT INTO test_table (name) VALUES ($1)`
)

// Repository implements Store over a pgx connection.
type Repository struct {
	q Querier
}

// NewRepository returns a Repository using q.
func NewRepository(q Querier) *Repository {
	return &Repository{q: q}
}

// SelectAll returns every row ordered by id. An empty table yields an empty,
// non-nil slice.
func (r *Repository) SelectAll(ctx context.Context) ([]Row, error) {
	rows, err := r.q.Query(ctx, selectAllSQL)
	if err != nil {
		return nil, fmt.Errorf("selecting test_table: %w", err)
	}
	defer rows.Close()

	result := []Row{}
	for rows.Next() {
		var row Row
		if err := rows.Scan(&row.ID, &row.Name, &row.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning test_table row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading test_table: %w", err)
	}
	return result, nil
}

// Insert adds a row named name.
func (r *Repository) Insert(ctx context.Context, name string) error {
	tag, err := r.q.Exec(ctx, insertSQL, name)
	if err != nil {
		return fmt.Errorf("inserting into test_table: %w", err)
	}
	if tag.RowsAffected() != 1 {
		return fmt.Errorf("inserting into test_table: %d rows affected", tag.RowsAffected())
	}
	return nil
}
