// Package handler implements the Lambda handlers.
//
// The database handlers open one session per invocation through a
// table.Connector and close it before returning, including on failure.
package handler

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/lex00/lambda-aurora-go/internal/logging"
	"github.com/lex00/lambda-aurora-go/internal/table"
)

// ErrInvalidNumber is returned for a missing, negative or too large number.
var ErrInvalidNumber = errors.New("number must be a non-negative integer")

// MaxNumber bounds the array size. A larger array would not fit the 256 KB
// Step Functions payload limit.
const MaxNumber = 10000

// QueryInput is the query handler's event. An empty Name selects the
// handler's default.
type QueryInput struct {
	Name string `json:"name,omitempty"`
}

// DBQuery reads test_table, inserts a row and reads it again.
type DBQuery struct {
	Connector   table.Connector
	DefaultName string
	Logger      *zap.Logger
}

// Handle runs one query invocation.
func (h *DBQuery) Handle(ctx context.Context, in QueryInput) (result table.QueryResult, err error) {
	logger := logging.WithRequest(ctx, h.Logger)

	sess, err := h.Connector.Connect(ctx)
	if err != nil {
		return table.QueryResult{}, fmt.Errorf("connecting: %w", err)
	}
	defer closeSession(ctx, sess, logger, &err)

	before, err := sess.SelectAll(ctx)
	if err != nil {
		return table.QueryResult{}, err
	}
	logger.Info("before insert", zap.Int("count", len(before)), zap.Any("rows", before))

	name := in.Name
	if name == "" {
		name = h.DefaultName
	}
	if err := sess.Insert(ctx, name); err != nil {
		return table.QueryResult{}, err
	}

	after, err := sess.SelectAll(ctx)
	if err != nil {
		return table.QueryResult{}, err
	}
	logger.Info("after insert", zap.String("name", name), zap.Int("count", len(after)), zap.Any("rows", after))

	return table.QueryResult{
		BeforeInsertQueryRows: before,
		AfterInsertQueryRows:  after,
	}, nil
}

// DBAccess reads test_table.
type DBAccess struct {
	Connector table.Connector
	Logger    *zap.Logger
}

// Handle runs one read-only invocation.
func (h *DBAccess) Handle(ctx context.Context) (result table.AccessResult, err error) {
	logger := logging.WithRequest(ctx, h.Logger)

	sess, err := h.Connector.Connect(ctx)
	if err != nil {
		return table.AccessResult{}, fmt.Errorf("connecting: %w", err)
	}
	defer closeSession(ctx, sess, logger, &err)

	rows, err := sess.SelectAll(ctx)
	if err != nil {
		return table.AccessResult{}, err
	}
	logger.Info("rows", zap.Int("count", len(rows)), zap.Any("rows", rows))

	return table.AccessResult{Rows: rows}, nil
}

// closeSession closes sess and reports a close failure through errp unless
// the handler already failed.
func closeSession(ctx context.Context, sess table.Session, logger *zap.Logger, errp *error) {
	if err := sess.Close(ctx); err != nil {
		logger.Warn("closing session", zap.Error(err))
		if *errp == nil {
			*errp = err
		}
	}
}

// NumberInput is the array handler's event.
type NumberInput struct {
	Number *int `json:"number"`
}

// NumberOutput holds [1..number].
type NumberOutput struct {
	NumberArray []int `json:"numberArray"`
}

// NumberArray builds the array the fan-out Map state iterates.
type NumberArray struct {
	Logger *zap.Logger
}

// Handle returns [1..number]; 0 yields an empty array.
func (h *NumberArray) Handle(ctx context.Context, in NumberInput) (NumberOutput, error) {
	if in.Number == nil {
		return NumberOutput{}, fmt.Errorf("%w: missing", ErrInvalidNumber)
	}
	n := *in.Number
	if n < 0 {
		return NumberOutput{}, fmt.Errorf("%w: got %d", ErrInvalidNumber, n)
	}
	if n > MaxNumber {
		return NumberOutput{}, fmt.Errorf("%w: %d exceeds %d", ErrInvalidNumber, n, MaxNumber)
	}

	out := NumberOutput{NumberArray: make([]int, n)}
	for i := range out.NumberArray {
		out.NumberArray[i] = i + 1
	}

	logging.WithRequest(ctx, h.Logger).Debug("number array", zap.Int("number", n))
	return out, nil
}
