// Package infra declares the LambdaAurora stack: a VPC, an Aurora PostgreSQL
// cluster behind RDS Proxy with a rotated admin secret, a bastion host, the
// Lambda functions that query the database and the fan-out state machines.
//
// Architecture:
//
//	Step Functions (4 fan-out variants)
//	|
//	+-- CreateNumberArrayFunction
//	|
//	+-- DbQueryFunction ----+
//	                        |
//	DbAccessFunction -------+--> RdsProxy --> DbCluster (Aurora PostgreSQL)
//	                        |                     |
//	DbClient (bastion) -----+                     +-- DbAdminSecret (rotated)
package infra

import (
	"fmt"

	"github.com/lex00/lambda-aurora-go/internal/stack"
)

// builder carries the handles each layer needs from the layers before it.
type builder struct {
	opts Options
	s    *stack.Stack

	vpc             stack.Handle
	publicSubnets   []stack.Handle
	privateSubnets  []stack.Handle
	isolatedSubnets []stack.Handle
	natRoute        stack.Handle

	dbClientSg stack.Handle
	rotationSg stack.Handle
	proxySg    stack.Handle
	dbSg       stack.Handle

	adminSecret  stack.Handle
	cluster      stack.Handle
	instances    []stack.Handle
	proxy        stack.Handle
	secretPolicy stack.Handle
	bastion      stack.Handle

	artifactBucket stack.Handle
	artifactPrefix stack.Handle

	dbAccessFunction          stack.Handle
	dbQueryFunction           stack.Handle
	createNumberArrayFunction stack.Handle
	stateMachines             []stateMachine
}

type stateMachine struct {
	name   string
	handle stack.Handle
}

// New declares the LambdaAurora stack.
func New(opts Options) (*stack.Stack, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	b := &builder{opts: opts, s: stack.New(opts.Description)}

	b.parameters()
	b.network()
	b.securityGroups()
	b.database()
	b.rotation()
	b.dbProxy()
	b.bastionHost()
	b.lambdaFunctions()
	if err := b.fanOutStateMachines(); err != nil {
		return nil, err
	}
	b.outputs()

	return b.s, nil
}

func refs(handles []stack.Handle) []any {
	out := make([]any, len(handles))
	for i, h := range handles {
		out[i] = h.Ref()
	}
	return out
}
