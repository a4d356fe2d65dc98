package infra

import (
	lambdaaurora "github.com/lex00/lambda-aurora-go"
	. "github.com/lex00/lambda-aurora-go/intrinsics"
)

func (b *builder) outputs() {
	// ----------------------------------------------------------------------------
	// Outputs
	// ----------------------------------------------------------------------------

	b.output("ProxyEndpoint", "RDS Proxy endpoint the functions connect to", b.proxy.Attr("Endpoint"))
	b.output("ClusterEndpoint", "Writer endpoint of the Aurora cluster", b.cluster.Attr("Endpoint.Address"))
	b.output("ClusterReadEndpoint", "Reader endpoint of the Aurora cluster", b.cluster.Attr("ReadEndpoint.Address"))
	b.output("AdminSecretArn", "ARN of the rotated admin secret", b.adminSecret.Ref())
	b.output("DbClientInstanceId", "Bastion instance, reachable with Session Manager", b.bastion.Ref())
	b.output("DbAccessFunctionName", "Read-only query function", b.dbAccessFunction.Ref())
	b.output("DbQueryFunctionName", "Read-insert-read query function", b.dbQueryFunction.Ref())
	b.output("CreateNumberArrayFunctionName", "Array generation function", b.createNumberArrayFunction.Ref())

	for _, sm := range b.stateMachines {
		b.output(sm.name+"Arn", "Fan-out state machine", sm.handle.Ref())
	}
}

func (b *builder) output(name, description string, value any) {
	b.s.AddOutput(name, lambdaaurora.Output{
		Description: description,
		Value:       value,
		Export:      &lambdaaurora.OutputExport{Name: StackName(name)},
	})
}
