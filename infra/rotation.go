package infra

import (
	. "github.com/lex00/lambda-aurora-go/intrinsics"
	"github.com/lex00/lambda-aurora-go/resources/secretsmanager"
)

// SecretsManagerTransform expands HostedRotationLambda into a rotation
// function stack.
const SecretsManagerTransform = "AWS::SecretsManager-2020-07-23"

func (b *builder) rotation() {
	o := b.opts

	// ----------------------------------------------------------------------------
	// Secret Rotation
	// ----------------------------------------------------------------------------

	// The attachment adds host, port and engine to the secret once the
	// cluster exists.
	attachment := b.s.Add("DbAdminSecretAttachment", secretsmanager.SecretTargetAttachment{
		SecretId:   b.adminSecret.Ref(),
		TargetId:   b.cluster.Ref(),
		TargetType: secretsmanager.TargetTypeDBCluster,
	})

	// Rotation runs right after creation, so the writer instance must be up.
	b.s.Add("DbAdminSecretRotationSchedule", secretsmanager.RotationSchedule{
		SecretId: attachment.Ref(),
		HostedRotationLambda: &secretsmanager.RotationSchedule_HostedRotationLambda{
			RotationType:        secretsmanager.RotationPostgreSQLSingleUser,
			RotationLambdaName:  StackName("rotate-admin-secret"),
			VpcSecurityGroupIds: b.rotationSg.Attr("GroupId"),
			VpcSubnetIds:        Join{Delimiter: ",", Values: refs(b.privateSubnets)},
			ExcludeCharacters:   o.ExcludeCharacters,
		},
		RotationRules: &secretsmanager.RotationSchedule_RotationRules{
			AutomaticallyAfterDays: o.RotationDays,
		},
	}, b.instances...)

	b.s.AddTransform(SecretsManagerTransform)
}
