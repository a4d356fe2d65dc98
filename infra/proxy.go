package infra

import (
	. "github.com/lex00/lambda-aurora-go/intrinsics"
	"github.com/lex00/lambda-aurora-go/resources/iam"
	"github.com/lex00/lambda-aurora-go/resources/rds"
)

func (b *builder) dbProxy() {
	o := b.opts

	// ----------------------------------------------------------------------------
	// RDS Proxy
	// ----------------------------------------------------------------------------

	proxyRole := b.s.Add("RdsProxyRole", iam.Role{
		AssumeRolePolicyDocument: NewPolicyDocument(AssumeRoleStatement("rds.amazonaws.com")),
		Policies: []iam.Role_Policy{{
			PolicyName: "ReadAdminSecret",
			PolicyDocument: NewPolicyDocument(PolicyStatement{
				Effect:   "Allow",
				Action:   Any("secretsmanager:GetSecretValue", "secretsmanager:DescribeSecret"),
				Resource: b.adminSecret.Ref(),
			}),
		}},
	})

	b.proxy = b.s.Add("RdsProxy", rds.DBProxy{
		DBProxyName:  o.ProxyName,
		EngineFamily: "POSTGRESQL",
		Auth: []rds.DBProxy_AuthFormat{{
			AuthScheme: "SECRETS",
			IAMAuth:    "DISABLED",
			SecretArn:  b.adminSecret.Ref(),
		}},
		RoleArn:             proxyRole.Attr("Arn"),
		VpcSubnetIds:        refs(b.privateSubnets),
		VpcSecurityGroupIds: Any(b.proxySg.Attr("GroupId")),
		RequireTLS:          true,
		DebugLogging:        true,
		IdleClientTimeout:   1800,
	})

	// Registering a target needs an available instance.
	b.s.Add("RdsProxyTargetGroup", rds.DBProxyTargetGroup{
		DBProxyName:          b.proxy.Ref(),
		TargetGroupName:      "default",
		DBClusterIdentifiers: Any(b.cluster.Ref()),
		ConnectionPoolConfigurationInfo: &rds.DBProxyTargetGroup_ConnectionPoolConfigurationInfoFormat{
			ConnectionBorrowTimeout: o.ProxyBorrowTimeout,
		},
	}, b.instances...)

	// ----------------------------------------------------------------------------
	// DB Client IAM Policy
	// ----------------------------------------------------------------------------

	b.secretPolicy = b.s.Add("GetSecretValueIamPolicy", iam.ManagedPolicy{
		Description: "Read the admin login of " + o.ClusterIdentifier,
		PolicyDocument: NewPolicyDocument(PolicyStatement{
			Effect:   "Allow",
			Action:   "secretsmanager:GetSecretValue",
			Resource: b.adminSecret.Ref(),
		}),
	})
}
