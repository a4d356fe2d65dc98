package infra

import (
	"github.com/lex00/lambda-aurora-go/internal/stack"
	. "github.com/lex00/lambda-aurora-go/intrinsics"
	"github.com/lex00/lambda-aurora-go/resources/ec2"
)

// ----------------------------------------------------------------------------
// Security Groups
// ----------------------------------------------------------------------------

// allowAllOutbound is the egress rule every group carries.
var allowAllOutbound = ec2.SecurityGroup_Egress{
	IpProtocol:  "-1",
	CidrIp:      "0.0.0.0/0",
	Description: "Allow all outbound traffic by default",
}

func (b *builder) securityGroups() {
	b.dbClientSg = b.securityGroup("DbClientSg", "db-client-sg", "DB clients: bastion host and query functions")
	b.rotationSg = b.securityGroup("RotateSecretsLambdaFunctionSg", "rotate-secrets-lambda-sg", "Lambda functions that rotate the admin secret")
	b.proxySg = b.securityGroup("RdsProxySg", "rds-proxy-sg", "RDS Proxy")
	b.dbSg = b.securityGroup("DbSg", "db-sg", "Aurora PostgreSQL cluster")

	b.allowPostgres("RdsProxySgFromDbClient", b.proxySg, b.dbClientSg, "Allow RDS Proxy access from DB Client")
	b.allowPostgres("DbSgFromRotateSecretsLambda", b.dbSg, b.rotationSg, "Allow DB access from Lambda Functions that rotate Secrets")
	b.allowPostgres("DbSgFromDbClient", b.dbSg, b.dbClientSg, "Allow DB access from DB Client")
	b.allowPostgres("DbSgFromRdsProxy", b.dbSg, b.proxySg, "Allow DB access from RDS Proxy")
}

func (b *builder) securityGroup(name, suffix, description string) stack.Handle {
	groupName := b.opts.NamePrefix + "-" + suffix
	return b.s.Add(name, ec2.SecurityGroup{
		GroupName:           groupName,
		GroupDescription:    description,
		VpcId:               b.vpc.Ref(),
		SecurityGroupEgress: Any(allowAllOutbound),
		Tags:                nameTag(groupName),
	})
}

// allowPostgres opens the database port on target for members of source.
func (b *builder) allowPostgres(name string, target, source stack.Handle, description string) {
	b.s.Add(name, ec2.SecurityGroupIngress{
		GroupId:               target.Attr("GroupId"),
		IpProtocol:            "tcp",
		FromPort:              b.opts.DatabasePort,
		ToPort:                b.opts.DatabasePort,
		SourceSecurityGroupId: source.Attr("GroupId"),
		Description:           description,
	})
}
