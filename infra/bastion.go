package infra

import (
	_ "embed"

	. "github.com/lex00/lambda-aurora-go/intrinsics"
	"github.com/lex00/lambda-aurora-go/resources/ec2"
	"github.com/lex00/lambda-aurora-go/resources/iam"
)

//go:embed user_data_db_client.sh
var dbClientUserData string

// amazonLinux2 resolves the latest Amazon Linux 2 AMI at deploy time.
const amazonLinux2 = "{{resolve:ssm:/aws/service/ami-amazon-linux-latest/amzn2-ami-hvm-x86_64-gp2}}"

func (b *builder) bastionHost() {
	o := b.opts

	// ----------------------------------------------------------------------------
	// DB Client (bastion reached through Session Manager)
	// ----------------------------------------------------------------------------

	role := b.s.Add("DbClientIamRole", iam.Role{
		AssumeRolePolicyDocument: NewPolicyDocument(AssumeRoleStatement("ec2.amazonaws.com")),
		ManagedPolicyArns: Any(
			ManagedPolicyArn("AmazonSSMManagedInstanceCore"),
			b.secretPolicy.Ref(),
		),
	})

	profile := b.s.Add("DbClientInstanceProfile", iam.InstanceProfile{
		Roles: Any(role.Ref()),
	})

	// User data installs packages through the NAT gateway.
	b.bastion = b.s.Add("DbClient", ec2.Instance{
		InstanceType:       o.BastionInstanceType,
		ImageId:            amazonLinux2,
		SubnetId:           b.privateSubnets[0].Ref(),
		SecurityGroupIds:   Any(b.dbClientSg.Attr("GroupId")),
		IamInstanceProfile: profile.Ref(),
		BlockDeviceMappings: []ec2.Instance_BlockDeviceMapping{{
			DeviceName: "/dev/xvda",
			Ebs: &ec2.Instance_Ebs{
				VolumeSize:          o.BastionVolumeSize,
				VolumeType:          "gp3",
				Encrypted:           true,
				DeleteOnTermination: true,
			},
		}},
		UserData: Base64{Value: dbClientUserData},
		Tags:     nameTag(StackName("db-client")),
	}, b.natRoute)
}
