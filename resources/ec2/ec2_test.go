package ec2

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lambdaaurora "github.com/lex00/lambda-aurora-go"
)

func TestResourceTypes(t *testing.T) {
	tests := []struct {
		name     string
		resource lambdaaurora.Resource
		expected string
	}{
		{"VPC", VPC{}, "AWS::EC2::VPC"},
		{"InternetGateway", InternetGateway{}, "AWS::EC2::InternetGateway"},
		{"VPCGatewayAttachment", VPCGatewayAttachment{}, "AWS::EC2::VPCGatewayAttachment"},
		{"Subnet", Subnet{}, "AWS::EC2::Subnet"},
		{"EIP", EIP{}, "AWS::EC2::EIP"},
		{"NatGateway", NatGateway{}, "AWS::EC2::NatGateway"},
		{"RouteTable", RouteTable{}, "AWS::EC2::RouteTable"},
		{"Route", Route{}, "AWS::EC2::Route"},
		{"SubnetRouteTableAssociation", SubnetRouteTableAssociation{}, "AWS::EC2::SubnetRouteTableAssociation"},
		{"SecurityGroup", SecurityGroup{}, "AWS::EC2::SecurityGroup"},
		{"SecurityGroupIngress", SecurityGroupIngress{}, "AWS::EC2::SecurityGroupIngress"},
		{"Instance", Instance{}, "AWS::EC2::Instance"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.resource.ResourceType())
		})
	}
}

func TestInstanceSerialization(t *testing.T) {
	instance := Instance{
		InstanceType: "t3.micro",
		BlockDeviceMappings: []Instance_BlockDeviceMapping{{
			DeviceName: "/dev/xvda",
			Ebs: &Instance_Ebs{
				VolumeSize: 8,
				VolumeType: "gp3",
				Encrypted:  true,
			},
		}},
	}

	data, err := json.Marshal(instance)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(data, &parsed))

	assert.Equal(t, "t3.micro", parsed["InstanceType"])
	assert.NotContains(t, parsed, "UserData")
	assert.NotContains(t, parsed, "SecurityGroupIds")

	mappings := parsed["BlockDeviceMappings"].([]any)
	require.Len(t, mappings, 1)
	ebs := mappings[0].(map[string]any)["Ebs"].(map[string]any)
	assert.Equal(t, float64(8), ebs["VolumeSize"])
	assert.Equal(t, true, ebs["Encrypted"])
	assert.NotContains(t, ebs, "DeleteOnTermination")
}
