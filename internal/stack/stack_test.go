package stack

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lambdaaurora "github.com/lex00/lambda-aurora-go"
	"github.com/lex00/lambda-aurora-go/intrinsics"
	"github.com/lex00/lambda-aurora-go/resources/ec2"
	"github.com/lex00/lambda-aurora-go/resources/iam"
	"github.com/lex00/lambda-aurora-go/resources/lambda"
	"github.com/lex00/lambda-aurora-go/resources/logs"
)

func TestStack_Build_SimpleResource(t *testing.T) {
	s := New("test stack")
	s.Add("Vpc", ec2.VPC{CidrBlock: "10.10.0.0/24", EnableDnsSupport: true})

	template, err := s.Build()
	require.NoError(t, err)

	assert.Equal(t, "2010-09-09", template.AWSTemplateFormatVersion)
	assert.Equal(t, "test stack", template.Description)
	assert.Len(t, template.Resources, 1)

	vpc := template.Resources["Vpc"]
	assert.Equal(t, "AWS::EC2::VPC", vpc.Type)
	assert.Equal(t, "10.10.0.0/24", vpc.Properties["CidrBlock"])
	assert.Equal(t, true, vpc.Properties["EnableDnsSupport"])
	assert.NotContains(t, vpc.Properties, "EnableDnsHostnames")
}

func TestStack_Resolve_DiscoversDependencies(t *testing.T) {
	s := New("")
	vpc := s.Add("Vpc", ec2.VPC{CidrBlock: "10.10.0.0/24"})
	sg := s.Add("DbSg", ec2.SecurityGroup{VpcId: vpc.Ref(), GroupDescription: "db"})
	role := s.Add("FunctionRole", iam.Role{AssumeRolePolicyDocument: intrinsics.NewPolicyDocument(
		intrinsics.AssumeRoleStatement("lambda.amazonaws.com"),
	)})
	s.Add("Function", lambda.Function{
		Role: role.Attr("Arn"),
		VpcConfig: &lambda.Function_VpcConfig{
			SecurityGroupIds: intrinsics.Any(sg.Attr("GroupId")),
		},
	})

	nodes, err := s.Resolve()
	require.NoError(t, err)
	require.Len(t, nodes, 4)

	order := make([]string, len(nodes))
	deps := make(map[string][]string)
	for i, n := range nodes {
		order[i] = n.Name
		deps[n.Name] = n.Dependencies
	}

	assert.Less(t, indexOf(order, "Vpc"), indexOf(order, "DbSg"))
	assert.Less(t, indexOf(order, "DbSg"), indexOf(order, "Function"))
	assert.Less(t, indexOf(order, "FunctionRole"), indexOf(order, "Function"))
	assert.Equal(t, []string{"DbSg", "FunctionRole"}, deps["Function"])
	assert.Equal(t, []string{"Vpc"}, deps["DbSg"])
	assert.Empty(t, deps["Vpc"])
}

func TestStack_Build_ExplicitDependsOn(t *testing.T) {
	s := New("")
	attach := s.Add("IgwAttachment", ec2.VPCGatewayAttachment{InternetGatewayId: "igw-1", VpcId: "vpc-1"})
	s.Add("PublicRoute", ec2.Route{DestinationCidrBlock: "0.0.0.0/0", GatewayId: "igw-1"}, attach)

	template, err := s.Build()
	require.NoError(t, err)
	assert.Equal(t, []string{"IgwAttachment"}, template.Resources["PublicRoute"].DependsOn)
	assert.Nil(t, template.Resources["IgwAttachment"].DependsOn)
}

func TestStack_Build_SubDependencies(t *testing.T) {
	s := New("")
	s.Add("ClusterLogGroup", logs.LogGroup{LogGroupName: "/aws/rds/cluster/prd-db-cluster/postgresql"})
	s.Add("Function", lambda.Function{
		Description: intrinsics.Sub{String: "logs in ${ClusterLogGroup} for ${AWS::StackName} ${!Literal}"},
	})

	nodes, err := s.Resolve()
	require.NoError(t, err)

	for _, n := range nodes {
		if n.Name == "Function" {
			assert.Equal(t, []string{"ClusterLogGroup"}, n.Dependencies)
		}
	}
}

func TestStack_Build_ParameterRefIsNotADependency(t *testing.T) {
	s := New("")
	bucket := s.AddParameter("ArtifactBucket", lambdaaurora.Parameter{Description: "artifacts"})
	s.Add("Function", lambda.Function{
		Code: &lambda.Function_Code{S3Bucket: bucket.Ref(), S3Key: "db-query.zip"},
	})

	template, err := s.Build()
	require.NoError(t, err)

	assert.Equal(t, "String", template.Parameters["ArtifactBucket"].Type)
	code := template.Resources["Function"].Properties["Code"].(map[string]any)
	assert.Equal(t, map[string]any{"Ref": "ArtifactBucket"}, code["S3Bucket"])
}

func TestStack_Build_DetectCycle(t *testing.T) {
	s := New("")
	s.Add("A", ec2.SecurityGroup{VpcId: Handle{name: "B"}.Ref()})
	s.Add("B", ec2.SecurityGroup{VpcId: Handle{name: "C"}.Ref()})
	s.Add("C", ec2.SecurityGroup{VpcId: Handle{name: "A"}.Ref()})

	_, err := s.Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circular dependency")
	assert.Contains(t, err.Error(), "A → B → C → A")
}

func TestStack_Build_Errors(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(s *Stack)
		expected string
	}{
		{
			name: "dangling reference",
			setup: func(s *Stack) {
				s.Add("DbSg", ec2.SecurityGroup{VpcId: Handle{name: "MissingVpc"}.Ref()})
			},
			expected: "resource DbSg references undefined MissingVpc",
		},
		{
			name: "duplicate resource",
			setup: func(s *Stack) {
				s.Add("Vpc", ec2.VPC{})
				s.Add("Vpc", ec2.VPC{})
			},
			expected: "duplicate logical name: Vpc",
		},
		{
			name: "parameter collides with resource",
			setup: func(s *Stack) {
				s.Add("Vpc", ec2.VPC{})
				s.AddParameter("Vpc", lambdaaurora.Parameter{})
			},
			expected: "duplicate logical name: Vpc",
		},
		{
			name: "invalid name",
			setup: func(s *Stack) {
				s.Add("db-sg", ec2.SecurityGroup{})
			},
			expected: "must be alphanumeric",
		},
		{
			name: "nil resource",
			setup: func(s *Stack) {
				s.Add("Nothing", nil)
			},
			expected: "nil resource",
		},
		{
			name: "dangling output",
			setup: func(s *Stack) {
				s.AddOutput("ProxyEndpoint", lambdaaurora.Output{
					Value: lambdaaurora.AttrRef{Resource: "RdsProxy", Attribute: "Endpoint"},
				})
			},
			expected: "output ProxyEndpoint references undefined RdsProxy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New("")
			tt.setup(s)
			_, err := s.Build()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expected)
		})
	}
}

func TestStack_Build_CollectsAllErrors(t *testing.T) {
	s := New("")
	s.Add("Vpc", ec2.VPC{})
	s.Add("Vpc", ec2.VPC{})
	s.Add("DbSg", ec2.SecurityGroup{VpcId: Handle{name: "Missing"}.Ref()})

	_, err := s.Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate logical name: Vpc")
	assert.Contains(t, err.Error(), "references undefined Missing")
}

func TestStack_Build_OutputsAndTransform(t *testing.T) {
	s := New("")
	role := s.Add("Role", iam.Role{RoleName: "db-proxy-role"})
	s.AddTransform("AWS::SecretsManager-2020-07-23")
	s.AddTransform("AWS::SecretsManager-2020-07-23")
	s.AddOutput("RoleArn", lambdaaurora.Output{
		Description: "role",
		Value:       role.Attr("Arn"),
		Export:      &lambdaaurora.OutputExport{Name: intrinsics.StackName("RoleArn")},
	})

	template, err := s.Build()
	require.NoError(t, err)

	assert.Equal(t, "AWS::SecretsManager-2020-07-23", template.Transform)
	out := template.Outputs["RoleArn"]
	assert.Equal(t, map[string]any{"Fn::GetAtt": []any{"Role", "Arn"}}, out.Value)
	assert.Equal(t, map[string]any{"Fn::Sub": "${AWS::StackName}-RoleArn"}, out.Export.Name)
}

func TestStack_SetDeletionPolicy(t *testing.T) {
	s := New("")
	lg := s.Add("LogGroup", logs.LogGroup{RetentionInDays: 365})
	s.SetDeletionPolicy(lg, "Retain")
	s.SetDeletionPolicy(Handle{name: "Missing"}, "Retain")

	_, err := s.Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown resource Missing")
}

func TestStack_Names(t *testing.T) {
	s := New("")
	s.Add("B", ec2.VPC{})
	s.Add("A", ec2.VPC{})

	assert.Equal(t, []string{"A", "B"}, s.Names())
	assert.Equal(t, 2, s.Len())

	r, ok := s.Resource("A")
	require.True(t, ok)
	assert.Equal(t, "AWS::EC2::VPC", r.ResourceType())

	_, ok = s.Resource("C")
	assert.False(t, ok)
}

func TestToJSON(t *testing.T) {
	s := New("")
	s.Add("Vpc", ec2.VPC{CidrBlock: "10.10.0.0/24"})
	template, err := s.Build()
	require.NoError(t, err)

	data, err := ToJSON(template)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(data, &parsed))

	assert.Equal(t, "2010-09-09", parsed["AWSTemplateFormatVersion"])
	resources := parsed["Resources"].(map[string]any)
	vpc := resources["Vpc"].(map[string]any)
	assert.Equal(t, "AWS::EC2::VPC", vpc["Type"])
}

func TestToYAML(t *testing.T) {
	s := New("")
	s.Add("Vpc", ec2.VPC{CidrBlock: "10.10.0.0/24"})
	template, err := s.Build()
	require.NoError(t, err)

	data, err := ToYAML(template)
	require.NoError(t, err)

	assert.Contains(t, string(data), "AWSTemplateFormatVersion")
	assert.Contains(t, string(data), "AWS::EC2::VPC")
	assert.Contains(t, string(data), "10.10.0.0/24")
}

func indexOf(slice []string, item string) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}
