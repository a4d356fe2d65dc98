package intrinsics

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRef_MarshalJSON(t *testing.T) {
	ref := Ref{LogicalName: "Vpc"}
	data, err := json.Marshal(ref)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Ref": "Vpc"}`, string(data))
}

func TestJoin_MarshalJSON(t *testing.T) {
	join := Join{Delimiter: ",", Values: []any{Ref{LogicalName: "PrivateSubnet1"}, Ref{LogicalName: "PrivateSubnet2"}}}
	data, err := json.Marshal(join)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Fn::Join": [",", [{"Ref": "PrivateSubnet1"}, {"Ref": "PrivateSubnet2"}]]}`, string(data))
}

func TestStackName(t *testing.T) {
	data, err := json.Marshal(StackName("db-access"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"Fn::Sub": "${AWS::StackName}-db-access"}`, string(data))
}

func TestSubnetCidr(t *testing.T) {
	data, err := json.Marshal(SubnetCidr("10.10.0.0/24", 6, 4, 2))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Fn::Select"`)
	assert.Contains(t, string(data), `"Fn::Cidr"`)
	assert.Contains(t, string(data), `"10.10.0.0/24"`)
}

func TestAZ(t *testing.T) {
	data, err := json.Marshal(AZ(1))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Fn::Select"`)
	assert.Contains(t, string(data), `"Fn::GetAZs"`)
}

func TestManagedPolicyArn(t *testing.T) {
	data, err := json.Marshal(ManagedPolicyArn("AmazonSSMManagedInstanceCore"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"Fn::Sub": "arn:${AWS::Partition}:iam::aws:policy/AmazonSSMManagedInstanceCore"}`, string(data))
}

func TestServicePrincipal_MarshalJSON(t *testing.T) {
	tests := []struct {
		name      string
		principal ServicePrincipal
		expected  string
	}{
		{"single", ServicePrincipal{"lambda.amazonaws.com"}, `{"Service": "lambda.amazonaws.com"}`},
		{"multiple", ServicePrincipal{"rds.amazonaws.com", "states.amazonaws.com"}, `{"Service": ["rds.amazonaws.com", "states.amazonaws.com"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.principal)
			require.NoError(t, err)
			assert.JSONEq(t, tt.expected, string(data))
		})
	}
}

func TestNewPolicyDocument(t *testing.T) {
	doc := NewPolicyDocument(AssumeRoleStatement("ec2.amazonaws.com"))
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"Version": "2012-10-17",
		"Statement": [{
			"Effect": "Allow",
			"Principal": {"Service": "ec2.amazonaws.com"},
			"Action": "sts:AssumeRole"
		}]
	}`, string(data))
}
