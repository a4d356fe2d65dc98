package rds

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
		{"DBClusterParameterGroup", DBClusterParameterGroup{}, "AWS::RDS::DBClusterParameterGroup"},
		{"DBParameterGroup", DBParameterGroup{}, "AWS::RDS::DBParameterGroup"},
		{"DBSubnetGroup", DBSubnetGroup{}, "AWS::RDS::DBSubnetGroup"},
		{"DBCluster", DBCluster{}, "AWS::RDS::DBCluster"},
		{"DBInstance", DBInstance{}, "AWS::RDS::DBInstance"},
		{"DBProxy", DBProxy{}, "AWS::RDS::DBProxy"},
		{"DBProxyTargetGroup", DBProxyTargetGroup{}, "AWS::RDS::DBProxyTargetGroup"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.resource.ResourceType())
		})
	}
}

func TestDBInstance_ExplicitFalse(t *testing.T) {
	instance := DBInstance{
		DBInstanceClass:    "db.t3.medium",
		PubliclyAccessible: false,
	}

	data, err := json.Marshal(instance)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(data, &parsed))

	// any-typed booleans keep an explicit false
	assert.Equal(t, false, parsed["PubliclyAccessible"])
	assert.NotContains(t, parsed, "EnablePerformanceInsights")
}

func TestDBProxySerialization(t *testing.T) {
	proxy := DBProxy{
		DBProxyName:  "db-proxy",
		EngineFamily: "POSTGRESQL",
		RequireTLS:   true,
		Auth: []DBProxy_AuthFormat{{
			AuthScheme: "SECRETS",
			IAMAuth:    "DISABLED",
			SecretArn:  "arn:aws:secretsmanager:ap-northeast-1:123456789012:secret:admin",
		}},
	}

	data, err := json.Marshal(proxy)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(data, &parsed))

	assert.Equal(t, "db-proxy", parsed["DBProxyName"])
	assert.Equal(t, true, parsed["RequireTLS"])
	assert.NotContains(t, parsed, "DebugLogging")

	auth := parsed["Auth"].([]any)
	require.Len(t, auth, 1)
	assert.Equal(t, "SECRETS", auth[0].(map[string]any)["AuthScheme"])
}
