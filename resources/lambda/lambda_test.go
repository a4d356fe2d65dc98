package lambda

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFunction_ResourceType(t *testing.T) {
	assert.Equal(t, "AWS::Lambda::Function", Function{}.ResourceType())
}

func TestFunctionSerialization(t *testing.T) {
	fn := Function{
		Handler:    "bootstrap",
		Runtime:    "provided.al2023",
		MemorySize: 128,
		Timeout:    30,
		Environment: &Function_Environment{
			Variables: map[string]any{
				"SECRET_ID": "prd-db-cluster/AdminLoginInfo",
			},
		},
		TracingConfig: &Function_TracingConfig{Mode: "Active"},
	}

	data, err := json.Marshal(fn)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(data, &parsed))

	assert.Equal(t, "bootstrap", parsed["Handler"])
	assert.Equal(t, "provided.al2023", parsed["Runtime"])
	assert.Equal(t, float64(128), parsed["MemorySize"])
	assert.NotContains(t, parsed, "VpcConfig")

	env := parsed["Environment"].(map[string]any)
	vars := env["Variables"].(map[string]any)
	assert.Equal(t, "prd-db-cluster/AdminLoginInfo", vars["SECRET_ID"])
	assert.Equal(t, "Active", parsed["TracingConfig"].(map[string]any)["Mode"])
}
