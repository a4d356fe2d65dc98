package stepfunctions

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateMachine_ResourceType(t *testing.T) {
	assert.Equal(t, "AWS::StepFunctions::StateMachine", StateMachine{}.ResourceType())
}

func TestStateMachineSerialization(t *testing.T) {
	sm := StateMachine{
		StateMachineType: TypeStandard,
		Definition:       map[string]any{"StartAt": "CreateNumberArray"},
		DefinitionSubstitutions: map[string]any{
			"DbQueryFunctionArn": "arn:aws:lambda:ap-northeast-1:123456789012:function:db-query",
		},
		TracingConfiguration: &StateMachine_TracingConfiguration{Enabled: true},
	}

	data, err := json.Marshal(sm)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"StateMachineType": "STANDARD",
		"Definition":       {"StartAt": "CreateNumberArray"},
		"DefinitionSubstitutions": {
			"DbQueryFunctionArn": "arn:aws:lambda:ap-northeast-1:123456789012:function:db-query"
		},
		"TracingConfiguration": {"Enabled": true}
	}`, string(data))
}
