package asl

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVariants(t *testing.T) {
	variants := Variants(0)
	require.Len(t, variants, 4)

	tests := []struct {
		name           string
		invocationType InvocationType
		maxConcurrency int
	}{
		{"SyncBounded", RequestResponse, DefaultMaxConcurrency},
		{"SyncUnbounded", RequestResponse, 0},
		{"AsyncBounded", Event, DefaultMaxConcurrency},
		{"AsyncUnbounded", Event, 0},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := variants[i]
			assert.Equal(t, tt.name, v.Name)

			def := New(v, Options{})
			require.NoError(t, def.Validate())
			assert.Equal(t, tt.invocationType, def.InvocationType())
			assert.Equal(t, tt.maxConcurrency, def.MaxConcurrency())
		})
	}
}

func TestVariants_CustomBound(t *testing.T) {
	for _, v := range Variants(3) {
		if v.Name == "SyncBounded" || v.Name == "AsyncBounded" {
			assert.Equal(t, 3, v.MaxConcurrency)
		} else {
			assert.Zero(t, v.MaxConcurrency)
		}
	}
}

func TestDefinition_JSON(t *testing.T) {
	def := New(Variant{Name: "SyncBounded", InvocationType: RequestResponse, MaxConcurrency: 10}, Options{})

	data, err := def.JSON()
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(data, &parsed))

	assert.Equal(t, "CreateNumberArray", parsed["StartAt"])
	states := parsed["States"].(map[string]any)

	create := states["CreateNumberArray"].(map[string]any)
	assert.Equal(t, "arn:aws:states:::lambda:invoke", create["Resource"])
	assert.Equal(t, "InvokePerItem", create["Next"])
	assert.Equal(t, "${CreateNumberArrayFunctionArn}", create["Parameters"].(map[string]any)["FunctionName"])

	mapState := states["InvokePerItem"].(map[string]any)
	assert.Equal(t, "Map", mapState["Type"])
	assert.Equal(t, "$.numberArray", mapState["ItemsPath"])
	assert.Equal(t, float64(10), mapState["MaxConcurrency"])
	assert.Equal(t, true, mapState["End"])

	processor := mapState["ItemProcessor"].(map[string]any)
	task := processor["States"].(map[string]any)["InvokeDbQuery"].(map[string]any)
	params := task["Parameters"].(map[string]any)
	assert.Equal(t, "${DbQueryFunctionArn}", params["FunctionName"])
	assert.Equal(t, "RequestResponse", params["InvocationType"])
	assert.Equal(t, "States.Format('item-{}', $.number)", params["Payload"].(map[string]any)["name.$"])
}

func TestDefinition_UnboundedKeepsExplicitZero(t *testing.T) {
	def := New(Variant{Name: "AsyncUnbounded", InvocationType: Event}, Options{})

	doc, err := def.Document()
	require.NoError(t, err)

	mapState := doc["States"].(map[string]any)["InvokePerItem"].(map[string]any)
	assert.Equal(t, float64(0), mapState["MaxConcurrency"])
}

func TestDefinition_AsyncResultSelector(t *testing.T) {
	def := New(Variant{Name: "AsyncBounded", InvocationType: Event, MaxConcurrency: 10}, Options{})
	task := def.perItemTask()
	require.NotNil(t, task)
	assert.Equal(t, map[string]any{"statusCode.$": "$.StatusCode"}, task.ResultSelector)
}

func TestOptions(t *testing.T) {
	def := New(Variants(0)[0], Options{ItemNameFormat: "row-{}", TimeoutSeconds: 300})
	assert.Equal(t, 300, def.TimeoutSeconds)

	payload := def.perItemTask().Parameters["Payload"].(map[string]any)
	assert.Equal(t, "States.Format('row-{}', $.number)", payload["name.$"])
}

func TestPlaceholder(t *testing.T) {
	assert.Equal(t, "${DbQueryFunctionArn}", Placeholder(DbQueryArnKey))
}
