// Package asl builds the Amazon States Language definitions of the fan-out
// state machines.
//
// Every variant has the same shape: a task that asks the number-array
// function for [1..n], then a Map state that invokes the query function once
// per element. Variants differ in invocation type and Map concurrency.
package asl

import (
	"encoding/json"
	"fmt"
)

// InvocationType is the Lambda invocation type of the per-item task.
type InvocationType string

const (
	// RequestResponse waits for each invocation and collects its payload.
	RequestResponse InvocationType = "RequestResponse"
	// Event fires each invocation and moves on.
	Event InvocationType = "Event"
)

// DefaultMaxConcurrency bounds the Map state of the bounded variants.
const DefaultMaxConcurrency = 10

// Function ARN placeholders, filled through DefinitionSubstitutions.
const (
	CreateNumberArrayArnKey = "CreateNumberArrayFunctionArn"
	DbQueryArnKey           = "DbQueryFunctionArn"
)

// Resource ARN of the optimized Lambda integration.
const lambdaInvoke = "arn:aws:states:::lambda:invoke"

// State names.
const (
	StateCreateNumberArray = "CreateNumberArray"
	StateInvokePerItem     = "InvokePerItem"
	StateInvokeDbQuery     = "InvokeDbQuery"
)

// Variant is one combination of invocation type and concurrency.
type Variant struct {
	// Name is used for the logical name and state machine name suffix.
	Name           string
	InvocationType InvocationType
	// MaxConcurrency of 0 leaves the Map state unbounded.
	MaxConcurrency int
}

// Variants returns the four fan-out variants. bounded is the MaxConcurrency
// of the bounded ones; 0 selects DefaultMaxConcurrency.
func Variants(bounded int) []Variant {
	if bounded <= 0 {
		bounded = DefaultMaxConcurrency
	}
	return []Variant{
		{Name: "SyncBounded", InvocationType: RequestResponse, MaxConcurrency: bounded},
		{Name: "SyncUnbounded", InvocationType: RequestResponse},
		{Name: "AsyncBounded", InvocationType: Event, MaxConcurrency: bounded},
		{Name: "AsyncUnbounded", InvocationType: Event},
	}
}

// Options tune the generated definition.
type Options struct {
	// ItemNameFormat is the States.Format template of the per-item name.
	ItemNameFormat string
	// TimeoutSeconds caps a whole execution; 0 means no cap.
	TimeoutSeconds int
}

// Definition is a state machine definition.
type Definition struct {
	Comment        string            `json:"Comment,omitempty"`
	StartAt        string            `json:"StartAt"`
	TimeoutSeconds int               `json:"TimeoutSeconds,omitempty"`
	States         map[string]*State `json:"States"`
}

// State is a single Task or Map state.
type State struct {
	Type           string         `json:"Type"`
	Comment        string         `json:"Comment,omitempty"`
	Resource       string         `json:"Resource,omitempty"`
	Parameters     map[string]any `json:"Parameters,omitempty"`
	ResultSelector map[string]any `json:"ResultSelector,omitempty"`
	ItemsPath      string         `json:"ItemsPath,omitempty"`
	ItemSelector   map[string]any `json:"ItemSelector,omitempty"`
	ItemProcessor  *Processor     `json:"ItemProcessor,omitempty"`
	MaxConcurrency *int           `json:"MaxConcurrency,omitempty"`
	Next           string         `json:"Next,omitempty"`
	End            bool           `json:"End,omitempty"`
}

// Processor is the inline sub-workflow of a Map state.
type Processor struct {
	ProcessorConfig *ProcessorConfig  `json:"ProcessorConfig,omitempty"`
	StartAt         string            `json:"StartAt"`
	States          map[string]*State `json:"States"`
}

// ProcessorConfig selects the Map processing mode.
type ProcessorConfig struct {
	Mode string `json:"Mode"`
}

// Placeholder returns the ${key} form used inside a definition.
func Placeholder(key string) string {
	return "${" + key + "}"
}

// New builds the definition of a fan-out variant.
func New(v Variant, opts Options) *Definition {
	format := opts.ItemNameFormat
	if format == "" {
		format = "item-{}"
	}

	concurrency := v.MaxConcurrency

	perItem := &State{
		Type:     "Task",
		Resource: lambdaInvoke,
		Parameters: map[string]any{
			"FunctionName":   Placeholder(DbQueryArnKey),
			"InvocationType": string(v.InvocationType),
			"Payload": map[string]any{
				"name.$": fmt.Sprintf("States.Format('%s', $.number)", format),
			},
		},
		End: true,
	}
	if v.InvocationType == Event {
		perItem.ResultSelector = map[string]any{"statusCode.$": "$.StatusCode"}
	} else {
		perItem.ResultSelector = map[string]any{"result.$": "$.Payload"}
	}

	return &Definition{
		Comment:        fmt.Sprintf("Create [1..n] and invoke the query function per item (%s)", v.Name),
		StartAt:        StateCreateNumberArray,
		TimeoutSeconds: opts.TimeoutSeconds,
		States: map[string]*State{
			StateCreateNumberArray: {
				Type:     "Task",
				Resource: lambdaInvoke,
				Parameters: map[string]any{
					"FunctionName": Placeholder(CreateNumberArrayArnKey),
					"Payload.$":    "$",
				},
				ResultSelector: map[string]any{"numberArray.$": "$.Payload.numberArray"},
				Next:           StateInvokePerItem,
			},
			StateInvokePerItem: {
				Type:           "Map",
				ItemsPath:      "$.numberArray",
				ItemSelector:   map[string]any{"number.$": "$$.Map.Item.Value"},
				MaxConcurrency: &concurrency,
				ItemProcessor: &Processor{
					ProcessorConfig: &ProcessorConfig{Mode: "INLINE"},
					StartAt:         StateInvokeDbQuery,
					States:          map[string]*State{StateInvokeDbQuery: perItem},
				},
				End: true,
			},
		},
	}
}

// JSON renders the definition.
func (d *Definition) JSON() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// Document returns the definition as a generic JSON object, the form a
// template property expects.
func (d *Definition) Document() (map[string]any, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// InvocationType returns the invocation type of the per-item task.
func (d *Definition) InvocationType() InvocationType {
	task := d.perItemTask()
	if task == nil {
		return ""
	}
	it, _ := task.Parameters["InvocationType"].(string)
	return InvocationType(it)
}

// MaxConcurrency returns the Map state's concurrency, 0 when unbounded.
func (d *Definition) MaxConcurrency() int {
	m, ok := d.States[StateInvokePerItem]
	if !ok || m.MaxConcurrency == nil {
		return 0
	}
	return *m.MaxConcurrency
}

func (d *Definition) perItemTask() *State {
	m, ok := d.States[StateInvokePerItem]
	if !ok || m.ItemProcessor == nil {
		return nil
	}
	return m.ItemProcessor.States[StateInvokeDbQuery]
}
