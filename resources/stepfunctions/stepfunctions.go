// Package stepfunctions contains the AWS::StepFunctions resource types used by the stack.
package stepfunctions

// StateMachine is an AWS::StepFunctions::StateMachine. Ref returns its ARN.
type StateMachine struct {
	StateMachineName        any                                `json:"StateMachineName,omitempty"`
	StateMachineType        any                                `json:"StateMachineType,omitempty"`
	RoleArn                 any                                `json:"RoleArn,omitempty"`
	Definition              any                                `json:"Definition,omitempty"`
	DefinitionSubstitutions map[string]any                     `json:"DefinitionSubstitutions,omitempty"`
	LoggingConfiguration    *StateMachine_LoggingConfiguration `json:"LoggingConfiguration,omitempty"`
	TracingConfiguration    *StateMachine_TracingConfiguration `json:"TracingConfiguration,omitempty"`
	Tags                    []any                              `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (r StateMachine) ResourceType() string { return "AWS::StepFunctions::StateMachine" }

// StateMachine_LoggingConfiguration sends execution history to CloudWatch Logs.
type StateMachine_LoggingConfiguration struct {
	Level                any                           `json:"Level,omitempty"`
	IncludeExecutionData bool                          `json:"IncludeExecutionData,omitempty"`
	Destinations         []StateMachine_LogDestination `json:"Destinations,omitempty"`
}

// StateMachine_LogDestination is a CloudWatch Logs log group destination.
type StateMachine_LogDestination struct {
	CloudWatchLogsLogGroup *StateMachine_CloudWatchLogsLogGroup `json:"CloudWatchLogsLogGroup,omitempty"`
}

// StateMachine_CloudWatchLogsLogGroup identifies the log group by ARN.
type StateMachine_CloudWatchLogsLogGroup struct {
	LogGroupArn any `json:"LogGroupArn,omitempty"`
}

// StateMachine_TracingConfiguration toggles X-Ray tracing.
type StateMachine_TracingConfiguration struct {
	Enabled bool `json:"Enabled,omitempty"`
}

// State machine types.
const (
	TypeStandard = "STANDARD"
	TypeExpress  = "EXPRESS"
)
