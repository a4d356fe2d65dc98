// Package logs contains the AWS::Logs resource types used by the stack.
package logs

// LogGroup is an AWS::Logs::LogGroup.
type LogGroup struct {
	LogGroupName    any   `json:"LogGroupName,omitempty"`
	RetentionInDays int   `json:"RetentionInDays,omitempty"`
	Tags            []any `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (r LogGroup) ResourceType() string { return "AWS::Logs::LogGroup" }
