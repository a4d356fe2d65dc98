// Package iam contains the AWS::IAM resource types used by the stack.
package iam

// Role is an AWS::IAM::Role.
type Role struct {
	RoleName                 any           `json:"RoleName,omitempty"`
	Description              any           `json:"Description,omitempty"`
	Path                     any           `json:"Path,omitempty"`
	AssumeRolePolicyDocument any           `json:"AssumeRolePolicyDocument,omitempty"`
	ManagedPolicyArns        []any         `json:"ManagedPolicyArns,omitempty"`
	Policies                 []Role_Policy `json:"Policies,omitempty"`
	Tags                     []any         `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (r Role) ResourceType() string { return "AWS::IAM::Role" }

// Role_Policy is an inline policy embedded in a Role.
type Role_Policy struct {
	PolicyName     any `json:"PolicyName,omitempty"`
	PolicyDocument any `json:"PolicyDocument,omitempty"`
}

// ManagedPolicy is an AWS::IAM::ManagedPolicy. Ref returns the policy ARN.
type ManagedPolicy struct {
	ManagedPolicyName any   `json:"ManagedPolicyName,omitempty"`
	Description       any   `json:"Description,omitempty"`
	PolicyDocument    any   `json:"PolicyDocument,omitempty"`
	Roles             []any `json:"Roles,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (r ManagedPolicy) ResourceType() string { return "AWS::IAM::ManagedPolicy" }

// InstanceProfile is an AWS::IAM::InstanceProfile.
type InstanceProfile struct {
	InstanceProfileName any   `json:"InstanceProfileName,omitempty"`
	Roles               []any `json:"Roles,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (r InstanceProfile) ResourceType() string { return "AWS::IAM::InstanceProfile" }
