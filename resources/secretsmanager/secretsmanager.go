// Package secretsmanager contains the AWS::SecretsManager resource types used by the stack.
package secretsmanager

// Secret is an AWS::SecretsManager::Secret. Ref returns the secret ARN.
type Secret struct {
	Name                 any                          `json:"Name,omitempty"`
	Description          any                          `json:"Description,omitempty"`
	GenerateSecretString *Secret_GenerateSecretString `json:"GenerateSecretString,omitempty"`
	Tags                 []any                        `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (r Secret) ResourceType() string { return "AWS::SecretsManager::Secret" }

// Secret_GenerateSecretString has Secrets Manager generate the secret value.
type Secret_GenerateSecretString struct {
	SecretStringTemplate    any  `json:"SecretStringTemplate,omitempty"`
	GenerateStringKey       any  `json:"GenerateStringKey,omitempty"`
	PasswordLength          int  `json:"PasswordLength,omitempty"`
	ExcludeCharacters       any  `json:"ExcludeCharacters,omitempty"`
	ExcludePunctuation      bool `json:"ExcludePunctuation,omitempty"`
	RequireEachIncludedType bool `json:"RequireEachIncludedType,omitempty"`
}

// SecretTargetAttachment completes a secret with the connection details of
// the database it belongs to.
type SecretTargetAttachment struct {
	SecretId   any `json:"SecretId,omitempty"`
	TargetId   any `json:"TargetId,omitempty"`
	TargetType any `json:"TargetType,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (r SecretTargetAttachment) ResourceType() string {
	return "AWS::SecretsManager::SecretTargetAttachment"
}

// RotationSchedule is an AWS::SecretsManager::RotationSchedule.
//
// A HostedRotationLambda requires the AWS::SecretsManager-2020-07-23
// transform on the template.
type RotationSchedule struct {
	SecretId                  any                                    `json:"SecretId,omitempty"`
	HostedRotationLambda      *RotationSchedule_HostedRotationLambda `json:"HostedRotationLambda,omitempty"`
	RotationRules             *RotationSchedule_RotationRules        `json:"RotationRules,omitempty"`
	RotateImmediatelyOnUpdate any                                    `json:"RotateImmediatelyOnUpdate,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (r RotationSchedule) ResourceType() string { return "AWS::SecretsManager::RotationSchedule" }

// RotationSchedule_HostedRotationLambda describes a rotation function created
// from an AWS-provided template. Subnet and security group ids are
// comma-separated strings.
type RotationSchedule_HostedRotationLambda struct {
	RotationType        any `json:"RotationType,omitempty"`
	RotationLambdaName  any `json:"RotationLambdaName,omitempty"`
	VpcSecurityGroupIds any `json:"VpcSecurityGroupIds,omitempty"`
	VpcSubnetIds        any `json:"VpcSubnetIds,omitempty"`
	ExcludeCharacters   any `json:"ExcludeCharacters,omitempty"`
}

// RotationSchedule_RotationRules sets the rotation interval.
type RotationSchedule_RotationRules struct {
	AutomaticallyAfterDays int `json:"AutomaticallyAfterDays,omitempty"`
	ScheduleExpression     any `json:"ScheduleExpression,omitempty"`
}

// Attachment target types.
const (
	TargetTypeDBCluster  = "AWS::RDS::DBCluster"
	TargetTypeDBInstance = "AWS::RDS::DBInstance"
)

// Hosted rotation types.
const (
	RotationPostgreSQLSingleUser = "PostgreSQLSingleUser"
	RotationPostgreSQLMultiUser  = "PostgreSQLMultiUser"
)
