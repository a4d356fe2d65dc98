// Package lambda contains the AWS::Lambda resource types used by the stack.
package lambda

// Function is an AWS::Lambda::Function.
type Function struct {
	FunctionName  any                     `json:"FunctionName,omitempty"`
	Description   any                     `json:"Description,omitempty"`
	Runtime       any                     `json:"Runtime,omitempty"`
	Handler       any                     `json:"Handler,omitempty"`
	Architectures []any                   `json:"Architectures,omitempty"`
	Code          *Function_Code          `json:"Code,omitempty"`
	Role          any                     `json:"Role,omitempty"`
	MemorySize    int                     `json:"MemorySize,omitempty"`
	Timeout       int                     `json:"Timeout,omitempty"`
	Environment   *Function_Environment   `json:"Environment,omitempty"`
	VpcConfig     *Function_VpcConfig     `json:"VpcConfig,omitempty"`
	TracingConfig *Function_TracingConfig `json:"TracingConfig,omitempty"`
	LoggingConfig *Function_LoggingConfig `json:"LoggingConfig,omitempty"`
	Tags          []any                   `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (r Function) ResourceType() string { return "AWS::Lambda::Function" }

// Function_Code points at the deployment package.
type Function_Code struct {
	S3Bucket any `json:"S3Bucket,omitempty"`
	S3Key    any `json:"S3Key,omitempty"`
	ZipFile  any `json:"ZipFile,omitempty"`
}

// Function_Environment holds the function's environment variables.
type Function_Environment struct {
	Variables map[string]any `json:"Variables,omitempty"`
}

// Function_VpcConfig places the function in a VPC.
type Function_VpcConfig struct {
	SecurityGroupIds []any `json:"SecurityGroupIds,omitempty"`
	SubnetIds        []any `json:"SubnetIds,omitempty"`
}

// Function_TracingConfig sets the X-Ray tracing mode (Active or PassThrough).
type Function_TracingConfig struct {
	Mode any `json:"Mode,omitempty"`
}

// Function_LoggingConfig routes the function's logs.
type Function_LoggingConfig struct {
	LogGroup  any `json:"LogGroup,omitempty"`
	LogFormat any `json:"LogFormat,omitempty"`
}
