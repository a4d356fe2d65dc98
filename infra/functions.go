package infra

import (
	lambdaaurora "github.com/lex00/lambda-aurora-go"
	"github.com/lex00/lambda-aurora-go/internal/stack"
	. "github.com/lex00/lambda-aurora-go/intrinsics"
	"github.com/lex00/lambda-aurora-go/resources/iam"
	"github.com/lex00/lambda-aurora-go/resources/lambda"
	"github.com/lex00/lambda-aurora-go/resources/logs"
)

// Handler environment variable names.
const (
	EnvProxyEndpoint = "PROXY_ENDPOINT"
	EnvSecretID      = "SECRET_ID"
	EnvLogLevel      = "LOG_LEVEL"
	EnvInsertName    = "INSERT_NAME"
	EnvDatabaseName  = "DB_NAME"
)

// Function code objects under ArtifactPrefix.
const (
	DbAccessArtifact          = "db-access.zip"
	DbQueryArtifact           = "db-query.zip"
	CreateNumberArrayArtifact = "create-number-array.zip"
)

func (b *builder) parameters() {
	b.artifactBucket = b.s.AddParameter("ArtifactBucket", lambdaaurora.Parameter{
		Type:        "String",
		Description: "S3 bucket holding the Lambda deployment packages",
	})
	b.artifactPrefix = b.s.AddParameter("ArtifactPrefix", lambdaaurora.Parameter{
		Type:        "String",
		Description: "Key prefix of the deployment packages, including the trailing slash",
		Default:     "lambda/",
	})
}

// functionSpec describes one Lambda function of the stack.
type functionSpec struct {
	name        string
	suffix      string
	description string
	artifact    string
	// database functions run in the VPC and read the admin secret.
	database bool
	env      map[string]any
}

func (b *builder) lambdaFunctions() {
	// ----------------------------------------------------------------------------
	// Lambda Functions
	// ----------------------------------------------------------------------------

	dbEnv := func() map[string]any {
		return map[string]any{
			EnvProxyEndpoint: b.proxy.Attr("Endpoint"),
			EnvSecretID:      b.adminSecret.Ref(),
			EnvLogLevel:      b.opts.LogLevel,
			EnvDatabaseName:  b.opts.DatabaseName,
		}
	}

	b.dbAccessFunction = b.function(functionSpec{
		name:        "DbAccessFunction",
		suffix:      "db-access",
		description: "Read test_table through RDS Proxy",
		artifact:    DbAccessArtifact,
		database:    true,
		env:         dbEnv(),
	})

	queryEnv := dbEnv()
	if b.opts.InsertName != "" {
		queryEnv[EnvInsertName] = b.opts.InsertName
	}
	b.dbQueryFunction = b.function(functionSpec{
		name:        "DbQueryFunction",
		suffix:      "db-query",
		description: "Read, insert into and re-read test_table through RDS Proxy",
		artifact:    DbQueryArtifact,
		database:    true,
		env:         queryEnv,
	})

	b.createNumberArrayFunction = b.function(functionSpec{
		name:        "CreateNumberArrayFunction",
		suffix:      "create-number-array",
		description: "Return [1..number]",
		artifact:    CreateNumberArrayArtifact,
		env:         map[string]any{EnvLogLevel: b.opts.LogLevel},
	})
}

func (b *builder) function(spec functionSpec) stack.Handle {
	o := b.opts
	functionName := StackName(spec.suffix)

	managed := Any(ManagedPolicyArn("AWSXRayDaemonWriteAccess"))
	if spec.database {
		managed = append(managed,
			ManagedPolicyArn("service-role/AWSLambdaVPCAccessExecutionRole"),
			b.secretPolicy.Ref(),
		)
	} else {
		managed = append(managed, ManagedPolicyArn("service-role/AWSLambdaBasicExecutionRole"))
	}

	role := b.s.Add(spec.name+"Role", iam.Role{
		AssumeRolePolicyDocument: NewPolicyDocument(AssumeRoleStatement("lambda.amazonaws.com")),
		ManagedPolicyArns:        managed,
	})

	logGroup := b.s.Add(spec.name+"LogGroup", logs.LogGroup{
		LogGroupName:    Sub{String: "/aws/lambda/${AWS::StackName}-" + spec.suffix},
		RetentionInDays: o.FunctionLogRetention,
	})

	fn := lambda.Function{
		FunctionName:  functionName,
		Description:   spec.description,
		Runtime:       "provided.al2023",
		Handler:       "bootstrap",
		Architectures: Any(o.FunctionArchitecture),
		Code: &lambda.Function_Code{
			S3Bucket: b.artifactBucket.Ref(),
			S3Key:    Sub{String: "${" + b.artifactPrefix.Name() + "}" + spec.artifact},
		},
		Role:          role.Attr("Arn"),
		MemorySize:    o.FunctionMemorySize,
		Timeout:       o.FunctionTimeout,
		Environment:   &lambda.Function_Environment{Variables: spec.env},
		TracingConfig: &lambda.Function_TracingConfig{Mode: "Active"},
		LoggingConfig: &lambda.Function_LoggingConfig{
			LogGroup:  logGroup.Ref(),
			LogFormat: "JSON",
		},
	}
	if spec.database {
		fn.VpcConfig = &lambda.Function_VpcConfig{
			SecurityGroupIds: Any(b.dbClientSg.Attr("GroupId")),
			SubnetIds:        refs(b.privateSubnets),
		}
	}

	return b.s.Add(spec.name, fn)
}
