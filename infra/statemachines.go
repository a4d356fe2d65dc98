package infra

import (
	"fmt"

	"github.com/lex00/lambda-aurora-go/internal/asl"
	. "github.com/lex00/lambda-aurora-go/intrinsics"
	"github.com/lex00/lambda-aurora-go/resources/iam"
	"github.com/lex00/lambda-aurora-go/resources/logs"
	"github.com/lex00/lambda-aurora-go/resources/stepfunctions"
)

// StateMachineLogicalName returns the logical name of a fan-out variant.
func StateMachineLogicalName(v asl.Variant) string {
	return "FanOut" + v.Name + "StateMachine"
}

func (b *builder) fanOutStateMachines() error {
	// ----------------------------------------------------------------------------
	// Step Functions fan-out
	// ----------------------------------------------------------------------------

	createArn := b.createNumberArrayFunction.Attr("Arn")
	queryArn := b.dbQueryFunction.Attr("Arn")

	role := b.s.Add("FanOutStateMachineRole", iam.Role{
		AssumeRolePolicyDocument: NewPolicyDocument(AssumeRoleStatement("states.amazonaws.com")),
		ManagedPolicyArns:        Any(ManagedPolicyArn("AWSXRayDaemonWriteAccess")),
		Policies: []iam.Role_Policy{
			{
				PolicyName: "InvokeFunctions",
				PolicyDocument: NewPolicyDocument(PolicyStatement{
					Effect: "Allow",
					Action: "lambda:InvokeFunction",
					Resource: Any(
						createArn,
						queryArn,
						Join{Delimiter: ":", Values: Any(createArn, "*")},
						Join{Delimiter: ":", Values: Any(queryArn, "*")},
					),
				}),
			},
			{
				// Log delivery actions do not support resource-level permissions.
				PolicyName: "DeliverLogs",
				PolicyDocument: NewPolicyDocument(PolicyStatement{
					Effect: "Allow",
					Action: Any(
						"logs:CreateLogDelivery",
						"logs:GetLogDelivery",
						"logs:UpdateLogDelivery",
						"logs:DeleteLogDelivery",
						"logs:ListLogDeliveries",
						"logs:PutResourcePolicy",
						"logs:DescribeResourcePolicies",
						"logs:DescribeLogGroups",
					),
					Resource: "*",
				}),
			},
		},
	})

	logGroup := b.s.Add("FanOutStateMachineLogGroup", logs.LogGroup{
		LogGroupName:    Sub{String: "/aws/vendedlogs/states/${AWS::StackName}-fan-out"},
		RetentionInDays: b.opts.FunctionLogRetention,
	})

	for _, v := range asl.Variants(b.opts.MaxConcurrency) {
		def := asl.New(v, asl.Options{
			ItemNameFormat: b.opts.ItemNameFormat,
			TimeoutSeconds: b.opts.StateMachineTimeout,
		})
		if err := def.Validate(); err != nil {
			return fmt.Errorf("state machine %s: %w", v.Name, err)
		}
		doc, err := def.Document()
		if err != nil {
			return fmt.Errorf("state machine %s: %w", v.Name, err)
		}

		name := StateMachineLogicalName(v)
		h := b.s.Add(name, stepfunctions.StateMachine{
			StateMachineName: StackName("fan-out-" + kebab(v.Name)),
			StateMachineType: stepfunctions.TypeStandard,
			RoleArn:          role.Attr("Arn"),
			Definition:       doc,
			DefinitionSubstitutions: map[string]any{
				asl.CreateNumberArrayArnKey: createArn,
				asl.DbQueryArnKey:           queryArn,
			},
			LoggingConfiguration: &stepfunctions.StateMachine_LoggingConfiguration{
				Level: "ERROR",
				Destinations: []stepfunctions.StateMachine_LogDestination{{
					CloudWatchLogsLogGroup: &stepfunctions.StateMachine_CloudWatchLogsLogGroup{
						LogGroupArn: logGroup.Attr("Arn"),
					},
				}},
			},
			TracingConfiguration: &stepfunctions.StateMachine_TracingConfiguration{Enabled: true},
		})
		b.stateMachines = append(b.stateMachines, stateMachine{name: name, handle: h})
	}
	return nil
}
