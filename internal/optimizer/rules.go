package optimizer

import (
	"github.com/lex00/lambda-aurora-go/internal/stack"
)

const openCidr = "0.0.0.0/0"

// rulesByType holds the rules that apply to each CloudFormation type.
var rulesByType = map[string][]Rule{
	"AWS::RDS::DBCluster":              rdsClusterRules,
	"AWS::RDS::DBInstance":             rdsInstanceRules,
	"AWS::RDS::DBProxy":                rdsProxyRules,
	"AWS::Lambda::Function":            lambdaFunctionRules,
	"AWS::Logs::LogGroup":              logGroupRules,
	"AWS::StepFunctions::StateMachine": stateMachineRules,
	"AWS::EC2::SecurityGroup":          securityGroupRules,
	"AWS::EC2::SecurityGroupIngress":   ingressRules,
	"AWS::EC2::Instance":               ec2InstanceRules,
	"AWS::SecretsManager::Secret":      secretRules,
}

var rdsClusterRules = []Rule{
	{
		ID:          "OPT-RDS-001",
		Category:    "security",
		Severity:    "high",
		Title:       "Enable Aurora storage encryption",
		Description: "Unencrypted cluster storage leaves data, snapshots and backups readable at rest.",
		Suggestion:  "Set StorageEncrypted to true. It can only be set when the cluster is created.",
		Check: func(n stack.Node, _ index) bool {
			return !boolProp(n.Properties, "StorageEncrypted")
		},
	},
	{
		ID:          "OPT-RDS-002",
		Category:    "reliability",
		Severity:    "medium",
		Title:       "Consider enabling deletion protection",
		Description: "Without deletion protection the cluster can be dropped by a stack delete or a console click.",
		Suggestion:  "Set DeletionProtection to true for production clusters.",
		Check: func(n stack.Node, _ index) bool {
			return !boolProp(n.Properties, "DeletionProtection")
		},
	},
	{
		ID:          "OPT-RDS-003",
		Category:    "reliability",
		Severity:    "low",
		Title:       "Keep at least a week of backups",
		Description: "A short backup retention window limits point-in-time recovery.",
		Suggestion:  "Set BackupRetentionPeriod to 7 days or more.",
		Check: func(n stack.Node, _ index) bool {
			days, ok := intProp(n.Properties, "BackupRetentionPeriod")
			return !ok || days < 7
		},
	},
}

var rdsInstanceRules = []Rule{
	{
		ID:          "OPT-RDS-004",
		Category:    "security",
		Severity:    "high",
		Title:       "Database instance is publicly accessible",
		Description: "A public instance gets an internet-resolvable address.",
		Suggestion:  "Set PubliclyAccessible to false and reach the database through the proxy or a bastion host.",
		Check: func(n stack.Node, _ index) bool {
			return boolProp(n.Properties, "PubliclyAccessible")
		},
	},
	{
		ID:          "OPT-RDS-005",
		Category:    "performance",
		Severity:    "low",
		Title:       "Enable enhanced monitoring",
		Description: "Enhanced monitoring reports OS-level metrics that CloudWatch does not collect.",
		Suggestion:  "Set MonitoringInterval (for example 60) and MonitoringRoleArn.",
		Check: func(n stack.Node, _ index) bool {
			interval, _ := intProp(n.Properties, "MonitoringInterval")
			return interval == 0
		},
	},
	{
		ID:          "OPT-RDS-006",
		Category:    "performance",
		Severity:    "low",
		Title:       "Enable Performance Insights",
		Description: "Performance Insights shows database load by wait event and query.",
		Suggestion:  "Set EnablePerformanceInsights to true.",
		Check: func(n stack.Node, _ index) bool {
			return !boolProp(n.Properties, "EnablePerformanceInsights")
		},
	},
}

var rdsProxyRules = []Rule{
	{
		ID:          "OPT-PRX-001",
		Category:    "security",
		Severity:    "high",
		Title:       "Require TLS on the proxy",
		Description: "Without RequireTLS clients may connect to the proxy in plain text.",
		Suggestion:  "Set RequireTLS to true.",
		Check: func(n stack.Node, _ index) bool {
			return !boolProp(n.Properties, "RequireTLS")
		},
	},
}

var lambdaFunctionRules = []Rule{
	{
		ID:          "OPT-LAM-001",
		Category:    "reliability",
		Severity:    "low",
		Title:       "Enable active X-Ray tracing",
		Description: "Tracing shows where invocation time goes across the proxy and the database.",
		Suggestion:  "Set TracingConfig.Mode to Active.",
		Check: func(n stack.Node, _ index) bool {
			tracing, _ := n.Properties["TracingConfig"].(map[string]any)
			return tracing["Mode"] != "Active"
		},
	},
	{
		ID:          "OPT-LAM-002",
		Category:    "cost",
		Severity:    "low",
		Title:       "Review Lambda memory configuration",
		Description: "Functions over 1024 MB are billed for memory a short database query rarely uses.",
		Suggestion:  "Measure the workload and lower MemorySize.",
		Check: func(n stack.Node, _ index) bool {
			memory, _ := intProp(n.Properties, "MemorySize")
			return memory > 1024
		},
	},
	{
		ID:          "OPT-LAM-003",
		Category:    "cost",
		Severity:    "medium",
		Title:       "Give the function a log group with retention",
		Description: "Without a declared log group Lambda creates one that keeps logs forever.",
		Suggestion:  "Declare an AWS::Logs::LogGroup for the function with RetentionInDays set.",
		Check: func(n stack.Node, ix index) bool {
			return !hasDependent(n.Name, "AWS::Logs::LogGroup", ix) && !dependsOnType(n, "AWS::Logs::LogGroup", ix)
		},
	},
}

var logGroupRules = []Rule{
	{
		ID:          "OPT-LOG-001",
		Category:    "cost",
		Severity:    "medium",
		Title:       "Set a log retention period",
		Description: "Log groups without RetentionInDays keep every event indefinitely.",
		Suggestion:  "Set RetentionInDays.",
		Check: func(n stack.Node, _ index) bool {
			_, ok := intProp(n.Properties, "RetentionInDays")
			return !ok
		},
	},
}

var stateMachineRules = []Rule{
	{
		ID:          "OPT-SFN-001",
		Category:    "reliability",
		Severity:    "low",
		Title:       "Enable execution logging",
		Description: "Failed map iterations are hard to diagnose without execution history in CloudWatch.",
		Suggestion:  "Add LoggingConfiguration with a CloudWatch Logs destination.",
		Check: func(n stack.Node, _ index) bool {
			_, ok := n.Properties["LoggingConfiguration"].(map[string]any)
			return !ok
		},
	},
}

var securityGroupRules = []Rule{
	{
		ID:          "OPT-EC2-001",
		Category:    "security",
		Severity:    "high",
		Title:       "Security group allows inbound traffic from anywhere",
		Description: "An ingress rule open to 0.0.0.0/0 exposes the port to the internet.",
		Suggestion:  "Restrict ingress to a source security group or a known CIDR.",
		Check: func(n stack.Node, _ index) bool {
			for _, rule := range sliceProp(n.Properties, "SecurityGroupIngress") {
				if m, ok := rule.(map[string]any); ok && m["CidrIp"] == openCidr {
					return true
				}
			}
			return false
		},
	},
}

var ingressRules = []Rule{
	{
		ID:          "OPT-EC2-002",
		Category:    "security",
		Severity:    "high",
		Title:       "Ingress rule allows traffic from anywhere",
		Description: "An ingress rule open to 0.0.0.0/0 exposes the port to the internet.",
		Suggestion:  "Use SourceSecurityGroupId instead of CidrIp.",
		Check: func(n stack.Node, _ index) bool {
			return n.Properties["CidrIp"] == openCidr
		},
	},
}

var ec2InstanceRules = []Rule{
	{
		ID:          "OPT-EC2-003",
		Category:    "security",
		Severity:    "medium",
		Title:       "Encrypt instance volumes",
		Description: "Unencrypted EBS volumes keep data and snapshots readable at rest.",
		Suggestion:  "Set Ebs.Encrypted to true on every block device mapping.",
		Check: func(n stack.Node, _ index) bool {
			for _, mapping := range sliceProp(n.Properties, "BlockDeviceMappings") {
				m, _ := mapping.(map[string]any)
				ebs, ok := m["Ebs"].(map[string]any)
				if ok && !boolProp(ebs, "Encrypted") {
					return true
				}
			}
			return false
		},
	},
}

var secretRules = []Rule{
	{
		ID:          "OPT-SEC-001",
		Category:    "security",
		Severity:    "medium",
		Title:       "Rotate the secret",
		Description: "Credentials that never rotate stay valid after they leak.",
		Suggestion:  "Add an AWS::SecretsManager::RotationSchedule for the secret.",
		Check: func(n stack.Node, ix index) bool {
			for _, other := range ix {
				if other.Type == "AWS::SecretsManager::RotationSchedule" && reaches(other, n.Name, ix) {
					return false
				}
			}
			return true
		},
	},
}

// hasDependent reports whether a resource of type typ depends on name.
func hasDependent(name, typ string, ix index) bool {
	for _, other := range ix {
		if other.Type != typ {
			continue
		}
		for _, dep := range other.Dependencies {
			if dep == name {
				return true
			}
		}
	}
	return false
}

// reaches reports whether name is among the transitive dependencies of n.
// The schedule usually points at the secret through a target attachment.
func reaches(n stack.Node, name string, ix index) bool {
	seen := map[string]bool{}
	pending := append([]string(nil), n.Dependencies...)
	for len(pending) > 0 {
		dep := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		if dep == name {
			return true
		}
		if seen[dep] {
			continue
		}
		seen[dep] = true
		pending = append(pending, ix[dep].Dependencies...)
	}
	return false
}

// dependsOnType reports whether n depends on any resource of type typ.
func dependsOnType(n stack.Node, typ string, ix index) bool {
	for _, dep := range n.Dependencies {
		if ix[dep].Type == typ {
			return true
		}
	}
	return false
}

func boolProp(props map[string]any, key string) bool {
	b, _ := props[key].(bool)
	return b
}

// intProp reads a number that may have been decoded from JSON.
func intProp(props map[string]any, key string) (int, bool) {
	switch v := props[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	}
	return 0, false
}

func sliceProp(props map[string]any, key string) []any {
	s, _ := props[key].([]any)
	return s
}
