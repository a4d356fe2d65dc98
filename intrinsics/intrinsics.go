// Package intrinsics provides CloudFormation intrinsic functions.
//
// The core intrinsic types come from cloudformation-schema-go; this package
// re-exports the subset the stack uses and adds IAM policy document types.
//
//	Ref{LogicalName: "Vpc"}              → {"Ref": "Vpc"}
//	Sub{String: "${AWS::StackName}-db"}  → {"Fn::Sub": "${AWS::StackName}-db"}
//	Select{Index: 0, List: GetAZs{}}     → {"Fn::Select": [0, {"Fn::GetAZs": ""}]}
package intrinsics

import (
	"github.com/lex00/cloudformation-schema-go/intrinsics"
)

type (
	// Ref represents a CloudFormation Ref intrinsic function.
	Ref = intrinsics.Ref

	// Sub represents a CloudFormation Fn::Sub intrinsic function.
	Sub = intrinsics.Sub

	// Join represents a CloudFormation Fn::Join intrinsic function.
	Join = intrinsics.Join

	// Select represents a CloudFormation Fn::Select intrinsic function.
	Select = intrinsics.Select

	// GetAZs represents a CloudFormation Fn::GetAZs intrinsic function.
	GetAZs = intrinsics.GetAZs

	// Cidr represents a CloudFormation Fn::Cidr intrinsic function.
	Cidr = intrinsics.Cidr

	// Base64 represents a CloudFormation Fn::Base64 intrinsic function.
	Base64 = intrinsics.Base64

	// Tag represents a CloudFormation resource tag.
	Tag = intrinsics.Tag
)

// SubnetCidr selects the index-th block of an Fn::Cidr split of ipBlock.
//
//	SubnetCidr("10.10.0.0/24", 6, 4, 2) → {"Fn::Select": [2, {"Fn::Cidr": ["10.10.0.0/24", 6, 4]}]}
func SubnetCidr(ipBlock string, count, cidrBits, index int) Select {
	return Select{
		Index: index,
		List:  Cidr{IPBlock: ipBlock, Count: count, CidrBits: cidrBits},
	}
}

// AZ selects the index-th availability zone of the current region.
func AZ(index int) Select {
	return Select{Index: index, List: GetAZs{}}
}

// StackName returns a Sub that prefixes suffix with the stack name.
func StackName(suffix string) Sub {
	return Sub{String: "${AWS::StackName}-" + suffix}
}
