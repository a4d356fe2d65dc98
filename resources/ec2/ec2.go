// Package ec2 contains the AWS::EC2 resource types used by the stack.
package ec2

// VPC is an AWS::EC2::VPC.
type VPC struct {
	CidrBlock          any   `json:"CidrBlock,omitempty"`
	EnableDnsHostnames bool  `json:"EnableDnsHostnames,omitempty"`
	EnableDnsSupport   bool  `json:"EnableDnsSupport,omitempty"`
	Tags               []any `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (r VPC) ResourceType() string { return "AWS::EC2::VPC" }

// InternetGateway is an AWS::EC2::InternetGateway.
type InternetGateway struct {
	Tags []any `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (r InternetGateway) ResourceType() string { return "AWS::EC2::InternetGateway" }

// VPCGatewayAttachment attaches an internet gateway to a VPC.
type VPCGatewayAttachment struct {
	InternetGatewayId any `json:"InternetGatewayId,omitempty"`
	VpcId             any `json:"VpcId,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (r VPCGatewayAttachment) ResourceType() string { return "AWS::EC2::VPCGatewayAttachment" }

// Subnet is an AWS::EC2::Subnet.
type Subnet struct {
	VpcId               any   `json:"VpcId,omitempty"`
	CidrBlock           any   `json:"CidrBlock,omitempty"`
	AvailabilityZone    any   `json:"AvailabilityZone,omitempty"`
	MapPublicIpOnLaunch bool  `json:"MapPublicIpOnLaunch,omitempty"`
	Tags                []any `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (r Subnet) ResourceType() string { return "AWS::EC2::Subnet" }

// EIP is an AWS::EC2::EIP.
type EIP struct {
	Domain any   `json:"Domain,omitempty"`
	Tags   []any `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (r EIP) ResourceType() string { return "AWS::EC2::EIP" }

// NatGateway is an AWS::EC2::NatGateway.
type NatGateway struct {
	AllocationId any   `json:"AllocationId,omitempty"`
	SubnetId     any   `json:"SubnetId,omitempty"`
	Tags         []any `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (r NatGateway) ResourceType() string { return "AWS::EC2::NatGateway" }

// RouteTable is an AWS::EC2::RouteTable.
type RouteTable struct {
	VpcId any   `json:"VpcId,omitempty"`
	Tags  []any `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (r RouteTable) ResourceType() string { return "AWS::EC2::RouteTable" }

// Route is an AWS::EC2::Route. Exactly one target should be set.
type Route struct {
	RouteTableId         any `json:"RouteTableId,omitempty"`
	DestinationCidrBlock any `json:"DestinationCidrBlock,omitempty"`
	GatewayId            any `json:"GatewayId,omitempty"`
	NatGatewayId         any `json:"NatGatewayId,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (r Route) ResourceType() string { return "AWS::EC2::Route" }

// SubnetRouteTableAssociation associates a subnet with a route table.
type SubnetRouteTableAssociation struct {
	RouteTableId any `json:"RouteTableId,omitempty"`
	SubnetId     any `json:"SubnetId,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (r SubnetRouteTableAssociation) ResourceType() string {
	return "AWS::EC2::SubnetRouteTableAssociation"
}

// SecurityGroup is an AWS::EC2::SecurityGroup.
//
// Ingress is declared separately with SecurityGroupIngress so groups can
// reference each other without creating a cycle.
type SecurityGroup struct {
	GroupName           any   `json:"GroupName,omitempty"`
	GroupDescription    any   `json:"GroupDescription,omitempty"`
	VpcId               any   `json:"VpcId,omitempty"`
	SecurityGroupEgress []any `json:"SecurityGroupEgress,omitempty"`
	Tags                []any `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (r SecurityGroup) ResourceType() string { return "AWS::EC2::SecurityGroup" }

// SecurityGroup_Egress is an outbound rule embedded in a SecurityGroup.
type SecurityGroup_Egress struct {
	IpProtocol  any `json:"IpProtocol,omitempty"`
	CidrIp      any `json:"CidrIp,omitempty"`
	Description any `json:"Description,omitempty"`
}

// SecurityGroupIngress is a standalone AWS::EC2::SecurityGroupIngress rule.
type SecurityGroupIngress struct {
	GroupId               any `json:"GroupId,omitempty"`
	IpProtocol            any `json:"IpProtocol,omitempty"`
	FromPort              int `json:"FromPort,omitempty"`
	ToPort                int `json:"ToPort,omitempty"`
	SourceSecurityGroupId any `json:"SourceSecurityGroupId,omitempty"`
	Description           any `json:"Description,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (r SecurityGroupIngress) ResourceType() string { return "AWS::EC2::SecurityGroupIngress" }

// Instance is an AWS::EC2::Instance.
type Instance struct {
	InstanceType        any                           `json:"InstanceType,omitempty"`
	ImageId             any                           `json:"ImageId,omitempty"`
	SubnetId            any                           `json:"SubnetId,omitempty"`
	SecurityGroupIds    []any                         `json:"SecurityGroupIds,omitempty"`
	IamInstanceProfile  any                           `json:"IamInstanceProfile,omitempty"`
	BlockDeviceMappings []Instance_BlockDeviceMapping `json:"BlockDeviceMappings,omitempty"`
	UserData            any                           `json:"UserData,omitempty"`
	Tags                []any                         `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (r Instance) ResourceType() string { return "AWS::EC2::Instance" }

// Instance_BlockDeviceMapping maps a device name to an EBS volume.
type Instance_BlockDeviceMapping struct {
	DeviceName any           `json:"DeviceName,omitempty"`
	Ebs        *Instance_Ebs `json:"Ebs,omitempty"`
}

// Instance_Ebs describes an EBS volume attached at launch.
type Instance_Ebs struct {
	VolumeSize          int  `json:"VolumeSize,omitempty"`
	VolumeType          any  `json:"VolumeType,omitempty"`
	Encrypted           bool `json:"Encrypted,omitempty"`
	DeleteOnTermination bool `json:"DeleteOnTermination,omitempty"`
}
