package infra

import (
	"fmt"
	"strings"

	"github.com/lex00/lambda-aurora-go/internal/stack"
	. "github.com/lex00/lambda-aurora-go/intrinsics"
	"github.com/lex00/lambda-aurora-go/resources/ec2"
)

// Subnet tiers, in Fn::Cidr allocation order.
const (
	tierPublic = iota
	tierPrivate
	tierIsolated
)

func (b *builder) network() {
	// ----------------------------------------------------------------------------
	// VPC
	// ----------------------------------------------------------------------------

	b.vpc = b.s.Add("Vpc", ec2.VPC{
		CidrBlock:          b.opts.VpcCidr,
		EnableDnsHostnames: true,
		EnableDnsSupport:   true,
		Tags:               nameTag(StackName("vpc")),
	})

	igw := b.s.Add("InternetGateway", ec2.InternetGateway{
		Tags: nameTag(StackName("igw")),
	})

	igwAttachment := b.s.Add("InternetGatewayAttachment", ec2.VPCGatewayAttachment{
		InternetGatewayId: igw.Ref(),
		VpcId:             b.vpc.Ref(),
	})

	// ----------------------------------------------------------------------------
	// Subnets: public, private with NAT, isolated; one of each per AZ
	// ----------------------------------------------------------------------------

	for az := 0; az < b.opts.MaxAzs; az++ {
		b.publicSubnets = append(b.publicSubnets, b.subnet("Public", tierPublic, az))
		b.privateSubnets = append(b.privateSubnets, b.subnet("Private", tierPrivate, az))
		b.isolatedSubnets = append(b.isolatedSubnets, b.subnet("Isolated", tierIsolated, az))
	}

	// ----------------------------------------------------------------------------
	// Routing
	// ----------------------------------------------------------------------------

	publicRouteTable := b.routeTable("Public", b.publicSubnets)
	b.s.Add("PublicDefaultRoute", ec2.Route{
		RouteTableId:         publicRouteTable.Ref(),
		DestinationCidrBlock: "0.0.0.0/0",
		GatewayId:            igw.Ref(),
	}, igwAttachment)

	// A single NAT gateway serves every private subnet.
	natEip := b.s.Add("NatEip", ec2.EIP{
		Domain: "vpc",
		Tags:   nameTag(StackName("nat")),
	}, igwAttachment)

	nat := b.s.Add("NatGateway", ec2.NatGateway{
		AllocationId: natEip.Attr("AllocationId"),
		SubnetId:     b.publicSubnets[0].Ref(),
		Tags:         nameTag(StackName("nat")),
	})

	privateRouteTable := b.routeTable("Private", b.privateSubnets)
	b.natRoute = b.s.Add("PrivateDefaultRoute", ec2.Route{
		RouteTableId:         privateRouteTable.Ref(),
		DestinationCidrBlock: "0.0.0.0/0",
		NatGatewayId:         nat.Ref(),
	})

	// Isolated subnets have no route out of the VPC.
	b.routeTable("Isolated", b.isolatedSubnets)
}

func (b *builder) subnet(kind string, tier, az int) stack.Handle {
	o := b.opts
	name := fmt.Sprintf("%sSubnet%d", kind, az+1)

	return b.s.Add(name, ec2.Subnet{
		VpcId:               b.vpc.Ref(),
		CidrBlock:           SubnetCidr(o.VpcCidr, o.subnetCount(), o.cidrBits(), tier*o.MaxAzs+az),
		AvailabilityZone:    AZ(az),
		MapPublicIpOnLaunch: tier == tierPublic,
		Tags: []any{
			Tag{Key: "Name", Value: StackName(fmt.Sprintf("%s-%d", strings.ToLower(kind), az+1))},
			Tag{Key: "SubnetType", Value: kind},
		},
	})
}

func (b *builder) routeTable(kind string, subnets []stack.Handle) stack.Handle {
	table := b.s.Add(kind+"RouteTable", ec2.RouteTable{
		VpcId: b.vpc.Ref(),
		Tags:  nameTag(StackName(strings.ToLower(kind))),
	})
	for i, subnet := range subnets {
		b.s.Add(fmt.Sprintf("%sSubnet%dRouteTableAssociation", kind, i+1), ec2.SubnetRouteTableAssociation{
			RouteTableId: table.Ref(),
			SubnetId:     subnet.Ref(),
		})
	}
	return table
}
