package infra

import (
	"fmt"

	. "github.com/lex00/lambda-aurora-go/intrinsics"
	"github.com/lex00/lambda-aurora-go/resources/iam"
	"github.com/lex00/lambda-aurora-go/resources/logs"
	"github.com/lex00/lambda-aurora-go/resources/rds"
	"github.com/lex00/lambda-aurora-go/resources/secretsmanager"
)

const auroraPostgres = "aurora-postgresql"

func (b *builder) database() {
	o := b.opts

	// ----------------------------------------------------------------------------
	// DB Admin User Secret
	// ----------------------------------------------------------------------------

	b.adminSecret = b.s.Add("DbAdminSecret", secretsmanager.Secret{
		Name:        o.ClusterIdentifier + "/AdminLoginInfo",
		Description: "Admin login for " + o.ClusterIdentifier,
		GenerateSecretString: &secretsmanager.Secret_GenerateSecretString{
			SecretStringTemplate:    fmt.Sprintf(`{"username":"%s"}`, o.AdminUsername),
			GenerateStringKey:       "password",
			PasswordLength:          o.PasswordLength,
			ExcludeCharacters:       o.ExcludeCharacters,
			RequireEachIncludedType: true,
		},
	})

	// ----------------------------------------------------------------------------
	// Parameter Groups
	// ----------------------------------------------------------------------------

	clusterParams := make(Json, len(o.ClusterParameters))
	for k, v := range o.ClusterParameters {
		clusterParams[k] = v
	}

	clusterParameterGroup := b.s.Add("DbClusterParameterGroup", rds.DBClusterParameterGroup{
		Description: o.ParameterGroupFamily,
		Family:      o.ParameterGroupFamily,
		Parameters:  clusterParams,
	})

	parameterGroup := b.s.Add("DbParameterGroup", rds.DBParameterGroup{
		Description: o.ParameterGroupFamily,
		Family:      o.ParameterGroupFamily,
	})

	subnetGroup := b.s.Add("SubnetGroup", rds.DBSubnetGroup{
		DBSubnetGroupName:        o.NamePrefix + "-db-subnet-group",
		DBSubnetGroupDescription: "Isolated subnets of " + o.ClusterIdentifier,
		SubnetIds:                refs(b.isolatedSubnets),
	})

	// ----------------------------------------------------------------------------
	// Logs and Monitoring
	// ----------------------------------------------------------------------------

	// RDS writes to this group by name once the postgresql export is on.
	clusterLogGroup := b.s.Add("DbClusterLogGroup", logs.LogGroup{
		LogGroupName:    fmt.Sprintf("/aws/rds/cluster/%s/postgresql", o.ClusterIdentifier),
		RetentionInDays: o.ClusterLogRetention,
	})

	var monitoringRoleArn any
	if o.MonitoringInterval > 0 {
		monitoringRole := b.s.Add("DbMonitoringRole", iam.Role{
			AssumeRolePolicyDocument: NewPolicyDocument(AssumeRoleStatement("monitoring.rds.amazonaws.com")),
			ManagedPolicyArns:        Any(ManagedPolicyArn("service-role/AmazonRDSEnhancedMonitoringRole")),
		})
		monitoringRoleArn = monitoringRole.Attr("Arn")
	}

	// ----------------------------------------------------------------------------
	// Aurora Cluster
	// ----------------------------------------------------------------------------

	b.cluster = b.s.Add("DbCluster", rds.DBCluster{
		DBClusterIdentifier:             o.ClusterIdentifier,
		Engine:                          auroraPostgres,
		EngineVersion:                   o.EngineVersion,
		DatabaseName:                    o.DatabaseName,
		Port:                            o.DatabasePort,
		MasterUsername:                  b.secretField("username"),
		MasterUserPassword:              b.secretField("password"),
		DBClusterParameterGroupName:     clusterParameterGroup.Ref(),
		DBSubnetGroupName:               subnetGroup.Ref(),
		VpcSecurityGroupIds:             Any(b.dbSg.Attr("GroupId")),
		BackupRetentionPeriod:           o.BackupRetentionDays,
		PreferredBackupWindow:           o.BackupWindow,
		PreferredMaintenanceWindow:      o.MaintenanceWindow,
		StorageEncrypted:                true,
		DeletionProtection:              false,
		EnableIAMDatabaseAuthentication: false,
		CopyTagsToSnapshot:              true,
		EnableCloudwatchLogsExports:     Any("postgresql"),
	}, clusterLogGroup)
	b.s.SetDeletionPolicy(b.cluster, "Snapshot")

	for i := 1; i <= o.Instances; i++ {
		instance := rds.DBInstance{
			DBInstanceIdentifier:               fmt.Sprintf("%s%d", o.InstanceIdentifier, i),
			DBClusterIdentifier:                b.cluster.Ref(),
			DBInstanceClass:                    o.InstanceClass,
			Engine:                             auroraPostgres,
			DBParameterGroupName:               parameterGroup.Ref(),
			DBSubnetGroupName:                  subnetGroup.Ref(),
			PubliclyAccessible:                 false,
			AllowMajorVersionUpgrade:           false,
			AutoMinorVersionUpgrade:            true,
			DeleteAutomatedBackups:             false,
			EnablePerformanceInsights:          true,
			PerformanceInsightsRetentionPeriod: 7,
			MonitoringInterval:                 o.MonitoringInterval,
			MonitoringRoleArn:                  monitoringRoleArn,
		}
		b.instances = append(b.instances, b.s.Add(fmt.Sprintf("DbInstance%d", i), instance))
	}
}

// secretField resolves a field of the admin secret at deploy time.
func (b *builder) secretField(field string) Sub {
	return Sub{String: fmt.Sprintf("{{resolve:secretsmanager:${%s}:SecretString:%s}}", b.adminSecret.Name(), field)}
}
