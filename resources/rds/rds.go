// Package rds contains the AWS::RDS resource types used by the stack.
package rds

// DBClusterParameterGroup is an AWS::RDS::DBClusterParameterGroup.
type DBClusterParameterGroup struct {
	Description any            `json:"Description,omitempty"`
	Family      any            `json:"Family,omitempty"`
	Parameters  map[string]any `json:"Parameters,omitempty"`
	Tags        []any          `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (r DBClusterParameterGroup) ResourceType() string { return "AWS::RDS::DBClusterParameterGroup" }

// DBParameterGroup is an AWS::RDS::DBParameterGroup.
type DBParameterGroup struct {
	Description any            `json:"Description,omitempty"`
	Family      any            `json:"Family,omitempty"`
	Parameters  map[string]any `json:"Parameters,omitempty"`
	Tags        []any          `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (r DBParameterGroup) ResourceType() string { return "AWS::RDS::DBParameterGroup" }

// DBSubnetGroup is an AWS::RDS::DBSubnetGroup.
type DBSubnetGroup struct {
	DBSubnetGroupName        any   `json:"DBSubnetGroupName,omitempty"`
	DBSubnetGroupDescription any   `json:"DBSubnetGroupDescription,omitempty"`
	SubnetIds                []any `json:"SubnetIds,omitempty"`
	Tags                     []any `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (r DBSubnetGroup) ResourceType() string { return "AWS::RDS::DBSubnetGroup" }

// DBCluster is an AWS::RDS::DBCluster.
//
// Attributes: Endpoint.Address, Endpoint.Port, ReadEndpoint.Address, DBClusterArn.
type DBCluster struct {
	DBClusterIdentifier             any   `json:"DBClusterIdentifier,omitempty"`
	Engine                          any   `json:"Engine,omitempty"`
	EngineVersion                   any   `json:"EngineVersion,omitempty"`
	DatabaseName                    any   `json:"DatabaseName,omitempty"`
	Port                            int   `json:"Port,omitempty"`
	MasterUsername                  any   `json:"MasterUsername,omitempty"`
	MasterUserPassword              any   `json:"MasterUserPassword,omitempty"`
	DBClusterParameterGroupName     any   `json:"DBClusterParameterGroupName,omitempty"`
	DBSubnetGroupName               any   `json:"DBSubnetGroupName,omitempty"`
	VpcSecurityGroupIds             []any `json:"VpcSecurityGroupIds,omitempty"`
	BackupRetentionPeriod           int   `json:"BackupRetentionPeriod,omitempty"`
	PreferredBackupWindow           any   `json:"PreferredBackupWindow,omitempty"`
	PreferredMaintenanceWindow      any   `json:"PreferredMaintenanceWindow,omitempty"`
	StorageEncrypted                bool  `json:"StorageEncrypted,omitempty"`
	DeletionProtection              any   `json:"DeletionProtection,omitempty"`
	EnableIAMDatabaseAuthentication any   `json:"EnableIAMDatabaseAuthentication,omitempty"`
	CopyTagsToSnapshot              bool  `json:"CopyTagsToSnapshot,omitempty"`
	EnableCloudwatchLogsExports     []any `json:"EnableCloudwatchLogsExports,omitempty"`
	Tags                            []any `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (r DBCluster) ResourceType() string { return "AWS::RDS::DBCluster" }

// DBInstance is an AWS::RDS::DBInstance that joins a DBCluster.
type DBInstance struct {
	DBInstanceIdentifier               any   `json:"DBInstanceIdentifier,omitempty"`
	DBClusterIdentifier                any   `json:"DBClusterIdentifier,omitempty"`
	DBInstanceClass                    any   `json:"DBInstanceClass,omitempty"`
	Engine                             any   `json:"Engine,omitempty"`
	DBParameterGroupName               any   `json:"DBParameterGroupName,omitempty"`
	DBSubnetGroupName                  any   `json:"DBSubnetGroupName,omitempty"`
	PubliclyAccessible                 any   `json:"PubliclyAccessible,omitempty"`
	AllowMajorVersionUpgrade           any   `json:"AllowMajorVersionUpgrade,omitempty"`
	AutoMinorVersionUpgrade            any   `json:"AutoMinorVersionUpgrade,omitempty"`
	DeleteAutomatedBackups             any   `json:"DeleteAutomatedBackups,omitempty"`
	EnablePerformanceInsights          bool  `json:"EnablePerformanceInsights,omitempty"`
	PerformanceInsightsRetentionPeriod int   `json:"PerformanceInsightsRetentionPeriod,omitempty"`
	MonitoringInterval                 int   `json:"MonitoringInterval,omitempty"`
	MonitoringRoleArn                  any   `json:"MonitoringRoleArn,omitempty"`
	Tags                               []any `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (r DBInstance) ResourceType() string { return "AWS::RDS::DBInstance" }

// DBProxy is an AWS::RDS::DBProxy.
//
// Attributes: Endpoint, DBProxyArn.
type DBProxy struct {
	DBProxyName         any                  `json:"DBProxyName,omitempty"`
	EngineFamily        any                  `json:"EngineFamily,omitempty"`
	Auth                []DBProxy_AuthFormat `json:"Auth,omitempty"`
	RoleArn             any                  `json:"RoleArn,omitempty"`
	VpcSubnetIds        []any                `json:"VpcSubnetIds,omitempty"`
	VpcSecurityGroupIds []any                `json:"VpcSecurityGroupIds,omitempty"`
	RequireTLS          bool                 `json:"RequireTLS,omitempty"`
	DebugLogging        bool                 `json:"DebugLogging,omitempty"`
	IdleClientTimeout   int                  `json:"IdleClientTimeout,omitempty"`
	Tags                []any                `json:"Tags,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (r DBProxy) ResourceType() string { return "AWS::RDS::DBProxy" }

// DBProxy_AuthFormat tells the proxy which secret to authenticate with.
type DBProxy_AuthFormat struct {
	AuthScheme  any `json:"AuthScheme,omitempty"`
	SecretArn   any `json:"SecretArn,omitempty"`
	IAMAuth     any `json:"IAMAuth,omitempty"`
	Description any `json:"Description,omitempty"`
}

// DBProxyTargetGroup is an AWS::RDS::DBProxyTargetGroup.
type DBProxyTargetGroup struct {
	DBProxyName                     any                                                       `json:"DBProxyName,omitempty"`
	TargetGroupName                 any                                                       `json:"TargetGroupName,omitempty"`
	DBClusterIdentifiers            []any                                                     `json:"DBClusterIdentifiers,omitempty"`
	ConnectionPoolConfigurationInfo *DBProxyTargetGroup_ConnectionPoolConfigurationInfoFormat `json:"ConnectionPoolConfigurationInfo,omitempty"`
}

// ResourceType returns the CloudFormation type.
func (r DBProxyTargetGroup) ResourceType() string { return "AWS::RDS::DBProxyTargetGroup" }

// DBProxyTargetGroup_ConnectionPoolConfigurationInfoFormat tunes the proxy's pool.
type DBProxyTargetGroup_ConnectionPoolConfigurationInfoFormat struct {
	ConnectionBorrowTimeout   int `json:"ConnectionBorrowTimeout,omitempty"`
	MaxConnectionsPercent     int `json:"MaxConnectionsPercent,omitempty"`
	MaxIdleConnectionsPercent int `json:"MaxIdleConnectionsPercent,omitempty"`
}
