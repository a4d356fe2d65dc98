package infra

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultOptions_Valid(t *testing.T) {
	assert.NoError(t, DefaultOptions().Validate())
}

func TestOptions_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(o *Options)
		wantErr string
	}{
		{"bad cidr", func(o *Options) { o.VpcCidr = "10.10.0.0" }, "vpcCidr"},
		{"mask too small", func(o *Options) { o.SubnetMask = 24 }, "subnetMask /24"},
		{"mask too large", func(o *Options) { o.SubnetMask = 30 }, "subnetMask /30"},
		{"too many subnets", func(o *Options) { o.SubnetMask = 26 }, "cannot hold 6 /26 subnets"},
		{"no azs", func(o *Options) { o.MaxAzs = 0 }, "maxAzs"},
		{"too many azs", func(o *Options) { o.MaxAzs = 4 }, "maxAzs"},
		{"no instances", func(o *Options) { o.Instances = 0 }, "instances"},
		{"bad cluster id", func(o *Options) { o.ClusterIdentifier = "1-cluster" }, "clusterIdentifier"},
		{"bad proxy name", func(o *Options) { o.ProxyName = "db_proxy" }, "proxyName"},
		{"no database", func(o *Options) { o.DatabaseName = "" }, "databaseName"},
		{"no admin", func(o *Options) { o.AdminUsername = "" }, "adminUsername"},
		{"no item placeholder", func(o *Options) { o.ItemNameFormat = "item" }, "itemNameFormat"},
		{"quoted item format", func(o *Options) { o.ItemNameFormat = "it's-{}" }, "itemNameFormat"},
		{"negative timeout", func(o *Options) { o.StateMachineTimeout = -1 }, "stateMachineTimeoutSeconds"},
		{"quoted admin", func(o *Options) { o.AdminUsername = `admin"x` }, "adminUsername"},
		{"bad port", func(o *Options) { o.DatabasePort = 70000 }, "databasePort"},
		{"bad backup window", func(o *Options) { o.BackupWindow = "4pm" }, "backupWindow"},
		{"bad maintenance window", func(o *Options) { o.MaintenanceWindow = "17:00-17:30" }, "maintenanceWindow"},
		{"retention", func(o *Options) { o.BackupRetentionDays = 36 }, "backupRetentionDays"},
		{"monitoring interval", func(o *Options) { o.MonitoringInterval = 45 }, "monitoringInterval"},
		{"password length", func(o *Options) { o.PasswordLength = 4 }, "passwordLength"},
		{"rotation days", func(o *Options) { o.RotationDays = 0 }, "rotationDays"},
		{"borrow timeout", func(o *Options) { o.ProxyBorrowTimeout = 4000 }, "proxyBorrowTimeout"},
		{"architecture", func(o *Options) { o.FunctionArchitecture = "amd64" }, "functionArchitecture"},
		{"concurrency", func(o *Options) { o.MaxConcurrency = -1 }, "maxConcurrency"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.modify(&opts)

			err := opts.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestOptions_ValidateCollectsAll(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxAzs = 0
	opts.DatabaseName = ""
	opts.FunctionArchitecture = ""

	err := opts.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "maxAzs")
	assert.Contains(t, err.Error(), "databaseName")
	assert.Contains(t, err.Error(), "functionArchitecture")
}

func TestOptions_MonitoringDisabled(t *testing.T) {
	opts := DefaultOptions()
	opts.MonitoringInterval = 0
	assert.NoError(t, opts.Validate())
}

func TestLoadOptions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stack.yaml")
	content := `
namePrefix: stg
clusterIdentifier: stg-db-cluster
instances: 2
maxConcurrency: 5
clusterParameters:
  timezone: UTC
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	opts, err := LoadOptions(path)
	require.NoError(t, err)

	assert.Equal(t, "stg", opts.NamePrefix)
	assert.Equal(t, "stg-db-cluster", opts.ClusterIdentifier)
	assert.Equal(t, 2, opts.Instances)
	assert.Equal(t, 5, opts.MaxConcurrency)
	assert.Equal(t, map[string]string{"timezone": "UTC"}, opts.ClusterParameters)

	// Unset keys keep their defaults.
	assert.Equal(t, "10.10.0.0/24", opts.VpcCidr)
	assert.Equal(t, 5432, opts.DatabasePort)
}

func TestLoadOptions_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadOptions(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading options")

	malformed := filepath.Join(dir, "malformed.yaml")
	require.NoError(t, os.WriteFile(malformed, []byte("instances: [1, 2"), 0o644))
	_, err = LoadOptions(malformed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing options")

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("maxAzs: 5\n"), 0o644))
	_, err = LoadOptions(invalid)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid options")
	assert.Contains(t, err.Error(), "maxAzs")
}

func TestLoadOptions_BuildsTwoInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stack.yaml")
	require.NoError(t, os.WriteFile(path, []byte("instances: 2\n"), 0o644))

	opts, err := LoadOptions(path)
	require.NoError(t, err)
	assert.Equal(t, "pgaudit", opts.ClusterParameters["shared_preload_libraries"])

	s, err := New(opts)
	require.NoError(t, err)
	tmpl, err := s.Build()
	require.NoError(t, err)

	assert.Contains(t, tmpl.Resources, "DbInstance2")
	assert.Equal(t, []string{"DbInstance1", "DbInstance2"}, tmpl.Resources["DbAdminSecretRotationSchedule"].DependsOn)
}
