package infra

import (
	"errors"
	"fmt"
	"net"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Options configures the LambdaAurora stack. The zero value is not usable;
// start from DefaultOptions.
type Options struct {
	Description string `yaml:"description"`
	// NamePrefix prefixes security group and subnet group names.
	NamePrefix string `yaml:"namePrefix"`

	VpcCidr string `yaml:"vpcCidr"`
	MaxAzs  int    `yaml:"maxAzs"`
	// SubnetMask is the prefix length of every subnet.
	SubnetMask int `yaml:"subnetMask"`

	ClusterIdentifier    string            `yaml:"clusterIdentifier"`
	InstanceIdentifier   string            `yaml:"instanceIdentifier"`
	Instances            int               `yaml:"instances"`
	InstanceClass        string            `yaml:"instanceClass"`
	EngineVersion        string            `yaml:"engineVersion"`
	ParameterGroupFamily string            `yaml:"parameterGroupFamily"`
	DatabaseName         string            `yaml:"databaseName"`
	DatabasePort         int               `yaml:"databasePort"`
	AdminUsername        string            `yaml:"adminUsername"`
	ClusterParameters    map[string]string `yaml:"clusterParameters"`
	BackupRetentionDays  int               `yaml:"backupRetentionDays"`
	BackupWindow         string            `yaml:"backupWindow"`
	MaintenanceWindow    string            `yaml:"maintenanceWindow"`
	MonitoringInterval   int               `yaml:"monitoringInterval"`
	ClusterLogRetention  int               `yaml:"clusterLogRetentionDays"`

	// ExcludeCharacters are never used in generated passwords.
	ExcludeCharacters string `yaml:"excludeCharacters"`
	PasswordLength    int    `yaml:"passwordLength"`
	RotationDays      int    `yaml:"rotationDays"`

	ProxyName          string `yaml:"proxyName"`
	ProxyBorrowTimeout int    `yaml:"proxyBorrowTimeout"`

	BastionInstanceType string `yaml:"bastionInstanceType"`
	BastionVolumeSize   int    `yaml:"bastionVolumeSize"`

	FunctionArchitecture string `yaml:"functionArchitecture"`
	FunctionMemorySize   int    `yaml:"functionMemorySize"`
	FunctionTimeout      int    `yaml:"functionTimeout"`
	FunctionLogRetention int    `yaml:"functionLogRetentionDays"`
	LogLevel             string `yaml:"logLevel"`
	// InsertName overrides the name the query function inserts by default.
	InsertName string `yaml:"insertName"`

	MaxConcurrency int    `yaml:"maxConcurrency"`
	ItemNameFormat string `yaml:"itemNameFormat"`
	// StateMachineTimeout caps one execution in seconds; 0 leaves it unset.
	StateMachineTimeout int `yaml:"stateMachineTimeoutSeconds"`
}

// DefaultOptions returns the production configuration.
func DefaultOptions() Options {
	return Options{
		Description: "Lambda + RDS Proxy + Aurora PostgreSQL",
		NamePrefix:  "prd",

		VpcCidr:    "10.10.0.0/24",
		MaxAzs:     2,
		SubnetMask: 28,

		ClusterIdentifier:    "prd-db-cluster",
		InstanceIdentifier:   "prd-db-instance",
		Instances:            1,
		InstanceClass:        "db.t3.medium",
		EngineVersion:        "13.4",
		ParameterGroupFamily: "aurora-postgresql13",
		DatabaseName:         "testDB",
		DatabasePort:         5432,
		AdminUsername:        "postgresAdmin",
		ClusterParameters: map[string]string{
			"pgaudit.log":              "all",
			"pgaudit.role":             "rds_pgaudit",
			"shared_preload_libraries": "pgaudit",
			"timezone":                 "Asia/Tokyo",
		},
		BackupRetentionDays: 7,
		BackupWindow:        "16:00-16:30",
		MaintenanceWindow:   "Sat:17:00-Sat:17:30",
		MonitoringInterval:  60,
		ClusterLogRetention: 365,

		ExcludeCharacters: ":@/\" '",
		PasswordLength:    32,
		RotationDays:      3,

		ProxyName:          "db-proxy",
		ProxyBorrowTimeout: 300,

		BastionInstanceType: "t3.micro",
		BastionVolumeSize:   8,

		FunctionArchitecture: "arm64",
		FunctionMemorySize:   128,
		FunctionTimeout:      30,
		FunctionLogRetention: 14,
		LogLevel:             "info",

		MaxConcurrency: 10,
		ItemNameFormat: "item-{}",
	}
}

// LoadOptions reads a YAML file on top of DefaultOptions.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()

	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("reading options: %w", err)
	}

	// yaml.v3 merges into a non-nil map; a clusterParameters key in the file
	// replaces the default map as a whole.
	defaults := opts.ClusterParameters
	opts.ClusterParameters = nil
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("parsing options %s: %w", path, err)
	}
	if opts.ClusterParameters == nil {
		opts.ClusterParameters = defaults
	}

	if err := opts.Validate(); err != nil {
		return opts, fmt.Errorf("invalid options %s: %w", path, err)
	}
	return opts, nil
}

var (
	identifierPattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9-]{0,62}$`)
	usernamePattern   = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]{0,62}$`)
	windowPattern     = regexp.MustCompile(`^\d{2}:\d{2}-\d{2}:\d{2}$`)
	weeklyPattern     = regexp.MustCompile(`^(Mon|Tue|Wed|Thu|Fri|Sat|Sun):\d{2}:\d{2}-(Mon|Tue|Wed|Thu|Fri|Sat|Sun):\d{2}:\d{2}$`)
)

// Validate reports every invalid field.
func (o Options) Validate() error {
	var errs []error

	_, vpcNet, err := net.ParseCIDR(o.VpcCidr)
	if err != nil {
		errs = append(errs, fmt.Errorf("vpcCidr: %w", err))
	} else {
		prefix, bits := vpcNet.Mask.Size()
		switch {
		case o.SubnetMask <= prefix || o.SubnetMask > bits-4:
			errs = append(errs, fmt.Errorf("subnetMask /%d must be between /%d and /%d", o.SubnetMask, prefix+1, bits-4))
		case 1<<(o.SubnetMask-prefix) < o.subnetCount():
			errs = append(errs, fmt.Errorf("vpcCidr %s cannot hold %d /%d subnets", o.VpcCidr, o.subnetCount(), o.SubnetMask))
		}
	}

	if o.MaxAzs < 1 || o.MaxAzs > 3 {
		errs = append(errs, fmt.Errorf("maxAzs must be between 1 and 3, got %d", o.MaxAzs))
	}
	if o.Instances < 1 {
		errs = append(errs, fmt.Errorf("instances must be at least 1, got %d", o.Instances))
	}

	for _, id := range []struct{ field, value string }{
		{"clusterIdentifier", o.ClusterIdentifier},
		{"instanceIdentifier", o.InstanceIdentifier},
		{"proxyName", o.ProxyName},
	} {
		if !identifierPattern.MatchString(id.value) {
			errs = append(errs, fmt.Errorf("%s %q must start with a letter and contain only letters, digits and hyphens", id.field, id.value))
		}
	}

	if o.DatabaseName == "" {
		errs = append(errs, errors.New("databaseName is required"))
	}
	if !usernamePattern.MatchString(o.AdminUsername) {
		errs = append(errs, fmt.Errorf("adminUsername %q must start with a letter and contain only letters, digits and underscores", o.AdminUsername))
	}
	if o.DatabasePort < 1 || o.DatabasePort > 65535 {
		errs = append(errs, fmt.Errorf("databasePort out of range: %d", o.DatabasePort))
	}
	if !windowPattern.MatchString(o.BackupWindow) {
		errs = append(errs, fmt.Errorf("backupWindow %q must look like hh:mm-hh:mm", o.BackupWindow))
	}
	if !weeklyPattern.MatchString(o.MaintenanceWindow) {
		errs = append(errs, fmt.Errorf("maintenanceWindow %q must look like ddd:hh:mm-ddd:hh:mm", o.MaintenanceWindow))
	}
	if o.BackupRetentionDays < 1 || o.BackupRetentionDays > 35 {
		errs = append(errs, fmt.Errorf("backupRetentionDays must be between 1 and 35, got %d", o.BackupRetentionDays))
	}
	switch o.MonitoringInterval {
	case 0, 1, 5, 10, 15, 30, 60:
	default:
		errs = append(errs, fmt.Errorf("monitoringInterval must be one of 0, 1, 5, 10, 15, 30, 60, got %d", o.MonitoringInterval))
	}
	if o.PasswordLength < 8 || o.PasswordLength > 4096 {
		errs = append(errs, fmt.Errorf("passwordLength must be between 8 and 4096, got %d", o.PasswordLength))
	}
	if o.RotationDays < 1 || o.RotationDays > 1000 {
		errs = append(errs, fmt.Errorf("rotationDays must be between 1 and 1000, got %d", o.RotationDays))
	}
	if o.ProxyBorrowTimeout < 0 || o.ProxyBorrowTimeout > 3600 {
		errs = append(errs, fmt.Errorf("proxyBorrowTimeout must be between 0 and 3600, got %d", o.ProxyBorrowTimeout))
	}
	if o.FunctionArchitecture != "arm64" && o.FunctionArchitecture != "x86_64" {
		errs = append(errs, fmt.Errorf("functionArchitecture must be arm64 or x86_64, got %q", o.FunctionArchitecture))
	}
	if o.MaxConcurrency < 0 {
		errs = append(errs, fmt.Errorf("maxConcurrency must not be negative, got %d", o.MaxConcurrency))
	}
	if strings.Count(o.ItemNameFormat, "{}") != 1 || strings.ContainsAny(o.ItemNameFormat, `'\`) {
		errs = append(errs, fmt.Errorf("itemNameFormat %q must contain one {} and no quotes or backslashes", o.ItemNameFormat))
	}
	if o.StateMachineTimeout < 0 || o.StateMachineTimeout > 31536000 {
		errs = append(errs, fmt.Errorf("stateMachineTimeoutSeconds must be between 0 and 31536000, got %d", o.StateMachineTimeout))
	}

	return errors.Join(errs...)
}

// subnetCount is the number of subnets: public, private and isolated per AZ.
func (o Options) subnetCount() int {
	return 3 * o.MaxAzs
}

// cidrBits is the Fn::Cidr host bit count for SubnetMask.
func (o Options) cidrBits() int {
	return 32 - o.SubnetMask
}
