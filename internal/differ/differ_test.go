package differ

import (
	"os"
	"path/filepath"
	"testing"

	lambdaaurora "github.com/lex00/lambda-aurora-go"
)

func TestCompare(t *testing.T) {
	t1 := &lambdaaurora.Template{
		Resources: map[string]lambdaaurora.ResourceDef{
			"DbSg":      {Type: "AWS::EC2::SecurityGroup", Properties: map[string]any{"GroupName": "prd-db-sg"}},
			"RdsProxy":  {Type: "AWS::RDS::DBProxy", Properties: map[string]any{"DBProxyName": "db-proxy"}},
			"DbCluster": {Type: "AWS::RDS::DBCluster", Properties: map[string]any{"Port": 5432}},
		},
	}

	t2 := &lambdaaurora.Template{
		Resources: map[string]lambdaaurora.ResourceDef{
			"DbSg":      {Type: "AWS::EC2::SecurityGroup", Properties: map[string]any{"GroupName": "stg-db-sg"}},
			"DbCluster": {Type: "AWS::RDS::DBCluster", Properties: map[string]any{"Port": 5432}},
			"DbClient":  {Type: "AWS::EC2::Instance", Properties: map[string]any{"InstanceType": "t3.micro"}},
		},
	}

	result, err := Compare(t1, t2, Options{})
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}

	if len(result.Diff.Removed) != 1 {
		t.Errorf("Removed = %d, want 1", len(result.Diff.Removed))
	} else if result.Diff.Removed[0].Resource != "RdsProxy" {
		t.Errorf("Removed[0].Resource = %s, want RdsProxy", result.Diff.Removed[0].Resource)
	}

	if len(result.Diff.Added) != 1 {
		t.Errorf("Added = %d, want 1", len(result.Diff.Added))
	} else if result.Diff.Added[0].Resource != "DbClient" {
		t.Errorf("Added[0].Resource = %s, want DbClient", result.Diff.Added[0].Resource)
	}

	if len(result.Diff.Modified) != 1 {
		t.Errorf("Modified = %d, want 1", len(result.Diff.Modified))
	} else if result.Diff.Modified[0].Resource != "DbSg" {
		t.Errorf("Modified[0].Resource = %s, want DbSg", result.Diff.Modified[0].Resource)
	}

	if result.Summary.Total != 3 {
		t.Errorf("Summary.Total = %d, want 3", result.Summary.Total)
	}
	if result.Empty() {
		t.Error("Empty() = true, want false")
	}
}

func TestCompareIdentical(t *testing.T) {
	template := &lambdaaurora.Template{
		Resources: map[string]lambdaaurora.ResourceDef{
			"Vpc": {Type: "AWS::EC2::VPC", Properties: map[string]any{"CidrBlock": "10.10.0.0/24"}},
		},
	}

	result, err := Compare(template, template, Options{})
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}

	if !result.Empty() {
		t.Errorf("Summary.Total = %d, want 0 for identical templates", result.Summary.Total)
	}
}

func TestCompareNumbersAcrossDecoding(t *testing.T) {
	built := &lambdaaurora.Template{
		Resources: map[string]lambdaaurora.ResourceDef{
			"DbCluster": {Type: "AWS::RDS::DBCluster", Properties: map[string]any{"Port": 5432}},
		},
	}
	loaded := &lambdaaurora.Template{
		Resources: map[string]lambdaaurora.ResourceDef{
			"DbCluster": {Type: "AWS::RDS::DBCluster", Properties: map[string]any{"Port": float64(5432)}},
		},
	}

	result, err := Compare(built, loaded, Options{})
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	if !result.Empty() {
		t.Errorf("expected int and float64 ports to compare equal, got %+v", result.Diff)
	}
}

func TestCompareTypeChange(t *testing.T) {
	t1 := &lambdaaurora.Template{
		Resources: map[string]lambdaaurora.ResourceDef{
			"DbClusterLogGroup": {Type: "AWS::Logs::LogGroup"},
		},
	}
	t2 := &lambdaaurora.Template{
		Resources: map[string]lambdaaurora.ResourceDef{
			"DbClusterLogGroup": {Type: "AWS::Logs::LogStream"},
		},
	}

	result, err := Compare(t1, t2, Options{})
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}

	if len(result.Diff.Modified) != 1 {
		t.Fatalf("Modified = %d, want 1", len(result.Diff.Modified))
	}

	want := "Type changed: AWS::Logs::LogGroup → AWS::Logs::LogStream"
	if got := result.Diff.Modified[0].Changes[0]; got != want {
		t.Errorf("Changes[0] = %q, want %q", got, want)
	}
}

func TestCompareDeletionPolicyAndDependsOn(t *testing.T) {
	t1 := &lambdaaurora.Template{
		Resources: map[string]lambdaaurora.ResourceDef{
			"DbCluster": {Type: "AWS::RDS::DBCluster", DeletionPolicy: "Snapshot"},
		},
	}
	t2 := &lambdaaurora.Template{
		Resources: map[string]lambdaaurora.ResourceDef{
			"DbCluster": {Type: "AWS::RDS::DBCluster", DependsOn: []string{"DbClusterLogGroup"}},
		},
	}

	result, err := Compare(t1, t2, Options{})
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	if len(result.Diff.Modified) != 1 {
		t.Fatalf("Modified = %d, want 1", len(result.Diff.Modified))
	}
	if n := len(result.Diff.Modified[0].Changes); n != 2 {
		t.Errorf("Changes = %v, want 2 entries", result.Diff.Modified[0].Changes)
	}
}

func TestCompareProperties(t *testing.T) {
	tests := []struct {
		name   string
		props1 map[string]any
		props2 map[string]any
		opts   Options
		want   []string
	}{
		{
			name:   "identical",
			props1: map[string]any{"Key": "value"},
			props2: map[string]any{"Key": "value"},
		},
		{
			name:   "added property",
			props1: map[string]any{},
			props2: map[string]any{"Key": "value"},
			want:   []string{"Key added"},
		},
		{
			name:   "removed property",
			props1: map[string]any{"Key": "value"},
			props2: map[string]any{},
			want:   []string{"Key removed"},
		},
		{
			name:   "nested change",
			props1: map[string]any{"GenerateSecretString": map[string]any{"PasswordLength": 32.0, "GenerateStringKey": "password"}},
			props2: map[string]any{"GenerateSecretString": map[string]any{"PasswordLength": 40.0, "GenerateStringKey": "password"}},
			want:   []string{"GenerateSecretString.PasswordLength modified"},
		},
		{
			name:   "intrinsic compared whole",
			props1: map[string]any{"VpcId": map[string]any{"Ref": "Vpc"}},
			props2: map[string]any{"VpcId": map[string]any{"Ref": "OtherVpc"}},
			want:   []string{"VpcId modified"},
		},
		{
			name:   "order matters",
			props1: map[string]any{"SubnetIds": []any{"a", "b"}},
			props2: map[string]any{"SubnetIds": []any{"b", "a"}},
			want:   []string{"SubnetIds modified"},
		},
		{
			name:   "order ignored",
			props1: map[string]any{"SubnetIds": []any{"a", "b"}},
			props2: map[string]any{"SubnetIds": []any{"b", "a"}},
			opts:   Options{IgnoreOrder: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			changes := compareProperties("", tt.props1, tt.props2, tt.opts)
			if !equalStrings(changes, tt.want) {
				t.Errorf("compareProperties() = %v, want %v", changes, tt.want)
			}
		})
	}
}

func TestCompareFiles(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "before.json")
	jsonBody := `{"Resources": {"Vpc": {"Type": "AWS::EC2::VPC", "Properties": {"CidrBlock": "10.10.0.0/24"}}}}`
	if err := os.WriteFile(jsonPath, []byte(jsonBody), 0o644); err != nil {
		t.Fatal(err)
	}

	yamlPath := filepath.Join(dir, "after.yaml")
	yamlBody := `Resources:
  Vpc:
    Type: AWS::EC2::VPC
    Properties:
      CidrBlock: 10.20.0.0/24
`
	if err := os.WriteFile(yamlPath, []byte(yamlBody), 0o644); err != nil {
		t.Fatal(err)
	}

	result, err := CompareFiles(jsonPath, yamlPath, Options{})
	if err != nil {
		t.Fatalf("CompareFiles() error = %v", err)
	}
	if result.Summary.Modified != 1 {
		t.Errorf("Summary.Modified = %d, want 1", result.Summary.Modified)
	}

	if _, err := CompareFiles(filepath.Join(dir, "missing.json"), yamlPath, Options{}); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadTemplate_NoResources(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	if err := os.WriteFile(path, []byte(`{"AWSTemplateFormatVersion": "2010-09-09"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadTemplate(path); err == nil {
		t.Error("expected error for template without resources")
	}
}

func TestEqualStrings(t *testing.T) {
	tests := []struct {
		a, b []string
		want bool
	}{
		{nil, nil, true},
		{[]string{}, []string{}, true},
		{[]string{"a", "b"}, []string{"a", "b"}, true},
		{[]string{"a"}, []string{"b"}, false},
		{[]string{"a"}, []string{"a", "b"}, false},
	}

	for _, tt := range tests {
		got := equalStrings(tt.a, tt.b)
		if got != tt.want {
			t.Errorf("equalStrings(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
