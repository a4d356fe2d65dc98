// Package differ compares two CloudFormation templates resource by resource.
//
// Templates synthesized in memory and templates loaded from disk are
// compared on their JSON form, so an int 5432 and a decoded float64 5432
// are equal.
package differ

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"sort"

	"gopkg.in/yaml.v3"

	lambdaaurora "github.com/lex00/lambda-aurora-go"
)

// Options configures the differ.
type Options struct {
	// IgnoreOrder ignores array element order in comparisons
	IgnoreOrder bool
}

// Result contains the difference between two templates.
type Result struct {
	Diff    lambdaaurora.TemplateDiff
	Summary lambdaaurora.DiffSummary
}

// Empty reports whether the templates had no resource differences.
func (r *Result) Empty() bool {
	return r.Summary.Total == 0
}

// Compare returns the resource changes going from before to after.
func Compare(before, after *lambdaaurora.Template, opts Options) (*Result, error) {
	res1, err := canonical(before.Resources)
	if err != nil {
		return nil, fmt.Errorf("normalizing first template: %w", err)
	}
	res2, err := canonical(after.Resources)
	if err != nil {
		return nil, fmt.Errorf("normalizing second template: %w", err)
	}

	result := &Result{}

	for name, def := range res2 {
		if _, exists := res1[name]; !exists {
			result.Diff.Added = append(result.Diff.Added, lambdaaurora.DiffEntry{
				Resource: name,
				Type:     def.Type,
			})
		}
	}

	for name, def1 := range res1 {
		def2, exists := res2[name]
		if !exists {
			result.Diff.Removed = append(result.Diff.Removed, lambdaaurora.DiffEntry{
				Resource: name,
				Type:     def1.Type,
			})
			continue
		}
		if changes := compareResources(def1, def2, opts); len(changes) > 0 {
			result.Diff.Modified = append(result.Diff.Modified, lambdaaurora.DiffEntry{
				Resource: name,
				Type:     def2.Type,
				Changes:  changes,
			})
		}
	}

	sortEntries(result.Diff.Added)
	sortEntries(result.Diff.Removed)
	sortEntries(result.Diff.Modified)

	result.Summary = lambdaaurora.DiffSummary{
		Added:    len(result.Diff.Added),
		Removed:  len(result.Diff.Removed),
		Modified: len(result.Diff.Modified),
	}
	result.Summary.Total = result.Summary.Added + result.Summary.Removed + result.Summary.Modified

	return result, nil
}

// CompareFiles compares two template files.
func CompareFiles(file1, file2 string, opts Options) (*Result, error) {
	t1, err := LoadTemplate(file1)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", file1, err)
	}

	t2, err := LoadTemplate(file2)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", file2, err)
	}

	return Compare(t1, t2, opts)
}

// LoadTemplate loads a CloudFormation template from a JSON or YAML file.
func LoadTemplate(path string) (*lambdaaurora.Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var template lambdaaurora.Template
	if err := json.Unmarshal(data, &template); err != nil {
		if err := yaml.Unmarshal(data, &template); err != nil {
			return nil, fmt.Errorf("failed to parse as JSON or YAML: %w", err)
		}
	}

	if len(template.Resources) == 0 {
		return nil, fmt.Errorf("%s: template has no Resources", path)
	}
	return &template, nil
}

// canonical round-trips resources through JSON.
func canonical(resources map[string]lambdaaurora.ResourceDef) (map[string]lambdaaurora.ResourceDef, error) {
	data, err := json.Marshal(resources)
	if err != nil {
		return nil, err
	}
	var out map[string]lambdaaurora.ResourceDef
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func compareResources(def1, def2 lambdaaurora.ResourceDef, opts Options) []string {
	var changes []string

	if def1.Type != def2.Type {
		changes = append(changes, fmt.Sprintf("Type changed: %s → %s", def1.Type, def2.Type))
	}

	changes = append(changes, compareProperties("", def1.Properties, def2.Properties, opts)...)

	if !equalStrings(def1.DependsOn, def2.DependsOn) {
		changes = append(changes, "DependsOn changed")
	}
	if def1.DeletionPolicy != def2.DeletionPolicy {
		changes = append(changes, fmt.Sprintf("DeletionPolicy changed: %q → %q", def1.DeletionPolicy, def2.DeletionPolicy))
	}

	return changes
}

// compareProperties descends into nested objects so a change is reported at
// its deepest path, e.g. "GenerateSecretString.PasswordLength modified".
func compareProperties(prefix string, props1, props2 map[string]any, opts Options) []string {
	var changes []string

	for key, val2 := range props2 {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}

		val1, exists := props1[key]
		if !exists {
			changes = append(changes, path+" added")
			continue
		}

		m1, ok1 := val1.(map[string]any)
		m2, ok2 := val2.(map[string]any)
		if ok1 && ok2 && !isIntrinsic(m1) && !isIntrinsic(m2) {
			changes = append(changes, compareProperties(path, m1, m2, opts)...)
			continue
		}

		if !deepEqual(val1, val2, opts) {
			changes = append(changes, path+" modified")
		}
	}

	for key := range props1 {
		if _, exists := props2[key]; !exists {
			path := key
			if prefix != "" {
				path = prefix + "." + key
			}
			changes = append(changes, path+" removed")
		}
	}

	sort.Strings(changes)
	return changes
}

// isIntrinsic reports whether m is a single-key Ref or Fn:: object, which is
// compared as a whole.
func isIntrinsic(m map[string]any) bool {
	if len(m) != 1 {
		return false
	}
	for k := range m {
		return k == "Ref" || len(k) > 4 && k[:4] == "Fn::"
	}
	return false
}

func deepEqual(a, b any, opts Options) bool {
	if opts.IgnoreOrder {
		a = normalizeValue(a)
		b = normalizeValue(b)
	}
	return reflect.DeepEqual(a, b)
}

// normalizeValue sorts every array by the JSON encoding of its elements.
func normalizeValue(v any) any {
	switch val := v.(type) {
	case []any:
		result := make([]any, len(val))
		keys := make([]string, len(val))
		for i, item := range val {
			result[i] = normalizeValue(item)
			data, _ := json.Marshal(result[i])
			keys[i] = string(data)
		}
		sort.Sort(byKey{keys, result})
		return result
	case map[string]any:
		result := make(map[string]any, len(val))
		for k, item := range val {
			result[k] = normalizeValue(item)
		}
		return result
	default:
		return v
	}
}

type byKey struct {
	keys   []string
	values []any
}

func (s byKey) Len() int           { return len(s.keys) }
func (s byKey) Less(i, j int) bool { return s.keys[i] < s.keys[j] }
func (s byKey) Swap(i, j int) {
	s.keys[i], s.keys[j] = s.keys[j], s.keys[i]
	s.values[i], s.values[j] = s.values[j], s.values[i]
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sortEntries(entries []lambdaaurora.DiffEntry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Resource < entries[j].Resource
	})
}
