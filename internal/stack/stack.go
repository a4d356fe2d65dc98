// Package stack assembles typed resources into a CloudFormation template.
//
// Resources are registered under a logical name and referenced through the
// returned Handle:
//
//	s := stack.New("Lambda + Aurora")
//	vpc := s.Add("Vpc", ec2.VPC{CidrBlock: "10.10.0.0/24"})
//	s.Add("DbSg", ec2.SecurityGroup{VpcId: vpc.Ref()})
//	tmpl, err := s.Build()
//
// Dependencies are discovered from Ref, Fn::GetAtt and Fn::Sub references in
// the serialized properties, so DependsOn is only needed for ordering that no
// property expresses.
package stack

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	lambdaaurora "github.com/lex00/lambda-aurora-go"
	"github.com/lex00/lambda-aurora-go/internal/serialize"
	"github.com/lex00/lambda-aurora-go/intrinsics"
)

// Handle references a resource or parameter registered on a Stack.
type Handle struct {
	name string
}

// Name returns the logical name.
func (h Handle) Name() string { return h.name }

// Ref returns {"Ref": name}.
func (h Handle) Ref() intrinsics.Ref {
	return intrinsics.Ref{LogicalName: h.name}
}

// Attr returns {"Fn::GetAtt": [name, attribute]}.
func (h Handle) Attr(attribute string) lambdaaurora.AttrRef {
	return lambdaaurora.AttrRef{Resource: h.name, Attribute: attribute}
}

type entry struct {
	resource       lambdaaurora.Resource
	dependsOn      []string
	deletionPolicy string
}

// Stack is a registry of resources, parameters and outputs.
type Stack struct {
	description string
	transforms  []string
	resources   map[string]*entry
	parameters  map[string]lambdaaurora.Parameter
	outputs     map[string]lambdaaurora.Output
	errs        []error
}

// New creates an empty stack.
func New(description string) *Stack {
	return &Stack{
		description: description,
		resources:   make(map[string]*entry),
		parameters:  make(map[string]lambdaaurora.Parameter),
		outputs:     make(map[string]lambdaaurora.Output),
	}
}

// Add registers a resource under name. Registration errors (empty or
// duplicate names, nil resources) are collected and reported by Build.
func (s *Stack) Add(name string, r lambdaaurora.Resource, dependsOn ...Handle) Handle {
	if err := s.checkName(name); err != nil {
		s.errs = append(s.errs, err)
		return Handle{name: name}
	}
	if r == nil {
		s.errs = append(s.errs, fmt.Errorf("resource %s: nil resource", name))
		return Handle{name: name}
	}

	e := &entry{resource: r}
	for _, dep := range dependsOn {
		e.dependsOn = append(e.dependsOn, dep.name)
	}
	s.resources[name] = e
	return Handle{name: name}
}

// SetDeletionPolicy sets the DeletionPolicy attribute of a resource.
func (s *Stack) SetDeletionPolicy(h Handle, policy string) {
	e, ok := s.resources[h.name]
	if !ok {
		s.errs = append(s.errs, fmt.Errorf("deletion policy: unknown resource %s", h.name))
		return
	}
	e.deletionPolicy = policy
}

// AddParameter registers a template parameter.
func (s *Stack) AddParameter(name string, p lambdaaurora.Parameter) Handle {
	if err := s.checkName(name); err != nil {
		s.errs = append(s.errs, err)
		return Handle{name: name}
	}
	if p.Type == "" {
		p.Type = "String"
	}
	s.parameters[name] = p
	return Handle{name: name}
}

// AddOutput registers a template output.
func (s *Stack) AddOutput(name string, o lambdaaurora.Output) {
	if _, exists := s.outputs[name]; exists {
		s.errs = append(s.errs, fmt.Errorf("duplicate output name: %s", name))
		return
	}
	s.outputs[name] = o
}

// AddTransform adds a template transform (macro), once.
func (s *Stack) AddTransform(transform string) {
	for _, t := range s.transforms {
		if t == transform {
			return
		}
	}
	s.transforms = append(s.transforms, transform)
}

// Names returns the logical names of all resources, sorted.
func (s *Stack) Names() []string {
	names := make([]string, 0, len(s.resources))
	for name := range s.resources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resource returns the resource registered under name.
func (s *Stack) Resource(name string) (lambdaaurora.Resource, bool) {
	e, ok := s.resources[name]
	if !ok {
		return nil, false
	}
	return e.resource, true
}

// Len returns the number of resources.
func (s *Stack) Len() int { return len(s.resources) }

func (s *Stack) checkName(name string) error {
	if name == "" {
		return errors.New("empty logical name")
	}
	for _, r := range name {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return fmt.Errorf("logical name %q must be alphanumeric", name)
		}
	}
	if _, exists := s.resources[name]; exists {
		return fmt.Errorf("duplicate logical name: %s", name)
	}
	if _, exists := s.parameters[name]; exists {
		return fmt.Errorf("duplicate logical name: %s", name)
	}
	return nil
}

// Node is the serialized view of one resource.
type Node struct {
	Name       string
	Type       string
	Properties map[string]any
	// DependsOn holds the explicit dependencies.
	DependsOn []string
	// Dependencies holds every resource this one must follow, explicit or
	// discovered from references.
	Dependencies []string
}

// Resolve serializes every resource and returns them in dependency order.
func (s *Stack) Resolve() ([]Node, error) {
	errs := append([]error(nil), s.errs...)

	nodes := make(map[string]*Node, len(s.resources))
	for _, name := range s.Names() {
		e := s.resources[name]
		props, err := serialize.Properties(e.resource)
		if err != nil {
			errs = append(errs, fmt.Errorf("serializing %s: %w", name, err))
			continue
		}

		deps := make(map[string]struct{})
		for _, dep := range e.dependsOn {
			deps[dep] = struct{}{}
		}
		for ref := range references(props) {
			if _, isParam := s.parameters[ref]; isParam {
				continue
			}
			deps[ref] = struct{}{}
		}
		delete(deps, name)

		node := &Node{
			Name:       name,
			Type:       e.resource.ResourceType(),
			Properties: props,
			DependsOn:  sortedUnique(e.dependsOn),
		}
		for dep := range deps {
			if _, exists := s.resources[dep]; !exists {
				errs = append(errs, fmt.Errorf("resource %s references undefined %s", name, dep))
				continue
			}
			node.Dependencies = append(node.Dependencies, dep)
		}
		sort.Strings(node.Dependencies)
		nodes[name] = node
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	order, err := topologicalSort(nodes)
	if err != nil {
		return nil, err
	}

	result := make([]Node, 0, len(order))
	for _, name := range order {
		result = append(result, *nodes[name])
	}
	return result, nil
}

// Build constructs the CloudFormation template.
func (s *Stack) Build() (*lambdaaurora.Template, error) {
	nodes, err := s.Resolve()
	if err != nil {
		return nil, err
	}

	template := &lambdaaurora.Template{
		AWSTemplateFormatVersion: "2010-09-09",
		Description:              s.description,
		Resources:                make(map[string]lambdaaurora.ResourceDef, len(nodes)),
	}

	switch len(s.transforms) {
	case 0:
	case 1:
		template.Transform = s.transforms[0]
	default:
		template.Transform = append([]string(nil), s.transforms...)
	}

	var errs []error

	if len(s.parameters) > 0 {
		template.Parameters = make(map[string]lambdaaurora.Parameter, len(s.parameters))
		for name, p := range s.parameters {
			if p.Default != nil {
				def, err := serialize.Value(p.Default)
				if err != nil {
					errs = append(errs, fmt.Errorf("parameter %s: %w", name, err))
					continue
				}
				p.Default = def
			}
			template.Parameters[name] = p
		}
	}

	for _, node := range nodes {
		template.Resources[node.Name] = lambdaaurora.ResourceDef{
			Type:           node.Type,
			Properties:     node.Properties,
			DependsOn:      node.DependsOn,
			DeletionPolicy: s.resources[node.Name].deletionPolicy,
		}
	}

	if len(s.outputs) > 0 {
		template.Outputs = make(map[string]lambdaaurora.Output, len(s.outputs))
		for name, o := range s.outputs {
			out, err := s.serializeOutput(name, o)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			template.Outputs[name] = out
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return template, nil
}

func (s *Stack) serializeOutput(name string, o lambdaaurora.Output) (lambdaaurora.Output, error) {
	value, err := serialize.Value(o.Value)
	if err != nil {
		return o, fmt.Errorf("output %s: %w", name, err)
	}
	for ref := range references(value) {
		_, isResource := s.resources[ref]
		_, isParam := s.parameters[ref]
		if !isResource && !isParam {
			return o, fmt.Errorf("output %s references undefined %s", name, ref)
		}
	}
	o.Value = value

	if o.Export != nil {
		exportName, err := serialize.Value(o.Export.Name)
		if err != nil {
			return o, fmt.Errorf("output %s export: %w", name, err)
		}
		o.Export = &lambdaaurora.OutputExport{Name: exportName}
	}
	return o, nil
}

// topologicalSort returns resources in dependency order.
func topologicalSort(nodes map[string]*Node) ([]string, error) {
	graph := make(map[string][]string)
	inDegree := make(map[string]int)

	for name := range nodes {
		graph[name] = nil
		inDegree[name] = 0
	}

	for name, node := range nodes {
		for _, dep := range node.Dependencies {
			graph[dep] = append(graph[dep], name)
			inDegree[name]++
		}
	}

	// Kahn's algorithm
	var queue []string
	for name, degree := range inDegree {
		if degree == 0 {
			queue = append(queue, name)
		}
	}
	sort.Strings(queue) // Deterministic order

	var result []string
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		result = append(result, node)

		for _, neighbor := range graph[node] {
			inDegree[neighbor]--
			if inDegree[neighbor] == 0 {
				queue = append(queue, neighbor)
				sort.Strings(queue)
			}
		}
	}

	if len(result) != len(nodes) {
		return nil, detectCycle(nodes)
	}

	return result, nil
}

// detectCycle finds and reports a cycle in the dependency graph.
func detectCycle(nodes map[string]*Node) error {
	visited := make(map[string]bool)
	path := make(map[string]bool)

	var cycle []string
	var findCycle func(node string) bool
	findCycle = func(node string) bool {
		visited[node] = true
		path[node] = true

		for _, dep := range nodes[node].Dependencies {
			if !visited[dep] {
				if findCycle(dep) {
					cycle = append([]string{node}, cycle...)
					return true
				}
			} else if path[dep] {
				cycle = []string{node, dep}
				return true
			}
		}

		path[node] = false
		return false
	}

	names := make([]string, 0, len(nodes))
	for name := range nodes {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if !visited[name] && findCycle(name) {
			break
		}
	}

	if len(cycle) > 0 {
		// Trim the walk down to the loop itself.
		last := cycle[len(cycle)-1]
		for i, name := range cycle {
			if name == last {
				cycle = cycle[i:]
				break
			}
		}
		return fmt.Errorf("circular dependency detected: %s", strings.Join(cycle, " → "))
	}

	return errors.New("circular dependency detected")
}

func sortedUnique(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	var out []string
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
