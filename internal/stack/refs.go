package stack

import (
	"regexp"
	"strings"
)

// subVariable matches ${Name} and ${Name.Attr}; ${!Literal} is an escape.
var subVariable = regexp.MustCompile(`\$\{([^!}][^}]*)\}`)

// references returns the logical names referenced from a serialized value.
// Pseudo parameters (AWS::Region, ...) are not included.
func references(v any) map[string]struct{} {
	refs := make(map[string]struct{})
	collectReferences(v, refs)
	return refs
}

func collectReferences(v any, refs map[string]struct{}) {
	switch val := v.(type) {
	case map[string]any:
		if len(val) == 1 {
			if ref, ok := val["Ref"].(string); ok {
				addReference(ref, refs)
				return
			}
			if getAtt, ok := val["Fn::GetAtt"]; ok {
				addGetAtt(getAtt, refs)
				return
			}
			if sub, ok := val["Fn::Sub"]; ok {
				addSub(sub, refs)
				return
			}
		}
		for _, item := range val {
			collectReferences(item, refs)
		}
	case []any:
		for _, item := range val {
			collectReferences(item, refs)
		}
	}
}

func addReference(name string, refs map[string]struct{}) {
	if name == "" || strings.Contains(name, "::") {
		return
	}
	refs[name] = struct{}{}
}

func addGetAtt(v any, refs map[string]struct{}) {
	switch val := v.(type) {
	case []any:
		if len(val) > 0 {
			if name, ok := val[0].(string); ok {
				addReference(name, refs)
			}
		}
		// The attribute name may itself be an intrinsic.
		if len(val) > 1 {
			collectReferences(val[1], refs)
		}
	case string:
		name, _, _ := strings.Cut(val, ".")
		addReference(name, refs)
	}
}

// addSub handles both {"Fn::Sub": "str"} and {"Fn::Sub": ["str", {vars}]}.
func addSub(v any, refs map[string]struct{}) {
	var (
		format string
		vars   map[string]any
	)
	switch val := v.(type) {
	case string:
		format = val
	case []any:
		if len(val) > 0 {
			format, _ = val[0].(string)
		}
		if len(val) > 1 {
			vars, _ = val[1].(map[string]any)
		}
	}

	for _, m := range subVariable.FindAllStringSubmatch(format, -1) {
		name, _, _ := strings.Cut(m[1], ".")
		if _, local := vars[name]; local {
			continue
		}
		addReference(name, refs)
	}
	for _, value := range vars {
		collectReferences(value, refs)
	}
}
