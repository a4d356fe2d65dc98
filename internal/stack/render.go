package stack

import (
	"encoding/json"

	"gopkg.in/yaml.v3"

	lambdaaurora "github.com/lex00/lambda-aurora-go"
)

// ToJSON serializes the template to JSON.
func ToJSON(t *lambdaaurora.Template) ([]byte, error) {
	return json.MarshalIndent(t, "", "  ")
}

// ToYAML serializes the template to YAML.
func ToYAML(t *lambdaaurora.Template) ([]byte, error) {
	return yaml.Marshal(t)
}
