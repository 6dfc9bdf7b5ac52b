package config

import (
	"encoding/json"

	"github.com/invopop/jsonschema"

	"cigate/internal/tools"
)

// MarshalSchema indents the schema to JSON bytes.
func MarshalSchema(sch *jsonschema.Schema) ([]byte, error) {
	return json.MarshalIndent(sch, "", "  ")
}

// ConfigSchema returns a JSON Schema for .cigate.yaml.
func ConfigSchema() *jsonschema.Schema {
	r := jsonschema.Reflector{ExpandedStruct: true}
	sch := r.Reflect(&Config{})
	sch.Title = "cigate configuration"
	sch.Description = "Project settings read from .cigate.yaml; flags and CIGATE_* variables take precedence."
	return sch
}

// ReportSchema describes the --json output: tool names map to results and
// the reserved "summary" key holds the aggregate.
func ReportSchema() *jsonschema.Schema {
	r := jsonschema.Reflector{ExpandedStruct: true, DoNotReference: true}
	props := jsonschema.NewProperties()
	props.Set("summary", r.Reflect(&tools.Summary{}))
	return &jsonschema.Schema{
		Title:                "cigate report",
		Description:          "Top-level map of tool results (keys: tool names) plus summary.",
		Type:                 "object",
		Properties:           props,
		Required:             []string{"summary"},
		AdditionalProperties: r.Reflect(&tools.ToolResult{}),
	}
}
