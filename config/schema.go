package config

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// GenerateSchema generates the JSON Schema for the ctnotes configuration file.
// Extensions are not part of the schema; they are validated by their owners.
func GenerateSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties:  false,
		Anonymous:                  true,
		ExpandedStruct:             true,
		RequiredFromJSONSchemaTags: true,
		// Use YAML field names for property names
		FieldNameTag: "yaml",
	}

	schema := r.Reflect(&Config{})
	schema.Title = "ctnotes configuration"
	schema.Description = "Schema for ctnotes.toml / ctnotes.yml."

	return json.MarshalIndent(schema, "", "  ")
}
