package config

import (
	"github.com/grovetools/ctnotes/schema"
)

// SchemaValidator validates configuration against the generated JSON Schema.
type SchemaValidator struct {
	validator *schema.Validator
}

// NewSchemaValidator creates a validator from the schema reflected off Config.
func NewSchemaValidator() (*SchemaValidator, error) {
	data, err := GenerateSchema()
	if err != nil {
		return nil, err
	}
	validator, err := schema.NewValidator("ctnotes.json", data)
	if err != nil {
		return nil, err
	}
	return &SchemaValidator{validator: validator}, nil
}

// Validate validates configuration data against the schema.
func (v *SchemaValidator) Validate(configData interface{}) error {
	return v.validator.Validate(configData)
}
