package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "name": {"type": "string"},
    "mode": {"type": "string", "enum": ["a", "b"]}
  },
  "required": ["name"],
  "additionalProperties": false
}`

type sample struct {
	Name string `json:"name,omitempty"`
	Mode string `json:"mode,omitempty"`
}

func TestValidator(t *testing.T) {
	v, err := NewValidator("sample.json", []byte(testSchema))
	require.NoError(t, err)

	assert.NoError(t, v.Validate(sample{Name: "x", Mode: "a"}))

	err = v.Validate(sample{Mode: "c"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema validation failed")
}

func TestNewValidatorRejectsBrokenSchema(t *testing.T) {
	_, err := NewValidator("broken.json", []byte(`{"type": 12}`))
	assert.Error(t, err)
}
