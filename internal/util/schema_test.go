package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleSchema struct {
	A string   `json:"a" description:"Field A"`
	B *int     `json:"b" description:"Optional pointer field"`
	C int      `json:"c,omitempty" description:"Omit empty field"`
	D []string `json:"d" description:"List field"`
}

func TestCreateSchema(t *testing.T) {
	schema := CreateSchema(sampleSchema{})

	props, ok := schema["properties"].(map[string]any)
	assert.True(t, ok)
	assert.Contains(t, props, "a")
	assert.Contains(t, props, "b")
	assert.Contains(t, props, "c")
	assert.Contains(t, props, "d")

	// Slice fields carry an items spec.
	d, ok := props["d"].(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, "array", d["type"])
	assert.Equal(t, map[string]any{"type": "string"}, d["items"])

	// Required excludes pointer and omitempty fields.
	req, _ := schema["required"].([]string)
	assert.ElementsMatch(t, []string{"a", "d"}, req)
}

func TestValidateParameters(t *testing.T) {
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"x": map[string]any{"type": "integer"},
		},
		// Use []any to mirror a JSON decoded schema shape
		"required": []any{"x"},
	}

	// Success
	assert.NoError(t, ValidateParameters(map[string]any{"x": 5}, schema))

	// Missing required
	err := ValidateParameters(map[string]any{}, schema)
	assert.Error(t, err)
	vErr, ok := err.(*ValidationError)
	assert.True(t, ok)
	assert.Equal(t, "x", vErr.Field)

	// Wrong type
	err = ValidateParameters(map[string]any{"x": "not-int"}, schema)
	assert.Error(t, err)
	vErr, ok = err.(*ValidationError)
	assert.True(t, ok)
	assert.Contains(t, vErr.Message, "expected type integer")

	// JSON numbers arrive as float64; whole values count as integers
	assert.NoError(t, ValidateParameters(map[string]any{"x": 5.0}, schema))
	assert.Error(t, ValidateParameters(map[string]any{"x": 5.5}, schema))
}

func TestValidateParameters_ExtraFieldsAllowed(t *testing.T) {
	schema := map[string]any{
		"type":       "object",
		"properties": map[string]any{},
	}
	assert.NoError(t, ValidateParameters(map[string]any{"surprise": true}, schema))
}
