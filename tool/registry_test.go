package tool

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func noopTool(name string) Tool {
	return NewFunctionTool(name, "test tool", map[string]any{"type": "object", "properties": map[string]any{}},
		func(_ context.Context, _ map[string]any) (any, error) { return nil, nil })
}

func TestRegistry_RegisterAndResolve(t *testing.T) {
	r := NewRegistry()
	assert.NoError(t, r.Register(noopTool("alpha")))
	assert.NoError(t, r.Register(noopTool("beta")))

	resolved, err := r.Resolve("alpha")
	assert.NoError(t, err)
	assert.Equal(t, "alpha", resolved.Name())
	assert.Equal(t, 2, r.Len())
}

func TestRegistry_Duplicate(t *testing.T) {
	r := NewRegistry()
	assert.NoError(t, r.Register(noopTool("alpha")))

	err := r.Register(noopTool("alpha"))
	assert.Error(t, err)
	dupErr, ok := err.(*DuplicateToolError)
	assert.True(t, ok)
	assert.Equal(t, "alpha", dupErr.Name)
}

func TestRegistry_ResolveUnknown(t *testing.T) {
	r := NewRegistry()
	_, err := r.Resolve("missing")
	assert.Error(t, err)
	unknownErr, ok := err.(*UnknownToolError)
	assert.True(t, ok)
	assert.Equal(t, "missing", unknownErr.Name)
}

func TestRegistry_OrderPreserved(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(noopTool("c"), noopTool("a"), noopTool("b"))

	assert.Equal(t, []string{"c", "a", "b"}, r.Names())

	tools := r.Tools()
	names := make([]string, 0, len(tools))
	for _, tl := range tools {
		names = append(names, tl.Name())
	}
	assert.Equal(t, []string{"c", "a", "b"}, names)
}
