package tool

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFunctionTool_Success(t *testing.T) {
	params := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"a": map[string]any{"type": "number"},
			"b": map[string]any{"type": "number"},
		},
		"required": []string{"a", "b"},
	}

	sumTool := NewFunctionTool("sum", "Add numbers", params, func(_ context.Context, args map[string]any) (any, error) {
		return args["a"].(float64) + args["b"].(float64), nil
	})

	result, err := sumTool.Call(context.Background(), map[string]any{"a": 2.0, "b": 3.0})
	assert.NoError(t, err)
	assert.Equal(t, 5.0, result)
}

func TestFunctionTool_ValidationError(t *testing.T) {
	params := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"a": map[string]any{"type": "number"},
		},
		"required": []any{"a"},
	}
	tTool := NewFunctionTool("test", "Test", params, func(_ context.Context, _ map[string]any) (any, error) {
		return 0, nil
	})

	_, err := tTool.Call(context.Background(), map[string]any{})
	assert.Error(t, err)
	toolErr, ok := err.(*ToolError)
	assert.True(t, ok)
	assert.Equal(t, CodeValidationError, toolErr.Code)
}

func TestFunctionTool_ExecutionError(t *testing.T) {
	params := map[string]any{"type": "object", "properties": map[string]any{}}
	execTool := NewFunctionTool("fail", "Fails", params, func(_ context.Context, _ map[string]any) (any, error) {
		return nil, errors.New("boom")
	})

	_, err := execTool.Call(context.Background(), map[string]any{})
	assert.Error(t, err)
	toolErr, ok := err.(*ToolError)
	assert.True(t, ok)
	assert.Equal(t, CodeExecutionError, toolErr.Code)
}

func TestFunctionTool_ToolErrorPassthrough(t *testing.T) {
	params := map[string]any{"type": "object", "properties": map[string]any{}}
	custom := NewToolError("custom", "not allowed", "FORBIDDEN")
	customTool := NewFunctionTool("custom", "Custom error", params, func(_ context.Context, _ map[string]any) (any, error) {
		return nil, custom
	})

	_, err := customTool.Call(context.Background(), map[string]any{})
	assert.Same(t, custom, err)
}

func TestFunctionToolFromStruct(t *testing.T) {
	type args struct {
		Name string `json:"name" description:"A name"`
	}
	st := NewFunctionToolFromStruct("greet", "Greets", args{}, func(_ context.Context, a map[string]any) (any, error) {
		return "hello " + a["name"].(string), nil
	})

	props, ok := st.Parameters()["properties"].(map[string]any)
	assert.True(t, ok)
	assert.Contains(t, props, "name")

	_, err := st.Call(context.Background(), map[string]any{})
	assert.Error(t, err) // name is required

	result, err := st.Call(context.Background(), map[string]any{"name": "sam"})
	assert.NoError(t, err)
	assert.Equal(t, "hello sam", result)
}

func TestToolErrorFormatting(t *testing.T) {
	err := NewToolError("demo", "something failed", "E123")
	assert.Contains(t, err.Error(), "E123")
	assert.Contains(t, err.Error(), "demo")
}
