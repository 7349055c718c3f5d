package tool

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManishPrajapat001/movie-recommender-chatbot/chat"
)

func decodeError(t *testing.T, payload string) map[string]any {
	t.Helper()
	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(payload), &decoded))
	errMap, ok := decoded["error"].(map[string]any)
	require.True(t, ok, "payload %q has no error marker", payload)
	return errMap
}

func TestDispatcher_Success(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(NewFunctionTool("echo", "Echoes input",
		map[string]any{
			"type":       "object",
			"properties": map[string]any{"text": map[string]any{"type": "string"}},
			"required":   []string{"text"},
		},
		func(_ context.Context, args map[string]any) (any, error) {
			return map[string]any{"echo": args["text"]}, nil
		}))

	d := NewDispatcher(r)
	res := d.Dispatch(context.Background(), chat.ToolCall{ID: "call-1", Name: "echo", Arguments: `{"text":"hi"}`})

	assert.Equal(t, "call-1", res.CallID)
	assert.JSONEq(t, `{"echo":"hi"}`, res.Payload)
}

func TestDispatcher_UnknownToolNeverRaises(t *testing.T) {
	d := NewDispatcher(NewRegistry())
	res := d.Dispatch(context.Background(), chat.ToolCall{ID: "call-2", Name: "nope", Arguments: "{}"})

	assert.Equal(t, "call-2", res.CallID)
	errMap := decodeError(t, res.Payload)
	assert.Equal(t, CodeUnknownTool, errMap["code"])
}

func TestDispatcher_MissingRequiredArgument(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(NewFunctionTool("needs_arg", "Needs an argument",
		map[string]any{
			"type":       "object",
			"properties": map[string]any{"id": map[string]any{"type": "string"}},
			"required":   []string{"id"},
		},
		func(_ context.Context, _ map[string]any) (any, error) { return nil, nil }))

	d := NewDispatcher(r)
	res := d.Dispatch(context.Background(), chat.ToolCall{ID: "call-3", Name: "needs_arg", Arguments: "{}"})

	errMap := decodeError(t, res.Payload)
	assert.Equal(t, CodeValidationError, errMap["code"])
}

func TestDispatcher_MalformedArguments(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(noopTool("fine"))

	d := NewDispatcher(r)
	res := d.Dispatch(context.Background(), chat.ToolCall{ID: "call-4", Name: "fine", Arguments: `{"broken`})

	errMap := decodeError(t, res.Payload)
	assert.Equal(t, CodeInvalidArguments, errMap["code"])
}

func TestDispatcher_HandlerError(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(NewFunctionTool("boom", "Always fails",
		map[string]any{"type": "object", "properties": map[string]any{}},
		func(_ context.Context, _ map[string]any) (any, error) { return nil, errors.New("db unavailable") }))

	d := NewDispatcher(r)
	res := d.Dispatch(context.Background(), chat.ToolCall{ID: "call-5", Name: "boom", Arguments: "{}"})

	errMap := decodeError(t, res.Payload)
	assert.Equal(t, CodeExecutionError, errMap["code"])
	assert.Contains(t, errMap["message"], "db unavailable")
}

func TestDispatcher_PanicRecovered(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(NewFunctionTool("panics", "Panics",
		map[string]any{"type": "object", "properties": map[string]any{}},
		func(_ context.Context, _ map[string]any) (any, error) { panic("unexpected") }))

	d := NewDispatcher(r)
	res := d.Dispatch(context.Background(), chat.ToolCall{ID: "call-6", Name: "panics", Arguments: "{}"})

	errMap := decodeError(t, res.Payload)
	assert.Equal(t, CodeExecutionError, errMap["code"])
	assert.Contains(t, errMap["message"], "panic")
}

func TestDispatcher_EmptyArguments(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(noopTool("no_args"))

	d := NewDispatcher(r)
	res := d.Dispatch(context.Background(), chat.ToolCall{ID: "call-7", Name: "no_args"})

	assert.Equal(t, "call-7", res.CallID)
	assert.Equal(t, "null", res.Payload)
}
