// Package tool implements the function calling subsystem: a registry of
// named tools with JSON-schema parameter specs, and a dispatcher that turns
// model-issued tool calls into results the model can consume on the next hop.
package tool

import (
	"context"
	"fmt"

	"github.com/ManishPrajapat001/movie-recommender-chatbot/internal/util"
)

// Tool is a callable capability exposed to the model. Implementations should
// provide a descriptive name and description, declare a proper JSON schema
// for their parameters, and be safe for repeated invocation.
type Tool interface {
	// Name returns the unique identifier for this tool (snake_case).
	Name() string

	// Description is shown to the model so it can decide when to call the tool.
	Description() string

	// Parameters returns a JSON-schema-like map describing accepted arguments.
	Parameters() map[string]any

	// Call executes the tool with already-decoded arguments.
	Call(ctx context.Context, args map[string]any) (any, error)
}

// Error codes attached to ToolError values. The dispatcher serializes these
// into result payloads so the model can react to the failure mode.
const (
	CodeUnknownTool      = "UNKNOWN_TOOL"
	CodeInvalidArguments = "INVALID_ARGUMENTS"
	CodeValidationError  = "VALIDATION_ERROR"
	CodeExecutionError   = "EXECUTION_ERROR"
)

// ValidationError re-exports the schema validation error type.
type ValidationError = util.ValidationError

// ToolError represents a failure during tool resolution or execution.
type ToolError struct {
	Tool    string `json:"tool"`
	Message string `json:"message"`
	Code    string `json:"code"`
	Details any    `json:"details,omitempty"`
}

func (e *ToolError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("tool error [%s] in %s: %s", e.Code, e.Tool, e.Message)
	}
	return fmt.Sprintf("tool error in %s: %s", e.Tool, e.Message)
}

// NewToolError creates a ToolError with the given details.
func NewToolError(tool, message, code string) *ToolError {
	return &ToolError{Tool: tool, Message: message, Code: code}
}

// FunctionTool adapts a plain Go function into a Tool. It validates incoming
// arguments against the declared schema before invoking the function and
// normalizes failures into *ToolError values.
//
// A FunctionTool has no mutable state after construction and is safe for
// concurrent use.
type FunctionTool struct {
	name        string
	description string
	parameters  map[string]any
	fn          func(ctx context.Context, args map[string]any) (any, error)
}

// NewFunctionTool constructs a FunctionTool from an explicit schema and function.
func NewFunctionTool(
	name, description string,
	parameters map[string]any,
	fn func(ctx context.Context, args map[string]any) (any, error),
) *FunctionTool {
	return &FunctionTool{name: name, description: description, parameters: parameters, fn: fn}
}

// NewFunctionToolFromStruct derives the parameter schema from a struct using
// reflection. Convenient for simple argument containers.
func NewFunctionToolFromStruct(
	name, description string,
	structType any,
	fn func(ctx context.Context, args map[string]any) (any, error),
) *FunctionTool {
	return NewFunctionTool(name, description, util.CreateSchema(structType), fn)
}

// Name returns the unique tool name used in call routing.
func (t *FunctionTool) Name() string { return t.name }

// Description returns the description exposed to the model.
func (t *FunctionTool) Description() string { return t.description }

// Parameters returns the JSON schema describing expected arguments.
func (t *FunctionTool) Parameters() map[string]any { return t.parameters }

// Call validates args against the declared schema then invokes the wrapped
// function. Validation failures yield VALIDATION_ERROR, other failures
// EXECUTION_ERROR; a *ToolError returned by the function passes through.
func (t *FunctionTool) Call(ctx context.Context, args map[string]any) (any, error) {
	if err := util.ValidateParameters(args, t.parameters); err != nil {
		return nil, &ToolError{
			Tool:    t.name,
			Message: fmt.Sprintf("parameter validation failed: %v", err),
			Code:    CodeValidationError,
			Details: err,
		}
	}

	result, err := t.fn(ctx, args)
	if err != nil {
		if toolErr, ok := err.(*ToolError); ok {
			return nil, toolErr
		}
		return nil, &ToolError{Tool: t.name, Message: err.Error(), Code: CodeExecutionError}
	}
	return result, nil
}
