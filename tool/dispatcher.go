package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ManishPrajapat001/movie-recommender-chatbot/chat"
	"github.com/ManishPrajapat001/movie-recommender-chatbot/logging"
)

// Dispatcher resolves model-issued tool calls against a Registry and executes
// them. Dispatch never returns an error: every failure mode (unknown tool,
// malformed arguments, missing required argument, handler error, panic) is
// converted into a serialized error payload so the hop loop can feed it back
// to the model as an observation instead of crashing the turn.
type Dispatcher struct {
	registry *Registry
	logger   logging.Logger
}

// DispatcherOptions configures optional Dispatcher collaborators.
type DispatcherOptions struct {
	Logger logging.Logger
}

// NewDispatcher constructs a Dispatcher over the given registry.
func NewDispatcher(registry *Registry, optFns ...func(o *DispatcherOptions)) *Dispatcher {
	opts := DispatcherOptions{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Dispatcher{registry: registry, logger: opts.Logger}
}

// Dispatch executes a single tool call and packages the outcome as a
// chat.ToolResult whose payload is JSON: the handler result on success, or a
// ToolError marker on failure.
func (d *Dispatcher) Dispatch(ctx context.Context, call chat.ToolCall) chat.ToolResult {
	start := time.Now()
	d.logger.Debug("tool.call.start", "tool", call.Name, "call_id", call.ID)

	result, err := d.execute(ctx, call)
	if err != nil {
		d.logger.Warn("tool.call.error", "tool", call.Name, "call_id", call.ID, "error", err.Error())
		return chat.ToolResult{CallID: call.ID, Payload: errorPayload(call.Name, err)}
	}

	d.logger.Info("tool.call.success",
		"tool", call.Name,
		"call_id", call.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return chat.ToolResult{CallID: call.ID, Payload: marshalPayload(call.Name, result)}
}

// execute performs lookup, argument decoding and the handler invocation.
// Panics inside handlers are recovered and surfaced as execution errors.
func (d *Dispatcher) execute(ctx context.Context, call chat.ToolCall) (result any, err error) {
	impl, resolveErr := d.registry.Resolve(call.Name)
	if resolveErr != nil {
		return nil, &ToolError{Tool: call.Name, Message: resolveErr.Error(), Code: CodeUnknownTool}
	}

	args := map[string]any{}
	if call.Arguments != "" {
		if jsonErr := json.Unmarshal([]byte(call.Arguments), &args); jsonErr != nil {
			return nil, &ToolError{
				Tool:    call.Name,
				Message: fmt.Sprintf("failed to unmarshal arguments: %v", jsonErr),
				Code:    CodeInvalidArguments,
			}
		}
	}

	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("tool.call.panic", "tool", call.Name, "recover", r)
			result = nil
			err = &ToolError{Tool: call.Name, Message: fmt.Sprintf("panic: %v", r), Code: CodeExecutionError}
		}
	}()

	return impl.Call(ctx, args)
}

// errorPayload serializes a failure as JSON the model can inspect.
func errorPayload(toolName string, err error) string {
	toolErr, ok := err.(*ToolError)
	if !ok {
		toolErr = &ToolError{Tool: toolName, Message: err.Error(), Code: CodeExecutionError}
	}
	b, marshalErr := json.Marshal(map[string]any{"error": toolErr})
	if marshalErr != nil {
		return fmt.Sprintf(`{"error":{"tool":%q,"code":%q}}`, toolName, toolErr.Code)
	}
	return string(b)
}

// marshalPayload serializes a handler result; a result that cannot be
// serialized is reported as an execution error payload.
func marshalPayload(toolName string, result any) string {
	b, err := json.Marshal(result)
	if err != nil {
		return errorPayload(toolName, &ToolError{
			Tool:    toolName,
			Message: fmt.Sprintf("failed to serialize result: %v", err),
			Code:    CodeExecutionError,
		})
	}
	return string(b)
}
