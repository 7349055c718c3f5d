// Package model defines the boundary to the language-model inference
// endpoint. The hop loop depends only on the Endpoint interface; provider
// adapters (openai, anthropic) translate the normalized request/response
// structures into vendor SDK calls.
package model

import (
	"context"
	"fmt"

	"github.com/ManishPrajapat001/movie-recommender-chatbot/chat"
)

// ToolDefinition declaratively exposes a callable function to the model.
type ToolDefinition struct {
	Type     string             `json:"type"` // "function"
	Function FunctionDefinition `json:"function"`
}

// FunctionDefinition describes an individual function (tool) exposed to the
// model. Parameters is a minimal JSON Schema object.
type FunctionDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// Request is the normalized model input for one hop: the working message
// sequence plus the full tool schema manifest. Tool selection is always left
// to the model ("auto").
type Request struct {
	Messages []chat.Message   `json:"messages"`
	Tools    []ToolDefinition `json:"tools,omitempty"`
}

// Response is the model's reply: either a terminal text answer or an
// assistant message carrying one or more tool calls.
type Response struct {
	Message      chat.Message `json:"message"`
	FinishReason string       `json:"finish_reason"` // "stop", "tool_calls", "length", ...
}

// Info contains metadata about an endpoint implementation.
type Info struct {
	Name          string `json:"name"`
	Provider      string `json:"provider"`
	SupportsTools bool   `json:"supports_tools"`
}

// Endpoint is the stateless request/response boundary to the model provider.
// Complete blocks until the provider answers; at most one call is outstanding
// per session at any time.
type Endpoint interface {
	Complete(ctx context.Context, req Request) (Response, error)

	// Info returns information about the endpoint implementation.
	Info() Info
}

// ScriptedEndpoint is an in-memory Endpoint that replays a fixed sequence of
// responses (or errors). Useful for tests and examples: script the exact tool
// call hops a scenario needs, then a terminal answer.
type ScriptedEndpoint struct {
	info     Info
	steps    []scriptStep
	requests []Request
	pos      int
}

type scriptStep struct {
	resp Response
	err  error
}

// NewScriptedEndpoint constructs an empty scripted endpoint.
func NewScriptedEndpoint() *ScriptedEndpoint {
	return &ScriptedEndpoint{
		info: Info{Name: "scripted", Provider: "test", SupportsTools: true},
	}
}

// EnqueueToolCall scripts a response requesting the given tool calls.
func (s *ScriptedEndpoint) EnqueueToolCall(calls ...chat.ToolCall) *ScriptedEndpoint {
	s.steps = append(s.steps, scriptStep{resp: Response{
		Message:      chat.Message{Role: chat.RoleAssistant, ToolCalls: calls},
		FinishReason: "tool_calls",
	}})
	return s
}

// EnqueueAnswer scripts a terminal text answer.
func (s *ScriptedEndpoint) EnqueueAnswer(text string) *ScriptedEndpoint {
	s.steps = append(s.steps, scriptStep{resp: Response{
		Message:      chat.NewAssistantMessage(text),
		FinishReason: "stop",
	}})
	return s
}

// EnqueueError scripts a provider failure for one call.
func (s *ScriptedEndpoint) EnqueueError(err error) *ScriptedEndpoint {
	s.steps = append(s.steps, scriptStep{err: err})
	return s
}

// Complete replays the next scripted step and records the request for later
// inspection.
func (s *ScriptedEndpoint) Complete(_ context.Context, req Request) (Response, error) {
	s.requests = append(s.requests, req)
	if s.pos >= len(s.steps) {
		return Response{}, fmt.Errorf("scripted endpoint exhausted after %d steps", len(s.steps))
	}
	step := s.steps[s.pos]
	s.pos++
	if step.err != nil {
		return Response{}, step.err
	}
	return step.resp, nil
}

// Requests returns every request received so far, in order.
func (s *ScriptedEndpoint) Requests() []Request { return s.requests }

// Calls returns how many times Complete was invoked.
func (s *ScriptedEndpoint) Calls() int { return len(s.requests) }

// Info implements Endpoint.
func (s *ScriptedEndpoint) Info() Info { return s.info }
