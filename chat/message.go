// Package chat defines the message and tool-call types exchanged between the
// hop loop, the model endpoint and the tool dispatcher. Messages form an
// append-only log: once created they are never rewritten or deleted.
package chat

import "github.com/google/uuid"

// Role identifies the author of a message in the conversation.
type Role string

const (
	// RoleSystem carries the standing instructions given to the model.
	RoleSystem Role = "system"
	// RoleUser is a message typed by the end user.
	RoleUser Role = "user"
	// RoleAssistant is a model-authored message (text and/or tool calls).
	RoleAssistant Role = "assistant"
	// RoleTool carries the serialized result of a dispatched tool call.
	RoleTool Role = "tool"
)

// ToolCall is a model-issued request to invoke a named tool. It is produced
// only by the model endpoint and is immutable once issued. Arguments is the
// serialized JSON object exactly as emitted by the provider.
type ToolCall struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// ToolResult is the outcome of dispatching a single ToolCall. Payload is a
// serialized JSON value: either the handler result or an error marker the
// model can reason about. CallID matches the originating ToolCall.
type ToolResult struct {
	CallID  string `json:"call_id"`
	Payload string `json:"payload"`
}

// Message is a single entry in a conversation. Content may be empty for
// assistant messages that only carry a tool call. ToolCallID links a
// tool-role message back to the assistant tool call it answers.
type Message struct {
	Role       Role       `json:"role"`
	Content    string     `json:"content,omitempty"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
}

// NewSystemMessage creates a system-role message.
func NewSystemMessage(text string) Message {
	return Message{Role: RoleSystem, Content: text}
}

// NewUserMessage creates a user-role message.
func NewUserMessage(text string) Message {
	return Message{Role: RoleUser, Content: text}
}

// NewAssistantMessage creates a plain-text assistant message.
func NewAssistantMessage(text string) Message {
	return Message{Role: RoleAssistant, Content: text}
}

// NewToolCallMessage creates the assistant message recording that the model
// requested the given tool call. Content is usually empty here.
func NewToolCallMessage(content string, call ToolCall) Message {
	return Message{Role: RoleAssistant, Content: content, ToolCalls: []ToolCall{call}}
}

// NewToolResultMessage wraps a dispatched result as a tool-role message so it
// can be fed back to the model on the next hop.
func NewToolResultMessage(res ToolResult) Message {
	return Message{Role: RoleTool, Content: res.Payload, ToolCallID: res.CallID}
}

// HasToolCalls reports whether the message carries at least one tool call.
func (m Message) HasToolCalls() bool { return len(m.ToolCalls) > 0 }

// NewID generates a unique identifier for locally created calls and messages.
func NewID() string { return uuid.NewString() }
