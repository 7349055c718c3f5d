// Package orchestrator drives the multi-hop tool-call resolution loop: it
// submits the working message sequence to the model endpoint, dispatches the
// tool call the model requests, feeds the result back as an observation and
// repeats until the model produces a terminal text answer or the hop ceiling
// is reached.
package orchestrator

import (
	"context"
	"strings"
	"time"

	"github.com/ManishPrajapat001/movie-recommender-chatbot/chat"
	"github.com/ManishPrajapat001/movie-recommender-chatbot/logging"
	"github.com/ManishPrajapat001/movie-recommender-chatbot/model"
	"github.com/ManishPrajapat001/movie-recommender-chatbot/session"
	"github.com/ManishPrajapat001/movie-recommender-chatbot/tool"
)

// Options configures an Orchestrator.
type Options struct {
	// MaxHops caps the number of model rounds per turn. The reference
	// behavior had no cap, which risks looping forever when the model never
	// converges; exceeding the cap surfaces *HopLimitError instead.
	MaxHops int

	// MaxRetries is the number of additional endpoint attempts after a
	// failure, with exponential backoff starting at RetryBaseDelay.
	MaxRetries     int
	RetryBaseDelay time.Duration

	// SystemPrompt is prepended to the working messages of every turn.
	SystemPrompt string

	Logger logging.Logger
}

// Orchestrator owns the hop loop for all sessions. It is stateless between
// turns except for the durable session store; one turn runs strictly
// sequentially with at most one endpoint call and one dispatch outstanding.
type Orchestrator struct {
	endpoint   model.Endpoint
	registry   *tool.Registry
	dispatcher *tool.Dispatcher
	sessions   session.Store
	opts       Options
	logger     logging.Logger
	manifest   []model.ToolDefinition
}

// New constructs an Orchestrator. The registry is read-only from here on; the
// tool schema manifest is built once and reused on every hop.
func New(
	endpoint model.Endpoint,
	registry *tool.Registry,
	dispatcher *tool.Dispatcher,
	sessions session.Store,
	optFns ...func(o *Options),
) *Orchestrator {
	opts := Options{
		MaxHops:        8,
		MaxRetries:     2,
		RetryBaseDelay: 500 * time.Millisecond,
		Logger:         logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Orchestrator{
		endpoint:   endpoint,
		registry:   registry,
		dispatcher: dispatcher,
		sessions:   sessions,
		opts:       opts,
		logger:     opts.Logger,
		manifest:   buildManifest(registry),
	}
}

// buildManifest converts registered tools into the schema manifest sent to
// the model on every request.
func buildManifest(registry *tool.Registry) []model.ToolDefinition {
	tools := registry.Tools()
	defs := make([]model.ToolDefinition, 0, len(tools))
	for _, t := range tools {
		defs = append(defs, model.ToolDefinition{
			Type: "function",
			Function: model.FunctionDefinition{
				Name:        t.Name(),
				Description: t.Description(),
				Parameters:  t.Parameters(),
			},
		})
	}
	return defs
}

// Respond runs one full turn for the given session: it seeds the working
// messages from durable history plus the new user message, then loops through
// model rounds until a terminal answer. Only the user message and the final
// assistant answer are committed to durable history; intermediate tool
// exchanges live solely in the working sequence of this turn.
func (o *Orchestrator) Respond(ctx context.Context, sessionID, userInput string) (string, error) {
	sess, err := o.sessions.Get(sessionID)
	if err != nil {
		return "", err
	}

	history := sess.Snapshot()
	working := make([]chat.Message, 0, len(history)+2)
	if o.opts.SystemPrompt != "" {
		working = append(working, chat.NewSystemMessage(o.opts.SystemPrompt))
	}
	working = append(working, history...)
	userMsg := chat.NewUserMessage(userInput)
	working = append(working, userMsg)

	o.logger.Debug("loop.turn.start", "session_id", sessionID, "history_len", len(history))
	start := time.Now()

	for hop := 0; hop < o.opts.MaxHops; hop++ {
		resp, err := o.complete(ctx, model.Request{Messages: working, Tools: o.manifest})
		if err != nil {
			return "", err
		}

		calls := resp.Message.ToolCalls
		if len(calls) == 0 {
			answer := strings.TrimSpace(resp.Message.Content)
			sess.Append(userMsg, chat.NewAssistantMessage(answer))
			o.logger.Info("loop.turn.done",
				"session_id", sessionID,
				"hops", hop,
				"duration_ms", time.Since(start).Milliseconds(),
			)
			return answer, nil
		}

		// Strictly sequential: one tool call per round. Extra simultaneous
		// calls in the same response are dropped, not reordered.
		call := calls[0]
		if len(calls) > 1 {
			o.logger.Warn("loop.tool_calls.truncated",
				"session_id", sessionID,
				"kept", call.Name,
				"dropped", len(calls)-1,
			)
		}

		working = append(working, chat.NewToolCallMessage(resp.Message.Content, call))
		result := o.dispatcher.Dispatch(ctx, call)
		working = append(working, chat.NewToolResultMessage(result))

		o.logger.Debug("loop.hop.complete", "session_id", sessionID, "hop", hop, "tool", call.Name)
	}

	o.logger.Warn("loop.turn.aborted", "session_id", sessionID, "max_hops", o.opts.MaxHops)
	return "", &HopLimitError{Hops: o.opts.MaxHops}
}

// complete calls the endpoint, retrying transient failures a bounded number
// of times with exponential backoff. Context cancellation aborts immediately.
func (o *Orchestrator) complete(ctx context.Context, req model.Request) (model.Response, error) {
	delay := o.opts.RetryBaseDelay
	var lastErr error

	for attempt := 0; attempt <= o.opts.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return model.Response{}, ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}

		resp, err := o.endpoint.Complete(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		o.logger.Warn("loop.model.retry", "attempt", attempt+1, "error", err.Error())

		if ctx.Err() != nil {
			break
		}
	}

	return model.Response{}, &EndpointError{Attempts: o.opts.MaxRetries + 1, Err: lastErr}
}

// History returns the durable snapshot for a session.
func (o *Orchestrator) History(sessionID string) ([]chat.Message, error) {
	sess, err := o.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Snapshot(), nil
}

// ClearHistory resets a session's durable history.
func (o *Orchestrator) ClearHistory(sessionID string) error {
	sess, err := o.sessions.Get(sessionID)
	if err != nil {
		return err
	}
	sess.Clear()
	return nil
}
