// Package recommender provides a high-level façade over the hop loop and its
// collaborators (tool registry, dispatcher, session store, model endpoint)
// for building a movie recommendation chatbot with multi-hop tool calling and
// cross-turn conversational memory. Most applications interact with this
// package by:
//  1. Loading a config.Config (API credential, provider, hop limits)
//  2. Creating a Recommender via New() (optionally overriding collaborators)
//  3. Calling Chat() once per user turn
package recommender

import (
	"context"
	"fmt"
	"time"

	"github.com/ManishPrajapat001/movie-recommender-chatbot/chat"
	"github.com/ManishPrajapat001/movie-recommender-chatbot/config"
	"github.com/ManishPrajapat001/movie-recommender-chatbot/logging"
	"github.com/ManishPrajapat001/movie-recommender-chatbot/model"
	"github.com/ManishPrajapat001/movie-recommender-chatbot/model/anthropic"
	"github.com/ManishPrajapat001/movie-recommender-chatbot/model/openai"
	"github.com/ManishPrajapat001/movie-recommender-chatbot/movies"
	"github.com/ManishPrajapat001/movie-recommender-chatbot/orchestrator"
	"github.com/ManishPrajapat001/movie-recommender-chatbot/session"
	"github.com/ManishPrajapat001/movie-recommender-chatbot/tool"
)

// DefaultSystemPrompt seeds every turn with the recommender role and the
// intended tool-chaining strategy.
const DefaultSystemPrompt = `You are a helpful AI assistant with access to tools.
Ask user it's user_id if user doesn't mention.
You are movie recommender bot which recommends movies based on the past reviews of movie.
You can get past reviews of movies which were watched by user using the fetch_past_reviews tool.
You make a list of movie names which were liked by user based on the past reviews of movies of user.
Than You extract the genre of movie which were liked by user using fetch_movies_genre.
later you fetch the movies of same genre which were liked by user using movies_with_genre.
You recommend one movie which is more comman with the liked movies
Keep responses concise and engaging.`

// Options allows overriding the default collaborators, mainly for tests.
type Options struct {
	Endpoint     model.Endpoint
	Catalog      movies.Catalog
	Store        session.Store
	Logger       logging.Logger
	SystemPrompt string
}

// Recommender aggregates the wired components behind a small API.
type Recommender struct {
	orch   *orchestrator.Orchestrator
	logger logging.Logger
}

// New wires catalog, tools, registry, dispatcher, endpoint and session store
// into an orchestrator. Any unset collaborator gets an in-memory or
// provider-backed default derived from cfg.
func New(cfg config.Config, optFns ...func(o *Options)) (*Recommender, error) {
	opts := Options{
		Catalog:      movies.NewInMemoryCatalog(),
		Store:        session.NewInMemoryStore(),
		Logger:       logging.NoOpLogger{},
		SystemPrompt: DefaultSystemPrompt,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Endpoint == nil {
		endpoint, err := newEndpoint(cfg)
		if err != nil {
			return nil, err
		}
		opts.Endpoint = endpoint
	}

	registry := tool.NewRegistry()
	for _, t := range movies.Tools(opts.Catalog) {
		if err := registry.Register(t); err != nil {
			return nil, fmt.Errorf("register tool: %w", err)
		}
	}

	dispatcher := tool.NewDispatcher(registry, func(o *tool.DispatcherOptions) {
		o.Logger = opts.Logger
	})

	orch := orchestrator.New(opts.Endpoint, registry, dispatcher, opts.Store, func(o *orchestrator.Options) {
		if cfg.MaxHops > 0 {
			o.MaxHops = cfg.MaxHops
		}
		if cfg.MaxRetries >= 0 {
			o.MaxRetries = cfg.MaxRetries
		}
		if cfg.RetryBackoffMS > 0 {
			o.RetryBaseDelay = time.Duration(cfg.RetryBackoffMS) * time.Millisecond
		}
		o.SystemPrompt = opts.SystemPrompt
		o.Logger = opts.Logger
	})

	return &Recommender{orch: orch, logger: opts.Logger}, nil
}

// newEndpoint selects the provider adapter from config.
func newEndpoint(cfg config.Config) (model.Endpoint, error) {
	switch cfg.Provider {
	case "openai":
		return openai.NewEndpoint(func(o *openai.Options) {
			o.APIKey = cfg.APIKey
			if cfg.Model != "" {
				o.Model = cfg.Model
			}
		}), nil
	case "anthropic":
		return anthropic.NewEndpoint(func(o *anthropic.Options) {
			o.APIKey = cfg.APIKey
			if cfg.Model != "" {
				o.Model = cfg.Model
			}
		}), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}

// Chat runs one conversational turn for the session and returns the terminal
// answer text.
func (r *Recommender) Chat(ctx context.Context, sessionID, input string) (string, error) {
	return r.orch.Respond(ctx, sessionID, input)
}

// History returns the durable conversation snapshot for a session.
func (r *Recommender) History(sessionID string) ([]chat.Message, error) {
	return r.orch.History(sessionID)
}

// ClearHistory resets a session's durable history.
func (r *Recommender) ClearHistory(sessionID string) error {
	return r.orch.ClearHistory(sessionID)
}
