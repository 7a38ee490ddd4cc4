package producerpal

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/adamjmurray/producer-pal/internal/duplicate"
	"github.com/adamjmurray/producer-pal/pkg/domain"
	"github.com/adamjmurray/producer-pal/pkg/live"
	"github.com/adamjmurray/producer-pal/pkg/ports"
)

// Engine is the high-level entry point for the Producer Pal library.
// It wraps the internal duplication engine and provides a simplified API
// for consumers embedding it in their own hosts.
type Engine struct {
	engine *duplicate.Engine
	client live.Client
	hooks  domain.LifecycleHooks
	logger *slog.Logger
	opts   []duplicate.Option
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithLengthener injects the collaborator used when a clip is placed at
// a length greater than its source.
func WithLengthener(l ports.ClipLengthener) Option {
	return func(e *Engine) {
		e.opts = append(e.opts, duplicate.WithLengthener(l))
	}
}

// WithHoldingGap sets the distance, in beats, between the end of the
// arrangement and the holding area used to stage truncated clips.
func WithHoldingGap(beats float64) Option {
	return func(e *Engine) {
		e.opts = append(e.opts, duplicate.WithHoldingGap(beats))
	}
}

// WithControlDeviceName overrides the display name used to recognize
// this layer's own hosting device on duplicated tracks.
func WithControlDeviceName(name string) Option {
	return func(e *Engine) {
		e.opts = append(e.opts, duplicate.WithControlDeviceName(name))
	}
}

// New initializes a new Producer Pal Engine over a live object model
// client. The client is typically an OSC or Max for Live bridge in
// production and an in-memory set in tests and demos.
func New(client live.Client, opts ...Option) (*Engine, error) {
	if client == nil {
		return nil, fmt.Errorf("a live client is required")
	}

	eng := &Engine{client: client}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	dupOpts := append([]duplicate.Option{
		duplicate.WithLogger(eng.logger),
		duplicate.WithLifecycleHooks(eng.hooks),
	}, eng.opts...)

	eng.engine = duplicate.New(client, dupOpts...)
	return eng, nil
}

// Duplicate performs one duplication operation and returns one entry
// per created copy.
func (e *Engine) Duplicate(ctx context.Context, req domain.DuplicateRequest) ([]domain.Duplicated, error) {
	return e.engine.Duplicate(ctx, req)
}

// Locators lists the arrangement cue points with their synthetic ids,
// ordered by time. Ids are assigned fresh on every call.
func (e *Engine) Locators() ([]domain.Locator, error) {
	return e.engine.Locators()
}

// DeleteLocators removes every cue point whose name matches exactly and
// returns how many were removed.
func (e *Engine) DeleteLocators(ctx context.Context, name string) (int, error) {
	return e.engine.DeleteLocators(ctx, name)
}

// Client returns the underlying live object model client.
func (e *Engine) Client() live.Client {
	return e.client
}
