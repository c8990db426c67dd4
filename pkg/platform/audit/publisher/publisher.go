// Package publisher delivers audit events to a store and optional sinks.
package publisher

import (
	"context"
	"log/slog"
	"sync"

	id "shiftwise/pkg/domain"
	audit "shiftwise/pkg/platform/audit"
)

// Sink is an additional delivery target beyond the primary store, e.g. a
// Kafka topic feeding the reporting pipeline.
type Sink interface {
	Deliver(ctx context.Context, event audit.Event) error
	Close() error
}

// Publisher writes audit events to a store, either synchronously or through
// an internal buffer. Synchronous mode is the default so tests and small
// deployments see events immediately.
type Publisher struct {
	store  audit.Store
	sink   Sink
	logger *slog.Logger

	inbox     chan audit.Event
	wg        sync.WaitGroup
	closeOnce sync.Once
}

type Option func(*Publisher)

// WithAsyncBuffer switches the publisher to buffered delivery. Events are
// dropped with a warning when the buffer is full rather than blocking the
// request path.
func WithAsyncBuffer(size int) Option {
	return func(p *Publisher) {
		p.inbox = make(chan audit.Event, size)
	}
}

// WithSink adds a secondary delivery target. Sink failures are logged, never
// surfaced to the emitter: audit fan-out must not fail business operations.
func WithSink(sink Sink) Option {
	return func(p *Publisher) {
		p.sink = sink
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

func NewPublisher(store audit.Store, opts ...Option) *Publisher {
	p := &Publisher{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	if p.inbox != nil {
		p.wg.Add(1)
		go p.drain()
	}
	return p
}

// Emit delivers an event. In async mode the event is queued; delivery errors
// are reported through the logger instead of the return value.
func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	if p.inbox != nil {
		select {
		case p.inbox <- event:
		default:
			p.logger.Warn("audit buffer full, dropping event", "action", event.Action)
		}
		return nil
	}
	return p.deliver(ctx, event)
}

// List returns the stored events for a user. Convenience passthrough used by
// tests and the admin surface.
func (p *Publisher) List(ctx context.Context, userID id.UserID) ([]audit.Event, error) {
	return p.store.ListByUser(ctx, userID)
}

// Close flushes the async buffer and closes any sink.
func (p *Publisher) Close() error {
	p.closeOnce.Do(func() {
		if p.inbox != nil {
			close(p.inbox)
			p.wg.Wait()
		}
	})
	if p.sink != nil {
		return p.sink.Close()
	}
	return nil
}

func (p *Publisher) drain() {
	defer p.wg.Done()
	for event := range p.inbox {
		if err := p.deliver(context.Background(), event); err != nil {
			p.logger.Warn("audit delivery failed", "action", event.Action, "error", err)
		}
	}
}

func (p *Publisher) deliver(ctx context.Context, event audit.Event) error {
	if err := p.store.Append(ctx, event); err != nil {
		return err
	}
	if p.sink != nil {
		if err := p.sink.Deliver(ctx, event); err != nil {
			p.logger.Warn("audit sink delivery failed", "action", event.Action, "error", err)
		}
	}
	return nil
}
