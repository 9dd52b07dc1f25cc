package invalidation

import (
	"context"

	"github.com/jonwraymond/plmcache/cache"
	"github.com/jonwraymond/plmcache/observe"
)

// Event is one write-operation notification. Delivery is at-least-once and
// unordered; duplicates are harmless because invalidation is idempotent.
type Event struct {
	// Operation is the dotted command name, e.g. "plm.pipeline.update".
	Operation string

	// Parameters feed {name} template expansion.
	Parameters map[string]string

	// Scope identifies whose cache the operation touched.
	Scope cache.Context
}

// Consumer drains an operation-event stream into the engine.
type Consumer struct {
	engine *Engine
	logger observe.Logger
}

// NewConsumer creates a Consumer over the given engine.
func NewConsumer(engine *Engine, logger observe.Logger) *Consumer {
	if logger == nil {
		logger = observe.NewNoopLogger()
	}
	return &Consumer{engine: engine, logger: logger}
}

// Run processes events until the channel closes or the context is
// cancelled. It returns ctx.Err() on cancellation, nil on channel close.
func (c *Consumer) Run(ctx context.Context, events <-chan Event) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-events:
			if !ok {
				return nil
			}

			result := c.engine.Process(ctx, event.Scope, event.Operation, event.Parameters)
			if len(result.Errors) > 0 {
				c.logger.Warn(ctx, "invalidation completed with errors",
					observe.Field{Key: "operation", Value: event.Operation},
					observe.Field{Key: "errors", Value: len(result.Errors)},
				)
			}
		}
	}
}
