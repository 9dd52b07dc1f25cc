package invalidation

import (
	"context"
	"errors"
	"testing"
)

func TestConsumer_DrainsEvents(t *testing.T) {
	e, c := newTestEngine(t)
	ctx := context.Background()
	scope := testScope()

	c.Put(ctx, scope, "pipelines:list", 1)
	c.Put(ctx, scope, "tasks:list", 2)

	events := make(chan Event, 2)
	events <- Event{
		Operation:  "plm.pipeline.update",
		Parameters: map[string]string{"pipeline_id": "p"},
		Scope:      scope,
	}
	events <- Event{
		Operation: "plm.task.create",
		Scope:     scope,
	}
	close(events)

	consumer := NewConsumer(e, nil)
	if err := consumer.Run(ctx, events); err != nil {
		t.Fatalf("Run returned %v on channel close, want nil", err)
	}

	if _, ok := c.Get(ctx, scope, "pipelines:list"); ok {
		t.Error("pipelines:list should be invalidated")
	}
	if _, ok := c.Get(ctx, scope, "tasks:list"); ok {
		t.Error("tasks:list should be invalidated")
	}
	if stats := e.Stats(); stats.EventsProcessed != 2 {
		t.Errorf("EventsProcessed = %d, want 2", stats.EventsProcessed)
	}
}

func TestConsumer_StopsOnCancel(t *testing.T) {
	e, _ := newTestEngine(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	events := make(chan Event) // never closed, never written
	consumer := NewConsumer(e, nil)

	if err := consumer.Run(ctx, events); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

// TestConsumer_DuplicateDelivery verifies at-least-once delivery is safe:
// replaying an event changes nothing.
func TestConsumer_DuplicateDelivery(t *testing.T) {
	e, c := newTestEngine(t)
	ctx := context.Background()
	scope := testScope()

	c.Put(ctx, scope, "pipelines:list", 1)

	event := Event{
		Operation:  "plm.pipeline.update",
		Parameters: map[string]string{"pipeline_id": "p"},
		Scope:      scope,
	}
	events := make(chan Event, 2)
	events <- event
	events <- event
	close(events)

	consumer := NewConsumer(e, nil)
	if err := consumer.Run(ctx, events); err != nil {
		t.Fatal(err)
	}

	if c.Size() != 0 {
		t.Errorf("size = %d, want 0", c.Size())
	}
	if stats := e.Stats(); stats.EntriesInvalidated != 1 {
		t.Errorf("EntriesInvalidated = %d, want 1", stats.EntriesInvalidated)
	}
}
