package record

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/asaidimu/go-events"
	"github.com/google/uuid"
)

// EventType identifies a lifecycle event emitted by a repository.
type EventType string

const (
	EventCreateSuccess EventType = "record.create.success"
	EventCreateFailed  EventType = "record.create.failed"
	EventSaveSuccess   EventType = "record.save.success"
	EventSaveFailed    EventType = "record.save.failed"
	EventRemoveSuccess EventType = "record.remove.success"
	EventRemoveFailed  EventType = "record.remove.failed"
)

// Event describes one lifecycle operation outcome. Error carries the
// failure message for the failed event types and is empty otherwise.
type Event struct {
	Type      EventType
	Table     string
	Error     string
	Timestamp time.Time
}

// EventCallback handles a lifecycle event. Emission is observational:
// callback results never alter the outcome of the operation that emitted.
type EventCallback func(ctx context.Context, event Event) error

// eventBus wraps a typed event bus with uuid-keyed subscriptions, so
// callers can unsubscribe without holding on to closures.
type eventBus struct {
	bus           *events.TypedEventBus[Event]
	mu            sync.Mutex
	subscriptions map[string]func()
}

func newEventBus() (*eventBus, error) {
	bus, err := events.NewTypedEventBus[Event](events.DefaultConfig())
	if err != nil {
		return nil, fmt.Errorf("could not initialize event bus: %w", err)
	}
	return &eventBus{
		bus:           bus,
		subscriptions: map[string]func(){},
	}, nil
}

func (b *eventBus) emit(eventType EventType, table string, opErr error) {
	event := Event{
		Type:      eventType,
		Table:     table,
		Timestamp: time.Now(),
	}
	if opErr != nil {
		event.Error = opErr.Error()
	}
	b.bus.Emit(string(eventType), event)
}

func (b *eventBus) subscribe(eventType EventType, callback EventCallback) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	unsubscribe := b.bus.Subscribe(string(eventType), callback)
	id := uuid.New().String()
	b.subscriptions[id] = unsubscribe
	return id
}

func (b *eventBus) unsubscribe(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if unsubscribe, ok := b.subscriptions[id]; ok {
		unsubscribe()
		delete(b.subscriptions, id)
	}
}
