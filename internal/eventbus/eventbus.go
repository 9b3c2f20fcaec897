package eventbus

import (
	"runtime/debug"
	"sync"

	"github.com/rs/zerolog"

	"hnsearch/internal/domain"
	"hnsearch/internal/logging"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventSearchRequested      = domain.EventSearchRequested
	EventSearchSucceeded      = domain.EventSearchSucceeded
	EventSearchFailed         = domain.EventSearchFailed
	EventStaleResultDiscarded = domain.EventStaleResultDiscarded
	EventPageChanged          = domain.EventPageChanged
	EventConfigLoaded         = domain.EventConfigLoaded
)

// Re-export domain event types
type SearchRequestedEvent = domain.SearchRequestedEvent
type SearchSucceededEvent = domain.SearchSucceededEvent
type SearchFailedEvent = domain.SearchFailedEvent
type StaleResultDiscardedEvent = domain.StaleResultDiscardedEvent
type PageChangedEvent = domain.PageChangedEvent
type ConfigLoadedEvent = domain.ConfigLoadedEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
	Close()
}

type subscription struct {
	id      uint64
	handler EventHandler
}

// bus is the concrete implementation of EventBus
type bus struct {
	mu        sync.RWMutex
	handlers  map[EventType][]subscription
	nextID    uint64
	eventChan chan DomainEvent
	wg        sync.WaitGroup
	quit      chan struct{}
	closeOnce sync.Once
	logger    zerolog.Logger
}

// New creates a new event bus
func New() EventBus {
	b := &bus{
		handlers:  make(map[EventType][]subscription),
		eventChan: make(chan DomainEvent, 1000),
		quit:      make(chan struct{}),
		logger:    logging.NewLogger("eventbus"),
	}

	b.wg.Add(1)
	go b.dispatch()

	return b
}

// Publish publishes an event to all subscribers. It never blocks; when the
// queue is full the event is dropped.
func (b *bus) Publish(event DomainEvent) {
	b.logger.Debug().Str("event", string(event.Type())).Msg("Publishing event")

	select {
	case <-b.quit:
		return
	default:
	}

	select {
	case b.eventChan <- event:
	default:
		b.logger.Warn().Str("event", string(event.Type())).Msg("Event bus channel full, dropping event")
	}
}

// Subscribe subscribes to events of a specific type.
// Returns an unsubscribe function.
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.handlers[eventType]
		for i, s := range subs {
			if s.id == id {
				b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
	}
}

// Close stops the dispatcher. Queued events that were not dispatched yet are
// discarded. It waits for the running handler, so handlers must not call it.
func (b *bus) Close() {
	b.closeOnce.Do(func() {
		close(b.quit)
		b.wg.Wait()
	})
}

func (b *bus) call(h EventHandler, event DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error().
				Str("event", string(event.Type())).
				Interface("panic", r).
				Str("stack", string(debug.Stack())).
				Msg("Event handler panic")
		}
	}()
	h(event)
}

// dispatch handles event distribution to subscribers
func (b *bus) dispatch() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.eventChan:
			b.mu.RLock()
			subs := make([]subscription, len(b.handlers[event.Type()]))
			copy(subs, b.handlers[event.Type()])
			b.mu.RUnlock()

			// Handlers run one at a time on this goroutine, so every
			// subscriber sees events in publish order
			for _, s := range subs {
				b.call(s.handler, event)
			}

		case <-b.quit:
			for {
				select {
				case <-b.eventChan:
				default:
					return
				}
			}
		}
	}
}
