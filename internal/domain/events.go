package domain

import "time"

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSearchRequested      EventType = "SearchRequested"
	EventSearchSucceeded      EventType = "SearchSucceeded"
	EventSearchFailed         EventType = "SearchFailed"
	EventStaleResultDiscarded EventType = "StaleResultDiscarded"
	EventPageChanged          EventType = "PageChanged"
	EventConfigLoaded         EventType = "ConfigLoaded"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SearchRequestedEvent is emitted when a new request target is set
type SearchRequestedEvent struct {
	Generation uint64
	URL        string
}

func (e SearchRequestedEvent) Type() EventType { return EventSearchRequested }

// SearchSucceededEvent is emitted when a fetch result is applied to the state
type SearchSucceededEvent struct {
	Generation uint64
	URL        string
	Hits       int
	Duration   time.Duration
}

func (e SearchSucceededEvent) Type() EventType { return EventSearchSucceeded }

// SearchFailedEvent is emitted when a fetch failure is applied to the state
type SearchFailedEvent struct {
	Generation uint64
	URL        string
	Err        error
	Duration   time.Duration
}

func (e SearchFailedEvent) Type() EventType { return EventSearchFailed }

// StaleResultDiscardedEvent is emitted when a superseded request resolves
type StaleResultDiscardedEvent struct {
	Generation uint64
	Latest     uint64
	URL        string
}

func (e StaleResultDiscardedEvent) Type() EventType { return EventStaleResultDiscarded }

// PageChangedEvent is emitted when the page selection is overwritten
type PageChangedEvent struct {
	From int
	To   int
}

func (e PageChangedEvent) Type() EventType { return EventPageChanged }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Endpoint     string
	DefaultQuery string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }
