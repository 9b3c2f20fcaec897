// Package history writes a log line for every search outcome seen on the bus.
package history

import (
	"github.com/rs/zerolog"

	"hnsearch/internal/eventbus"
)

// Subscribe logs search lifecycle events to logger. The returned function
// removes the subscriptions.
func Subscribe(bus eventbus.EventBus, logger zerolog.Logger) func() {
	unsubs := []func(){
		bus.Subscribe(eventbus.EventSearchRequested, func(e eventbus.DomainEvent) {
			if ev, ok := e.(eventbus.SearchRequestedEvent); ok {
				logger.Info().Uint64("generation", ev.Generation).Str("url", ev.URL).Msg("Search requested")
			}
		}),
		bus.Subscribe(eventbus.EventSearchSucceeded, func(e eventbus.DomainEvent) {
			if ev, ok := e.(eventbus.SearchSucceededEvent); ok {
				logger.Info().
					Uint64("generation", ev.Generation).
					Str("url", ev.URL).
					Int("hits", ev.Hits).
					Dur("duration", ev.Duration).
					Msg("Search succeeded")
			}
		}),
		bus.Subscribe(eventbus.EventSearchFailed, func(e eventbus.DomainEvent) {
			if ev, ok := e.(eventbus.SearchFailedEvent); ok {
				logger.Warn().
					Uint64("generation", ev.Generation).
					Str("url", ev.URL).
					Err(ev.Err).
					Dur("duration", ev.Duration).
					Msg("Search failed")
			}
		}),
		bus.Subscribe(eventbus.EventStaleResultDiscarded, func(e eventbus.DomainEvent) {
			if ev, ok := e.(eventbus.StaleResultDiscardedEvent); ok {
				logger.Debug().
					Uint64("generation", ev.Generation).
					Uint64("latest", ev.Latest).
					Str("url", ev.URL).
					Msg("Stale result discarded")
			}
		}),
		bus.Subscribe(eventbus.EventPageChanged, func(e eventbus.DomainEvent) {
			if ev, ok := e.(eventbus.PageChangedEvent); ok {
				logger.Debug().Int("from", ev.From).Int("to", ev.To).Msg("Page changed")
			}
		}),
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}
