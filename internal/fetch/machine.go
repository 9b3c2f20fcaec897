package fetch

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"hnsearch/internal/domain"
	"hnsearch/internal/eventbus"
	"hnsearch/internal/logging"
	"hnsearch/internal/search"
)

// ResultMsg carries the outcome of one fetch back into the event loop
type ResultMsg struct {
	Generation uint64
	Target     string
	Payload    domain.ResultSet
	Err        error
	Duration   time.Duration
}

// Option configures a Machine
type Option func(*Machine)

// WithDiscardStale controls the overlapping-request policy. When true (the
// default) only the latest request's result is applied. When false every
// result is applied in resolution order, so the last to resolve wins.
func WithDiscardStale(discard bool) Option {
	return func(m *Machine) { m.discardStale = discard }
}

// WithContext sets the base context passed to every fetch
func WithContext(ctx context.Context) Option {
	return func(m *Machine) { m.ctx = ctx }
}

// WithBus publishes request lifecycle events on bus
func WithBus(bus eventbus.EventBus) Option {
	return func(m *Machine) { m.bus = bus }
}

// WithInitialData replaces the empty initial result set
func WithInitialData(data domain.ResultSet) Option {
	return func(m *Machine) { m.state = NewState(data) }
}

// Machine is the fetch state machine for a single request target
type Machine struct {
	fetcher      search.Fetcher
	ctx          context.Context
	bus          eventbus.EventBus
	logger       zerolog.Logger
	state        State
	target       string
	generation   uint64
	discardStale bool
}

// New creates an idle machine pointing at initialTarget. No request is made
// until Start or SetTarget is called.
func New(fetcher search.Fetcher, initialTarget string, opts ...Option) *Machine {
	m := &Machine{
		fetcher:      fetcher,
		ctx:          context.Background(),
		logger:       logging.NewLogger("fetch"),
		state:        NewState(domain.EmptyResultSet()),
		target:       initialTarget,
		discardStale: true,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// State returns a copy of the current fetch state
func (m *Machine) State() State {
	return m.state
}

// Target returns the current request target
func (m *Machine) Target() string {
	return m.target
}

// Generation returns the number of requests issued so far
func (m *Machine) Generation() uint64 {
	return m.generation
}

// DiscardsStale reports the overlapping-request policy
func (m *Machine) DiscardsStale() bool {
	return m.discardStale
}

// Start issues the initial request for the current target
func (m *Machine) Start() tea.Cmd {
	return m.SetTarget(m.target)
}

// SetTarget makes target the current request target, enters loading
// synchronously and returns the command performing the fetch. Repeating the
// same target still starts a new, independent fetch cycle.
func (m *Machine) SetTarget(target string) tea.Cmd {
	m.generation++
	gen := m.generation
	m.target = target

	m.dispatch(RequestStart{Generation: gen, Target: target})
	m.publish(domain.SearchRequestedEvent{Generation: gen, URL: target})

	fetcher := m.fetcher
	ctx := m.ctx
	return func() tea.Msg {
		start := time.Now()
		payload, err := fetcher.Fetch(ctx, target)
		return ResultMsg{
			Generation: gen,
			Target:     target,
			Payload:    payload,
			Err:        err,
			Duration:   time.Since(start),
		}
	}
}

// Resolve applies a fetch outcome. It reports false when the result belongs
// to a superseded request and was discarded. The returned error is non-nil
// only if the transition itself could not be applied; fetch failures are
// absorbed into State.IsError.
func (m *Machine) Resolve(msg ResultMsg) (bool, error) {
	if m.discardStale && msg.Generation != m.generation {
		m.logger.Debug().
			Uint64("generation", msg.Generation).
			Uint64("latest", m.generation).
			Str("url", msg.Target).
			Msg("Discarding stale result")
		m.publish(domain.StaleResultDiscardedEvent{
			Generation: msg.Generation,
			Latest:     m.generation,
			URL:        msg.Target,
		})
		return false, nil
	}

	if msg.Err != nil {
		if err := m.dispatch(RequestFailure{Generation: msg.Generation, Err: msg.Err}); err != nil {
			return false, err
		}
		m.logger.Warn().Err(msg.Err).Str("url", msg.Target).Msg("Search failed")
		m.publish(domain.SearchFailedEvent{
			Generation: msg.Generation,
			URL:        msg.Target,
			Err:        msg.Err,
			Duration:   msg.Duration,
		})
		return true, nil
	}

	if err := m.dispatch(RequestSuccess{Generation: msg.Generation, Payload: msg.Payload}); err != nil {
		return false, err
	}
	m.publish(domain.SearchSucceededEvent{
		Generation: msg.Generation,
		URL:        msg.Target,
		Hits:       len(msg.Payload.Hits),
		Duration:   msg.Duration,
	})
	return true, nil
}

func (m *Machine) dispatch(a Action) error {
	next, err := Reduce(m.state, a)
	if err != nil {
		m.logger.Error().Err(err).Msg("Rejected transition")
		return err
	}
	m.logger.Debug().
		Str("action", string(a.Kind())).
		Stringer("from", m.state.Status).
		Stringer("to", next.Status).
		Msg("Transition")
	m.state = next
	return nil
}

func (m *Machine) publish(event domain.DomainEvent) {
	if m.bus != nil {
		m.bus.Publish(event)
	}
}
