// Package metrics records search lifecycle events as Prometheus metrics and
// optionally serves them over HTTP.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"hnsearch/internal/eventbus"
	"hnsearch/internal/logging"
)

// Outcome label values for SearchRequests
const (
	OutcomeStarted   = "started"
	OutcomeSuccess   = "success"
	OutcomeFailure   = "failure"
	OutcomeDiscarded = "discarded"
)

// Recorder owns the search metrics
type Recorder struct {
	registry *prometheus.Registry

	SearchRequests  *prometheus.CounterVec
	SearchDuration  prometheus.Histogram
	StaleDiscarded  prometheus.Counter
	PageChanges     prometheus.Counter
	ResultSetLength prometheus.Gauge
}

// NewRecorder registers the metrics on a private registry
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		SearchRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hnsearch_search_requests_total",
			Help: "Search requests by outcome",
		}, []string{"outcome"}),
		SearchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "hnsearch_search_duration_seconds",
			Help:    "Duration of applied search requests",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		}),
		StaleDiscarded: factory.NewCounter(prometheus.CounterOpts{
			Name: "hnsearch_stale_results_discarded_total",
			Help: "Results of superseded requests that were discarded",
		}),
		PageChanges: factory.NewCounter(prometheus.CounterOpts{
			Name: "hnsearch_page_changes_total",
			Help: "Page selections made by the user",
		}),
		ResultSetLength: factory.NewGauge(prometheus.GaugeOpts{
			Name: "hnsearch_result_set_hits",
			Help: "Number of hits in the most recently applied result set",
		}),
	}
}

// Registry returns the registry the metrics live in
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Subscribe hooks the recorder up to the event bus. The returned function
// removes all subscriptions.
func (r *Recorder) Subscribe(bus eventbus.EventBus) func() {
	unsubs := []func(){
		bus.Subscribe(eventbus.EventSearchRequested, func(eventbus.DomainEvent) {
			r.SearchRequests.WithLabelValues(OutcomeStarted).Inc()
		}),
		bus.Subscribe(eventbus.EventSearchSucceeded, func(e eventbus.DomainEvent) {
			ev, ok := e.(eventbus.SearchSucceededEvent)
			if !ok {
				return
			}
			r.SearchRequests.WithLabelValues(OutcomeSuccess).Inc()
			r.SearchDuration.Observe(ev.Duration.Seconds())
			r.ResultSetLength.Set(float64(ev.Hits))
		}),
		bus.Subscribe(eventbus.EventSearchFailed, func(e eventbus.DomainEvent) {
			ev, ok := e.(eventbus.SearchFailedEvent)
			if !ok {
				return
			}
			r.SearchRequests.WithLabelValues(OutcomeFailure).Inc()
			r.SearchDuration.Observe(ev.Duration.Seconds())
		}),
		bus.Subscribe(eventbus.EventStaleResultDiscarded, func(eventbus.DomainEvent) {
			r.SearchRequests.WithLabelValues(OutcomeDiscarded).Inc()
			r.StaleDiscarded.Inc()
		}),
		bus.Subscribe(eventbus.EventPageChanged, func(eventbus.DomainEvent) {
			r.PageChanges.Inc()
		}),
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}

// Handler returns the /metrics HTTP handler
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Server serves the recorder's metrics on addr until its context is done
type Server struct {
	srv    *http.Server
	logger zerolog.Logger
}

// NewServer creates a metrics server for addr
func NewServer(addr string, r *Recorder) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", r.Handler())
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logging.NewLogger("metrics"),
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.srv.Addr).Msg("Metrics server listening")
		errCh <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("metrics server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}
