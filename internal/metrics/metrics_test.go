package metrics

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hnsearch/internal/eventbus"
)

func TestRecorderCountsBusEvents(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()

	r := NewRecorder()
	unsubscribe := r.Subscribe(bus)
	defer unsubscribe()

	bus.Publish(eventbus.SearchRequestedEvent{Generation: 1})
	bus.Publish(eventbus.SearchRequestedEvent{Generation: 2})
	bus.Publish(eventbus.StaleResultDiscardedEvent{Generation: 1, Latest: 2})
	bus.Publish(eventbus.SearchSucceededEvent{Generation: 2, Hits: 17, Duration: 120 * time.Millisecond})
	bus.Publish(eventbus.SearchFailedEvent{Generation: 3, Err: errors.New("boom"), Duration: time.Second})
	bus.Publish(eventbus.PageChangedEvent{From: 1, To: 2})

	require.Eventually(t, func() bool {
		return testutil.ToFloat64(r.SearchRequests.WithLabelValues(OutcomeStarted)) == 2 &&
			testutil.ToFloat64(r.SearchRequests.WithLabelValues(OutcomeSuccess)) == 1 &&
			testutil.ToFloat64(r.SearchRequests.WithLabelValues(OutcomeFailure)) == 1 &&
			testutil.ToFloat64(r.SearchRequests.WithLabelValues(OutcomeDiscarded)) == 1 &&
			testutil.ToFloat64(r.StaleDiscarded) == 1 &&
			testutil.ToFloat64(r.PageChanges) == 1 &&
			testutil.ToFloat64(r.ResultSetLength) == 17
	}, time.Second, 10*time.Millisecond)

	assert.Equal(t, 1, testutil.CollectAndCount(r.SearchDuration))
}

func TestHandlerExposesMetrics(t *testing.T) {
	r := NewRecorder()
	r.PageChanges.Inc()

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "hnsearch_page_changes_total 1")

	n, err := testutil.GatherAndCount(r.Registry(), "hnsearch_page_changes_total", "hnsearch_result_set_hits")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestServerRunReturnsBindError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	srv := NewServer(ln.Addr().String(), NewRecorder())

	done := make(chan error, 1)
	go func() { done <- srv.Run(context.Background()) }()

	select {
	case err := <-done:
		require.Error(t, err)
		assert.Contains(t, err.Error(), "metrics server")
	case <-time.After(3 * time.Second):
		t.Fatal("server kept running on an address in use")
	}
}

func TestServerRunStopsOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	r := NewRecorder()
	srv := NewServer(addr, r)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/metrics")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return resp.StatusCode == http.StatusOK && len(body) > 0
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}
