package search

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hnsearch/internal/domain"
)

// fakeAPI is an httptest-backed search endpoint
type fakeAPI struct {
	server   *httptest.Server
	requests atomic.Int32
	lastUA   atomic.Value
}

func newFakeAPI(t *testing.T, handler http.HandlerFunc) *fakeAPI {
	t.Helper()
	api := &fakeAPI{}
	api.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		api.requests.Add(1)
		api.lastUA.Store(r.Header.Get("User-Agent"))
		handler(w, r)
	}))
	t.Cleanup(api.server.Close)
	return api
}

func TestClientFetchDecodesHits(t *testing.T) {
	api := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "golang", r.URL.Query().Get("query"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"hits":[{"objectID":"1","title":"A","url":"http://x","points":10}],"nbHits":1,"page":0,"nbPages":1,"hitsPerPage":20,"query":"golang"}`))
	})

	client := NewClient(Config{Timeout: time.Second, UserAgent: "hnsearch-test"})
	rs, err := client.Fetch(context.Background(), BuildURL(api.server.URL, "golang"))
	require.NoError(t, err)

	assert.Equal(t, []domain.Record{{ObjectID: "1", Title: "A", URL: "http://x"}}, rs.Hits)
	assert.Equal(t, 1, rs.NbHits)
	assert.Equal(t, "golang", rs.Query)
	assert.Equal(t, "hnsearch-test", api.lastUA.Load())
}

func TestClientFetchMissingHitsIsEmpty(t *testing.T) {
	api := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	rs, err := NewClient(Config{}).Fetch(context.Background(), api.server.URL)
	require.NoError(t, err)
	assert.NotNil(t, rs.Hits)
	assert.Empty(t, rs.Hits)
}

func TestClientFetchFailuresCollapseToFetchFailed(t *testing.T) {
	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantStatus int
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name: "not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "malformed payload",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"hits": [`))
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newFakeAPI(t, tt.handler)
			_, err := NewClient(Config{}).Fetch(context.Background(), api.server.URL)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrFetchFailed))

			var fe *FetchError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.wantStatus, fe.StatusCode)
			assert.Equal(t, api.server.URL, fe.URL)
		})
	}
}

func TestClientFetchNetworkError(t *testing.T) {
	api := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {})
	target := api.server.URL
	api.server.Close()

	_, err := NewClient(Config{}).Fetch(context.Background(), target)
	require.ErrorIs(t, err, ErrFetchFailed)
}

func TestClientFetchTimeout(t *testing.T) {
	api := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})

	_, err := NewClient(Config{Timeout: 50 * time.Millisecond}).Fetch(context.Background(), api.server.URL)
	require.ErrorIs(t, err, ErrFetchFailed)
}

func TestClientFetchInvalidURL(t *testing.T) {
	_, err := NewClient(Config{}).Fetch(context.Background(), "://bad url")
	require.ErrorIs(t, err, ErrFetchFailed)
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		query    string
		want     string
	}{
		{"default", DefaultEndpoint, DefaultQuery, "https://hn.algolia.com/api/v1/search?query=MIT"},
		{"escapes spaces", "http://host/search", "go lang", "http://host/search?query=go+lang"},
		{"escapes specials", "http://host/search", "a&b=c", "http://host/search?query=a%26b%3Dc"},
		{"keeps existing params", "http://host/search?tags=story", "x", "http://host/search?query=x&tags=story"},
		{"replaces query param", "http://host/search?query=old", "new", "http://host/search?query=new"},
		{"empty query", "http://host/search", "", "http://host/search?query="},
		{"relative endpoint", "/search", "x", "/search?query=x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildURL(tt.endpoint, tt.query))
		})
	}
}
