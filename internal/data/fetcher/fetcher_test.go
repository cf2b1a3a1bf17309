package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	nodesBody = `{
		"node1": {"provisioned": [
			{"chute": {"chute_id": "A", "name": "Alpha"}, "gpu": "H100"},
			{"chute": {"chute_id": "A", "name": "Alpha"}, "gpu": "H100"}
		], "seed": 42},
		"node2": {"provisioned": []}
	}`
	statsBody = `{"past_day": {"compute_units": [{"chute_id": "A", "compute_units": 480}]}, "all_time": {}}`
)

type routes map[string]func(w http.ResponseWriter, r *http.Request)

func newServer(t *testing.T, handlers routes) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := handlers[r.URL.Path]; ok {
			h(w, r)
			return
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(server.Close)
	return server
}

func body(s string) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(s))
	}
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		want    string
		wantErr bool
	}{
		{name: "default", baseURL: "", want: DefaultBaseURL},
		{name: "trailing slash trimmed", baseURL: "https://example.com/", want: "https://example.com"},
		{name: "unsupported scheme", baseURL: "ftp://example.com", wantErr: true},
		{name: "unparseable", baseURL: "://bad", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.baseURL, 0)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, client.BaseURL())
		})
	}
}

func TestClient_Fetch(t *testing.T) {
	var gotQueries []string
	server := newServer(t, routes{
		"/nodes/": func(w http.ResponseWriter, r *http.Request) {
			gotQueries = append(gotQueries, r.URL.RawQuery)
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Accept"))
			body(nodesBody)(w, r)
		},
		"/miner/stats": func(w http.ResponseWriter, r *http.Request) {
			gotQueries = append(gotQueries, r.URL.RawQuery)
			body(statsBody)(w, r)
		},
	})

	client, err := NewClient(server.URL, 5*time.Second)
	require.NoError(t, err)

	snapshot, err := client.Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"detailed=true", "per_chute=true"}, gotQueries)
	require.Len(t, snapshot.Nodes, 2)
	require.Len(t, snapshot.Nodes["node1"].Provisioned, 2)
	item := snapshot.Nodes["node1"].Provisioned[0]
	assert.Equal(t, "A", item.Chute.ChuteID)
	assert.Equal(t, "Alpha", item.Chute.Name)
	assert.Equal(t, "H100", item.GPU)

	units := snapshot.ComputeUnits()
	require.Len(t, units, 1)
	assert.Equal(t, "A", units[0].ChuteID)
	assert.Equal(t, 480.0, units[0].ComputeUnits)
}

func TestClient_FetchFailures(t *testing.T) {
	tests := []struct {
		name      string
		handlers  routes
		targetErr error
	}{
		{
			name: "node details server error",
			handlers: routes{
				"/nodes/":      func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusInternalServerError) },
				"/miner/stats": body(statsBody),
			},
			targetErr: ErrUnexpectedStatus,
		},
		{
			name: "mining stats not found",
			handlers: routes{
				"/nodes/": body(nodesBody),
			},
			targetErr: ErrUnexpectedStatus,
		},
		{
			name: "node details not json",
			handlers: routes{
				"/nodes/":      body("<html>maintenance</html>"),
				"/miner/stats": body(statsBody),
			},
			targetErr: ErrMalformedResponse,
		},
		{
			name: "node details wrong shape",
			handlers: routes{
				"/nodes/":      body(`[1, 2, 3]`),
				"/miner/stats": body(statsBody),
			},
			targetErr: ErrMalformedResponse,
		},
		{
			name: "node details null",
			handlers: routes{
				"/nodes/":      body(`null`),
				"/miner/stats": body(statsBody),
			},
			targetErr: ErrMalformedResponse,
		},
		{
			name: "provisioned item without chute",
			handlers: routes{
				"/nodes/":      body(`{"node1": {"provisioned": [{"gpu": "H100"}]}}`),
				"/miner/stats": body(statsBody),
			},
			targetErr: ErrMalformedResponse,
		},
		{
			name: "mining stats missing past_day",
			handlers: routes{
				"/nodes/":      body(nodesBody),
				"/miner/stats": body(`{"all_time": {}}`),
			},
			targetErr: ErrMalformedResponse,
		},
		{
			name: "compute units not numeric",
			handlers: routes{
				"/nodes/":      body(nodesBody),
				"/miner/stats": body(`{"past_day": {"compute_units": [{"chute_id": "A", "compute_units": "lots"}]}}`),
			},
			targetErr: ErrMalformedResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newServer(t, tt.handlers)
			client, err := NewClient(server.URL, 5*time.Second)
			require.NoError(t, err)

			snapshot, err := client.Fetch(context.Background())
			assert.Nil(t, snapshot)
			assert.ErrorIs(t, err, tt.targetErr)
		})
	}
}

func TestClient_FetchStopsAfterFirstFailure(t *testing.T) {
	statsCalled := false
	server := newServer(t, routes{
		"/nodes/": func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusBadGateway) },
		"/miner/stats": func(w http.ResponseWriter, r *http.Request) {
			statsCalled = true
			body(statsBody)(w, r)
		},
	})

	client, err := NewClient(server.URL, 0)
	require.NoError(t, err)

	_, err = client.Fetch(context.Background())
	require.Error(t, err)
	assert.False(t, statsCalled)
}

func TestClient_FetchConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client, err := NewClient(url, time.Second)
	require.NoError(t, err)

	snapshot, err := client.Fetch(context.Background())
	assert.Nil(t, snapshot)
	assert.Error(t, err)
}

func TestClient_FetchCanceledContext(t *testing.T) {
	server := newServer(t, routes{"/nodes/": body(nodesBody), "/miner/stats": body(statsBody)})
	client, err := NewClient(server.URL, 0)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = client.Fetch(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
