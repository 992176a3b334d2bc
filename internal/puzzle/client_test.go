package puzzle

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle-buddy/internal/store"
)

const payload = `{"id":1234,"solution":"CRANE","print_date":"2024-01-01","days_since_launch":1,"editor":"x"}`

func upstream(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestValidDate(t *testing.T) {
	assert.True(t, ValidDate("2024-01-31"))
	assert.False(t, ValidDate("2024-1-31"))
	assert.False(t, ValidDate("20240131"))
	assert.False(t, ValidDate("2024-01-31x"))
	assert.False(t, ValidDate("../etc/passwd"))
}

func TestDateKeyAndShift(t *testing.T) {
	base := time.Date(2024, 2, 28, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-02-28", DateKey(base))
	assert.Equal(t, "2024-03-01", DateKey(Shift(base, 2)))
	assert.Equal(t, "2024-02-27", DateKey(Shift(base, -1)))
	assert.True(t, ValidDate(Today(0)))
}

func TestFetch_RelaysVerbatim(t *testing.T) {
	srv, hits := upstream(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/2024-01-01.json", r.URL.Path)
		_, _ = w.Write([]byte(payload))
	})
	c := NewClient(Options{BaseURL: srv.URL + "/"})

	got, err := c.Fetch(context.Background(), "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, payload, string(got))

	// Second call is served from the cache.
	got, err = c.Fetch(context.Background(), "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, payload, string(got))
	assert.Equal(t, int32(1), hits.Load())
}

func TestFetch_InvalidDateNeverCallsUpstream(t *testing.T) {
	srv, hits := upstream(t, func(w http.ResponseWriter, r *http.Request) {})
	c := NewClient(Options{BaseURL: srv.URL})

	_, err := c.Fetch(context.Background(), "yesterday")
	assert.ErrorIs(t, err, ErrInvalidDate)
	assert.Equal(t, int32(0), hits.Load())
}

func TestFetch_UpstreamFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		status  int
	}{
		{
			name:    "status",
			handler: func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNotFound) },
			status:  http.StatusNotFound,
		},
		{
			name:    "invalid json",
			handler: func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("<html>")) },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := upstream(t, tt.handler)
			c := NewClient(Options{BaseURL: srv.URL})

			_, err := c.Fetch(context.Background(), "2024-01-01")
			var ue *UpstreamError
			require.True(t, errors.As(err, &ue), "got %v", err)
			assert.Equal(t, tt.status, ue.Status)
			assert.Equal(t, "2024-01-01", ue.Date)
		})
	}
}

func TestFetch_TransportFailure(t *testing.T) {
	srv, _ := upstream(t, func(w http.ResponseWriter, r *http.Request) {})
	url := srv.URL
	srv.Close()

	c := NewClient(Options{BaseURL: url, Timeout: time.Second})
	_, err := c.Fetch(context.Background(), "2024-01-01")
	var ue *UpstreamError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, 0, ue.Status)
	assert.Contains(t, ue.Error(), "2024-01-01")
}

func TestFetch_FailuresAreNotCached(t *testing.T) {
	var fail atomic.Bool
	fail.Store(true)
	srv, hits := upstream(t, func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(payload))
	})
	c := NewClient(Options{BaseURL: srv.URL})

	_, err := c.Fetch(context.Background(), "2024-01-01")
	require.Error(t, err)

	fail.Store(false)
	got, err := c.Fetch(context.Background(), "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, payload, string(got))
	assert.Equal(t, int32(2), hits.Load())
}

func TestFetch_CollapsesConcurrentRequests(t *testing.T) {
	release := make(chan struct{})
	srv, hits := upstream(t, func(w http.ResponseWriter, r *http.Request) {
		<-release
		_, _ = w.Write([]byte(payload))
	})
	c := NewClient(Options{BaseURL: srv.URL})

	var wg sync.WaitGroup
	results := make([]error, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = c.Fetch(context.Background(), "2024-01-01")
		}(i)
	}
	// Give every goroutine time to join the in-flight request.
	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()

	for _, err := range results {
		assert.NoError(t, err)
	}
	assert.Equal(t, int32(1), hits.Load())
}

func TestFetch_CallerCancellation(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	srv, _ := upstream(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	c := NewClient(Options{BaseURL: srv.URL})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := c.Fetch(ctx, "2024-01-01")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestFetch_UsesProvidedCache(t *testing.T) {
	cache := store.NewMemoryStore()
	require.NoError(t, cache.Put(context.Background(), "2024-05-05", json.RawMessage(`{"solution":"stare"}`)))
	srv, hits := upstream(t, func(w http.ResponseWriter, r *http.Request) {})

	c := NewClient(Options{BaseURL: srv.URL, Cache: cache})
	s, err := c.Solution(context.Background(), "2024-05-05")
	require.NoError(t, err)
	assert.Equal(t, "stare", s)
	assert.Equal(t, int32(0), hits.Load())
}

func TestSolution(t *testing.T) {
	srv, _ := upstream(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(payload))
	})
	c := NewClient(Options{BaseURL: srv.URL})

	s, err := c.Solution(context.Background(), "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, "crane", s)
}

func TestParseSolution(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: `{"solution":" Stare "}`, want: "stare"},
		{in: `{"solution":"toolong"}`, wantErr: true},
		{in: `{"other":1}`, wantErr: true},
		{in: `[1,2]`, wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseSolution(json.RawMessage(tt.in))
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidSolution, tt.in)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestRateLimit(t *testing.T) {
	srv, _ := upstream(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(payload))
	})
	c := NewClient(Options{BaseURL: srv.URL, RatePerSecond: 10})

	start := time.Now()
	for _, d := range []string{"2024-01-01", "2024-01-02", "2024-01-03"} {
		_, err := c.Fetch(context.Background(), d)
		require.NoError(t, err)
	}
	assert.GreaterOrEqual(t, time.Since(start), 150*time.Millisecond)
}
