package exercises

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/julianstephens/fittrack/internal/clock"
	"github.com/julianstephens/fittrack/internal/metrics"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
	)
}

const eightExercises = `[
	{"name":"A1","type":"strength","muscle":"biceps","equipment":"dumbbell","difficulty":"beginner","instructions":"a"},
	{"name":"A2"},{"name":"A3"},{"name":"A4"},{"name":"A5"},{"name":"A6"},{"name":"A7"},{"name":"A8"}
]`

func setupTestClient(t *testing.T, handler http.HandlerFunc, opts Options) (*Client, *clock.Fake, *metrics.Manager) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	clk := clock.NewFake(time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC))
	m := metrics.NewTestManager()
	opts.BaseURL = srv.URL
	opts.HTTPClient = srv.Client()
	opts.Clock = clk
	opts.Metrics = m
	if opts.APIKey == "" {
		opts.APIKey = "test-key"
	}
	return NewClient(opts), clk, m
}

func outcome(m *metrics.Manager, o string) float64 {
	return testutil.ToFloat64(m.CounterAdapterRequests.WithLabelValues(adapterLabel, o))
}

func TestFetchLiveMapsAndTruncates(t *testing.T) {
	var gotKey, gotMuscle string
	c, _, m := setupTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-Api-Key")
		gotMuscle = r.URL.Query().Get("muscle")
		fmt.Fprint(w, eightExercises)
	}, Options{})

	list := c.Fetch(t.Context(), "  Biceps ")
	require.Len(t, list, DefaultMaxResults)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "biceps", gotMuscle)

	assert.Equal(t, "dumbbell", list[0].Equipment)
	second := list[1]
	assert.Equal(t, "A2", second.Name)
	assert.Equal(t, "strength", second.Type)
	assert.Equal(t, "beginner", second.Difficulty)
	assert.Equal(t, "biceps", second.Muscle)
	assert.Equal(t, "none", second.Equipment)
	assert.Equal(t, "No instructions available", second.Instructions)

	assert.Equal(t, float64(1), outcome(m, metrics.OutcomeLive))
}

func TestFetchUsesCacheUntilExpiry(t *testing.T) {
	var calls atomic.Int32
	c, clk, m := setupTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		fmt.Fprint(w, eightExercises)
	}, Options{})

	c.Fetch(t.Context(), "biceps")
	c.Fetch(t.Context(), "BICEPS")
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, float64(1), outcome(m, metrics.OutcomeCached))
	assert.Equal(t, 1, c.Status().CacheSize)

	clk.Advance(DefaultCacheTTL + time.Second)
	c.Fetch(t.Context(), "biceps")
	assert.Equal(t, int32(2), calls.Load())
}

func TestFetchFallbacks(t *testing.T) {
	tests := []struct {
		name       string
		handler    http.HandlerFunc
		muscle     string
		apiKey     string
		wantCalls  int32
		wantFirst  string
		wantLength int
	}{
		{
			name:       "server error",
			handler:    func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusInternalServerError) },
			muscle:     "calves",
			wantFirst:  "Standing Calf Raises",
			wantLength: 2,
		},
		{
			name:       "malformed payload",
			handler:    func(w http.ResponseWriter, r *http.Request) { fmt.Fprint(w, `{"error":"nope"}`) },
			muscle:     "glutes",
			wantFirst:  "Hip Thrusts",
			wantLength: 3,
		},
		{
			name:       "empty array",
			handler:    func(w http.ResponseWriter, r *http.Request) { fmt.Fprint(w, `[]`) },
			muscle:     "chest",
			wantFirst:  "Push-ups",
			wantLength: 6,
		},
		{
			name:       "supported muscle without table falls back to chest",
			handler:    func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusForbidden) },
			muscle:     "forearms",
			wantFirst:  "Push-ups",
			wantLength: 6,
		},
		{
			name:       "empty muscle",
			handler:    func(w http.ResponseWriter, r *http.Request) { t.Error("unexpected request") },
			muscle:     "   ",
			wantFirst:  "Push-ups",
			wantLength: 6,
		},
		{
			name:       "unknown muscle",
			handler:    func(w http.ResponseWriter, r *http.Request) { fmt.Fprint(w, `[]`) },
			muscle:     "wings",
			wantCalls:  1,
			wantFirst:  "Push-ups",
			wantLength: 6,
		},
		{
			name:       "catalogue name maps onto a broader group",
			handler:    func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusBadGateway) },
			muscle:     "lats",
			wantCalls:  1,
			wantFirst:  "Pull-ups",
			wantLength: 6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			handler := func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				tt.handler(w, r)
			}
			c, _, m := setupTestClient(t, handler, Options{APIKey: tt.apiKey})
			list := c.Fetch(t.Context(), tt.muscle)
			if tt.wantCalls > 0 {
				assert.Equal(t, tt.wantCalls, calls.Load())
			}
			require.Len(t, list, tt.wantLength)
			assert.Equal(t, tt.wantFirst, list[0].Name)
			assert.Equal(t, float64(1), outcome(m, metrics.OutcomeFallback))
			assert.Equal(t, 0, c.Status().CacheSize, "fallback results are not cached")
		})
	}
}

func TestFetchAnyCatalogueMuscleGoesLive(t *testing.T) {
	var calls atomic.Int32
	var gotMuscle string
	c, _, m := setupTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		gotMuscle = r.URL.Query().Get("muscle")
		fmt.Fprint(w, eightExercises)
	}, Options{})

	list := c.Fetch(t.Context(), "Lats")
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, "lats", gotMuscle)
	require.Len(t, list, DefaultMaxResults)
	assert.Equal(t, "A1", list[0].Name)
	assert.Equal(t, float64(1), outcome(m, metrics.OutcomeLive))
	assert.Equal(t, 1, c.Status().CacheSize)
}

func TestFetchWithoutAPIKey(t *testing.T) {
	c := NewClient(Options{BaseURL: "http://127.0.0.1:1"})
	assert.False(t, c.IsConfigured())
	assert.False(t, c.Status().Configured)

	list := c.Fetch(t.Context(), "abs")
	require.NotEmpty(t, list)
	assert.Equal(t, "abs", list[0].Muscle)
}

func TestFetchTimeout(t *testing.T) {
	c, _, _ := setupTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}, Options{Timeout: 50 * time.Millisecond})

	_, err := c.request(t.Context(), "back")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timed out")

	list := c.Fetch(t.Context(), "back")
	assert.Equal(t, "Pull-ups", list[0].Name)
}

func TestFetchMany(t *testing.T) {
	c, _, _ := setupTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("muscle") == "abs" {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, eightExercises)
	}, Options{})

	results := c.FetchMany(t.Context(), []string{"biceps", "abs", "legs"})
	require.Len(t, results, 3)
	for i, m := range []string{"biceps", "abs", "legs"} {
		assert.Equal(t, m, results[i].Muscle)
		assert.Equal(t, StatusFulfilled, results[i].Status)
		assert.NotEmpty(t, results[i].Exercises)
	}
	assert.Equal(t, "A1", results[0].Exercises[0].Name)
	assert.Equal(t, "abs", results[1].Exercises[0].Muscle)
}

func TestFetchManyCancelled(t *testing.T) {
	c := NewClient(Options{APIKey: "k", BaseURL: "http://127.0.0.1:1"})
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	results := c.FetchMany(ctx, []string{"chest", "back"})
	for _, r := range results {
		assert.Equal(t, StatusRejected, r.Status)
		assert.ErrorIs(t, r.Err, context.Canceled)
		assert.NotEmpty(t, r.Exercises)
	}
}

func TestSupportedMuscles(t *testing.T) {
	muscles := SupportedMuscles()
	assert.Len(t, muscles, 16)
	assert.True(t, IsSupportedMuscle("Traps"))
	assert.True(t, IsSupportedMuscle(" middle_back"))
	assert.False(t, IsSupportedMuscle("wings"))
	assert.False(t, IsSupportedMuscle("abs"))

	muscles[0] = "mutated"
	assert.Equal(t, "abdominals", SupportedMuscles()[0])
}

func TestFallbackTableShape(t *testing.T) {
	for alias, group := range fallbackAliases {
		assert.True(t, IsSupportedMuscle(alias), alias)
		assert.Contains(t, fallbackTable, group, alias)
	}
	for muscle, list := range fallbackTable {
		assert.LessOrEqual(t, len(list), DefaultMaxResults, muscle)
		for _, e := range list {
			assert.Equal(t, muscle, e.Muscle)
			assert.NotEmpty(t, e.Name)
			assert.NotEmpty(t, e.Instructions)
		}
	}
}

func TestClearCache(t *testing.T) {
	c, _, _ := setupTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, eightExercises)
	}, Options{})

	c.Fetch(t.Context(), "legs")
	require.Equal(t, 1, c.Status().CacheSize)
	c.ClearCache()
	assert.Equal(t, 0, c.Status().CacheSize)
}
