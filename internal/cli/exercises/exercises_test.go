package exercises

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/julianstephens/fittrack/internal/cli"
	"github.com/julianstephens/fittrack/internal/clock"
	"github.com/julianstephens/fittrack/internal/config"
	"github.com/julianstephens/fittrack/internal/constants"
	"github.com/julianstephens/fittrack/internal/metrics"
	"github.com/julianstephens/fittrack/internal/storage"
)

func newTestContext(t *testing.T, mutate func(*config.Config)) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	t.Setenv(constants.ExerciseAPIKeyEnv, "")
	cfg := config.Default(t.TempDir())
	cfg.Keyring.Disabled = true
	if mutate != nil {
		mutate(&cfg)
	}

	clk := clock.NewFake(time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC))
	ctx, err := cli.NewContext(t.Context(), cfg, storage.NewMemoryStore(), metrics.NewTestManager(), clk)
	if err != nil {
		t.Fatalf("failed to create context: %v", err)
	}
	var out bytes.Buffer
	ctx.Out = &out
	return ctx, &out
}

func TestExercisesCmd_FallbackWithoutKey(t *testing.T) {
	ctx, out := newTestContext(t, nil)

	if err := (&ExercisesCmd{}).Run(ctx); err != nil {
		t.Fatalf("exercises failed: %v", err)
	}
	if !strings.Contains(out.String(), "Chest:") || !strings.Contains(out.String(), "Push-ups") {
		t.Errorf("expected chest fallback:\n%s", out.String())
	}

	out.Reset()
	if err := (&ExercisesCmd{Muscles: []string{"back", "glutes"}}).Run(ctx); err != nil {
		t.Fatalf("exercises failed: %v", err)
	}
	for _, want := range []string{"Back:", "Pull-ups", "Glutes:", "Hip Thrusts"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestExercisesCmd_Live(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		if r.Header.Get("X-Api-Key") != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"name":"Dips","type":"strength","muscle":"triceps","equipment":"body_only","difficulty":"intermediate","instructions":"Lower and press."}]`))
	}))
	t.Cleanup(srv.Close)

	ctx, out := newTestContext(t, func(cfg *config.Config) {
		cfg.Exercise.BaseURL = srv.URL
		cfg.Exercise.APIKey = "secret"
	})

	if err := (&ExercisesCmd{Muscles: []string{"triceps"}, Instructions: true}).Run(ctx); err != nil {
		t.Fatalf("exercises failed: %v", err)
	}
	if !strings.Contains(out.String(), "Dips (strength, intermediate, body_only)") || !strings.Contains(out.String(), "Lower and press.") {
		t.Errorf("unexpected output:\n%s", out.String())
	}

	out.Reset()
	if err := (&ExercisesCmd{Muscles: []string{"triceps"}, JSON: true}).Run(ctx); err != nil {
		t.Fatalf("exercises failed: %v", err)
	}
	var byMuscle map[string][]map[string]any
	if err := json.Unmarshal(out.Bytes(), &byMuscle); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(byMuscle["triceps"]) != 1 {
		t.Errorf("JSON result: %v", byMuscle)
	}
	if n := requests.Load(); n != 1 {
		t.Errorf("second lookup should hit the cache, got %d requests", n)
	}
}

func TestExercisesCmd_ListAndStatus(t *testing.T) {
	ctx, out := newTestContext(t, nil)

	if err := (&ExercisesCmd{List: true}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "hamstrings") {
		t.Errorf("list output:\n%s", out.String())
	}

	out.Reset()
	if err := (&ExercisesCmd{Status: true}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "API key configured: no") || !strings.Contains(out.String(), "Max results:        6") {
		t.Errorf("status output:\n%s", out.String())
	}
}
