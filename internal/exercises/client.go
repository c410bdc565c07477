// Package exercises suggests exercises for a muscle group from the
// api-ninjas catalogue, falling back to a built-in table when the catalogue
// cannot answer.
package exercises

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/julianstephens/fittrack/internal/cache"
	"github.com/julianstephens/fittrack/internal/clock"
	fterrors "github.com/julianstephens/fittrack/internal/errors"
	"github.com/julianstephens/fittrack/internal/logger"
	"github.com/julianstephens/fittrack/internal/metrics"
	"github.com/julianstephens/fittrack/internal/models"
)

const (
	DefaultBaseURL    = "https://api.api-ninjas.com/v1/exercises"
	DefaultTimeout    = 10 * time.Second
	DefaultCacheTTL   = 5 * time.Minute
	DefaultMaxResults = 6
	DefaultMuscle     = "chest"

	adapterLabel = "exercises"
)

// supportedMuscles are the muscle names the api-ninjas catalogue indexes.
var supportedMuscles = []string{
	"abdominals", "abductors", "adductors", "biceps", "calves", "chest",
	"forearms", "glutes", "hamstrings", "lats", "lower_back", "middle_back",
	"neck", "quadriceps", "traps", "triceps",
}

// fallbackAliases maps catalogue names onto the broader fallbackTable groups.
var fallbackAliases = map[string]string{
	"abdominals":  "abs",
	"abductors":   "legs",
	"adductors":   "legs",
	"lats":        "back",
	"lower_back":  "back",
	"middle_back": "back",
}

var errNoAPIKey = errors.New("exercise API key is not configured")

// Options configures a Client. Zero values select the defaults above.
type Options struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	CacheTTL   time.Duration
	MaxResults int
	Clock      clock.Clock
	HTTPClient *http.Client
	Metrics    *metrics.Manager
}

// Client fetches exercise suggestions. It is safe for concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	timeout    time.Duration
	maxResults int
	httpClient *http.Client
	metrics    *metrics.Manager

	mu    sync.Mutex
	cache *cache.TTL[[]models.Exercise]
}

// Status describes the adapter configuration.
type Status struct {
	Configured bool   `json:"configured"`
	BaseURL    string `json:"baseUrl"`
	CacheSize  int    `json:"cacheSize"`
	MaxResults int    `json:"maxResults"`
}

// BatchStatus mirrors the settled state of one lookup in a batch.
type BatchStatus string

const (
	StatusFulfilled BatchStatus = "fulfilled"
	StatusRejected  BatchStatus = "rejected"
)

// BatchResult is the outcome for one muscle of FetchMany.
type BatchResult struct {
	Muscle    string            `json:"muscle"`
	Status    BatchStatus       `json:"status"`
	Exercises []models.Exercise `json:"exercises"`
	Err       error             `json:"-"`
}

// apiExercise is the upstream record shape.
type apiExercise struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	Muscle       string `json:"muscle"`
	Equipment    string `json:"equipment"`
	Difficulty   string `json:"difficulty"`
	Instructions string `json:"instructions"`
}

func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = DefaultCacheTTL
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = DefaultMaxResults
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{}
	}
	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		apiKey:     strings.TrimSpace(opts.APIKey),
		timeout:    opts.Timeout,
		maxResults: opts.MaxResults,
		httpClient: opts.HTTPClient,
		metrics:    opts.Metrics,
		cache:      cache.New[[]models.Exercise](opts.CacheTTL, opts.Clock, 0),
	}
}

// SupportedMuscles returns the muscle groups the catalogue understands.
func SupportedMuscles() []string {
	out := make([]string, len(supportedMuscles))
	copy(out, supportedMuscles)
	return out
}

func IsSupportedMuscle(m string) bool {
	key := normalize(m)
	for _, s := range supportedMuscles {
		if s == key {
			return true
		}
	}
	return false
}

func normalize(m string) string {
	return strings.ToLower(strings.TrimSpace(m))
}

// IsConfigured reports whether an API key is available.
func (c *Client) IsConfigured() bool {
	return c.apiKey != ""
}

func (c *Client) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Status{
		Configured: c.IsConfigured(),
		BaseURL:    c.baseURL,
		CacheSize:  c.cache.Len(),
		MaxResults: c.maxResults,
	}
}

func (c *Client) ClearCache() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache.Clear()
	logger.Debug("Exercise cache cleared")
}

// Fetch returns up to MaxResults suggestions for muscle. It never fails:
// any upstream problem yields the fallback table. Only an empty muscle skips
// the catalogue.
func (c *Client) Fetch(ctx context.Context, muscle string) []models.Exercise {
	key := normalize(muscle)
	if key == "" {
		logger.Warn("Empty muscle group, using default", "default", DefaultMuscle)
		c.count(metrics.OutcomeFallback)
		return c.fallback(DefaultMuscle)
	}
	if !IsSupportedMuscle(key) {
		logger.Debug("Muscle group is not a catalogue name", "muscle", key)
	}

	c.mu.Lock()
	cached, ok := c.cache.Get(key)
	c.mu.Unlock()
	if ok {
		logger.Debug("Exercise cache hit", "muscle", key)
		c.count(metrics.OutcomeCached)
		return cached
	}

	start := time.Now()
	list, err := c.request(ctx, key)
	c.observe(time.Since(start))
	if err != nil {
		logger.Warn("Exercise lookup failed, using fallback", "muscle", key, "error", err)
		c.count(metrics.OutcomeFallback)
		return c.fallback(key)
	}

	c.mu.Lock()
	if err := c.cache.Set(key, list); err != nil {
		logger.Warn("Failed to cache exercises", "muscle", key, "error", err)
	}
	c.mu.Unlock()

	c.count(metrics.OutcomeLive)
	return list
}

// FetchMany looks up several muscles concurrently. Each result settles
// independently; a rejected item carries its error and the fallback list.
func (c *Client) FetchMany(ctx context.Context, muscles []string) []BatchResult {
	results := make([]BatchResult, len(muscles))
	var wg sync.WaitGroup
	for i, m := range muscles {
		wg.Add(1)
		go func(i int, m string) {
			defer wg.Done()
			results[i] = BatchResult{Muscle: m, Status: StatusFulfilled}
			if err := ctx.Err(); err != nil {
				results[i].Status = StatusRejected
				results[i].Err = err
				results[i].Exercises = c.fallback(normalize(m))
				return
			}
			results[i].Exercises = c.Fetch(ctx, m)
		}(i, m)
	}
	wg.Wait()
	return results
}

func (c *Client) request(ctx context.Context, key string) ([]models.Exercise, error) {
	if !c.IsConfigured() {
		return nil, errNoAPIKey
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := c.baseURL + "?muscle=" + url.QueryEscape(key)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, &fterrors.TimeoutError{Op: "fetch exercises", After: c.timeout}
		}
		return nil, &fterrors.NetworkError{Op: "fetch exercises", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &fterrors.NetworkError{Op: "fetch exercises", StatusCode: resp.StatusCode}
	}

	var payload []apiExercise
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &fterrors.NetworkError{Op: "decode exercises", Cause: err}
	}
	if len(payload) == 0 {
		return nil, errors.New("no exercises returned")
	}

	if len(payload) > c.maxResults {
		payload = payload[:c.maxResults]
	}
	out := make([]models.Exercise, 0, len(payload))
	for _, p := range payload {
		out = append(out, models.Exercise{
			Name:         orDefault(p.Name, "Unknown Exercise"),
			Type:         orDefault(p.Type, "strength"),
			Difficulty:   orDefault(p.Difficulty, "beginner"),
			Muscle:       orDefault(p.Muscle, key),
			Equipment:    orDefault(p.Equipment, "none"),
			Instructions: orDefault(p.Instructions, "No instructions available"),
		})
	}
	return out, nil
}

func (c *Client) fallback(key string) []models.Exercise {
	list, ok := fallbackTable[key]
	if !ok {
		list, ok = fallbackTable[fallbackAliases[key]]
	}
	if !ok {
		list = fallbackTable[DefaultMuscle]
	}
	if len(list) > c.maxResults {
		list = list[:c.maxResults]
	}
	out := make([]models.Exercise, len(list))
	copy(out, list)
	return out
}

func (c *Client) count(outcome string) {
	if c.metrics == nil {
		return
	}
	c.metrics.CounterAdapterRequests.WithLabelValues(adapterLabel, outcome).Inc()
}

func (c *Client) observe(d time.Duration) {
	if c.metrics == nil {
		return
	}
	c.metrics.HistogramAdapterDuration.WithLabelValues(adapterLabel).Observe(d.Seconds())
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
