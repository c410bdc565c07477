// Package quotes serves motivational quotes from the quotable API with a
// short-lived cache, a rolling duplicate history and an offline fallback table.
package quotes

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/julianstephens/fittrack/internal/cache"
	"github.com/julianstephens/fittrack/internal/clock"
	"github.com/julianstephens/fittrack/internal/constants"
	fterrors "github.com/julianstephens/fittrack/internal/errors"
	"github.com/julianstephens/fittrack/internal/logger"
	"github.com/julianstephens/fittrack/internal/metrics"
	"github.com/julianstephens/fittrack/internal/models"
	"github.com/julianstephens/fittrack/internal/retry"
	"github.com/julianstephens/fittrack/internal/storage"
)

const (
	DefaultBaseURL       = "https://api.quotable.io"
	DefaultTags          = "inspirational,motivational,sports,wisdom"
	DefaultTimeout       = 8 * time.Second
	DefaultStatusTimeout = 5 * time.Second
	DefaultCacheTTL      = 10 * time.Minute
	DefaultMaxRetries    = 3
	DefaultRetryBase     = time.Second
	HistorySize          = 10
	FallbackAttempts     = 5

	adapterLabel = "quotes"
	slotKey      = "current"
)

// Options configures a Client. Zero values select the defaults above.
type Options struct {
	BaseURL       string
	Timeout       time.Duration
	StatusTimeout time.Duration
	CacheTTL      time.Duration
	Retry         retry.Policy
	Clock         clock.Clock
	HTTPClient    *http.Client
	Metrics       *metrics.Manager
	// Backend stores the quote of the day. Without it the daily quote is
	// fetched on every call.
	Backend  storage.Backend
	Location *time.Location
	// IntN picks a fallback index in [0, n).
	IntN func(n int) int
}

// Client fetches quotes. It is safe for concurrent use.
type Client struct {
	baseURL       string
	timeout       time.Duration
	statusTimeout time.Duration
	policy        retry.Policy
	clock         clock.Clock
	httpClient    *http.Client
	metrics       *metrics.Manager
	backend       storage.Backend
	loc           *time.Location
	intn          func(int) int

	mu      sync.Mutex
	slot    *cache.TTL[models.Quote]
	history []models.Quote
}

// Info describes the adapter configuration and its in-memory state.
type Info struct {
	BaseURL       string        `json:"baseUrl"`
	Tags          []string      `json:"tags"`
	CacheDuration time.Duration `json:"cacheDuration"`
	MaxRetries    int           `json:"maxRetries"`
	CacheStatus   string        `json:"cacheStatus"`
	HistorySize   int           `json:"historySize"`
}

// Status is the result of probing the upstream API.
type Status struct {
	Online     bool   `json:"online"`
	StatusCode int    `json:"status,omitempty"`
	Error      string `json:"error,omitempty"`
	Timestamp  int64  `json:"timestamp"`
}

type apiQuote struct {
	ID      string   `json:"_id"`
	Content string   `json:"content"`
	Author  string   `json:"author"`
	Tags    []string `json:"tags"`
	Length  int      `json:"length"`
}

var errInvalidResponse = errors.New("invalid API response format")

func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.StatusTimeout <= 0 {
		opts.StatusTimeout = DefaultStatusTimeout
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = DefaultCacheTTL
	}
	if opts.Retry.MaxAttempts <= 0 {
		opts.Retry.MaxAttempts = DefaultMaxRetries
	}
	if opts.Retry.Backoff == nil {
		opts.Retry.Backoff = retry.Linear(DefaultRetryBase)
	}
	if opts.Clock == nil {
		opts.Clock = clock.Real()
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{}
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.IntN == nil {
		opts.IntN = rand.IntN
	}
	return &Client{
		baseURL:       strings.TrimRight(opts.BaseURL, "/"),
		timeout:       opts.Timeout,
		statusTimeout: opts.StatusTimeout,
		policy:        opts.Retry,
		clock:         opts.Clock,
		httpClient:    opts.HTTPClient,
		metrics:       opts.Metrics,
		backend:       opts.Backend,
		loc:           opts.Location,
		intn:          opts.IntN,
		slot:          cache.New[models.Quote](opts.CacheTTL, opts.Clock, 0),
	}
}

// Fetch returns the cached quote when it is fresh, otherwise a new quote
// that is not in the recent history. It never fails: when every attempt
// errors or repeats a recent quote a fallback quote is returned.
func (c *Client) Fetch(ctx context.Context, forceRefresh bool) models.Quote {
	if !forceRefresh {
		c.mu.Lock()
		q, ok := c.slot.Get(slotKey)
		c.mu.Unlock()
		if ok {
			logger.Debug("Using cached quote")
			c.count(metrics.OutcomeCached)
			return q
		}
	}

	endpoint := c.baseURL + "/random?tags=" + DefaultTags
	q, err := retry.Do(ctx, c.policy, func(ctx context.Context, attempt int) (models.Quote, error) {
		logger.Debug("Fetching quote", "attempt", attempt, "max", c.policy.MaxAttempts)
		return c.get(ctx, endpoint)
	}, func(q models.Quote) string {
		if c.isDuplicate(q) {
			c.count(metrics.OutcomeRejected)
			return "duplicate of a recent quote"
		}
		return ""
	})
	if err != nil {
		logger.Warn("All quote attempts failed, using fallback", "error", err)
		return c.Fallback()
	}

	c.mu.Lock()
	if err := c.slot.Set(slotKey, q); err != nil {
		logger.Warn("Failed to cache quote", "error", err)
	}
	c.remember(q)
	c.mu.Unlock()

	c.count(metrics.OutcomeLive)
	return q
}

// FetchByTag makes a single attempt for a quote carrying tag.
func (c *Client) FetchByTag(ctx context.Context, tag string) models.Quote {
	tag = strings.TrimSpace(tag)
	q, err := c.get(ctx, c.baseURL+"/random?tags="+url.QueryEscape(tag))
	if err != nil {
		logger.Warn("Quote by tag failed, using fallback", "tag", tag, "error", err)
		return c.fallbackByTag(tag)
	}
	if len(q.Tags) == 0 && tag != "" {
		q.Tags = []string{tag}
	}
	c.count(metrics.OutcomeLive)
	return q
}

// FetchByAuthor makes a single attempt for a quote by author.
func (c *Client) FetchByAuthor(ctx context.Context, author string) models.Quote {
	author = strings.TrimSpace(author)
	q, err := c.get(ctx, c.baseURL+"/random?author="+url.QueryEscape(author))
	if err != nil {
		logger.Warn("Quote by author failed, using fallback", "author", author, "error", err)
		return c.Fallback()
	}
	c.count(metrics.OutcomeLive)
	return q
}

// QuoteOfTheDay returns the quote stored for today's date, fetching and
// storing one on the first call of the day. Fallback quotes are not stored.
func (c *Client) QuoteOfTheDay(ctx context.Context) models.Quote {
	key := constants.QuoteOfDayPrefix + c.clock.Now().In(c.loc).Format(constants.DateFormat)

	if c.backend != nil {
		if raw, ok, err := c.backend.GetItem(key); err != nil {
			logger.Warn("Failed to read quote of the day", "key", key, "error", err)
		} else if ok {
			var q models.Quote
			if err := json.Unmarshal([]byte(raw), &q); err == nil && q.Text != "" {
				c.count(metrics.OutcomeCached)
				return q
			}
			logger.Warn("Discarding unreadable quote of the day", "key", key)
		}
	}

	q, err := c.get(ctx, c.baseURL+"/random?tags=inspirational")
	if err != nil {
		logger.Warn("Quote of the day failed, using fallback", "error", err)
		return c.Fallback()
	}
	q.IsQuoteOfTheDay = true
	c.count(metrics.OutcomeLive)

	if c.backend != nil {
		data, err := json.Marshal(q)
		if err == nil {
			err = c.backend.SetItem(key, string(data))
		}
		if err != nil {
			logger.Warn("Failed to store quote of the day", "key", key, "error", err)
		}
	}
	return q
}

// Fallback picks a quote from the built-in table, avoiding the recent
// history when it can, and records it in the history.
func (c *Client) Fallback() models.Quote {
	return c.pickFallback(fallbackQuotes)
}

func (c *Client) fallbackByTag(tag string) models.Quote {
	tag = strings.ToLower(tag)
	var tagged []models.Quote
	for _, q := range fallbackQuotes {
		for _, t := range q.Tags {
			if t == tag {
				tagged = append(tagged, q)
				break
			}
		}
	}
	if len(tagged) == 0 {
		tagged = fallbackQuotes
	}
	return c.pickFallback(tagged)
}

func (c *Client) pickFallback(table []models.Quote) models.Quote {
	c.mu.Lock()
	defer c.mu.Unlock()

	var last models.Quote
	policy := retry.Policy{MaxAttempts: FallbackAttempts, Backoff: retry.None(), Sleep: retry.NoSleep}
	q, err := retry.Do(context.Background(), policy, func(context.Context, int) (models.Quote, error) {
		last = table[c.intn(len(table))]
		return last, nil
	}, func(q models.Quote) string {
		if c.isDuplicateLocked(q) {
			return "recently shown"
		}
		return ""
	})
	if err != nil {
		q = last
		for _, candidate := range table {
			if !c.isDuplicateLocked(candidate) {
				q = candidate
				break
			}
		}
	}

	q.Tags = append([]string(nil), q.Tags...)
	q.Timestamp = c.clock.Now().UnixMilli()
	q.IsFallback = true
	c.remember(q)
	c.count(metrics.OutcomeFallback)
	return q
}

// History returns the most recent quotes, newest first.
func (c *Client) History() []models.Quote {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Quote, len(c.history))
	copy(out, c.history)
	return out
}

// ClearCache empties the cached quote and the history.
func (c *Client) ClearCache() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.slot.Clear()
	c.history = nil
	logger.Debug("Quote cache cleared")
}

// Status probes the API base URL.
func (c *Client) Status(ctx context.Context) Status {
	ctx, cancel := context.WithTimeout(ctx, c.statusTimeout)
	defer cancel()

	st := Status{Timestamp: c.clock.Now().UnixMilli()}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		st.Error = err.Error()
		return st
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		st.Error = err.Error()
		return st
	}
	defer resp.Body.Close()

	st.StatusCode = resp.StatusCode
	st.Online = resp.StatusCode >= 200 && resp.StatusCode <= 299
	return st
}

func (c *Client) Info() Info {
	c.mu.Lock()
	defer c.mu.Unlock()
	status := "Empty"
	if c.slot.Len() > 0 {
		if _, ok := c.slot.Get(slotKey); ok {
			status = "Active"
		}
	}
	return Info{
		BaseURL:       c.baseURL,
		Tags:          strings.Split(DefaultTags, ","),
		CacheDuration: c.slot.TTL(),
		MaxRetries:    c.policy.MaxAttempts,
		CacheStatus:   status,
		HistorySize:   len(c.history),
	}
}

// AvailableTags lists the tags the upstream API recognizes.
func AvailableTags() []string {
	out := make([]string, len(availableTags))
	copy(out, availableTags)
	return out
}

// MotivationalFact returns a random fact.
func (c *Client) MotivationalFact() string {
	return motivationalFacts[c.intn(len(motivationalFacts))]
}

func (c *Client) get(ctx context.Context, endpoint string) (models.Quote, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	defer func() { c.observe(time.Since(start)) }()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return models.Quote{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return models.Quote{}, &fterrors.TimeoutError{Op: "fetch quote", After: c.timeout}
		}
		return models.Quote{}, &fterrors.NetworkError{Op: "fetch quote", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return models.Quote{}, &fterrors.NetworkError{Op: "fetch quote", StatusCode: resp.StatusCode}
	}

	var data apiQuote
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return models.Quote{}, &fterrors.NetworkError{Op: "decode quote", Cause: err}
	}
	if data.Content == "" || data.Author == "" {
		return models.Quote{}, errInvalidResponse
	}

	now := c.clock.Now()
	q := models.Quote{
		Text:      data.Content,
		Author:    data.Author,
		Tags:      data.Tags,
		Length:    data.Length,
		ID:        data.ID,
		Timestamp: now.UnixMilli(),
	}
	if q.Tags == nil {
		q.Tags = []string{}
	}
	if q.Length == 0 {
		q.Length = len([]rune(q.Text))
	}
	if q.ID == "" {
		q.ID = strconv.FormatInt(now.UnixMilli(), 10)
	}
	return q, nil
}

func (c *Client) isDuplicate(q models.Quote) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isDuplicateLocked(q)
}

// isDuplicateLocked matches on text, or on id when both sides carry one.
func (c *Client) isDuplicateLocked(q models.Quote) bool {
	for _, h := range c.history {
		if h.Text == q.Text || (q.ID != "" && h.ID == q.ID) {
			return true
		}
	}
	return false
}

// remember prepends q to the history. Caller holds mu.
func (c *Client) remember(q models.Quote) {
	c.history = append([]models.Quote{q}, c.history...)
	if len(c.history) > HistorySize {
		c.history = c.history[:HistorySize]
	}
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
