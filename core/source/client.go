package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"scrapper/core/cache"
	"scrapper/core/retry"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

// Client reads records from the external API.
type Client interface {
	// Fetch reads one page of a collection.
	Fetch(ctx context.Context, resourceType string, q Query, page PageRequest, opts FetchOptions) (*Page, error)
	// FetchOne reads a single record by id.
	FetchOne(ctx context.Context, resourceType string, id int, opts FetchOptions) (RawRecord, error)
	// FetchAll walks a collection page by page until it is exhausted or limit
	// records were read. limit 0 reads everything.
	FetchAll(ctx context.Context, resourceType string, q Query, limit int, opts FetchOptions, fn func(*Page) error) error
}

// HTTPClient is the Client talking to the real API.
type HTTPClient struct {
	cfg      Config
	http     *http.Client
	cache    cache.Cache
	ttl      time.Duration
	policy   retry.Policy
	limiter  *rate.Limiter
	logger   *zap.Logger
	sf       singleflight.Group
	gateMu   sync.Mutex
	lastSent time.Time
}

// NewClient creates a client. A nil cache disables caching.
func NewClient(cfg Config, c cache.Cache, ttl time.Duration, policy retry.Policy, logger *zap.Logger) *HTTPClient {
	cfg = cfg.withDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}
	perSecond := rate.Limit(float64(cfg.RequestsPerMinute) / 60.0)

	return &HTTPClient{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		cache:   c,
		ttl:     ttl,
		policy:  policy,
		limiter: rate.NewLimiter(perSecond, cfg.Burst),
		logger:  logger,
	}
}

// Language returns the preferred and fallback languages.
func (c *HTTPClient) Language() (string, string) {
	return c.cfg.Language, c.cfg.FallbackLanguage
}

func (c *HTTPClient) Fetch(ctx context.Context, resourceType string, q Query, page PageRequest, opts FetchOptions) (*Page, error) {
	if page.Limit <= 0 {
		page.Limit = c.cfg.PageSize
	}
	if page.Skip < 0 {
		page.Skip = 0
	}

	params := q.values()
	params.Set("$skip", strconv.Itoa(page.Skip))
	params.Set("$limit", strconv.Itoa(page.Limit))
	if c.cfg.Language != "" {
		params.Set("lang", c.cfg.Language)
	}

	body, err := c.get(ctx, pageKey(resourceType, q, c.cfg.Language, page), resourceType, params, opts)
	if err != nil {
		return nil, err
	}

	var out Page
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to decode %s page: %w", resourceType, err)
	}
	return &out, nil
}

func (c *HTTPClient) FetchOne(ctx context.Context, resourceType string, id int, opts FetchOptions) (RawRecord, error) {
	params := url.Values{}
	if c.cfg.Language != "" {
		params.Set("lang", c.cfg.Language)
	}

	path := resourceType + "/" + strconv.Itoa(id)
	body, err := c.get(ctx, recordKey(resourceType, id, c.cfg.Language), path, params, opts)
	if err != nil {
		return RawRecord{}, err
	}

	var rec RawRecord
	if err := json.Unmarshal(body, &rec); err != nil {
		return RawRecord{}, fmt.Errorf("failed to decode %s record: %w", path, err)
	}
	if rec.ID == 0 {
		rec.ID = id
	}
	return rec, nil
}

func (c *HTTPClient) FetchAll(ctx context.Context, resourceType string, q Query, limit int, opts FetchOptions, fn func(*Page) error) error {
	req := PageRequest{Skip: 0, Limit: c.cfg.PageSize}
	collected := 0

	for pages := 0; opts.MaxPages <= 0 || pages < opts.MaxPages; pages++ {
		if limit > 0 && limit-collected < req.Limit {
			req.Limit = limit - collected
		}

		page, err := c.Fetch(ctx, resourceType, q, req, opts)
		if err != nil {
			return err
		}
		if page.Skip == 0 && req.Skip != 0 {
			page.Skip = req.Skip
		}
		if page.Limit > 0 && page.Limit < req.Limit {
			c.logger.Debug("Source capped page size",
				zap.String("resource", resourceType),
				zap.Int("requested", req.Limit),
				zap.Int("returned", page.Limit),
			)
		}

		if err := fn(page); err != nil {
			return err
		}

		collected += len(page.Data)
		if page.done() || (limit > 0 && collected >= limit) {
			return nil
		}
		req.Skip = page.nextSkip()
	}
	return nil
}

// get returns the response body for path, from the cache when allowed.
func (c *HTTPClient) get(ctx context.Context, key, path string, params url.Values, opts FetchOptions) ([]byte, error) {
	if c.cache != nil && !opts.SkipCache {
		body, ok, err := c.cache.Get(ctx, key)
		if err != nil {
			c.logger.Warn("Cache read failed", zap.String("key", key), zap.Error(err))
		} else if ok {
			return body, nil
		}
	}

	// The shared request runs detached from its callers. Each caller stops
	// waiting on its own ctx.
	ch := c.sf.DoChan(key, func() (any, error) {
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.sharedBudget())
		defer cancel()

		body, err := c.getWithRetry(sctx, path, params)
		if err != nil {
			return nil, err
		}
		if c.cache != nil {
			if err := c.cache.Set(sctx, key, body, c.ttl); err != nil {
				c.logger.Warn("Cache write failed", zap.String("key", key), zap.Error(err))
			}
		}
		return body, nil
	})

	select {
	case <-ctx.Done():
		return nil, &CollectionError{Resource: path, Err: ctx.Err()}
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	}
}

// sharedBudget bounds a detached request: every attempt at the HTTP timeout
// plus the backoff between them.
func (c *HTTPClient) sharedBudget() time.Duration {
	attempts := c.policy.Attempts()
	budget := time.Duration(attempts) * c.cfg.Timeout
	for i := 1; i < attempts; i++ {
		budget += c.policy.Delay(i)
	}
	return budget
}

func (c *HTTPClient) getWithRetry(ctx context.Context, path string, params url.Values) ([]byte, error) {
	var body []byte
	retryable := func(err error) bool {
		return ctx.Err() == nil && isTemporary(err)
	}
	attempts, err := retry.DoNotify(ctx, c.policy, retryable, func(ctx context.Context) error {
		var err error
		body, err = c.do(ctx, path, params)
		return err
	}, func(attempt int, delay time.Duration, err error) {
		c.logger.Warn("Retrying source request",
			zap.String("path", path),
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.Error(err),
		)
	})
	if err != nil {
		var cerr *CollectionError
		if errors.As(err, &cerr) {
			cerr.Attempts = attempts
			return nil, cerr
		}
		return nil, &CollectionError{Resource: path, Attempts: attempts, Err: err}
	}
	return body, nil
}

func (c *HTTPClient) do(ctx context.Context, path string, params url.Values) ([]byte, error) {
	if err := c.throttle(ctx); err != nil {
		return nil, &CollectionError{Resource: path, Err: err}
	}

	u := strings.TrimRight(c.cfg.BaseURL, "/") + "/" + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &CollectionError{Resource: path, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &CollectionError{Resource: path, Status: 0, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &CollectionError{Resource: path, Status: resp.StatusCode, Body: truncate(body)}
	}
	return body, nil
}

// throttle blocks until the rate budget and the minimum delay allow a request.
func (c *HTTPClient) throttle(ctx context.Context) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	if c.cfg.MinDelay <= 0 {
		return nil
	}

	c.gateMu.Lock()
	defer c.gateMu.Unlock()
	if wait := c.cfg.MinDelay - time.Since(c.lastSent); wait > 0 {
		if err := retry.Sleep(ctx, wait); err != nil {
			return err
		}
	}
	c.lastSent = time.Now()
	return nil
}

func isTemporary(err error) bool {
	var cerr *CollectionError
	if errors.As(err, &cerr) {
		return cerr.Temporary()
	}
	return false
}
