package client

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"eventers-marketplace-client/cache"
	c "eventers-marketplace-client/context"
	"eventers-marketplace-client/logger"
	"eventers-marketplace-client/monitoring"
	"eventers-marketplace-client/response"

	"golang.org/x/sync/singleflight"
)

const (
	HeaderClientPage    = "x-client-page"
	HeaderCorrelationID = "Correlation-Id"

	DefaultRetries  = 3
	DefaultCacheTTL = time.Minute
	maxBackoff      = 30 * time.Second
)

// TokenSource supplies the bearer token for each request. An empty token
// sends the request without an Authorization header.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Client talks to the marketplace API. Queries are cached, shared between
// concurrent callers and retried; mutations are sent once and invalidate
// the queries they affect. A Client is safe for concurrent use.
type Client struct {
	baseURL    string
	http       *http.Client
	tokens     TokenSource
	store      cache.Store
	ttl        time.Duration
	retries    int
	backoff    func(attempt int) time.Duration
	clientPage string
	group      singleflight.Group
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(cl *Client) { cl.http = h }
}

func WithTimeout(d time.Duration) Option {
	return func(cl *Client) { cl.http.Timeout = d }
}

func WithTokenSource(ts TokenSource) Option {
	return func(cl *Client) { cl.tokens = ts }
}

// WithCache replaces the default in-memory query cache. A zero ttl turns
// caching off while keeping in-flight deduplication.
func WithCache(store cache.Store, ttl time.Duration) Option {
	return func(cl *Client) {
		cl.store = store
		cl.ttl = ttl
	}
}

func WithRetries(n int) Option {
	return func(cl *Client) { cl.retries = n }
}

func WithBackoff(fn func(attempt int) time.Duration) Option {
	return func(cl *Client) { cl.backoff = fn }
}

// WithClientPage sets the x-client-page header for requests whose context
// does not carry one.
func WithClientPage(page string) Option {
	return func(cl *Client) { cl.clientPage = page }
}

func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("new: invalid base url %q", baseURL)
	}
	cl := &Client{
		baseURL: strings.TrimRight(u.String(), "/"),
		http:    &http.Client{Timeout: c.DefaultHttpTimeout},
		store:   cache.NewMemoryStore(),
		ttl:     DefaultCacheTTL,
		retries: DefaultRetries,
		backoff: ExponentialBackoff,
	}
	for _, opt := range opts {
		opt(cl)
	}
	return cl, nil
}

// ExponentialBackoff waits 1s, 2s, 4s... capped at 30s.
func ExponentialBackoff(attempt int) time.Duration {
	if attempt > 5 {
		return maxBackoff
	}
	d := time.Second << uint(attempt)
	if d > maxBackoff {
		return maxBackoff
	}
	return d
}

// flightTimeout bounds a shared fetch including its retries.
func (cl *Client) flightTimeout() time.Duration {
	per := cl.http.Timeout
	if per <= 0 {
		per = c.DefaultHttpTimeout
	}
	return time.Duration(cl.retries+1) * (per + maxBackoff)
}

type request struct {
	method string
	route  string
	path   string
	query  url.Values
	body   io.Reader
	ctype  string
}

// query performs a cached, deduplicated and retried GET and decodes the
// envelope's data into out.
func (cl *Client) query(ctx context.Context, scope, route, path string, q url.Values, out interface{}) error {
	token, err := cl.token(ctx)
	if err != nil {
		return err
	}
	key := cacheKey(scope, token, path, q)

	if cl.ttl > 0 {
		if raw, ok, err := cl.store.Get(ctx, key); err != nil {
			logger.Warnf(ctx, "query: cache read failed for %s: %v", key, err)
		} else if ok {
			monitoring.TrackCacheLookup(monitoring.CacheHit)
			return decode(raw, out)
		}
	}

	// The shared fetch outlives any single caller; each caller only stops
	// waiting when its own context ends.
	ch := cl.group.DoChan(key, func() (interface{}, error) {
		monitoring.TrackCacheLookup(monitoring.CacheMiss)
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cl.flightTimeout())
		defer cancel()
		raw, err := cl.withRetry(fetchCtx, request{method: http.MethodGet, route: route, path: path, query: q}, token)
		if err != nil {
			return nil, err
		}
		if cl.ttl > 0 {
			if err := cl.store.Set(fetchCtx, key, raw, cl.ttl); err != nil {
				logger.Warnf(ctx, "query: cache write failed for %s: %v", key, err)
			}
		}
		return raw, nil
	})
	var res singleflight.Result
	select {
	case <-ctx.Done():
		return networkError(ctx.Err())
	case res = <-ch:
	}
	if res.Shared {
		monitoring.TrackCacheLookup(monitoring.CacheShared)
	}
	if res.Err != nil {
		return res.Err
	}
	return decode(res.Val.([]byte), out)
}

func (cl *Client) withRetry(ctx context.Context, req request, token string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= cl.retries; attempt++ {
		if attempt > 0 {
			monitoring.TrackRetry(req.route)
			wait := cl.backoff(attempt - 1)
			logger.Debugf(ctx, "withRetry: retrying %s in %s after: %v", req.route, wait, lastErr)
			select {
			case <-ctx.Done():
				return nil, networkError(ctx.Err())
			case <-time.After(wait):
			}
		}
		raw, err := cl.do(ctx, req, token)
		if err == nil {
			return raw, nil
		}
		lastErr = err
		var apiErr *APIError
		if !errors.As(err, &apiErr) || !apiErr.Retryable() || ctx.Err() != nil {
			return nil, err
		}
	}
	return nil, lastErr
}

// mutate sends a JSON body once and drops the cached scopes it affects.
func (cl *Client) mutate(ctx context.Context, method, route, path string, body, out interface{}, invalidate ...string) error {
	var r io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("mutate: error marshalling request body: %w", err)
		}
		r = bytes.NewReader(buf)
	}
	return cl.send(ctx, request{method: method, route: route, path: path, body: r, ctype: "application/json"}, out, invalidate)
}

func (cl *Client) send(ctx context.Context, req request, out interface{}, invalidate []string) error {
	token, err := cl.token(ctx)
	if err != nil {
		return err
	}
	raw, err := cl.do(ctx, req, token)
	if err != nil {
		return err
	}
	cl.Invalidate(ctx, invalidate...)
	return decode(raw, out)
}

// Invalidate drops every cached query under the given scopes.
func (cl *Client) Invalidate(ctx context.Context, scopes ...string) {
	for _, s := range scopes {
		if err := cl.store.DeletePrefix(ctx, s+":"); err != nil {
			logger.Warnf(ctx, "invalidate: could not drop %s: %v", s, err)
			continue
		}
		monitoring.TrackInvalidation(s)
	}
}

func (cl *Client) token(ctx context.Context) (string, error) {
	if cl.tokens == nil {
		return "", nil
	}
	token, err := cl.tokens.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("token: %w", err)
	}
	return token, nil
}

// do performs exactly one HTTP exchange and returns the envelope's data.
func (cl *Client) do(ctx context.Context, req request, token string) ([]byte, error) {
	u := cl.baseURL + req.path
	if len(req.query) > 0 {
		u += "?" + req.query.Encode()
	}
	hr, err := http.NewRequestWithContext(ctx, req.method, u, req.body)
	if err != nil {
		return nil, fmt.Errorf("do: error building request: %w", err)
	}
	hr.Header.Set("Accept", "application/json")
	if req.body != nil {
		hr.Header.Set("Content-Type", req.ctype)
	}
	if token != "" {
		hr.Header.Set("Authorization", "Bearer "+token)
	}
	page := c.GetContextValue(ctx, c.ContextKeyClientPage)
	if page == "" {
		page = cl.clientPage
	}
	if page != "" {
		hr.Header.Set(HeaderClientPage, page)
	}
	correlationID := c.GetContextValue(ctx, c.ContextKeyCorrelationID)
	if correlationID == "" {
		correlationID = c.NewCorrelationID()
	}
	hr.Header.Set(HeaderCorrelationID, correlationID)

	start := time.Now()
	defer logger.LogExecutionTime(ctx, start, fmt.Sprintf("%s %s", req.method, req.route))

	res, err := cl.http.Do(hr)
	if err != nil {
		monitoring.TrackAPIRequest(req.method, req.route, 0, time.Since(start))
		logger.Errorf(ctx, "do: %s %s failed: %v", req.method, req.path, err)
		return nil, networkError(err)
	}
	defer res.Body.Close()
	monitoring.TrackAPIRequest(req.method, req.route, res.StatusCode, time.Since(start))

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, networkError(fmt.Errorf("error reading response body: %w", err))
	}

	var env response.Envelope
	envErr := json.Unmarshal(body, &env)

	if res.StatusCode >= http.StatusBadRequest {
		apiErr := statusError(res.StatusCode, env.Message, env.Status)
		if apiErr.Kind == KindAuth {
			logger.Warnf(ctx, "do: %s %s answered %d: %s", req.method, req.path, res.StatusCode, apiErr.Message)
		} else {
			logger.Errorf(ctx, "do: %s %s answered %d: %s", req.method, req.path, res.StatusCode, apiErr.Message)
		}
		return nil, apiErr
	}
	if envErr != nil || env.Data == nil {
		return body, nil
	}
	return env.Data, nil
}

func decode(raw []byte, out interface{}) error {
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode: error unmarshalling response: %w", err)
	}
	return nil
}

// cacheKey scopes entries by the caller's token so users sharing a redis
// never see each other's data.
func cacheKey(scope, token, path string, q url.Values) string {
	owner := "anon"
	if token != "" {
		sum := sha256.Sum256([]byte(token))
		owner = hex.EncodeToString(sum[:8])
	}
	key := scope + ":" + owner + ":" + path
	if len(q) > 0 {
		key += "?" + q.Encode()
	}
	return key
}
