// Package graphql is the HTTP transport to the identity verification service's
// GraphQL endpoint. Reads honour a fetch policy backed by a response cache;
// writes always go to the network and never touch the cache.
package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"secureid/internal/platform/tracer"
	graphqlErrors "secureid/pkg/graphql-errors"
)

// FetchPolicy controls how a query interacts with the response cache.
type FetchPolicy string

const (
	// CacheOnly answers from the cache and never contacts the service.
	CacheOnly FetchPolicy = "cache-only"
	// NetworkOnly always contacts the service and stores successful results.
	NetworkOnly FetchPolicy = "network-only"
	// NoCache always contacts the service and leaves the cache untouched.
	NoCache FetchPolicy = "no-cache"
)

const (
	headerRequestID = "X-Request-Id"
	defaultTimeout  = 30 * time.Second
)

// Request is a single GraphQL operation.
type Request struct {
	OperationName string `json:"operationName"`
	Query         string `json:"query"`
	Variables     any    `json:"variables,omitempty"`
}

// Response is the GraphQL response envelope. Data is nil when the service
// returned no data or a cache-only read missed.
type Response struct {
	Data   json.RawMessage              `json:"data"`
	Errors []graphqlErrors.AppSyncError `json:"errors,omitempty"`
}

// HasData reports whether the response carries a non-null data object.
func (r *Response) HasData() bool {
	return len(r.Data) > 0 && !bytes.Equal(r.Data, []byte("null"))
}

// RequestError is a failure to obtain a GraphQL response. GraphQLErrors is set
// when the service rejected the request with structured errors (e.g. HTTP 401).
type RequestError struct {
	StatusCode    int
	GraphQLErrors []graphqlErrors.AppSyncError
	Err           error
}

func (e *RequestError) Error() string {
	if len(e.GraphQLErrors) > 0 {
		return fmt.Sprintf("graphql request failed: %s", e.GraphQLErrors[0].Error())
	}
	return fmt.Sprintf("graphql request failed: %v", e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// HTTPDoer is the minimal interface needed from an HTTP client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// TokenProvider supplies the credential sent in the Authorization header.
type TokenProvider interface {
	AuthToken(ctx context.Context) (string, error)
}

// SubjectProvider is implemented by token providers that know the signed in
// user. Cached responses are partitioned by subject when it is available and
// by token otherwise.
type SubjectProvider interface {
	Subject() string
}

// Client executes GraphQL operations against a single endpoint.
type Client struct {
	endpoint  string
	http      HTTPDoer
	tokens    TokenProvider
	cache     Store
	userAgent string
	logger    *slog.Logger
	tracer    tracer.Tracer
	metrics   *Metrics

	mu        sync.Mutex
	lastScope string
}

// Option configures the Client.
type Option func(*Client)

func WithHTTPClient(doer HTTPDoer) Option {
	return func(c *Client) {
		c.http = doer
	}
}

func WithTokenProvider(tp TokenProvider) Option {
	return func(c *Client) {
		c.tokens = tp
	}
}

// WithCache sets the response cache. Defaults to an unbounded in-memory store.
func WithCache(store Store) Option {
	return func(c *Client) {
		c.cache = store
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(c *Client) {
		c.tracer = t
	}
}

func WithMetrics(m *Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient creates a client for the GraphQL endpoint at url.
func NewClient(url string, opts ...Option) *Client {
	c := &Client{
		endpoint: url,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: defaultTimeout}
	}
	if c.cache == nil {
		c.cache = NewMemoryStore(0)
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	if c.tracer == nil {
		c.tracer = tracer.NewNoop()
	}
	return c
}

// Query executes a read. An empty policy means NetworkOnly. A cache-only miss
// returns a response without data rather than an error.
func (c *Client) Query(ctx context.Context, req Request, policy FetchPolicy) (*Response, error) {
	if policy == "" {
		policy = NetworkOnly
	}

	switch policy {
	case CacheOnly:
		key, err := c.scopedKey(ctx, req)
		if err != nil {
			return nil, err
		}
		data, err := c.cache.Get(ctx, key)
		if errors.Is(err, ErrCacheMiss) {
			c.metrics.recordCache(req.OperationName, false)
			return &Response{}, nil
		}
		if err != nil {
			return nil, &RequestError{Err: fmt.Errorf("read cache: %w", err)}
		}
		c.metrics.recordCache(req.OperationName, true)
		return &Response{Data: data}, nil

	case NetworkOnly:
		key, err := c.scopedKey(ctx, req)
		if err != nil {
			return nil, err
		}
		resp, err := c.do(ctx, req, policy)
		if err != nil {
			return nil, err
		}
		if len(resp.Errors) == 0 && resp.HasData() {
			if err := c.cache.Set(ctx, key, resp.Data); err != nil {
				c.logger.WarnContext(ctx, "failed to cache graphql response",
					"operation", req.OperationName,
					"error", err,
				)
			}
		}
		return resp, nil

	case NoCache:
		return c.do(ctx, req, policy)

	default:
		return nil, &RequestError{Err: fmt.Errorf("unsupported fetch policy %q", policy)}
	}
}

// Mutate executes a write. Mutations are never cached.
func (c *Client) Mutate(ctx context.Context, req Request) (*Response, error) {
	return c.do(ctx, req, NoCache)
}

// ClearStore drops the cached responses of the current user. Once signed out
// it clears the scope this client last used.
func (c *Client) ClearStore(ctx context.Context) error {
	scope, err := c.cacheScope(ctx)
	if err != nil {
		c.mu.Lock()
		scope = c.lastScope
		c.mu.Unlock()
	}
	if scope == "" {
		return nil
	}
	if err := c.cache.Clear(ctx, scope); err != nil {
		return fmt.Errorf("clear graphql cache: %w", err)
	}
	return nil
}

// cacheScope names the partition of the cache owned by the current user.
func (c *Client) cacheScope(ctx context.Context) (string, error) {
	if c.tokens == nil {
		return anonymousScope, nil
	}
	var scope string
	if sp, ok := c.tokens.(SubjectProvider); ok && sp.Subject() != "" {
		scope = scopeFor("sub:" + sp.Subject())
	} else {
		token, err := c.tokens.AuthToken(ctx)
		if err != nil {
			return "", err
		}
		scope = scopeFor("token:" + token)
	}
	c.mu.Lock()
	c.lastScope = scope
	c.mu.Unlock()
	return scope, nil
}

func (c *Client) scopedKey(ctx context.Context, req Request) (string, error) {
	scope, err := c.cacheScope(ctx)
	if err != nil {
		return "", &RequestError{Err: fmt.Errorf("resolve cache scope: %w", err)}
	}
	key, err := cacheKey(scope, req)
	if err != nil {
		return "", &RequestError{Err: err}
	}
	return key, nil
}

func (c *Client) do(ctx context.Context, req Request, policy FetchPolicy) (resp *Response, err error) {
	requestID := uuid.NewString()
	ctx, span := c.tracer.Start(ctx, tracer.SpanGraphQLRequest,
		tracer.String(tracer.AttrOperation, req.OperationName),
		tracer.String(tracer.AttrFetchPolicy, string(policy)),
		tracer.String(tracer.AttrRequestID, requestID),
	)
	start := time.Now()
	defer func() {
		c.metrics.observeRequest(req.OperationName, err, time.Since(start))
		span.End(err)
	}()

	body, err := json.Marshal(req)
	if err != nil {
		return nil, &RequestError{Err: fmt.Errorf("encode request: %w", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &RequestError{Err: fmt.Errorf("create request: %w", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(headerRequestID, requestID)
	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}
	if c.tokens != nil {
		token, err := c.tokens.AuthToken(ctx)
		if err != nil {
			return nil, &RequestError{Err: fmt.Errorf("obtain auth token: %w", err)}
		}
		httpReq.Header.Set("Authorization", token)
	}

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, &RequestError{Err: fmt.Errorf("execute request: %w", err)}
	}
	defer httpResp.Body.Close()
	span.SetAttributes(tracer.Int64(tracer.AttrStatusCode, int64(httpResp.StatusCode)))

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &RequestError{StatusCode: httpResp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}

	var decoded Response
	decodeErr := json.Unmarshal(raw, &decoded)

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		reqErr := &RequestError{
			StatusCode: httpResp.StatusCode,
			Err:        fmt.Errorf("unexpected status %d", httpResp.StatusCode),
		}
		if decodeErr == nil {
			reqErr.GraphQLErrors = decoded.Errors
		}
		c.logger.DebugContext(ctx, "graphql request rejected",
			"operation", req.OperationName,
			"request_id", requestID,
			"status", httpResp.StatusCode,
		)
		return nil, reqErr
	}
	if decodeErr != nil {
		return nil, &RequestError{StatusCode: httpResp.StatusCode, Err: fmt.Errorf("decode response: %w", decodeErr)}
	}
	return &decoded, nil
}
