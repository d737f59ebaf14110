package adapters

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// zapAdapter satisfies Logger by forwarding to a *zap.Logger, so the rate
// limiter and circuit breaker below can be driven by whatever logger the
// caller already runs.
type zapAdapter struct{ l *zap.Logger }

func (z zapAdapter) Debug(msg string, kv ...interface{}) { z.l.Sugar().Debugw(msg, kv...) }
func (z zapAdapter) Info(msg string, kv ...interface{})  { z.l.Sugar().Infow(msg, kv...) }
func (z zapAdapter) Warn(msg string, kv ...interface{})  { z.l.Sugar().Warnw(msg, kv...) }
func (z zapAdapter) Error(msg string, kv ...interface{}) { z.l.Sugar().Errorw(msg, kv...) }

// HTTPSchemaResolver fetches taxonomy documents directly over HTTP,
// rate-limited and circuit-broken against a flaky or throttling upstream.
type HTTPSchemaResolver struct {
	httpClient *http.Client
	limiter    *RateLimiter
	breaker    *CircuitBreaker
	userAgent  string
}

// NewHTTPSchemaResolver builds a resolver whose rate limiter allows 600
// requests per minute, SEC EDGAR's published 10 requests/second guidance
// averaged over a minute (requests inside a minute are not spread out, so a
// short burst can exceed 10 per second); userAgent must
// identify the requesting application and a contact per SEC's access
// policy.
func NewHTTPSchemaResolver(userAgent string, logger *zap.Logger) *HTTPSchemaResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	adapter := zapAdapter{l: logger}
	return &HTTPSchemaResolver{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    NewRateLimiterWithOptions(600, 100000, adapter, nil),
		breaker:    NewCircuitBreaker(5, 30*time.Second, adapter),
		userAgent:  userAgent,
	}
}

// Fetch implements taxonomy.SchemaResolver.
func (r *HTTPSchemaResolver) Fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	if err := r.breaker.Allow(); err != nil {
		return nil, fmt.Errorf("adapters: %w", err)
	}
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("adapters: rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		r.breaker.RecordFailure()
		return nil, fmt.Errorf("adapters: build request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.breaker.RecordFailure()
		return nil, fmt.Errorf("adapters: fetch %s: %w", url, err)
	}
	if resp.StatusCode >= 400 {
		r.breaker.RecordFailure()
		resp.Body.Close()
		return nil, fmt.Errorf("adapters: fetch %s: status %d", url, resp.StatusCode)
	}

	r.breaker.RecordSuccess()
	return resp.Body, nil
}
