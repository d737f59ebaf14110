package adapters

import (
	"context"
	"testing"
	"time"
)

func TestRateLimiter(t *testing.T) {
	limiter := NewRateLimiter(2, 10) // 2 per minute, 10 per day
	ctx := context.Background()

	if err := limiter.Wait(ctx); err != nil {
		t.Errorf("first request failed: %v", err)
	}
	if err := limiter.Wait(ctx); err != nil {
		t.Errorf("second request failed: %v", err)
	}

	minuteUsed, dayUsed, _, _ := limiter.GetStatus()
	if minuteUsed != 2 {
		t.Errorf("expected 2 requests per minute used, got %d", minuteUsed)
	}
	if dayUsed != 2 {
		t.Errorf("expected 2 requests per day used, got %d", dayUsed)
	}

	// Third request should be rate limited (would wait); bound the wait
	// with a short-lived context instead of actually waiting a minute.
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 100*time.Millisecond)
	defer cancel()

	if err := limiter.Wait(ctxWithTimeout); err == nil {
		t.Error("expected rate limit to trigger a wait")
	}
}

func TestRateLimiter_ResetClearsCounters(t *testing.T) {
	limiter := NewRateLimiter(1, 10)
	ctx := context.Background()

	if err := limiter.Wait(ctx); err != nil {
		t.Fatalf("first request failed: %v", err)
	}
	if limiter.CanMakeRequest() {
		t.Fatal("expected minute quota to be exhausted")
	}

	limiter.Reset()
	if !limiter.CanMakeRequest() {
		t.Fatal("expected quota to be available after Reset")
	}
}
