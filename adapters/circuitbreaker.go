package adapters

import (
	"errors"
	"sync"
	"time"
)

// CircuitState is the state of a CircuitBreaker.
type CircuitState int

const (
	// StateClosed allows requests to pass through.
	StateClosed CircuitState = iota
	// StateOpen blocks all requests.
	StateOpen
	// StateHalfOpen allows a limited number of requests for testing.
	StateHalfOpen
)

// CircuitBreaker protects a schema resolver against cascading failures when
// the SEC's EDGAR host is unreachable or erroring, so a batch run stops
// hammering it instead of retrying every filing's taxonomy fetch.
type CircuitBreaker struct {
	mu              sync.RWMutex
	state           CircuitState
	failureCount    int
	successCount    int
	lastFailureTime time.Time

	maxFailures      int
	resetTimeout     time.Duration
	halfOpenRequests int

	logger Logger
}

// NewCircuitBreaker creates a circuit breaker that opens after maxFailures
// consecutive failures and attempts recovery after resetTimeout.
func NewCircuitBreaker(maxFailures int, resetTimeout time.Duration, logger Logger) *CircuitBreaker {
	if logger == nil {
		logger = &defaultLogger{}
	}
	return &CircuitBreaker{
		state:            StateClosed,
		maxFailures:      maxFailures,
		resetTimeout:     resetTimeout,
		halfOpenRequests: 1,
		logger:           logger,
	}
}

// Allow reports whether a request may proceed given the breaker's state.
func (cb *CircuitBreaker) Allow() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	now := time.Now()

	switch cb.state {
	case StateClosed:
		return nil

	case StateOpen:
		if now.Sub(cb.lastFailureTime) > cb.resetTimeout {
			cb.state = StateHalfOpen
			cb.successCount = 0
			cb.failureCount = 0
			cb.logger.Info("circuit breaker transitioning to half-open")
			return nil
		}
		return errors.New("circuit breaker is open")

	case StateHalfOpen:
		if cb.successCount+cb.failureCount < cb.halfOpenRequests {
			return nil
		}
		return errors.New("circuit breaker is half-open, limited requests only")

	default:
		return nil
	}
}

// RecordSuccess records a successful request.
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateHalfOpen:
		cb.successCount++
		if cb.successCount >= cb.halfOpenRequests {
			cb.state = StateClosed
			cb.failureCount = 0
			cb.logger.Info("circuit breaker closed after successful recovery")
		}

	case StateClosed:
		cb.failureCount = 0
	}
}

// RecordFailure records a failed request.
func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failureCount++
	cb.lastFailureTime = time.Now()

	switch cb.state {
	case StateClosed:
		if cb.failureCount >= cb.maxFailures {
			cb.state = StateOpen
			cb.logger.Warn("circuit breaker opened", "failures", cb.failureCount)
		}

	case StateHalfOpen:
		cb.state = StateOpen
		cb.logger.Warn("circuit breaker reopened from half-open state")
	}
}

// GetState returns the current state of the circuit breaker.
func (cb *CircuitBreaker) GetState() CircuitState {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return cb.state
}

// Reset manually resets the circuit breaker to closed.
func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.state = StateClosed
	cb.failureCount = 0
	cb.successCount = 0
	cb.logger.Info("circuit breaker manually reset")
}
