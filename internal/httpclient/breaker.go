package httpclient

import (
	"errors"
	"sync"
	"time"
)

// ── Connectivity breaker ──────────────────────────────────────────────────────
// Circuit breaker over backend reachability (Closed → Open → Half-Open).
// Stops a burst of screens from hammering an unreachable server: after
// enough consecutive transport failures the client fast-fails without
// touching the network until a probe gets through. Only connectivity
// failures count — 401s and other HTTP responses prove the server is
// reachable and reset the breaker.

// ErrBackendUnavailable is returned without network I/O while the
// breaker is open.
var ErrBackendUnavailable = errors.New("backend unavailable (circuit open)")

type breakerState int

const (
	breakerClosed   breakerState = iota // normal — requests flow
	breakerOpen                         // tripped — fast-fail
	breakerHalfOpen                     // probing — one request allowed
)

// BreakerConfig holds tunable parameters.
type BreakerConfig struct {
	FailureThreshold int           // consecutive transport failures to trip open
	OpenTimeout      time.Duration // how long to stay open before probing
}

// DefaultBreakerConfig returns defaults sized for an interactive client.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{FailureThreshold: 4, OpenTimeout: 15 * time.Second}
}

// Breaker implements the pattern with thread-safe state transitions.
type Breaker struct {
	mu               sync.Mutex
	state            breakerState
	failureCount     int
	probing          bool
	lastFailureTime  time.Time
	failureThreshold int
	openTimeout      time.Duration
}

func NewBreaker(cfg BreakerConfig) *Breaker {
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = 4
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 15 * time.Second
	}
	return &Breaker{
		state:            breakerClosed,
		failureThreshold: cfg.FailureThreshold,
		openTimeout:      cfg.OpenTimeout,
	}
}

// Allow reports whether a request may go out. While half-open, only
// one probe request is admitted at a time.
func (b *Breaker) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Auto-transition open → half-open once the timeout elapsed
	if b.state == breakerOpen && time.Since(b.lastFailureTime) >= b.openTimeout {
		b.state = breakerHalfOpen
		b.probing = false
	}

	switch b.state {
	case breakerClosed:
		return true
	case breakerHalfOpen:
		if b.probing {
			return false
		}
		b.probing = true
		return true
	default:
		return false
	}
}

// OnSuccess records that the backend answered (any HTTP status).
func (b *Breaker) OnSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = breakerClosed
	b.failureCount = 0
	b.probing = false
}

// OnFailure records a transport-level failure.
func (b *Breaker) OnFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastFailureTime = time.Now()

	switch b.state {
	case breakerClosed:
		b.failureCount++
		if b.failureCount >= b.failureThreshold {
			b.state = breakerOpen
		}
	case breakerHalfOpen:
		// Probe failed — back to open
		b.state = breakerOpen
		b.probing = false
		b.failureCount = 0
	}
}
