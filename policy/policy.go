package policy

import (
	"fmt"
	"time"

	"github.com/marcelsud/issue-webhooks/webhook/payload"
)

const (
	DefaultMaxAttempts    = 3
	DefaultBackoffBase    = 2 * time.Second
	DefaultRequestTimeout = 5 * time.Second

	// MaxAttemptsLimit bounds max_attempts
	MaxAttemptsLimit = 10
	// MaxBackoff caps any single wait between attempts
	MaxBackoff = 10 * time.Minute
)

/* Policy controls how the sender retries a delivery
 * Attempt n (1-based) that fails waits BackoffBase << (n-1) before the next
 * one, never more than MaxBackoff
 */
type Policy struct {
	MaxAttempts    int
	BackoffBase    time.Duration
	RequestTimeout time.Duration
	// EventTypes filters outgoing events; empty sends all
	EventTypes []string
}

// Default returns the built-in policy: 3 attempts, 2s then 4s, 5s per request
func Default() Policy {
	return Policy{
		MaxAttempts:    DefaultMaxAttempts,
		BackoffBase:    DefaultBackoffBase,
		RequestTimeout: DefaultRequestTimeout,
	}
}

// Validate checks if the policy is usable
func (p Policy) Validate() error {
	if p.MaxAttempts < 1 || p.MaxAttempts > MaxAttemptsLimit {
		return fmt.Errorf("max_attempts must be between 1 and %d (got %d)", MaxAttemptsLimit, p.MaxAttempts)
	}
	if p.BackoffBase < 0 || p.BackoffBase > MaxBackoff {
		return fmt.Errorf("backoff_base must be between 0 and %s (got %s)", MaxBackoff, p.BackoffBase)
	}
	if p.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive (got %s)", p.RequestTimeout)
	}
	for _, eventType := range p.EventTypes {
		if err := payload.ValidateEventType(eventType); err != nil {
			return fmt.Errorf("invalid event_type '%s': %w", eventType, err)
		}
	}
	return nil
}

// Backoff returns the wait after the given failed attempt
func (p Policy) Backoff(attempt int) time.Duration {
	if attempt < 1 || p.BackoffBase <= 0 {
		return 0
	}
	d := p.BackoffBase
	for n := 1; n < attempt; n++ {
		if d > MaxBackoff/2 {
			return MaxBackoff
		}
		d *= 2
	}
	return min(d, MaxBackoff)
}
