package webhook

import (
	"context"
	"errors"
)

/* Small, focused interfaces following "The Go Way"
 * Interfaces abstract behavior, not things
 */

var (
	ErrMissingSecret = errors.New("webhook secret is not configured")
	ErrMissingURL    = errors.New("webhook url is not configured")
)

// Notifier is the single entry point used by the rest of the system.
// Notify never blocks on delivery and never reports its result.
type Notifier interface {
	Notify(event Event)
}

// Submitter hands an event to background delivery
type Submitter interface {
	Submit(event Event)
}

// Deliverer performs a complete delivery, retries included
type Deliverer interface {
	/* Deliver blocks until the event is delivered, attempts are exhausted
	 * or ctx is cancelled
	 */
	Deliver(ctx context.Context, event Event) error
}

// Handler consumes verified events on the receiving side
type Handler interface {
	Handle(ctx context.Context, event Event) error
}

// Observer is notified about attempts and final outcomes, typically for metrics
type Observer interface {
	ObserveAttempt(attempt Attempt)
	ObserveOutcome(status Status)
}

/* Destination is the process-wide, read-only sender configuration
 * The secret must be byte-identical to the receiver's
 */
type Destination struct {
	URL    string
	Secret string
}

// Validate reports missing configuration; no retry can fix it
func (d Destination) Validate() error {
	if d.Secret == "" {
		return ErrMissingSecret
	}
	if d.URL == "" {
		return ErrMissingURL
	}
	return nil
}

type nopObserver struct{}

func (nopObserver) ObserveAttempt(Attempt) {}
func (nopObserver) ObserveOutcome(Status)  {}

// NopObserver discards all observations
func NopObserver() Observer {
	return nopObserver{}
}
