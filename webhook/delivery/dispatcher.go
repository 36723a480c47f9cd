package delivery

import (
	"context"
	"errors"
	"sync"

	"github.com/marcelsud/issue-webhooks/webhook"
	"github.com/rs/zerolog"
)

/* Dispatcher runs each submitted event through a Deliverer in its own goroutine
 * Submit never blocks the caller and never reports the outcome
 */
type Dispatcher struct {
	deliverer webhook.Deliverer
	logger    zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// NewDispatcher creates a dispatcher; call Shutdown to release it
func NewDispatcher(deliverer webhook.Deliverer, logger zerolog.Logger) *Dispatcher {
	ctx, cancel := context.WithCancel(context.Background())
	return &Dispatcher{
		deliverer: deliverer,
		logger:    logger,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Submit starts delivery of event in the background
func (d *Dispatcher) Submit(event webhook.Event) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		d.logger.Warn().Str("event", event.Type).Str("resource_id", event.ResourceID).Msg("dispatcher closed, dropping event")
		return
	}
	d.wg.Add(1)
	d.mu.Unlock()

	go func() {
		defer d.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				d.logger.Error().Interface("panic", r).Msg("webhook delivery panicked")
			}
		}()

		err := d.deliverer.Deliver(d.ctx, event)
		switch {
		case err == nil:
		case errors.Is(err, ErrNotConfigured), errors.Is(err, context.Canceled):
			// already logged by the deliverer
		default:
			d.logger.Debug().Err(err).Msg("webhook delivery finished with error")
		}
	}()
}

// Shutdown stops accepting events, abandons pending backoff waits and waits
// for in-flight attempts to finish or for ctx to expire
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	d.cancel()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
