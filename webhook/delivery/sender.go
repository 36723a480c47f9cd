package delivery

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"
	"github.com/marcelsud/issue-webhooks/policy"
	"github.com/marcelsud/issue-webhooks/webhook"
	"github.com/marcelsud/issue-webhooks/webhook/signature"
	"github.com/rs/zerolog"
)

// DeliveryIDHeader carries a per-event id, identical across retries
const DeliveryIDHeader = "X-Delivery-ID"

// maxDrainBytes bounds how much of a response body is read before closing
const maxDrainBytes = 64 << 10

// ErrNotConfigured is returned when the secret or the URL is missing
var ErrNotConfigured = errors.New("webhook delivery is not configured")

// StatusError reports a non-2xx response from the destination
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d", e.StatusCode)
}

type Option func(s *Sender)

// WithClock overrides the time source used for signing timestamps
func WithClock(now func() time.Time) Option {
	return func(s *Sender) {
		s.now = now
	}
}

// WithTimer overrides how backoff waits are performed
func WithTimer(timer retry.Timer) Option {
	return func(s *Sender) {
		s.timer = timer
	}
}

func WithObserver(observer webhook.Observer) Option {
	return func(s *Sender) {
		s.observer = observer
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(s *Sender) {
		s.logger = logger
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(s *Sender) {
		s.client = client
	}
}

/* Sender signs and POSTs events to a single destination, retrying failures
 * The body is serialized once per event; every attempt signs it again with a
 * fresh timestamp
 */
type Sender struct {
	destination webhook.Destination
	policy      policy.Policy
	client      *http.Client
	now         func() time.Time
	timer       retry.Timer
	observer    webhook.Observer
	logger      zerolog.Logger
}

// NewSender creates a sender for destination using the given retry policy
func NewSender(destination webhook.Destination, p policy.Policy, opts ...Option) *Sender {
	s := &Sender{
		destination: destination,
		policy:      p,
		client:      &http.Client{},
		now:         time.Now,
		observer:    webhook.NopObserver(),
		logger:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Deliver sends event, retrying per policy. It blocks until the event is
// delivered, all attempts failed or ctx is cancelled during a backoff wait;
// the last case is recorded as Abandoned, not Failed.
func (s *Sender) Deliver(ctx context.Context, event webhook.Event) error {
	if err := s.destination.Validate(); err != nil {
		s.logger.Warn().Err(err).Str("event", event.Type).Msg("webhook not configured, skipping delivery")
		s.observer.ObserveOutcome(webhook.Skipped)
		return fmt.Errorf("%w: %w", ErrNotConfigured, err)
	}

	body, err := event.Bytes()
	if err != nil {
		s.observer.ObserveOutcome(webhook.Failed)
		return fmt.Errorf("encoding event: %w", err)
	}

	deliveryID := uuid.NewString()
	logger := s.logger.With().
		Str("delivery_id", deliveryID).
		Str("event", event.Type).
		Str("resource_id", event.ResourceID).
		Logger()

	// attempt is the number of the attempt in progress, or the one that just failed
	attempt := 0
	opts := []retry.Option{
		retry.Attempts(uint(s.policy.MaxAttempts)),
		retry.DelayType(func(uint, error, *retry.Config) time.Duration {
			return s.policy.Backoff(attempt)
		}),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
	}
	if s.timer != nil {
		opts = append(opts, retry.WithTimer(s.timer))
	}

	err = retry.Do(func() error {
		attempt++
		logger.Info().Int("attempt", attempt).Str("url", s.destination.URL).Msg("sending webhook")

		sendErr := s.send(ctx, deliveryID, body)
		s.record(logger, event, deliveryID, attempt, sendErr)
		return sendErr
	}, opts...)

	if ctxErr := ctx.Err(); err != nil && ctxErr != nil && errors.Is(err, ctxErr) {
		logger.Warn().Err(err).Int("attempts", attempt).Msg("webhook delivery abandoned")
		s.observer.ObserveOutcome(webhook.Abandoned)
		return fmt.Errorf("delivering webhook %s: %w", deliveryID, err)
	}
	if err != nil {
		logger.Error().Err(err).Int("attempts", attempt).Msg("all retry attempts failed")
		s.observer.ObserveOutcome(webhook.Failed)
		return fmt.Errorf("delivering webhook %s: %w", deliveryID, err)
	}

	logger.Info().Int("attempts", attempt).Msg("webhook delivered")
	s.observer.ObserveOutcome(webhook.Delivered)
	return nil
}

func (s *Sender) record(logger zerolog.Logger, event webhook.Event, deliveryID string, number int, err error) {
	a := webhook.Attempt{
		DeliveryID: deliveryID,
		Event:      event,
		Number:     number,
		Status:     webhook.Delivered,
		Err:        err,
	}
	if err != nil {
		a.Status = webhook.Failed
		if number < s.policy.MaxAttempts && retry.IsRecoverable(err) {
			a.Status = webhook.Retrying
			a.Delay = s.policy.Backoff(number)
		}
		logger.Warn().Err(err).Int("attempt", number).Dur("retry_in", a.Delay).Msg("webhook attempt failed")
	}
	s.observer.ObserveAttempt(a)
}

// send performs a single signed POST. In-flight requests are bounded by the
// request timeout only; cancelling ctx never aborts them.
func (s *Sender) send(ctx context.Context, deliveryID string, body []byte) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.policy.RequestTimeout)
	defer cancel()

	envelope := webhook.Seal(s.destination.Secret, s.now(), body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.destination.URL, bytes.NewReader(body))
	if err != nil {
		return retry.Unrecoverable(fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(signature.HeaderName, envelope.Header())
	req.Header.Set(DeliveryIDHeader, deliveryID)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrainBytes))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{StatusCode: resp.StatusCode}
	}
	return nil
}
