package verify

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/marcelsud/issue-webhooks/webhook/signature"
	"github.com/rs/zerolog"
)

// DefaultTolerance is the anti-replay window
const DefaultTolerance = 300 * time.Second

// ReplayCache remembers accepted signatures
type ReplayCache interface {
	// Remember records key for ttl and reports whether it was not already present
	Remember(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

// Observer is told the outcome of every verification
type Observer interface {
	ObserveVerification(reason string)
}

type nopObserver struct{}

func (nopObserver) ObserveVerification(string) {}

type Option func(v *Verifier)

func WithClock(now func() time.Time) Option {
	return func(v *Verifier) {
		v.now = now
	}
}

// WithTolerance sets the accepted clock distance, truncated to whole seconds
func WithTolerance(tolerance time.Duration) Option {
	return func(v *Verifier) {
		v.tolerance = tolerance
	}
}

// WithReplayCache rejects a signature seen again within twice the tolerance
func WithReplayCache(cache ReplayCache) Option {
	return func(v *Verifier) {
		v.replay = cache
	}
}

func WithObserver(observer Observer) Option {
	return func(v *Verifier) {
		v.observer = observer
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(v *Verifier) {
		v.logger = logger
	}
}

/* Verifier authenticates incoming webhook requests
 * Checks run in a fixed order and stop at the first failure: header present,
 * header parsed, timestamp fresh, signature valid, then the optional replay check
 */
type Verifier struct {
	secret    []byte
	tolerance time.Duration
	now       func() time.Time
	replay    ReplayCache
	observer  Observer
	logger    zerolog.Logger
}

// New creates a Verifier. An empty secret is a startup error.
func New(secret string, opts ...Option) (*Verifier, error) {
	if secret == "" {
		return nil, errors.New("webhook secret is required")
	}
	v := &Verifier{
		secret:    []byte(secret),
		tolerance: DefaultTolerance,
		now:       time.Now,
		observer:  nopObserver{},
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.tolerance < 0 {
		return nil, fmt.Errorf("tolerance cannot be negative: %s", v.tolerance)
	}
	return v, nil
}

// Verify checks headerValue against the raw request body
func (v *Verifier) Verify(ctx context.Context, headerValue string, body []byte) error {
	err := v.verify(ctx, headerValue, body)
	v.observer.ObserveVerification(Reason(err))
	if err != nil {
		v.logger.Warn().Str("reason", Reason(err)).Int("status", StatusCode(err)).Msg("webhook rejected")
	}
	return err
}

func (v *Verifier) verify(ctx context.Context, headerValue string, body []byte) error {
	if headerValue == "" {
		return ErrMissingHeader
	}

	header, err := signature.ParseHeader(headerValue)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedHeader, err)
	}

	if !v.fresh(header.Timestamp) {
		return ErrStale
	}

	if !signature.Verify(v.secret, header.Timestamp, body, header.HMAC) {
		return ErrInvalidSignature
	}

	if v.replay != nil {
		key := strconv.FormatInt(header.Timestamp, 10) + ":" + header.HMAC
		fresh, err := v.replay.Remember(ctx, key, 2*v.tolerance)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrReplayCheck, err)
		}
		if !fresh {
			return ErrReplayed
		}
	}

	return nil
}

// fresh reports whether ts is within tolerance of now, in either direction
func (v *Verifier) fresh(ts int64) bool {
	diff := v.now().Unix() - ts
	if diff < 0 {
		diff = -diff
	}
	return diff >= 0 && diff <= int64(v.tolerance/time.Second)
}
