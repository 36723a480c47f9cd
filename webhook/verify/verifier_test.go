package verify_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/marcelsud/issue-webhooks/webhook/signature"
	"github.com/marcelsud/issue-webhooks/webhook/verify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	secret    = "s3cret"
	signedAt  = int64(1700000000)
	sampleRaw = `{"event":"issue.updated","issue_id":"abc123","new_status":"RESOLVED","updated_by":"alice@example.com"}`
)

func signedHeader(body string) string {
	return signature.Header{
		Timestamp: signedAt,
		HMAC:      signature.Sign([]byte(secret), signedAt, []byte(body)),
	}.String()
}

func clockAt(offset int64) func() time.Time {
	return func() time.Time { return time.Unix(signedAt+offset, 0) }
}

type memoryCache struct {
	mu   sync.Mutex
	seen map[string]time.Duration
}

func (c *memoryCache) Remember(_ context.Context, key string, ttl time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.seen == nil {
		c.seen = map[string]time.Duration{}
	}
	if _, ok := c.seen[key]; ok {
		return false, nil
	}
	c.seen[key] = ttl
	return true, nil
}

type failingCache struct{}

func (failingCache) Remember(context.Context, string, time.Duration) (bool, error) {
	return false, errors.New("connection refused")
}

type countingObserver struct {
	reasons []string
}

func (o *countingObserver) ObserveVerification(reason string) {
	o.reasons = append(o.reasons, reason)
}

func newVerifier(t *testing.T, opts ...verify.Option) *verify.Verifier {
	t.Helper()
	v, err := verify.New(secret, opts...)
	require.NoError(t, err)
	return v
}

func TestNew(t *testing.T) {
	t.Run("error - empty secret", func(t *testing.T) {
		_, err := verify.New("")
		require.Error(t, err)
	})

	t.Run("error - negative tolerance", func(t *testing.T) {
		_, err := verify.New(secret, verify.WithTolerance(-time.Second))
		require.Error(t, err)
	})
}

func TestVerify(t *testing.T) {
	ctx := context.Background()

	t.Run("success - signed at the same second", func(t *testing.T) {
		v := newVerifier(t, verify.WithClock(clockAt(0)))
		assert.NoError(t, v.Verify(ctx, signedHeader(sampleRaw), []byte(sampleRaw)))
	})

	t.Run("success - window edges are inclusive", func(t *testing.T) {
		for _, offset := range []int64{300, -300} {
			v := newVerifier(t, verify.WithClock(clockAt(offset)))
			assert.NoError(t, v.Verify(ctx, signedHeader(sampleRaw), []byte(sampleRaw)), "offset %d", offset)
		}
	})

	t.Run("success - header keys in any order", func(t *testing.T) {
		v := newVerifier(t, verify.WithClock(clockAt(0)))
		hmac := signature.Sign([]byte(secret), signedAt, []byte(sampleRaw))
		assert.NoError(t, v.Verify(ctx, "hmac="+hmac+",t=1700000000", []byte(sampleRaw)))
	})

	t.Run("stale - one second past the window", func(t *testing.T) {
		for _, offset := range []int64{301, -301} {
			v := newVerifier(t, verify.WithClock(clockAt(offset)))
			err := v.Verify(ctx, signedHeader(sampleRaw), []byte(sampleRaw))
			assert.ErrorIs(t, err, verify.ErrStale)
			assert.Equal(t, http.StatusRequestTimeout, verify.StatusCode(err))
		}
	})

	t.Run("stale - checked before signature", func(t *testing.T) {
		v := newVerifier(t, verify.WithClock(clockAt(1000)))
		err := v.Verify(ctx, "t=1700000000,hmac=00", []byte(sampleRaw))
		assert.ErrorIs(t, err, verify.ErrStale)
	})

	t.Run("stale - custom tolerance", func(t *testing.T) {
		v := newVerifier(t, verify.WithClock(clockAt(11)), verify.WithTolerance(10*time.Second))
		assert.ErrorIs(t, v.Verify(ctx, signedHeader(sampleRaw), []byte(sampleRaw)), verify.ErrStale)
	})

	t.Run("forbidden - body tampered after signing", func(t *testing.T) {
		v := newVerifier(t, verify.WithClock(clockAt(0)))
		tampered := `{"event":"issue.updated","issue_id":"abc124","new_status":"RESOLVED","updated_by":"alice@example.com"}`
		err := v.Verify(ctx, signedHeader(sampleRaw), []byte(tampered))
		assert.ErrorIs(t, err, verify.ErrInvalidSignature)
		assert.Equal(t, http.StatusForbidden, verify.StatusCode(err))
	})

	t.Run("forbidden - reformatted body", func(t *testing.T) {
		v := newVerifier(t, verify.WithClock(clockAt(0)))
		reformatted := `{"event": "issue.updated", "issue_id": "abc123", "new_status": "RESOLVED", "updated_by": "alice@example.com"}`
		assert.ErrorIs(t, v.Verify(ctx, signedHeader(sampleRaw), []byte(reformatted)), verify.ErrInvalidSignature)
	})

	t.Run("forbidden - timestamp changed after signing", func(t *testing.T) {
		v := newVerifier(t, verify.WithClock(clockAt(0)))
		hmac := signature.Sign([]byte(secret), signedAt, []byte(sampleRaw))
		assert.ErrorIs(t, v.Verify(ctx, "t=1700000001,hmac="+hmac, []byte(sampleRaw)), verify.ErrInvalidSignature)
	})

	t.Run("forbidden - different secret", func(t *testing.T) {
		v, err := verify.New("other", verify.WithClock(clockAt(0)))
		require.NoError(t, err)
		assert.ErrorIs(t, v.Verify(ctx, signedHeader(sampleRaw), []byte(sampleRaw)), verify.ErrInvalidSignature)
	})

	t.Run("forbidden - hmac is not hex", func(t *testing.T) {
		v := newVerifier(t, verify.WithClock(clockAt(0)))
		assert.ErrorIs(t, v.Verify(ctx, "t=1700000000,hmac=zzzz", []byte(sampleRaw)), verify.ErrInvalidSignature)
	})

	t.Run("bad request - missing header", func(t *testing.T) {
		v := newVerifier(t, verify.WithClock(clockAt(0)))
		err := v.Verify(ctx, "", []byte(sampleRaw))
		assert.ErrorIs(t, err, verify.ErrMissingHeader)
		assert.Equal(t, http.StatusBadRequest, verify.StatusCode(err))
	})

	t.Run("bad request - malformed header", func(t *testing.T) {
		v := newVerifier(t, verify.WithClock(clockAt(0)))
		for _, header := range []string{
			"hmac=deadbeef",
			"t=1700000000",
			"t=abc,hmac=deadbeef",
			"garbage",
		} {
			err := v.Verify(ctx, header, []byte(sampleRaw))
			assert.ErrorIs(t, err, verify.ErrMalformedHeader, header)
			assert.Equal(t, http.StatusBadRequest, verify.StatusCode(err), header)
		}
	})

	t.Run("observer - sees every outcome", func(t *testing.T) {
		observer := &countingObserver{}
		v := newVerifier(t, verify.WithClock(clockAt(0)), verify.WithObserver(observer))

		_ = v.Verify(ctx, signedHeader(sampleRaw), []byte(sampleRaw))
		_ = v.Verify(ctx, "", nil)
		_ = v.Verify(ctx, "hmac=deadbeef", nil)

		assert.Equal(t, []string{"accepted", "missing_header", "malformed_header"}, observer.reasons)
	})
}

func TestVerify_Replay(t *testing.T) {
	ctx := context.Background()

	t.Run("conflict - same signature accepted once", func(t *testing.T) {
		cache := &memoryCache{}
		v := newVerifier(t, verify.WithClock(clockAt(0)), verify.WithReplayCache(cache))

		require.NoError(t, v.Verify(ctx, signedHeader(sampleRaw), []byte(sampleRaw)))

		err := v.Verify(ctx, signedHeader(sampleRaw), []byte(sampleRaw))
		assert.ErrorIs(t, err, verify.ErrReplayed)
		assert.Equal(t, http.StatusConflict, verify.StatusCode(err))

		for _, ttl := range cache.seen {
			assert.Equal(t, 600*time.Second, ttl)
		}
	})

	t.Run("conflict - not checked for invalid signatures", func(t *testing.T) {
		cache := &memoryCache{}
		v := newVerifier(t, verify.WithClock(clockAt(0)), verify.WithReplayCache(cache))

		assert.ErrorIs(t, v.Verify(ctx, "t=1700000000,hmac=deadbeef", []byte(sampleRaw)), verify.ErrInvalidSignature)
		assert.Empty(t, cache.seen)
	})

	t.Run("unavailable - cache error", func(t *testing.T) {
		v := newVerifier(t, verify.WithClock(clockAt(0)), verify.WithReplayCache(failingCache{}))

		err := v.Verify(ctx, signedHeader(sampleRaw), []byte(sampleRaw))
		assert.ErrorIs(t, err, verify.ErrReplayCheck)
		assert.Equal(t, http.StatusServiceUnavailable, verify.StatusCode(err))
	})
}

func TestReason(t *testing.T) {
	assert.Equal(t, "accepted", verify.Reason(nil))
	assert.Equal(t, "stale", verify.Reason(verify.ErrStale))
	assert.Equal(t, "error", verify.Reason(errors.New("x")))
	assert.Equal(t, http.StatusInternalServerError, verify.StatusCode(errors.New("x")))
}
