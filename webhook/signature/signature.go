package signature

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	// HeaderName carries the timestamped signature of a webhook request
	HeaderName = "X-Signature"

	timestampKey = "t"
	hmacKey      = "hmac"

	// MinSecretBytes is the minimum recommended secret size (192 bits)
	MinSecretBytes = 24

	// MaxSecretBytes is the maximum recommended secret size (512 bits)
	MaxSecretBytes = 64
)

// ErrMalformedHeader is returned when the signature header cannot be parsed
var ErrMalformedHeader = errors.New("malformed signature header")

// GenerateSecret creates a hex encoded random secret between MinSecretBytes
// and MaxSecretBytes in size.
func GenerateSecret(size int) (string, error) {
	if size < MinSecretBytes || size > MaxSecretBytes {
		return "", fmt.Errorf("secret size must be between %d and %d bytes", MinSecretBytes, MaxSecretBytes)
	}

	bytes := make([]byte, size)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("generating random bytes: %w", err)
	}

	return hex.EncodeToString(bytes), nil
}

/* Header is the parsed form of X-Signature: t=<unix-seconds>,hmac=<hex>
 * Uses value semantics as it represents data
 */
type Header struct {
	Timestamp int64
	HMAC      string
}

// String returns the header value in the format: t=<timestamp>,hmac=<hex>
func (h Header) String() string {
	return fmt.Sprintf("%s=%d,%s=%s", timestampKey, h.Timestamp, hmacKey, h.HMAC)
}

// ParseHeader parses comma separated key=value pairs in any order.
// Both t and hmac must appear exactly once; unknown keys are ignored.
func ParseHeader(value string) (Header, error) {
	if strings.TrimSpace(value) == "" {
		return Header{}, fmt.Errorf("%w: header is empty", ErrMalformedHeader)
	}

	var (
		h       Header
		hasTime bool
		hasHMAC bool
	)

	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		key, val, ok := strings.Cut(part, "=")
		if !ok {
			return Header{}, fmt.Errorf("%w: expected key=value, got '%s'", ErrMalformedHeader, part)
		}
		key = strings.TrimSpace(key)
		val = strings.TrimSpace(val)

		switch key {
		case timestampKey:
			if hasTime {
				return Header{}, fmt.Errorf("%w: duplicate %s", ErrMalformedHeader, timestampKey)
			}
			ts, err := parseTimestamp(val)
			if err != nil {
				return Header{}, err
			}
			h.Timestamp = ts
			hasTime = true
		case hmacKey:
			if hasHMAC {
				return Header{}, fmt.Errorf("%w: duplicate %s", ErrMalformedHeader, hmacKey)
			}
			if val == "" {
				return Header{}, fmt.Errorf("%w: empty %s", ErrMalformedHeader, hmacKey)
			}
			h.HMAC = val
			hasHMAC = true
		}
	}

	if !hasTime {
		return Header{}, fmt.Errorf("%w: missing %s", ErrMalformedHeader, timestampKey)
	}
	if !hasHMAC {
		return Header{}, fmt.Errorf("%w: missing %s", ErrMalformedHeader, hmacKey)
	}

	return h, nil
}

func parseTimestamp(val string) (int64, error) {
	if val == "" {
		return 0, fmt.Errorf("%w: empty %s", ErrMalformedHeader, timestampKey)
	}
	for _, c := range val {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("%w: %s must be digits", ErrMalformedHeader, timestampKey)
		}
	}
	ts, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s out of range", ErrMalformedHeader, timestampKey)
	}
	return ts, nil
}

// Sign returns the hex encoded HMAC-SHA256 of "{timestamp}.{body}".
// body must be the exact bytes that go on the wire.
func Sign(secret []byte, timestamp int64, body []byte) string {
	return hex.EncodeToString(compute(secret, timestamp, body))
}

// Verify recomputes the digest and compares it with the received hex
// signature in constant time. Undecodable hex or a length mismatch is
// reported as an invalid signature.
func Verify(secret []byte, timestamp int64, body []byte, signature string) bool {
	received, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}

	expected := compute(secret, timestamp, body)

	// Use constant-time comparison to prevent timing attacks
	return subtle.ConstantTimeCompare(expected, received) == 1
}

func compute(secret []byte, timestamp int64, body []byte) []byte {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(strconv.FormatInt(timestamp, 10)))
	mac.Write([]byte{'.'})
	mac.Write(body)
	return mac.Sum(nil)
}
