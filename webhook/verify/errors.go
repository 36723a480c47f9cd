package verify

import (
	"errors"
	"net/http"
)

var (
	ErrMissingHeader    = errors.New("missing signature header")
	ErrMalformedHeader  = errors.New("malformed signature header")
	ErrStale            = errors.New("timestamp outside tolerance window")
	ErrInvalidSignature = errors.New("invalid signature")
	ErrReplayed         = errors.New("signature already used")
	ErrReplayCheck      = errors.New("replay check unavailable")
	ErrInvalidPayload   = errors.New("invalid payload")
)

// StatusCode maps a verification error to the HTTP status returned to the sender
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrMissingHeader),
		errors.Is(err, ErrMalformedHeader),
		errors.Is(err, ErrInvalidPayload):
		return http.StatusBadRequest
	case errors.Is(err, ErrStale):
		return http.StatusRequestTimeout
	case errors.Is(err, ErrInvalidSignature):
		return http.StatusForbidden
	case errors.Is(err, ErrReplayed):
		return http.StatusConflict
	case errors.Is(err, ErrReplayCheck):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Reason returns a short, stable label for err, used in logs and metrics
func Reason(err error) string {
	switch {
	case err == nil:
		return "accepted"
	case errors.Is(err, ErrMissingHeader):
		return "missing_header"
	case errors.Is(err, ErrMalformedHeader):
		return "malformed_header"
	case errors.Is(err, ErrStale):
		return "stale"
	case errors.Is(err, ErrInvalidSignature):
		return "invalid_signature"
	case errors.Is(err, ErrReplayed):
		return "replayed"
	case errors.Is(err, ErrReplayCheck):
		return "replay_check_unavailable"
	case errors.Is(err, ErrInvalidPayload):
		return "invalid_payload"
	default:
		return "error"
	}
}
