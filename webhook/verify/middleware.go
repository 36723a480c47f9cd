package verify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/marcelsud/issue-webhooks/webhook/signature"
)

// DefaultMaxBodyBytes bounds the request body read before verification
const DefaultMaxBodyBytes int64 = 1 << 20

type contextKey struct{}

// RawBody returns the verified request body captured by Middleware
func RawBody(ctx context.Context) ([]byte, bool) {
	body, ok := ctx.Value(contextKey{}).([]byte)
	return body, ok
}

/* Middleware reads the request body as raw bytes before any decoding and
 * verifies it. Rejected requests never reach next. Accepted requests carry the
 * raw bytes in their context and get a fresh copy as r.Body.
 */
func Middleware(v *Verifier, maxBodyBytes int64) func(http.Handler) http.Handler {
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
			if err != nil {
				var tooLarge *http.MaxBytesError
				if errors.As(err, &tooLarge) {
					WriteError(w, http.StatusRequestEntityTooLarge, "payload_too_large")
					return
				}
				WriteError(w, http.StatusBadRequest, "unreadable_body")
				return
			}

			if err := v.Verify(r.Context(), r.Header.Get(signature.HeaderName), body); err != nil {
				WriteError(w, StatusCode(err), Reason(err))
				return
			}

			r.Body = io.NopCloser(bytes.NewReader(body))
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), contextKey{}, body)))
		})
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// WriteError writes a JSON error body with the given status
func WriteError(w http.ResponseWriter, status int, reason string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: reason})
}
