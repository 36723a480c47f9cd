package chi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog"
	"github.com/marcelsud/issue-webhooks/webhook"
	"github.com/marcelsud/issue-webhooks/webhook/verify"
)

type receivedResponse struct {
	Status string `json:"status"`
}

// ListenerHandlers sets up the webhook receiver routes. POST /webhook only
// reaches the handler after the verifier accepted the raw request body.
func ListenerHandlers(ctx context.Context, verifier *verify.Verifier, handler webhook.Handler, metricsHandler http.Handler) *chi.Mux {
	logger := httplog.NewLogger("webhook-listener", httplog.Options{
		JSON: true,
	})

	r := chi.NewRouter()
	r.Use(httplog.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("Webhook Listener is running!"))
	})
	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	r.With(verify.Middleware(verifier, verify.DefaultMaxBodyBytes)).
		Method(http.MethodPost, "/webhook", postWebhook(handler))

	return r
}

// postWebhook handles POST /webhook after verification
func postWebhook(handler webhook.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := verify.RawBody(r.Context())
		if !ok {
			verify.WriteError(w, http.StatusInternalServerError, "unverified")
			return
		}

		event, err := webhook.ParseEvent(raw)
		if err != nil {
			logger := httplog.LogEntry(r.Context())
			logger.Warn().Err(err).Msg("verified webhook has invalid payload")
			verify.WriteError(w, verify.StatusCode(verify.ErrInvalidPayload), verify.Reason(verify.ErrInvalidPayload))
			return
		}

		if err := handler.Handle(r.Context(), event); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(receivedResponse{Status: "received"}); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}
