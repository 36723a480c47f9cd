package chi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog"
	"github.com/marcelsud/issue-webhooks/issue"
)

// Handlers sets up the issue tracker API routes
func Handlers(ctx context.Context, issueService issue.UseCase, metricsHandler http.Handler) *chi.Mux {
	logger := httplog.NewLogger("issue-api", httplog.Options{
		JSON: true,
	})

	r := chi.NewRouter()
	r.Use(httplog.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", health)
	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	r.Route("/v1/issues", func(r chi.Router) {
		r.Method(http.MethodPost, "/", postIssue(issueService))
		r.Method(http.MethodGet, "/", listIssues(issueService))
		r.Method(http.MethodGet, "/{id}", getIssue(issueService))
		r.Method(http.MethodPut, "/{id}/status", putIssueStatus(issueService))
		r.Method(http.MethodPut, "/{id}/assign", putIssueAssignee(issueService))
	})

	return r
}

func health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"healthy"}`))
}
