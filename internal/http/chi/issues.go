package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/marcelsud/issue-webhooks/issue"
)

/* HTTP layer DTOs for the issue API
 * Separate from domain entities to avoid leaking internal structure
 */

// ActorHeader identifies the user making a change
const ActorHeader = "X-User-Email"

type issueRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Priority    string `json:"priority"`
}

type statusRequest struct {
	Status string `json:"status"`
}

type assignRequest struct {
	Assignee string `json:"assignee"`
}

type issueResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	Assignee    string    `json:"assignee,omitempty"`
	UpdatedBy   string    `json:"updated_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newIssueResponse(i issue.Issue) issueResponse {
	return issueResponse{
		ID:          i.ID,
		Title:       i.Title,
		Description: i.Description,
		Category:    i.Category,
		Status:      i.Status.String(),
		Priority:    i.Priority.String(),
		Assignee:    i.Assignee,
		UpdatedBy:   i.UpdatedBy,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}

func writeIssue(w http.ResponseWriter, status int, i issue.Issue) {
	writeJSON(w, status, newIssueResponse(i))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, issue.ErrInvalid):
		return http.StatusBadRequest
	case errors.Is(err, issue.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// postIssue handles POST /v1/issues
func postIssue(issueService issue.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var ir issueRequest
		if err := json.NewDecoder(r.Body).Decode(&ir); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		i, err := issueService.Create(r.Context(), ir.Title, ir.Description, ir.Category, issue.Priority(ir.Priority), r.Header.Get(ActorHeader))
		if err != nil {
			http.Error(w, err.Error(), errorStatus(err))
			return
		}

		writeIssue(w, http.StatusCreated, i)
	})
}

// listIssues handles GET /v1/issues?status=&priority=&search=
func listIssues(issueService issue.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		filter := issue.Filter{
			Status:   issue.Status(q.Get("status")),
			Priority: issue.Priority(q.Get("priority")),
			Search:   q.Get("search"),
		}

		issues, err := issueService.List(r.Context(), filter)
		if err != nil {
			http.Error(w, err.Error(), errorStatus(err))
			return
		}

		result := make([]issueResponse, 0, len(issues))
		for _, i := range issues {
			result = append(result, newIssueResponse(i))
		}
		writeJSON(w, http.StatusOK, result)
	})
}

// getIssue handles GET /v1/issues/{id}
func getIssue(issueService issue.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		i, err := issueService.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, err.Error(), errorStatus(err))
			return
		}

		writeIssue(w, http.StatusOK, i)
	})
}

// putIssueStatus handles PUT /v1/issues/{id}/status. The response never
// depends on webhook delivery.
func putIssueStatus(issueService issue.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sr statusRequest
		if err := json.NewDecoder(r.Body).Decode(&sr); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		i, err := issueService.UpdateStatus(r.Context(), chi.URLParam(r, "id"), issue.Status(sr.Status), r.Header.Get(ActorHeader))
		if err != nil {
			http.Error(w, err.Error(), errorStatus(err))
			return
		}

		writeIssue(w, http.StatusOK, i)
	})
}

// putIssueAssignee handles PUT /v1/issues/{id}/assign
func putIssueAssignee(issueService issue.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var ar assignRequest
		if err := json.NewDecoder(r.Body).Decode(&ar); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		i, err := issueService.Assign(r.Context(), chi.URLParam(r, "id"), ar.Assignee, r.Header.Get(ActorHeader))
		if err != nil {
			http.Error(w, err.Error(), errorStatus(err))
			return
		}

		writeIssue(w, http.StatusOK, i)
	})
}
