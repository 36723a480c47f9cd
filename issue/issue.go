package issue

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrNotFound = errors.New("issue not found")
	ErrInvalid  = errors.New("invalid issue")
)

// Issue is a support ticket; no json tags, the HTTP layer has its own DTOs
type Issue struct {
	ID          string
	Title       string
	Description string
	Category    string
	Status      Status
	Priority    Priority
	// Assignee is who works the issue; empty until assigned
	Assignee    string
	UpdatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks the fields a caller provides when opening an issue
func (i Issue) Validate() error {
	if len(strings.TrimSpace(i.Title)) < 3 {
		return fmt.Errorf("%w: title must be at least 3 characters long", ErrInvalid)
	}
	if len(strings.TrimSpace(i.Description)) < 10 {
		return fmt.Errorf("%w: description must be at least 10 characters", ErrInvalid)
	}
	if len(strings.TrimSpace(i.Category)) < 3 {
		return fmt.Errorf("%w: category is required", ErrInvalid)
	}
	if err := i.Priority.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// Filter narrows a listing; zero fields match everything
type Filter struct {
	Status   Status
	Priority Priority
	// Search matches title or description, case-insensitively
	Search string
}

func (f Filter) Validate() error {
	if f.Status != "" {
		if err := f.Status.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalid, err)
		}
	}
	if f.Priority != "" {
		if err := f.Priority.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalid, err)
		}
	}
	return nil
}

// Matches reports whether i passes the filter
func (f Filter) Matches(i Issue) bool {
	if f.Status != "" && i.Status != f.Status {
		return false
	}
	if f.Priority != "" && i.Priority != f.Priority {
		return false
	}
	if f.Search == "" {
		return true
	}
	search := strings.ToLower(f.Search)
	return strings.Contains(strings.ToLower(i.Title), search) ||
		strings.Contains(strings.ToLower(i.Description), search)
}
