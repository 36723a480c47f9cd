package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/marcelsud/issue-webhooks/issue"
)

// Repository keeps issues in a map; used when no database is configured
type Repository struct {
	mu     sync.RWMutex
	issues map[string]issue.Issue
	now    func() time.Time
}

func NewRepository() *Repository {
	return &Repository{
		issues: make(map[string]issue.Issue),
		now:    time.Now,
	}
}

func (r *Repository) Select(ctx context.Context, id string) (issue.Issue, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.issues[id]
	if !ok {
		return issue.Issue{}, issue.ErrNotFound
	}
	return i, nil
}

// List returns matching issues, newest first
func (r *Repository) List(ctx context.Context, filter issue.Filter) ([]issue.Issue, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	issues := []issue.Issue{}
	for _, i := range r.issues {
		if filter.Matches(i) {
			issues = append(issues, i)
		}
	}
	sort.Slice(issues, func(a, b int) bool {
		return issues[a].CreatedAt.After(issues[b].CreatedAt)
	})
	return issues, nil
}

func (r *Repository) Insert(ctx context.Context, i issue.Issue) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.issues[i.ID]; exists {
		return fmt.Errorf("issue %s already exists", i.ID)
	}
	r.issues[i.ID] = i
	return nil
}

func (r *Repository) UpdateStatus(ctx context.Context, id string, status issue.Status, updatedBy string) (issue.Issue, error) {
	return r.update(id, func(i *issue.Issue) {
		i.Status = status
		i.UpdatedBy = updatedBy
	})
}

func (r *Repository) Assign(ctx context.Context, id string, assignee string, updatedBy string) (issue.Issue, error) {
	return r.update(id, func(i *issue.Issue) {
		i.Assignee = assignee
		i.UpdatedBy = updatedBy
	})
}

func (r *Repository) update(id string, change func(i *issue.Issue)) (issue.Issue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.issues[id]
	if !ok {
		return issue.Issue{}, issue.ErrNotFound
	}
	change(&i)
	i.UpdatedAt = r.now().UTC()
	r.issues[id] = i
	return i, nil
}

func (r *Repository) Close(ctx context.Context) error {
	return nil
}
