package issue

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/marcelsud/issue-webhooks/webhook"
)

type UseCase interface {
	Create(ctx context.Context, title, description, category string, priority Priority, author string) (Issue, error)
	Get(ctx context.Context, id string) (Issue, error)
	List(ctx context.Context, filter Filter) ([]Issue, error)
	UpdateStatus(ctx context.Context, id string, status Status, actor string) (Issue, error)
	Assign(ctx context.Context, id string, assignee string, actor string) (Issue, error)
}

type Service struct {
	Repo     Repository
	Notifier webhook.Notifier
	now      func() time.Time
}

func NewService(repo Repository, notifier webhook.Notifier) *Service {
	return &Service{
		Repo:     repo,
		Notifier: notifier,
		now:      time.Now,
	}
}

func (s *Service) Create(ctx context.Context, title, description, category string, priority Priority, author string) (Issue, error) {
	now := s.now().UTC()
	i := Issue{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Category:    category,
		Status:      Open,
		Priority:    priority,
		UpdatedBy:   actorOrSystem(author),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := i.Validate(); err != nil {
		return Issue{}, err
	}
	if err := s.Repo.Insert(ctx, i); err != nil {
		return Issue{}, fmt.Errorf("inserting issue: %w", err)
	}
	return i, nil
}

func (s *Service) Get(ctx context.Context, id string) (Issue, error) {
	i, err := s.Repo.Select(ctx, id)
	if err != nil {
		return Issue{}, fmt.Errorf("selecting issue: %w", err)
	}
	return i, nil
}

func (s *Service) List(ctx context.Context, filter Filter) ([]Issue, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	issues, err := s.Repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing issues: %w", err)
	}
	return issues, nil
}

// UpdateStatus stores the new status and then emits issue.updated.
// The notification is fire-and-forget; its outcome never changes the result.
func (s *Service) UpdateStatus(ctx context.Context, id string, status Status, actor string) (Issue, error) {
	if err := status.Validate(); err != nil {
		return Issue{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	actor = actorOrSystem(actor)
	i, err := s.Repo.UpdateStatus(ctx, id, status, actor)
	if err != nil {
		return Issue{}, fmt.Errorf("updating issue status: %w", err)
	}

	if s.Notifier != nil {
		s.Notifier.Notify(webhook.Event{
			Type:       webhook.IssueUpdated,
			ResourceID: i.ID,
			NewState:   i.Status.String(),
			Actor:      actor,
		})
	}
	return i, nil
}

// Assign hands the issue to assignee. Only status changes emit webhooks.
func (s *Service) Assign(ctx context.Context, id string, assignee string, actor string) (Issue, error) {
	assignee = strings.TrimSpace(assignee)
	if assignee == "" {
		return Issue{}, fmt.Errorf("%w: assignee is required", ErrInvalid)
	}

	i, err := s.Repo.Assign(ctx, id, assignee, actorOrSystem(actor))
	if err != nil {
		return Issue{}, fmt.Errorf("assigning issue: %w", err)
	}
	return i, nil
}

func actorOrSystem(actor string) string {
	if actor == "" {
		return webhook.SystemActor
	}
	return actor
}
