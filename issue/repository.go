package issue

import "context"

type Reader interface {
	Select(ctx context.Context, id string) (Issue, error)
	// List returns matching issues, newest first
	List(ctx context.Context, filter Filter) ([]Issue, error)
}

type Writer interface {
	Insert(ctx context.Context, issue Issue) error
	// UpdateStatus returns the issue as stored after the change
	UpdateStatus(ctx context.Context, id string, status Status, updatedBy string) (Issue, error)
	Assign(ctx context.Context, id string, assignee string, updatedBy string) (Issue, error)
}

type Repository interface {
	Reader
	Writer
	Close(ctx context.Context) error
}
