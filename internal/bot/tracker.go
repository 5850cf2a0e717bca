package bot

import (
	"context"

	"github.com/teemow/prkeeper/internal/tracker"
)

// Tracker is the capability set the bots need from the issue tracker.
// tracker.Client satisfies it; tests substitute an in-memory fake.
type Tracker interface {
	PullRequest(ctx context.Context, number int) (*tracker.PullRequest, error)
	Issue(ctx context.Context, number int) (*tracker.Issue, error)
	OpenPullRequests(ctx context.Context) ([]*tracker.PullRequest, error)
	Reviews(ctx context.Context, number int) ([]tracker.Review, error)
	IssueComments(ctx context.Context, number int) ([]tracker.Comment, error)
	Commits(ctx context.Context, number int) ([]tracker.Commit, error)
	AddLabels(ctx context.Context, number int, labels ...string) error
	RemoveLabel(ctx context.Context, number int, label string) error
	AddAssignees(ctx context.Context, number int, assignees ...string) error
	RemoveAssignees(ctx context.Context, number int, assignees ...string) error
	CreateComment(ctx context.Context, number int, body string) error
	ClosePullRequest(ctx context.Context, number int) error
}

var _ Tracker = (*tracker.Client)(nil)
