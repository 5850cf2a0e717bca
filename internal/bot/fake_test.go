package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/teemow/prkeeper/internal/tracker"
)

// fakeTracker is an in-memory Tracker. Mutations update the stored state so
// a second bot run observes the first run's effects, and injected errors
// simulate API failures per operation.
type fakeTracker struct {
	pulls    map[int]*tracker.PullRequest
	issues   map[int]*tracker.Issue
	reviews  map[int][]tracker.Review
	comments map[int][]tracker.Comment
	commits  map[int][]tracker.Commit

	// errs holds injected failures keyed by "operation" or "operation:number".
	errs map[string]error

	// recorded side effects
	createdComments map[int][]string
	closedPulls     []int
	addedAssignees  map[int][]string
	removedAssigned map[int][]string
}

func newFakeTracker() *fakeTracker {
	return &fakeTracker{
		pulls:           make(map[int]*tracker.PullRequest),
		issues:          make(map[int]*tracker.Issue),
		reviews:         make(map[int][]tracker.Review),
		comments:        make(map[int][]tracker.Comment),
		commits:         make(map[int][]tracker.Commit),
		errs:            make(map[string]error),
		createdComments: make(map[int][]string),
		addedAssignees:  make(map[int][]string),
		removedAssigned: make(map[int][]string),
	}
}

func (f *fakeTracker) failWith(op string, number int, err error) {
	f.errs[fmt.Sprintf("%s:%d", op, number)] = err
}

func (f *fakeTracker) injected(op string, number int) error {
	if err, ok := f.errs[fmt.Sprintf("%s:%d", op, number)]; ok {
		return err
	}
	return f.errs[op]
}

func (f *fakeTracker) PullRequest(_ context.Context, number int) (*tracker.PullRequest, error) {
	if err := f.injected("pull", number); err != nil {
		return nil, err
	}
	pr, ok := f.pulls[number]
	if !ok {
		return nil, fmt.Errorf("pull request #%d: %w", number, tracker.ErrNotFound)
	}
	return pr, nil
}

func (f *fakeTracker) Issue(_ context.Context, number int) (*tracker.Issue, error) {
	if err := f.injected("issue", number); err != nil {
		return nil, err
	}
	issue, ok := f.issues[number]
	if !ok {
		return nil, fmt.Errorf("issue #%d: %w", number, tracker.ErrNotFound)
	}
	return issue, nil
}

func (f *fakeTracker) OpenPullRequests(_ context.Context) ([]*tracker.PullRequest, error) {
	if err := f.injected("open_pulls", 0); err != nil {
		return nil, err
	}
	var open []*tracker.PullRequest
	// Deterministic order for tests
	for number := 0; number < 1000; number++ {
		if pr, ok := f.pulls[number]; ok && pr.State == "open" {
			open = append(open, pr)
		}
	}
	return open, nil
}

func (f *fakeTracker) Reviews(_ context.Context, number int) ([]tracker.Review, error) {
	if err := f.injected("reviews", number); err != nil {
		return nil, err
	}
	return f.reviews[number], nil
}

func (f *fakeTracker) IssueComments(_ context.Context, number int) ([]tracker.Comment, error) {
	if err := f.injected("comments", number); err != nil {
		return nil, err
	}
	return f.comments[number], nil
}

func (f *fakeTracker) Commits(_ context.Context, number int) ([]tracker.Commit, error) {
	if err := f.injected("commits", number); err != nil {
		return nil, err
	}
	return f.commits[number], nil
}

func (f *fakeTracker) AddLabels(_ context.Context, number int, labels ...string) error {
	if err := f.injected("add_labels", number); err != nil {
		return err
	}
	if pr, ok := f.pulls[number]; ok {
		pr.Labels = append(pr.Labels, labels...)
	}
	return nil
}

func (f *fakeTracker) RemoveLabel(_ context.Context, number int, label string) error {
	if err := f.injected("remove_label", number); err != nil {
		return err
	}
	pr, ok := f.pulls[number]
	if !ok {
		return fmt.Errorf("pull request #%d: %w", number, tracker.ErrNotFound)
	}
	kept := pr.Labels[:0]
	for _, l := range pr.Labels {
		if l != label {
			kept = append(kept, l)
		}
	}
	pr.Labels = kept
	return nil
}

func (f *fakeTracker) AddAssignees(_ context.Context, number int, assignees ...string) error {
	if err := f.injected("add_assignees", number); err != nil {
		return err
	}
	if issue, ok := f.issues[number]; ok {
		issue.Assignees = append(issue.Assignees, assignees...)
	}
	f.addedAssignees[number] = append(f.addedAssignees[number], assignees...)
	return nil
}

func (f *fakeTracker) RemoveAssignees(_ context.Context, number int, assignees ...string) error {
	if err := f.injected("remove_assignees", number); err != nil {
		return err
	}
	if issue, ok := f.issues[number]; ok {
		for _, login := range assignees {
			kept := issue.Assignees[:0]
			for _, a := range issue.Assignees {
				if a != login {
					kept = append(kept, a)
				}
			}
			issue.Assignees = kept
		}
	}
	f.removedAssigned[number] = append(f.removedAssigned[number], assignees...)
	return nil
}

func (f *fakeTracker) CreateComment(_ context.Context, number int, body string) error {
	if err := f.injected("create_comment", number); err != nil {
		return err
	}
	f.createdComments[number] = append(f.createdComments[number], body)
	// The bots post through the Actions token, so their comments come back
	// from the API as bot-authored
	f.comments[number] = append(f.comments[number], tracker.Comment{
		Author:      "prkeeper[bot]",
		AuthorIsBot: true,
		Body:        body,
		CreatedAt:   time.Now().UTC(),
	})
	return nil
}

func (f *fakeTracker) ClosePullRequest(_ context.Context, number int) error {
	if err := f.injected("close_pull", number); err != nil {
		return err
	}
	if pr, ok := f.pulls[number]; ok {
		pr.State = "closed"
	}
	f.closedPulls = append(f.closedPulls, number)
	return nil
}

var _ Tracker = (*fakeTracker)(nil)
