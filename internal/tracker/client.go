package tracker

import (
	"context"
	"fmt"
	"time"

	"github.com/google/go-github/v72/github"
	"golang.org/x/oauth2"

	"github.com/teemow/prkeeper/internal/instrumentation"
)

// Client is a GitHub-backed issue tracker client bound to a single
// repository. All methods map API 404s to ErrNotFound and wrap other
// failures with context.
type Client struct {
	gh      *github.Client
	owner   string
	repo    string
	metrics *instrumentation.Metrics
}

// NewClient creates a Client for owner/repo authenticating with token.
// The metrics recorder may be nil.
func NewClient(ctx context.Context, token, owner, repo string, metrics *instrumentation.Metrics) *Client {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := oauth2.NewClient(ctx, src)

	return &Client{
		gh:      github.NewClient(httpClient),
		owner:   owner,
		repo:    repo,
		metrics: metrics,
	}
}

// Repository returns the owner/name slug this client is bound to.
func (c *Client) Repository() string {
	return c.owner + "/" + c.repo
}

// observe records one API operation for metrics.
func (c *Client) observe(ctx context.Context, operation string, start time.Time, err error) {
	status := instrumentation.StatusFor(err)
	c.metrics.RecordTrackerOperation(ctx, operation, status, time.Since(start))
}

// wrap adds context to an API error, substituting ErrNotFound for 404s so
// callers can branch on a structured indicator.
func wrap(msg string, err error) error {
	if isNotFoundResponse(err) {
		return fmt.Errorf("%s: %w", msg, ErrNotFound)
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// PullRequest fetches a pull request by number.
func (c *Client) PullRequest(ctx context.Context, number int) (*PullRequest, error) {
	start := time.Now()
	pr, _, err := c.gh.PullRequests.Get(ctx, c.owner, c.repo, number)
	c.observe(ctx, "get_pull_request", start, err)
	if err != nil {
		return nil, wrap(fmt.Sprintf("failed to get pull request #%d", number), err)
	}
	return toPullRequest(pr), nil
}

// Issue fetches an issue by number.
func (c *Client) Issue(ctx context.Context, number int) (*Issue, error) {
	start := time.Now()
	issue, _, err := c.gh.Issues.Get(ctx, c.owner, c.repo, number)
	c.observe(ctx, "get_issue", start, err)
	if err != nil {
		return nil, wrap(fmt.Sprintf("failed to get issue #%d", number), err)
	}
	return toIssue(issue), nil
}

// OpenPullRequests lists every open pull request in the repository.
func (c *Client) OpenPullRequests(ctx context.Context) ([]*PullRequest, error) {
	opts := &github.PullRequestListOptions{
		State:       "open",
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var pulls []*PullRequest
	for {
		start := time.Now()
		page, resp, err := c.gh.PullRequests.List(ctx, c.owner, c.repo, opts)
		c.observe(ctx, "list_open_pull_requests", start, err)
		if err != nil {
			return nil, wrap("failed to list open pull requests", err)
		}
		for _, pr := range page {
			pulls = append(pulls, toPullRequest(pr))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return pulls, nil
}

// Reviews lists the reviews of a pull request.
func (c *Client) Reviews(ctx context.Context, number int) ([]Review, error) {
	start := time.Now()
	ghReviews, _, err := c.gh.PullRequests.ListReviews(ctx, c.owner, c.repo, number, &github.ListOptions{PerPage: 100})
	c.observe(ctx, "list_reviews", start, err)
	if err != nil {
		return nil, wrap(fmt.Sprintf("failed to list reviews for pull request #%d", number), err)
	}

	reviews := make([]Review, 0, len(ghReviews))
	for _, review := range ghReviews {
		reviews = append(reviews, toReview(review))
	}
	return reviews, nil
}

// IssueComments lists the issue comments of a pull request or issue.
func (c *Client) IssueComments(ctx context.Context, number int) ([]Comment, error) {
	start := time.Now()
	ghComments, _, err := c.gh.Issues.ListComments(ctx, c.owner, c.repo, number, &github.IssueListCommentsOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	})
	c.observe(ctx, "list_issue_comments", start, err)
	if err != nil {
		return nil, wrap(fmt.Sprintf("failed to list comments for #%d", number), err)
	}

	comments := make([]Comment, 0, len(ghComments))
	for _, comment := range ghComments {
		comments = append(comments, toComment(comment))
	}
	return comments, nil
}

// Commits lists the commits on a pull request branch.
func (c *Client) Commits(ctx context.Context, number int) ([]Commit, error) {
	start := time.Now()
	ghCommits, _, err := c.gh.PullRequests.ListCommits(ctx, c.owner, c.repo, number, &github.ListOptions{PerPage: 100})
	c.observe(ctx, "list_commits", start, err)
	if err != nil {
		return nil, wrap(fmt.Sprintf("failed to list commits for pull request #%d", number), err)
	}

	commits := make([]Commit, 0, len(ghCommits))
	for _, commit := range ghCommits {
		commits = append(commits, toCommit(commit))
	}
	return commits, nil
}

// AddLabels adds labels to a pull request or issue.
func (c *Client) AddLabels(ctx context.Context, number int, labels ...string) error {
	start := time.Now()
	_, _, err := c.gh.Issues.AddLabelsToIssue(ctx, c.owner, c.repo, number, labels)
	c.observe(ctx, "add_labels", start, err)
	if err != nil {
		return wrap(fmt.Sprintf("failed to add labels to #%d", number), err)
	}
	return nil
}

// RemoveLabel removes a label from a pull request or issue. Removing a label
// that is not present yields ErrNotFound.
func (c *Client) RemoveLabel(ctx context.Context, number int, label string) error {
	start := time.Now()
	_, err := c.gh.Issues.RemoveLabelForIssue(ctx, c.owner, c.repo, number, label)
	c.observe(ctx, "remove_label", start, err)
	if err != nil {
		return wrap(fmt.Sprintf("failed to remove label %q from #%d", label, number), err)
	}
	return nil
}

// AddAssignees assigns users to a pull request or issue.
func (c *Client) AddAssignees(ctx context.Context, number int, assignees ...string) error {
	start := time.Now()
	_, _, err := c.gh.Issues.AddAssignees(ctx, c.owner, c.repo, number, assignees)
	c.observe(ctx, "add_assignees", start, err)
	if err != nil {
		return wrap(fmt.Sprintf("failed to add assignees to #%d", number), err)
	}
	return nil
}

// RemoveAssignees unassigns users from a pull request or issue.
func (c *Client) RemoveAssignees(ctx context.Context, number int, assignees ...string) error {
	start := time.Now()
	_, _, err := c.gh.Issues.RemoveAssignees(ctx, c.owner, c.repo, number, assignees)
	c.observe(ctx, "remove_assignees", start, err)
	if err != nil {
		return wrap(fmt.Sprintf("failed to remove assignees from #%d", number), err)
	}
	return nil
}

// CreateComment posts a comment on a pull request or issue.
func (c *Client) CreateComment(ctx context.Context, number int, body string) error {
	start := time.Now()
	_, _, err := c.gh.Issues.CreateComment(ctx, c.owner, c.repo, number, &github.IssueComment{
		Body: github.Ptr(body),
	})
	c.observe(ctx, "create_comment", start, err)
	if err != nil {
		return wrap(fmt.Sprintf("failed to comment on #%d", number), err)
	}
	return nil
}

// ClosePullRequest changes a pull request's state to closed.
func (c *Client) ClosePullRequest(ctx context.Context, number int) error {
	start := time.Now()
	_, _, err := c.gh.PullRequests.Edit(ctx, c.owner, c.repo, number, &github.PullRequest{
		State: github.Ptr("closed"),
	})
	c.observe(ctx, "close_pull_request", start, err)
	if err != nil {
		return wrap(fmt.Sprintf("failed to close pull request #%d", number), err)
	}
	return nil
}
