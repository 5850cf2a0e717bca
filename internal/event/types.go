package event

// Event types the bots respond to, as named by GITHUB_EVENT_NAME.
const (
	PullRequestTarget = "pull_request_target"
	IssueComment      = "issue_comment"
)

// User identifies the GitHub account behind a pull request or comment.
type User struct {
	Login string `json:"login"`
}

// PullRequest is the pull request branch of a webhook payload.
type PullRequest struct {
	Number int    `json:"number"`
	User   User   `json:"user"`
	Body   string `json:"body"`
}

// Issue is the issue branch of a webhook payload. For issue_comment events
// on pull requests, the issue number is the pull request number.
type Issue struct {
	Number int  `json:"number"`
	User   User `json:"user"`
}

// Comment is the comment branch of an issue_comment payload.
type Comment struct {
	User User   `json:"user"`
	Body string `json:"body"`
}

// Payload is the subset of a GitHub event payload the bots read.
// Branches that are absent from the event JSON stay nil.
type Payload struct {
	Action      string       `json:"action"`
	PullRequest *PullRequest `json:"pull_request,omitempty"`
	Issue       *Issue       `json:"issue,omitempty"`
	Comment     *Comment     `json:"comment,omitempty"`
}

// PullRequestNumber returns the pull request number, or 0 if the payload
// has no pull_request branch.
func (p *Payload) PullRequestNumber() int {
	if p == nil || p.PullRequest == nil {
		return 0
	}
	return p.PullRequest.Number
}

// PullRequestAuthor returns the pull request author's login, or "" if the
// payload has no pull_request branch.
func (p *Payload) PullRequestAuthor() string {
	if p == nil || p.PullRequest == nil {
		return ""
	}
	return p.PullRequest.User.Login
}

// PullRequestBody returns the pull request body, or "" if the payload has
// no pull_request branch.
func (p *Payload) PullRequestBody() string {
	if p == nil || p.PullRequest == nil {
		return ""
	}
	return p.PullRequest.Body
}

// IssueNumber returns the issue number, or 0 if the payload has no issue
// branch.
func (p *Payload) IssueNumber() int {
	if p == nil || p.Issue == nil {
		return 0
	}
	return p.Issue.Number
}

// Commenter returns the comment author's login, or "" if the payload has
// no comment branch.
func (p *Payload) Commenter() string {
	if p == nil || p.Comment == nil {
		return ""
	}
	return p.Comment.User.Login
}
