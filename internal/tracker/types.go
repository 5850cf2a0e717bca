package tracker

import (
	"strings"
	"time"

	"github.com/google/go-github/v72/github"
)

// Review states as reported by the GitHub API.
const (
	ReviewChangesRequested = "CHANGES_REQUESTED"
	ReviewApproved         = "APPROVED"
)

// PullRequest carries the fields of a pull request the bots read.
type PullRequest struct {
	Number  int
	Author  string
	Body    string
	State   string
	HeadSHA string
	Labels  []string
}

// HasLabel reports whether the pull request carries the named label.
func (pr *PullRequest) HasLabel(name string) bool {
	for _, label := range pr.Labels {
		if label == name {
			return true
		}
	}
	return false
}

// Issue carries the fields of an issue the bots read. GitHub's issues API
// also returns pull requests; IsPullRequest distinguishes them.
type Issue struct {
	Number        int
	Assignees     []string
	IsPullRequest bool
}

// HasAssignee reports whether login is among the issue's assignees.
func (i *Issue) HasAssignee(login string) bool {
	for _, assignee := range i.Assignees {
		if assignee == login {
			return true
		}
	}
	return false
}

// Review is a single pull request review.
type Review struct {
	State       string
	Author      string
	SubmittedAt time.Time
}

// Comment is a single issue comment on a pull request or issue.
type Comment struct {
	Author      string
	AuthorIsBot bool
	Body        string
	CreatedAt   time.Time
}

// Commit is a single commit on a pull request branch. Author is the GitHub
// login of the linked author account, empty when the commit email is not
// associated with any account.
type Commit struct {
	Author     string
	AuthoredAt time.Time
}

func toPullRequest(pr *github.PullRequest) *PullRequest {
	if pr == nil {
		return &PullRequest{}
	}

	labels := make([]string, 0, len(pr.Labels))
	for _, label := range pr.Labels {
		labels = append(labels, label.GetName())
	}

	return &PullRequest{
		Number:  pr.GetNumber(),
		Author:  pr.GetUser().GetLogin(),
		Body:    pr.GetBody(),
		State:   pr.GetState(),
		HeadSHA: pr.GetHead().GetSHA(),
		Labels:  labels,
	}
}

func toIssue(issue *github.Issue) *Issue {
	if issue == nil {
		return &Issue{}
	}

	assignees := make([]string, 0, len(issue.Assignees))
	for _, assignee := range issue.Assignees {
		assignees = append(assignees, assignee.GetLogin())
	}

	return &Issue{
		Number:        issue.GetNumber(),
		Assignees:     assignees,
		IsPullRequest: issue.IsPullRequest(),
	}
}

func toReview(review *github.PullRequestReview) Review {
	if review == nil {
		return Review{}
	}

	return Review{
		State:       strings.ToUpper(review.GetState()),
		Author:      review.GetUser().GetLogin(),
		SubmittedAt: review.GetSubmittedAt().Time,
	}
}

func toComment(comment *github.IssueComment) Comment {
	if comment == nil {
		return Comment{}
	}

	return Comment{
		Author:      comment.GetUser().GetLogin(),
		AuthorIsBot: comment.GetUser().GetType() == "Bot",
		Body:        comment.GetBody(),
		CreatedAt:   comment.GetCreatedAt().Time,
	}
}

func toCommit(commit *github.RepositoryCommit) Commit {
	if commit == nil {
		return Commit{}
	}

	return Commit{
		Author:     commit.GetAuthor().GetLogin(),
		AuthoredAt: commit.GetCommit().GetAuthor().GetDate().Time,
	}
}
