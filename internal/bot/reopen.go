package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/teemow/prkeeper/internal/config"
	"github.com/teemow/prkeeper/internal/event"
	"github.com/teemow/prkeeper/internal/instrumentation"
	"github.com/teemow/prkeeper/internal/issueref"
	"github.com/teemow/prkeeper/internal/logging"
	"github.com/teemow/prkeeper/internal/tracker"
)

// Reopen reacts to pull_request_target "reopened" events: linked issues are
// handed back to the returning author and any stale label is cleared.
type Reopen struct {
	tracker Tracker
	cfg     config.Config
	log     *slog.Logger
	metrics *instrumentation.Metrics
}

// NewReopen creates the reopen bot. logger may be nil; metrics may be nil.
func NewReopen(t Tracker, cfg config.Config, logger *slog.Logger, metrics *instrumentation.Metrics) *Reopen {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reopen{
		tracker: t,
		cfg:     cfg,
		log:     logging.WithBot(logger, "reopen"),
		metrics: metrics,
	}
}

// Run handles one event. It reports whether at least one linked issue was
// reassigned. Unsupported event types and missing payload data are fatal
// preconditions and returned as errors.
func (b *Reopen) Run(ctx context.Context, payload *event.Payload) (bool, error) {
	b.log.Info("starting", logging.Event(b.cfg.EventName))

	if b.cfg.EventName != event.PullRequestTarget {
		b.log.Info("event type not supported", logging.Event(b.cfg.EventName), logging.Status(logging.StatusSkipped))
		return false, fmt.Errorf("unsupported event type %q", b.cfg.EventName)
	}

	return b.HandleReopen(ctx, payload)
}

// HandleReopen reassigns linked issues to the pull request author and
// removes the stale label.
func (b *Reopen) HandleReopen(ctx context.Context, payload *event.Payload) (bool, error) {
	if payload == nil {
		return false, errors.New("no event payload available")
	}

	prNumber := payload.PullRequestNumber()
	prAuthor := payload.PullRequestAuthor()
	if prNumber == 0 || prAuthor == "" {
		return false, errors.New("event payload is missing pull request number or author")
	}

	log := b.log.With(logging.Pull(prNumber), logging.Actor(prAuthor))
	log.Info("handling pull request reopen")

	reassigned := b.ReassignIssuesToAuthor(ctx, prNumber, prAuthor, payload.PullRequestBody())

	if _, err := b.RemoveStaleLabel(ctx, prNumber); err != nil {
		// Reassignment already happened; label cleanup failing is not fatal
		log.Error("failed to remove stale label", logging.Err(err))
	}

	log.Info("pull request reopen handled", slog.Int("reassigned_issues", len(reassigned)))
	return len(reassigned) > 0, nil
}

// ReassignIssuesToAuthor assigns each issue linked from body back to the
// author, skipping issues that are pull requests, missing, or assigned to
// someone else. It returns the reassigned issue numbers. Per-issue failures
// are logged and do not abort the remaining issues.
func (b *Reopen) ReassignIssuesToAuthor(ctx context.Context, prNumber int, prAuthor, prBody string) []int {
	linked := issueref.Extract(prBody)
	if len(linked) == 0 {
		b.log.Info("no linked issues found in pull request body", logging.Pull(prNumber))
		return nil
	}

	var reassigned []int
	for _, issueNumber := range linked {
		issue, err := b.tracker.Issue(ctx, issueNumber)
		if err != nil {
			if tracker.IsNotFound(err) {
				b.log.Warn("linked issue not found", logging.Issue(issueNumber))
			} else {
				b.log.Error("failed to get linked issue", logging.Issue(issueNumber), logging.Err(err))
			}
			continue
		}

		if issue.IsPullRequest {
			b.log.Info("linked reference is a pull request, skipping", logging.Issue(issueNumber))
			continue
		}
		if len(issue.Assignees) > 0 && !issue.HasAssignee(prAuthor) {
			b.log.Info("issue is assigned to others, skipping",
				logging.Issue(issueNumber),
				slog.String("assignees", strings.Join(issue.Assignees, ", ")))
			continue
		}
		if issue.HasAssignee(prAuthor) {
			continue
		}

		if err := b.tracker.AddAssignees(ctx, issueNumber, prAuthor); err != nil {
			b.log.Error("failed to assign issue", logging.Issue(issueNumber), logging.Err(err))
			continue
		}
		reassigned = append(reassigned, issueNumber)
		b.metrics.RecordIssueReassigned(ctx, "reopen")
		b.log.Info("reassigned issue", logging.Issue(issueNumber))

		if err := b.tracker.CreateComment(ctx, issueNumber, welcomeMessage(prAuthor, prNumber)); err != nil {
			b.log.Error("failed to post welcome comment", logging.Issue(issueNumber), logging.Err(err))
		}
	}

	return reassigned
}

// RemoveStaleLabel removes the stale label from the pull request if present.
// It reports whether the label was removed.
func (b *Reopen) RemoveStaleLabel(ctx context.Context, prNumber int) (bool, error) {
	pr, err := b.tracker.PullRequest(ctx, prNumber)
	if err != nil {
		return false, fmt.Errorf("failed to get pull request #%d: %w", prNumber, err)
	}

	if !pr.HasLabel(b.cfg.StaleLabel) {
		b.log.Info("no stale label on pull request", logging.Pull(prNumber))
		return false, nil
	}

	if err := b.tracker.RemoveLabel(ctx, prNumber, b.cfg.StaleLabel); err != nil {
		return false, err
	}
	b.log.Info("removed stale label", logging.Pull(prNumber))
	return true, nil
}
