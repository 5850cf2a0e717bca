package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/teemow/prkeeper/internal/config"
	"github.com/teemow/prkeeper/internal/event"
	"github.com/teemow/prkeeper/internal/instrumentation"
	"github.com/teemow/prkeeper/internal/issueref"
	"github.com/teemow/prkeeper/internal/logging"
	"github.com/teemow/prkeeper/internal/tracker"
)

// Activity reacts to issue_comment events on stale pull requests: when the
// author follows up, the stale label is cleared and unclaimed linked issues
// are handed back to them.
type Activity struct {
	tracker Tracker
	cfg     config.Config
	log     *slog.Logger
	metrics *instrumentation.Metrics
}

// NewActivity creates the activity bot. logger may be nil; metrics may be nil.
func NewActivity(t Tracker, cfg config.Config, logger *slog.Logger, metrics *instrumentation.Metrics) *Activity {
	if logger == nil {
		logger = slog.Default()
	}
	return &Activity{
		tracker: t,
		cfg:     cfg,
		log:     logging.WithBot(logger, "activity"),
		metrics: metrics,
	}
}

// Run handles one event. It reports whether contributor activity was acted
// on. Unsupported event types and missing payload data are fatal
// preconditions and returned as errors.
func (b *Activity) Run(ctx context.Context, payload *event.Payload) (bool, error) {
	b.log.Info("starting", logging.Event(b.cfg.EventName))

	if b.cfg.EventName != event.IssueComment {
		b.log.Info("event type not supported", logging.Event(b.cfg.EventName), logging.Status(logging.StatusSkipped))
		return false, fmt.Errorf("unsupported event type %q", b.cfg.EventName)
	}

	return b.HandleContributorActivity(ctx, payload)
}

// HandleContributorActivity processes a comment on a stale pull request by
// its author: the stale label is removed, linked issues with no assignee are
// assigned to the commenter, and an encouragement comment is posted.
// Comments from other users and non-stale pull requests are skipped.
func (b *Activity) HandleContributorActivity(ctx context.Context, payload *event.Payload) (bool, error) {
	if payload == nil {
		return false, errors.New("no event payload available")
	}

	prNumber := payload.IssueNumber()
	commenter := payload.Commenter()
	if prNumber == 0 || commenter == "" {
		return false, errors.New("event payload is missing comment data")
	}

	log := b.log.With(logging.Pull(prNumber), logging.Actor(commenter))

	pr, err := b.tracker.PullRequest(ctx, prNumber)
	if err != nil {
		return false, fmt.Errorf("failed to get pull request #%d: %w", prNumber, err)
	}

	if commenter != pr.Author {
		log.Info("comment not from pull request author, skipping", logging.Status(logging.StatusSkipped))
		return false, nil
	}
	if !pr.HasLabel(b.cfg.StaleLabel) {
		log.Info("pull request is not stale, skipping", logging.Status(logging.StatusSkipped))
		return false, nil
	}

	if err := b.tracker.RemoveLabel(ctx, prNumber, b.cfg.StaleLabel); err != nil {
		// The author is active again either way; keep going
		log.Warn("failed to remove stale label", logging.Err(err))
	} else {
		log.Info("removed stale label")
	}

	reassigned := 0
	for _, issueNumber := range issueref.Extract(pr.Body) {
		issue, err := b.tracker.Issue(ctx, issueNumber)
		if err != nil {
			if tracker.IsNotFound(err) {
				log.Warn("linked issue not found", logging.Issue(issueNumber))
			} else {
				log.Error("failed to get linked issue", logging.Issue(issueNumber), logging.Err(err))
			}
			continue
		}

		if issue.IsPullRequest {
			continue
		}
		// Stricter than the reopen bot: only entirely unclaimed issues are
		// handed back here
		if len(issue.Assignees) > 0 {
			continue
		}

		if err := b.tracker.AddAssignees(ctx, issueNumber, commenter); err != nil {
			log.Error("failed to assign issue", logging.Issue(issueNumber), logging.Err(err))
			continue
		}
		reassigned++
		b.metrics.RecordIssueReassigned(ctx, "activity")
		log.Info("reassigned issue", logging.Issue(issueNumber))
	}

	if err := b.tracker.CreateComment(ctx, prNumber, encouragementMessage(commenter)); err != nil {
		log.Error("failed to post encouragement comment", logging.Err(err))
	}

	log.Info("contributor activity handled", slog.Int("reassigned_issues", reassigned))
	return true, nil
}
