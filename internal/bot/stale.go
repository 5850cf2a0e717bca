package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/teemow/prkeeper/internal/config"
	"github.com/teemow/prkeeper/internal/instrumentation"
	"github.com/teemow/prkeeper/internal/issueref"
	"github.com/teemow/prkeeper/internal/logging"
	"github.com/teemow/prkeeper/internal/tracker"
)

// Stale scans all open pull requests on a schedule and applies a three-tier
// inactivity policy after a changes-requested review: remind the author,
// then unassign linked issues and mark the pull request stale, then close it.
type Stale struct {
	tracker Tracker
	cfg     config.Config
	log     *slog.Logger
	metrics *instrumentation.Metrics

	// now is the clock, replaceable in tests.
	now func() time.Time
}

// NewStale creates the stale bot. logger may be nil; metrics may be nil.
func NewStale(t Tracker, cfg config.Config, logger *slog.Logger, metrics *instrumentation.Metrics) *Stale {
	if logger == nil {
		logger = slog.Default()
	}
	return &Stale{
		tracker: t,
		cfg:     cfg,
		log:     logging.WithBot(logger, "stale"),
		metrics: metrics,
		now:     time.Now,
	}
}

// Run processes every open pull request once and returns how many were acted
// on. Per-pull-request failures are logged and do not stop the batch.
func (b *Stale) Run(ctx context.Context) (int, error) {
	pulls, err := b.tracker.OpenPullRequests(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list open pull requests: %w", err)
	}
	b.log.Info("scanning open pull requests", slog.Int("count", len(pulls)))

	processed := 0
	for i, pr := range pulls {
		if i > 0 && b.cfg.ProcessDelay > 0 {
			// Keeps a large batch inside API rate limits
			time.Sleep(b.cfg.ProcessDelay)
		}

		acted, err := b.processPullRequest(ctx, pr)
		if err != nil {
			b.log.Error("failed to process pull request", logging.Pull(pr.Number), logging.Err(err))
			continue
		}
		if acted {
			processed++
		}
	}

	b.log.Info("stale scan complete", slog.Int("processed", processed))
	return processed, nil
}

// processPullRequest applies the highest-severity tier the pull request's
// inactivity has reached. Pull requests with no changes-requested review are
// still awaiting review and never considered stale.
func (b *Stale) processPullRequest(ctx context.Context, pr *tracker.PullRequest) (bool, error) {
	reviews, err := b.tracker.Reviews(ctx, pr.Number)
	if err != nil {
		return false, err
	}
	changesRequestedAt, ok := lastChangesRequested(reviews)
	if !ok {
		return false, nil
	}

	comments, err := b.tracker.IssueComments(ctx, pr.Number)
	if err != nil {
		return false, err
	}
	commits, err := b.tracker.Commits(ctx, pr.Number)
	if err != nil {
		return false, err
	}

	reference := lastAuthorActivity(pr.Author, changesRequestedAt, commits, comments)
	daysInactive := int(b.now().UTC().Sub(reference).Hours() / 24)
	b.log.Info("pull request inactivity",
		logging.Pull(pr.Number),
		logging.Actor(pr.Author),
		slog.Int("days_inactive", daysInactive))

	switch {
	case daysInactive >= b.cfg.CloseDays:
		// No idempotency guard here: closing is idempotent at the state
		// level, and closed pull requests drop out of the next scan
		return true, b.closePullRequest(ctx, pr, daysInactive)

	case daysInactive >= b.cfg.UnassignDays:
		if hasBotComment(comments, markerStale) || hasBotComment(comments, markerUnassigned) {
			return false, nil
		}
		return true, b.markStale(ctx, pr, daysInactive)

	case daysInactive >= b.cfg.WarningDays:
		if hasBotComment(comments, markerReminder) || hasBotComment(comments, markerStaleWarning) {
			return false, nil
		}
		return true, b.sendWarning(ctx, pr, daysInactive)
	}

	return false, nil
}

// sendWarning posts the reminder comment for the warn tier.
func (b *Stale) sendWarning(ctx context.Context, pr *tracker.PullRequest, daysInactive int) error {
	message := warningMessage(pr.Author, daysInactive, b.cfg.UnassignDays-daysInactive)
	if err := b.tracker.CreateComment(ctx, pr.Number, message); err != nil {
		return err
	}
	b.metrics.RecordStaleWarning(ctx)
	b.log.Info("sent stale warning", logging.Pull(pr.Number), slog.Int("days_inactive", daysInactive))
	return nil
}

// markStale posts the unassign notice, releases linked issues and applies
// the stale label.
func (b *Stale) markStale(ctx context.Context, pr *tracker.PullRequest, daysInactive int) error {
	message := staleMessage(pr.Author, daysInactive, b.cfg.CloseDays-daysInactive)
	if err := b.tracker.CreateComment(ctx, pr.Number, message); err != nil {
		return err
	}

	unassigned := b.unassignLinkedIssues(ctx, pr)

	if err := b.tracker.AddLabels(ctx, pr.Number, b.cfg.StaleLabel); err != nil {
		// The notice and unassignment stand on their own
		b.log.Warn("failed to add stale label", logging.Pull(pr.Number), logging.Err(err))
	}

	b.metrics.RecordPullMarkedStale(ctx)
	b.log.Info("marked pull request stale",
		logging.Pull(pr.Number),
		slog.Int("days_inactive", daysInactive),
		slog.Int("unassigned_issues", unassigned))
	return nil
}

// closePullRequest posts the closing message, closes the pull request and
// releases linked issues.
func (b *Stale) closePullRequest(ctx context.Context, pr *tracker.PullRequest, daysInactive int) error {
	if err := b.tracker.CreateComment(ctx, pr.Number, closeMessage(pr.Author, daysInactive)); err != nil {
		return err
	}
	if err := b.tracker.ClosePullRequest(ctx, pr.Number); err != nil {
		return err
	}

	unassigned := b.unassignLinkedIssues(ctx, pr)

	b.metrics.RecordPullClosed(ctx)
	b.log.Info("closed pull request",
		logging.Pull(pr.Number),
		slog.Int("days_inactive", daysInactive),
		slog.Int("unassigned_issues", unassigned))
	return nil
}

// unassignLinkedIssues removes the author from every linked issue they are
// assigned to and returns the count. Per-issue failures are logged and
// skipped.
func (b *Stale) unassignLinkedIssues(ctx context.Context, pr *tracker.PullRequest) int {
	count := 0
	for _, issueNumber := range issueref.Extract(pr.Body) {
		issue, err := b.tracker.Issue(ctx, issueNumber)
		if err != nil {
			b.log.Error("failed to get linked issue", logging.Issue(issueNumber), logging.Err(err))
			continue
		}
		if issue.IsPullRequest || !issue.HasAssignee(pr.Author) {
			continue
		}

		if err := b.tracker.RemoveAssignees(ctx, issueNumber, pr.Author); err != nil {
			b.log.Error("failed to unassign issue", logging.Issue(issueNumber), logging.Err(err))
			continue
		}
		count++
		b.metrics.RecordIssueUnassigned(ctx)
		b.log.Info("unassigned issue", logging.Issue(issueNumber), logging.Actor(pr.Author))
	}
	return count
}

// lastChangesRequested returns the submission time of the most recent
// changes-requested review, if any.
func lastChangesRequested(reviews []tracker.Review) (time.Time, bool) {
	var latest time.Time
	found := false
	for _, review := range reviews {
		if review.State != tracker.ReviewChangesRequested {
			continue
		}
		if !found || review.SubmittedAt.After(latest) {
			latest = review.SubmittedAt
			found = true
		}
	}
	return latest, found
}

// lastAuthorActivity returns the author's most recent commit or comment
// after since, falling back to since itself when the author has been silent.
func lastAuthorActivity(author string, since time.Time, commits []tracker.Commit, comments []tracker.Comment) time.Time {
	reference := since
	for _, commit := range commits {
		if commit.Author == author && commit.AuthoredAt.After(reference) {
			reference = commit.AuthoredAt
		}
	}
	for _, comment := range comments {
		if comment.Author == author && comment.CreatedAt.After(reference) {
			reference = comment.CreatedAt
		}
	}
	return reference
}

// hasBotComment reports whether a bot-authored comment contains marker,
// case-insensitively.
func hasBotComment(comments []tracker.Comment, marker string) bool {
	marker = strings.ToLower(marker)
	for _, comment := range comments {
		if comment.AuthorIsBot && strings.Contains(strings.ToLower(comment.Body), marker) {
			return true
		}
	}
	return false
}
