// Package bot implements the three pull request lifecycle bots.
//
// Reopen handles pull_request_target events: when a contributor reopens a
// pull request, linked issues that are free (or already theirs) are assigned
// back to them and the stale label is cleared.
//
// Activity handles issue_comment events: a comment by the author of a stale
// pull request clears the stale label, hands unclaimed linked issues back to
// them, and posts an encouragement comment.
//
// Stale runs on a schedule over all open pull requests. Inactivity is
// measured in whole days since the author's last commit or comment after the
// most recent changes-requested review. Three escalating tiers apply: a
// reminder comment, unassigning linked issues plus the stale label, and
// closing the pull request. The first two tiers stay idempotent by scanning
// prior bot comments for marker phrases; closing needs no guard because
// closed pull requests leave the open set.
//
// All bots talk to the issue tracker through the Tracker interface and
// follow the same error posture: failures on a single issue or pull request
// are logged and skipped, only broken preconditions abort a run.
package bot
