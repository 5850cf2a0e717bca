package bot

import "fmt"

// Marker phrases scanned for in prior bot comments to keep the warn and
// unassign tiers idempotent. The warning text deliberately avoids the
// unassign markers so a reminder never blocks the next tier.
const (
	markerReminder     = "reminder"
	markerStaleWarning = "stale warning"
	markerStale        = "stale"
	markerUnassigned   = "unassigned"
)

func welcomeMessage(author string, prNumber int) string {
	return fmt.Sprintf("Welcome back, @%s! 🎉 This issue has been reassigned to you as you've reopened PR #%d.", author, prNumber)
}

func encouragementMessage(commenter string) string {
	return fmt.Sprintf("Thanks for following up, @%s! 🙌 This pull request is active again and the linked issue(s) have been reassigned to you. Looking forward to your updates!", commenter)
}

func warningMessage(author string, daysInactive, daysUntilUnassign int) string {
	return fmt.Sprintf(`Hi @%s 👋,

This is a friendly reminder that this pull request has had **no activity for %d days** since changes were requested.

We'd love to see this contribution merged! Please take a moment to:
- Address the review feedback
- Push your changes
- Let us know if you have any questions or need clarification

If you're busy or need more time, no worries! Just leave a comment to let us know you're still working on it.

**Note:** If there's no activity within **%d more days**, the linked issue will be released so other contributors can pick it up.

Thank you for your contribution! 🙏`, author, daysInactive, daysUntilUnassign)
}

func staleMessage(author string, daysInactive, daysUntilClose int) string {
	return fmt.Sprintf(`Hi @%s 👋,

This pull request has been marked as **stale** due to **%d days of inactivity** after changes were requested.

As a result, **the linked issue(s) have been unassigned** so other contributors can work on them.

However, **you can still continue working on this PR**! If you push new commits or respond to the review feedback:
- The issue will be reassigned to you
- Your contribution is still very welcome

If you need more time or have questions about the requested changes, please let us know. We're happy to help! 🤝

If there's no further activity within **%d more days**, this PR will be automatically closed (but can be reopened anytime).`, author, daysInactive, daysUntilClose)
}

func closeMessage(author string, daysInactive int) string {
	return fmt.Sprintf(`Hi @%s 👋,

This pull request has been automatically closed due to **%d days of inactivity** after changes were requested.

We understand that life gets busy, and we appreciate your initial contribution! 💙

**The door is always open** for you to come back:
- You can **reopen this PR** at any time if you'd like to continue working on it
- Feel free to push new commits addressing the requested changes
- If you reopen the PR, the linked issue will be reassigned to you

If you have any questions or need help, don't hesitate to reach out. We're here to support you!

Thank you for your interest in contributing! 🙏`, author, daysInactive)
}
