package bot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/prkeeper/internal/tracker"
)

var staleNow = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

func newStaleBot(fake *fakeTracker) *Stale {
	bot := NewStale(fake, testConfig(""), nil, nil)
	bot.now = func() time.Time { return staleNow }
	return bot
}

// addStalePull sets up an open pull request whose last changes-requested
// review is daysAgo days in the past, with a linked issue assigned to the
// author.
func addStalePull(fake *fakeTracker, number int, daysAgo int) {
	fake.pulls[number] = &tracker.PullRequest{
		Number: number,
		Author: "alice",
		Body:   "fixes #12",
		State:  "open",
	}
	fake.reviews[number] = []tracker.Review{
		{State: tracker.ReviewChangesRequested, Author: "carol", SubmittedAt: staleNow.AddDate(0, 0, -daysAgo)},
	}
	if _, ok := fake.issues[12]; !ok {
		fake.issues[12] = &tracker.Issue{Number: 12, Assignees: []string{"alice"}}
	}
}

func TestStaleTierSelection(t *testing.T) {
	tests := []struct {
		name         string
		daysInactive int
		wantComment  string
		wantLabel    bool
		wantUnassign bool
		wantClosed   bool
	}{
		{
			name:         "below warning threshold",
			daysInactive: 3,
		},
		{
			name:         "warning tier",
			daysInactive: 10,
			wantComment:  "reminder",
		},
		{
			name:         "warning tier at exact threshold",
			daysInactive: 7,
			wantComment:  "reminder",
		},
		{
			name:         "unassign tier",
			daysInactive: 20,
			wantComment:  "stale",
			wantLabel:    true,
			wantUnassign: true,
		},
		{
			name:         "close tier",
			daysInactive: 61,
			wantComment:  "closed",
			wantUnassign: true,
			wantClosed:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := newFakeTracker()
			addStalePull(fake, 1, tt.daysInactive)
			bot := newStaleBot(fake)

			_, err := bot.Run(context.Background())
			require.NoError(t, err)

			if tt.wantComment == "" {
				assert.Empty(t, fake.createdComments[1])
			} else {
				require.Len(t, fake.createdComments[1], 1)
				assert.Contains(t, fake.createdComments[1][0], tt.wantComment)
			}
			assert.Equal(t, tt.wantLabel, fake.pulls[1].HasLabel("stale"))
			if tt.wantUnassign {
				assert.Empty(t, fake.issues[12].Assignees)
			} else {
				assert.Equal(t, []string{"alice"}, fake.issues[12].Assignees)
			}
			if tt.wantClosed {
				assert.Equal(t, []int{1}, fake.closedPulls)
				assert.Equal(t, "closed", fake.pulls[1].State)
			} else {
				assert.Empty(t, fake.closedPulls)
			}
		})
	}
}

func TestStaleIgnoresPullRequestsAwaitingFirstReview(t *testing.T) {
	fake := newFakeTracker()
	fake.pulls[1] = &tracker.PullRequest{Number: 1, Author: "alice", State: "open"}
	// Approved long ago, but changes were never requested
	fake.reviews[1] = []tracker.Review{
		{State: tracker.ReviewApproved, Author: "carol", SubmittedAt: staleNow.AddDate(0, 0, -200)},
	}
	bot := newStaleBot(fake)

	processed, err := bot.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, processed)
	assert.Empty(t, fake.createdComments[1])
}

func TestStaleAuthorActivityResetsClock(t *testing.T) {
	tests := []struct {
		name       string
		commitAgo  int // days; 0 = none
		commentAgo int // days; 0 = none
		wantAction bool
	}{
		{
			name:       "recent commit keeps pull request fresh",
			commitAgo:  3,
			wantAction: false,
		},
		{
			name:       "recent comment keeps pull request fresh",
			commentAgo: 2,
			wantAction: false,
		},
		{
			name:       "latest of commit and comment wins",
			commitAgo:  30,
			commentAgo: 10,
			wantAction: true, // 10 days -> warning
		},
		{
			name:       "no author activity falls back to review time",
			wantAction: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := newFakeTracker()
			addStalePull(fake, 1, 40)
			if tt.commitAgo > 0 {
				fake.commits[1] = []tracker.Commit{
					{Author: "alice", AuthoredAt: staleNow.AddDate(0, 0, -tt.commitAgo)},
				}
			}
			if tt.commentAgo > 0 {
				fake.comments[1] = []tracker.Comment{
					{Author: "alice", CreatedAt: staleNow.AddDate(0, 0, -tt.commentAgo)},
				}
			}
			bot := newStaleBot(fake)

			_, err := bot.Run(context.Background())
			require.NoError(t, err)

			if tt.wantAction {
				assert.NotEmpty(t, fake.createdComments[1])
			} else {
				assert.Empty(t, fake.createdComments[1])
			}
		})
	}
}

func TestStaleIgnoresOtherUsersActivity(t *testing.T) {
	fake := newFakeTracker()
	addStalePull(fake, 1, 10)
	// Reviewer pinging the thread does not count as author activity
	fake.comments[1] = []tracker.Comment{
		{Author: "carol", CreatedAt: staleNow.AddDate(0, 0, -1)},
	}
	fake.commits[1] = []tracker.Commit{
		{Author: "carol", AuthoredAt: staleNow.AddDate(0, 0, -1)},
	}
	bot := newStaleBot(fake)

	_, err := bot.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, fake.createdComments[1], 1)
	assert.Contains(t, fake.createdComments[1][0], "reminder")
}

func TestStaleActivityBeforeReviewDoesNotCount(t *testing.T) {
	fake := newFakeTracker()
	addStalePull(fake, 1, 10)
	// Author was active, but before changes were requested
	fake.commits[1] = []tracker.Commit{
		{Author: "alice", AuthoredAt: staleNow.AddDate(0, 0, -20)},
	}
	bot := newStaleBot(fake)

	_, err := bot.Run(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, fake.createdComments[1])
}

func TestStaleWarningIsIdempotent(t *testing.T) {
	fake := newFakeTracker()
	addStalePull(fake, 1, 10)
	bot := newStaleBot(fake)

	_, err := bot.Run(context.Background())
	require.NoError(t, err)
	_, err = bot.Run(context.Background())
	require.NoError(t, err)

	assert.Len(t, fake.createdComments[1], 1)
}

func TestStaleUnassignIsIdempotent(t *testing.T) {
	fake := newFakeTracker()
	addStalePull(fake, 1, 20)
	bot := newStaleBot(fake)

	_, err := bot.Run(context.Background())
	require.NoError(t, err)
	_, err = bot.Run(context.Background())
	require.NoError(t, err)

	assert.Len(t, fake.createdComments[1], 1)
}

func TestStaleWarningDoesNotBlockUnassignTier(t *testing.T) {
	fake := newFakeTracker()
	addStalePull(fake, 1, 10)
	bot := newStaleBot(fake)

	// Warn at day 10
	_, err := bot.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, fake.createdComments[1], 1)

	// A week later the unassign tier must still fire
	bot.now = func() time.Time { return staleNow.AddDate(0, 0, 10) }
	_, err = bot.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, fake.createdComments[1], 2)
	assert.True(t, fake.pulls[1].HasLabel("stale"))
	assert.Empty(t, fake.issues[12].Assignees)
}

func TestStaleMarkerFromNonBotUserDoesNotGuard(t *testing.T) {
	fake := newFakeTracker()
	addStalePull(fake, 1, 10)
	// A human using the word "reminder" must not suppress the warning, and
	// author comments count as activity, so use a reviewer here
	fake.comments[1] = []tracker.Comment{
		{Author: "carol", Body: "gentle reminder to look at this", CreatedAt: staleNow.AddDate(0, 0, -9)},
	}
	bot := newStaleBot(fake)

	_, err := bot.Run(context.Background())
	require.NoError(t, err)
	assert.Len(t, fake.createdComments[1], 1)
}

func TestStaleCloseHasNoCommentGuard(t *testing.T) {
	fake := newFakeTracker()
	addStalePull(fake, 1, 61)
	fake.comments[1] = []tracker.Comment{
		{Author: "prkeeper[bot]", AuthorIsBot: true, Body: "marked as stale, unassigned", CreatedAt: staleNow.AddDate(0, 0, -40)},
	}
	bot := newStaleBot(fake)

	_, err := bot.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{1}, fake.closedPulls)
}

func TestStaleBatchContinuesAfterPerPullFailure(t *testing.T) {
	fake := newFakeTracker()
	addStalePull(fake, 1, 10)
	addStalePull(fake, 2, 10)
	fake.pulls[2].Body = "fixes #13"
	fake.issues[13] = &tracker.Issue{Number: 13, Assignees: []string{"alice"}}
	fake.failWith("reviews", 1, errors.New("boom"))
	bot := newStaleBot(fake)

	processed, err := bot.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, processed)
	assert.Empty(t, fake.createdComments[1])
	assert.NotEmpty(t, fake.createdComments[2])
}

func TestStaleListFailure(t *testing.T) {
	fake := newFakeTracker()
	fake.errs["open_pulls"] = errors.New("boom")
	bot := newStaleBot(fake)

	_, err := bot.Run(context.Background())
	assert.ErrorContains(t, err, "failed to list open pull requests")
}

func TestLastChangesRequested(t *testing.T) {
	older := staleNow.AddDate(0, 0, -30)
	newer := staleNow.AddDate(0, 0, -10)

	reviews := []tracker.Review{
		{State: tracker.ReviewChangesRequested, SubmittedAt: older},
		{State: tracker.ReviewApproved, SubmittedAt: staleNow},
		{State: tracker.ReviewChangesRequested, SubmittedAt: newer},
	}

	got, ok := lastChangesRequested(reviews)
	require.True(t, ok)
	assert.Equal(t, newer, got)

	_, ok = lastChangesRequested(nil)
	assert.False(t, ok)
}

func TestStaleUnassignSkipsForeignIssues(t *testing.T) {
	fake := newFakeTracker()
	addStalePull(fake, 1, 20)
	// Linked issue belongs to someone else by now
	fake.issues[12].Assignees = []string{"bob"}
	bot := newStaleBot(fake)

	_, err := bot.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"bob"}, fake.issues[12].Assignees)
	assert.True(t, fake.pulls[1].HasLabel("stale"))
}
