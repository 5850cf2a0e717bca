// Package event models the slice of GitHub webhook payloads the bots
// consume: the pull request branch of pull_request_target events and the
// issue/comment branches of issue_comment events.
//
// Payloads are loaded from the JSON file GitHub Actions writes to
// GITHUB_EVENT_PATH. Accessors tolerate absent branches and return zero
// values so callers can validate required fields in one place.
package event
