// Package cmd implements the command-line interface for prkeeper.
//
// This package provides the following commands:
//   - reopen: Reassign linked issues when a pull request is reopened
//   - activity: Clear the stale state when a contributor follows up on a stale pull request
//   - stale: Warn, unassign and close pull requests after review inactivity
//   - version: Display version information
//
// Each bot command reads GITHUB_TOKEN, REPOSITORY and GITHUB_EVENT_NAME
// from the environment; reopen and activity additionally take the path to
// the workflow's event payload file as an optional argument.
package cmd
