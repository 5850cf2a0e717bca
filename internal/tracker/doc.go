// Package tracker wraps the GitHub API behind the narrow operation set the
// bots need: pull request and issue lookup, listing reviews, comments and
// commits, label and assignee mutation, comment creation, and closing pull
// requests.
//
// A Client is bound to one repository. SDK types never leak out of the
// package; domain structs carry only the fields the bots read. Missing pull
// requests and issues surface as ErrNotFound, testable with IsNotFound, so
// callers never inspect error text.
package tracker
