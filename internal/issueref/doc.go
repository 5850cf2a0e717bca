// Package issueref extracts linked issue references from pull request bodies.
//
// GitHub automatically closes issues referenced with a closing keyword
// ("fixes #12", "closes #34", "resolves #56") when the pull request merges.
// The bots use the same grammar to discover which issues a pull request
// claims, so that assignees can follow the pull request's lifecycle.
package issueref
