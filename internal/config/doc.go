// Package config loads bot configuration from the environment.
//
// GitHub Actions passes credentials and the repository slug through
// environment variables; staleness thresholds and the stale label can be
// overridden the same way. Configuration is an explicit struct handed to
// each bot so tests can construct one directly instead of mutating the
// environment.
package config
