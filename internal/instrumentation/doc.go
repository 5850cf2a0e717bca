// Package instrumentation provides OpenTelemetry metrics for prkeeper.
//
// The bots are short-lived batch processes launched by GitHub Actions, so
// there is no endpoint to scrape: counters are flushed through the stdout
// metric exporter into the run log when the provider shuts down. Recorded
// metrics cover issue tracker API calls (by operation and status) and the
// bot actions themselves (issues reassigned and unassigned, warnings posted,
// pull requests marked stale or closed).
//
// Instrumentation can be disabled entirely with INSTRUMENTATION_ENABLED=false,
// in which case a no-op recorder is handed out and no OTel SDK state is set up.
package instrumentation
