package instrumentation

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys - using constants for consistency and DRY
const (
	attrOperation = "operation"
	attrStatus    = "status"
	attrBot       = "bot"
)

// Status values for the status attribute.
// Note: These are intentionally duplicated from the logging package
// to avoid a dependency between the two.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// StatusFor returns the status attribute value for the outcome err.
func StatusFor(err error) string {
	if err != nil {
		return StatusError
	}
	return StatusSuccess
}

// Metrics provides methods for recording observability metrics.
// The zero value is a no-op recorder, used when instrumentation is disabled.
type Metrics struct {
	// Issue tracker API metrics
	trackerOperationsTotal   metric.Int64Counter
	trackerOperationDuration metric.Float64Histogram

	// Bot action metrics
	issuesReassignedTotal metric.Int64Counter
	issuesUnassignedTotal metric.Int64Counter
	staleWarningsTotal    metric.Int64Counter
	pullsMarkedStaleTotal metric.Int64Counter
	pullsClosedTotal      metric.Int64Counter
}

// NewMetrics creates a new Metrics instance with all metrics initialized.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.trackerOperationsTotal, err = meter.Int64Counter(
		"tracker_api_operations_total",
		metric.WithDescription("Total number of issue tracker API operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracker_api_operations_total counter: %w", err)
	}

	m.trackerOperationDuration, err = meter.Float64Histogram(
		"tracker_api_operation_duration_seconds",
		metric.WithDescription("Issue tracker API operation duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracker_api_operation_duration_seconds histogram: %w", err)
	}

	m.issuesReassignedTotal, err = meter.Int64Counter(
		"issues_reassigned_total",
		metric.WithDescription("Total number of linked issues reassigned to contributors"),
		metric.WithUnit("{issue}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create issues_reassigned_total counter: %w", err)
	}

	m.issuesUnassignedTotal, err = meter.Int64Counter(
		"issues_unassigned_total",
		metric.WithDescription("Total number of linked issues unassigned from inactive contributors"),
		metric.WithUnit("{issue}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create issues_unassigned_total counter: %w", err)
	}

	m.staleWarningsTotal, err = meter.Int64Counter(
		"stale_warnings_total",
		metric.WithDescription("Total number of staleness reminder comments posted"),
		metric.WithUnit("{comment}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create stale_warnings_total counter: %w", err)
	}

	m.pullsMarkedStaleTotal, err = meter.Int64Counter(
		"pulls_marked_stale_total",
		metric.WithDescription("Total number of pull requests marked stale"),
		metric.WithUnit("{pull}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create pulls_marked_stale_total counter: %w", err)
	}

	m.pullsClosedTotal, err = meter.Int64Counter(
		"pulls_closed_total",
		metric.WithDescription("Total number of pull requests closed for inactivity"),
		metric.WithUnit("{pull}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create pulls_closed_total counter: %w", err)
	}

	return m, nil
}

// RecordTrackerOperation records an issue tracker API operation with
// operation name, status ("success" or "error"), and duration.
func (m *Metrics) RecordTrackerOperation(ctx context.Context, operation, status string, duration time.Duration) {
	if m == nil || m.trackerOperationsTotal == nil || m.trackerOperationDuration == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrOperation, operation),
		attribute.String(attrStatus, status),
	}

	m.trackerOperationsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.trackerOperationDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordIssueReassigned records a linked issue reassignment by the named bot.
func (m *Metrics) RecordIssueReassigned(ctx context.Context, bot string) {
	if m == nil || m.issuesReassignedTotal == nil {
		return // Instrumentation not initialized
	}

	m.issuesReassignedTotal.Add(ctx, 1, metric.WithAttributes(attribute.String(attrBot, bot)))
}

// RecordIssueUnassigned records a linked issue unassignment.
func (m *Metrics) RecordIssueUnassigned(ctx context.Context) {
	if m == nil || m.issuesUnassignedTotal == nil {
		return // Instrumentation not initialized
	}

	m.issuesUnassignedTotal.Add(ctx, 1)
}

// RecordStaleWarning records a posted staleness reminder comment.
func (m *Metrics) RecordStaleWarning(ctx context.Context) {
	if m == nil || m.staleWarningsTotal == nil {
		return // Instrumentation not initialized
	}

	m.staleWarningsTotal.Add(ctx, 1)
}

// RecordPullMarkedStale records a pull request being marked stale.
func (m *Metrics) RecordPullMarkedStale(ctx context.Context) {
	if m == nil || m.pullsMarkedStaleTotal == nil {
		return // Instrumentation not initialized
	}

	m.pullsMarkedStaleTotal.Add(ctx, 1)
}

// RecordPullClosed records a pull request being closed for inactivity.
func (m *Metrics) RecordPullClosed(ctx context.Context) {
	if m == nil || m.pullsClosedTotal == nil {
		return // Instrumentation not initialized
	}

	m.pullsClosedTotal.Add(ctx, 1)
}
