package instrumentation

import (
	"fmt"
	"os"
	"strconv"
)

// Exporter types for metrics.
const (
	ExporterStdout = "stdout"
	ExporterNone   = "none"
)

// Config holds the configuration for OpenTelemetry instrumentation.
type Config struct {
	// ServiceName is the name of the service (default: prkeeper)
	ServiceName string

	// ServiceVersion is the version of the service
	ServiceVersion string

	// Enabled determines if instrumentation is active (default: true)
	// Set to false via INSTRUMENTATION_ENABLED=false to disable metrics
	Enabled bool

	// MetricsExporter specifies the metrics exporter type
	// Options: "stdout", "none" (default: "stdout")
	// The bots are short-lived batch processes, so metrics are flushed to
	// the run log rather than scraped from an endpoint.
	MetricsExporter string
}

// DefaultConfig returns a Config with sensible defaults based on environment variables.
func DefaultConfig() Config {
	return Config{
		ServiceName:     getEnvOrDefault("OTEL_SERVICE_NAME", "prkeeper"),
		ServiceVersion:  "unknown",
		Enabled:         getEnvBoolOrDefault("INSTRUMENTATION_ENABLED", true),
		MetricsExporter: getEnvOrDefault("METRICS_EXPORTER", ExporterStdout),
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	validMetricsExporters := map[string]bool{ExporterStdout: true, ExporterNone: true}
	if c.MetricsExporter != "" && !validMetricsExporters[c.MetricsExporter] {
		return fmt.Errorf("invalid metrics exporter %q, must be one of: stdout, none", c.MetricsExporter)
	}
	return nil
}

// getEnvOrDefault returns the value of an environment variable or a default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBoolOrDefault returns the boolean value of an environment variable or a default value.
func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
