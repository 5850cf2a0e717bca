package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the settings shared by all bots. Values come from the
// environment the workflow run provides; thresholds and labels have
// defaults matching the project's contribution policy.
type Config struct {
	// Token is the GitHub API token (GITHUB_TOKEN).
	Token string

	// Repository is the "owner/name" slug of the repository the bots
	// operate on (REPOSITORY).
	Repository string

	// EventName is the GitHub event type that triggered the run
	// (GITHUB_EVENT_NAME). Empty for scheduled runs.
	EventName string

	// StaleLabel is the label marking an inactive pull request.
	StaleLabel string

	// WarningDays is the inactivity threshold for the reminder comment.
	WarningDays int

	// UnassignDays is the inactivity threshold for unassigning linked
	// issues and applying the stale label.
	UnassignDays int

	// CloseDays is the inactivity threshold for closing the pull request.
	CloseDays int

	// ProcessDelay is the pause between pull requests in a batch run,
	// kept short to stay within API rate limits.
	ProcessDelay time.Duration
}

// FromEnv returns a Config populated from environment variables with
// defaults applied.
func FromEnv() Config {
	return Config{
		Token:        os.Getenv("GITHUB_TOKEN"),
		Repository:   os.Getenv("REPOSITORY"),
		EventName:    os.Getenv("GITHUB_EVENT_NAME"),
		StaleLabel:   getEnvOrDefault("STALE_LABEL", "stale"),
		WarningDays:  getEnvIntOrDefault("DAYS_BEFORE_STALE_WARNING", 7),
		UnassignDays: getEnvIntOrDefault("DAYS_BEFORE_UNASSIGN", 14),
		CloseDays:    getEnvIntOrDefault("DAYS_BEFORE_CLOSE", 60),
		ProcessDelay: getEnvDurationOrDefault("PROCESS_DELAY", 100*time.Millisecond),
	}
}

// Validate checks that the configuration is usable. Both the token and the
// repository slug are required before any API call can be made.
func (c *Config) Validate() error {
	var missing []string
	if c.Token == "" {
		missing = append(missing, "GITHUB_TOKEN")
	}
	if c.Repository == "" {
		missing = append(missing, "REPOSITORY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing environment variables: %s", strings.Join(missing, ", "))
	}

	if _, _, err := c.OwnerName(); err != nil {
		return err
	}

	if c.WarningDays <= 0 || c.UnassignDays <= 0 || c.CloseDays <= 0 {
		return fmt.Errorf("inactivity thresholds must be positive")
	}
	if c.WarningDays >= c.UnassignDays || c.UnassignDays >= c.CloseDays {
		return fmt.Errorf("inactivity thresholds must increase: warning %d < unassign %d < close %d",
			c.WarningDays, c.UnassignDays, c.CloseDays)
	}

	return nil
}

// OwnerName splits the repository slug into its owner and name parts.
func (c *Config) OwnerName() (owner, name string, err error) {
	parts := strings.Split(c.Repository, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository %q, expected owner/name", c.Repository)
	}
	return parts[0], parts[1], nil
}

// getEnvOrDefault returns the value of an environment variable or a default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvIntOrDefault returns the integer value of an environment variable or a default value.
func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvDurationOrDefault returns the duration value of an environment variable or a default value.
func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
