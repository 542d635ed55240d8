package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds the readiness and connection budgets of a run.
type Timeouts struct {
	WebInstaller  time.Duration // Wait for the web installer endpoint
	PollInterval  time.Duration // Interval between readiness checks
	Postflight    time.Duration // Remote health-check budget override; zero keeps the config value
	SSHMaxRetries int           // Connection attempts before a machine counts as unreachable
	SSHRetryDelay time.Duration // Initial delay between connection attempts
}

// LoadTimeouts loads timeout configuration from environment variables.
// If an environment variable is not set or invalid, a default value is used.
//
// Environment Variables:
//   - CLUSTERUP_TIMEOUT_WEB_INSTALLER (default: 120s)
//   - CLUSTERUP_POLL_INTERVAL (default: 5s)
//   - CLUSTERUP_TIMEOUT_POSTFLIGHT (default: unset)
//   - CLUSTERUP_SSH_MAX_RETRIES (default: 30)
//   - CLUSTERUP_SSH_RETRY_DELAY (default: 2s)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		WebInstaller:  parseDuration("CLUSTERUP_TIMEOUT_WEB_INSTALLER", 120*time.Second),
		PollInterval:  parseDuration("CLUSTERUP_POLL_INTERVAL", 5*time.Second),
		Postflight:    parseDuration("CLUSTERUP_TIMEOUT_POSTFLIGHT", 0),
		SSHMaxRetries: parseInt("CLUSTERUP_SSH_MAX_RETRIES", 30),
		SSHRetryDelay: parseDuration("CLUSTERUP_SSH_RETRY_DELAY", 2*time.Second),
	}
}

// PostflightBudget returns the override when set, else fallback.
func (t *Timeouts) PostflightBudget(fallback time.Duration) time.Duration {
	if t.Postflight > 0 {
		return t.Postflight
	}
	return fallback
}

// parseDuration parses a duration from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}

	return d
}

// parseInt parses an integer from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return i
}
