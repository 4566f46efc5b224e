// Package apicheck probes a running analytics service and verifies the
// responses against the invariants the aggregations guarantee.
package apicheck

import "time"

// Default configuration constants.
const (
	defaultTimeout  = 10 * time.Second
	defaultMaxTeams = 0 // 0 = check every team
)

// Config holds the smoke check configuration.
type Config struct {
	// BaseURL of the service under test.
	BaseURL string

	// Timeout for individual HTTP requests.
	Timeout time.Duration

	// MaxTeams limits how many teams get per-team checks. Zero checks all.
	MaxTeams int

	// Summaries also exercises the summary endpoint per team.
	Summaries bool
}

// NewConfig creates a config with defaults applied.
func NewConfig(baseURL string) *Config {
	return &Config{
		BaseURL:  baseURL,
		Timeout:  defaultTimeout,
		MaxTeams: defaultMaxTeams,
	}
}
