package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/openfield/gridiron/internal/apicheck"
	"github.com/openfield/gridiron/pkg/logger"
)

// Default configuration constants.
const (
	defaultTimeout      = 10 * time.Second
	defaultCheckTimeout = 5 * time.Minute
)

func main() {
	var (
		baseURL   = flag.String("url", "http://localhost:8080", "Base URL of the service")
		timeout   = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		maxTeams  = flag.Int("teams", 0, "Check at most N teams (0 = all)")
		summaries = flag.Bool("summaries", false, "Also exercise the summary endpoint per team")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), defaultCheckTimeout)
	defer cancel()

	config := apicheck.NewConfig(*baseURL)
	config.Timeout = *timeout
	config.MaxTeams = *maxTeams
	config.Summaries = *summaries

	if err := apicheck.Run(ctx, config); err != nil {
		os.Stderr.WriteString("smoke check failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
