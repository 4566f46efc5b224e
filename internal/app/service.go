// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/openfield/gridiron/internal/adapters/llm"
	repository "github.com/openfield/gridiron/internal/adapters/repository"
	"github.com/openfield/gridiron/internal/domain/cache"
	"github.com/openfield/gridiron/internal/domain/summary"
	"github.com/openfield/gridiron/internal/domain/types"
	"github.com/openfield/gridiron/pkg/logger"
	"github.com/openfield/gridiron/pkg/metrics"
)

// Service implements the API dependencies for the analytics read layer.
// It holds the current artifact snapshot and answers queries from it.
type Service struct {
	mu sync.RWMutex

	// Core components
	snapshot   *types.Snapshot
	store      *repository.Store
	summarizer llm.Client
	summaries  cache.Cache

	// Configuration
	summaryTimeout time.Duration

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithSnapshot sets a pre-loaded snapshot, bypassing the store on Start.
func WithSnapshot(snap *types.Snapshot) Option {
	return func(s *Service) {
		s.snapshot = snap
	}
}

// WithStore sets the artifact store used to load and reload snapshots.
func WithStore(store *repository.Store) Option {
	return func(s *Service) {
		s.store = store
	}
}

// WithSummarizer sets the LLM client used for team summaries. When nil,
// summaries fall back to the deterministic text.
func WithSummarizer(c llm.Client) Option {
	return func(s *Service) {
		s.summarizer = c
	}
}

// WithSummaryTimeout caps how long a single summary generation may take.
func WithSummaryTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.summaryTimeout = d
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSummaryCache sets the cache for generated summaries.
func WithSummaryCache(c cache.Cache) Option {
	return func(s *Service) {
		if c != nil {
			s.summaries = c
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		summaryTimeout: 15 * time.Second,
		summaries:      cache.NewInMemoryCache(),
		logger:         nil, // Will be replaced when service starts
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start loads the snapshot from the store unless one was injected.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	// Initialize logger if not already set
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting analytics service...")

	if s.snapshot == nil {
		if s.store == nil {
			return ErrNoSnapshot
		}
		snap, err := s.store.LoadSnapshot(ctx)
		if err != nil {
			return fmt.Errorf("loading snapshot: %w", err)
		}
		s.snapshot = snap
	}

	s.started = true
	s.logger.Info(ctx, "analytics service started",
		logger.Int("season", s.snapshot.Season),
		logger.Int("teams", len(s.snapshot.Tendencies)),
	)

	return nil
}

// Stop releases the service. The snapshot is kept so in-flight requests
// can still be answered during shutdown.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.started = false
	s.logger.Info(context.Background(), "analytics service stopped")
}

// Reload re-reads the artifacts from disk and swaps the snapshot in.
func (s *Service) Reload(ctx context.Context) error {
	if s.store == nil {
		return ErrNoSnapshot
	}

	snap, err := s.store.LoadSnapshot(ctx)
	if err != nil {
		return fmt.Errorf("reloading snapshot: %w", err)
	}

	s.mu.Lock()
	s.snapshot = snap
	s.mu.Unlock()
	s.summaries.Clear(ctx)

	s.logger.Info(ctx, "snapshot reloaded",
		logger.Int("season", snap.Season),
		logger.Int("teams", len(snap.Tendencies)),
	)
	return nil
}

// normalizeTeam maps user input to the dataset's team codes.
func normalizeTeam(team string) string {
	return strings.ToUpper(strings.TrimSpace(team))
}

func (s *Service) current() *types.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Teams returns the sorted list of team codes in the snapshot.
func (s *Service) Teams(ctx context.Context) []string {
	return s.current().Teams()
}

// Tendencies returns the per-down tendency rows for a team.
func (s *Service) Tendencies(ctx context.Context, team string) ([]types.DownTendency, error) {
	snap := s.current()
	rows, ok := snap.Tendencies[normalizeTeam(team)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", types.ErrTeamNotFound, team)
	}
	return rows, nil
}

// FourthDown returns the league fourth-down aggression table, most
// aggressive team first.
func (s *Service) FourthDown(ctx context.Context) []types.FourthDownRecord {
	return s.current().FourthDown
}

// EarlyDown returns the league neutral early-down pass rate table.
func (s *Service) EarlyDown(ctx context.Context) []types.EarlyDownRecord {
	return s.current().EarlyDown
}

// Summary returns a natural-language summary for a team. A cached
// summary from the artifacts is preferred; otherwise the summarizer is
// asked, and on any failure the deterministic fallback is returned.
// For a known team this never fails.
func (s *Service) Summary(ctx context.Context, team string) (summary.Result, error) {
	snap := s.current()
	code := normalizeTeam(team)

	rows, ok := snap.Tendencies[code]
	if !ok {
		return summary.Result{}, fmt.Errorf("%w: %s", types.ErrTeamNotFound, team)
	}

	if cached, ok := snap.Summaries[code]; ok && cached != "" {
		return summary.Result{Team: code, Text: cached, Generated: true}, nil
	}
	if res, ok := s.summaries.Get(ctx, code); ok {
		return res, nil
	}

	var fourth *types.FourthDownRecord
	if r, ok := snap.FourthDownFor(code); ok {
		fourth = &r
	}
	var early *types.EarlyDownRecord
	if r, ok := snap.EarlyDownFor(code); ok {
		early = &r
	}

	if s.summarizer == nil {
		metrics.RecordSummaryFallback()
		return summary.Result{Team: code, Text: summary.Fallback(code, rows, fourth, early)}, nil
	}

	genCtx, cancel := context.WithTimeout(ctx, s.summaryTimeout)
	defer cancel()

	start := time.Now()
	text, err := s.summarizer.Summarize(genCtx, summary.BuildPrompt(code, rows, fourth, early))
	metrics.RecordSummaryLatency(float64(time.Since(start).Milliseconds()))
	if err != nil {
		s.logger.Warn(ctx, "summary generation failed, using fallback",
			logger.String("team", code),
			logger.Error(err),
		)
		metrics.RecordSummaryFallback()
		return summary.Result{Team: code, Text: summary.Fallback(code, rows, fourth, early)}, nil
	}

	metrics.RecordSummaryGenerated()
	res := summary.Result{Team: code, Text: text, Generated: true}
	// Fallback results are not cached so a healthy model gets retried;
	// generated ones are kept until the next reload.
	s.summaries.Put(ctx, code, res)
	return res, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() types.ServiceStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := types.ServiceStats{
		Started:            s.started,
		GeneratedSummaries: s.summaries.Size(),
	}

	if s.snapshot != nil {
		stats.Season = s.snapshot.Season
		stats.Teams = len(s.snapshot.Tendencies)
		stats.FourthDownRecords = len(s.snapshot.FourthDown)
		stats.EarlyDownRecords = len(s.snapshot.EarlyDown)
		stats.CachedSummaries = len(s.snapshot.Summaries)

		metrics.UpdateSnapshotTeams(len(s.snapshot.Tendencies))
	}

	return stats
}
