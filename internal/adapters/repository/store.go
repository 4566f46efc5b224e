// Package repository persists the derived artifacts as pretty-printed
// JSON files and loads them back into the read-only snapshot served by
// the query service.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/openfield/gridiron/internal/domain/types"
	"github.com/openfield/gridiron/pkg/logger"
	"github.com/openfield/gridiron/pkg/metrics"
)

// Artifact names; file names and document-store collections derive from
// these plus the season.
const (
	ArtifactTendencies = "team_tendencies"
	ArtifactFourthDown = "fourth_down_aggression"
	ArtifactEarlyDown  = "neutral_early_down_pass_rate"
	ArtifactSummaries  = "team_summaries"

	manifestName = "run_manifest"

	filePermission = 0o644
	dirPermission  = 0o755
)

// Manifest records what an ETL run produced. Written alongside the
// artifacts so a partially-synced store can be traced to its run.
type Manifest struct {
	RunID       string    `json:"run_id"`
	Season      int       `json:"season"`
	Plays       int       `json:"plays"`
	Teams       int       `json:"teams"`
	GeneratedAt time.Time `json:"generated_at"`
	Artifacts   []string  `json:"artifacts"`
}

// Store reads and writes the JSON artifacts for one season under a
// data directory.
type Store struct {
	dir    string
	season int
	log    logger.Logger
}

// NewStore creates a Store rooted at dir for the given season.
func NewStore(dir string, season int, opts ...Option) *Store {
	s := &Store{
		dir:    dir,
		season: season,
		log:    logger.Named("repository"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) path(artifact string) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s_%d.json", artifact, s.season))
}

func (s *Store) writeJSON(ctx context.Context, artifact string, v any) error {
	if err := os.MkdirAll(s.dir, dirPermission); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteArtifact, err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteArtifact, err)
	}
	path := s.path(artifact)
	if err := os.WriteFile(path, data, filePermission); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteArtifact, err)
	}
	metrics.RecordArtifactWritten(artifact)
	s.log.Info(ctx, "wrote artifact", logger.String("artifact", artifact), logger.String("path", path))
	return nil
}

func (s *Store) readJSON(artifact string, v any) error {
	data, err := os.ReadFile(s.path(artifact))
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrMissingArtifact, artifact)
		}
		return fmt.Errorf("%w: %w", ErrReadArtifact, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrReadArtifact, artifact, err)
	}
	return nil
}

// WriteTendencies persists the per-team tendency table.
func (s *Store) WriteTendencies(ctx context.Context, table types.TendencyTable) error {
	return s.writeJSON(ctx, ArtifactTendencies, table)
}

// WriteFourthDown persists the fourth-down aggression list in aggregator order.
func (s *Store) WriteFourthDown(ctx context.Context, records []types.FourthDownRecord) error {
	return s.writeJSON(ctx, ArtifactFourthDown, records)
}

// WriteEarlyDown persists the early-down pass-rate list in aggregator order.
func (s *Store) WriteEarlyDown(ctx context.Context, records []types.EarlyDownRecord) error {
	return s.writeJSON(ctx, ArtifactEarlyDown, records)
}

// WriteSummaries persists the team summary table.
func (s *Store) WriteSummaries(ctx context.Context, table types.SummaryTable) error {
	return s.writeJSON(ctx, ArtifactSummaries, table)
}

// WriteManifest persists the run manifest.
func (s *Store) WriteManifest(ctx context.Context, m Manifest) error {
	return s.writeJSON(ctx, manifestName, m)
}

// LoadSnapshot reads all artifacts into a Snapshot. The tendency table is
// required; the situational artifacts and summaries degrade to empty when
// their files are absent so the API keeps serving what exists.
func (s *Store) LoadSnapshot(ctx context.Context) (*types.Snapshot, error) {
	snap := &types.Snapshot{
		Season:     s.season,
		Tendencies: types.TendencyTable{},
		FourthDown: []types.FourthDownRecord{},
		EarlyDown:  []types.EarlyDownRecord{},
		Summaries:  types.SummaryTable{},
	}

	if err := s.readJSON(ArtifactTendencies, &snap.Tendencies); err != nil {
		return nil, err
	}
	if err := s.readJSON(ArtifactFourthDown, &snap.FourthDown); err != nil && !errors.Is(err, ErrMissingArtifact) {
		return nil, err
	}
	if err := s.readJSON(ArtifactEarlyDown, &snap.EarlyDown); err != nil && !errors.Is(err, ErrMissingArtifact) {
		return nil, err
	}
	if err := s.readJSON(ArtifactSummaries, &snap.Summaries); err != nil && !errors.Is(err, ErrMissingArtifact) {
		return nil, err
	}

	snap.Index()
	metrics.UpdateSnapshotTeams(len(snap.Tendencies))
	metrics.UpdateSnapshotLoadTime(time.Now().Unix())
	s.log.Info(ctx, "loaded snapshot",
		logger.Int("season", s.season),
		logger.Int("teams", len(snap.Tendencies)),
		logger.Int("fourth_down_records", len(snap.FourthDown)),
		logger.Int("early_down_records", len(snap.EarlyDown)),
		logger.Int("summaries", len(snap.Summaries)))
	return snap, nil
}
