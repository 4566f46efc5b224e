// Package etl runs the season aggregation pipeline end to end: load the
// play-by-play dataset, compute the league tables, write the JSON
// artifacts and optionally mirror them to the document store.
package etl

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/openfield/gridiron/internal/adapters/docstore"
	"github.com/openfield/gridiron/internal/adapters/llm"
	repository "github.com/openfield/gridiron/internal/adapters/repository"
	"github.com/openfield/gridiron/internal/domain/aggregate"
	"github.com/openfield/gridiron/internal/domain/summary"
	"github.com/openfield/gridiron/internal/domain/types"
	"github.com/openfield/gridiron/pkg/logger"
	"github.com/openfield/gridiron/pkg/metrics"
)

// PlayLoader loads plays from a dataset path.
type PlayLoader interface {
	Load(ctx context.Context, path string) ([]types.Play, error)
}

// Runner executes one ETL pass for a season.
type Runner struct {
	loader      PlayLoader
	store       *repository.Store
	docs        *docstore.Store
	summarizer  llm.Client
	season      int
	datasetPath string
	logger      logger.Logger
}

// Option applies a configuration option to the Runner.
type Option func(*Runner)

// WithLoader sets the play-by-play loader.
func WithLoader(l PlayLoader) Option {
	return func(r *Runner) {
		r.loader = l
	}
}

// WithStore sets the JSON artifact store. Required.
func WithStore(s *repository.Store) Option {
	return func(r *Runner) {
		r.store = s
	}
}

// WithDocStore sets the document-store mirror. Optional; when nil the
// sync stage is skipped.
func WithDocStore(d *docstore.Store) Option {
	return func(r *Runner) {
		r.docs = d
	}
}

// WithSummarizer sets the LLM client for team summaries. Optional; when
// nil no summaries artifact is produced.
func WithSummarizer(c llm.Client) Option {
	return func(r *Runner) {
		r.summarizer = c
	}
}

// WithLogger sets a custom logger for the runner.
func WithLogger(l logger.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// New constructs a Runner for one season and dataset.
func New(season int, datasetPath string, opts ...Option) *Runner {
	r := &Runner{
		season:      season,
		datasetPath: datasetPath,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = logger.Get().Named("etl")
	}
	return r
}

// Run executes the pipeline and returns the run manifest.
func (r *Runner) Run(ctx context.Context) (repository.Manifest, error) {
	start := time.Now()
	defer func() {
		metrics.RecordETLRunDuration(time.Since(start).Seconds())
	}()

	if r.loader == nil || r.store == nil {
		return repository.Manifest{}, ErrNotConfigured
	}

	r.logger.Info(ctx, "starting ETL run",
		logger.Int("season", r.season),
		logger.String("dataset", r.datasetPath),
	)

	plays, err := r.loader.Load(ctx, r.datasetPath)
	if err != nil {
		return repository.Manifest{}, fmt.Errorf("loading dataset: %w", err)
	}

	rows := aggregate.TeamTendencies(plays)
	table := aggregate.TendenciesByTeam(rows)
	fourth := aggregate.FourthDownAggression(plays)
	early := aggregate.NeutralEarlyDownPassRate(plays)

	artifacts := []string{
		repository.ArtifactTendencies,
		repository.ArtifactFourthDown,
		repository.ArtifactEarlyDown,
	}

	if err := r.store.WriteTendencies(ctx, table); err != nil {
		return repository.Manifest{}, err
	}
	if err := r.store.WriteFourthDown(ctx, fourth); err != nil {
		return repository.Manifest{}, err
	}
	if err := r.store.WriteEarlyDown(ctx, early); err != nil {
		return repository.Manifest{}, err
	}

	var summaries types.SummaryTable
	if r.summarizer != nil {
		summaries = r.generateSummaries(ctx, table, fourth, early)
		if err := r.store.WriteSummaries(ctx, summaries); err != nil {
			return repository.Manifest{}, err
		}
		artifacts = append(artifacts, repository.ArtifactSummaries)
	}

	manifest := repository.Manifest{
		RunID:       uuid.NewString(),
		Season:      r.season,
		Plays:       len(plays),
		Teams:       len(table),
		GeneratedAt: time.Now().UTC(),
		Artifacts:   artifacts,
	}
	if err := r.store.WriteManifest(ctx, manifest); err != nil {
		return repository.Manifest{}, err
	}

	if r.docs != nil {
		if err := r.sync(ctx, table, fourth, early, summaries); err != nil {
			return repository.Manifest{}, err
		}
	}

	r.logger.Info(ctx, "ETL run complete",
		logger.String("runID", manifest.RunID),
		logger.Int("plays", manifest.Plays),
		logger.Int("teams", manifest.Teams),
		logger.Duration("elapsed", time.Since(start)),
	)
	return manifest, nil
}

// generateSummaries asks the model for one summary per team, in team
// order. A failed team is logged and skipped so the artifact only ever
// holds model-generated text; the query service falls back at request
// time for teams missing here.
func (r *Runner) generateSummaries(ctx context.Context, table types.TendencyTable, fourth []types.FourthDownRecord, early []types.EarlyDownRecord) types.SummaryTable {
	snap := &types.Snapshot{Tendencies: table, FourthDown: fourth, EarlyDown: early}
	snap.Index()

	summaries := make(types.SummaryTable, len(table))
	for _, team := range snap.Teams() {
		rows := table[team]

		var fourthRec *types.FourthDownRecord
		if rec, ok := snap.FourthDownFor(team); ok {
			fourthRec = &rec
		}
		var earlyRec *types.EarlyDownRecord
		if rec, ok := snap.EarlyDownFor(team); ok {
			earlyRec = &rec
		}

		genStart := time.Now()
		text, err := r.summarizer.Summarize(ctx, summary.BuildPrompt(team, rows, fourthRec, earlyRec))
		metrics.RecordSummaryLatency(float64(time.Since(genStart).Milliseconds()))
		if err != nil {
			r.logger.Warn(ctx, "summary generation failed, skipping team",
				logger.String("team", team),
				logger.Error(err),
			)
			continue
		}
		metrics.RecordSummaryGenerated()
		summaries[team] = text
	}
	return summaries
}

func (r *Runner) sync(ctx context.Context, table types.TendencyTable, fourth []types.FourthDownRecord, early []types.EarlyDownRecord, summaries types.SummaryTable) error {
	if _, err := r.docs.SyncTendencies(ctx, table); err != nil {
		return fmt.Errorf("syncing tendencies: %w", err)
	}
	if _, err := r.docs.SyncFourthDown(ctx, fourth); err != nil {
		return fmt.Errorf("syncing fourth down: %w", err)
	}
	if _, err := r.docs.SyncEarlyDown(ctx, early); err != nil {
		return fmt.Errorf("syncing early down: %w", err)
	}
	if len(summaries) > 0 {
		if _, err := r.docs.SyncSummaries(ctx, summaries); err != nil {
			return fmt.Errorf("syncing summaries: %w", err)
		}
	}
	return nil
}
