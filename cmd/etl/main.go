package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/openfield/gridiron/internal/adapters/docstore"
	"github.com/openfield/gridiron/internal/adapters/llm"
	"github.com/openfield/gridiron/internal/adapters/pbp"
	repository "github.com/openfield/gridiron/internal/adapters/repository"
	"github.com/openfield/gridiron/internal/config"
	"github.com/openfield/gridiron/internal/etl"
	"github.com/openfield/gridiron/pkg/logger"
)

// Default run timeout; summary generation is sequential and can be slow
// for a full league.
const defaultRunTimeout = 30 * time.Minute

func main() {
	var (
		dataset   = flag.String("dataset", "", "Path to the play-by-play CSV (overrides config)")
		season    = flag.Int("season", 0, "Season year (overrides config)")
		dataDir   = flag.String("data-dir", "", "Directory for JSON artifacts (overrides config)")
		project   = flag.String("firestore-project", "", "Firestore project id (overrides config; empty disables sync)")
		summaries = flag.Bool("summaries", true, "Generate team summaries when an API key is available")
		rowLimit  = flag.Int("row-limit", 0, "Load at most N rows from the dataset (0 = all)")
		timeout   = flag.Duration("timeout", defaultRunTimeout, "Overall run timeout")
		help      = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		flag.Usage()
		return
	}

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() { _ = logger.Sync() }()

	log := logger.Get().Named("etl")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Flags win over config
	if *dataset != "" {
		cfg.DatasetPath = *dataset
	}
	if *season != 0 {
		cfg.Season = *season
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}
	if *project != "" {
		cfg.FirestoreProject = *project
	}

	if cfg.DatasetPath == "" {
		os.Stderr.WriteString("no dataset given; use -dataset or GRIDIRON_DATASET_PATH\n")
		os.Exit(1)
	}

	var loaderOpts []pbp.Option
	if *rowLimit > 0 {
		loaderOpts = append(loaderOpts, pbp.WithRowLimit(*rowLimit))
	}

	opts := []etl.Option{
		etl.WithLoader(pbp.NewLoader(loaderOpts...)),
		etl.WithStore(repository.NewStore(cfg.DataDir, cfg.Season)),
		etl.WithLogger(log),
	}

	if cfg.FirestoreProject != "" {
		docs, err := docstore.New(ctx, cfg.FirestoreProject, cfg.Season,
			docstore.WithBatchSize(cfg.SyncBatchSize),
			docstore.WithCredentialsFile(cfg.FirestoreCredentials),
		)
		if err != nil {
			os.Stderr.WriteString("failed to connect to Firestore: " + err.Error() + "\n")
			os.Exit(1)
		}
		defer func() { _ = docs.Close() }()
		opts = append(opts, etl.WithDocStore(docs))
	} else {
		log.Info(ctx, "document-store sync disabled; no Firestore project configured")
	}

	if *summaries {
		summarizer, err := llm.NewOpenAI(
			llm.WithModel(cfg.SummaryModel),
			llm.WithTemperature(cfg.SummaryTemperature),
			llm.WithMaxTokens(cfg.SummaryMaxTokens),
		)
		if err != nil {
			log.Info(ctx, "summary generation disabled", logger.Error(err))
		} else {
			opts = append(opts, etl.WithSummarizer(summarizer))
		}
	}

	runner := etl.New(cfg.Season, cfg.DatasetPath, opts...)
	manifest, err := runner.Run(ctx)
	if err != nil {
		os.Stderr.WriteString("ETL run failed: " + err.Error() + "\n")
		os.Exit(1)
	}

	log.Info(ctx, "artifacts written",
		logger.String("runID", manifest.RunID),
		logger.Int("season", manifest.Season),
		logger.Int("plays", manifest.Plays),
		logger.Int("teams", manifest.Teams),
	)
}
