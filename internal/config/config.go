// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load(ctx) layers defaults, an optional YAML file, and env vars.
// - External errors are wrapped via this package's sentinels.
package config

// Config contains process configuration for both the query service and the
// batch ETL job.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// Season selects the play-by-play season; artifact file and collection
	// names are suffixed with it.
	Season int `koanf:"season"`

	// DataDir holds the JSON artifacts written by the ETL job and read by
	// the query service.
	DataDir string `koanf:"data_dir"`

	// DatasetPath points at the play-by-play CSV export.
	DatasetPath string `koanf:"dataset_path"`

	// FirestoreProject selects the GCP project for document-store sync.
	// Empty disables the sync stage.
	FirestoreProject string `koanf:"firestore_project"`

	// FirestoreCredentials optionally points at a service account key
	// file; empty uses the ambient environment.
	FirestoreCredentials string `koanf:"firestore_credentials"`

	// SyncBatchSize bounds documents per batch commit. Firestore caps a
	// single request at 500 writes.
	SyncBatchSize int `koanf:"sync_batch_size"`

	// SummaryModel names the generative-text model for team summaries.
	SummaryModel string `koanf:"summary_model"`

	// SummaryTemperature and SummaryMaxTokens shape the completion call.
	SummaryTemperature float64 `koanf:"summary_temperature"`
	SummaryMaxTokens   int     `koanf:"summary_max_tokens"`

	// SummaryTimeoutMS bounds a single generative call before falling back
	// to the templated summary.
	SummaryTimeoutMS int `koanf:"summary_timeout_ms"`
}

// Default configuration values.
const (
	defaultAddr           = ":8080"
	defaultSeason         = 2024
	defaultBatchSize      = 400
	defaultSummaryModel   = "gpt-4o-mini"
	defaultSummaryTemp    = 0.4
	defaultSummaryTokens  = 400
	defaultSummaryTimeout = 15_000
)

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		Addr:               defaultAddr,
		Season:             defaultSeason,
		DataDir:            "data",
		DatasetPath:        "data/play_by_play_2024.csv",
		SyncBatchSize:      defaultBatchSize,
		SummaryModel:       defaultSummaryModel,
		SummaryTemperature: defaultSummaryTemp,
		SummaryMaxTokens:   defaultSummaryTokens,
		SummaryTimeoutMS:   defaultSummaryTimeout,
	}
}
