// Package docstore syncs the derived artifacts into Firestore, one
// collection per artifact and one document per team, full-document
// overwrite semantics.
package docstore

import (
	"context"
	"fmt"
	"sort"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"

	"github.com/openfield/gridiron/internal/domain/types"
	"github.com/openfield/gridiron/pkg/logger"
	"github.com/openfield/gridiron/pkg/metrics"
)

// defaultBatchSize stays under Firestore's 500-writes-per-request cap.
const defaultBatchSize = 400

// batcher accumulates document writes and commits them in one request.
// Decoupled from the Firestore client so the chunking logic is testable.
type batcher interface {
	Set(docID string, data any)
	Commit(ctx context.Context) error
}

type firestoreBatcher struct {
	client  *firestore.Client
	col     *firestore.CollectionRef
	batch   *firestore.WriteBatch
	pending int
}

func (b *firestoreBatcher) Set(docID string, data any) {
	if b.batch == nil {
		b.batch = b.client.Batch()
	}
	b.batch.Set(b.col.Doc(docID), data)
	b.pending++
}

func (b *firestoreBatcher) Commit(ctx context.Context) error {
	// The client rejects empty commits; a loop ending exactly on a batch
	// boundary leaves nothing to flush.
	if b.pending == 0 {
		return nil
	}
	if _, err := b.batch.Commit(ctx); err != nil {
		return err
	}
	b.batch = nil
	b.pending = 0
	return nil
}

// Store writes artifact documents to Firestore collections for one season.
type Store struct {
	client     *firestore.Client
	season     int
	batchSize  int
	clientOpts []option.ClientOption
	log        logger.Logger

	// newBatcher is swapped out in tests.
	newBatcher func(collection string) batcher
}

// New connects to Firestore in the given project. Without an explicit
// credentials option the client uses the ambient environment
// (GOOGLE_APPLICATION_CREDENTIALS or metadata server), matching how the
// batch job is deployed.
func New(ctx context.Context, projectID string, season int, opts ...Option) (*Store, error) {
	s := &Store{
		season:    season,
		batchSize: defaultBatchSize,
		log:       logger.Named("docstore"),
	}
	for _, opt := range opts {
		opt(s)
	}

	client, err := firestore.NewClient(ctx, projectID, s.clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnect, err)
	}
	s.client = client
	s.newBatcher = func(collection string) batcher {
		return &firestoreBatcher{client: client, col: client.Collection(collection)}
	}
	return s, nil
}

// Close releases the underlying client.
func (s *Store) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

// Collection names mirror the JSON artifacts, suffixed with the season.
func (s *Store) tendenciesCollection() string { return fmt.Sprintf("team_tendencies_%d", s.season) }
func (s *Store) fourthDownCollection() string { return fmt.Sprintf("fourth_down_%d", s.season) }
func (s *Store) earlyDownCollection() string  { return fmt.Sprintf("early_down_pass_%d", s.season) }
func (s *Store) summariesCollection() string  { return fmt.Sprintf("team_summaries_%d", s.season) }

type document struct {
	id   string
	data any
}

// syncDocs writes documents in batchSize chunks. The final partial batch
// commits after the loop. A failed commit aborts the artifact's sync;
// there is no retry.
func (s *Store) syncDocs(ctx context.Context, collection string, docs []document) (int, error) {
	b := s.newBatcher(collection)
	count := 0
	for _, d := range docs {
		b.Set(d.id, d.data)
		count++
		if count%s.batchSize == 0 {
			if err := b.Commit(ctx); err != nil {
				metrics.RecordSyncFailure(collection)
				return count, fmt.Errorf("%w: %s: %w", ErrCommitBatch, collection, err)
			}
			metrics.RecordSyncCommit(collection)
		}
	}
	if err := b.Commit(ctx); err != nil {
		metrics.RecordSyncFailure(collection)
		return count, fmt.Errorf("%w: %s: %w", ErrCommitBatch, collection, err)
	}
	if count%s.batchSize != 0 {
		metrics.RecordSyncCommit(collection)
	}

	metrics.RecordDocsSynced(collection, count)
	s.log.Info(ctx, "synced collection",
		logger.String("collection", collection),
		logger.Int("documents", count))
	return count, nil
}

type tendencyDoc struct {
	Team       string               `firestore:"team"`
	Tendencies []types.DownTendency `firestore:"tendencies"`
}

type summaryDoc struct {
	Team    string `firestore:"team"`
	Summary string `firestore:"summary"`
}

// SyncTendencies writes one document per team holding its tendency list.
func (s *Store) SyncTendencies(ctx context.Context, table types.TendencyTable) (int, error) {
	teams := make([]string, 0, len(table))
	for team := range table {
		teams = append(teams, team)
	}
	sort.Strings(teams)

	docs := make([]document, 0, len(teams))
	for _, team := range teams {
		docs = append(docs, document{id: team, data: tendencyDoc{Team: team, Tendencies: table[team]}})
	}
	return s.syncDocs(ctx, s.tendenciesCollection(), docs)
}

// SyncFourthDown writes one document per team from the aggression list.
func (s *Store) SyncFourthDown(ctx context.Context, records []types.FourthDownRecord) (int, error) {
	docs := make([]document, 0, len(records))
	for _, r := range records {
		docs = append(docs, document{id: r.Team, data: r})
	}
	return s.syncDocs(ctx, s.fourthDownCollection(), docs)
}

// SyncEarlyDown writes one document per team from the pass-rate list.
func (s *Store) SyncEarlyDown(ctx context.Context, records []types.EarlyDownRecord) (int, error) {
	docs := make([]document, 0, len(records))
	for _, r := range records {
		docs = append(docs, document{id: r.Team, data: r})
	}
	return s.syncDocs(ctx, s.earlyDownCollection(), docs)
}

// SyncSummaries writes one document per team holding its summary text.
func (s *Store) SyncSummaries(ctx context.Context, table types.SummaryTable) (int, error) {
	teams := make([]string, 0, len(table))
	for team := range table {
		teams = append(teams, team)
	}
	sort.Strings(teams)

	docs := make([]document, 0, len(teams))
	for _, team := range teams {
		docs = append(docs, document{id: team, data: summaryDoc{Team: team, Summary: table[team]}})
	}
	return s.syncDocs(ctx, s.summariesCollection(), docs)
}
