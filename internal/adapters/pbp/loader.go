// Package pbp loads the external play-by-play dataset from a CSV export
// and validates rows into typed plays.
package pbp

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/openfield/gridiron/internal/domain/types"
	"github.com/openfield/gridiron/pkg/logger"
	"github.com/openfield/gridiron/pkg/metrics"
)

// rawPlay mirrors the dataset columns we read. The export carries a few
// hundred columns; everything else is ignored by header name. Numeric
// columns decode as float64 because the export writes them as "1.0" and
// leaves them empty on non-scrimmage rows.
type rawPlay struct {
	PosTeam           string  `csv:"posteam"`
	Down              float64 `csv:"down"`
	YardsToGo         float64 `csv:"ydstogo"`
	YardLine100       float64 `csv:"yardline_100"`
	PlayType          string  `csv:"play_type"`
	ScoreDifferential float64 `csv:"score_differential"`
	Penalty           float64 `csv:"penalty"`
	PassAttempt       float64 `csv:"pass_attempt"`
	RushAttempt       float64 `csv:"rush_attempt"`
}

// Loader reads and validates the play-by-play dataset.
type Loader struct {
	rowLimit int
	log      logger.Logger
}

// NewLoader creates a Loader with the given options.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		log: logger.Named("pbp"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads the CSV at path and returns the validated plays. Rows
// without a possession team or with a down outside 1-4 are dropped;
// dropped counts are logged and exported as metrics.
func (l *Loader) Load(ctx context.Context, path string) ([]types.Play, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpenDataset, err)
	}
	defer f.Close()

	var raw []*rawPlay
	if err := gocsv.UnmarshalFile(f, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeDataset, err)
	}

	plays := make([]types.Play, 0, len(raw))
	dropped := 0
	for _, r := range raw {
		if l.rowLimit > 0 && len(plays) >= l.rowLimit {
			break
		}
		p, ok := validate(r)
		if !ok {
			dropped++
			continue
		}
		plays = append(plays, p)
	}

	if len(plays) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyDataset, path)
	}

	metrics.UpdatePlaysLoaded(len(plays))
	metrics.UpdatePlaysDropped(dropped)
	l.log.Info(ctx, "loaded play-by-play dataset",
		logger.String("path", path),
		logger.Int("plays", len(plays)),
		logger.Int("dropped", dropped))

	return plays, nil
}

// validate converts a raw row to a Play, rejecting rows that cannot feed
// any aggregation: no possession team (kickoffs, end-of-quarter rows) or
// a down outside 1-4.
func validate(r *rawPlay) (types.Play, bool) {
	team := strings.ToUpper(strings.TrimSpace(r.PosTeam))
	down := int(r.Down)
	if team == "" || down < 1 || down > 4 {
		return types.Play{}, false
	}
	yardLine := int(r.YardLine100)
	if yardLine < 0 || yardLine > 100 {
		return types.Play{}, false
	}
	return types.Play{
		PosTeam:           team,
		Down:              down,
		YardsToGo:         int(r.YardsToGo),
		YardLine100:       yardLine,
		PlayType:          strings.TrimSpace(r.PlayType),
		ScoreDifferential: r.ScoreDifferential,
		Penalty:           r.Penalty != 0,
		PassAttempt:       r.PassAttempt != 0,
		RushAttempt:       r.RushAttempt != 0,
	}, true
}
