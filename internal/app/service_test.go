package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	repository "github.com/openfield/gridiron/internal/adapters/repository"
	service "github.com/openfield/gridiron/internal/app"
	"github.com/openfield/gridiron/internal/domain/types"
	"github.com/openfield/gridiron/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

type fakeSummarizer struct {
	text string
	err  error
	seen []string
}

func (f *fakeSummarizer) Summarize(ctx context.Context, prompt string) (string, error) {
	f.seen = append(f.seen, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

func testSnapshot() *types.Snapshot {
	snap := &types.Snapshot{
		Season: 2024,
		Tendencies: types.TendencyTable{
			"GB": {
				{Down: 1, RushRate: 0.55, PassRate: 0.45},
				{Down: 3, RushRate: 0.2, PassRate: 0.8},
			},
			"CHI": {
				{Down: 1, RushRate: 0.4, PassRate: 0.6},
			},
		},
		FourthDown: []types.FourthDownRecord{
			{Team: "GB", Attempts: 10, GoForIt: 6, GoRate: 0.6, LeagueGoRate: 0.5, AggressionIndex: 0.1},
			{Team: "CHI", Attempts: 10, GoForIt: 4, GoRate: 0.4, LeagueGoRate: 0.5, AggressionIndex: -0.1},
		},
		EarlyDown: []types.EarlyDownRecord{
			{Team: "GB", Plays: 100, PassPlays: 55, PassRate: 0.55, LeaguePassRate: 0.5, PassRateOverAvg: 0.05},
		},
		Summaries: types.SummaryTable{},
	}
	snap.Index()
	return snap
}

func TestService_Queries(t *testing.T) {
	ctx := context.Background()

	Convey("Given a started service over a snapshot", t, func() {
		svc := service.New(service.WithSnapshot(testSnapshot()))
		So(svc.Start(ctx), ShouldBeNil)

		Convey("Teams returns sorted codes", func() {
			So(svc.Teams(ctx), ShouldResemble, []string{"CHI", "GB"})
		})

		Convey("Tendencies looks up a team case-insensitively", func() {
			rows, err := svc.Tendencies(ctx, "gb")
			So(err, ShouldBeNil)
			So(rows, ShouldHaveLength, 2)
			So(rows[0].Down, ShouldEqual, 1)
		})

		Convey("Tendencies reports unknown teams", func() {
			_, err := svc.Tendencies(ctx, "XYZ")
			So(errors.Is(err, types.ErrTeamNotFound), ShouldBeTrue)
		})

		Convey("FourthDown preserves the ranked order", func() {
			records := svc.FourthDown(ctx)
			So(records, ShouldHaveLength, 2)
			So(records[0].Team, ShouldEqual, "GB")
		})

		Convey("EarlyDown returns the league table", func() {
			So(svc.EarlyDown(ctx), ShouldHaveLength, 1)
		})

		Convey("GetStats reports snapshot counts", func() {
			stats := svc.GetStats()
			So(stats.Started, ShouldBeTrue)
			So(stats.Teams, ShouldEqual, 2)
			So(stats.Season, ShouldEqual, 2024)
			So(stats.FourthDownRecords, ShouldEqual, 2)
			So(stats.EarlyDownRecords, ShouldEqual, 1)
		})
	})

	Convey("Given a service started without snapshot or store", t, func() {
		svc := service.New()

		Convey("Start fails", func() {
			So(errors.Is(svc.Start(ctx), service.ErrNoSnapshot), ShouldBeTrue)
		})
	})
}

func TestService_Summary(t *testing.T) {
	ctx := context.Background()

	Convey("Given a service without a summarizer", t, func() {
		svc := service.New(service.WithSnapshot(testSnapshot()))
		So(svc.Start(ctx), ShouldBeNil)

		Convey("Summary falls back deterministically", func() {
			res, err := svc.Summary(ctx, "GB")
			So(err, ShouldBeNil)
			So(res.Generated, ShouldBeFalse)
			So(res.Team, ShouldEqual, "GB")
			So(res.Text, ShouldContainSubstring, "GB leans")
		})

		Convey("Summary still 404s unknown teams", func() {
			_, err := svc.Summary(ctx, "NOPE")
			So(errors.Is(err, types.ErrTeamNotFound), ShouldBeTrue)
		})
	})

	Convey("Given a working summarizer", t, func() {
		gen := &fakeSummarizer{text: "A tidy scouting report."}
		svc := service.New(
			service.WithSnapshot(testSnapshot()),
			service.WithSummarizer(gen),
			service.WithSummaryTimeout(time.Second),
		)
		So(svc.Start(ctx), ShouldBeNil)

		Convey("Summary returns the generated text", func() {
			res, err := svc.Summary(ctx, "gb")
			So(err, ShouldBeNil)
			So(res.Generated, ShouldBeTrue)
			So(res.Text, ShouldEqual, "A tidy scouting report.")
			So(gen.seen, ShouldHaveLength, 1)
			So(gen.seen[0], ShouldContainSubstring, "GB")

			Convey("And a repeat request is served from the cache", func() {
				again, err := svc.Summary(ctx, "GB")
				So(err, ShouldBeNil)
				So(again.Text, ShouldEqual, "A tidy scouting report.")
				So(gen.seen, ShouldHaveLength, 1)
			})
		})
	})

	Convey("Given a failing summarizer", t, func() {
		gen := &fakeSummarizer{err: errors.New("model unavailable")}
		svc := service.New(
			service.WithSnapshot(testSnapshot()),
			service.WithSummarizer(gen),
		)
		So(svc.Start(ctx), ShouldBeNil)

		Convey("Summary degrades to the fallback instead of failing", func() {
			res, err := svc.Summary(ctx, "GB")
			So(err, ShouldBeNil)
			So(res.Generated, ShouldBeFalse)
			So(res.Text, ShouldNotBeEmpty)
		})
	})

	Convey("Given a snapshot with a cached summary", t, func() {
		snap := testSnapshot()
		snap.Summaries["GB"] = "Cached scouting report."
		gen := &fakeSummarizer{text: "should not be used"}
		svc := service.New(service.WithSnapshot(snap), service.WithSummarizer(gen))
		So(svc.Start(ctx), ShouldBeNil)

		Convey("The cache wins over the summarizer", func() {
			res, err := svc.Summary(ctx, "GB")
			So(err, ShouldBeNil)
			So(res.Generated, ShouldBeTrue)
			So(res.Text, ShouldEqual, "Cached scouting report.")
			So(gen.seen, ShouldBeEmpty)
		})
	})
}

func TestService_Reload(t *testing.T) {
	ctx := context.Background()

	Convey("Given a service backed by an artifact store", t, func() {
		dir := t.TempDir()
		store := repository.NewStore(dir, 2024)
		So(store.WriteTendencies(ctx, types.TendencyTable{
			"GB": {{Down: 1, RushRate: 0.5, PassRate: 0.5}},
		}), ShouldBeNil)

		svc := service.New(service.WithStore(store))
		So(svc.Start(ctx), ShouldBeNil)
		So(svc.Teams(ctx), ShouldResemble, []string{"GB"})

		Convey("Reload picks up newly written artifacts", func() {
			So(store.WriteTendencies(ctx, types.TendencyTable{
				"GB":  {{Down: 1, RushRate: 0.5, PassRate: 0.5}},
				"MIN": {{Down: 1, RushRate: 0.45, PassRate: 0.55}},
			}), ShouldBeNil)

			So(svc.Reload(ctx), ShouldBeNil)
			So(strings.Join(svc.Teams(ctx), ","), ShouldEqual, "GB,MIN")
		})
	})
}
