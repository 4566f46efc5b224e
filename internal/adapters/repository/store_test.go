package repository_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/openfield/gridiron/internal/adapters/repository"
	"github.com/openfield/gridiron/internal/domain/types"
	"github.com/openfield/gridiron/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func sampleArtifacts() (types.TendencyTable, []types.FourthDownRecord, []types.EarlyDownRecord) {
	tendencies := types.TendencyTable{
		"GB": {
			{Down: 1, RushRate: 0.55, PassRate: 0.45},
			{Down: 2, RushRate: 0.45, PassRate: 0.55},
		},
		"KC": {
			{Down: 1, RushRate: 0.35, PassRate: 0.65},
		},
	}
	fourth := []types.FourthDownRecord{
		{Team: "GB", Attempts: 10, GoForIt: 7, GoRate: 0.7, LeagueGoRate: 0.5, AggressionIndex: 0.2},
		{Team: "KC", Attempts: 8, GoForIt: 3, GoRate: 0.375, LeagueGoRate: 0.5, AggressionIndex: -0.125},
	}
	early := []types.EarlyDownRecord{
		{Team: "KC", Plays: 100, PassPlays: 60, PassRate: 0.6, LeaguePassRate: 0.5, PassRateOverAvg: 0.1},
	}
	return tendencies, fourth, early
}

func TestWriteAndLoadSnapshot(t *testing.T) {
	Convey("Given artifacts written for a season", t, func() {
		dir := t.TempDir()
		store := repository.NewStore(dir, 2024)
		ctx := context.Background()
		tendencies, fourth, early := sampleArtifacts()

		So(store.WriteTendencies(ctx, tendencies), ShouldBeNil)
		So(store.WriteFourthDown(ctx, fourth), ShouldBeNil)
		So(store.WriteEarlyDown(ctx, early), ShouldBeNil)
		So(store.WriteSummaries(ctx, types.SummaryTable{"GB": "run-first offense"}), ShouldBeNil)

		Convey("Then files are pretty-printed JSON with season-suffixed names", func() {
			data, err := os.ReadFile(filepath.Join(dir, "team_tendencies_2024.json"))
			So(err, ShouldBeNil)
			So(string(data), ShouldContainSubstring, "\n  \"GB\"")
			So(string(data), ShouldContainSubstring, "\"rush_rate\"")
		})

		Convey("When loading the snapshot back", func() {
			snap, err := store.LoadSnapshot(ctx)

			Convey("Then all artifacts round-trip", func() {
				So(err, ShouldBeNil)
				So(snap.Season, ShouldEqual, 2024)
				So(snap.Tendencies, ShouldResemble, tendencies)
				So(snap.FourthDown, ShouldResemble, fourth)
				So(snap.EarlyDown, ShouldResemble, early)
				So(snap.Summaries["GB"], ShouldEqual, "run-first offense")
			})

			Convey("Then per-team lookups work", func() {
				rec, ok := snap.FourthDownFor("GB")
				So(ok, ShouldBeTrue)
				So(rec.GoForIt, ShouldEqual, 7)
				_, ok = snap.EarlyDownFor("GB")
				So(ok, ShouldBeFalse)
			})
		})
	})
}

func TestLoadSnapshotDegradesWithoutSituationalArtifacts(t *testing.T) {
	Convey("Given only the tendency artifact on disk", t, func() {
		dir := t.TempDir()
		store := repository.NewStore(dir, 2024)
		ctx := context.Background()
		tendencies, _, _ := sampleArtifacts()
		So(store.WriteTendencies(ctx, tendencies), ShouldBeNil)

		Convey("When loading the snapshot", func() {
			snap, err := store.LoadSnapshot(ctx)

			Convey("Then missing artifacts degrade to empty", func() {
				So(err, ShouldBeNil)
				So(snap.FourthDown, ShouldBeEmpty)
				So(snap.EarlyDown, ShouldBeEmpty)
				So(snap.Summaries, ShouldBeEmpty)
			})
		})
	})
}

func TestLoadSnapshotRequiresTendencies(t *testing.T) {
	Convey("Given an empty data directory", t, func() {
		store := repository.NewStore(t.TempDir(), 2024)

		Convey("When loading the snapshot", func() {
			_, err := store.LoadSnapshot(context.Background())

			Convey("Then the missing tendency artifact is an error", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, repository.ErrMissingArtifact), ShouldBeTrue)
			})
		})
	})
}

func TestSeasonsDoNotCollide(t *testing.T) {
	Convey("Given stores for two seasons in one directory", t, func() {
		dir := t.TempDir()
		ctx := context.Background()
		s23 := repository.NewStore(dir, 2023)
		s24 := repository.NewStore(dir, 2024)

		So(s23.WriteTendencies(ctx, types.TendencyTable{"SF": {{Down: 1, RushRate: 1, PassRate: 0}}}), ShouldBeNil)
		So(s24.WriteTendencies(ctx, types.TendencyTable{"SF": {{Down: 1, RushRate: 0, PassRate: 1}}}), ShouldBeNil)

		Convey("Then each season loads its own file", func() {
			snap23, err := s23.LoadSnapshot(ctx)
			So(err, ShouldBeNil)
			So(snap23.Tendencies["SF"][0].RushRate, ShouldEqual, 1.0)

			snap24, err := s24.LoadSnapshot(ctx)
			So(err, ShouldBeNil)
			So(snap24.Tendencies["SF"][0].PassRate, ShouldEqual, 1.0)
		})
	})
}

func TestWriteManifest(t *testing.T) {
	Convey("Given a run manifest", t, func() {
		dir := t.TempDir()
		store := repository.NewStore(dir, 2024)
		m := repository.Manifest{
			RunID:       "run-1",
			Season:      2024,
			Plays:       49000,
			Teams:       32,
			GeneratedAt: time.Now().UTC(),
			Artifacts:   []string{repository.ArtifactTendencies},
		}

		Convey("When writing it", func() {
			So(store.WriteManifest(context.Background(), m), ShouldBeNil)

			Convey("Then the manifest file lands next to the artifacts", func() {
				data, err := os.ReadFile(filepath.Join(dir, "run_manifest_2024.json"))
				So(err, ShouldBeNil)
				So(strings.Contains(string(data), "run-1"), ShouldBeTrue)
			})
		})
	})
}
