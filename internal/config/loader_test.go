package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/openfield/gridiron/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLoadDefaults(t *testing.T) {
	Convey("Given no file and no environment overrides", t, func() {
		os.Unsetenv("GRIDIRON_CONFIG")
		os.Unsetenv("GRIDIRON_ADDR")
		os.Unsetenv("GRIDIRON_SEASON")

		Convey("When loading the configuration", func() {
			cfg, err := config.Load(context.Background())

			Convey("Then defaults should apply", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":8080")
				So(cfg.Season, ShouldEqual, 2024)
				So(cfg.SyncBatchSize, ShouldEqual, 400)
				So(cfg.SummaryModel, ShouldEqual, "gpt-4o-mini")
			})
		})
	})
}

func TestLoadEnvOverrides(t *testing.T) {
	Convey("Given environment overrides", t, func() {
		t.Setenv("GRIDIRON_ADDR", ":9090")
		t.Setenv("GRIDIRON_SEASON", "2023")
		t.Setenv("GRIDIRON_SUMMARY_MODEL", "gpt-4o")

		Convey("When loading the configuration", func() {
			cfg, err := config.Load(context.Background())

			Convey("Then env values should win over defaults", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":9090")
				So(cfg.Season, ShouldEqual, 2023)
				So(cfg.SummaryModel, ShouldEqual, "gpt-4o")
			})
		})
	})
}

func TestLoadFileThenEnv(t *testing.T) {
	Convey("Given a config file and an env override for the same key", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "gridiron.yaml")
		err := os.WriteFile(path, []byte("addr: \":7070\"\ndata_dir: artifacts\n"), 0o600)
		So(err, ShouldBeNil)
		t.Setenv("GRIDIRON_CONFIG", path)
		t.Setenv("GRIDIRON_ADDR", ":6060")

		Convey("When loading the configuration", func() {
			cfg, err := config.Load(context.Background())

			Convey("Then env beats file, file beats defaults", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":6060")
				So(cfg.DataDir, ShouldEqual, "artifacts")
			})
		})
	})
}

func TestLoadValidation(t *testing.T) {
	Convey("Given an out-of-range batch size", t, func() {
		t.Setenv("GRIDIRON_SYNC_BATCH_SIZE", "1000")

		Convey("When loading the configuration", func() {
			_, err := config.Load(context.Background())

			Convey("Then validation should reject it", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
			})
		})
	})

	Convey("Given a season before play-by-play data exists", t, func() {
		t.Setenv("GRIDIRON_SEASON", "1987")

		Convey("When loading the configuration", func() {
			_, err := config.Load(context.Background())

			Convey("Then validation should reject it", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
			})
		})
	})
}
