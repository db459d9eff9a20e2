package config_test

import (
	"testing"

	"github.com/okian/moniker/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNew(t *testing.T) {
	Convey("Given a default configuration", t, func() {
		cfg := config.New()

		Convey("Then it should carry the documented defaults", func() {
			So(cfg.LogLevel, ShouldEqual, "info")
			So(cfg.Addr, ShouldEqual, ":9080")
			So(cfg.DatasetPath, ShouldEqual, "data/names.csv")
			So(cfg.DBPath, ShouldEqual, "usernames.db")
			So(cfg.TopK, ShouldEqual, 3)
			So(cfg.CacheSize, ShouldEqual, 1024)
			So(cfg.ResolveMethod, ShouldEqual, "levenshtein")
			So(cfg.MinCandidates, ShouldEqual, 10)
			So(cfg.MaxCandidates, ShouldEqual, 12)
			So(cfg.SuggestionCount, ShouldEqual, 3)
			So(cfg.LLMModel, ShouldEqual, "gpt-4.1-nano")
			So(cfg.WorkerCount, ShouldBeGreaterThan, 0)
			So(cfg.QueueSize, ShouldEqual, 10_000)
			So(cfg.DedupeSize, ShouldEqual, 50_000)
			So(cfg.SeedUsernames, ShouldEqual, 200)
		})
	})
}
