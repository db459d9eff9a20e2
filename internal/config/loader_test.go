package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/moniker/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

// configEnvVars lists every env var the loader reads, for cleanup.
var configEnvVars = []string{
	"MONIKER_CONFIG",
	"MONIKER_ADDR",
	"MONIKER_LOG_LEVEL",
	"MONIKER_DATASET_PATH",
	"MONIKER_DB_PATH",
	"MONIKER_TOP_K",
	"MONIKER_CACHE_SIZE",
	"MONIKER_RESOLVE_METHOD",
	"MONIKER_WORKER_COUNT",
	"MONIKER_QUEUE_SIZE",
	"MONIKER_SUGGESTION_COUNT",
}

func clearConfigEnvVars() {
	for _, v := range configEnvVars {
		_ = os.Unsetenv(v)
	}
}

func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.TopK, convey.ShouldEqual, 3)
				convey.So(cfg.ResolveMethod, convey.ShouldEqual, "levenshtein")
				convey.So(cfg.QueueSize, convey.ShouldEqual, 10_000)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("MONIKER_ADDR", ":8080")
			_ = os.Setenv("MONIKER_TOP_K", "5")
			_ = os.Setenv("MONIKER_RESOLVE_METHOD", "jaro_winkler")
			_ = os.Setenv("MONIKER_WORKER_COUNT", "16")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.TopK, convey.ShouldEqual, 5)
				convey.So(cfg.ResolveMethod, convey.ShouldEqual, "jaro_winkler")
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 16)
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			yamlContent := `
addr: ":9090"
top_k: 7
cache_size: 64
dataset_path: "custom/names.csv"
`
			tmpFile := createTempConfigFile(t, yamlContent)
			_ = os.Setenv("MONIKER_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from the YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.TopK, convey.ShouldEqual, 7)
				convey.So(cfg.CacheSize, convey.ShouldEqual, 64)
				convey.So(cfg.DatasetPath, convey.ShouldEqual, "custom/names.csv")
			})
		})

		convey.Convey("When both file and environment variables are present", func() {
			tmpFile := createTempConfigFile(t, "addr: \":9090\"\ntop_k: 7\n")
			_ = os.Setenv("MONIKER_CONFIG", tmpFile)
			_ = os.Setenv("MONIKER_ADDR", ":8080")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should win", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080") // Overridden by env
				convey.So(cfg.TopK, convey.ShouldEqual, 7)       // From file
			})
		})

		convey.Convey("When the config file does not exist", func() {
			_ = os.Setenv("MONIKER_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then loading should fail with the load sentinel", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When validation fails", func() {
			cases := map[string]string{
				"MONIKER_ADDR":           "",
				"MONIKER_TOP_K":          "0",
				"MONIKER_RESOLVE_METHOD": "soundex",
			}
			convey.Convey("Then each bad value should be rejected", func() {
				for envVar, value := range cases {
					clearConfigEnvVars()
					_ = os.Setenv(envVar, value)

					_, err := config.Load(ctx)
					convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				}
				clearConfigEnvVars()
			})
		})
	})
}
