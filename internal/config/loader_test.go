package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/harmony/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.DataDir, convey.ShouldEqual, "data")
			convey.So(cfg.Files.Skills, convey.ShouldEqual, "skill_match_scores.csv")
			convey.So(cfg.Files.Synergy, convey.ShouldEqual, "employee_synergy_scores.csv")
			convey.So(cfg.DefaultTopN, convey.ShouldEqual, 3)
			convey.So(cfg.MaxTopN, convey.ShouldEqual, 50)
			convey.So(cfg.InsightsLimit, convey.ShouldEqual, 5)
			convey.So(cfg.MaxCandidates, convey.ShouldEqual, 0)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("HARMONY_ADDR", ":8080")
			_ = os.Setenv("HARMONY_DATA_DIR", "/srv/harmony")
			_ = os.Setenv("HARMONY_DEFAULT_TOP_N", "5")
			_ = os.Setenv("HARMONY_MAX_CANDIDATES", "40")
			_ = os.Setenv("HARMONY_FILES__SKILLS", "skills.csv")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.DataDir, convey.ShouldEqual, "/srv/harmony")
				convey.So(cfg.DefaultTopN, convey.ShouldEqual, 5)
				convey.So(cfg.MaxCandidates, convey.ShouldEqual, 40)
				convey.So(cfg.Files.Skills, convey.ShouldEqual, "skills.csv")
				convey.So(cfg.Files.Tasks, convey.ShouldEqual, "task_inputs.csv")
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			tmpFile := createTempConfigFile(`
addr: ":9090"
data_dir: ./fixtures
log_format: json
max_top_n: 10
files:
  synergy: pairs.csv
`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("HARMONY_CONFIG", tmpFile)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file and keep other defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.DataDir, convey.ShouldEqual, "./fixtures")
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
				convey.So(cfg.MaxTopN, convey.ShouldEqual, 10)
				convey.So(cfg.Files.Synergy, convey.ShouldEqual, "pairs.csv")
				convey.So(cfg.Files.Profiles, convey.ShouldEqual, "employee_profiles.csv")
				convey.So(cfg.DefaultTopN, convey.ShouldEqual, 3)
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			tmpFile := createTempConfigFile(`
addr: ":9090"
insights_limit: 8
`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("HARMONY_CONFIG", tmpFile)
			_ = os.Setenv("HARMONY_ADDR", ":7070")

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.InsightsLimit, convey.ShouldEqual, 8)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("HARMONY_CONFIG", tmpFile)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			cfg, err := config.LoadFile(ctx, "/non/existent/file.yaml")

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("HARMONY_ADDR", "")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When default_top_n exceeds max_top_n", func() {
			_ = os.Setenv("HARMONY_DEFAULT_TOP_N", "20")
			_ = os.Setenv("HARMONY_MAX_TOP_N", "10")

			_, err := config.Load(ctx)

			convey.Convey("Then validation fails", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "max_top_n")
			})
		})

		convey.Convey("When max_candidates is negative", func() {
			_ = os.Setenv("HARMONY_MAX_CANDIDATES", "-1")

			_, err := config.Load(ctx)

			convey.Convey("Then validation fails", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("HARMONY_MAX_TOP_N", "not_a_number")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"HARMONY_CONFIG",
		"HARMONY_ADDR",
		"HARMONY_DATA_DIR",
		"HARMONY_DEFAULT_TOP_N",
		"HARMONY_MAX_TOP_N",
		"HARMONY_MAX_CANDIDATES",
		"HARMONY_FILES__SKILLS",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "harmony-config-*.yaml")
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
