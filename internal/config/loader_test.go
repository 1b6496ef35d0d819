package config_test

import (
	"context"
	"os"
	"testing"

	"github.com/leodovqa/palworld-data-tool/internal/config"
	"github.com/pkg/errors"
	"github.com/smartystreets/goconvey/convey"
)

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
				convey.So(cfg.DataDir, convey.ShouldEqual, "data")
				convey.So(cfg.SuggestLimit, convey.ShouldEqual, 5)
				convey.So(cfg.CORSOrigins, convey.ShouldResemble, []string{"*"})
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("PALDEX_ADDR", ":8080")
			_ = os.Setenv("PALDEX_DATA_DIR", "/srv/paldex")
			_ = os.Setenv("PALDEX_SUGGEST_LIMIT", "3")
			_ = os.Setenv("PALDEX_SERVE_DATA", "false")
			_ = os.Setenv("PALDEX_CORS_ORIGINS", "http://a.test, http://b.test")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should apply them", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.DataDir, convey.ShouldEqual, "/srv/paldex")
				convey.So(cfg.SuggestLimit, convey.ShouldEqual, 3)
				convey.So(cfg.ServeData, convey.ShouldBeFalse)
				convey.So(cfg.CORSOrigins, convey.ShouldResemble, []string{"http://a.test", "http://b.test"})
			})
		})

		convey.Convey("When loading config from a YAML file", func() {
			yamlContent := `
# local development
addr: ":9090"  # inline comment
data_url: "http://localhost:8000"
load_timeout_ms: 2500
cors_origins:
  - http://localhost:3000
`
			tmpFile := createTempFile("paldex-config-*.yaml", yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("PALDEX_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should merge the file with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.DataURL, convey.ShouldEqual, "http://localhost:8000")
				convey.So(cfg.LoadTimeoutMS, convey.ShouldEqual, 2500)
				convey.So(cfg.CORSOrigins, convey.ShouldResemble, []string{"http://localhost:3000"})
				convey.So(cfg.DataDir, convey.ShouldEqual, "data")
			})
		})

		convey.Convey("When the file, dotenv and environment all set addr", func() {
			tmpFile := createTempFile("paldex-config-*.yaml", "addr: \":9090\"\nsuggest_limit: 7\n")
			defer func() { _ = os.Remove(tmpFile) }()
			dotenv := createTempFile("paldex-*.env", "PALDEX_ADDR=:7070\nPALDEX_LOG_LEVEL=debug\nOTHER_KEY=ignored\n")
			defer func() { _ = os.Remove(dotenv) }()

			_ = os.Setenv("PALDEX_CONFIG", tmpFile)
			_ = os.Setenv("PALDEX_DOTENV", dotenv)
			_ = os.Setenv("PALDEX_ADDR", ":8080")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then the environment should win over dotenv and file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.SuggestLimit, convey.ShouldEqual, 7)
			})

			convey.Convey("Then the dotenv file should not leak into the process environment", func() {
				_, set := os.LookupEnv("PALDEX_LOG_LEVEL")
				convey.So(set, convey.ShouldBeFalse)
			})
		})

		convey.Convey("When the dotenv file named explicitly is missing", func() {
			_ = os.Setenv("PALDEX_DOTENV", "/non/existent/.env")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempFile("paldex-config-*.yaml", `invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("PALDEX_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("PALDEX_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("PALDEX_ADDR", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("PALDEX_SUGGEST_LIMIT", "not_a_number")
			defer clearConfigEnvVars()

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
		"PALDEX_CONFIG",
		"PALDEX_DOTENV",
		"PALDEX_ADDR",
		"PALDEX_LOG_LEVEL",
		"PALDEX_DATA_DIR",
		"PALDEX_DATA_URL",
		"PALDEX_SUGGEST_LIMIT",
		"PALDEX_SERVE_DATA",
		"PALDEX_CORS_ORIGINS",
		"PALDEX_LOAD_TIMEOUT_MS",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempFile(pattern, content string) string {
	tmpFile, err := os.CreateTemp("", pattern)
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
