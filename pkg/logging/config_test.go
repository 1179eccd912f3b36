package logging_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/harvest/pkg/logging"
)

func TestConfigFunctions(t *testing.T) {
	originalLogger := *logging.Default()
	originalLevel := zerolog.GlobalLevel()
	defer func() {
		logging.SetDefault(originalLogger)
		zerolog.SetGlobalLevel(originalLevel)
	}()

	t.Run("DefaultConfig returns sensible defaults", func(t *testing.T) {
		cfg := logging.DefaultConfig()
		require.NotNil(t, cfg)
		assert.Equal(t, "info", cfg.Level)
		assert.Equal(t, "auto", cfg.Format)
		assert.False(t, cfg.AddCaller)
		assert.Equal(t, "stderr", cfg.Output)
	})

	t.Run("NewLoggerFromConfig writes to file output", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "harvest.log")

		logger := logging.NewLoggerFromConfig(&logging.Config{
			Level:     "debug",
			Format:    "json",
			Output:    path,
			AddCaller: true,
		})
		logger.Info().Msg("test message")

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "test message")
		assert.Contains(t, string(content), `"level":"info"`)
	})

	t.Run("Configure sets global logger from config", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "harvest.log")

		logging.Configure(&logging.Config{
			Level:  "warn",
			Format: "json",
			Output: path,
		})

		logging.Debug().Msg("debug message")
		logging.Info().Msg("info message")
		logging.Warn().Msg("warn message")
		logging.Error().Msg("error message")

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		output := string(content)
		assert.NotContains(t, output, "debug message")
		assert.NotContains(t, output, "info message")
		assert.Contains(t, output, "warn message")
		assert.Contains(t, output, "error message")
	})

	t.Run("console format configuration", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "harvest.log")

		logger := logging.NewLoggerFromConfig(&logging.Config{
			Level:   "info",
			Format:  "console",
			Output:  path,
			NoColor: true,
		})
		logger.Info().Str("key", "value").Msg("console test")

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "console test")
		assert.Contains(t, string(content), "key=value")
	})

	t.Run("nil config uses defaults", func(t *testing.T) {
		assert.NotPanics(t, func() {
			_ = logging.NewLoggerFromConfig(nil)
		})
	})
}

func TestConfigFromEnv(t *testing.T) {
	t.Run("prefixed variables win", func(t *testing.T) {
		t.Setenv("HARVEST_LOG_LEVEL", "warn")
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("HARVEST_LOG_FORMAT", "json")
		t.Setenv("LOG_OUTPUT", "stdout")

		cfg := logging.ConfigFromEnv()
		assert.Equal(t, "warn", cfg.Level)
		assert.Equal(t, "json", cfg.Format)
		assert.Equal(t, "stdout", cfg.Output)
	})

	t.Run("DEBUG selects debug level", func(t *testing.T) {
		t.Setenv("HARVEST_LOG_LEVEL", "")
		t.Setenv("LOG_LEVEL", "")
		t.Setenv("DEBUG", "1")

		assert.Equal(t, "debug", logging.ConfigFromEnv().Level)
	})

	t.Run("defaults without environment", func(t *testing.T) {
		for _, name := range []string{"HARVEST_LOG_LEVEL", "LOG_LEVEL", "DEBUG", "HARVEST_LOG_FORMAT", "LOG_FORMAT", "HARVEST_LOG_OUTPUT", "LOG_OUTPUT"} {
			t.Setenv(name, "")
		}

		cfg := logging.ConfigFromEnv()
		assert.Equal(t, "info", cfg.Level)
		assert.Equal(t, "auto", cfg.Format)
		assert.Equal(t, "stderr", cfg.Output)
	})
}
