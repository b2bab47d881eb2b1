package jpltables

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "430", cfg.Release)
	assert.Equal(t, []string{"de_430/ascp1950.430", "de_430/ascp2050.430"}, cfg.DataFiles)
	assert.Equal(t, Window{StartMJD: 0, StopMJD: 36525}, cfg.Window)
	assert.Equal(t, "1018", cfg.Sentinel)
	assert.NoError(t, cfg.Validate())

	bodies, err := cfg.CelestialBodies()
	require.NoError(t, err)
	assert.Equal(t, AllBodies(), bodies)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	t.Run("empty path yields defaults", func(t *testing.T) {
		cfg, err := LoadConfig("")
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("missing file yields defaults", func(t *testing.T) {
		cfg, err := LoadConfig(filepath.Join(dir, "missing.yaml"))
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		path := writeFile(t, dir, "de440.yaml", `
release: "440"
header_file: de_440/header.440
data_files:
  - de_440/ascp01950.440
  - de_440/ascp02050.440
output_dir: out_440
window:
  start_mjd: -3652.5
  stop_mjd: 3652.5
bodies: [Moon, earthfromemb]
workers: 2
logging:
  level: debug
`)
		cfg, err := LoadConfig(path)
		require.NoError(t, err)

		assert.Equal(t, "440", cfg.Release)
		assert.Equal(t, "de_440/header.440", cfg.HeaderFile)
		assert.Len(t, cfg.DataFiles, 2)
		assert.Equal(t, Window{StartMJD: -3652.5, StopMJD: 3652.5}, cfg.Window)
		assert.Equal(t, 2, cfg.Workers)
		assert.Equal(t, "1018", cfg.Sentinel, "unset keys keep their defaults")
		assert.Equal(t, "debug", cfg.Logging.Level)

		bodies, err := cfg.CelestialBodies()
		require.NoError(t, err)
		assert.Equal(t, []CelestialBody{Moon, EarthFromEMB}, bodies)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := writeFile(t, dir, "broken.yaml", "window: [unterminated\n")
		_, err := LoadConfig(path)
		assert.Error(t, err)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("JPLTABLES_RELEASE", "421")
		t.Setenv("JPLTABLES_OUTPUT_DIR", "/tmp/tables")
		t.Setenv("JPLTABLES_LOG_LEVEL", "warn")

		cfg, err := LoadConfig("")
		require.NoError(t, err)
		assert.Equal(t, "421", cfg.Release)
		assert.Equal(t, "/tmp/tables", cfg.OutputDir)
		assert.Equal(t, "warn", cfg.Logging.Level)
	})
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"no header", func(c *Config) { c.HeaderFile = "" }},
		{"no data files", func(c *Config) { c.DataFiles = nil }},
		{"no output dir", func(c *Config) { c.OutputDir = "" }},
		{"inverted window", func(c *Config) { c.Window = Window{StartMJD: 10, StopMJD: 0} }},
		{"negative workers", func(c *Config) { c.Workers = -1 }},
		{"unknown body", func(c *Config) { c.Bodies = []string{"Vulcan"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestConfigBlockConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, DefaultBlockConfig, cfg.blockConfig())

	cfg.Sentinel = ""
	assert.Equal(t, DefaultBlockConfig, cfg.blockConfig())

	cfg.Sentinel = "938"
	assert.Equal(t, BlockConfig{Sentinel: "938"}, cfg.blockConfig())
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(LoggingConfig{Level: "warn"}, false)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))

	logger, err = NewLogger(LoggingConfig{Level: "warn"}, true)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel), "verbose enables debug")

	_, err = NewLogger(LoggingConfig{Level: "chatty"}, false)
	assert.Error(t, err)
}
