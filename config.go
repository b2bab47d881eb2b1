package jpltables

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds everything a conversion run needs.
type Config struct {
	// Release is the DE number, e.g. "430". Informational only.
	Release string `yaml:"release"`

	// Input files. DataFiles are read in order.
	HeaderFile string   `yaml:"header_file"`
	DataFiles  []string `yaml:"data_files"`

	OutputDir string `yaml:"output_dir"`

	// Window bounds the records converted, in days since J2000.
	Window Window `yaml:"window"`

	// Bodies to convert, by short name. Empty means all.
	Bodies []string `yaml:"bodies"`

	// Workers bounds the number of bodies converted concurrently.
	Workers int `yaml:"workers"`

	// Sentinel overrides the record header marker (the release's NCOEFF).
	Sentinel string `yaml:"sentinel"`

	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level       string `yaml:"level"` // debug, info, warn, error
	Development bool   `yaml:"development"`
}

// DefaultConfig converts DE430 from 2000-01-01T12:00 TT to 2100-01-01T12:00 TT.
func DefaultConfig() *Config {
	return &Config{
		Release:    "430",
		HeaderFile: "de_430/header.430_572",
		DataFiles: []string{
			"de_430/ascp1950.430",
			"de_430/ascp2050.430",
		},
		OutputDir: "output_files_de_430",
		Window: Window{
			StartMJD: 0,
			StopMJD:  36525,
		},
		Workers:  4,
		Sentinel: DefaultBlockConfig.Sentinel,
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig reads a YAML configuration file on top of DefaultConfig. A missing
// file yields the defaults. Environment overrides are applied last.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// applyEnvOverrides lets the environment replace selected settings.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("JPLTABLES_RELEASE"); v != "" {
		c.Release = v
	}
	if v := os.Getenv("JPLTABLES_OUTPUT_DIR"); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv("JPLTABLES_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// Validate checks the configuration for values that would make a run fail late.
func (c *Config) Validate() error {
	if c.HeaderFile == "" {
		return fmt.Errorf("header_file is required")
	}
	if len(c.DataFiles) == 0 {
		return fmt.Errorf("at least one data file is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}
	if c.Window.StopMJD < c.Window.StartMJD {
		return fmt.Errorf("window stop %v is before start %v", c.Window.StopMJD, c.Window.StartMJD)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative")
	}
	if _, err := c.CelestialBodies(); err != nil {
		return err
	}
	return nil
}

// CelestialBodies resolves the configured body names, in configuration order.
func (c *Config) CelestialBodies() ([]CelestialBody, error) {
	if len(c.Bodies) == 0 {
		return AllBodies(), nil
	}

	bodies := make([]CelestialBody, 0, len(c.Bodies))
	for _, name := range c.Bodies {
		b, err := ParseCelestialBody(name)
		if err != nil {
			return nil, err
		}
		bodies = append(bodies, b)
	}
	return bodies, nil
}

// blockConfig returns the record splitting settings for the run.
func (c *Config) blockConfig() BlockConfig {
	if c.Sentinel == "" {
		return DefaultBlockConfig
	}
	return BlockConfig{Sentinel: c.Sentinel}
}
