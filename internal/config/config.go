// Package config loads clustercheck configuration from an optional YAML
// file with environment-variable overrides. CLI flags take precedence
// over everything here; the file only shifts the defaults.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is looked up in the working directory when no explicit
// config path is given.
const DefaultFileName = ".clustercheck.yaml"

// Config holds all clustercheck settings.
type Config struct {
	// Rcut is the neighbor-search cutoff radius in Angstroms.
	Rcut float64 `yaml:"rcut"`

	// MinNeighbors is the coordination number below which a cluster is
	// flagged anomalous.
	MinNeighbors int `yaml:"min_neighbors"`

	// BaseDir is the directory-mode search root.
	BaseDir string `yaml:"base_dir"`

	// QuarantineDir is the folder name under BaseDir that anomalous
	// clusters are moved into.
	QuarantineDir string `yaml:"quarantine_dir"`

	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig controls diagnostic output.
type LoggingConfig struct {
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns the built-in defaults, matching the CLI flag
// defaults exactly.
func DefaultConfig() *Config {
	return &Config{
		Rcut:          6.0,
		MinNeighbors:  10,
		BaseDir:       ".",
		QuarantineDir: "bad_seeds",
	}
}

// Load reads configuration from path, or from DefaultFileName when path
// is empty. A missing file is not an error unless it was named
// explicitly. Environment overrides apply after the file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultFileName
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
		// No config file is fine; defaults stand.
	default:
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides maps CLUSTERCHECK_* environment variables onto the
// config. Unparsable values are ignored rather than fatal.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("CLUSTERCHECK_RCUT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Rcut = f
		}
	}
	if v := os.Getenv("CLUSTERCHECK_MIN_NEIGHBORS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MinNeighbors = n
		}
	}
	if v := os.Getenv("CLUSTERCHECK_BASE_DIR"); v != "" {
		c.BaseDir = v
	}
}

// Validate enforces the run-parameter invariants.
func (c *Config) Validate() error {
	if c.Rcut <= 0 {
		return fmt.Errorf("rcut must be positive, got %g", c.Rcut)
	}
	if c.MinNeighbors < 0 {
		return fmt.Errorf("min_neighbors must be non-negative, got %d", c.MinNeighbors)
	}
	if c.QuarantineDir == "" {
		return fmt.Errorf("quarantine_dir must not be empty")
	}
	return nil
}
