package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"brtoolchain/pkg/toolchainfile"
)

// CurrentVersion is the configuration schema version written by Default.
const CurrentVersion = 1

// Config captures the settings of a discovery run.
type Config struct {
	Version int `yaml:"version" toml:"version"`
	// RegistryFile overrides ~/.buildroot-eclipse.toolchains.
	RegistryFile string `yaml:"registry_file,omitempty" toml:"registry_file,omitempty"`
	// MalformedLines is "strict" (abort the scan) or "skip".
	MalformedLines string    `yaml:"malformed_lines" toml:"malformed_lines"`
	StateDir       string    `yaml:"state_dir,omitempty" toml:"state_dir,omitempty"`
	OutputDir      string    `yaml:"output_dir,omitempty" toml:"output_dir,omitempty"`
	Log            LogConfig `yaml:"log" toml:"log"`
}

// LogConfig controls the passive log.
type LogConfig struct {
	File  string `yaml:"file,omitempty" toml:"file,omitempty"`
	Level string `yaml:"level" toml:"level"`
}

// Default returns the baseline configuration. Directories left empty are
// resolved by the paths package.
func Default() Config {
	return Config{
		Version:        CurrentVersion,
		MalformedLines: string(toolchainfile.PolicyStrict),
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads the configuration from disk if it exists, otherwise returns the
// default configuration. Files ending in .toml are decoded as TOML, anything
// else as YAML.
func Load(path string) (Config, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := Default()
			cfg.ApplyDefaults()
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := decode(path, contents, &cfg); err != nil {
		return Config{}, err
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// ApplyDefaults fills fields the file left empty.
func (c *Config) ApplyDefaults() {
	defaults := Default()

	if c.Version == 0 {
		c.Version = defaults.Version
	}
	if c.MalformedLines == "" {
		c.MalformedLines = defaults.MalformedLines
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
}

// Policy returns the malformed line policy of the configuration.
func (c Config) Policy() (toolchainfile.Policy, error) {
	return toolchainfile.ParsePolicy(c.MalformedLines)
}

// Marshal returns the YAML encoding of the configuration.
func (c Config) Marshal() ([]byte, error) {
	buf, err := yaml.Marshal(&c)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return buf, nil
}
