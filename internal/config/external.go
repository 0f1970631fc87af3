package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format names a supported configuration encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatOf infers the encoding of a configuration file from its extension.
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

func decode(path string, contents []byte, cfg *Config) error {
	switch FormatOf(path) {
	case FormatTOML:
		if err := toml.Unmarshal(contents, cfg); err != nil {
			return fmt.Errorf("unmarshal toml config: %w", err)
		}
	default:
		if err := yaml.Unmarshal(contents, cfg); err != nil {
			return fmt.Errorf("unmarshal config: %w", err)
		}
	}
	return nil
}

// MarshalFormat encodes the configuration in the requested format.
func (c Config) MarshalFormat(format Format) ([]byte, error) {
	if format != FormatTOML {
		return c.Marshal()
	}
	buf, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal toml config: %w", err)
	}
	return buf, nil
}
