package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// parseConfigFile reads the configuration file at path. The format follows
// the extension: .yaml/.yml and .toml select YAML and TOML, anything else is
// read as JSON.
func parseConfigFile(path string) (*StructuredConfig, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return parseYAML(path)
	case ".toml":
		return parseTOML(path)
	default:
		return parseJSON(path)
	}
}

func parseYAML(path string) (*StructuredConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading a yaml file: %w", err)
	}

	var fileCfg StructuredJSONConfig
	if err = yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("error decoding yaml configs: %w", err)
	}
	return fileCfg.structured(), nil
}

func parseTOML(path string) (*StructuredConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading a toml file: %w", err)
	}

	var fileCfg StructuredJSONConfig
	if err = toml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("error decoding toml configs: %w", err)
	}
	return fileCfg.structured(), nil
}

// UnmarshalText parses a duration string such as "25m".
func (d *Duration) UnmarshalText(text []byte) error {
	tmp, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(tmp)
	return nil
}

// UnmarshalYAML accepts a duration string or an integer number of nanoseconds.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	if value.ShortTag() == "!!int" {
		var n int64
		if err := value.Decode(&n); err != nil {
			return err
		}
		*d = Duration(n)
		return nil
	}

	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	return d.UnmarshalText([]byte(s))
}
