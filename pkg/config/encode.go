package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// FileFormat is the syntax of a configuration file.
type FileFormat string

const (
	FileFormatYAML FileFormat = "yaml"
	FileFormatTOML FileFormat = "toml"
)

// ErrUnknownFileFormat is returned for config files that are neither YAML
// nor TOML.
var ErrUnknownFileFormat = errors.New("unknown config file format")

// FileFormatFromPath picks the format from the file extension. Files
// without a recognised extension are read as YAML.
func FileFormatFromPath(path string) FileFormat {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FileFormatTOML
	}
	return FileFormatYAML
}

// Unmarshal parses data in the given format.
func Unmarshal(data []byte, format FileFormat) (*Config, error) {
	switch format {
	case FileFormatYAML, "":
		return FromYAML(data)
	case FileFormatTOML:
		return FromTOML(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFileFormat, format)
	}
}

// Marshal serializes c in the given format.
func (c *Config) Marshal(format FileFormat) ([]byte, error) {
	switch format {
	case FileFormatYAML, "":
		return c.ToYAML()
	case FileFormatTOML:
		return c.ToTOML()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFileFormat, format)
	}
}

// ToYAML serializes the persisted part of the configuration.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}
	return buf.Bytes(), nil
}

// FromYAML parses a configuration from YAML bytes. Unknown keys are errors.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := decodeYAML(data, cfg); err != nil {
		return nil, err
	}
	return normalize(cfg), nil
}

func decodeYAML(data []byte, cfg *Config) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse yaml: %w", err)
	}
	return nil
}

// ToTOML serializes the persisted part of the configuration.
func (c *Config) ToTOML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	encoder := toml.NewEncoder(&buf)
	encoder.Indent = ""
	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// FromTOML parses a configuration from TOML bytes. Unknown keys are errors.
func FromTOML(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := decodeTOML(data, cfg); err != nil {
		return nil, err
	}
	return normalize(cfg), nil
}

func decodeTOML(data []byte, cfg *Config) error {
	meta, err := toml.Decode(string(data), cfg)
	if err != nil {
		return fmt.Errorf("parse toml: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("parse toml: unknown field %q", undecoded[0].String())
	}
	return nil
}

// DecodeInto parses data over cfg. Keys present in data replace the
// corresponding values; everything else in cfg is left alone. Rule entries
// replace whole entries, so callers that want a deep merge pass a config
// with a nil Rules map and merge afterwards.
func DecodeInto(data []byte, format FileFormat, cfg *Config) error {
	switch format {
	case FileFormatYAML, "":
		return decodeYAML(data, cfg)
	case FileFormatTOML:
		return decodeTOML(data, cfg)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFileFormat, format)
	}
}

func normalize(cfg *Config) *Config {
	if cfg.Rules == nil {
		cfg.Rules = make(map[string]RuleConfig)
	}
	return cfg
}
