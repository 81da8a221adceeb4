package config

// Configuration loading and validation for ddcdec

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/tonylturner/ddcdec/internal/errors"
)

// Output formats accepted by output.format.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// Row selections accepted by output.rows.
const (
	RowsAll   = "all"
	RowsDDC   = "ddc"
	RowsDebug = "debug"
)

// DecoderConfig controls the DDC transaction decoder.
type DecoderConfig struct {
	StrictRepeatedStart bool  `yaml:"strict_repeated_start" toml:"strict_repeated_start"`
	DebugAnnotations    *bool `yaml:"debug_annotations,omitempty" toml:"debug_annotations,omitempty"`
}

// OutputConfig controls how annotations are rendered.
type OutputConfig struct {
	Format  string `yaml:"format" toml:"format"` // "text", "json", "csv"
	Rows    string `yaml:"rows" toml:"rows"`     // "all", "ddc", "debug"
	Color   *bool  `yaml:"color,omitempty" toml:"color,omitempty"`
	Summary bool   `yaml:"summary" toml:"summary"`
}

// LoggingConfig controls the log level and optional log file.
type LoggingConfig struct {
	Level string `yaml:"level" toml:"level"` // "silent", "error", "info", "verbose", "debug"
	File  string `yaml:"file,omitempty" toml:"file,omitempty"`
}

// CatalogConfig lists register catalog files merged onto the built-in tables.
type CatalogConfig struct {
	ExtraFiles []string `yaml:"extra_files,omitempty" toml:"extra_files,omitempty"`
}

// Config is the ddcdec configuration file.
type Config struct {
	Decoder DecoderConfig `yaml:"decoder" toml:"decoder"`
	Output  OutputConfig  `yaml:"output" toml:"output"`
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
	Catalog CatalogConfig `yaml:"catalog" toml:"catalog"`
}

// DebugAnnotations reports whether debug rows are emitted.
func (c *Config) DebugAnnotations() bool {
	return c.Decoder.DebugAnnotations == nil || *c.Decoder.DebugAnnotations
}

// ColorEnabled reports whether text output is styled.
func (c *Config) ColorEnabled() bool {
	return c.Output.Color == nil || *c.Output.Color
}

// CreateDefaultConfig returns a configuration with every default filled in.
func CreateDefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills unset fields.
func ApplyDefaults(cfg *Config) {
	applyDecoderDefaults(cfg)
	applyOutputDefaults(cfg)
	applyLoggingDefaults(cfg)
}

func applyDecoderDefaults(cfg *Config) {
	cfg.Decoder.DebugAnnotations = boolPtrDefault(cfg.Decoder.DebugAnnotations, true)
}

func applyOutputDefaults(cfg *Config) {
	if cfg.Output.Format == "" {
		cfg.Output.Format = FormatText
	}
	if cfg.Output.Rows == "" {
		cfg.Output.Rows = RowsAll
	}
	cfg.Output.Color = boolPtrDefault(cfg.Output.Color, true)
}

func applyLoggingDefaults(cfg *Config) {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}

func boolPtrDefault(value *bool, def bool) *bool {
	if value != nil {
		return value
	}
	v := def
	return &v
}

// isTOML reports whether path selects the TOML encoding.
func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// Marshal encodes cfg in the format selected by path's extension.
func Marshal(cfg *Config, path string) ([]byte, error) {
	if isTOML(path) {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return nil, fmt.Errorf("marshal TOML: %w", err)
		}
		return buf.Bytes(), nil
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshal YAML: %w", err)
	}
	return data, nil
}

// Unmarshal decodes data in the format selected by path's extension.
func Unmarshal(data []byte, path string, cfg *Config) error {
	if isTOML(path) {
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return fmt.Errorf("parse TOML: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("parse TOML: unknown key %s", undecoded[0])
		}
		return nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return fmt.Errorf("parse YAML: %w", err)
	}
	return nil
}

// WriteConfig writes cfg to path.
func WriteConfig(path string, cfg *Config) error {
	data, err := Marshal(cfg, path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// WriteDefaultConfig writes a default configuration to a file
func WriteDefaultConfig(path string) error {
	return WriteConfig(path, CreateDefaultConfig())
}

// LoadConfig loads a configuration from a YAML or TOML file.
// If the file doesn't exist and autoCreate is true, it will create a default config file
func LoadConfig(path string, autoCreate bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, errors.WrapConfigError(fmt.Errorf("read config file: %w", err), path)
		}
		if !autoCreate {
			return nil, errors.WrapConfigError(fmt.Errorf("config file not found: %s", path), path)
		}
		if err := WriteDefaultConfig(path); err != nil {
			return nil, fmt.Errorf("create default config: %w", err)
		}
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, errors.WrapConfigError(fmt.Errorf("read created config file: %w", err), path)
		}
	}

	var cfg Config
	if err := Unmarshal(data, path, &cfg); err != nil {
		return nil, errors.WrapConfigError(err, path)
	}
	ApplyDefaults(&cfg)

	// Catalog paths are relative to the config file.
	dir := filepath.Dir(path)
	for i, p := range cfg.Catalog.ExtraFiles {
		if p != "" && !filepath.IsAbs(p) {
			cfg.Catalog.ExtraFiles[i] = filepath.Join(dir, p)
		}
	}

	if err := Validate(&cfg); err != nil {
		return nil, errors.WrapConfigError(fmt.Errorf("validate config: %w", err), path)
	}
	return &cfg, nil
}

// Validate checks a configuration after defaults are applied.
func Validate(cfg *Config) error {
	switch cfg.Output.Format {
	case FormatText, FormatJSON, FormatCSV:
	default:
		return fmt.Errorf("output.format: unknown format %q (want text, json or csv)", cfg.Output.Format)
	}
	switch cfg.Output.Rows {
	case RowsAll, RowsDDC, RowsDebug:
	default:
		return fmt.Errorf("output.rows: unknown row selection %q (want all, ddc or debug)", cfg.Output.Rows)
	}
	if cfg.Output.Rows == RowsDebug && !cfg.DebugAnnotations() {
		return fmt.Errorf("output.rows: debug rows requested but decoder.debug_annotations is false")
	}
	switch strings.ToLower(cfg.Logging.Level) {
	case "silent", "error", "info", "verbose", "debug":
	default:
		return fmt.Errorf("logging.level: unknown level %q", cfg.Logging.Level)
	}
	for i, p := range cfg.Catalog.ExtraFiles {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("catalog.extra_files[%d]: path is empty", i)
		}
	}
	return nil
}
