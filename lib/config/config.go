// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/tbxml/lib/envelope"
)

// EnvironmentVariable names the config file when --config is absent.
const EnvironmentVariable = "TBXML_CONFIG"

// Config is the master configuration for the tbxml tools.
type Config struct {
	// Convert configures "tbxml convert".
	Convert ConvertConfig `yaml:"convert" json:"convert"`

	// Inspect configures "tbxml inspect" and "tbxml decode".
	Inspect InspectConfig `yaml:"inspect" json:"inspect"`

	// Log configures diagnostic logging on stderr.
	Log LogConfig `yaml:"log" json:"log"`

	// path is the file this config was loaded from, empty for defaults.
	path string
}

// ConvertConfig configures XML to tbxml conversion.
type ConvertConfig struct {
	// Compression wraps output in an envelope: none, lz4, or zstd.
	// Default: none
	Compression string `yaml:"compression" json:"compression"`

	// PreserveWhitespace keeps whitespace-only text between elements
	// as node text.
	// Default: false
	PreserveWhitespace bool `yaml:"preserve_whitespace" json:"preserve_whitespace"`

	// Fragment accepts inputs with several top-level elements, each
	// becoming a root of the encoded document.
	// Default: false
	Fragment bool `yaml:"fragment" json:"fragment"`

	// OutputSuffix replaces the extension of an input file to name
	// the output when --output is not given.
	// Default: .tbx
	OutputSuffix string `yaml:"output_suffix" json:"output_suffix"`

	// OutputDir is where derived output names are placed. Empty means
	// next to the input file.
	OutputDir string `yaml:"output_dir" json:"output_dir"`
}

// InspectConfig configures document display.
type InspectConfig struct {
	// Format is the default inspect output: text, json, cbor, yaml, or
	// diag.
	// Default: text
	Format string `yaml:"format" json:"format"`

	// Color controls terminal styling: auto, always, or never.
	// Default: auto
	Color string `yaml:"color" json:"color"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is a slog level name: debug, info, warn, or error.
	// Default: warn
	Level string `yaml:"level" json:"level"`
}

// InspectFormats lists the accepted values of inspect.format.
var InspectFormats = []string{"text", "json", "cbor", "yaml", "diag"}

// ColorModes lists the accepted values of inspect.color.
var ColorModes = []string{"auto", "always", "never"}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Convert: ConvertConfig{
			Compression:  envelope.None.String(),
			OutputSuffix: ".tbx",
		},
		Inspect: InspectConfig{
			Format: "text",
			Color:  "auto",
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Load loads configuration from the TBXML_CONFIG environment variable.
// It fails when the variable is not set.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your tbxml.yaml config file, or use --config flag", EnvironmentVariable)
	}

	return LoadFile(configPath)
}

// Resolve picks the configuration for a command: the file named by
// flagPath when non-empty, else the file named by TBXML_CONFIG, else
// the defaults. The result has been validated.
func Resolve(flagPath string) (*Config, error) {
	var (
		cfg *Config
		err error
	)
	switch {
	case flagPath != "":
		cfg, err = LoadFile(flagPath)
	case os.Getenv(EnvironmentVariable) != "":
		cfg, err = Load()
	default:
		cfg = Default()
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration %s: %w", cfg.Source(), err)
	}
	return cfg, nil
}

// LoadFile loads configuration from a specific file path on top of the
// defaults and expands variables in path fields.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}
	cfg.path = path

	cfg.expandVariables()

	return cfg, nil
}

// loadFile decodes one file into the current config.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		decoder := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
		decoder.DisallowUnknownFields()
		return decoder.Decode(c)
	default:
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	}
}

// Source names where the configuration came from, for messages.
func (c *Config) Source() string {
	if c.path == "" {
		return "(defaults)"
	}
	return c.path
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	if c.path != "" {
		vars["TBXML_CONFIG_DIR"] = filepath.Dir(c.path)
	}

	c.Convert.OutputDir = expandVars(c.Convert.OutputDir, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} patterns, preferring
// vars over the process environment.
func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors. All problems are
// reported together.
func (c *Config) Validate() error {
	var errs []error

	if _, err := envelope.ParseTag(c.Convert.Compression); err != nil {
		errs = append(errs, fmt.Errorf("convert.compression: %w", err))
	}

	if c.Convert.OutputSuffix == "" {
		errs = append(errs, fmt.Errorf("convert.output_suffix is required"))
	} else if strings.ContainsRune(c.Convert.OutputSuffix, filepath.Separator) {
		errs = append(errs, fmt.Errorf("convert.output_suffix must not contain a path separator: %q", c.Convert.OutputSuffix))
	}

	if !slices.Contains(InspectFormats, c.Inspect.Format) {
		errs = append(errs, fmt.Errorf("inspect.format must be one of: %v", InspectFormats))
	}
	if !slices.Contains(ColorModes, c.Inspect.Color) {
		errs = append(errs, fmt.Errorf("inspect.color must be one of: %v", ColorModes))
	}

	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// LogLevel parses log.level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelWarn, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

// OutputPath derives the output file name for inputPath from the
// convert section: the extension is replaced by OutputSuffix and the
// file is placed in OutputDir when set.
func (c *Config) OutputPath(inputPath string) string {
	base := filepath.Base(inputPath)
	base = strings.TrimSuffix(base, filepath.Ext(base)) + c.Convert.OutputSuffix

	directory := c.Convert.OutputDir
	if directory == "" {
		directory = filepath.Dir(inputPath)
	}
	return filepath.Join(directory, base)
}
