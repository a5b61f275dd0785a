// Package config provides the typed service configuration, loaded from
// an optional YAML file with command-line overrides applied by cmd.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that unmarshals from YAML either as a Go
// duration string ("250ms") or as integer nanoseconds.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err == nil {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", raw, err)
		}
		*d = Duration(parsed)
		return nil
	}
	var ns int64
	if err := value.Decode(&ns); err != nil {
		return fmt.Errorf("invalid duration value: %w", err)
	}
	*d = Duration(ns)
	return nil
}

// Std returns the plain time.Duration value.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Settings contains all configuration options for the package search
// service.
type Settings struct {
	// Port the HTTP API listens on.
	Port string `yaml:"port"`

	// SnapshotPath is the gob snapshot the document corpus is loaded
	// from at startup and persisted to on demand. Empty disables
	// snapshot handling.
	SnapshotPath string `yaml:"snapshot_path"`

	// DartSdkPath and FlutterSdkPath point to JSON files describing the
	// SDK library pages. Empty disables the respective SDK index.
	DartSdkPath    string `yaml:"dart_sdk_path"`
	FlutterSdkPath string `yaml:"flutter_sdk_path"`

	// TextMatchBudget is the soft wall-clock budget of the per-query
	// text search.
	TextMatchBudget Duration `yaml:"text_match_budget"`

	// MaxRequestBodyBytes limits the accepted request body size.
	MaxRequestBodyBytes int64 `yaml:"max_request_body_bytes"`
}

// Load reads settings from a YAML file. A missing path yields defaults.
func Load(path string) (*Settings, error) {
	settings := &Settings{}
	if path != "" {
		data, err := os.ReadFile(path) // #nosec G304 -- path comes from the operator, not user input
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, settings); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}
	settings.ApplyDefaults()
	return settings, nil
}

// ApplyDefaults applies default values to unset fields.
func (s *Settings) ApplyDefaults() {
	if s.Port == "" {
		s.Port = "8080"
	}
	if s.TextMatchBudget == 0 {
		s.TextMatchBudget = Duration(500 * time.Millisecond)
	}
	if s.MaxRequestBodyBytes == 0 {
		s.MaxRequestBodyBytes = 32 << 20
	}
}

// Validate returns a list of configuration problems, empty when valid.
func (s *Settings) Validate() []string {
	var problems []string
	if s.TextMatchBudget < 0 {
		problems = append(problems, "text_match_budget cannot be negative")
	}
	if s.MaxRequestBodyBytes < 0 {
		problems = append(problems, "max_request_body_bytes cannot be negative")
	}
	return problems
}
