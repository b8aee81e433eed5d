// config.go
package main

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const defaultConfigDir = ".scout/"

// ConfigOverrides allows overriding embedded defaults with file paths
type ConfigOverrides struct {
	AnalysisPromptPath *string
	AnalysisSchemaPath *string
	SettingsPath       *string
}

// Embedded configuration files
//
//go:embed .scout/settings.yaml
var defaultSettings string

//go:embed .scout/analysis-system-prompt.md
var defaultAnalysisSystemPrompt string

//go:embed .scout/analysis-output-schema.json
var defaultAnalysisSchema string

// SourceSettings declares one gather source in settings.yaml.
type SourceSettings struct {
	ID             string   `yaml:"id"`
	Kind           string   `yaml:"kind"` // command | http | page
	Command        string   `yaml:"command"`
	Args           []string `yaml:"args"`
	Endpoint       string   `yaml:"endpoint"`
	URL            string   `yaml:"url"`
	TimeoutSeconds int      `yaml:"timeout_seconds"`
}

// AnalysisSettings configures the downstream analysis agent.
type AnalysisSettings struct {
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
}

// Settings represents the YAML configuration structure
type Settings struct {
	Concurrency int              `yaml:"concurrency"`
	Sources     []SourceSettings `yaml:"sources"`
	Analysis    AnalysisSettings `yaml:"analysis"`
}

// Config holds configuration and overrides
type Config struct {
	Settings  *Settings
	Overrides *ConfigOverrides
}

// NewConfig creates a new Config, writing embedded defaults to the config
// directory on first run.
func NewConfig(overrides *ConfigOverrides) (*Config, error) {
	if err := ensureConfigExists(); err != nil {
		return nil, fmt.Errorf("ensuring config files exist: %w", err)
	}

	settingsPath := filepath.Join(defaultConfigDir, "settings.yaml")
	if overrides != nil && overrides.SettingsPath != nil {
		settingsPath = *overrides.SettingsPath
	}

	settings, err := loadSettings(settingsPath)
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	return &Config{Settings: settings, Overrides: overrides}, nil
}

// GetAnalysisSystemPrompt returns the analysis system prompt (from override file or embedded)
func (c *Config) GetAnalysisSystemPrompt() string {
	if c.Overrides != nil && c.Overrides.AnalysisPromptPath != nil {
		if content, err := os.ReadFile(*c.Overrides.AnalysisPromptPath); err == nil {
			return string(content)
		}
	}
	return defaultAnalysisSystemPrompt
}

// GetAnalysisSchema returns the analysis output schema (from override file or embedded)
func (c *Config) GetAnalysisSchema() string {
	if c.Overrides != nil && c.Overrides.AnalysisSchemaPath != nil {
		if content, err := os.ReadFile(*c.Overrides.AnalysisSchemaPath); err == nil {
			return string(content)
		}
	}
	return defaultAnalysisSchema
}

// BuildDescriptors wires the configured sources to concrete invokers.
func (c *Config) BuildDescriptors() ([]Descriptor, error) {
	descriptors := make([]Descriptor, 0, len(c.Settings.Sources))
	for _, source := range c.Settings.Sources {
		timeout := time.Duration(source.TimeoutSeconds) * time.Second

		var invoker SourceInvoker
		switch source.Kind {
		case "command":
			if source.Command == "" {
				return nil, fmt.Errorf("source %s: command is required", source.ID)
			}
			invoker = &CommandInvoker{Program: source.Command, Args: source.Args, Timeout: timeout}
		case "http":
			if source.Endpoint == "" {
				return nil, fmt.Errorf("source %s: endpoint is required", source.ID)
			}
			invoker = NewHTTPInvoker(source.Endpoint, timeout)
		case "page":
			if source.URL == "" {
				return nil, fmt.Errorf("source %s: url is required", source.ID)
			}
			invoker = NewPageInvoker(source.URL, timeout)
		default:
			return nil, fmt.Errorf("source %s: unknown kind %q", source.ID, source.Kind)
		}

		descriptors = append(descriptors, Descriptor{ID: source.ID, Invoker: invoker})
	}
	return descriptors, nil
}

// loadSettings loads settings from a YAML file with fallback to the
// embedded defaults when the file doesn't exist.
func loadSettings(settingsPath string) (*Settings, error) {
	data, err := os.ReadFile(settingsPath)
	if err != nil {
		return parseSettings([]byte(defaultSettings))
	}
	return parseSettings(data)
}

func parseSettings(data []byte) (*Settings, error) {
	var settings Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, err
	}
	if settings.Concurrency <= 0 {
		settings.Concurrency = defaultConcurrency
	}
	if settings.Analysis.MaxTokens <= 0 {
		settings.Analysis.MaxTokens = 4000
	}
	return &settings, nil
}

// ensureConfigExists creates the config directory and writes settings.yaml if needed
func ensureConfigExists() error {
	if err := os.MkdirAll(defaultConfigDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	settingsFile := filepath.Join(defaultConfigDir, "settings.yaml")
	if _, err := os.Stat(settingsFile); os.IsNotExist(err) {
		if err := os.WriteFile(settingsFile, []byte(defaultSettings), 0644); err != nil {
			return fmt.Errorf("writing settings.yaml: %w", err)
		}
	}

	return nil
}
