package main

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestParseSettings(t *testing.T) {
	settings, err := parseSettings([]byte(`
concurrency: 2
sources:
  - id: hn
    kind: page
    url: https://news.ycombinator.com/
    timeout_seconds: 30
  - id: forums
    kind: http
    endpoint: http://localhost:8091/gather
  - id: telegram
    kind: command
    command: workers/telegram-gather
    args: ["--channel", "chipnews"]
    timeout_seconds: 120
analysis:
  max_tokens: 2000
  temperature: 0.3
`))
	require.NoError(t, err)

	assert.Equal(t, 2, settings.Concurrency)
	require.Len(t, settings.Sources, 3)
	assert.Equal(t, "hn", settings.Sources[0].ID)
	assert.Equal(t, []string{"--channel", "chipnews"}, settings.Sources[2].Args)
	assert.Equal(t, 2000, settings.Analysis.MaxTokens)
	assert.Equal(t, 0.3, settings.Analysis.Temperature)
}

func TestParseSettingsDefaults(t *testing.T) {
	settings, err := parseSettings([]byte(`sources: []`))
	require.NoError(t, err)

	assert.Equal(t, defaultConcurrency, settings.Concurrency)
	assert.Equal(t, 4000, settings.Analysis.MaxTokens)
}

func TestEmbeddedSettingsParse(t *testing.T) {
	settings, err := parseSettings([]byte(defaultSettings))
	require.NoError(t, err)

	assert.Greater(t, settings.Concurrency, 0)
	require.NotEmpty(t, settings.Sources)
	for _, source := range settings.Sources {
		assert.NotEmpty(t, source.ID)
		assert.NotEmpty(t, source.Kind)
	}
}

func TestBuildDescriptors(t *testing.T) {
	config := &Config{Settings: &Settings{Sources: []SourceSettings{
		{ID: "telegram", Kind: "command", Command: "workers/telegram-gather", TimeoutSeconds: 120},
		{ID: "forums", Kind: "http", Endpoint: "http://localhost:8091/gather", TimeoutSeconds: 30},
		{ID: "hn", Kind: "page", URL: "https://news.ycombinator.com/"},
	}}}

	descriptors, err := config.BuildDescriptors()
	require.NoError(t, err)
	require.Len(t, descriptors, 3)

	command, ok := descriptors[0].Invoker.(*CommandInvoker)
	require.True(t, ok)
	assert.Equal(t, "workers/telegram-gather", command.Program)
	assert.Equal(t, 120*time.Second, command.Timeout)

	httpInvoker, ok := descriptors[1].Invoker.(*HTTPInvoker)
	require.True(t, ok)
	assert.Equal(t, "http://localhost:8091/gather", httpInvoker.Endpoint)

	page, ok := descriptors[2].Invoker.(*PageInvoker)
	require.True(t, ok)
	assert.Equal(t, "https://news.ycombinator.com/", page.URL)
}

func TestBuildDescriptorsErrors(t *testing.T) {
	tests := []struct {
		name    string
		source  SourceSettings
		wantMsg string
	}{
		{"unknown kind", SourceSettings{ID: "x", Kind: "carrier-pigeon"}, "unknown kind"},
		{"command without program", SourceSettings{ID: "x", Kind: "command"}, "command is required"},
		{"http without endpoint", SourceSettings{ID: "x", Kind: "http"}, "endpoint is required"},
		{"page without url", SourceSettings{ID: "x", Kind: "page"}, "url is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &Config{Settings: &Settings{Sources: []SourceSettings{tt.source}}}
			_, err := config.BuildDescriptors()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestAnalysisPromptAndSchemaOverrides(t *testing.T) {
	config := &Config{Settings: &Settings{}}
	assert.Equal(t, defaultAnalysisSystemPrompt, config.GetAnalysisSystemPrompt())
	assert.Equal(t, defaultAnalysisSchema, config.GetAnalysisSchema())

	promptPath := t.TempDir() + "/prompt.md"
	writeFile(t, promptPath, "custom analyst prompt")
	config.Overrides = &ConfigOverrides{AnalysisPromptPath: &promptPath}
	assert.Equal(t, "custom analyst prompt", config.GetAnalysisSystemPrompt())

	// Schema still falls back to the embedded default.
	assert.Equal(t, defaultAnalysisSchema, config.GetAnalysisSchema())
}
