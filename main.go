package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	topicsFlag         string
	settingsPath       string
	apiKey             string
	analysisPromptPath string
	analysisSchemaPath string
	debugMode          bool
	serveAddr          string
)

var rootCmd = &cobra.Command{
	Use:   "scout",
	Short: "Scatter-gather news aggregation pipeline",
	Long: `Coordinates independent data-gathering workers (news sites, forums,
social feeds, messaging channels), merges their JSON outputs into a single
aggregate, and hands it to a downstream analysis agent. One failing source
never aborts the batch.`,
	Run: func(cmd *cobra.Command, args []string) {
		pipeline, err := buildPipeline()
		if err != nil {
			log.Fatalf("Failed to build pipeline: %v", err)
		}

		topics, err := NewTopicSet(strings.Split(topicsFlag, ","))
		if err != nil {
			log.Fatalf("Invalid topics: %v", err)
		}

		log.Printf("Gathering %d sources for topics: %s", len(pipeline.Sources), topics.Join())
		result, err := pipeline.Execute(context.Background(), topics)
		if err != nil {
			log.Fatalf("Pipeline failed: %v", err)
		}

		output, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			log.Fatalf("Encoding result: %v", err)
		}
		fmt.Println(string(output))
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the pipeline over HTTP",
	Run: func(cmd *cobra.Command, args []string) {
		pipeline, err := buildPipeline()
		if err != nil {
			log.Fatalf("Failed to build pipeline: %v", err)
		}

		server := NewServer(pipeline)
		log.Printf("Listening on %s", serveAddr)
		if err := http.ListenAndServe(serveAddr, server.Handler()); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	},
}

// buildPipeline loads settings and wires configured sources plus the
// analysis agent into a ready pipeline.
func buildPipeline() (*Pipeline, error) {
	if debugMode {
		SetDebugMode(true)
	}

	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("API key required: use --api-key flag or ANTHROPIC_API_KEY environment variable")
	}

	overrides := &ConfigOverrides{}
	if analysisPromptPath != "" {
		overrides.AnalysisPromptPath = &analysisPromptPath
	}
	if analysisSchemaPath != "" {
		overrides.AnalysisSchemaPath = &analysisSchemaPath
	}
	if settingsPath != "" {
		overrides.SettingsPath = &settingsPath
	}

	config, err := NewConfig(overrides)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	sources, err := config.BuildDescriptors()
	if err != nil {
		return nil, fmt.Errorf("building sources: %w", err)
	}

	analysis, err := NewAgentInvoker(apiKey, config)
	if err != nil {
		return nil, fmt.Errorf("building analysis agent: %w", err)
	}

	return &Pipeline{
		Sources:     sources,
		Analysis:    analysis,
		Concurrency: config.Settings.Concurrency,
	}, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "Anthropic API key")
	rootCmd.PersistentFlags().StringVar(&settingsPath, "config", "", "Path to settings file")
	rootCmd.PersistentFlags().StringVar(&analysisPromptPath, "analysis-prompt", "", "Path to custom analysis prompt file")
	rootCmd.PersistentFlags().StringVar(&analysisSchemaPath, "analysis-schema", "", "Path to custom analysis output schema file")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.Flags().StringVar(&topicsFlag, "topics", "", "Comma-separated topics to gather")
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
