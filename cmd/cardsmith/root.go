package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cardsmith/internal/card"
	"cardsmith/internal/config"
	"cardsmith/internal/history"
	"cardsmith/internal/llm"
	"cardsmith/internal/prompt"
	"cardsmith/internal/template"
	"cardsmith/internal/tui"
)

var rootEnvFile string

var rootCmd = &cobra.Command{
	Use:   "cardsmith",
	Short: "Compose, validate, and critique task cards with an LLM",
	Long: `cardsmith helps you write better task cards.

With no arguments it launches a three-tab terminal UI:
  Validate Info  - check whether free-text notes carry enough information
                   to fill a chosen card template
  Create Card    - generate a filled card from a template plus a
                   natural-language description
  Analyze Card   - critique an already-written card for clarity,
                   ambiguity, and template adherence

Templates and base prompts are read from the resources directory; model
identifiers and the API key come from the environment or a .env file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootEnvFile, "env-file", ".env", "env file to read configuration from")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(templatesCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads configuration honoring the --env-file flag.
func loadConfig() (*config.Config, error) {
	return config.LoadFromEnvFile(rootEnvFile)
}

// buildService assembles the pipeline from configuration. Missing resource
// files are fatal here: the tool cannot operate without them.
func buildService(cfg *config.Config) (*card.Service, func(), error) {
	templates, err := template.Load(cfg.TemplatesPath())
	if err != nil {
		return nil, nil, err
	}

	composer, err := prompt.NewComposer(cfg.Resources.Dir)
	if err != nil {
		return nil, nil, err
	}

	client, err := llm.NewFromConfig(cfg)
	if err != nil {
		return nil, nil, err
	}

	var recorder card.Recorder
	cleanup := func() {}
	if !cfg.History.Disabled {
		path := cfg.History.Path
		if path == "" {
			path = history.DefaultPath()
		}
		store, err := history.Open(path)
		if err == nil {
			recorder = store
			cleanup = func() { store.Close() }
		}
		// History failing to open is not fatal; results just go unrecorded.
	}

	svc := card.NewService(templates, composer, client, cfg.Models, recorder)
	return svc, cleanup, nil
}

func runTUI() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	svc, cleanup, err := buildService(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	p, _ := tui.NewProgram(svc)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running UI: %w", err)
	}
	return nil
}
