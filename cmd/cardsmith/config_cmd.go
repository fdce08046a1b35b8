package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"cardsmith/internal/config"
)

// configView is the YAML shape printed by `cardsmith config`.
// Keys are masked; this output is safe to paste into bug reports.
type configView struct {
	Provider string `yaml:"provider"`
	APIKey   string `yaml:"api_key"`
	Models   struct {
		Validation string `yaml:"validation"`
		Creation   string `yaml:"creation"`
		Analysis   string `yaml:"analysis"`
	} `yaml:"models"`
	Resources string `yaml:"resources_dir"`
	HTTP      struct {
		Timeout string `yaml:"timeout"`
	} `yaml:"http"`
	History struct {
		Path     string `yaml:"path"`
		Disabled bool   `yaml:"disabled"`
	} `yaml:"history"`
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the resolved configuration",
	Long: `Print the configuration as resolved from defaults, the .env file, and
the environment. The API key is masked.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		var view configView
		view.Provider = string(cfg.Provider)
		key := cfg.OpenRouter.APIKey
		if cfg.Provider == config.ProviderAnthropic {
			key = cfg.Anthropic.APIKey
		}
		view.APIKey = config.MaskAPIKey(key)
		view.Models.Validation = cfg.Models.Validation
		view.Models.Creation = cfg.Models.Creation
		view.Models.Analysis = cfg.Models.Analysis
		view.Resources = cfg.Resources.Dir
		view.HTTP.Timeout = cfg.HTTP.Timeout.String()
		view.History.Path = cfg.History.Path
		view.History.Disabled = cfg.History.Disabled

		out, err := yaml.Marshal(view)
		if err != nil {
			return fmt.Errorf("encoding config: %w", err)
		}
		fmt.Print(string(out))
		return nil
	},
}
