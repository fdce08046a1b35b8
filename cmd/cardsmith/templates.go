package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"cardsmith/internal/template"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the loaded card templates",
	Long: `List the card types defined in the templates file, in file order.
The order here matches the selector order in the UI.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		store, err := template.Load(cfg.TemplatesPath())
		if err != nil {
			return err
		}

		bold := color.New(color.Bold)
		dim := color.New(color.Faint)
		bold.Printf("%d templates in %s\n\n", store.Len(), cfg.TemplatesPath())
		for i, name := range store.Names() {
			body, _ := store.Get(name)
			fmt.Printf("  %d. %s ", i+1, name)
			dim.Printf("(%d chars)\n", len(body))
		}
		return nil
	},
}
