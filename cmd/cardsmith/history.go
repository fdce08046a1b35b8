package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"cardsmith/internal/history"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent results",
	Long:  `List the most recent cards and analyses, newest first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.History.Disabled {
			return fmt.Errorf("history is disabled in the configuration")
		}

		path := cfg.History.Path
		if path == "" {
			path = history.DefaultPath()
		}
		store, err := history.Open(path)
		if err != nil {
			return err
		}
		defer store.Close()

		records, err := store.Recent(historyLimit)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("No results recorded yet.")
			return nil
		}

		header := color.New(color.FgCyan, color.Bold)
		dim := color.New(color.Faint)
		for _, rec := range records {
			header.Printf("%s · %s (%s)\n", rec.CreatedAt.Local().Format("2006-01-02 15:04"), rec.Operation, rec.CardType)
			dim.Printf("model %s · id %s\n", rec.Model, rec.ID)
			fmt.Println(indent(rec.Output, "  "))
			fmt.Println()
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 5, "number of results to show")
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
