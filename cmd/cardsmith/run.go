package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"cardsmith/internal/card"
	"cardsmith/internal/contextfile"
	"cardsmith/internal/prompt"
)

var (
	runDescription string
	runContextFile string
)

// timeRound is the display granularity for elapsed times.
const timeRound = 100 * time.Millisecond

var validateCmd = &cobra.Command{
	Use:   "validate <card-type>",
	Short: "Check whether task notes suffice to fill a template",
	Long: `Send free-text task notes to the model and report whether they carry
enough information to fill the chosen card template.

The notes come from --desc, or from stdin when the flag is absent.

Examples:
  cardsmith validate bug --desc "login breaks after password reset"
  cat notes.txt | cardsmith validate feature`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOneShot(prompt.OpValidate, args[0])
	},
}

var createCmd = &cobra.Command{
	Use:   "create <card-type>",
	Short: "Generate a filled card from a description",
	Long: `Generate a card of the given type, filled by the model from a
natural-language description.

The description comes from --desc, or from stdin when the flag is absent.

Examples:
  cardsmith create bug --desc "search returns deleted items"
  cardsmith create chore --desc "rotate the staging TLS certs" --context docs/project.md`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOneShot(prompt.OpCreate, args[0])
	},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <card-type>",
	Short: "Critique an already-written card",
	Long: `Review a filled card against its template. The model reports on
clarity, ambiguity, and template adherence.

The card text comes from --desc, or from stdin when the flag is absent.

Examples:
  cat card.md | cardsmith analyze bug`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOneShot(prompt.OpAnalyze, args[0])
	},
}

func init() {
	for _, cmd := range []*cobra.Command{validateCmd, createCmd, analyzeCmd} {
		cmd.Flags().StringVarP(&runDescription, "desc", "d", "", "input text (read from stdin when omitted)")
		cmd.Flags().StringVarP(&runContextFile, "context", "c", "", "project context file (.txt/.md/.rst)")
	}
}

// runOneShot executes one pipeline request without the TUI.
func runOneShot(op prompt.Operation, cardType string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	svc, cleanup, err := buildService(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	userText := runDescription
	if userText == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		userText = strings.TrimSpace(string(data))
	}
	if userText == "" {
		return fmt.Errorf("no input: pass --desc or pipe text on stdin")
	}

	var projCtx contextfile.Context
	if runContextFile != "" {
		projCtx, err = contextfile.Load(runContextFile)
		if err != nil {
			return err
		}
	}

	res, err := svc.Run(context.Background(), card.Request{
		Op:       op,
		CardType: cardType,
		UserText: userText,
		Context:  projCtx.Text,
	})
	if err != nil {
		return err
	}

	header := color.New(color.FgCyan, color.Bold)
	dim := color.New(color.Faint)
	header.Printf("%s (%s)\n", strings.ToUpper(op.String()[:1])+op.String()[1:], cardType)
	dim.Printf("model %s · %s\n\n", res.Model, res.Elapsed.Round(timeRound))
	fmt.Println(res.Text)
	return nil
}
