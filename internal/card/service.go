// Package card runs the request pipeline shared by the TUI and the one-shot
// CLI commands: compose the prompt, call the model, extract the tagged reply,
// and record the result.
package card

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"cardsmith/internal/config"
	"cardsmith/internal/extract"
	"cardsmith/internal/history"
	"cardsmith/internal/llm"
	"cardsmith/internal/prompt"
	"cardsmith/internal/template"
)

// Request describes one user action. Each request builds its own prompt and
// shares no mutable state with concurrent requests.
type Request struct {
	Op       prompt.Operation
	CardType string
	// UserText is the task notes (validate/create) or the card under
	// analysis (analyze).
	UserText string
	// Context is optional project background appended to the prompt.
	Context string
}

// Result is the displayed outcome of a request.
type Result struct {
	// Text is the extracted reply; the full raw reply when the model did
	// not wrap it in the expected tag.
	Text      string
	Model     string
	RequestID string
	Elapsed   time.Duration
}

// Recorder persists completed results. *history.Store satisfies it.
type Recorder interface {
	Append(rec history.Record) error
}

// Service wires composer, templates, client, and the optional recorder.
type Service struct {
	templates *template.Store
	composer  *prompt.Composer
	client    llm.Client
	models    config.ModelsConfig
	recorder  Recorder
}

// NewService creates the pipeline service. recorder may be nil when history
// is disabled.
func NewService(
	templates *template.Store,
	composer *prompt.Composer,
	client llm.Client,
	models config.ModelsConfig,
	recorder Recorder,
) *Service {
	return &Service{
		templates: templates,
		composer:  composer,
		client:    client,
		models:    models,
		recorder:  recorder,
	}
}

// Templates returns the loaded template store.
func (s *Service) Templates() *template.Store {
	return s.templates
}

// Model returns the configured model for an operation, or ErrNoModel.
func (s *Service) Model(op prompt.Operation) (string, error) {
	var m string
	switch op {
	case prompt.OpValidate:
		m = s.models.Validation
	case prompt.OpCreate:
		m = s.models.Creation
	case prompt.OpAnalyze:
		m = s.models.Analysis
	}
	if m == "" {
		return "", fmt.Errorf("%w: set the %s model", llm.ErrNoModel, op)
	}
	return m, nil
}

// Run executes one request end to end. Failures are reported, not recovered:
// callers surface the error and return to idle.
func (s *Service) Run(ctx context.Context, req Request) (Result, error) {
	templateBody, ok := s.templates.Get(req.CardType)
	if !ok {
		return Result{}, fmt.Errorf("unknown card type %q", req.CardType)
	}

	model, err := s.Model(req.Op)
	if err != nil {
		return Result{}, err
	}

	composed := s.composer.Compose(req.Op, templateBody, req.UserText, req.Context)

	start := time.Now()
	raw, err := s.client.ChatCompletion(ctx, model, composed)
	if err != nil {
		return Result{}, err
	}

	result := Result{
		Text:      extract.Tag(raw, req.Op.ReplyTag()),
		Model:     model,
		RequestID: uuid.New().String(),
		Elapsed:   time.Since(start),
	}

	// History is best effort; a full disk must not eat the user's card.
	if s.recorder != nil {
		rec := history.Record{
			ID:        result.RequestID,
			Operation: req.Op.String(),
			CardType:  req.CardType,
			Model:     model,
			Output:    result.Text,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.recorder.Append(rec); err != nil {
			log.Printf("history: %v", err)
		}
	}

	return result, nil
}
