package card

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cardsmith/internal/config"
	"cardsmith/internal/history"
	"cardsmith/internal/llm"
	"cardsmith/internal/prompt"
	"cardsmith/internal/template"
)

// fakeClient returns a canned reply or error and records the last prompt.
type fakeClient struct {
	reply      string
	err        error
	lastModel  string
	lastPrompt string
}

func (f *fakeClient) ChatCompletion(ctx context.Context, model, p string) (string, error) {
	f.lastModel = model
	f.lastPrompt = p
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

// memRecorder collects appended records.
type memRecorder struct {
	records []history.Record
	err     error
}

func (m *memRecorder) Append(rec history.Record) error {
	if m.err != nil {
		return m.err
	}
	m.records = append(m.records, rec)
	return nil
}

var testModels = config.ModelsConfig{
	Validation: "m-validate",
	Creation:   "m-create",
	Analysis:   "m-analyze",
}

func newTestService(t *testing.T, client llm.Client, rec Recorder) *Service {
	t.Helper()

	store, err := template.Parse("<bug>\nTEMPLATE-T\n</bug>")
	if err != nil {
		t.Fatalf("parse templates: %v", err)
	}

	dir := t.TempDir()
	for _, op := range prompt.Operations() {
		body := "{Card_modelo}\n{informacoes_fornecidas_pelo_usuario}{Card_para_analise}\n{informacoes_adicionais}"
		if err := os.WriteFile(filepath.Join(dir, op.File()), []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
	}
	composer, err := prompt.NewComposer(dir)
	if err != nil {
		t.Fatalf("NewComposer: %v", err)
	}

	return NewService(store, composer, client, testModels, rec)
}

func TestRunRoundTrip(t *testing.T) {
	client := &fakeClient{reply: "preamble <card>T+D-SUMMARY</card> trailing"}
	svc := newTestService(t, client, nil)

	res, err := svc.Run(context.Background(), Request{
		Op:       prompt.OpCreate,
		CardType: "bug",
		UserText: "DESCRIPTION-D",
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if res.Text != "T+D-SUMMARY" {
		t.Errorf("expected extracted 'T+D-SUMMARY', got %q", res.Text)
	}
	if res.Model != "m-create" {
		t.Errorf("expected creation model, got %q", res.Model)
	}
	if res.RequestID == "" {
		t.Error("expected a request ID")
	}
	if !strings.Contains(client.lastPrompt, "TEMPLATE-T") {
		t.Error("composed prompt missing template body")
	}
	if !strings.Contains(client.lastPrompt, "DESCRIPTION-D") {
		t.Error("composed prompt missing user text")
	}
}

func TestRunUntaggedReplyPassesThrough(t *testing.T) {
	client := &fakeClient{reply: "no tag in sight"}
	svc := newTestService(t, client, nil)

	res, err := svc.Run(context.Background(), Request{
		Op:       prompt.OpValidate,
		CardType: "bug",
		UserText: "notes",
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Text != "no tag in sight" {
		t.Errorf("expected raw reply fallback, got %q", res.Text)
	}
}

func TestRunUnknownCardType(t *testing.T) {
	client := &fakeClient{reply: "x"}
	svc := newTestService(t, client, nil)

	_, err := svc.Run(context.Background(), Request{
		Op:       prompt.OpCreate,
		CardType: "epic",
		UserText: "notes",
	})
	if err == nil {
		t.Fatal("expected error for unknown card type")
	}
	if client.lastPrompt != "" {
		t.Error("no request should be sent for an unknown card type")
	}
}

func TestRunMissingModel(t *testing.T) {
	client := &fakeClient{reply: "x"}
	svc := newTestService(t, client, nil)
	svc.models.Analysis = ""

	_, err := svc.Run(context.Background(), Request{
		Op:       prompt.OpAnalyze,
		CardType: "bug",
		UserText: "card text",
	})
	if !errors.Is(err, llm.ErrNoModel) {
		t.Fatalf("expected ErrNoModel, got %v", err)
	}
	if client.lastPrompt != "" {
		t.Error("no request should be sent without a model")
	}
}

func TestRunClientErrorPropagates(t *testing.T) {
	wantErr := fmt.Errorf("boom")
	client := &fakeClient{err: wantErr}
	svc := newTestService(t, client, nil)

	_, err := svc.Run(context.Background(), Request{
		Op:       prompt.OpCreate,
		CardType: "bug",
		UserText: "d",
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected client error to propagate, got %v", err)
	}
}

func TestRunRecordsHistory(t *testing.T) {
	client := &fakeClient{reply: "<card>OUT</card>"}
	rec := &memRecorder{}
	svc := newTestService(t, client, rec)

	res, err := svc.Run(context.Background(), Request{
		Op:       prompt.OpCreate,
		CardType: "bug",
		UserText: "d",
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(rec.records) != 1 {
		t.Fatalf("expected 1 history record, got %d", len(rec.records))
	}
	got := rec.records[0]
	if got.ID != res.RequestID || got.Operation != "creation" || got.CardType != "bug" || got.Output != "OUT" {
		t.Errorf("unexpected history record %+v", got)
	}
}

func TestRunHistoryFailureIsNotFatal(t *testing.T) {
	client := &fakeClient{reply: "<card>OUT</card>"}
	rec := &memRecorder{err: fmt.Errorf("disk full")}
	svc := newTestService(t, client, rec)

	res, err := svc.Run(context.Background(), Request{
		Op:       prompt.OpCreate,
		CardType: "bug",
		UserText: "d",
	})
	if err != nil {
		t.Fatalf("history failure must not fail the request: %v", err)
	}
	if res.Text != "OUT" {
		t.Errorf("expected result despite recorder failure, got %q", res.Text)
	}
}
