package tui

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"cardsmith/internal/card"
	"cardsmith/internal/config"
	"cardsmith/internal/llm"
	"cardsmith/internal/prompt"
	"cardsmith/internal/template"
)

// fakeClient returns a canned reply or error without touching the network.
type fakeClient struct {
	reply string
	err   error
}

func (c *fakeClient) ChatCompletion(ctx context.Context, model, p string) (string, error) {
	if c.err != nil {
		return "", c.err
	}
	return c.reply, nil
}

func newTestApp(t *testing.T, client llm.Client) *App {
	t.Helper()

	dir := t.TempDir()
	for _, op := range prompt.Operations() {
		base := "Template:\n{Card_modelo}\n{informacoes_adicionais}\n{informacoes_fornecidas_pelo_usuario}{Card_para_analise}"
		if err := os.WriteFile(filepath.Join(dir, op.File()), []byte(base), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	composer, err := prompt.NewComposer(dir)
	if err != nil {
		t.Fatal(err)
	}

	store, err := template.Parse("<bug>Title:\nSteps:</bug>\n<feature>Title:\nGoal:</feature>")
	if err != nil {
		t.Fatal(err)
	}

	models := config.ModelsConfig{
		Validation: "test/validator",
		Creation:   "test/creator",
		Analysis:   "test/analyzer",
	}

	svc := card.NewService(store, composer, client, models, nil)
	a := NewApp(svc)
	a.Init()
	a.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return a
}

// collectMsgs runs a command tree to completion and gathers every message it
// produces, flattening batches.
func collectMsgs(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()

	out := make(chan tea.Msg, 32)
	var wg sync.WaitGroup
	var exec func(c tea.Cmd)
	exec = func(c tea.Cmd) {
		defer wg.Done()
		if c == nil {
			return
		}
		msg := c()
		if batch, ok := msg.(tea.BatchMsg); ok {
			for _, sub := range batch {
				wg.Add(1)
				go exec(sub)
			}
			return
		}
		if msg != nil {
			out <- msg
		}
	}
	wg.Add(1)
	go exec(cmd)

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for commands to finish")
	}

	close(out)
	var msgs []tea.Msg
	for m := range out {
		msgs = append(msgs, m)
	}
	return msgs
}

// deliverResult executes the submit command and feeds the resulting request
// message back through Update, as the runtime would.
func deliverResult(t *testing.T, a *App, cmd tea.Cmd) {
	t.Helper()
	delivered := false
	for _, msg := range collectMsgs(t, cmd) {
		switch msg.(type) {
		case ResultMsg, ResultErrMsg:
			a.Update(msg)
			delivered = true
		}
	}
	if !delivered {
		t.Fatal("submit produced no result message")
	}
}

func typeText(a *App, text string) {
	a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

func TestAppFailureThenRetrySucceeds(t *testing.T) {
	fake := &fakeClient{err: &llm.HTTPError{Status: 500, Body: "upstream exploded"}}
	a := newTestApp(t, fake)
	f := a.activeForm()

	typeText(a, "login crashes on empty password")

	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if f.State() != FormSubmitting {
		t.Fatalf("expected submitting after ctrl+s, got %v", f.State())
	}
	deliverResult(t, a, cmd)

	if f.State() != FormFailed {
		t.Fatalf("expected failed after a 500, got %v", f.State())
	}
	if a.status != "Request failed." {
		t.Errorf("unexpected status %q", a.status)
	}
	if f.Input() == "" {
		t.Error("failure must not clear the user's input")
	}

	// The form accepts a retry without re-entering the input.
	fake.err = nil
	fake.reply = "noise <info_validacao>Enough detail to fill the card.</info_validacao>"

	_, cmd = a.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if f.State() != FormSubmitting {
		t.Fatalf("expected submitting on retry, got %v", f.State())
	}
	deliverResult(t, a, cmd)

	if f.State() != FormSuccess {
		t.Fatalf("expected success after retry, got %v", f.State())
	}
	if f.Output() != "Enough detail to fill the card." {
		t.Errorf("expected tagged content extracted, got %q", f.Output())
	}
}

func TestAppIgnoresSubmitWhileRunning(t *testing.T) {
	fake := &fakeClient{reply: "<info_validacao>ok</info_validacao>"}
	a := newTestApp(t, fake)
	f := a.activeForm()

	typeText(a, "some task")

	_, first := a.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if first == nil {
		t.Fatal("expected a command from the first submit")
	}

	_, second := a.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if second != nil {
		t.Error("expected the second submit to be ignored")
	}
	if a.status != "A request is already running. Wait for it to finish." {
		t.Errorf("unexpected status %q", a.status)
	}
	if f.State() != FormSubmitting {
		t.Errorf("state should remain submitting, got %v", f.State())
	}

	deliverResult(t, a, first)
	if f.State() != FormSuccess {
		t.Errorf("expected success once the first request lands, got %v", f.State())
	}
}

func TestAppTabSwitchingKeepsFormsIndependent(t *testing.T) {
	fake := &fakeClient{reply: "<card>BUG-1</card>"}
	a := newTestApp(t, fake)

	typeText(a, "validate me")

	a.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	if a.tabs.Active() != TabIndexCreate {
		t.Fatalf("expected create tab active, got %d", a.tabs.Active())
	}
	if got := a.activeForm().Input(); got != "" {
		t.Errorf("create tab should start empty, got %q", got)
	}

	typeText(a, "make a card")
	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	deliverResult(t, a, cmd)

	if got := a.activeForm().Output(); got != "BUG-1" {
		t.Errorf("expected create output BUG-1, got %q", got)
	}

	a.Update(tea.KeyMsg{Type: tea.KeyCtrlP})
	back := a.activeForm()
	if back.Op() != prompt.OpValidate {
		t.Fatalf("expected validate tab after ctrl+p, got %v", back.Op())
	}
	if back.Input() != "validate me" {
		t.Errorf("validate input should survive tab switches, got %q", back.Input())
	}
	if back.Output() != "" {
		t.Errorf("validate output should be untouched, got %q", back.Output())
	}
}

func TestAppResultForInactiveTabDoesNotLeak(t *testing.T) {
	fake := &fakeClient{reply: "<analise>looks fine</analise>"}
	a := newTestApp(t, fake)

	a.tabs.SetActive(TabIndexAnalyze)
	a.activeForm().Focus()
	typeText(a, "card body")

	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyCtrlS})

	// Switch away before the result lands.
	a.tabs.SetActive(TabIndexValidate)
	deliverResult(t, a, cmd)

	if got := a.forms[prompt.OpAnalyze].Output(); got != "looks fine" {
		t.Errorf("expected analyze output on its own form, got %q", got)
	}
	if got := a.forms[prompt.OpValidate].Output(); got != "" {
		t.Errorf("validate form must stay empty, got %q", got)
	}
}
