package tui

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/stopwatch"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"cardsmith/internal/card"
	"cardsmith/internal/contextfile"
	"cardsmith/internal/prompt"
)

// opByTab maps tab indices to operations.
var opByTab = map[int]prompt.Operation{
	TabIndexValidate: prompt.OpValidate,
	TabIndexCreate:   prompt.OpCreate,
	TabIndexAnalyze:  prompt.OpAnalyze,
}

// App is the root bubbletea model: a tab bar, one form per operation, and a
// shared status bar with spinner and elapsed timer. Each form's request is
// independent; the only cross-tab state is the read-only template store,
// the configuration, and the attached context text.
type App struct {
	svc *card.Service

	tabs  TabBar
	forms map[prompt.Operation]*Form

	spin  spinner.Model
	watch stopwatch.Model

	projCtx    contextfile.Context
	ctxWatcher *contextfile.Watcher

	// attach mode: a one-line path prompt replacing the status bar.
	attaching bool
	attach    textinput.Model

	status   string
	width    int
	height   int
	quitting bool
}

// NewApp creates the TUI model around a pipeline service.
func NewApp(svc *card.Service) *App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	ti := textinput.New()
	ti.Placeholder = "path to .txt/.md/.rst context file"
	ti.CharLimit = 500

	types := svc.Templates().Names()
	forms := make(map[prompt.Operation]*Form, len(opByTab))
	for _, op := range prompt.Operations() {
		forms[op] = NewForm(op, types)
	}

	return &App{
		svc:    svc,
		tabs:   NewTabBar(),
		forms:  forms,
		spin:   sp,
		watch:  stopwatch.New(),
		attach: ti,
		status: "Ready.",
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return a.activeForm().Focus()
}

func (a *App) activeForm() *Form {
	return a.forms[opByTab[a.tabs.Active()]]
}

// anySubmitting reports whether any form has a request in flight.
func (a *App) anySubmitting() bool {
	for _, f := range a.forms {
		if f.Submitting() {
			return true
		}
	}
	return false
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.updateKey(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		for _, f := range a.forms {
			f.SetSize(msg.Width, msg.Height-4)
		}
		return a, nil

	case ResultMsg:
		f := a.forms[msg.Op]
		f.Finish(msg.Result.Text)
		a.status = fmt.Sprintf("Done in %s (%s).", msg.Result.Elapsed.Round(timeRound), msg.Result.Model)
		return a, a.stopTimerIfIdle()

	case ResultErrMsg:
		f := a.forms[msg.Op]
		f.Fail(msg.Err)
		a.status = "Request failed."
		return a, a.stopTimerIfIdle()

	case ContextUpdatedMsg:
		a.projCtx = msg.Context
		a.status = fmt.Sprintf("Project context loaded from %s.", msg.Context.Name())
		// First attachment (or a new path) starts the file watcher.
		if a.ctxWatcher == nil || a.ctxWatcher.Path() != msg.Context.Path {
			a.closeWatcher()
			if w, err := contextfile.Watch(msg.Context.Path); err == nil {
				a.ctxWatcher = w
			}
		}
		return a, a.waitForContextUpdate()

	case ContextErrMsg:
		a.status = fmt.Sprintf("Context file: %v", msg.Err)
		return a, a.waitForContextUpdate()

	case spinner.TickMsg:
		if !a.anySubmitting() {
			return a, nil
		}
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd

	case stopwatch.TickMsg, stopwatch.StartStopMsg, stopwatch.ResetMsg:
		var cmd tea.Cmd
		a.watch, cmd = a.watch.Update(msg)
		return a, cmd
	}

	return a, nil
}

func (a *App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.attaching {
		return a.updateAttachKey(msg)
	}

	switch msg.String() {
	case "ctrl+c":
		a.quitting = true
		a.closeWatcher()
		return a, tea.Quit

	case "ctrl+n":
		a.tabs.Next()
		return a, a.activeForm().Focus()

	case "ctrl+p":
		a.tabs.Prev()
		return a, a.activeForm().Focus()

	case "ctrl+s":
		return a, a.submit()

	case "ctrl+y":
		a.copyOutput()
		return a, nil

	case "ctrl+o":
		a.attaching = true
		a.activeForm().Blur()
		return a, a.attach.Focus()
	}

	f := a.activeForm()
	form, cmd := f.Update(msg)
	a.forms[f.Op()] = form
	return a, cmd
}

func (a *App) updateAttachKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c":
		a.attaching = false
		a.attach.Reset()
		return a, a.activeForm().Focus()

	case "enter":
		path := a.attach.Value()
		a.attaching = false
		a.attach.Reset()
		if path == "" {
			return a, a.activeForm().Focus()
		}
		return a, tea.Batch(a.activeForm().Focus(), a.attachContext(path))
	}

	var cmd tea.Cmd
	a.attach, cmd = a.attach.Update(msg)
	return a, cmd
}

// submit dispatches the active form's request off the render loop.
// A second submit while one is in flight is ignored with a notice.
func (a *App) submit() tea.Cmd {
	f := a.activeForm()
	if f.Submitting() {
		a.status = "A request is already running. Wait for it to finish."
		return nil
	}
	if f.CardType() == "" {
		a.status = "Select a card type first."
		return nil
	}

	req := card.Request{
		Op:       f.Op(),
		CardType: f.CardType(),
		UserText: f.Input(),
		Context:  a.projCtx.Text,
	}

	f.Begin()
	a.status = busyMessage(f.Op())

	run := func() tea.Msg {
		res, err := a.svc.Run(context.Background(), req)
		if err != nil {
			return ResultErrMsg{Op: req.Op, Err: err}
		}
		return ResultMsg{Op: req.Op, Result: res}
	}

	return tea.Batch(run, a.spin.Tick, a.watch.Reset(), a.watch.Start())
}

// stopTimerIfIdle stops the stopwatch once no form is submitting.
func (a *App) stopTimerIfIdle() tea.Cmd {
	if a.anySubmitting() {
		return nil
	}
	return a.watch.Stop()
}

func (a *App) copyOutput() {
	out := a.activeForm().Output()
	if out == "" {
		a.status = "Nothing to copy yet."
		return
	}
	if err := clipboard.WriteAll(out); err != nil {
		a.status = fmt.Sprintf("Copy failed: %v", err)
		return
	}
	a.status = "Result copied to clipboard."
}

// attachContext loads the context file off the render loop; the watcher is
// started when the resulting message is handled.
func (a *App) attachContext(path string) tea.Cmd {
	return func() tea.Msg {
		ctx, err := contextfile.Load(path)
		if err != nil {
			return ContextErrMsg{Err: err}
		}
		return ContextUpdatedMsg{Context: ctx}
	}
}

// waitForContextUpdate blocks on the watcher until the attached file changes.
func (a *App) waitForContextUpdate() tea.Cmd {
	w := a.ctxWatcher
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case ctx, ok := <-w.Updates():
			if !ok {
				return nil
			}
			return ContextUpdatedMsg{Context: ctx}
		case err, ok := <-w.Errors():
			if !ok {
				return nil
			}
			return ContextErrMsg{Err: err}
		}
	}
}

func (a *App) closeWatcher() {
	if a.ctxWatcher != nil {
		a.ctxWatcher.Close()
		a.ctxWatcher = nil
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if a.quitting {
		return "Goodbye!\n"
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		a.tabs.View(),
		a.activeForm().View(),
		a.statusBar(),
	)
}

// NewProgram creates a bubbletea program running the app.
func NewProgram(svc *card.Service) (*tea.Program, *App) {
	app := NewApp(svc)
	p := tea.NewProgram(app, tea.WithAltScreen())
	return p, app
}

// busyMessage returns the status line shown while an operation runs.
func busyMessage(op prompt.Operation) string {
	switch op {
	case prompt.OpValidate:
		return "Analyzing information with the model..."
	case prompt.OpCreate:
		return "Generating card with the model..."
	case prompt.OpAnalyze:
		return "Analyzing card with the model..."
	default:
		return "Working..."
	}
}
