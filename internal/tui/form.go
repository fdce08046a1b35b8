package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"cardsmith/internal/prompt"
)

// FormState is the lifecycle of one form's request.
type FormState int

const (
	// FormIdle waits for input; the submit action is available.
	FormIdle FormState = iota
	// FormSubmitting has a request in flight; submit is disabled.
	FormSubmitting
	// FormSuccess shows the extracted result until the next edit.
	FormSuccess
	// FormFailed shows the error until the next edit or retry.
	FormFailed
)

// String returns a human-readable form state.
func (s FormState) String() string {
	switch s {
	case FormIdle:
		return "idle"
	case FormSubmitting:
		return "submitting"
	case FormSuccess:
		return "success"
	case FormFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Focus targets within a form.
const (
	focusType = iota
	focusInput
	focusOutput
)

// formCopy holds the per-operation labels.
type formCopy struct {
	instructions string
	inputLabel   string
	outputLabel  string
}

var copyByOp = map[prompt.Operation]formCopy{
	prompt.OpValidate: {
		instructions: "Describe the task in natural language; the model judges whether the information is enough to fill the selected template.",
		inputLabel:   "Task information",
		outputLabel:  "Information analysis",
	},
	prompt.OpCreate: {
		instructions: "Pick a card type, describe the task, then submit to generate the filled card.",
		inputLabel:   "Task description",
		outputLabel:  "Generated card",
	},
	prompt.OpAnalyze: {
		instructions: "Paste the filled card to review; the model critiques clarity, ambiguity, and template adherence.",
		inputLabel:   "Card under review",
		outputLabel:  "Card analysis",
	},
}

// Form is one tab's input/output surface and its request state machine:
// Idle -> Submitting -> (Success | Failed) -> Idle.
type Form struct {
	op    prompt.Operation
	types []string

	typeIndex int
	input     textarea.Model
	output    viewport.Model

	state      FormState
	errMsg     string
	outputText string
	focus      int

	width  int
	height int
}

// NewForm creates a form for the given operation and card types.
// The types slice keeps template file order.
func NewForm(op prompt.Operation, types []string) *Form {
	ta := textarea.New()
	ta.Placeholder = "Type here..."
	ta.CharLimit = 0
	ta.ShowLineNumbers = false

	return &Form{
		op:     op,
		types:  types,
		input:  ta,
		output: viewport.New(80, 10),
		state:  FormIdle,
		focus:  focusInput,
	}
}

// Op returns the form's operation.
func (f *Form) Op() prompt.Operation { return f.op }

// State returns the current form state.
func (f *Form) State() FormState { return f.state }

// Err returns the displayed error message, if any.
func (f *Form) Err() string { return f.errMsg }

// CardType returns the selected card type.
func (f *Form) CardType() string {
	if len(f.types) == 0 {
		return ""
	}
	return f.types[f.typeIndex]
}

// Input returns the current input text.
func (f *Form) Input() string { return f.input.Value() }

// Output returns the displayed output text.
func (f *Form) Output() string { return f.outputText }

// Submitting reports whether a request is in flight.
func (f *Form) Submitting() bool { return f.state == FormSubmitting }

// setOutput updates both the viewport and the copyable text.
func (f *Form) setOutput(text string) {
	f.outputText = text
	f.output.SetContent(text)
	f.output.GotoTop()
}

// Begin marks the form as submitting and clears the previous output so stale
// results cannot be mistaken for the new one.
func (f *Form) Begin() {
	f.state = FormSubmitting
	f.errMsg = ""
	f.setOutput("")
}

// Finish records a successful result.
func (f *Form) Finish(text string) {
	f.state = FormSuccess
	f.setOutput(text)
}

// Fail records a failed request. The input is untouched so the user can
// retry as-is.
func (f *Form) Fail(err error) {
	f.state = FormFailed
	f.errMsg = err.Error()
}

// Update handles messages while this form is the active tab.
func (f *Form) Update(msg tea.Msg) (*Form, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "tab":
			f.cycleFocus(1)
			return f, f.focusCmd()
		case "shift+tab":
			f.cycleFocus(-1)
			return f, f.focusCmd()
		case "left", "right":
			if f.focus == focusType {
				f.cycleType(msg.String())
				return f, nil
			}
		}

		if f.focus == focusInput {
			// Any edit after a result returns the form to idle.
			if f.state == FormSuccess || f.state == FormFailed {
				f.state = FormIdle
				f.errMsg = ""
			}
			var cmd tea.Cmd
			f.input, cmd = f.input.Update(msg)
			return f, cmd
		}
		if f.focus == focusOutput {
			var cmd tea.Cmd
			f.output, cmd = f.output.Update(msg)
			return f, cmd
		}
	}

	return f, nil
}

func (f *Form) cycleType(key string) {
	if len(f.types) == 0 {
		return
	}
	if key == "right" {
		f.typeIndex = (f.typeIndex + 1) % len(f.types)
	} else {
		f.typeIndex = (f.typeIndex - 1 + len(f.types)) % len(f.types)
	}
}

func (f *Form) cycleFocus(delta int) {
	f.focus = (f.focus + delta + 3) % 3
	if f.focus == focusInput {
		f.input.Focus()
	} else {
		f.input.Blur()
	}
}

func (f *Form) focusCmd() tea.Cmd {
	if f.focus == focusInput {
		return textarea.Blink
	}
	return nil
}

// Focus gives the input area keyboard focus.
func (f *Form) Focus() tea.Cmd {
	f.focus = focusInput
	return f.input.Focus()
}

// Blur removes keyboard focus from the input area.
func (f *Form) Blur() {
	f.input.Blur()
}

// SetSize resizes the form's components.
func (f *Form) SetSize(width, height int) {
	f.width = width
	f.height = height

	inner := width - 4
	if inner < 20 {
		inner = 20
	}

	// Selector + instructions + labels take fixed rows; the rest is split
	// between input and output.
	avail := height - 8
	if avail < 6 {
		avail = 6
	}
	inputH := avail / 2
	outputH := avail - inputH

	f.input.SetWidth(inner)
	f.input.SetHeight(inputH)
	f.output.Width = inner
	f.output.Height = outputH
}

// View renders the form.
func (f *Form) View() string {
	c := copyByOp[f.op]

	label := lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	focusedFrame := frame.BorderForeground(lipgloss.Color("205"))

	selector := fmt.Sprintf("Card type: < %s >", f.CardType())
	if f.focus == focusType {
		selector = label.Render(selector)
	} else {
		selector = dim.Render(selector)
	}

	inputFrame := frame
	if f.focus == focusInput {
		inputFrame = focusedFrame
	}
	outputFrame := frame
	if f.focus == focusOutput {
		outputFrame = focusedFrame
	}

	var outputArea string
	switch f.state {
	case FormFailed:
		outputArea = outputFrame.Render(errStyle.Render("Error: " + f.errMsg))
	default:
		outputArea = outputFrame.Render(f.output.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		selector,
		dim.Render(c.instructions),
		label.Render(c.inputLabel),
		inputFrame.Render(f.input.View()),
		label.Render(c.outputLabel),
		outputArea,
	)
}
