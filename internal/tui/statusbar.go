package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// timeRound is the display granularity for elapsed times.
const timeRound = 100 * time.Millisecond

// statusBar renders the bottom line: status text on the left, context file
// indicator and elapsed timer on the right. In attach mode it becomes the
// path prompt instead.
func (a *App) statusBar() string {
	barStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("250")).
		Background(lipgloss.Color("236")).
		Padding(0, 1)
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	if a.attaching {
		return barStyle.Render("Attach context: " + a.attach.View())
	}

	left := a.status
	if a.anySubmitting() {
		left = a.spin.View() + " " + left
	}

	var right string
	if a.projCtx.Path != "" {
		right = dim.Render("[ctx: " + a.projCtx.Name() + "] ")
	}
	elapsed := a.watch.Elapsed()
	if elapsed > 0 {
		mins := int(elapsed.Minutes())
		secs := int(elapsed.Seconds()) % 60
		right += fmt.Sprintf("%02d:%02d", mins, secs)
	}

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}

	help := dim.Render("ctrl+s submit · ctrl+n/p tab · ctrl+o context · ctrl+y copy · ctrl+c quit")
	bar := barStyle.Render(left + fmt.Sprintf("%*s", gap, "") + right)
	return lipgloss.JoinVertical(lipgloss.Left, bar, help)
}
