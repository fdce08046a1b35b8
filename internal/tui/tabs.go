// Package tui provides the terminal user interface for cardsmith.
package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Tab index constants, one per operation.
const (
	TabIndexValidate = iota
	TabIndexCreate
	TabIndexAnalyze
)

// Default tab labels, in operation order.
var defaultTabs = []string{"Validate Info", "Create Card", "Analyze Card"}

// TabBar is a navigation component for switching between the three forms.
type TabBar struct {
	tabs   []string
	active int

	// Styles
	activeStyle   lipgloss.Style
	inactiveStyle lipgloss.Style
	barStyle      lipgloss.Style
}

// NewTabBar creates a new TabBar with the default tabs.
func NewTabBar() TabBar {
	return TabBar{
		tabs:   defaultTabs,
		active: TabIndexValidate,

		activeStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			Background(lipgloss.Color("236")).
			Padding(0, 2),

		inactiveStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Padding(0, 2),

		barStyle: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("238")),
	}
}

// View renders the tab bar.
func (t TabBar) View() string {
	var renderedTabs []string

	for i, tab := range t.tabs {
		if i == t.active {
			renderedTabs = append(renderedTabs, t.activeStyle.Render(tab))
		} else {
			renderedTabs = append(renderedTabs, t.inactiveStyle.Render(tab))
		}
	}

	return t.barStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, renderedTabs...))
}

// Next advances to the following tab, wrapping around.
func (t *TabBar) Next() {
	t.active = (t.active + 1) % len(t.tabs)
}

// Prev moves to the previous tab, wrapping around.
func (t *TabBar) Prev() {
	t.active = (t.active - 1 + len(t.tabs)) % len(t.tabs)
}

// SetActive sets the active tab by index.
// If the index is out of bounds, it is clamped to valid range.
func (t *TabBar) SetActive(index int) {
	if index < 0 {
		t.active = 0
	} else if index >= len(t.tabs) {
		t.active = len(t.tabs) - 1
	} else {
		t.active = index
	}
}

// Active returns the currently active tab index.
func (t TabBar) Active() int {
	return t.active
}

// Tabs returns the list of tab labels.
func (t TabBar) Tabs() []string {
	return t.tabs
}
