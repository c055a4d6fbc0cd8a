package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// widget is the capability interface every dashboard panel conforms to:
// update pulls the latest mailbox snapshot, view renders into the given
// width, handleKey receives input while the widget holds focus.
type widget interface {
	name() string
	update()
	view(width int, focused bool) string
	handleKey(msg tea.KeyMsg)
}

// keyCapturer is implemented by widgets that must see every key while a
// modal input is open, bypassing global bindings.
type keyCapturer interface {
	capturesKeys() bool
}

// Styles shared by the widget cards.
var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("45"))
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("81")).Bold(true)
	focusedLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
	cardStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("60")).
			Padding(0, 1).
			MarginRight(1)
	focusedCardStyle = cardStyle.Copy().BorderForeground(lipgloss.Color("220"))
)

func card(title, body string, focused bool) string {
	label, style := labelStyle, cardStyle
	if focused {
		label, style = focusedLabel, focusedCardStyle
	}
	return style.Render(label.Render(title) + "\n" + body)
}
