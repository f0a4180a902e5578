package modals

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// AlertState is a blocking message that must be acknowledged.
type AlertState struct {
	Heading string
	Message string
	Detail  string
}

func (*AlertState) modalState() {}

func (s *AlertState) Title() string { return s.Heading }

func (s *AlertState) Help() string { return "Enter or Esc to dismiss" }

func (s *AlertState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	width := ModalWidth - 6
	if width < 10 {
		width = 10
	}
	message := lipgloss.NewStyle().
		Foreground(ColorText).
		Width(width).
		Render(s.Message)

	parts := []string{title, message}
	if s.Detail != "" {
		parts = append(parts, lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true).
			MarginTop(1).
			Width(width).
			Render(s.Detail))
	}
	parts = append(parts, ModalHelpStyle.Render(s.Help()))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Update ignores everything; the app closes the alert on enter or esc.
func (s *AlertState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	return s, nil
}

// NewAlertState creates an alert with a heading and message.
func NewAlertState(heading, message, detail string) *AlertState {
	return &AlertState{
		Heading: heading,
		Message: message,
		Detail:  detail,
	}
}

// NewClipboardAlertState is shown when copying an answer fails.
func NewClipboardAlertState(err error) *AlertState {
	detail := ""
	if err != nil {
		detail = err.Error()
	}
	return NewAlertState("Clipboard", "Failed to copy to clipboard", detail)
}
