package modals

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/zhubert/askdesk/internal/keys"
)

// ConfirmClearState asks before the conversation is reset.
type ConfirmClearState struct {
	TopicName     string
	Options       []string
	SelectedIndex int
}

func (*ConfirmClearState) modalState() {}

func (s *ConfirmClearState) Title() string { return "Clear Conversation?" }

func (s *ConfirmClearState) Help() string {
	return "↑/↓ to select, Enter to confirm, Esc to cancel"
}

func (s *ConfirmClearState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	topicLabel := lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true).
		MarginBottom(1).
		Render(s.TopicName)

	message := lipgloss.NewStyle().
		Foreground(ColorText).
		MarginBottom(1).
		Render("All questions and answers for this topic will be removed.")

	optionList := RenderSelectableList(s.Options, s.SelectedIndex)
	help := ModalHelpStyle.Render(s.Help())

	return lipgloss.JoinVertical(lipgloss.Left, title, topicLabel, message, optionList, help)
}

func (s *ConfirmClearState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case keys.Up, "k":
			s.SelectedIndex = moveSelection(s.SelectedIndex, -1, len(s.Options))
		case keys.Down, "j":
			s.SelectedIndex = moveSelection(s.SelectedIndex, 1, len(s.Options))
		case "y":
			s.SelectedIndex = 0
		case "n":
			s.SelectedIndex = 1
		}
	}
	return s, nil
}

// Confirmed returns true if the clear option is selected.
func (s *ConfirmClearState) Confirmed() bool {
	return s.SelectedIndex == 0
}

// NewConfirmClearState creates a confirmation for the given topic, with
// Cancel preselected.
func NewConfirmClearState(topicName string) *ConfirmClearState {
	return &ConfirmClearState{
		TopicName:     topicName,
		Options:       []string{"Clear conversation", "Cancel"},
		SelectedIndex: 1,
	}
}
