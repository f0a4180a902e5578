package modals

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/zhubert/askdesk/internal/keys"
)

// ThemeState is the theme picker.
type ThemeState struct {
	Themes        []ThemeOption
	SelectedIndex int
	CurrentTheme  string
}

func (*ThemeState) modalState() {}

func (s *ThemeState) Title() string { return "Select Theme" }

func (s *ThemeState) Help() string {
	return "↑/↓ to select, Enter to apply, Esc to cancel"
}

func (s *ThemeState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	items := make([]string, len(s.Themes))
	for i, t := range s.Themes {
		items[i] = t.Label
		if t.Name == s.CurrentTheme {
			items[i] += " (current)"
		}
	}
	content := RenderSelectableList(items, s.SelectedIndex)

	help := ModalHelpStyle.Render(s.Help())

	return lipgloss.JoinVertical(lipgloss.Left, title, content, help)
}

func (s *ThemeState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case keys.Up, "k":
			s.SelectedIndex = moveSelection(s.SelectedIndex, -1, len(s.Themes))
		case keys.Down, "j":
			s.SelectedIndex = moveSelection(s.SelectedIndex, 1, len(s.Themes))
		}
	}
	return s, nil
}

// GetSelectedTheme returns the selected theme name, or "" when the list is
// empty.
func (s *ThemeState) GetSelectedTheme() string {
	if len(s.Themes) == 0 || s.SelectedIndex >= len(s.Themes) {
		return ""
	}
	return s.Themes[s.SelectedIndex].Name
}

// NewThemeState creates a ThemeState with the current theme preselected.
func NewThemeState(themes []ThemeOption, current string) *ThemeState {
	selectedIndex := 0
	for i, t := range themes {
		if t.Name == current {
			selectedIndex = i
			break
		}
	}
	return &ThemeState{
		Themes:        themes,
		SelectedIndex: selectedIndex,
		CurrentTheme:  current,
	}
}
