package modals

import (
	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"
	"github.com/zhubert/askdesk/internal/session"
)

// DifficultyState lets the user pick the answer detail level.
type DifficultyState struct {
	Original session.Difficulty
	selected string

	form *huh.Form
}

func (*DifficultyState) modalState() {}

func (s *DifficultyState) Title() string { return "Difficulty" }

func (s *DifficultyState) Help() string {
	return "↑/↓ to select, Enter to apply, Esc to cancel"
}

func (s *DifficultyState) Render() string {
	title := ModalTitleStyle.Render(s.Title())
	hint := lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true).
		MarginTop(1).
		Render(s.Selected().Hint())
	help := ModalHelpStyle.Render(s.Help())
	return lipgloss.JoinVertical(lipgloss.Left, title, s.form.View(), hint, help)
}

func (s *DifficultyState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.form, cmd = updatePicker(s.form, msg)
	return s, cmd
}

// Selected returns the highlighted level.
func (s *DifficultyState) Selected() session.Difficulty {
	d := session.Difficulty(s.selected)
	if !d.Valid() {
		return s.Original
	}
	return d
}

// Changed reports whether the highlighted level differs from the current one.
func (s *DifficultyState) Changed() bool {
	return s.Selected() != s.Original
}

// NewDifficultyState creates the picker with current preselected.
func NewDifficultyState(current session.Difficulty) *DifficultyState {
	if !current.Valid() {
		current = session.DefaultDifficulty
	}
	s := &DifficultyState{
		Original: current,
		selected: string(current),
	}

	levels := session.Difficulties()
	options := make([]huh.Option[string], len(levels))
	for i, d := range levels {
		options[i] = huh.NewOption(d.Label(), string(d))
	}

	s.form = newPickerForm("Answer detail", options, &s.selected, ModalWidth-6)
	return s
}
