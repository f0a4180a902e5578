package app

import (
	tea "charm.land/bubbletea/v2"
	"github.com/zhubert/askdesk/internal/session"
	"github.com/zhubert/askdesk/internal/ui"
)

// Footer confirmations for actions that leave no other trace on screen.
const (
	flashCleared      = "Conversation cleared"
	flashThemeNotSave = "Theme applied but not saved"
)

// ShowFlash puts text in the footer and returns the tick that expires it.
func (m *Model) ShowFlash(text string, flashType ui.FlashType) tea.Cmd {
	m.footer.SetFlash(text, flashType)
	return ui.FlashTick()
}

func (m *Model) flashConversationCleared() tea.Cmd {
	return m.ShowFlash(flashCleared, ui.FlashInfo)
}

// flashDifficulty names the new level along with its hint.
func (m *Model) flashDifficulty(d session.Difficulty) tea.Cmd {
	return m.ShowFlash("Difficulty: "+d.Label()+" ("+d.Hint()+")", ui.FlashInfo)
}

// flashTheme reports the outcome of a theme change. A failed save still
// leaves the theme applied for this run.
func (m *Model) flashTheme(saveErr error) tea.Cmd {
	if saveErr != nil {
		return m.ShowFlash(flashThemeNotSave, ui.FlashError)
	}
	return m.ShowFlash("Theme: "+ui.CurrentTheme().Name, ui.FlashSuccess)
}
