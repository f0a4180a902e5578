package app

import (
	tea "charm.land/bubbletea/v2"
	"github.com/zhubert/askdesk/internal/keys"
	"github.com/zhubert/askdesk/internal/ui"
	"github.com/zhubert/askdesk/internal/ui/modals"
)

// handleModalKey routes a key to the visible modal. Enter and esc are
// resolved here; everything else goes to the modal state.
func (m *Model) handleModalKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == keys.CtrlC {
		return m, tea.Quit
	}

	switch s := m.modal.State.(type) {
	case *modals.AlertState:
		if key == keys.Enter || key == keys.Escape {
			m.modal.Hide()
		}
		return m, nil

	case *modals.ConfirmClearState:
		return m.handleConfirmClearModal(key, msg, s)

	case *modals.DifficultyState:
		return m.handleDifficultyModal(key, msg, s)

	case *modals.ThemeState:
		return m.handleThemeModal(key, msg, s)

	case *modals.HelpState:
		if key == keys.Escape && !s.IsFiltering() {
			m.modal.Hide()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.modal, cmd = m.modal.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmClearModal(key string, msg tea.KeyPressMsg, state *modals.ConfirmClearState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		m.modal.Hide()
		if !state.Confirmed() {
			return m, nil
		}
		m.session.Clear()
		m.chat.SetPending(false)
		m.chat.SetTurns(m.session.Turns())
		return m, m.flashConversationCleared()
	}
	var cmd tea.Cmd
	m.modal, cmd = m.modal.Update(msg)
	return m, cmd
}

func (m *Model) handleDifficultyModal(key string, msg tea.KeyPressMsg, state *modals.DifficultyState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		m.modal.Hide()
		if !state.Changed() {
			return m, nil
		}
		if err := m.session.SetDifficulty(state.Selected()); err != nil {
			m.log.Warn("difficulty rejected", "error", err)
			return m, m.ShowFlash(err.Error(), ui.FlashError)
		}
		m.refreshDifficultyLabel()
		return m, m.flashDifficulty(state.Selected())
	}
	var cmd tea.Cmd
	m.modal, cmd = m.modal.Update(msg)
	return m, cmd
}

func (m *Model) handleThemeModal(key string, msg tea.KeyPressMsg, state *modals.ThemeState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		name := state.GetSelectedTheme()
		m.modal.Hide()
		if name == "" || name == string(ui.CurrentThemeName()) {
			return m, nil
		}
		ui.SetThemeByName(name)
		m.config.SetTheme(name)
		err := m.config.Save()
		if err != nil {
			m.log.Error("failed to save theme", "error", err)
		}
		return m, m.flashTheme(err)
	}
	var cmd tea.Cmd
	m.modal, cmd = m.modal.Update(msg)
	return m, cmd
}
