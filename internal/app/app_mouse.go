package app

import (
	tea "charm.land/bubbletea/v2"
	"github.com/zhubert/askdesk/internal/ui"
)

// handleMouseClick opens the topic card under a left click. Clicks elsewhere
// fall through to the chat panel.
func (m *Model) handleMouseClick(msg tea.MouseClickMsg) (tea.Cmd, bool) {
	if m.modal.IsVisible() || m.screen != ScreenTopics {
		return nil, false
	}
	mouse := msg.Mouse()
	if mouse.Button != tea.MouseLeft {
		return nil, true
	}

	// Picker coordinates start below the header
	i, ok := m.topics.CardAt(mouse.X, mouse.Y-ui.HeaderHeight)
	if !ok {
		return nil, true
	}
	m.topics.Select(i)
	_, cmd := shortcutOpenTopic(m)
	return cmd, true
}
