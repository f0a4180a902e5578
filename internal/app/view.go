package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/zhubert/askdesk/internal/ui"
)

// updateSizes recalculates and applies dimensions to all UI components
func (m *Model) updateSizes() {
	ctx := ui.GetViewContext()
	ctx.UpdateTerminalSize(m.width, m.height)

	m.header.SetWidth(ctx.TerminalWidth)
	m.footer.SetWidth(ctx.TerminalWidth)
	m.topics.SetSize(ctx.ContentWidth, ctx.ContentHeight)
	m.chat.SetSize(ctx.ContentWidth, ctx.ContentHeight)
}

func (m *Model) footerContext() ui.FooterContext {
	if m.screen == ScreenTopics {
		return ui.FooterContext{Mode: ui.FooterTopics}
	}
	return ui.FooterContext{
		Mode:       ui.FooterChat,
		Pending:    m.session.Pending(),
		CanCopy:    m.chat.CanCopy(),
		HasError:   m.chat.HasError(),
		Difficulty: m.session.Options().Difficulty,
	}
}

// View renders the app
func (m *Model) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	v.SetContent(m.render())
	return v
}

// render draws the whole screen as a string.
func (m *Model) render() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.modal.IsVisible() {
		return m.modal.View(m.width, m.height)
	}

	m.footer.SetContext(m.footerContext())

	var body string
	switch m.screen {
	case ScreenChat:
		body = m.chat.View()
	default:
		body = m.topics.View()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.header.View(),
		body,
		m.footer.View(),
	)
}
