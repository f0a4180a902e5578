package app

import (
	"errors"

	tea "charm.land/bubbletea/v2"
	"github.com/zhubert/askdesk/internal/notification"
	"github.com/zhubert/askdesk/internal/session"
)

// handleTopicsLoaded fills the picker or shows the inline load error. There
// is no automatic retry; the user reloads with r.
func (m *Model) handleTopicsLoaded(msg TopicsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.log.Error("failed to load topics", "error", msg.Err)
		m.topics.SetLoadError()
		return m, nil
	}
	m.log.Info("topics loaded", "count", len(msg.Topics))
	m.topics.SetTopics(msg.Topics)
	return m, nil
}

// handleChatResponse completes the in-flight request. Responses for a request
// the session no longer waits on (the user went back or cleared) are dropped.
func (m *Model) handleChatResponse(msg ChatResponseMsg) (tea.Model, tea.Cmd) {
	turn, err := m.session.Complete(msg.Ticket, msg.Response, msg.Err)
	if errors.Is(err, session.ErrNotPending) {
		m.log.Debug("dropping stale response", "topic", msg.Ticket.Request.Topic)
		return m, nil
	}

	m.chat.SetPending(false)
	m.chat.SetTurns(m.session.Turns())

	if turn.Role != session.RoleAssistant || !m.config.GetNotificationsEnabled() {
		return m, nil
	}
	topic, _ := m.session.Topic()
	return m, m.notifyCmd(topic.Name, turn.Content)
}

func (m *Model) notifyCmd(topicName, answer string) tea.Cmd {
	log := m.log
	return func() tea.Msg {
		if err := notification.AnswerReady(topicName, answer); err != nil {
			log.Warn("notification failed", "error", err)
		}
		return nil
	}
}
