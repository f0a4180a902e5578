package app

import (
	"context"
	"log/slog"

	tea "charm.land/bubbletea/v2"
	"github.com/zhubert/askdesk/internal/api"
	"github.com/zhubert/askdesk/internal/clipboard"
	"github.com/zhubert/askdesk/internal/config"
	"github.com/zhubert/askdesk/internal/logger"
	"github.com/zhubert/askdesk/internal/session"
	"github.com/zhubert/askdesk/internal/ui"
)

// Screen is the top-level view being shown.
type Screen int

const (
	ScreenTopics Screen = iota // topic picker
	ScreenChat                 // conversation with the active topic
)

// String returns a human-readable name for the screen
func (s Screen) String() string {
	switch s {
	case ScreenTopics:
		return "Topics"
	case ScreenChat:
		return "Chat"
	default:
		return "Unknown"
	}
}

// Backend is the part of the API client the app needs.
type Backend interface {
	Topics(ctx context.Context) ([]api.Topic, error)
	Chat(ctx context.Context, req api.ChatRequest) (*api.ChatResponse, error)
}

// Options adjusts a Model beyond what the config file says.
type Options struct {
	// Basic forces the plain client: no timestamps, badges, copy or selector.
	Basic bool
	// Difficulty overrides the configured default level when non-empty.
	Difficulty session.Difficulty
	// Clipboard receives copied answers. Nil means the system clipboard.
	Clipboard clipboard.Writer
}

// Model is the main Bubble Tea model
type Model struct {
	config    *config.Config
	backend   Backend
	clipboard clipboard.Writer
	session   *session.Session
	log       *slog.Logger

	header *ui.Header
	footer *ui.Footer
	topics *ui.TopicList
	chat   *ui.Chat
	modal  *ui.Modal

	screen Screen
	width  int
	height int
}

// TopicsLoadedMsg carries the result of one catalog request.
type TopicsLoadedMsg struct {
	Topics []api.Topic
	Err    error
}

// ChatResponseMsg carries the result of one chat request.
type ChatResponseMsg struct {
	Ticket   session.Ticket
	Response *api.ChatResponse
	Err      error
}

// New creates a new app model
func New(cfg *config.Config, backend Backend, opts Options) *Model {
	if savedTheme := cfg.GetTheme(); savedTheme != "" {
		ui.SetThemeByName(savedTheme)
	}

	sessOpts := session.Enhanced()
	if opts.Basic || cfg.GetBasic() {
		sessOpts = session.Basic()
	}
	sess := session.New(sessOpts)

	difficulty := opts.Difficulty
	if difficulty == "" {
		difficulty = session.Difficulty(cfg.GetDifficulty())
	}
	sess.SetDefaultDifficulty(difficulty)

	cb := opts.Clipboard
	if cb == nil {
		cb = clipboard.System{}
	}

	m := &Model{
		config:    cfg,
		backend:   backend,
		clipboard: cb,
		session:   sess,
		log:       logger.ComponentLogger("app"),
		header:    ui.NewHeader(),
		footer:    ui.NewFooter(),
		topics:    ui.NewTopicList(),
		chat:      ui.NewChat(sessOpts.History),
		modal:     ui.NewModal(),
		screen:    ScreenTopics,
	}
	m.log.Info("app created",
		"history", sessOpts.History,
		"difficulty", sessOpts.Difficulty,
		"defaultDifficulty", string(sess.Difficulty()),
	)
	return m
}

// Screen returns the screen being shown.
func (m *Model) Screen() Screen {
	return m.screen
}

// Session returns the conversation state.
func (m *Model) Session() *session.Session {
	return m.session
}

// Init starts the one catalog load.
func (m *Model) Init() tea.Cmd {
	return m.loadTopicsCmd()
}

func (m *Model) loadTopicsCmd() tea.Cmd {
	backend := m.backend
	return func() tea.Msg {
		topics, err := backend.Topics(context.Background())
		return TopicsLoadedMsg{Topics: topics, Err: err}
	}
}

func (m *Model) askCmd(ticket session.Ticket) tea.Cmd {
	backend := m.backend
	return func() tea.Msg {
		resp, err := backend.Chat(context.Background(), ticket.Request)
		return ChatResponseMsg{Ticket: ticket, Response: resp, Err: err}
	}
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()
		return m, nil

	case TopicsLoadedMsg:
		return m.handleTopicsLoaded(msg)

	case ChatResponseMsg:
		return m.handleChatResponse(msg)

	case ui.FlashTickMsg:
		if m.footer.HasFlash() && !m.footer.ClearIfExpired() {
			return m, ui.FlashTick()
		}
		return m, nil

	case tea.MouseClickMsg:
		if cmd, handled := m.handleMouseClick(msg); handled {
			return m, cmd
		}

	case tea.KeyPressMsg:
		if m.modal.IsVisible() {
			return m.handleModalKey(msg)
		}
		if result, cmd, handled := m.ExecuteShortcut(msg.String()); handled {
			return result, cmd
		}
		switch m.screen {
		case ScreenTopics:
			m.topics.Update(msg)
			return m, nil
		case ScreenChat:
			_, cmd := m.chat.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	// Everything else (spinner ticks, copy resets, mouse wheel, paste, cursor
	// blink) goes to the chat panel, and to an open modal as well.
	var cmds []tea.Cmd
	_, cmd := m.chat.Update(msg)
	cmds = append(cmds, cmd)
	if m.modal.IsVisible() {
		m.modal, cmd = m.modal.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}
