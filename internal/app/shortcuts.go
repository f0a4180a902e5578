package app

import (
	tea "charm.land/bubbletea/v2"
	"github.com/zhubert/askdesk/internal/keys"
	"github.com/zhubert/askdesk/internal/render"
	"github.com/zhubert/askdesk/internal/ui"
	"github.com/zhubert/askdesk/internal/ui/modals"
)

// Shortcut represents a keyboard shortcut with its metadata and handler.
// The registry is the single source for key handling and the help modal.
type Shortcut struct {
	Key         string                              // The key binding (e.g., "r", "ctrl+y")
	DisplayKey  string                              // Display name in help; defaults to Key
	Description string                              // Human-readable description
	Category    string                              // Section for help modal grouping
	Screen      *Screen                             // Only active on this screen; nil for any
	Handler     func(m *Model) (tea.Model, tea.Cmd) // Action to perform
	Condition   func(m *Model) bool                 // Optional extra condition
}

// Categories for organizing shortcuts in the help modal
const (
	CategoryTopics  = "Topics"
	CategoryChat    = "Chat"
	CategoryGeneral = "General"
)

var categoryOrder = []string{CategoryTopics, CategoryChat, CategoryGeneral}

var (
	onTopics = screenPtr(ScreenTopics)
	onChat   = screenPtr(ScreenChat)
)

func screenPtr(s Screen) *Screen { return &s }

// ShortcutRegistry is the central registry of keyboard shortcuts.
var ShortcutRegistry = []Shortcut{
	// Topics
	{
		Key:         keys.Enter,
		Description: "Open selected topic",
		Category:    CategoryTopics,
		Screen:      onTopics,
		Handler:     shortcutOpenTopic,
	},
	{
		Key:         "r",
		Description: "Reload topics",
		Category:    CategoryTopics,
		Screen:      onTopics,
		Handler:     shortcutReload,
		Condition:   func(m *Model) bool { return !m.topics.Loading() },
	},
	{
		Key:         "t",
		Description: "Change theme",
		Category:    CategoryTopics,
		Screen:      onTopics,
		Handler:     shortcutTheme,
	},
	{
		Key:         "q",
		Description: "Quit",
		Category:    CategoryTopics,
		Screen:      onTopics,
		Handler:     shortcutQuit,
	},

	// Chat
	{
		Key:         keys.Enter,
		Description: "Send question",
		Category:    CategoryChat,
		Screen:      onChat,
		Handler:     shortcutSend,
	},
	{
		Key:         keys.ShiftEnter,
		Description: "New line",
		Category:    CategoryChat,
		Screen:      onChat,
		Handler:     shortcutNewline,
	},
	{
		Key:         keys.Escape,
		Description: "Back to topics",
		Category:    CategoryChat,
		Screen:      onChat,
		Handler:     shortcutBack,
	},
	{
		Key:         keys.CtrlY,
		Description: "Copy focused answer",
		Category:    CategoryChat,
		Screen:      onChat,
		Handler:     shortcutCopy,
		Condition:   func(m *Model) bool { return m.chat.CanCopy() },
	},
	{
		Key:         keys.AltUp,
		Description: "Focus previous answer",
		Category:    CategoryChat,
		Screen:      onChat,
		Handler:     func(m *Model) (tea.Model, tea.Cmd) { m.chat.MoveCopyFocus(-1); return m, nil },
		Condition:   func(m *Model) bool { return m.chat.CanCopy() },
	},
	{
		Key:         keys.AltDown,
		Description: "Focus next answer",
		Category:    CategoryChat,
		Screen:      onChat,
		Handler:     func(m *Model) (tea.Model, tea.Cmd) { m.chat.MoveCopyFocus(1); return m, nil },
		Condition:   func(m *Model) bool { return m.chat.CanCopy() },
	},
	{
		Key:         keys.CtrlD,
		Description: "Change difficulty",
		Category:    CategoryChat,
		Screen:      onChat,
		Handler:     shortcutDifficulty,
		Condition:   func(m *Model) bool { return m.session.Options().Difficulty },
	},
	{
		Key:         keys.CtrlL,
		Description: "Clear conversation",
		Category:    CategoryChat,
		Screen:      onChat,
		Handler:     shortcutClear,
		Condition:   func(m *Model) bool { return !m.session.Pending() },
	},
	{
		Key:         keys.CtrlX,
		Description: "Dismiss error",
		Category:    CategoryChat,
		Screen:      onChat,
		Handler:     func(m *Model) (tea.Model, tea.Cmd) { m.chat.DismissError(); return m, nil },
		Condition:   func(m *Model) bool { return m.chat.HasError() },
	},

	// General
	{
		Key:         keys.CtrlC,
		Description: "Quit",
		Category:    CategoryGeneral,
		Handler:     shortcutQuit,
	},
}

// helpShortcut is kept out of the registry because its handler reads it.
var helpShortcut = Shortcut{
	Key:         "?",
	Description: "Show this help",
	Category:    CategoryTopics,
	Screen:      onTopics,
}

// DisplayOnlyShortcuts are shown in help but handled by components.
var DisplayOnlyShortcuts = []Shortcut{
	{DisplayKey: "↑/↓ or j/k", Description: "Move between topics", Category: CategoryTopics},
	{DisplayKey: "PgUp/PgDn", Description: "Scroll conversation", Category: CategoryChat},
}

func (m *Model) isShortcutApplicable(s Shortcut) bool {
	if s.Screen != nil && *s.Screen != m.screen {
		return false
	}
	if s.Condition != nil && !s.Condition(m) {
		return false
	}
	return true
}

// ExecuteShortcut runs the shortcut bound to key on the current screen.
// Returns false when no shortcut applies, so the key reaches the component.
func (m *Model) ExecuteShortcut(key string) (tea.Model, tea.Cmd, bool) {
	if key == helpShortcut.Key && m.isShortcutApplicable(helpShortcut) {
		result, cmd := shortcutHelp(m)
		return result, cmd, true
	}
	for _, s := range ShortcutRegistry {
		if s.Key != key || !m.isShortcutApplicable(s) {
			continue
		}
		m.log.Debug("shortcut", "key", key, "screen", m.screen.String())
		result, cmd := s.Handler(m)
		return result, cmd, true
	}
	return m, nil, false
}

// helpSections groups every shortcut by category for the help modal.
func (m *Model) helpSections() []modals.HelpSection {
	categories := make(map[string][]modals.HelpShortcut)
	add := func(s Shortcut) {
		displayKey := s.DisplayKey
		if displayKey == "" {
			displayKey = s.Key
		}
		categories[s.Category] = append(categories[s.Category], modals.HelpShortcut{
			Key:  displayKey,
			Desc: s.Description,
		})
	}
	for _, s := range ShortcutRegistry {
		if s.Key == keys.CtrlD && !m.session.Options().Difficulty {
			continue
		}
		add(s)
	}
	add(helpShortcut)
	for _, s := range DisplayOnlyShortcuts {
		add(s)
	}

	var sections []modals.HelpSection
	for _, cat := range categoryOrder {
		if shortcuts := categories[cat]; len(shortcuts) > 0 {
			sections = append(sections, modals.HelpSection{Title: cat, Shortcuts: shortcuts})
		}
	}
	return sections
}

func shortcutQuit(m *Model) (tea.Model, tea.Cmd) {
	return m, tea.Quit
}

func shortcutOpenTopic(m *Model) (tea.Model, tea.Cmd) {
	topic, ok := m.topics.Selected()
	if !ok {
		return m, nil
	}
	m.session.SelectTopic(topic)
	m.chat.SetPending(false)
	m.chat.ClearInput()
	m.chat.SetTurns(m.session.Turns())
	m.chat.SetFocused(true)
	m.header.SetTopic(topic.Name)
	m.refreshDifficultyLabel()
	m.screen = ScreenChat
	return m, nil
}

func shortcutReload(m *Model) (tea.Model, tea.Cmd) {
	m.topics.SetLoading()
	return m, m.loadTopicsCmd()
}

func shortcutTheme(m *Model) (tea.Model, tea.Cmd) {
	m.modal.Show(modals.NewThemeState(ui.ThemeOptions(), string(ui.CurrentThemeName())))
	return m, nil
}

func shortcutHelp(m *Model) (tea.Model, tea.Cmd) {
	m.modal.Show(modals.NewHelpState(m.helpSections()))
	return m, nil
}

// shortcutSend starts a request for the typed query. Blank input, or a
// request already in flight, leaves everything as it was.
func shortcutSend(m *Model) (tea.Model, tea.Cmd) {
	ticket, ok := m.session.Begin(m.chat.GetInput())
	if !ok {
		return m, nil
	}
	m.chat.ClearInput()
	m.chat.SetTurns(m.session.Turns())
	spin := m.chat.SetPending(true)
	return m, tea.Batch(spin, m.askCmd(ticket))
}

func shortcutNewline(m *Model) (tea.Model, tea.Cmd) {
	m.chat.InsertNewline()
	return m, nil
}

func shortcutBack(m *Model) (tea.Model, tea.Cmd) {
	m.session.Back()
	m.chat.SetPending(false)
	m.chat.ClearInput()
	m.chat.SetTurns(nil)
	m.chat.SetFocused(false)
	m.header.SetTopic("")
	m.header.SetDifficulty("")
	m.screen = ScreenTopics
	return m, nil
}

// shortcutCopy puts the focused answer's text on the clipboard. A failure
// opens a blocking alert.
func shortcutCopy(m *Model) (tea.Model, tea.Cmd) {
	turn, ok := m.chat.FocusedAnswer()
	if !ok {
		return m, nil
	}
	if err := m.clipboard.WriteText(render.CopyText(turn.Content)); err != nil {
		m.log.Warn("copy failed", "turn", turn.ID, "error", err)
		m.modal.Show(modals.NewClipboardAlertState(err))
		return m, nil
	}
	return m, m.chat.MarkCopied(turn.ID)
}

func shortcutDifficulty(m *Model) (tea.Model, tea.Cmd) {
	state := modals.NewDifficultyState(m.session.Difficulty())
	m.modal.Show(state)
	return m, nil
}

func shortcutClear(m *Model) (tea.Model, tea.Cmd) {
	topic, ok := m.session.Topic()
	if !ok {
		return m, nil
	}
	m.modal.Show(modals.NewConfirmClearState(topic.Name))
	return m, nil
}

func (m *Model) refreshDifficultyLabel() {
	if !m.session.Options().Difficulty {
		m.header.SetDifficulty("")
		return
	}
	m.header.SetDifficulty(m.session.Difficulty().Label())
}
