package ui

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key  string
	Desc string
}

// FooterMode selects which bindings the footer shows.
type FooterMode int

const (
	FooterTopics FooterMode = iota
	FooterChat
)

// FooterContext is the state the footer bindings depend on.
type FooterContext struct {
	Mode       FooterMode
	Pending    bool // a question is waiting for its answer
	CanCopy    bool // at least one answer can be copied
	HasError   bool // an error turn is showing
	Difficulty bool // the difficulty selector is enabled
}

// FlashType is the severity of a flash message
type FlashType int

const (
	FlashError FlashType = iota
	FlashWarning
	FlashInfo
	FlashSuccess
)

// FlashMessage is a transient footer message
type FlashMessage struct {
	Text      string
	Type      FlashType
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired reports whether the message has outlived its duration
func (f *FlashMessage) IsExpired() bool {
	return time.Since(f.CreatedAt) > f.Duration
}

// FlashTickMsg drives flash expiry checks
type FlashTickMsg time.Time

// FlashTick returns a command that fires a FlashTickMsg after one second
func FlashTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return FlashTickMsg(t)
	})
}

// Footer represents the bottom footer bar with keybindings
type Footer struct {
	width        int
	ctx          FooterContext
	bindings     []KeyBinding
	flashMessage *FlashMessage
}

// NewFooter creates a new footer
func NewFooter() *Footer {
	return &Footer{
		bindings: topicBindings(),
	}
}

// SetWidth sets the footer width
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// SetContext updates the footer's context for conditional bindings
func (f *Footer) SetContext(ctx FooterContext) {
	f.ctx = ctx
	if ctx.Mode == FooterTopics {
		f.bindings = topicBindings()
	} else {
		f.bindings = chatBindings(ctx)
	}
}

// Bindings returns the bindings currently shown
func (f *Footer) Bindings() []KeyBinding {
	return f.bindings
}

func topicBindings() []KeyBinding {
	return []KeyBinding{
		{Key: "↑/↓", Desc: "navigate"},
		{Key: "enter", Desc: "open topic"},
		{Key: "r", Desc: "reload"},
		{Key: "t", Desc: "theme"},
		{Key: "?", Desc: "help"},
		{Key: "q", Desc: "quit"},
	}
}

func chatBindings(ctx FooterContext) []KeyBinding {
	var b []KeyBinding
	if !ctx.Pending {
		b = append(b, KeyBinding{Key: "enter", Desc: "send"})
	}
	b = append(b, KeyBinding{Key: "esc", Desc: "topics"})
	if ctx.CanCopy {
		b = append(b,
			KeyBinding{Key: "ctrl+y", Desc: "copy"},
			KeyBinding{Key: "alt+↑/↓", Desc: "answer"},
		)
	}
	if ctx.Difficulty {
		b = append(b, KeyBinding{Key: "ctrl+d", Desc: "difficulty"})
	}
	if !ctx.Pending {
		b = append(b, KeyBinding{Key: "ctrl+l", Desc: "clear"})
	}
	if ctx.HasError {
		b = append(b, KeyBinding{Key: "ctrl+x", Desc: "dismiss"})
	}
	b = append(b, KeyBinding{Key: "pgup/dn", Desc: "scroll"})
	return b
}

// SetFlash shows a message for DefaultFlashDuration
func (f *Footer) SetFlash(text string, flashType FlashType) {
	f.SetFlashWithDuration(text, flashType, DefaultFlashDuration)
}

// SetFlashWithDuration shows a message for the given duration
func (f *Footer) SetFlashWithDuration(text string, flashType FlashType, d time.Duration) {
	f.flashMessage = &FlashMessage{
		Text:      text,
		Type:      flashType,
		CreatedAt: time.Now(),
		Duration:  d,
	}
}

// ClearFlash removes any flash message
func (f *Footer) ClearFlash() {
	f.flashMessage = nil
}

// HasFlash reports whether a flash message is showing
func (f *Footer) HasFlash() bool {
	return f.flashMessage != nil
}

// ClearIfExpired removes the flash message once it has expired and reports
// whether it did
func (f *Footer) ClearIfExpired() bool {
	if f.flashMessage != nil && f.flashMessage.IsExpired() {
		f.flashMessage = nil
		return true
	}
	return false
}

func (f *Footer) renderFlash() string {
	var icon string
	var fg = ColorInfo
	switch f.flashMessage.Type {
	case FlashError:
		icon, fg = "✕", ColorError
	case FlashWarning:
		icon, fg = "⚠", ColorWarning
	case FlashInfo:
		icon, fg = "ℹ", ColorInfo
	case FlashSuccess:
		icon, fg = "✓", ColorSuccess
	}
	style := lipgloss.NewStyle().Foreground(fg).Bold(true)
	return FooterStyle.Width(f.width).Render(style.Render(icon + " " + f.flashMessage.Text))
}

// View renders the footer
func (f *Footer) View() string {
	if f.flashMessage != nil {
		return f.renderFlash()
	}

	parts := make([]string, 0, len(f.bindings))
	for _, b := range f.bindings {
		key := FooterKeyStyle.Render(b.Key)
		desc := FooterDescStyle.Render(": " + b.Desc)
		parts = append(parts, key+desc)
	}

	content := strings.Join(parts, "  "+lipgloss.NewStyle().Foreground(ColorBorder).Render("|")+"  ")

	return FooterStyle.Width(f.width).Render(content)
}
