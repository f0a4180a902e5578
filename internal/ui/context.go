package ui

import (
	"sync"

	"github.com/zhubert/askdesk/internal/logger"
)

// ViewContext is the shared layout for the current terminal size. Both
// screens fill the content area between the header and footer rows.
type ViewContext struct {
	TerminalWidth  int
	TerminalHeight int

	ContentHeight int
	ContentWidth  int

	// Derived from the content area
	Cards CardLayout
	Chat  ChatLayout

	mu sync.Mutex
}

// CardLayout sizes the topic picker.
type CardLayout struct {
	Width   int // width of one card, border included
	Visible int // cards that fit below the title line
}

// ChatLayout sizes the chat screen: a bordered transcript panel above a
// bordered input box.
type ChatLayout struct {
	PanelHeight      int
	TranscriptWidth  int
	TranscriptHeight int
	InputWidth       int
}

var ctx *ViewContext
var ctxOnce sync.Once

// GetViewContext returns the singleton ViewContext instance
func GetViewContext() *ViewContext {
	ctxOnce.Do(func() {
		ctx = &ViewContext{}
		logger.ComponentLogger("ui").Debug("ViewContext initialized")
	})
	return ctx
}

// UpdateTerminalSize recalculates the layout after a resize. Sizes below
// the minimum are clamped so the derived dimensions stay positive.
func (v *ViewContext) UpdateTerminalSize(width, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	width = max(width, MinTerminalWidth)
	height = max(height, MinTerminalHeight)

	v.TerminalWidth = width
	v.TerminalHeight = height
	v.ContentWidth = width
	v.ContentHeight = height - HeaderHeight - FooterHeight
	v.Cards = CardLayoutFor(v.ContentWidth, v.ContentHeight)
	v.Chat = ChatLayoutFor(v.ContentWidth, v.ContentHeight)

	logger.ComponentLogger("ui").Debug("terminal size updated",
		"width", width,
		"height", height,
		"visibleCards", v.Cards.Visible,
		"transcriptHeight", v.Chat.TranscriptHeight,
	)
}

// CardLayoutFor sizes topic cards for a picker of the given size. Cards
// leave a two-column margin and never grow past CardMaxWidth.
func CardLayoutFor(width, height int) CardLayout {
	return CardLayout{
		Width:   min(max(width-4, CardMinWidth), CardMaxWidth),
		Visible: max((height-2)/CardHeight, 1),
	}
}

// ChatLayoutFor sizes the chat panel and input for the given area.
func ChatLayoutFor(width, height int) ChatLayout {
	panel := height - InputTotalHeight
	return ChatLayout{
		PanelHeight:      panel,
		TranscriptWidth:  width - BorderSize,
		TranscriptHeight: max(panel-BorderSize, 1),
		InputWidth:       width - BorderSize - InputPaddingWidth,
	}
}
