package ui

import "time"

// Layout constants for panel sizing
const (
	// HeaderHeight is the height of the header in lines
	HeaderHeight = 1

	// FooterHeight is the height of the footer in lines
	FooterHeight = 1

	// BorderSize is the total border width (1 on each side)
	BorderSize = 2

	// TextareaHeight is the number of lines for the chat input textarea
	TextareaHeight = 3

	// TextareaBorderHeight is the border size around the textarea
	TextareaBorderHeight = 2

	// InputPaddingWidth is the horizontal padding inside the input area (Padding(0, 1) = 1 left + 1 right)
	InputPaddingWidth = 2

	// InputTotalHeight is the total height of the input area (textarea + borders)
	InputTotalHeight = TextareaHeight + TextareaBorderHeight

	// DefaultWrapWidth is the default width for text wrapping when viewport width is unknown
	DefaultWrapWidth = 80

	// MinTerminalWidth and MinTerminalHeight keep layout math positive
	MinTerminalWidth  = 40
	MinTerminalHeight = 12
)

// Topic card layout
const (
	// CardHeight is the rendered height of one topic card including its border
	CardHeight = 4

	// CardMaxWidth caps card width on wide terminals
	CardMaxWidth = 72

	// CardMinWidth keeps a card readable on narrow terminals
	CardMinWidth = 20
)

// Modal dimensions
const (
	// ModalWidth is the default width of modals
	ModalWidth = 60
)

// Timing
const (
	// CopyFlashDuration is how long a copy control shows its confirmation
	CopyFlashDuration = 2 * time.Second

	// DefaultFlashDuration is how long footer flash messages stay visible
	DefaultFlashDuration = 4 * time.Second
)
