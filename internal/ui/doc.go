// Package ui provides the user interface components for the askdesk TUI.
//
// # Layout
//
//	┌─────────────────────────────────────────────────────┐
//	│ Header (1 line): title, topic, difficulty           │
//	├─────────────────────────────────────────────────────┤
//	│                                                     │
//	│   TopicList (topic screen) or Chat (chat screen)    │
//	│                                                     │
//	├─────────────────────────────────────────────────────┤
//	│ Footer (1 line): key bindings or a flash message    │
//	└─────────────────────────────────────────────────────┘
//
// # Components
//
// ViewContext is a singleton holding the terminal dimensions. All size
// calculations go through it.
//
// TopicList draws one card per catalog topic, in catalog order, and tracks the
// highlighted card.
//
// Chat shows the transcript in a viewport above a textarea. It owns purely
// visual state: the loading row, which answer the copy key applies to, copy
// confirmations and dismissed error notices. The conversation itself lives
// in the session package and is handed over with SetTurns.
//
// Modal hosts a modals.ModalState: clear confirmation, difficulty picker,
// theme picker and the clipboard alert.
//
// # Styles
//
// styles.go holds package-level lipgloss styles built from the active Theme.
// SetTheme rebuilds them and pushes the modal subset to the modals package.
package ui
