package ui

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/zhubert/askdesk/internal/ui/modals"
)

// ModalState is re-exported so callers need only import ui.
type ModalState = modals.ModalState

// Modal represents a popup dialog with type-safe state management.
// The State field is nil when no modal is visible.
type Modal struct {
	State ModalState
	error string
}

// NewModal creates a new modal
func NewModal() *Modal {
	return &Modal{}
}

// Show displays a modal with the given state
func (m *Modal) Show(state ModalState) {
	m.State = state
	m.error = ""
}

// Hide hides the modal
func (m *Modal) Hide() {
	m.State = nil
	m.error = ""
}

// IsVisible returns whether the modal is visible
func (m *Modal) IsVisible() bool {
	return m.State != nil
}

// SetError sets an error message
func (m *Modal) SetError(err string) {
	m.error = err
}

// GetError returns the current error message
func (m *Modal) GetError() string {
	return m.error
}

// Update handles messages by delegating to the current state
func (m *Modal) Update(msg tea.Msg) (*Modal, tea.Cmd) {
	if m.State == nil {
		return m, nil
	}
	var cmd tea.Cmd
	m.State, cmd = m.State.Update(msg)
	return m, cmd
}

// View renders the modal centered on the screen
func (m *Modal) View(screenWidth, screenHeight int) string {
	if m.State == nil {
		return ""
	}

	content := m.State.Render()
	if m.error != "" {
		content += "\n" + StatusErrorStyle.Render(m.error)
	}

	return lipgloss.Place(
		screenWidth, screenHeight,
		lipgloss.Center, lipgloss.Center,
		ModalStyle.Render(content),
	)
}

// RefreshModalStyles pushes the current styles into the modals package.
func RefreshModalStyles() {
	modals.SetStyles(modals.Palette{
		Title:     ModalTitleStyle,
		Help:      ModalHelpStyle,
		Item:      ListItemStyle,
		Selected:  ListSelectedStyle,
		Primary:   ColorPrimary,
		Secondary: ColorSecondary,
		Text:      ColorText,
		Muted:     ColorTextMuted,
		Inverse:   ColorTextInverse,
		Width:     ModalWidth,
	})
}

// ThemeOptions lists the built-in themes for the theme picker.
func ThemeOptions() []modals.ThemeOption {
	names := ThemeNames()
	opts := make([]modals.ThemeOption, len(names))
	for i, name := range names {
		opts[i] = modals.ThemeOption{Name: string(name), Label: GetTheme(name).Name}
	}
	return opts
}
