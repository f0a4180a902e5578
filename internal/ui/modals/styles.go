package modals

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette is the slice of the active theme that dialogs draw with. The ui
// package builds one from its styles whenever the theme changes.
type Palette struct {
	Title    lipgloss.Style
	Help     lipgloss.Style
	Item     lipgloss.Style
	Selected lipgloss.Style

	Primary   color.Color
	Secondary color.Color
	Text      color.Color
	Muted     color.Color
	Inverse   color.Color

	Width int
}

// Current palette, unpacked for the renderers
var (
	ModalTitleStyle   lipgloss.Style
	ModalHelpStyle    lipgloss.Style
	ListItemStyle     lipgloss.Style
	ListSelectedStyle lipgloss.Style

	ColorPrimary     color.Color
	ColorSecondary   color.Color
	ColorText        color.Color
	ColorTextMuted   color.Color
	ColorTextInverse color.Color

	ModalWidth int
)

// SetStyles installs p. It must run before any dialog renders.
func SetStyles(p Palette) {
	ModalTitleStyle = p.Title
	ModalHelpStyle = p.Help
	ListItemStyle = p.Item
	ListSelectedStyle = p.Selected

	ColorPrimary = p.Primary
	ColorSecondary = p.Secondary
	ColorText = p.Text
	ColorTextMuted = p.Muted
	ColorTextInverse = p.Inverse

	ModalWidth = p.Width
}
