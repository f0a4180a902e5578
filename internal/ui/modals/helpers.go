package modals

import "strings"

// RenderSelectableList renders one option per line, marking the selected
// one with a pointer.
func RenderSelectableList(items []string, selectedIndex int) string {
	var result strings.Builder
	for i, item := range items {
		if i == selectedIndex {
			result.WriteString(ListSelectedStyle.Render("> "+item) + "\n")
			continue
		}
		result.WriteString(ListItemStyle.Render("  "+item) + "\n")
	}
	return result.String()
}

// moveSelection clamps index+delta into [0, n).
func moveSelection(index, delta, n int) int {
	return max(min(index+delta, n-1), 0)
}
