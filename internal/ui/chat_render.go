package ui

import (
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
	"github.com/zhubert/askdesk/internal/render"
	"github.com/zhubert/askdesk/internal/session"
)

const (
	assistantLabel = "Assistant"
	userLabel      = "You"

	copyControlText = "[ctrl+y] Copy"
	copiedText      = "✓ Copied!"
	loadingText     = "Waiting for answer..."
	dismissHint     = "ctrl+x to dismiss"
)

// copyState describes how a turn's copy control is drawn.
type copyState int

const (
	copyHidden copyState = iota
	copyIdle
	copyFocused
	copyDone
)

// wrapText word-wraps to width and hard-wraps words longer than width.
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	return wrap.String(wordwrap.String(text, width), width)
}

// renderContent sanitizes and paragraphs turn text. Paragraphs are separated
// by a blank line; lines inside a paragraph stay on their own rows.
func renderContent(content string, width int) string {
	paras := render.Paragraphs(render.Sanitize(content))
	blocks := make([]string, 0, len(paras))
	for _, p := range paras {
		lines := make([]string, len(p))
		for i, line := range p {
			lines[i] = wrapText(line, width)
		}
		blocks = append(blocks, ChatMessageStyle.Render(strings.Join(lines, "\n")))
	}
	return strings.Join(blocks, "\n\n")
}

// renderLabel draws the role label with an optional timestamp.
func renderLabel(turn session.Turn, showTime bool) string {
	var label string
	switch turn.Role {
	case session.RoleUser:
		label = ChatUserStyle.Render(userLabel)
	default:
		label = ChatAssistantStyle.Render(assistantLabel)
	}
	if showTime && !turn.Welcome && !turn.Timestamp.IsZero() {
		label += "  " + ChatTimeStyle.Render(render.Time(turn.Timestamp))
	}
	return label
}

// renderBadge draws one source as a bordered badge in its relevance color.
func renderBadge(src render.Source, showPercent bool) string {
	border := ColorBorder
	text := "📄 " + render.Sanitize(src.Name)
	if src.HasScore {
		c := lipgloss.Color(src.Level().Color())
		border = c
		if showPercent {
			text += " " + lipgloss.NewStyle().Foreground(c).Bold(true).Render(strconv.Itoa(src.Percent())+"%")
		}
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Render(text)
}

// renderBadges flows badges into rows no wider than width.
func renderBadges(sources []render.Source, width int, showPercent bool) string {
	var rows []string
	var row []string
	rowWidth := 0
	for _, src := range sources {
		badge := renderBadge(src, showPercent)
		w := lipgloss.Width(badge)
		if len(row) > 0 && rowWidth+w > width {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row, rowWidth = nil, 0
		}
		row = append(row, badge)
		rowWidth += w
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderSources draws the sources section. History mode gets badges with
// relevance; basic mode a single plain line.
func renderSources(sources []string, width int, history bool) string {
	if len(sources) == 0 {
		return ""
	}
	if !history {
		clean := make([]string, len(sources))
		for i, s := range sources {
			clean[i] = render.Sanitize(s)
		}
		return SourceLabelStyle.Render("Sources: ") + wrapText(strings.Join(clean, ", "), width)
	}
	return SourceLabelStyle.Render("Sources") + "\n" + renderBadges(render.ParseSources(sources), width, true)
}

func renderCopyControl(state copyState) string {
	switch state {
	case copyIdle:
		return CopyControlStyle.Render(copyControlText)
	case copyFocused:
		return CopyFocusedStyle.Render("▸ " + copyControlText)
	case copyDone:
		return CopiedStyle.Render(copiedText)
	}
	return ""
}

// renderErrorTurn draws an error turn as a boxed notice.
func renderErrorTurn(turn session.Turn, width int, latest bool) string {
	text := "✕ " + render.Sanitize(turn.Content)
	if latest {
		text += "\n" + ChatTimeStyle.Render(dismissHint)
	}
	boxWidth := width
	if boxWidth < 10 {
		boxWidth = 10
	}
	return ChatErrorBoxStyle.Width(boxWidth).Render(wrapText(text, boxWidth-4))
}

// renderTurn draws one user or assistant turn.
func renderTurn(turn session.Turn, width int, history bool, cs copyState) string {
	var sb strings.Builder
	sb.WriteString(renderLabel(turn, history))
	sb.WriteString("\n")
	sb.WriteString(renderContent(turn.Content, width))

	if turn.Role == session.RoleAssistant {
		if sources := renderSources(turn.Sources, width, history); sources != "" {
			sb.WriteString("\n")
			sb.WriteString(sources)
		}
		if control := renderCopyControl(cs); control != "" {
			sb.WriteString("\n")
			sb.WriteString(control)
		}
	}
	return sb.String()
}

// RenderTurn draws a single turn outside the chat panel, without copy
// controls. The ask command prints answers with it.
func RenderTurn(turn session.Turn, width int, history bool) string {
	if turn.Role == session.RoleError {
		return renderErrorTurn(turn, width, false)
	}
	return renderTurn(turn, width, history, copyHidden)
}
