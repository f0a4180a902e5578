package render

import (
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/x/ansi"
)

const (
	paragraphSep = "\n\n"
	lineSep      = "\n"
)

// Paragraphs splits text on blank-line boundaries, then splits each paragraph
// into its lines. JoinParagraphs reverses it exactly.
func Paragraphs(text string) [][]string {
	if text == "" {
		return nil
	}
	parts := strings.Split(text, paragraphSep)
	out := make([][]string, len(parts))
	for i, p := range parts {
		out[i] = strings.Split(p, lineSep)
	}
	return out
}

// JoinParagraphs joins lines with line breaks and paragraphs with blank lines.
func JoinParagraphs(paras [][]string) string {
	joined := make([]string, len(paras))
	for i, lines := range paras {
		joined[i] = strings.Join(lines, lineSep)
	}
	return strings.Join(joined, paragraphSep)
}

// Sanitize makes text safe to place on the terminal: escape sequences are
// stripped and control characters other than newline and tab are dropped.
func Sanitize(text string) string {
	text = ansi.Strip(text)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, text)
}

// CopyText returns the visible text of an answer: sanitized, without sources
// or controls.
func CopyText(answer string) string {
	return strings.TrimSpace(Sanitize(answer))
}

// Time formats a turn timestamp as a 12-hour clock, e.g. "03:04 PM".
func Time(t time.Time) string {
	return t.Format("03:04 PM")
}
