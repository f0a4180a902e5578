package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/zhubert/askdesk/internal/session"
)

func TestParseSource(t *testing.T) {
	tests := []struct {
		input    string
		name     string
		hasScore bool
		score    float64
	}{
		{"handbook.txt (score=0.2)", "handbook.txt", true, 0.2},
		{"handbook.txt(score=0.234)", "handbook.txt", true, 0.234},
		{"handbook.txt", "handbook.txt", false, 0},
		{"udhr (1948).txt (score=0.5)", "udhr (1948).txt", true, 0.5},
		{"a (score=0.1) b (score=0.9)", "a", true, 0.1},
		{"bad.txt (score=1.2.3)", "bad.txt", true, 1.2},
		{"dots.txt (score=...)", "dots.txt (score=...)", false, 0},
		{"lead.txt (score=.25)", "lead.txt", true, 0.25},
		{"(score=0.3)", "(score=0.3)", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			src := ParseSource(tt.input)
			if src.Raw != tt.input {
				t.Errorf("Raw = %q, want %q", src.Raw, tt.input)
			}
			if src.Name != tt.name {
				t.Errorf("Name = %q, want %q", src.Name, tt.name)
			}
			if src.HasScore != tt.hasScore {
				t.Errorf("HasScore = %v, want %v", src.HasScore, tt.hasScore)
			}
			if src.Score != tt.score {
				t.Errorf("Score = %v, want %v", src.Score, tt.score)
			}
		})
	}
}

func TestRelevance(t *testing.T) {
	tests := []struct {
		score float64
		want  int
	}{
		{0.2, 80},
		{1.0, 0},
		{0, 100},
		{0.234, 77},
		{0.25, 75},
		{1.7, 0},
		{-0.5, 100},
	}

	for _, tt := range tests {
		if got := Relevance(tt.score); got != tt.want {
			t.Errorf("Relevance(%v) = %d, want %d", tt.score, got, tt.want)
		}
	}
}

func TestLevelFor(t *testing.T) {
	tests := []struct {
		percent int
		want    Level
		color   string
	}{
		{100, LevelHigh, "#28a745"},
		{80, LevelHigh, "#28a745"},
		{79, LevelGood, "#17a2b8"},
		{60, LevelGood, "#17a2b8"},
		{59, LevelFair, "#ffc107"},
		{40, LevelFair, "#ffc107"},
		{39, LevelLow, "#dc3545"},
		{0, LevelLow, "#dc3545"},
	}

	for _, tt := range tests {
		got := LevelFor(tt.percent)
		if got != tt.want {
			t.Errorf("LevelFor(%d) = %v, want %v", tt.percent, got, tt.want)
		}
		if got.Color() != tt.color {
			t.Errorf("LevelFor(%d).Color() = %q, want %q", tt.percent, got.Color(), tt.color)
		}
	}
}

func TestSource_PercentAndLevel(t *testing.T) {
	tests := []struct {
		input   string
		percent int
		level   Level
	}{
		{"handbook.txt (score=0.2)", 80, LevelHigh},
		{"handbook.txt (score=1.0)", 0, LevelLow},
		{"handbook.txt (score=1.2.3)", 0, LevelLow},
		{"handbook.txt", -1, LevelNone},
	}

	for _, tt := range tests {
		src := ParseSource(tt.input)
		if src.Percent() != tt.percent {
			t.Errorf("%q: Percent() = %d, want %d", tt.input, src.Percent(), tt.percent)
		}
		if src.Level() != tt.level {
			t.Errorf("%q: Level() = %v, want %v", tt.input, src.Level(), tt.level)
		}
	}
	if LevelNone.Color() != "" {
		t.Error("unscored sources should have no color")
	}
}

func TestParagraphs(t *testing.T) {
	text := "Para one.\nline two.\n\nPara two."
	got := Paragraphs(text)

	if len(got) != 2 {
		t.Fatalf("expected 2 paragraphs, got %d: %q", len(got), got)
	}
	if len(got[0]) != 2 || got[0][0] != "Para one." || got[0][1] != "line two." {
		t.Errorf("first paragraph should hold two lines, got %q", got[0])
	}
	if len(got[1]) != 1 || got[1][0] != "Para two." {
		t.Errorf("unexpected second paragraph %q", got[1])
	}
}

func TestParagraphs_RoundTrip(t *testing.T) {
	inputs := []string{
		"Para one.\nline two.\n\nPara two.",
		"single",
		"a\n\n\n\nb",
		"trailing\n",
		"\n\nleading",
	}

	for _, in := range inputs {
		if got := JoinParagraphs(Paragraphs(in)); got != in {
			t.Errorf("round trip of %q gave %q", in, got)
		}
	}
	if Paragraphs("") != nil {
		t.Error("empty text should have no paragraphs")
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "hello", "hello"},
		{"markup is literal", "<script>alert(1)</script>", "<script>alert(1)</script>"},
		{"color codes", "\x1b[31mred\x1b[0m", "red"},
		{"cursor movement", "a\x1b[2Jb", "ab"},
		{"bell and backspace", "a\x07b\x08c", "abc"},
		{"newlines and tabs kept", "a\n\tb", "a\n\tb"},
		{"crlf", "a\r\nb", "a\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.input); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCopyText(t *testing.T) {
	got := CopyText("  Para one.\n\nPara two.\x1b[0m\n")
	if got != "Para one.\n\nPara two." {
		t.Errorf("CopyText = %q", got)
	}
}

func TestTime(t *testing.T) {
	tests := []struct {
		t    time.Time
		want string
	}{
		{time.Date(2024, 1, 1, 15, 4, 0, 0, time.UTC), "03:04 PM"},
		{time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC), "09:30 AM"},
		{time.Date(2024, 1, 1, 0, 5, 0, 0, time.UTC), "12:05 AM"},
	}
	for _, tt := range tests {
		if got := Time(tt.t); got != tt.want {
			t.Errorf("Time(%v) = %q, want %q", tt.t, got, tt.want)
		}
	}
}

func TestHTML_EscapesMarkup(t *testing.T) {
	var buf bytes.Buffer
	err := HTML(&buf, Transcript{
		Topic:       "Women's Rights",
		ShowHistory: true,
		Turns: []session.Turn{
			{Role: session.RoleUser, Content: "<script>alert('x')</script>"},
			{Role: session.RoleAssistant, Content: "ok", Sources: []string{"<b>evil</b>.txt (score=0.2)"}},
		},
	})
	if err != nil {
		t.Fatalf("HTML failed: %v", err)
	}

	out := buf.String()
	if strings.Contains(out, "<script>alert") {
		t.Error("raw script tag should never appear in output")
	}
	if !strings.Contains(out, "&lt;script&gt;") {
		t.Errorf("script tag should appear escaped, got:\n%s", out)
	}
	if strings.Contains(out, "<b>evil</b>") {
		t.Error("source names should be escaped")
	}
}

func TestHTML_ParagraphsAndBadges(t *testing.T) {
	var buf bytes.Buffer
	err := HTML(&buf, Transcript{
		Topic:       "Foundational Rights",
		Difficulty:  "Beginner",
		ShowHistory: true,
		Turns: []session.Turn{
			{
				Role:      session.RoleAssistant,
				Content:   "Para one.\nline two.\n\nPara two.",
				Sources:   []string{"handbook.txt (score=0.2)", "handbook.txt (score=1.0)", "notes.txt"},
				Timestamp: time.Date(2024, 1, 1, 15, 4, 0, 0, time.UTC),
			},
			{Role: session.RoleError, Content: session.ErrorMessage},
		},
	})
	if err != nil {
		t.Fatalf("HTML failed: %v", err)
	}

	out := buf.String()
	checks := []string{
		"<p>Para one.<br>line two.</p>",
		"<p>Para two.</p>",
		`class="source-badge high"`,
		`class="source-badge low"`,
		`class="source-badge none"`,
		"80%",
		"0%",
		"03:04 PM",
		"Difficulty: Beginner",
		`class="message error-message"`,
	}
	for _, want := range checks {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Contains(out, "notes.txt</span> <span class=\"source-relevance\">") {
		t.Error("unscored source should have no percent")
	}
}

func TestHTML_BasicModeHidesPercentAndTime(t *testing.T) {
	var buf bytes.Buffer
	err := HTML(&buf, Transcript{
		Topic: "Topic",
		Turns: []session.Turn{
			{
				Role:      session.RoleAssistant,
				Content:   "answer",
				Sources:   []string{"handbook.txt (score=0.2)"},
				Timestamp: time.Date(2024, 1, 1, 15, 4, 0, 0, time.UTC),
			},
		},
	})
	if err != nil {
		t.Fatalf("HTML failed: %v", err)
	}

	out := buf.String()
	if strings.Contains(out, "80%") {
		t.Error("basic mode should not show relevance percent")
	}
	if strings.Contains(out, "03:04 PM") {
		t.Error("basic mode should not show timestamps")
	}
	if !strings.Contains(out, "handbook.txt") {
		t.Error("source name should still be shown")
	}
}
