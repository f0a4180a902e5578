package render

import (
	"html/template"
	"io"

	"github.com/zhubert/askdesk/internal/session"
)

// Transcript is the input to HTML.
type Transcript struct {
	Topic       string
	Difficulty  string
	ShowHistory bool
	Turns       []session.Turn
}

type htmlTurn struct {
	Role       string
	Label      string
	Time       string
	Paragraphs [][]string
	Sources    []Source
}

type htmlPage struct {
	Topic       string
	Difficulty  string
	ShowHistory bool
	Turns       []htmlTurn
}

// All text reaches the page through template actions, so html/template
// escapes it. Badge colors come from fixed class names.
var transcriptTemplate = template.Must(template.New("transcript").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Topic}}</title>
<style>
body { font-family: sans-serif; max-width: 48rem; margin: 2rem auto; }
.message { margin: 1rem 0; padding: 0.75rem 1rem; border-radius: 8px; }
.user-message { background: #e8f0fe; }
.bot-message { background: #f5f5f5; }
.error-message { background: #fdecea; color: #dc3545; }
.message-time { font-size: 0.8rem; color: #666; }
.source-badge { display: inline-block; border: 1px solid #ccc; border-radius: 12px; padding: 2px 8px; margin: 2px; }
.source-badge.high { border-color: #28a745; } .high .source-relevance { color: #28a745; }
.source-badge.good { border-color: #17a2b8; } .good .source-relevance { color: #17a2b8; }
.source-badge.fair { border-color: #ffc107; } .fair .source-relevance { color: #ffc107; }
.source-badge.low { border-color: #dc3545; } .low .source-relevance { color: #dc3545; }
</style>
</head>
<body>
<h1>{{.Topic}}</h1>
{{- if .Difficulty}}
<p class="difficulty">Difficulty: {{.Difficulty}}</p>
{{- end}}
{{- range .Turns}}
<div class="message {{.Role}}">
<div class="message-header"><strong>{{.Label}}</strong>{{if $.ShowHistory}} <span class="message-time">{{.Time}}</span>{{end}}</div>
<div class="message-content">
{{- range .Paragraphs}}
<p>{{range $i, $line := .}}{{if $i}}<br>{{end}}{{$line}}{{end}}</p>
{{- end}}
</div>
{{- if .Sources}}
<div class="sources-section"><strong>Sources</strong>
<div class="sources-list">
{{- range .Sources}}
<span class="source-badge {{.Level}}"><span class="source-name">{{.Name}}</span>{{if and $.ShowHistory .HasScore}} <span class="source-relevance">{{.Percent}}%</span>{{end}}</span>
{{- end}}
</div>
</div>
{{- end}}
</div>
{{- end}}
</body>
</html>
`))

// HTML writes the conversation as a standalone page. Every piece of turn
// text is escaped; a query containing markup shows up as literal text.
func HTML(w io.Writer, tr Transcript) error {
	page := htmlPage{
		Topic:       tr.Topic,
		Difficulty:  tr.Difficulty,
		ShowHistory: tr.ShowHistory,
		Turns:       make([]htmlTurn, 0, len(tr.Turns)),
	}

	for _, turn := range tr.Turns {
		ht := htmlTurn{
			Time:       Time(turn.Timestamp),
			Paragraphs: Paragraphs(turn.Content),
			Sources:    ParseSources(turn.Sources),
		}
		switch turn.Role {
		case session.RoleUser:
			ht.Role, ht.Label = "user-message", "You"
		case session.RoleError:
			ht.Role, ht.Label = "error-message", "Error"
		default:
			ht.Role, ht.Label = "bot-message", "Assistant"
		}
		page.Turns = append(page.Turns, ht)
	}

	return transcriptTemplate.Execute(w, page)
}
