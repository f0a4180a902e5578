package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	apperrors "github.com/zhubert/askdesk/internal/errors"
)

func TestAskCommand_Text(t *testing.T) {
	isolateHome(t)
	srv := newFakeServer(t)

	out, err := runCommand(t, "ask", "--api", srv.URL, "--topic", "rights", "What", "is", "CEDAW?")
	if err != nil {
		t.Fatalf("ask: %v", err)
	}

	req := srv.lastRequest(t)
	if req.Query != "What is CEDAW?" || req.Topic != "rights" || req.Difficulty != "intermediate" {
		t.Errorf("unexpected request %+v", req)
	}
	for _, want := range []string{"Assistant", "CEDAW is a treaty.", "It was adopted in 1979.", "cedaw.txt 90%", "notes.txt"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Welcome!") {
		t.Error("only the answer should be printed")
	}
}

func TestAskCommand_Basic(t *testing.T) {
	isolateHome(t)
	srv := newFakeServer(t)

	out, err := runCommand(t, "ask", "--api", srv.URL, "--basic", "-t", "rights", "hello")
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if req := srv.lastRequest(t); req.Difficulty != "" {
		t.Errorf("basic mode should not send a difficulty, got %q", req.Difficulty)
	}
	if !strings.Contains(out, "Sources:") || strings.Contains(out, "%") {
		t.Errorf("basic mode should print a plain sources line:\n%s", out)
	}
}

func TestAskCommand_DifficultyFlag(t *testing.T) {
	isolateHome(t)
	srv := newFakeServer(t)

	if _, err := runCommand(t, "ask", "--api", srv.URL, "--difficulty", "advanced", "-t", "health", "hello"); err != nil {
		t.Fatalf("ask: %v", err)
	}
	if req := srv.lastRequest(t); req.Difficulty != "advanced" || req.Topic != "health" {
		t.Errorf("unexpected request %+v", req)
	}
}

func TestAskCommand_JSON(t *testing.T) {
	isolateHome(t)
	srv := newFakeServer(t)

	out, err := runCommand(t, "ask", "--api", srv.URL, "-t", "rights", "--format", "json", "  hello  ")
	if err != nil {
		t.Fatalf("ask: %v", err)
	}

	var result askResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if result.Topic != "rights" || result.Query != "hello" || result.Difficulty != "intermediate" {
		t.Errorf("unexpected result %+v", result)
	}
	if result.Answer != srv.answer.Answer || result.Error != "" {
		t.Errorf("answer = %q, error = %q", result.Answer, result.Error)
	}
	if len(result.Sources) != 2 {
		t.Fatalf("expected 2 sources, got %d", len(result.Sources))
	}
	first := result.Sources[0]
	if first.Name != "cedaw.txt" || first.Score == nil || *first.Score != 0.1 || first.Relevance == nil || *first.Relevance != 90 {
		t.Errorf("unexpected scored source %+v", first)
	}
	second := result.Sources[1]
	if second.Name != "notes.txt" || second.Score != nil || second.Relevance != nil {
		t.Errorf("unscored source should carry no score: %+v", second)
	}
}

func TestAskCommand_HTML(t *testing.T) {
	isolateHome(t)
	srv := newFakeServer(t)

	out, err := runCommand(t, "ask", "--api", srv.URL, "-t", "health", "--format", "html", "<b>bold</b>?")
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if !strings.HasPrefix(out, "<!DOCTYPE html>") {
		t.Errorf("expected an HTML page, got:\n%s", out)
	}
	if strings.Contains(out, "<b>bold</b>") {
		t.Error("query markup must be escaped")
	}
	if !strings.Contains(out, "&lt;b&gt;bold&lt;/b&gt;?") {
		t.Error("escaped query text missing")
	}
	for _, want := range []string{"Welcome! Ask me anything about Health.", "CEDAW is a treaty.", "Difficulty: Intermediate", "90%"} {
		if !strings.Contains(out, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestAskCommand_BackendFailure(t *testing.T) {
	isolateHome(t)
	srv := newFakeServer(t)
	srv.status = http.StatusInternalServerError

	out, err := runCommand(t, "ask", "--api", srv.URL, "-t", "rights", "hello")
	if err == nil {
		t.Fatal("a failed request should fail the command")
	}
	if !strings.Contains(out, "Failed to get response") {
		t.Errorf("error turn should be printed, got:\n%s", out)
	}
	if !strings.Contains(err.Error(), "Failed to get response") {
		t.Errorf("error should carry the user-facing message: %v", err)
	}
}

func TestAskCommand_BackendFailureJSON(t *testing.T) {
	isolateHome(t)
	srv := newFakeServer(t)
	srv.status = http.StatusInternalServerError

	out, err := runCommand(t, "ask", "--api", srv.URL, "-t", "rights", "-f", "json", "hello")
	if err == nil {
		t.Fatal("a failed request should fail the command")
	}
	var result askResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if result.Error == "" || result.Answer != "" || len(result.Sources) != 0 {
		t.Errorf("unexpected result %+v", result)
	}
}

func TestAskCommand_Rejected(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown format", []string{"-t", "rights", "-f", "xml", "hello"}},
		{"blank question", []string{"-t", "rights", "   "}},
		{"missing topic flag", []string{"hello"}},
		{"no question", []string{"-t", "rights"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateHome(t)
			srv := newFakeServer(t)

			args := append([]string{"ask", "--api", srv.URL}, tt.args...)
			if _, err := runCommand(t, args...); err == nil {
				t.Error("expected an error")
			}
			if len(srv.requests) != 0 {
				t.Error("no request should reach the backend")
			}
		})
	}
}

func TestAskCommand_UnknownTopic(t *testing.T) {
	isolateHome(t)
	srv := newFakeServer(t)

	_, err := runCommand(t, "ask", "--api", srv.URL, "-t", "nope", "hello")
	if !apperrors.Is(err, apperrors.KindNotFound) {
		t.Errorf("expected a not-found error, got %v", err)
	}
}

func TestColorEnabled_NonTerminal(t *testing.T) {
	if colorEnabled(&bytes.Buffer{}) {
		t.Error("a buffer is never a color terminal")
	}
}

func TestHighlightJSON(t *testing.T) {
	in := []byte(`{"answer": "yes"}` + "\n")
	out := highlightJSON(in)
	if !bytes.Contains(out, []byte("\x1b[")) {
		t.Error("highlighted JSON should contain color escapes")
	}
	if got := ansi.Strip(string(out)); got != string(in) {
		t.Errorf("highlighting changed the text: %q", got)
	}
}
