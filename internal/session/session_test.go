package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/zhubert/askdesk/internal/api"
)

var testTopic = api.Topic{ID: "womens_rights", Name: "Women's Rights", Description: "CEDAW", Icon: "♀"}

// fakeAsker records requests and returns a canned response.
type fakeAsker struct {
	resp     *api.ChatResponse
	err      error
	requests []api.ChatRequest
}

func (f *fakeAsker) Chat(ctx context.Context, req api.ChatRequest) (*api.ChatResponse, error) {
	f.requests = append(f.requests, req)
	return f.resp, f.err
}

func newTestSession(opts Options) *Session {
	s := New(opts)
	fixed := time.Date(2024, 3, 9, 15, 4, 0, 0, time.UTC)
	s.SetClock(func() time.Time { return fixed })
	return s
}

func TestSelectTopic_WelcomeTurn(t *testing.T) {
	s := newTestSession(Enhanced())
	s.SelectTopic(testTopic)

	turns := s.Turns()
	if len(turns) != 1 {
		t.Fatalf("expected 1 turn, got %d", len(turns))
	}
	if !turns[0].Welcome || turns[0].Role != RoleAssistant {
		t.Errorf("expected welcome assistant turn, got %+v", turns[0])
	}
	if turns[0].Content != "Welcome! Ask me anything about Women's Rights." {
		t.Errorf("unexpected welcome text %q", turns[0].Content)
	}
	if turns[0].ID == "" {
		t.Error("turn should have an ID")
	}

	topic, ok := s.Topic()
	if !ok || topic.ID != testTopic.ID {
		t.Errorf("expected active topic %q, got %+v (ok=%v)", testTopic.ID, topic, ok)
	}
}

func TestSelectTopic_Idempotent(t *testing.T) {
	s := newTestSession(Enhanced())
	s.SelectTopic(testTopic)
	s.SelectTopic(testTopic)

	if s.Len() != 1 {
		t.Errorf("expected 1 turn after repeated select, got %d", s.Len())
	}
}

func TestSelectTopic_SwitchClearsLog(t *testing.T) {
	s := newTestSession(Enhanced())
	asker := &fakeAsker{resp: &api.ChatResponse{Answer: "answer"}}
	s.SelectTopic(testTopic)

	for _, q := range []string{"one", "two"} {
		if _, err := s.Submit(context.Background(), asker, q); err != nil {
			t.Fatalf("Submit(%q) failed: %v", q, err)
		}
	}
	if s.Len() != 5 {
		t.Fatalf("expected 5 turns before switch, got %d", s.Len())
	}

	s.SelectTopic(api.Topic{ID: "child_rights", Name: "Children's Rights"})

	turns := s.Turns()
	if len(turns) != 1 {
		t.Fatalf("expected log length 1 after switch, got %d", len(turns))
	}
	if turns[0].Content != "Welcome! Ask me anything about Children's Rights." {
		t.Errorf("unexpected welcome text %q", turns[0].Content)
	}
}

func TestBegin_Rejections(t *testing.T) {
	tests := []struct {
		name  string
		setup func(s *Session)
		query string
	}{
		{"empty query", func(s *Session) { s.SelectTopic(testTopic) }, ""},
		{"whitespace query", func(s *Session) { s.SelectTopic(testTopic) }, "   "},
		{"tabs and newlines", func(s *Session) { s.SelectTopic(testTopic) }, "\t\n"},
		{"no topic", func(s *Session) {}, "hello"},
		{"already pending", func(s *Session) {
			s.SelectTopic(testTopic)
			s.Begin("first")
		}, "second"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(Enhanced())
			tt.setup(s)
			before := s.Len()
			wasPending := s.Pending()

			if _, ok := s.Begin(tt.query); ok {
				t.Error("Begin should reject")
			}
			if s.Len() != before {
				t.Errorf("log length changed from %d to %d", before, s.Len())
			}
			if s.Pending() != wasPending {
				t.Error("pending state should be unchanged")
			}
		})
	}
}

func TestSubmit_Lifecycle(t *testing.T) {
	s := newTestSession(Enhanced())
	s.SelectTopic(testTopic)
	if err := s.SetDifficulty(Advanced); err != nil {
		t.Fatalf("SetDifficulty failed: %v", err)
	}

	if s.Pending() {
		t.Fatal("should not be pending before submit")
	}

	ticket, ok := s.Begin("  What is CEDAW?  ")
	if !ok {
		t.Fatal("Begin should accept")
	}
	if !s.Pending() {
		t.Error("should be pending during request")
	}
	if ticket.Request.Query != "What is CEDAW?" || ticket.Request.Topic != "womens_rights" || ticket.Request.Difficulty != "advanced" {
		t.Errorf("unexpected request %+v", ticket.Request)
	}

	turns := s.Turns()
	if len(turns) != 2 || turns[1].Role != RoleUser || turns[1].Content != "What is CEDAW?" {
		t.Fatalf("expected trimmed user turn appended, got %+v", turns)
	}

	turn, err := s.Complete(ticket, &api.ChatResponse{Answer: "A treaty.", Sources: []string{"cedaw.txt (score=0.1)"}}, nil)
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if s.Pending() {
		t.Error("should not be pending after completion")
	}
	if turn.Role != RoleAssistant || turn.Content != "A treaty." || len(turn.Sources) != 1 {
		t.Errorf("unexpected assistant turn %+v", turn)
	}
	if s.Len() != 3 {
		t.Errorf("expected 3 turns, got %d", s.Len())
	}
}

func TestSubmit_BasicOmitsDifficulty(t *testing.T) {
	s := newTestSession(Basic())
	s.SelectTopic(testTopic)
	asker := &fakeAsker{resp: &api.ChatResponse{Answer: "ok"}}

	if _, err := s.Submit(context.Background(), asker, "hello"); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if len(asker.requests) != 1 {
		t.Fatalf("expected 1 request, got %d", len(asker.requests))
	}
	if asker.requests[0].Difficulty != "" {
		t.Errorf("basic mode should not send difficulty, got %q", asker.requests[0].Difficulty)
	}
}

func TestSubmit_Failures(t *testing.T) {
	tests := []struct {
		name string
		resp *api.ChatResponse
		err  error
	}{
		{"transport error", nil, errors.New("connection refused")},
		{"nil response", nil, nil},
		{"error field", &api.ChatResponse{Error: "boom"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(Enhanced())
			s.SelectTopic(testTopic)
			asker := &fakeAsker{resp: tt.resp, err: tt.err}

			turn, err := s.Submit(context.Background(), asker, "hello")
			if err != nil {
				t.Fatalf("Submit returned error: %v", err)
			}
			if turn.Role != RoleError || turn.Content != ErrorMessage {
				t.Errorf("expected unified error turn, got %+v", turn)
			}
			if turn.Cause == nil {
				t.Error("error turn should record its cause")
			}
			if s.Pending() {
				t.Error("pending should be cleared after failure")
			}

			turns := s.Turns()
			if len(turns) != 3 {
				t.Fatalf("expected welcome, user and error turns, got %d", len(turns))
			}
			errorCount := 0
			for _, tr := range turns {
				if tr.Role == RoleError {
					errorCount++
				}
			}
			if errorCount != 1 {
				t.Errorf("expected exactly one error turn, got %d", errorCount)
			}

			topic, ok := s.Topic()
			if !ok || topic.ID != testTopic.ID {
				t.Error("topic should survive a failure")
			}
		})
	}
}

func TestSubmit_Rejected(t *testing.T) {
	s := newTestSession(Enhanced())
	s.SelectTopic(testTopic)
	asker := &fakeAsker{resp: &api.ChatResponse{Answer: "ok"}}

	if _, err := s.Submit(context.Background(), asker, " "); !errors.Is(err, ErrRejected) {
		t.Errorf("expected ErrRejected, got %v", err)
	}
	if len(asker.requests) != 0 {
		t.Error("no request should be sent for a rejected query")
	}
	if s.Len() != 1 {
		t.Errorf("log should be unchanged, got %d turns", s.Len())
	}
}

func TestComplete_ExactlyOnce(t *testing.T) {
	s := newTestSession(Enhanced())
	s.SelectTopic(testTopic)

	ticket, _ := s.Begin("hello")
	if _, err := s.Complete(ticket, &api.ChatResponse{Answer: "hi"}, nil); err != nil {
		t.Fatalf("first Complete failed: %v", err)
	}
	if _, err := s.Complete(ticket, &api.ChatResponse{Answer: "again"}, nil); !errors.Is(err, ErrNotPending) {
		t.Errorf("second Complete should return ErrNotPending, got %v", err)
	}
	if s.Len() != 3 {
		t.Errorf("repeated completion should not append, got %d turns", s.Len())
	}
}

func TestComplete_StaleAfterTopicChange(t *testing.T) {
	tests := []struct {
		name   string
		change func(s *Session)
		want   int
	}{
		{"select topic", func(s *Session) { s.SelectTopic(testTopic) }, 1},
		{"clear", func(s *Session) { s.Clear() }, 1},
		{"back", func(s *Session) { s.Back() }, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(Enhanced())
			s.SelectTopic(testTopic)
			ticket, _ := s.Begin("hello")

			tt.change(s)

			if s.Pending() {
				t.Error("pending should be dropped")
			}
			if _, err := s.Complete(ticket, &api.ChatResponse{Answer: "late"}, nil); !errors.Is(err, ErrNotPending) {
				t.Errorf("late completion should be rejected, got %v", err)
			}
			if s.Len() != tt.want {
				t.Errorf("expected %d turns, got %d", tt.want, s.Len())
			}
		})
	}
}

func TestBack_ResetsState(t *testing.T) {
	s := newTestSession(Enhanced())
	s.SetDefaultDifficulty(Beginner)
	s.SelectTopic(testTopic)
	_ = s.SetDifficulty(Advanced)

	s.Back()

	if _, ok := s.Topic(); ok {
		t.Error("topic should be cleared")
	}
	if s.Len() != 0 {
		t.Errorf("log should be empty, got %d", s.Len())
	}
	if s.Difficulty() != Beginner {
		t.Errorf("difficulty should reset to default, got %q", s.Difficulty())
	}
}

func TestClear_WithoutTopic(t *testing.T) {
	s := newTestSession(Enhanced())
	s.Clear()
	if s.Len() != 0 {
		t.Errorf("Clear without a topic should do nothing, got %d turns", s.Len())
	}
}

func TestTurns_ReturnsCopy(t *testing.T) {
	s := newTestSession(Enhanced())
	s.SelectTopic(testTopic)

	turns := s.Turns()
	turns[0].Content = "mutated"

	if s.Turns()[0].Content == "mutated" {
		t.Error("Turns should return a copy")
	}
}

func TestTurn_Timestamp(t *testing.T) {
	s := newTestSession(Enhanced())
	s.SelectTopic(testTopic)

	want := time.Date(2024, 3, 9, 15, 4, 0, 0, time.UTC)
	if !s.Turns()[0].Timestamp.Equal(want) {
		t.Errorf("expected injected clock time, got %v", s.Turns()[0].Timestamp)
	}
}

func TestSetDifficulty_Invalid(t *testing.T) {
	s := newTestSession(Enhanced())
	if err := s.SetDifficulty("expert"); err == nil {
		t.Error("expected error for unknown difficulty")
	}
	if s.Difficulty() != DefaultDifficulty {
		t.Errorf("difficulty should be unchanged, got %q", s.Difficulty())
	}
}
