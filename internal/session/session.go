package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/zhubert/askdesk/internal/api"
	"github.com/zhubert/askdesk/internal/logger"
)

// ErrorMessage is the single user-facing text for every failed request.
const ErrorMessage = "Failed to get response. Please check your connection and try again."

var (
	// ErrNotPending is returned by Complete for a ticket that is not the
	// current in-flight request.
	ErrNotPending = errors.New("no matching request in flight")

	// ErrRejected is returned by Submit when Begin refuses the query.
	ErrRejected = errors.New("query rejected")
)

// Role identifies who produced a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleError     Role = "error"
)

// Turn is one entry in the conversation log. Turns are never modified after
// they are appended.
type Turn struct {
	ID        string
	Role      Role
	Content   string
	Sources   []string
	Timestamp time.Time
	Welcome   bool

	// Cause is the underlying failure of an error turn. It is never shown.
	Cause error
}

// Options selects which client features are active.
type Options struct {
	History    bool
	Difficulty bool
}

// Basic is the plain client: no timestamps, no selector.
func Basic() Options {
	return Options{}
}

// Enhanced is the full client with history extras and difficulty levels.
func Enhanced() Options {
	return Options{History: true, Difficulty: true}
}

// Asker sends one question to the backend.
type Asker interface {
	Chat(ctx context.Context, req api.ChatRequest) (*api.ChatResponse, error)
}

// Ticket identifies one in-flight request.
type Ticket struct {
	seq     uint64
	Request api.ChatRequest
}

// Session is one conversation. It is not safe for concurrent use; the app
// touches it only from its update loop.
type Session struct {
	opts              Options
	defaultDifficulty Difficulty
	difficulty        Difficulty
	topic             *api.Topic
	turns             []Turn
	seq               uint64
	pending           uint64
	now               func() time.Time
	log               *slog.Logger
}

// New creates an empty session with no topic.
func New(opts Options) *Session {
	return &Session{
		opts:              opts,
		defaultDifficulty: DefaultDifficulty,
		difficulty:        DefaultDifficulty,
		now:               time.Now,
		log:               logger.ComponentLogger("session"),
	}
}

// SetClock replaces the timestamp source (for testing).
func (s *Session) SetClock(now func() time.Time) {
	s.now = now
}

// SetDefaultDifficulty changes the level restored by Back and sets the
// current level to it.
func (s *Session) SetDefaultDifficulty(d Difficulty) {
	if !d.Valid() {
		return
	}
	s.defaultDifficulty = d
	s.difficulty = d
}

// Options returns the active feature set.
func (s *Session) Options() Options {
	return s.opts
}

// Topic returns the active topic.
func (s *Session) Topic() (api.Topic, bool) {
	if s.topic == nil {
		return api.Topic{}, false
	}
	return *s.topic, true
}

// Difficulty returns the current level.
func (s *Session) Difficulty() Difficulty {
	return s.difficulty
}

// SetDifficulty changes the level sent with later requests.
func (s *Session) SetDifficulty(d Difficulty) error {
	if !d.Valid() {
		return fmt.Errorf("unknown difficulty %q", d)
	}
	s.difficulty = d
	s.log.Debug("difficulty changed", "difficulty", string(d))
	return nil
}

// Pending reports whether a request is in flight.
func (s *Session) Pending() bool {
	return s.pending != 0
}

// Turns returns a copy of the conversation log.
func (s *Session) Turns() []Turn {
	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// Len returns the number of turns in the log.
func (s *Session) Len() int {
	return len(s.turns)
}

// SelectTopic activates a topic and resets the log to its welcome turn.
func (s *Session) SelectTopic(topic api.Topic) {
	t := topic
	s.topic = &t
	s.pending = 0
	s.turns = []Turn{s.welcomeTurn()}
	s.log.Info("topic selected", "topic", topic.ID)
}

// Clear keeps the topic and resets the log to its welcome turn.
func (s *Session) Clear() {
	if s.topic == nil {
		return
	}
	s.pending = 0
	s.turns = []Turn{s.welcomeTurn()}
	s.log.Debug("conversation cleared", "topic", s.topic.ID)
}

// Back drops the topic and returns to an empty session.
func (s *Session) Back() {
	s.topic = nil
	s.turns = nil
	s.pending = 0
	s.difficulty = s.defaultDifficulty
}

func (s *Session) welcomeTurn() Turn {
	return s.newTurn(RoleAssistant, fmt.Sprintf("Welcome! Ask me anything about %s.", s.topic.Name), nil, true)
}

func (s *Session) newTurn(role Role, content string, sources []string, welcome bool) Turn {
	return Turn{
		ID:        uuid.New().String(),
		Role:      role,
		Content:   content,
		Sources:   sources,
		Timestamp: s.now(),
		Welcome:   welcome,
	}
}

// Begin appends the user turn for query and marks the session pending. It
// returns false without changing anything when the query is blank, no topic
// is active, or a request is already in flight.
func (s *Session) Begin(query string) (Ticket, bool) {
	query = strings.TrimSpace(query)
	if query == "" || s.topic == nil || s.pending != 0 {
		return Ticket{}, false
	}

	s.turns = append(s.turns, s.newTurn(RoleUser, query, nil, false))
	s.seq++
	s.pending = s.seq

	req := api.ChatRequest{Query: query, Topic: s.topic.ID}
	if s.opts.Difficulty {
		req.Difficulty = string(s.difficulty)
	}

	s.log.Debug("request started", "topic", s.topic.ID, "seq", s.seq)
	return Ticket{seq: s.seq, Request: req}, true
}

// Complete finishes the request identified by ticket and appends the
// resulting assistant or error turn.
func (s *Session) Complete(ticket Ticket, resp *api.ChatResponse, err error) (Turn, error) {
	if s.pending == 0 || ticket.seq != s.pending {
		return Turn{}, ErrNotPending
	}
	s.pending = 0

	if err == nil && resp == nil {
		err = errors.New("empty response")
	}
	if err == nil && resp.Error != "" {
		err = errors.New(resp.Error)
	}

	var turn Turn
	if err != nil {
		s.log.Warn("request failed", "topic", ticket.Request.Topic, "error", err)
		turn = s.newTurn(RoleError, ErrorMessage, nil, false)
		turn.Cause = err
	} else {
		sources := make([]string, len(resp.Sources))
		copy(sources, resp.Sources)
		turn = s.newTurn(RoleAssistant, resp.Answer, sources, false)
	}

	s.turns = append(s.turns, turn)
	return turn, nil
}

// Submit runs one full request cycle synchronously.
func (s *Session) Submit(ctx context.Context, asker Asker, query string) (Turn, error) {
	ticket, ok := s.Begin(query)
	if !ok {
		return Turn{}, ErrRejected
	}
	resp, err := asker.Chat(ctx, ticket.Request)
	return s.Complete(ticket, resp, err)
}
