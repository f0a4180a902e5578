package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindUnknown, "unknown error"},
		{KindNotFound, "not found"},
		{KindInvalid, "invalid"},
		{KindIO, "I/O error"},
		{KindNetwork, "network error"},
		{KindStatus, "unexpected status"},
		{KindDecode, "decode error"},
		{KindBackend, "backend error"},
		{KindConfig, "configuration error"},
		{KindClipboard, "clipboard error"},
		{Kind(999), "unknown error"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.expected {
				t.Errorf("Kind.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "with op and context",
			err:      &Error{Op: "test.Op", Context: "some context", Err: errors.New("underlying error")},
			expected: "test.Op: some context: underlying error",
		},
		{
			name:     "with op only",
			err:      &Error{Op: "test.Op", Err: errors.New("underlying error")},
			expected: "test.Op: underlying error",
		},
		{
			name:     "without op",
			err:      &Error{Err: errors.New("underlying error")},
			expected: "underlying error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error.Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestE(t *testing.T) {
	tests := []struct {
		name     string
		args     []interface{}
		wantOp   Op
		wantKind Kind
		wantMsg  string
	}{
		{
			name:     "with all args",
			args:     []interface{}{Op("test.Op"), KindNotFound, "context", errors.New("error")},
			wantOp:   "test.Op",
			wantKind: KindNotFound,
			wantMsg:  "test.Op: context: error",
		},
		{
			name:     "context becomes the error",
			args:     []interface{}{Op("test.Op"), KindInvalid, "just a message"},
			wantOp:   "test.Op",
			wantKind: KindInvalid,
			wantMsg:  "test.Op: just a message",
		},
		{
			name:     "with just error",
			args:     []interface{}{errors.New("simple error")},
			wantKind: KindUnknown,
			wantMsg:  "simple error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := E(tt.args...)
			e, ok := err.(*Error)
			if !ok {
				t.Fatalf("E() returned %T, want *Error", err)
			}
			if e.Op != tt.wantOp {
				t.Errorf("E().Op = %q, want %q", e.Op, tt.wantOp)
			}
			if e.Kind != tt.wantKind {
				t.Errorf("E().Kind = %v, want %v", e.Kind, tt.wantKind)
			}
			if e.Error() != tt.wantMsg {
				t.Errorf("E().Error() = %q, want %q", e.Error(), tt.wantMsg)
			}
		})
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		kind     Kind
		expected bool
	}{
		{"matching kind", E(Op("test"), KindNetwork, "down"), KindNetwork, true},
		{"non-matching kind", E(Op("test"), KindNetwork, "down"), KindStatus, false},
		{"plain error", errors.New("regular error"), KindNetwork, false},
		{"nil error", nil, KindNetwork, false},
		{"wrapped error", fmt.Errorf("wrapped: %w", E(Op("test"), KindDecode, "bad json")), KindDecode, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.kind); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetKind(t *testing.T) {
	if got := GetKind(E(Op("test"), KindBackend, "boom")); got != KindBackend {
		t.Errorf("GetKind() = %v, want %v", got, KindBackend)
	}
	if got := GetKind(errors.New("regular")); got != KindUnknown {
		t.Errorf("GetKind() = %v, want %v", got, KindUnknown)
	}
	if got := GetKind(nil); got != KindUnknown {
		t.Errorf("GetKind(nil) = %v, want %v", got, KindUnknown)
	}
}

func TestRequestFailed(t *testing.T) {
	underlying := errors.New("connection refused")
	err := RequestFailed(Op("api.Chat"), "http://localhost:5050/api/chat", underlying)

	if !Is(err, KindNetwork) {
		t.Error("RequestFailed should return KindNetwork error")
	}
	if !errors.Is(err, underlying) {
		t.Error("RequestFailed should wrap the underlying error")
	}
}

func TestUnexpectedStatus(t *testing.T) {
	err := UnexpectedStatus(Op("api.Chat"), 500, "")
	if !Is(err, KindStatus) {
		t.Error("UnexpectedStatus should return KindStatus error")
	}
	if got := err.Error(); got != "api.Chat: server error: 500" {
		t.Errorf("Error() = %q", got)
	}

	withDetail := UnexpectedStatus(Op("api.Chat"), 400, "Missing required field: query")
	if got := withDetail.Error(); got != "api.Chat: server error: 400: Missing required field: query" {
		t.Errorf("Error() = %q", got)
	}
}

func TestDecodeFailed(t *testing.T) {
	if !Is(DecodeFailed(Op("api.Topics"), errors.New("invalid character")), KindDecode) {
		t.Error("DecodeFailed should return KindDecode error")
	}
}

func TestBackendError(t *testing.T) {
	err := BackendError(Op("api.Chat"), "Invalid topic")
	if !Is(err, KindBackend) {
		t.Error("BackendError should return KindBackend error")
	}
}

func TestTopicNotFound(t *testing.T) {
	err := TopicNotFound("womens_rights")
	if !Is(err, KindNotFound) {
		t.Error("TopicNotFound should return KindNotFound error")
	}
	if e, ok := err.(*Error); ok {
		if e.Op != "catalog.Find" {
			t.Errorf("Op = %q, want %q", e.Op, "catalog.Find")
		}
	} else {
		t.Error("TopicNotFound should return *Error")
	}
}

func TestConfigErrors(t *testing.T) {
	underlying := errors.New("permission denied")
	if !Is(ConfigLoadFailed("/path/to/config", underlying), KindConfig) {
		t.Error("ConfigLoadFailed should return KindConfig error")
	}
	if !Is(ConfigSaveFailed("/path/to/config", underlying), KindConfig) {
		t.Error("ConfigSaveFailed should return KindConfig error")
	}
	if !Is(ConfigInvalid("unknown difficulty"), KindInvalid) {
		t.Error("ConfigInvalid should return KindInvalid error")
	}
}

func TestClipboardErrors(t *testing.T) {
	underlying := errors.New("no display")
	if !Is(ClipboardUnavailable(underlying), KindClipboard) {
		t.Error("ClipboardUnavailable should return KindClipboard error")
	}
	if !errors.Is(ClipboardWriteFailed(underlying), underlying) {
		t.Error("ClipboardWriteFailed should wrap the underlying error")
	}
}

func TestErrorChaining(t *testing.T) {
	innerErr := errors.New("original error")
	middleErr := E(Op("middle.Op"), KindIO, innerErr)
	outerErr := E(Op("outer.Op"), KindConfig, middleErr)

	if !errors.Is(outerErr, innerErr) {
		t.Error("Should be able to find inner error through chain")
	}
	if GetKind(outerErr) != KindConfig {
		t.Error("GetKind should return outer error's kind")
	}
}
