package clipboard

import (
	"errors"
	"testing"

	apperrors "github.com/zhubert/askdesk/internal/errors"
)

func TestFunc_WriteText(t *testing.T) {
	var got string
	var w Writer = Func(func(text string) error {
		got = text
		return nil
	})

	if err := w.WriteText("copied answer"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "copied answer" {
		t.Errorf("expected text to reach the writer, got %q", got)
	}
}

func TestFunc_PropagatesError(t *testing.T) {
	want := errors.New("no display")
	w := Func(func(string) error { return want })

	if err := w.WriteText("x"); !errors.Is(err, want) {
		t.Errorf("expected %v, got %v", want, err)
	}
}

func TestWriteFailedKind(t *testing.T) {
	err := apperrors.ClipboardWriteFailed(nil)
	if !apperrors.Is(err, apperrors.KindClipboard) {
		t.Errorf("expected KindClipboard, got %v", apperrors.GetKind(err))
	}
}
