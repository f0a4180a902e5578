// Package clipboard writes answer text to the system clipboard.
package clipboard

import (
	"sync"

	"golang.design/x/clipboard"

	apperrors "github.com/zhubert/askdesk/internal/errors"
	"github.com/zhubert/askdesk/internal/logger"
)

// Writer puts text on a clipboard.
type Writer interface {
	WriteText(text string) error
}

var (
	initOnce sync.Once
	initErr  error
)

// Init initializes the system clipboard. Safe to call multiple times; the
// first result is remembered.
func Init() error {
	initOnce.Do(func() {
		if err := clipboard.Init(); err != nil {
			logger.ComponentLogger("clipboard").Warn("failed to initialize", "error", err)
			initErr = apperrors.ClipboardUnavailable(err)
			return
		}
		logger.ComponentLogger("clipboard").Debug("initialized")
	})
	return initErr
}

// System is the Writer backed by the OS clipboard.
type System struct{}

// WriteText writes text to the clipboard.
func (System) WriteText(text string) error {
	if err := Init(); err != nil {
		return err
	}

	// Write returns a channel closed when another program takes ownership;
	// a nil channel means the write never happened.
	if changed := clipboard.Write(clipboard.FmtText, []byte(text)); changed == nil {
		return apperrors.ClipboardWriteFailed(nil)
	}
	logger.ComponentLogger("clipboard").Debug("wrote text", "bytes", len(text))
	return nil
}

// Func adapts a function to Writer.
type Func func(text string) error

// WriteText calls f.
func (f Func) WriteText(text string) error {
	return f(text)
}
