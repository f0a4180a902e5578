// Package notification provides cross-platform desktop notifications.
// It uses the beeep library to send notifications on macOS, Linux, and Windows.
package notification

import (
	"github.com/gen2brain/beeep"
	"github.com/zhubert/askdesk/internal/logger"
)

// AppName is the notification title.
const AppName = "askdesk"

// maxPreview bounds the answer excerpt shown in the notification body.
const maxPreview = 80

// notifier is swapped out in tests so no real notification is sent.
var notifier = beeep.Notify

// SetNotifier replaces the notification function (for testing).
func SetNotifier(fn func(title, message string, icon any) error) {
	notifier = fn
}

// ResetNotifier restores the beeep notifier.
func ResetNotifier() {
	notifier = beeep.Notify
}

// Send sends a desktop notification with the given title and message.
func Send(title, message string) error {
	log := logger.ComponentLogger("notification")
	log.Debug("sending notification", "title", title)

	// Empty icon lets beeep use the platform default
	err := notifier(title, message, "")
	if err != nil {
		log.Warn("failed to send notification", "error", err)
	}
	return err
}

// AnswerReady announces that the backend answered a question in topicName.
// The first line of the answer is included, shortened to fit.
func AnswerReady(topicName, answer string) error {
	return Send(AppName, topicName+": "+preview(answer))
}

func preview(answer string) string {
	line := answer
	for i, r := range answer {
		if r == '\n' {
			line = answer[:i]
			break
		}
	}
	runes := []rune(line)
	if len(runes) > maxPreview {
		return string(runes[:maxPreview-1]) + "…"
	}
	return line
}
