package ui

import (
	"os"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/zhubert/askdesk/internal/logger"
)

func TestMain(m *testing.M) {
	// Keep test runs out of the shared debug log
	logger.Reset()
	logger.Init(os.DevNull)

	code := m.Run()

	logger.Reset()
	os.Exit(code)
}

// stripANSI removes styling so tests can match on visible text
func stripANSI(s string) string {
	return ansi.Strip(s)
}
