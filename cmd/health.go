package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/zhubert/askdesk/internal/api"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the backend is reachable",
	Args:  cobra.NoArgs,
	RunE:  runHealth,
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

func runHealth(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	status, err := settings.client().Health(cmd.Context())
	if err != nil {
		color.New(color.FgRed).Fprintf(out, "✗ %s unreachable\n", settings.apiBase)
		return err
	}

	printHealth(out, settings.apiBase, status)

	if !isHealthy(status.Status) {
		return fmt.Errorf("backend reported status %q", status.Status)
	}
	return nil
}

// printHealth writes one status line. Status and message come from the
// backend, so they are reduced to plain single-line text first.
func printHealth(w io.Writer, base string, status *api.HealthStatus) {
	state := plainLine(status.Status)
	if isHealthy(status.Status) {
		color.New(color.FgGreen).Fprintf(w, "✓ %s %s", base, state)
	} else {
		color.New(color.FgYellow).Fprintf(w, "! %s %s", base, state)
	}
	if msg := plainLine(status.Message); msg != "" {
		fmt.Fprintf(w, ": %s", msg)
	}
	fmt.Fprintln(w)
}

func isHealthy(status string) bool {
	switch strings.ToLower(status) {
	case "healthy", "ok":
		return true
	}
	return false
}
