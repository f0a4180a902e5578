package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/zhubert/askdesk/internal/api"
	"github.com/zhubert/askdesk/internal/render"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List the topics the backend can answer questions about",
	Args:  cobra.NoArgs,
	RunE:  runTopics,
}

func init() {
	rootCmd.AddCommand(topicsCmd)
}

func runTopics(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	topics, err := settings.client().Topics(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load topics: %w", err)
	}

	printTopics(cmd.OutOrStdout(), topics)
	return nil
}

// printTopics writes one topic per line in catalog order.
func printTopics(w io.Writer, topics []api.Topic) {
	if len(topics) == 0 {
		fmt.Fprintln(w, "No topics available.")
		return
	}

	id := color.New(color.FgCyan, color.Bold)
	name := color.New(color.Bold)
	desc := color.New(color.Faint)
	for _, t := range topics {
		line := id.Sprint(plainLine(t.ID)) + "  "
		if icon := plainLine(t.Icon); icon != "" {
			line += icon + " "
		}
		line += name.Sprint(plainLine(t.Name))
		if d := plainLine(t.Description); d != "" {
			line += "  " + desc.Sprint(d)
		}
		fmt.Fprintln(w, line)
	}
}

// plainLine strips terminal controls from backend text and folds it onto
// one line.
func plainLine(s string) string {
	return strings.Join(strings.Fields(render.Sanitize(s)), " ")
}
