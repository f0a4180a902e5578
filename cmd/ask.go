package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/zhubert/askdesk/internal/api"
	apperrors "github.com/zhubert/askdesk/internal/errors"
	"github.com/zhubert/askdesk/internal/render"
	"github.com/zhubert/askdesk/internal/session"
	"github.com/zhubert/askdesk/internal/ui"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatHTML = "html"

	askWrapWidth = 80
)

var (
	askTopic  string
	askFormat string
)

var askCmd = &cobra.Command{
	Use:   "ask --topic <id> <question>",
	Short: "Ask one question and print the answer",
	Long: `Ask sends a single question to the backend under the given topic and
prints the answer with its sources. Use --format json for scripts or
--format html for a standalone transcript page.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askTopic, "topic", "t", "", "Topic ID (see 'askdesk topics')")
	askCmd.Flags().StringVarP(&askFormat, "format", "f", formatText, "Output format: text, json or html")
	_ = askCmd.MarkFlagRequired("topic")
	rootCmd.AddCommand(askCmd)
}

// askResult is the JSON shape printed by --format json.
type askResult struct {
	Topic      string      `json:"topic"`
	Query      string      `json:"query"`
	Difficulty string      `json:"difficulty,omitempty"`
	Answer     string      `json:"answer,omitempty"`
	Sources    []askSource `json:"sources,omitempty"`
	Error      string      `json:"error,omitempty"`
}

type askSource struct {
	Name      string   `json:"name"`
	Score     *float64 `json:"score,omitempty"`
	Relevance *int     `json:"relevance,omitempty"`
}

func runAsk(cmd *cobra.Command, args []string) error {
	switch askFormat {
	case formatText, formatJSON, formatHTML:
	default:
		return fmt.Errorf("unknown format %q (use text, json or html)", askFormat)
	}

	settings, err := loadSettings()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	client := settings.client()

	topics, err := client.Topics(ctx)
	if err != nil {
		return fmt.Errorf("failed to load topics: %w", err)
	}
	topic, ok := findTopic(topics, askTopic)
	if !ok {
		return apperrors.TopicNotFound(askTopic)
	}

	sess := session.New(settings.sessionOptions())
	sess.SetDefaultDifficulty(settings.difficulty)
	sess.SelectTopic(topic)

	query := strings.Join(args, " ")
	turn, err := sess.Submit(ctx, client, query)
	if errors.Is(err, session.ErrRejected) {
		return errors.New("question must not be empty")
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch askFormat {
	case formatJSON:
		err = printAskJSON(out, sess, topic, query, turn)
	case formatHTML:
		err = printAskHTML(out, sess, topic)
	default:
		err = printAskText(out, sess, turn)
	}
	if err != nil {
		return err
	}

	if turn.Role == session.RoleError {
		return fmt.Errorf("%s (%w)", session.ErrorMessage, turn.Cause)
	}
	return nil
}

func findTopic(topics []api.Topic, id string) (api.Topic, bool) {
	for _, t := range topics {
		if t.ID == id {
			return t, true
		}
	}
	return api.Topic{}, false
}

func printAskText(w io.Writer, sess *session.Session, turn session.Turn) error {
	_, err := lipgloss.Fprintln(w, ui.RenderTurn(turn, askWrapWidth, sess.Options().History))
	return err
}

func printAskJSON(w io.Writer, sess *session.Session, topic api.Topic, query string, turn session.Turn) error {
	result := askResult{
		Topic: topic.ID,
		Query: strings.TrimSpace(query),
	}
	if sess.Options().Difficulty {
		result.Difficulty = string(sess.Difficulty())
	}

	if turn.Role == session.RoleError {
		result.Error = turn.Content
	} else {
		result.Answer = turn.Content
		for _, src := range render.ParseSources(turn.Sources) {
			s := askSource{Name: src.Name}
			if src.HasScore {
				score, pct := src.Score, src.Percent()
				s.Score, s.Relevance = &score, &pct
			}
			result.Sources = append(result.Sources, s)
		}
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if colorEnabled(w) {
		data = highlightJSON(data)
	}
	_, err = w.Write(data)
	return err
}

// highlightJSON colors JSON for a 256-color terminal. On any failure the
// input comes back unchanged.
func highlightJSON(data []byte) []byte {
	lexer := lexers.Get("json")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, string(data))
	if err != nil {
		return data
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return data
	}
	return buf.Bytes()
}

func printAskHTML(w io.Writer, sess *session.Session, topic api.Topic) error {
	tr := render.Transcript{
		Topic:       topic.Name,
		ShowHistory: sess.Options().History,
		Turns:       sess.Turns(),
	}
	if sess.Options().Difficulty {
		tr.Difficulty = sess.Difficulty().Label()
	}
	return render.HTML(w, tr)
}

// colorEnabled reports whether w is a terminal that accepts color.
func colorEnabled(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || color.NoColor {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
