package cmd

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"
	"github.com/zhubert/askdesk/internal/api"
	"github.com/zhubert/askdesk/internal/app"
	"github.com/zhubert/askdesk/internal/config"
	"github.com/zhubert/askdesk/internal/logger"
	"github.com/zhubert/askdesk/internal/session"
)

var (
	debugMode             bool
	apiBase               string
	basicMode             bool
	difficultyName        string
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "askdesk",
	Short: "Terminal client for a topic-scoped question-answering service",
	Long: `askdesk lets you pick a topic from the backend's catalog and ask it
questions. Answers come back with the documents they were drawn from,
ranked by relevance.`,
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&apiBase, "api", "", "Backend base URL (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&basicMode, "basic", false, "Basic mode: no timestamps, relevance or difficulty levels")
	rootCmd.PersistentFlags().StringVar(&difficultyName, "difficulty", "", "Starting difficulty: beginner, intermediate or advanced")
}

func initConfig() {
	logger.SetDebug(debugMode)
}

// Execute runs the root command
func Execute() error {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("askdesk %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("askdesk %s\n", version)
}

// runSettings is the config with command-line overrides applied. Overrides
// last for the run only and are never saved.
type runSettings struct {
	cfg        *config.Config
	apiBase    string
	basic      bool
	difficulty session.Difficulty
}

func (s runSettings) sessionOptions() session.Options {
	if s.basic {
		return session.Basic()
	}
	return session.Enhanced()
}

func loadSettings() (runSettings, error) {
	cfg, err := config.Load()
	if err != nil {
		return runSettings{}, fmt.Errorf("error loading config: %w", err)
	}

	settings := runSettings{
		cfg:     cfg,
		apiBase: cfg.GetAPIBase(),
		basic:   basicMode || cfg.GetBasic(),
	}
	if apiBase != "" {
		base := strings.TrimRight(strings.TrimSpace(apiBase), "/")
		if err := config.ValidateAPIBase(base); err != nil {
			return runSettings{}, err
		}
		settings.apiBase = base
	}

	name := difficultyName
	if name == "" {
		name = cfg.GetDifficulty()
	}
	if name != "" {
		d, err := session.ParseDifficulty(name)
		if err != nil {
			return runSettings{}, err
		}
		settings.difficulty = d
	}
	return settings, nil
}

func (s runSettings) client() *api.Client {
	return api.New(s.apiBase)
}

func runTUI(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	// Ensure logger is closed on exit
	defer logger.Close()

	logger.ComponentLogger("cmd").Info("starting", "version", version, "api", settings.apiBase)

	m := app.New(settings.cfg, settings.client(), app.Options{
		Basic:      settings.basic,
		Difficulty: settings.difficulty,
	})
	p := tea.NewProgram(m)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}
