// Package main provides the CLI entrypoint for guessr.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/guessr/internal/config"
	"github.com/verte-zerg/guessr/internal/console"
	"github.com/verte-zerg/guessr/internal/game"
	"github.com/verte-zerg/guessr/internal/model"
	"github.com/verte-zerg/guessr/internal/stats"
	"github.com/verte-zerg/guessr/internal/statsui"
	"github.com/verte-zerg/guessr/internal/store"
	"github.com/verte-zerg/guessr/internal/tui"
	"github.com/verte-zerg/guessr/internal/wordlist"
)

const (
	defaultLogLevel = "warn"
	defaultWindow   = 5
	envLogLevel     = "GUESSR_LOG_LEVEL"
	envPlayer       = "GUESSR_PLAYER"
)

var (
	logLevel string

	playPlayer     string
	playDifficulty string
	playWordsDir   string
	playPlain      bool

	statsPlayer string
	statsGame   string
	statsSince  string
	statsLast   int
	statsWindow int
	statsPlain  bool
)

func main() {
	_ = godotenv.Load()
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "guessr",
		Short:             "Number and word guessing games",
		SilenceUsage:      true,
		SilenceErrors:     false,
		PersistentPreRunE: setupLogging,
		RunE:              runGamesCmd,
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", defaultLogLevel, "log level (debug, info, warn, error)")

	rootCmd.AddCommand(newGamesCmd())
	rootCmd.AddCommand(newPlayCmd(game.NumberGame))
	rootCmd.AddCommand(newPlayCmd(game.LetterGame))
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newConfigCmd())
	return rootCmd
}

func setupLogging(cmd *cobra.Command, _ []string) error {
	level := logLevel
	if !cmd.Flags().Changed("log-level") {
		if v := os.Getenv(envLogLevel); v != "" {
			level = v
		} else if fileCfg, err := config.LoadConfig(config.DefaultConfigPath()); err == nil && fileCfg.Log.Level != nil {
			level = *fileCfg.Log.Level
		}
	}
	parsed, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return fmt.Errorf("invalid --log-level value: %w", err)
	}
	zerolog.SetGlobalLevel(parsed)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	return nil
}

func newGamesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "games",
		Short: "List available games",
		Args:  cobra.NoArgs,
		RunE:  runGamesCmd,
	}
}

func runGamesCmd(cmd *cobra.Command, _ []string) error {
	registry := game.DefaultRegistry(wordlist.Default())
	for _, entry := range registry.Games() {
		line := fmt.Sprintf("%-10s %s: %s", entry.Key, entry.Name, entry.Description)
		if len(entry.Aliases) > 0 {
			line += fmt.Sprintf(" (alias: %s)", strings.Join(entry.Aliases, ", "))
		}
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newPlayCmd(key string) *cobra.Command {
	entry, _ := game.DefaultRegistry(nil).Lookup(key)
	cmd := &cobra.Command{
		Use:     key,
		Aliases: entry.Aliases,
		Short:   "Play " + entry.Name,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPlayCmd(cmd, key)
		},
	}
	cmd.Flags().StringVar(&playPlayer, "player", "", "player name recorded with scores")
	cmd.Flags().StringVar(&playDifficulty, "difficulty", "", "easy, medium or hard (asked when empty)")
	cmd.Flags().BoolVar(&playPlain, "plain", false, "use line-based prompts instead of the TUI")
	if key == game.LetterGame {
		cmd.Flags().StringVar(&playWordsDir, "words-dir", "", "directory with easy.txt, medium.txt and hard.txt")
	}
	return cmd
}

func runPlayCmd(cmd *cobra.Command, key string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "player", &playPlayer, fileCfg.Play.Player)
	applyStringConfig(cmd, "difficulty", &playDifficulty, fileCfg.Play.Difficulty)
	applyStringConfig(cmd, "words-dir", &playWordsDir, fileCfg.Play.WordListDir)
	applyBoolConfig(cmd, "plain", &playPlain, fileCfg.Play.Plain)

	cfg := model.PlayConfig{
		Game:        key,
		Player:      resolvePlayer(playPlayer),
		Difficulty:  playDifficulty,
		WordListDir: playWordsDir,
		Plain:       playPlain,
	}

	var level *game.Level
	if cfg.Difficulty != "" {
		parsed, err := game.ParseLevel(cfg.Difficulty)
		if err != nil {
			return fmt.Errorf("invalid --difficulty value: %w", err)
		}
		level = &parsed
	}

	words, err := loadWords(cfg)
	if err != nil {
		return err
	}
	entry, ok := game.DefaultRegistry(words).Lookup(cfg.Game)
	if !ok {
		return fmt.Errorf("unknown game %q", cfg.Game)
	}

	st, err := store.Open(resolveDBPath(fileCfg))
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			log.Error().Err(cerr).Msg("failed to close db")
		}
	}()

	opts := game.Options{Player: cfg.Player, Recorder: st}
	log.Info().Str("game", entry.Key).Str("player", cfg.Player).Bool("plain", usePlain(cfg)).Msg("starting")

	if usePlain(cfg) {
		runner := console.New(entry, opts, cmd.InOrStdin(), cmd.OutOrStdout())
		runner.Level = level
		rounds, err := runner.Run(context.Background())
		log.Debug().Int("rounds", rounds).Msg("console session ended")
		return err
	}

	m := tui.NewModel(entry, opts, level)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	if err := m.Err(); err != nil {
		return err
	}
	played, won := m.Rounds()
	if played > 0 {
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Won %d of %d rounds.\n", won, played); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

// loadWords returns the embedded lists overlaid with any lists found on disk.
func loadWords(cfg model.PlayConfig) (wordlist.Lists, error) {
	defaults := wordlist.Default()
	if cfg.Game != game.LetterGame {
		return defaults, nil
	}
	dir := cfg.WordListDir
	explicit := dir != ""
	if !explicit {
		dir = config.DefaultWordListDir()
	}
	custom, err := wordlist.LoadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load word lists from %s: %w", dir, err)
	}
	if explicit {
		// An explicit directory must cover the levels it is used for.
		return custom, nil
	}
	return custom.Merge(defaults), nil
}

func usePlain(cfg model.PlayConfig) bool {
	return cfg.Plain || !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd()))
}

func resolvePlayer(name string) string {
	if name = strings.TrimSpace(name); name != "" {
		return name
	}
	if v := strings.TrimSpace(os.Getenv(envPlayer)); v != "" {
		return v
	}
	return strings.TrimSpace(os.Getenv("USER"))
}

func resolveDBPath(fileCfg config.FileConfig) string {
	if fileCfg.Play.DBPath != nil && *fileCfg.Play.DBPath != "" {
		return *fileCfg.Play.DBPath
	}
	return config.DefaultDBPath()
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show scores",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsPlayer, "player", "", "player filter")
	cmd.Flags().StringVar(&statsGame, "game", "", "game filter (number or hangman)")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N rounds")
	cmd.Flags().IntVar(&statsWindow, "window", defaultWindow, "moving average window for the win trend")
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print a text report instead of the TUI")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "last", &statsLast, fileCfg.Stats.Last)
	applyIntConfig(cmd, "window", &statsWindow, fileCfg.Stats.Window)

	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	gameKey := ""
	if statsGame != "" {
		entry, ok := game.DefaultRegistry(nil).Lookup(statsGame)
		if !ok {
			return fmt.Errorf("unknown game %q", statsGame)
		}
		gameKey = entry.Key
	}

	cfg := model.StatsConfig{
		Player: statsPlayer,
		Game:   gameKey,
		Since:  sinceTime,
		Last:   statsLast,
		Window: statsWindow,
	}
	if err := validateStatsConfig(cfg); err != nil {
		return err
	}

	st, err := store.Open(resolveDBPath(fileCfg))
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			log.Error().Err(cerr).Msg("failed to close db")
		}
	}()

	if statsPlain || !term.IsTerminal(int(os.Stdout.Fd())) {
		report, err := stats.BuildReport(context.Background(), st, cfg)
		if err != nil {
			return fmt.Errorf("failed to build report: %w", err)
		}
		return report.Render(cmd.OutOrStdout())
	}

	program := tea.NewProgram(statsui.NewModel(st, cfg), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func validateStatsConfig(cfg model.StatsConfig) error {
	if cfg.Last < 0 {
		return fmt.Errorf("--last must be >= 0")
	}
	if cfg.Window < 0 {
		return fmt.Errorf("--window must be >= 0")
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if flag := cmd.Flags().Lookup(name); flag == nil || flag.Changed {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# guessr configuration
# Uncomment a value to enable it. CLI flags override config values.

[play]
# player = "name"          # Name stored with every score (default: $%s or $USER)
# difficulty = "easy"      # easy, medium or hard; asked each round when unset
# wordlist-dir = %q
# plain = false            # Line-based prompts instead of the TUI
# db = %q

[stats]
# last = 0                 # Limit reports to the last N rounds
# window = %d               # Moving average window for the win trend

[log]
# level = %q
`,
		envPlayer,
		config.DefaultWordListDir(),
		config.DefaultDBPath(),
		defaultWindow,
		defaultLogLevel,
	)
}
