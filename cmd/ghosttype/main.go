// Package main provides the CLI entrypoint for ghosttype.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/ghosttype/internal/config"
	"github.com/verte-zerg/ghosttype/internal/engine"
	"github.com/verte-zerg/ghosttype/internal/model"
	"github.com/verte-zerg/ghosttype/internal/persist"
	"github.com/verte-zerg/ghosttype/internal/stats"
	"github.com/verte-zerg/ghosttype/internal/statsui"
	"github.com/verte-zerg/ghosttype/internal/store"
	"github.com/verte-zerg/ghosttype/internal/tui"
	"github.com/verte-zerg/ghosttype/internal/wordbank"
)

const (
	defaultSound = true
	defaultFPS   = 60
	minFPS       = 10
	maxFPS       = 240
)

var (
	gameSound       bool
	gameWordListDir string
	gameFPS         int
	gameDBPath      string
	debugLog        bool

	statsLast    int
	statsPlain   bool
	resetHistory bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "ghosttype",
		Short:         "Type the words before they fade",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runGameCmd,
	}

	rootCmd.PersistentFlags().StringVar(&gameDBPath, "db", config.DefaultDBPath(), "path to the stats database")
	rootCmd.PersistentFlags().BoolVar(&debugLog, "debug", false, "write debug records to the log file")
	rootCmd.Flags().BoolVar(&gameSound, "sound", defaultSound, "ring the terminal bell on alarming cues")
	rootCmd.Flags().StringVar(&gameWordListDir, "wordlist-dir", config.DefaultWordListDir(), "directory with easy.txt, medium.txt and hard.txt overrides")
	rootCmd.Flags().IntVar(&gameFPS, "fps", defaultFPS, "frame rate of the round timer (10-240)")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newResetCmd())

	return rootCmd
}

func runGameCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyBoolConfig(cmd, "sound", &gameSound, fileCfg.Game.Sound)
	applyStringConfig(cmd, "wordlist-dir", &gameWordListDir, fileCfg.Game.WordListDir)
	applyIntConfig(cmd, "fps", &gameFPS, fileCfg.Game.FPS)
	applyStringConfig(cmd, "db", &gameDBPath, fileCfg.Game.DBPath)

	cfg := model.Config{
		Sound:       gameSound,
		WordListDir: gameWordListDir,
		FPS:         gameFPS,
		DBPath:      gameDBPath,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("ghosttype needs an interactive terminal")
	}

	logger, closeLog := openLogger(config.DefaultLogPath(), debugLog)
	defer closeLog()

	bank := wordbank.New()
	replaced, err := bank.LoadOverrides(cfg.WordListDir)
	if err != nil {
		return fmt.Errorf("failed to load word lists: %w", err)
	}
	if len(replaced) > 0 {
		logger.Info("word list overrides loaded", "dir", cfg.WordListDir, "tiers", replaced)
	}

	st, records := openRecords(cfg.DBPath, logger)
	if st != nil {
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logger.Warn("failed to close db", "err", cerr)
			}
		}()
	}

	cues := tui.NewCuePlayer(os.Stdout, cfg.Sound)
	eng := engine.New(engine.Options{
		Bank:          bank,
		Progress:      records,
		Audio:         cues,
		Logger:        logger,
		FrameInterval: time.Second / time.Duration(cfg.FPS),
	})
	program := tea.NewProgram(tui.NewModel(eng, cues, records), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// openRecords opens the stats database. When it cannot be opened the game
// still runs with persistence unavailable.
func openRecords(path string, logger *log.Logger) (*store.Store, *persist.Stats) {
	st, err := store.Open(path)
	if err != nil {
		logger.Warn("stats database unavailable, progress will not be saved", "path", path, "err", err)
		return nil, persist.New(nil, nil, logger)
	}
	return st, persist.New(st, st, logger)
}

func openLogger(path string, debug bool) (*log.Logger, func()) {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	opts := log.Options{
		Level:           level,
		Prefix:          "ghosttype",
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Formatter:       log.LogfmtFormatter,
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return log.NewWithOptions(io.Discard, opts), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return log.NewWithOptions(io.Discard, opts), func() {}
	}
	return log.NewWithOptions(f, opts), func() {
		_ = f.Close()
	}
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

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show lifetime totals and recent sessions",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().IntVar(&statsLast, "last", 20, "limit to last N sessions (0 for all)")
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print the report instead of opening the viewer")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	if statsLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return err
	}
	logger, closeLog := openLogger(config.DefaultLogPath(), debugLog)
	defer closeLog()

	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logger.Warn("failed to close db", "err", cerr)
		}
	}()

	records := persist.New(st, st, logger)
	report, err := stats.BuildReport(context.Background(), records.Load(), st, statsLast)
	if err != nil {
		return fmt.Errorf("failed to load sessions: %w", err)
	}
	if statsPlain || !term.IsTerminal(int(os.Stdout.Fd())) {
		return stats.Render(cmd.OutOrStdout(), report, stats.TerminalWidth(os.Stdout))
	}
	program := tea.NewProgram(statsui.NewModel(report), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func newResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset lifetime totals and difficulty",
		Args:  cobra.NoArgs,
		RunE:  runResetCmd,
	}
	cmd.Flags().BoolVar(&resetHistory, "history", false, "also clear the session history")
	return cmd
}

func runResetCmd(cmd *cobra.Command, _ []string) error {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return err
	}
	logger, closeLog := openLogger(config.DefaultLogPath(), debugLog)
	defer closeLog()

	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logger.Warn("failed to close db", "err", cerr)
		}
	}()

	if !persist.New(st, st, logger).Reset() {
		return fmt.Errorf("failed to reset stats")
	}
	if resetHistory {
		if err := st.ClearSessions(context.Background()); err != nil {
			return fmt.Errorf("failed to clear session history: %w", err)
		}
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), "Stats reset.")
	return err
}

func resolveDBPath(cmd *cobra.Command) (string, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return "", fmt.Errorf("failed to load config: %w", err)
	}
	path := gameDBPath
	applyStringConfig(cmd, "db", &path, fileCfg.Game.DBPath)
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("--db must not be empty")
	}
	return path, nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
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
	return fmt.Sprintf(`# ghosttype configuration
# Uncomment a value to enable it. CLI flags override config values.

[game]
# sound = %t             # Ring the terminal bell on alarming cues
# wordlist-dir = %q      # Directory with easy.txt, medium.txt and hard.txt overrides
# fps = %d               # Frame rate of the round timer (%d-%d)
# db = %q                # Path to the stats database
`,
		defaultSound,
		config.DefaultWordListDir(),
		defaultFPS,
		minFPS,
		maxFPS,
		config.DefaultDBPath(),
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.FPS < minFPS || cfg.FPS > maxFPS {
		return fmt.Errorf("--fps must be between %d and %d", minFPS, maxFPS)
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		return fmt.Errorf("--db must not be empty")
	}
	return nil
}
