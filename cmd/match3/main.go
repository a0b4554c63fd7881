// match3 is a tile-matching puzzle game for the terminal.
//
// Usage:
//
//	match3 list              - List game modes
//	match3 levels            - List campaign levels
//	match3 show <level>      - Print the starting board of a level
//	match3 play [game]       - Play a game mode (default: match3)
//	match3 menu              - Start the menu to pick modes and levels
//	match3 scores [game]     - Show high scores and level stats
//	match3 serve             - Start the SSH server for remote play
//	match3 api               - Start the HTTP API
//	match3 sim               - Run autoplayers over a level
//
// Global flags:
//
//	--fps <rate>         - Tick rate (default: 30)
//	--seed <value>       - RNG seed for reproducible boards
//	--db <path>          - Database path (default: ~/.match3/scores.db)
//	--config <path>      - Custom config YAML
//	--levels <dir>       - Load the campaign from a directory
//	--difficulty <name>  - easy, normal or hard
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3"
	"github.com/vovakirdan/tui-match3/internal/games/match3/levels"
	"github.com/vovakirdan/tui-match3/internal/platform/tui"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagLevelsDir  string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "match3",
	Short: "Match-3 - a tile-matching puzzle in your terminal",
	Long: `Match-3 is a tile-matching puzzle: swap two neighboring tiles to line
up three or more of a color, clear the level objectives and break the
stones before the moves run out.

Available commands:
  list     - Show the game modes
  levels   - Show the campaign levels
  show     - Print the starting board of a level
  play     - Play a mode directly
  menu     - Interactive menu
  scores   - View high scores and level stats
  serve    - Start the SSH server for remote play
  api      - Start the HTTP API
  sim      - Simulate autoplayers on a level

Examples:
  match3 menu
  match3 play match3_endless --seed 42
  match3 levels --validate --levels ./my-levels
  match3 sim --level the-wall --games 2000 --strategy greedy`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.match3/scores.db", "Path to scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	pf.StringVar(&flagLevelsDir, "levels", "", "Directory with level YAML files (default: built-in campaign)")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "", "Log file (default: stderr, or ~/.match3/match3.log for the TUI)")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(apiCmd)
	rootCmd.AddCommand(simCmd)
}

// app is the state shared by every command: config, campaign and logger.
type app struct {
	cfg    config.Config
	levels []levels.Level
	logger *log.Logger
	closer io.Closer
}

// setup loads the config and campaign and wires them into the game package.
// TUI commands log to a file so log lines do not tear the screen.
func setup(tuiMode bool) (*app, error) {
	logger, closer, err := newLogger(tuiMode)
	if err != nil {
		return nil, err
	}
	a := &app{logger: logger, closer: closer}

	a.cfg, err = config.Load(flagConfig)
	if err != nil {
		a.close()
		return nil, err
	}
	preset := a.cfg.Difficulty
	if flagDifficulty != "" {
		preset = config.ParsePreset(flagDifficulty)
	}
	config.ApplyPreset(&a.cfg, preset)

	loader := levels.Embedded()
	if flagLevelsDir != "" {
		loader = levels.NewLoader(flagLevelsDir)
	}
	a.levels, err = loader.LoadAll()
	if err != nil {
		a.close()
		return nil, err
	}

	match3.SetConfig(a.cfg)
	match3.SetLevels(a.levels)
	match3.SetLogger(logger)

	if t, ok := tui.ThemeByName(a.cfg.Display.Theme); ok {
		tui.SetTheme(t)
	} else {
		logger.Warn("unknown theme, using default", "theme", a.cfg.Display.Theme, "known", tui.ThemeNames())
	}

	logger.Debug("setup done", "levels", len(a.levels), "difficulty", a.cfg.Difficulty, "config", flagConfig)
	return a, nil
}

func (a *app) close() {
	if a.closer != nil {
		a.closer.Close()
	}
}

func newLogger(tuiMode bool) (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("log level %q: %w", flagLogLevel, err)
	}

	var w io.Writer = os.Stderr
	var closer io.Closer
	path := flagLogFile
	if path == "" && tuiMode {
		path = filepath.Join(config.DataDir(), "match3.log")
	}
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("log dir: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("log file: %w", err)
		}
		w, closer = f, f
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "match3",
		Level:           level,
	})
	return logger, closer, nil
}

// runtimeConfig sizes the game to the terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
