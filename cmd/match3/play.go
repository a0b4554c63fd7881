package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/games/match3"
	"github.com/vovakirdan/tui-match3/internal/platform/tui"
	"github.com/vovakirdan/tui-match3/internal/registry"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

var flagStartLevel string

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game mode",
	Long: `Start playing the given mode (default: match3, the campaign).

Controls:
  Arrows/hjkl  - Move the cursor
  Enter/Space  - Select a tile, then a neighbor to swap
  Esc          - Cancel the selection
  H            - Show a hint
  R            - Restart the level
  N            - Next level (after a win)
  Ctrl+S       - Save a screenshot
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - 5 extra moves per level
  normal - Moves as designed
  hard   - 3 fewer moves and a fifth color

Examples:
  match3 play
  match3 play --level the-wall
  match3 play match3_endless --seed 42
  match3 play --difficulty hard --config ./my-match3.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagStartLevel, "level", "", "Campaign level id to start at")
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := match3.ModeCampaign.GameID()
	if len(args) == 1 {
		gameID = args[0]
	}

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'match3 list' to see available games.")
		os.Exit(1)
	}

	a, err := setup(true)
	if err != nil {
		fail("%v", err)
	}
	defer a.close()

	if flagStartLevel != "" {
		idx := -1
		for i, l := range a.levels {
			if l.ID == flagStartLevel {
				idx = i
			}
		}
		if idx < 0 {
			fail("unknown level %q (see 'match3 levels')", flagStartLevel)
		}
		match3.SetStartLevel(idx)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fail("creating game: %v", err)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(game, store, runtimeConfig(), a.logger)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fail("running game: %v", runErr)
	}
}
