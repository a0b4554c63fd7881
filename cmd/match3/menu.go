package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/platform/tui"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start match3 with the interactive menu",
	Long: `Start match3 in interactive menu mode.

The menu offers the campaign, the endless mode, a level picker and the
high scores. After a game ends, B returns to the menu.

Controls:
  Up/Down/j/k  - Navigate
  Enter/Space  - Select
  Tab          - High scores
  Q            - Quit

Examples:
  match3 menu
  match3 menu --fps 60
  match3 menu --db ./scores.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	a, err := setup(true)
	if err != nil {
		fail("%v", err)
	}
	defer a.close()

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}

	runErr := tui.RunMenu(store, runtimeConfig(), a.logger)

	if store != nil {
		store.Close()
	}
	if runErr != nil {
		fail("%v", runErr)
	}
}
