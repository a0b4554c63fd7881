package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/games/match3"
	"github.com/vovakirdan/tui-match3/internal/registry"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores and level stats",
	Long: `Display the top 10 high scores of a mode (default: match3). For the
campaign the plays, wins and best score of every level follow.

Examples:
  match3 scores
  match3 scores match3_endless`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func runScores(_ *cobra.Command, args []string) {
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

	game, err := registry.Create(gameID)
	if err != nil {
		fail("creating game: %v", err)
	}
	title := game.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening scores database: %v", err)
	}
	defer store.Close()

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		fail("retrieving scores: %v", err)
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'match3 play %s' to set the first high score!\n", gameID)
	} else {
		fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
		fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
		for i, entry := range scores {
			fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
		}
	}

	if gameID != match3.ModeCampaign.GameID() {
		return
	}
	printLevelStats(store)
}

func printLevelStats(store *storage.Store) {
	a, err := setup(false)
	if err != nil {
		fail("%v", err)
	}
	defer a.close()

	stats, err := store.AllLevelStats()
	if err != nil {
		fail("retrieving level stats: %v", err)
	}

	fmt.Println()
	fmt.Println("Levels")
	fmt.Println()
	fmt.Printf("  %-24s  %-5s  %-5s  %-6s  %s\n", "Level", "Plays", "Wins", "Rate", "Best")
	fmt.Printf("  %-24s  %-5s  %-5s  %-6s  %s\n", "-----", "-----", "----", "----", "----")
	for _, l := range a.levels {
		st := stats[l.ID]
		fmt.Printf("  %-24s  %-5d  %-5d  %5.1f%%  %d\n", l.Title(), st.Plays, st.Wins, 100*st.WinRate(), st.BestScore)
	}
}
