package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/games/match3"
	"github.com/vovakirdan/tui-match3/internal/games/match3/levels"
)

var showCmd = &cobra.Command{
	Use:   "show <level>",
	Short: "Print the starting board of a level",
	Long: `Builds the starting board of a level and prints it in the debug format:
top row first, '.' for empty cells, R B G Y P O for tiles and the hit
points of stones. The same --seed always gives the same board.

Examples:
  match3 show first-steps --seed 7
  match3 show endless --seed 7`,
	Args: cobra.ExactArgs(1),
	Run:  runShow,
}

func runShow(_ *cobra.Command, args []string) {
	a, err := setup(false)
	if err != nil {
		fail("%v", err)
	}
	defer a.close()

	seed := seedOrNow(flagSeed, time.Now())
	mode := match3.ModeCampaign
	lvl, ok := a.findLevel(args[0])
	if args[0] == "endless" {
		mode = match3.ModeEndless
		lvl, ok = match3.EndlessLevel(a.cfg, seed), true
	}
	if !ok {
		fail("unknown level %q (see 'match3 levels')", args[0])
	}

	s, err := match3.NewSession(lvl, match3.SessionOptions{
		Mode:   mode,
		Config: a.cfg,
		Seed:   seed,
		Logger: a.logger,
	})
	if err != nil {
		fail("%v", err)
	}

	tr := s.Tracker()
	fmt.Printf("%s  (%dx%d, %d moves, seed %d)\n", lvl.Title(), lvl.Width, lvl.Height, tr.MovesLeft(), s.Result().Seed)
	if sum := tr.Summary(); sum != "" {
		fmt.Printf("Goals: %s\n", sum)
	}
	fmt.Println()
	fmt.Print(s.Board().DebugRender())

	if m, ok := s.Hint(); ok {
		fmt.Printf("\nHint: %s\n", m)
	}
}

func (a *app) findLevel(id string) (lvl levels.Level, ok bool) {
	for _, l := range a.levels {
		if l.ID == id {
			return l, true
		}
	}
	return lvl, false
}

// seedOrNow returns seed, or a seed taken from now when seed is zero.
func seedOrNow(seed int64, now time.Time) int64 {
	if seed == 0 {
		return now.UnixNano()
	}
	return seed
}
