package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/games/match3"
	"github.com/vovakirdan/tui-match3/internal/sim"
)

var (
	flagSimLevel    string
	flagSimGames    int
	flagSimStrategy string
	flagSimWorkers  int
	flagSimQuiet    bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Simulate autoplayers on a level",
	Long: `Play a level many times with an autoplayer and report how it plays:
win rate with a 95% confidence interval, moves used, score, cascade depth
and how often the cascade cap, refill budget or reshuffle kicked in.

Strategies:
  first   - Always play the first valid move
  random  - Play a random valid move
  greedy  - Play the move that clears the most toward the objectives

Every game gets its own seed derived from --seed, so a report can be
reproduced with any number of workers.

Examples:
  match3 sim --level first-steps
  match3 sim --level the-wall --games 5000 --strategy greedy --workers 8
  match3 sim --level endless --strategy random --difficulty hard`,
	Run: runSim,
}

func init() {
	simCmd.Flags().StringVar(&flagSimLevel, "level", "", "Level id, or 'endless' (default: first campaign level)")
	simCmd.Flags().IntVar(&flagSimGames, "games", 1000, "Number of games to play")
	simCmd.Flags().StringVar(&flagSimStrategy, "strategy", "greedy", fmt.Sprintf("Autoplayer strategy %v", sim.StrategyNames()))
	simCmd.Flags().IntVar(&flagSimWorkers, "workers", runtime.NumCPU(), "Parallel workers")
	simCmd.Flags().BoolVar(&flagSimQuiet, "quiet", false, "Hide the progress bar")
}

func runSim(_ *cobra.Command, _ []string) {
	a, err := setup(false)
	if err != nil {
		fail("%v", err)
	}
	defer a.close()

	opts := sim.Options{
		Config:   a.cfg,
		Strategy: flagSimStrategy,
		Games:    flagSimGames,
		Workers:  flagSimWorkers,
		Seed:     flagSeed,
		Progress: os.Stderr,
		Logger:   a.logger,
	}
	if flagSimQuiet {
		opts.Progress = nil
	}

	switch {
	case flagSimLevel == "endless":
		opts.Mode = match3.ModeEndless
	case flagSimLevel == "" && len(a.levels) > 0:
		opts.Level = a.levels[0]
	default:
		lvl, ok := a.findLevel(flagSimLevel)
		if !ok {
			fail("unknown level %q (see 'match3 levels')", flagSimLevel)
		}
		opts.Level = lvl
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rep, err := sim.Run(ctx, opts)
	if err != nil {
		fail("%v", err)
	}
	fmt.Print(rep)
}
