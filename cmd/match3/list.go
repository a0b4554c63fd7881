package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/levels"
	"github.com/vovakirdan/tui-match3/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the game modes",
	Long:  `Shows the game modes that can be passed to 'match3 play'.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Available games:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range games {
		if len(g.ID) > maxIDLen {
			maxIDLen = len(g.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, g := range games {
		fmt.Printf("  %-*s  %s\n", maxIDLen, g.ID, g.Title)
	}

	fmt.Println()
	fmt.Println("Run 'match3 play <id>' to play.")
}

var flagValidate bool

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the campaign levels",
	Long: `Shows the campaign in play order. With --validate every level is checked
against the configured palette and problems are listed; the command fails
when any level has a problem.

Examples:
  match3 levels
  match3 levels --levels ./my-levels --validate`,
	Run: runLevels,
}

func init() {
	levelsCmd.Flags().BoolVar(&flagValidate, "validate", false, "Validate every level")
}

func runLevels(_ *cobra.Command, _ []string) {
	a, err := setup(false)
	if err != nil {
		fail("%v", err)
	}
	defer a.close()

	if len(a.levels) == 0 {
		fmt.Println("No levels found.")
		return
	}

	palette := core.Palette(a.cfg.Rules.PaletteSize)
	bad := 0
	fmt.Printf("  %-3s  %-18s  %-24s  %-5s  %-5s  %s\n", "#", "ID", "Name", "Size", "Moves", "Goals")
	fmt.Printf("  %-3s  %-18s  %-24s  %-5s  %-5s  %s\n", "-", "--", "----", "----", "-----", "-----")
	for _, l := range a.levels {
		fmt.Printf("  %-3d  %-18s  %-24s  %-5s  %-5d  %s\n",
			l.Number, l.ID, l.Name, fmt.Sprintf("%dx%d", l.Width, l.Height), l.Moves, goalSummary(l))

		if !flagValidate {
			continue
		}
		for _, p := range levels.Validate(l, palette) {
			bad++
			fmt.Printf("       ! %s\n", p.Error())
		}
	}

	if flagValidate {
		fmt.Println()
		if bad > 0 {
			fail("%d problem(s) found", bad)
		}
		fmt.Printf("All %d levels are valid.\n", len(a.levels))
	}
}

func goalSummary(l levels.Level) string {
	var parts []string
	for _, g := range l.Goals() {
		parts = append(parts, fmt.Sprintf("%s %d", g.Tile, g.Target))
	}
	if l.StoneTarget > 0 {
		parts = append(parts, fmt.Sprintf("stones %d", l.StoneTarget))
	}
	return strings.Join(parts, ", ")
}
