package sim

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

var lang = language.English

// CI is a confidence interval.
type CI struct {
	Lo, Hi float64
}

// Summary describes one metric over all runs.
type Summary struct {
	Mean float64
	Std  float64
	P50  float64
	P90  float64
	Max  float64
}

// Report is the aggregate of a simulation.
type Report struct {
	Level      string
	Strategy   string
	Games      int
	Wins       int
	WinRate    float64
	WinCI      CI // 95% normal approximation
	Moves      Summary
	Score      Summary
	Cascade    Summary
	CapHits    int
	Exhausted  int
	Reshuffles int
	Stuck      int
	Elapsed    time.Duration
}

// NewReport aggregates the results of a simulation.
func NewReport(level, strategy string, results []GameResult) *Report {
	r := &Report{Level: level, Strategy: strategy, Games: len(results)}

	moves := make([]float64, len(results))
	scores := make([]float64, len(results))
	cascades := make([]float64, len(results))
	for i, g := range results {
		if g.Won {
			r.Wins++
		}
		if g.Stuck {
			r.Stuck++
		}
		r.CapHits += g.CapHits
		r.Exhausted += g.Exhausted
		r.Reshuffles += g.Reshuffles
		moves[i] = float64(g.MovesUsed)
		scores[i] = float64(g.Score)
		cascades[i] = float64(g.MaxCascade)
	}

	r.WinRate, r.WinCI = proportionCI(r.Wins, r.Games, 0.95)
	r.Moves = summarize(moves)
	r.Score = summarize(scores)
	r.Cascade = summarize(cascades)
	return r
}

// proportionCI is the normal approximation interval for k successes out of
// n, clamped to [0, 1].
func proportionCI(k, n int, confidence float64) (float64, CI) {
	if n == 0 {
		return 0, CI{0, 1}
	}
	p := float64(k) / float64(n)
	z := distuv.UnitNormal.Quantile(1 - (1-confidence)/2)
	half := z * math.Sqrt(p*(1-p)/float64(n))
	return p, CI{Lo: math.Max(0, p-half), Hi: math.Min(1, p+half)}
}

func summarize(xs []float64) Summary {
	if len(xs) == 0 {
		return Summary{}
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)

	var s Summary
	if len(sorted) > 1 {
		s.Mean, s.Std = stat.MeanStdDev(sorted, nil)
	} else {
		s.Mean = sorted[0]
	}
	s.P50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	s.P90 = stat.Quantile(0.9, stat.Empirical, sorted, nil)
	s.Max = sorted[len(sorted)-1]
	return s
}

// String renders the report as a two-column table.
func (r *Report) String() string {
	p := message.NewPrinter(lang)
	row := func(s Summary) string {
		return p.Sprintf("%.1f (sd %.1f, p50 %.0f, p90 %.0f, max %.0f)", s.Mean, s.Std, s.P50, s.P90, s.Max)
	}

	keys := []string{"Level", "Strategy", "Games", "Wins", "Win rate", "Win 95% CI", "Moves used", "Score", "Max cascade", "Cap hits", "Exhausted cells", "Reshuffles", "Stuck boards", "Elapsed"}
	vals := map[string]string{
		"Level":           r.Level,
		"Strategy":        r.Strategy,
		"Games":           p.Sprintf("%d", r.Games),
		"Wins":            p.Sprintf("%d", r.Wins),
		"Win rate":        p.Sprintf("%.2f %%", 100*r.WinRate),
		"Win 95% CI":      p.Sprintf("[%.2f%%, %.2f%%]", 100*r.WinCI.Lo, 100*r.WinCI.Hi),
		"Moves used":      row(r.Moves),
		"Score":           row(r.Score),
		"Max cascade":     row(r.Cascade),
		"Cap hits":        p.Sprintf("%d", r.CapHits),
		"Exhausted cells": p.Sprintf("%d", r.Exhausted),
		"Reshuffles":      p.Sprintf("%d", r.Reshuffles),
		"Stuck boards":    p.Sprintf("%d", r.Stuck),
		"Elapsed":         r.Elapsed.Round(time.Millisecond).String(),
	}
	return fmtTable("Simulation", keys, vals)
}

func fmtTable(title string, keys []string, vals map[string]string) string {
	keyW, valW := 0, 0
	for _, k := range keys {
		keyW = max(keyW, runewidth.StringWidth(k))
		valW = max(valW, runewidth.StringWidth(vals[k]))
	}
	keyW += 2
	valW += 2

	var sb strings.Builder
	inner := keyW + valW + 1
	titleW := runewidth.StringWidth(title)
	left := max(0, (inner-titleW)/2)
	right := max(0, inner-titleW-left)

	divider := "+" + strings.Repeat("-", keyW) + "+" + strings.Repeat("-", valW) + "+\n"
	sb.WriteString("+" + strings.Repeat("-", inner) + "+\n")
	sb.WriteString("|" + blank(left) + title + blank(right) + "|\n")
	sb.WriteString(divider)
	for _, k := range keys {
		v := vals[k]
		sb.WriteString("| " + k + blank(keyW-2-runewidth.StringWidth(k)) + " | " + v + blank(valW-2-runewidth.StringWidth(v)) + " |\n")
	}
	sb.WriteString(divider)
	return sb.String()
}

func blank(w int) string {
	if w < 1 {
		return ""
	}
	return strings.Repeat(" ", w)
}
