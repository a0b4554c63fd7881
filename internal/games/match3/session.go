package match3

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/levels"
	"github.com/vovakirdan/tui-match3/internal/games/match3/objective"
)

// ErrGameOver is returned by Swap once the run has ended.
var ErrGameOver = errors.New("match3: game is over")

// shuffleAttempts bounds the deadlock reshuffle.
const shuffleAttempts = 100

// Mode is the kind of run.
type Mode int

const (
	ModeCampaign Mode = iota // Level objectives and stones
	ModeEndless              // Score attack until the moves run out
)

// GameID returns the registry and score table id of the mode.
func (m Mode) GameID() string {
	if m == ModeEndless {
		return "match3_endless"
	}
	return "match3"
}

// SessionOptions configure a new session.
type SessionOptions struct {
	Mode   Mode
	Config config.Config
	Seed   int64
	Logger *log.Logger
	Frames bool // capture grid snapshots for every cascade step
}

// Result is the record of a finished run.
type Result struct {
	RunID        string
	GameID       string
	LevelID      string
	Won          bool
	MovesUsed    int
	Score        int
	StonesBroken int
	MaxCascade   int
	Seed         int64
	Duration     time.Duration
}

// MoveOutcome is the result of one Swap call.
type MoveOutcome struct {
	Swap       core.SwapResult
	Cascade    core.CascadeResult
	Points     int  // cascade points for this move
	Bonus      int  // unused-move bonus, only on the winning move
	Reshuffled bool // the board was deadlocked and got reshuffled
}

// Session is one headless play-through of a level: a board, its objective
// tracker and the score. A session is not safe for concurrent use.
type Session struct {
	id      uuid.UUID
	mode    Mode
	level   levels.Level
	board   *core.Board
	tracker *objective.Tracker
	scoring config.ScoringConfig
	logger  *log.Logger
	seed    int64
	started time.Time

	maxCascade int
	capHits    int
	exhausted  int
	reshuffles int
	stuck      bool
	bonusPaid  bool
}

// NewSession builds the starting board of a level: a random fill with no
// immediate matches, then the level's stones. Stones outside the board are
// skipped with a warning.
func NewSession(l levels.Level, opts SessionOptions) (*Session, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	seed := opts.Seed
	if l.Seed != 0 {
		seed = l.Seed
	}

	rules := RulesFor(opts.Config, l)
	board, err := core.NewBoard(l.Width, l.Height, rules, rand.New(rand.NewSource(seed)))
	if err != nil {
		return nil, fmt.Errorf("match3: level %s: %w", l.ID, err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("match3: run id: %w", err)
	}

	s := &Session{
		id:      id,
		mode:    opts.Mode,
		level:   l,
		board:   board,
		scoring: opts.Config.Scoring,
		logger:  logger.With("run", id.String(), "level", l.ID),
		seed:    seed,
		started: time.Now(),
	}

	if fill := board.FillRandomNoImmediateMatches(); len(fill.Exhausted) > 0 {
		s.exhausted += len(fill.Exhausted)
		s.logger.Warn("refill budget exhausted", "cells", len(fill.Exhausted))
	}
	for _, c := range l.Stones {
		if err := board.PlaceStone(c, l.StoneHP); err != nil {
			s.logger.Warn("stone skipped", "pos", c.String(), "err", err)
		}
	}

	moves := l.Moves
	if opts.Mode == ModeCampaign {
		moves = config.AdjustMoves(moves, opts.Config.Difficulty)
	}
	s.tracker = objective.New(moves, l.Goals(), l.StoneTarget)
	s.tracker.SetObserver(s.progressLog())
	board.SetObjectiveSink(s.tracker)
	board.CaptureFrames(opts.Frames)

	if !board.Playable() {
		s.reshuffle()
	}

	s.logger.Info("level start", "size", fmt.Sprintf("%dx%d", l.Width, l.Height), "moves", moves, "seed", seed)
	return s, nil
}

// RulesFor derives the board rules from the config and a level override.
func RulesFor(cfg config.Config, l levels.Level) core.Rules {
	rules := core.Rules{
		MinRun:      cfg.Rules.MinRun,
		StoneHP:     cfg.Rules.StoneHP,
		RefillTries: cfg.Rules.RefillTries,
		CascadeCap:  cfg.Rules.CascadeCap,
		Palette:     core.Palette(cfg.Rules.PaletteSize),
	}
	if l.StoneHP > 0 {
		rules.StoneHP = l.StoneHP
	}
	return rules
}

// EndlessLevel returns the random score-attack board described by the config.
// Stones are scattered over the lower half of the board.
func EndlessLevel(cfg config.Config, seed int64) levels.Level {
	e := cfg.Endless
	l := levels.Level{
		ID:     "endless",
		Name:   "Endless",
		Width:  e.Width,
		Height: e.Height,
		Moves:  e.Moves,
	}

	rng := rand.New(rand.NewSource(seed))
	taken := make(map[core.Coord]bool)
	half := (e.Height + 1) / 2
	for len(l.Stones) < e.Stones && len(taken) < e.Width*half {
		c := core.C(rng.Intn(e.Width), rng.Intn(half))
		if taken[c] {
			continue
		}
		taken[c] = true
		l.Stones = append(l.Stones, c)
	}
	return l
}

// ID returns the run id.
func (s *Session) ID() uuid.UUID { return s.id }

// Mode returns the run mode.
func (s *Session) Mode() Mode { return s.mode }

// Level returns the level being played.
func (s *Session) Level() levels.Level { return s.level }

// Board returns the board. Callers must not mutate it.
func (s *Session) Board() *core.Board { return s.board }

// Tracker returns the objective tracker.
func (s *Session) Tracker() *objective.Tracker { return s.tracker }

// Score returns the run score.
func (s *Session) Score() int { return s.tracker.Score() }

// Over reports whether the run has ended.
func (s *Session) Over() bool { return s.stuck || s.tracker.Done() }

// Won reports whether the run ended in a win.
func (s *Session) Won() bool { return s.tracker.IsWin() }

// Hint returns the first productive swap on the board.
func (s *Session) Hint() (core.Move, bool) {
	moves := s.board.ValidMoves()
	if len(moves) == 0 {
		return core.Move{}, false
	}
	return moves[0], true
}

// Swap plays a move. An invalid swap is reported in the outcome and costs
// nothing; out-of-bounds coordinates return core.ErrOutOfBounds.
func (s *Session) Swap(a, b core.Coord) (MoveOutcome, error) {
	if s.Over() || !s.tracker.CanSpendMove() {
		return MoveOutcome{}, ErrGameOver
	}

	res, err := s.board.Move(a, b)
	out := MoveOutcome{Swap: res.Swap, Cascade: res.Cascade}
	if err != nil || !res.Swap.Valid() {
		return out, err
	}

	out.Points = s.score(res.Cascade)
	s.tracker.AddScore(out.Points)
	s.diagnose(res.Cascade)

	if s.tracker.IsWin() && !s.bonusPaid {
		out.Bonus = s.scoring.MoveBonus * s.tracker.MovesLeft()
		s.tracker.AddScore(out.Bonus)
		s.bonusPaid = true
	}

	if !s.tracker.Settle() && !s.board.Playable() {
		out.Reshuffled = s.reshuffle()
	}
	return out, nil
}

// progressLog reports objective changes and the end of the run to the
// session logger.
func (s *Session) progressLog() objective.Observer {
	return objective.Funcs{
		OnProgress: func(i int, g objective.Goal) {
			s.logger.Debug("objective progress", "goal", i, "progress", g.String())
		},
		OnStoneProgress: func(current, target int) {
			s.logger.Debug("stone progress", "broken", current, "target", target)
		},
		OnGameOver: func(won bool) {
			msg := "level lost"
			if won {
				msg = "level won"
			}
			s.logger.Info(msg, "moves", s.tracker.MovesUsed(), "score", s.Score())
		},
	}
}

// score awards tile points multiplied by the cascade step, plus stone points.
func (s *Session) score(c core.CascadeResult) int {
	points := 0
	for _, step := range c.Steps {
		points += len(step.Cleared) * s.scoring.TilePoints * step.Index
		points += len(step.StonesBroken) * s.scoring.StonePoints
	}
	return points
}

func (s *Session) diagnose(c core.CascadeResult) {
	if d := c.Depth(); d > s.maxCascade {
		s.maxCascade = d
	}
	if c.CapReached {
		s.capHits++
		s.logger.Warn("cascade cap reached", "steps", c.Depth())
	}
	if ex := c.Exhausted(); len(ex) > 0 {
		s.exhausted += len(ex)
		s.logger.Warn("refill budget exhausted", "cells", len(ex))
	}
}

// reshuffle refills a deadlocked board. A board that cannot be made
// playable ends the run.
func (s *Session) reshuffle() bool {
	ok, err := s.board.Shuffle(shuffleAttempts)
	if err != nil || !ok {
		s.stuck = true
		s.logger.Warn("board deadlocked", "attempts", shuffleAttempts)
		s.logger.Info("level lost", "moves", s.tracker.MovesUsed(), "score", s.Score())
		return false
	}
	s.reshuffles++
	s.logger.Debug("board reshuffled", "total", s.reshuffles)
	return true
}

// Diagnostics returns cap hits, exhausted refills and reshuffles so far.
func (s *Session) Diagnostics() (capHits, exhausted, reshuffles int) {
	return s.capHits, s.exhausted, s.reshuffles
}

// Result returns the run record. It is meaningful once Over reports true.
func (s *Session) Result() Result {
	return Result{
		RunID:        s.id.String(),
		GameID:       s.mode.GameID(),
		LevelID:      s.level.ID,
		Won:          s.Won(),
		MovesUsed:    s.tracker.MovesUsed(),
		Score:        s.Score(),
		StonesBroken: s.tracker.StonesBroken(),
		MaxCascade:   s.maxCascade,
		Seed:         s.seed,
		Duration:     time.Since(s.started),
	}
}
