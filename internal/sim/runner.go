// Package sim runs autoplayers over match-3 levels and reports how the
// levels play: win rate, moves, score and cascade statistics.
package sim

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/cheggaaa/pb/v3"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/games/match3"
	"github.com/vovakirdan/tui-match3/internal/games/match3/levels"
)

// Options configure a simulation.
type Options struct {
	Level    levels.Level // ignored in endless mode
	Mode     match3.Mode
	Config   config.Config
	Strategy string
	Games    int
	Workers  int // 0 means GOMAXPROCS
	Seed     int64
	Progress io.Writer // progress bar output; nil hides it
	Logger   *log.Logger
}

// GameResult is the outcome of one simulated run.
type GameResult struct {
	Seed       int64
	Won        bool
	Stuck      bool // the run ended on a board that could not be reshuffled
	MovesUsed  int
	Score      int
	MaxCascade int
	CapHits    int
	Exhausted  int
	Reshuffles int
}

type job struct {
	index int
	seed  int64
}

// Run plays opts.Games runs across a pool of workers. Every run gets its
// own seed derived from opts.Seed, so the report does not depend on the
// number of workers.
func Run(ctx context.Context, opts Options) (*Report, error) {
	if opts.Games < 1 {
		return nil, errors.New("sim: games must be > 0")
	}
	strat, err := NewStrategy(opts.Strategy)
	if err != nil {
		return nil, err
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, opts.Games)
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	out := opts.Progress
	if out == nil {
		out = io.Discard
	}
	bar := pb.New(opts.Games).SetWriter(out).Start()

	results := make([]GameResult, opts.Games)
	errs := make([]error, workers)
	jobs := make(chan job, workers)

	wg := new(sync.WaitGroup)
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(w int) {
			defer wg.Done()
			for j := range jobs {
				if errs[w] != nil || ctx.Err() != nil {
					continue // drain
				}
				r, err := playOne(opts, strat, j.seed)
				if err != nil {
					errs[w] = fmt.Errorf("sim: game %d (seed %d): %w", j.index, j.seed, err)
					continue
				}
				results[j.index] = r
				bar.Increment()
			}
		}(w)
	}

	seeds := newSeedMaker(opts.Seed)
	for i := 0; i < opts.Games; i++ {
		jobs <- job{index: i, seed: seeds.next()}
	}
	close(jobs)
	wg.Wait()
	elapsed := time.Since(bar.StartTime())
	bar.Finish()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	name := opts.Level.ID
	if opts.Mode == match3.ModeEndless {
		name = "endless"
	}
	rep := NewReport(name, strat.Name(), results)
	rep.Elapsed = elapsed
	opts.Logger.Info("simulation done", "level", name, "strategy", strat.Name(), "games", opts.Games, "workers", workers, "elapsed", elapsed)
	return rep, nil
}

// playOne runs a session to the end with the given strategy.
func playOne(opts Options, strat Strategy, seed int64) (GameResult, error) {
	lvl := opts.Level
	if opts.Mode == match3.ModeEndless {
		lvl = match3.EndlessLevel(opts.Config, seed)
	}
	s, err := match3.NewSession(lvl, match3.SessionOptions{
		Mode:   opts.Mode,
		Config: opts.Config,
		Seed:   seed,
	})
	if err != nil {
		return GameResult{}, err
	}

	rng := rand.New(rand.NewSource(seed))
	for !s.Over() {
		m, ok := strat.Pick(s, rng)
		if !ok {
			break
		}
		if _, err := s.Swap(m.A, m.B); err != nil {
			return GameResult{}, err
		}
	}

	res := s.Result()
	capHits, exhausted, reshuffles := s.Diagnostics()
	return GameResult{
		Seed:       seed,
		Won:        res.Won,
		Stuck:      s.Over() && !res.Won && s.Tracker().MovesLeft() > 0,
		MovesUsed:  res.MovesUsed,
		Score:      res.Score,
		MaxCascade: res.MaxCascade,
		CapHits:    capHits,
		Exhausted:  exhausted,
		Reshuffles: reshuffles,
	}, nil
}

const mask63 = uint64(1<<63) - 1

// seedMaker derives a sequence of non-negative seeds from a base seed with a
// full-period LCG, scrambled by a splitmix finalizer.
type seedMaker struct {
	state uint64
}

func newSeedMaker(seed int64) *seedMaker {
	return &seedMaker{state: uint64(seed) & mask63}
}

func (s *seedMaker) next() int64 {
	s.state = (s.state*6364136223846793005 + 1442695040888963407) & mask63
	z := s.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	z ^= z >> 31
	return int64(z & mask63)
}
