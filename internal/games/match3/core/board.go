package core

import "fmt"

// DefaultCascadeCap bounds the number of iterations of one cascade.
const DefaultCascadeCap = 50

// Rules are the tunable constants of a board.
type Rules struct {
	MinRun      int
	StoneHP     int
	RefillTries int
	CascadeCap  int
	Palette     []Tile
}

// DefaultRules returns the standard four-color rules.
func DefaultRules() Rules {
	return Rules{
		MinRun:      DefaultMinRun,
		StoneHP:     DefaultStoneHP,
		RefillTries: DefaultRefillTries,
		CascadeCap:  DefaultCascadeCap,
		Palette:     Palette(4),
	}
}

// normalized fills zero fields with defaults.
func (r Rules) normalized() Rules {
	d := DefaultRules()
	if r.MinRun < 1 {
		r.MinRun = d.MinRun
	}
	if r.StoneHP < 1 {
		r.StoneHP = d.StoneHP
	}
	if r.RefillTries < 1 {
		r.RefillTries = d.RefillTries
	}
	if r.CascadeCap < 1 {
		r.CascadeCap = d.CascadeCap
	}
	if len(r.Palette) == 0 {
		r.Palette = d.Palette
	}
	return r
}

// State is the cascade state of a board.
type State uint8

const (
	StateIdle State = iota
	StateResolving
)

func (s State) String() string {
	if s == StateResolving {
		return "resolving"
	}
	return "idle"
}

// ObjectiveSink receives the objective-relevant side effects of play.
// The board only pushes to it and never reads from it.
type ObjectiveSink interface {
	OnTilesCleared(counts map[Tile]int)
	OnStonesBroken(count int)
	OnMoveSpent()
}

// StepListener receives every cascade step as soon as it is resolved.
type StepListener interface {
	OnCascadeStep(step Step)
}

// Step is the record of one cascade iteration.
type Step struct {
	Index        int // 1-based
	Cleared      []Coord
	ColorCounts  map[Tile]int
	StonesHit    []Coord
	StonesBroken []Coord
	Moves        []TileMove
	Spawned      []Spawn
	Exhausted    []Coord

	// Frames are only set when frame capture is enabled.
	AfterClear   *Grid
	AfterGravity *Grid
	AfterRefill  *Grid
}

// CascadeResult summarizes a complete cascade.
type CascadeResult struct {
	Steps      []Step
	CapReached bool
}

// Depth returns the number of iterations that cleared tiles.
func (r CascadeResult) Depth() int {
	return len(r.Steps)
}

// TilesCleared returns the total number of tiles cleared by the cascade.
func (r CascadeResult) TilesCleared() int {
	n := 0
	for _, s := range r.Steps {
		n += len(s.Cleared)
	}
	return n
}

// StonesBroken returns the total number of stones broken by the cascade.
func (r CascadeResult) StonesBroken() int {
	n := 0
	for _, s := range r.Steps {
		n += len(s.StonesBroken)
	}
	return n
}

// Exhausted returns every refill that had to keep a matching color.
func (r CascadeResult) Exhausted() []Coord {
	var out []Coord
	for _, s := range r.Steps {
		out = append(out, s.Exhausted...)
	}
	return out
}

// MoveResult is the outcome of a player move.
type MoveResult struct {
	Swap    SwapResult
	Cascade CascadeResult
}

// Board owns a grid and drives swaps and cascades over it.
// A board is used by one caller at a time and needs no locking.
type Board struct {
	grid      *Grid
	rules     Rules
	rng       Rand
	state     State
	sink      ObjectiveSink
	listeners []StepListener
	frames    bool
}

// NewBoard creates an empty board. Zero-valued rules fall back to defaults.
func NewBoard(w, h int, rules Rules, rng Rand) (*Board, error) {
	g, err := NewGrid(w, h)
	if err != nil {
		return nil, err
	}
	return &Board{grid: g, rules: rules.normalized(), rng: rng}, nil
}

// NewBoardFromGrid wraps an existing grid. The board takes ownership of g.
func NewBoardFromGrid(g *Grid, rules Rules, rng Rand) *Board {
	return &Board{grid: g, rules: rules.normalized(), rng: rng}
}

// Grid returns the live grid. Callers must not mutate it during a cascade.
func (b *Board) Grid() *Grid { return b.grid }

// Snapshot returns a copy of the grid.
func (b *Board) Snapshot() *Grid { return b.grid.Clone() }

// Rules returns the board rules.
func (b *Board) Rules() Rules { return b.rules }

// State returns the cascade state.
func (b *Board) State() State { return b.state }

// SetObjectiveSink sets the collaborator notified of cleared tiles, broken
// stones and spent moves. nil disables notifications.
func (b *Board) SetObjectiveSink(s ObjectiveSink) { b.sink = s }

// AddListener registers a cascade step listener.
func (b *Board) AddListener(l StepListener) {
	b.listeners = append(b.listeners, l)
}

// CaptureFrames enables grid snapshots in every Step.
func (b *Board) CaptureFrames(on bool) { b.frames = on }

// FillRandomNoImmediateMatches refills every stone-free cell.
func (b *Board) FillRandomNoImmediateMatches() RefillResult {
	return FillRandomNoImmediateMatches(b.grid, b.rng, b.rules.Palette, b.rules.RefillTries, b.rules.MinRun)
}

// PlaceStone puts a stone at pos. hp < 1 uses the rules' stone hit points.
func (b *Board) PlaceStone(pos Coord, hp int) error {
	if hp < 1 {
		hp = b.rules.StoneHP
	}
	return b.grid.PlaceStone(pos, hp)
}

// TrySwap validates and applies a swap without resolving it.
func (b *Board) TrySwap(a, c Coord) (SwapResult, error) {
	if b.state == StateResolving {
		return SwapResult{A: a, B: c}, ErrCascadeActive
	}
	return TrySwap(b.grid, a, c, b.rules.MinRun)
}

// Move performs a player move: a valid swap spends a move and is resolved
// to a stable board. An invalid swap changes nothing.
func (b *Board) Move(a, c Coord) (MoveResult, error) {
	swap, err := b.TrySwap(a, c)
	if err != nil || !swap.Valid() {
		return MoveResult{Swap: swap}, err
	}
	if b.sink != nil {
		b.sink.OnMoveSpent()
	}
	cascade, err := b.ResolveCascade()
	return MoveResult{Swap: swap, Cascade: cascade}, err
}

// ResolveCascade repeats clear, stone damage, gravity and refill until no
// match remains or the cascade cap is hit. A call made while a cascade is
// running returns ErrCascadeActive and does nothing.
func (b *Board) ResolveCascade() (CascadeResult, error) {
	var res CascadeResult
	if b.state == StateResolving {
		return res, ErrCascadeActive
	}
	b.state = StateResolving
	defer func() { b.state = StateIdle }()

	for i := 1; ; i++ {
		matches := FindAllMatches(b.grid, b.rules.MinRun)
		if matches.Len() == 0 {
			return res, nil
		}
		if i > b.rules.CascadeCap {
			res.CapReached = true
			return res, nil
		}
		step := b.resolveStep(i, matches)
		res.Steps = append(res.Steps, step)
		for _, l := range b.listeners {
			l.OnCascadeStep(step)
		}
	}
}

func (b *Board) resolveStep(index int, matches MatchSet) Step {
	step := Step{
		Index:       index,
		Cleared:     matches.Sorted(),
		ColorCounts: matches.ColorCounts(b.grid),
	}

	dmg := ApplyAdjacentStoneDamage(b.grid, step.Cleared)
	step.StonesHit, step.StonesBroken = dmg.Hit, dmg.Broken

	if b.sink != nil {
		if len(dmg.Broken) > 0 {
			b.sink.OnStonesBroken(len(dmg.Broken))
		}
		b.sink.OnTilesCleared(step.ColorCounts)
	}

	for _, c := range step.Cleared {
		b.grid.at(c).Tile = Empty
	}
	if b.frames {
		step.AfterClear = b.grid.Clone()
	}

	step.Moves = ApplyGravity(b.grid).Moves
	if b.frames {
		step.AfterGravity = b.grid.Clone()
	}

	refill := RefillEmpties(b.grid, b.rng, b.rules.Palette, b.rules.RefillTries, b.rules.MinRun)
	step.Spawned, step.Exhausted = refill.Spawned, refill.Exhausted
	if b.frames {
		step.AfterRefill = b.grid.Clone()
	}
	return step
}

// ValidMoves lists every productive swap on the board.
func (b *Board) ValidMoves() []Move {
	return ValidMoves(b.grid, b.rules.MinRun)
}

// Stable reports whether the board holds no match.
func (b *Board) Stable() bool {
	return FindAllMatches(b.grid, b.rules.MinRun).Len() == 0
}

// Playable reports whether the board is stable and has a productive swap.
func (b *Board) Playable() bool {
	return b.Stable() && HasValidMove(b.grid, b.rules.MinRun)
}

// Shuffle refills every stone-free cell until the board is playable, trying
// at most attempts times. It reports whether a playable board was reached.
func (b *Board) Shuffle(attempts int) (bool, error) {
	if b.state == StateResolving {
		return false, ErrCascadeActive
	}
	for i := 0; i < attempts; i++ {
		b.FillRandomNoImmediateMatches()
		if b.Playable() {
			return true, nil
		}
	}
	return false, nil
}

// DebugRender returns the board as text, top row first.
func (b *Board) DebugRender() string {
	return RenderASCII(b.grid)
}

// String implements fmt.Stringer for debugging.
func (b *Board) String() string {
	return fmt.Sprintf("board %dx%d %s", b.grid.W, b.grid.H, b.state)
}
