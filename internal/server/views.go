package server

import (
	"strings"

	"github.com/vovakirdan/tui-match3/internal/games/match3"
	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/levels"
)

type coordJSON struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func toCoord(c coordJSON) core.Coord { return core.C(c.X, c.Y) }

func coordsJSON(cs []core.Coord) []coordJSON {
	out := make([]coordJSON, len(cs))
	for i, c := range cs {
		out[i] = coordJSON{X: c.X, Y: c.Y}
	}
	return out
}

type goalView struct {
	Tile    string `json:"tile"`
	Target  int    `json:"target"`
	Current int    `json:"current"`
}

type levelView struct {
	ID          string     `json:"id"`
	Number      int        `json:"number"`
	Name        string     `json:"name"`
	Width       int        `json:"width"`
	Height      int        `json:"height"`
	Moves       int        `json:"moves"`
	Goals       []goalView `json:"goals"`
	Stones      int        `json:"stones"`
	StoneTarget int        `json:"stone_target,omitempty"`
}

func newLevelView(l levels.Level) levelView {
	v := levelView{
		ID:          l.ID,
		Number:      l.Number,
		Name:        l.Name,
		Width:       l.Width,
		Height:      l.Height,
		Moves:       l.Moves,
		Stones:      len(l.Stones),
		StoneTarget: l.StoneTarget,
		Goals:       []goalView{},
	}
	for _, g := range l.Goals() {
		v.Goals = append(v.Goals, goalView{Tile: g.Tile.String(), Target: g.Target})
	}
	return v
}

type stonesView struct {
	Broken int `json:"broken"`
	Target int `json:"target"`
}

// sessionView is the JSON form of a session. Rows are top row first in the
// debug print format.
type sessionView struct {
	ID        string     `json:"id"`
	Mode      string     `json:"mode"`
	Level     string     `json:"level"`
	Width     int        `json:"width"`
	Height    int        `json:"height"`
	Rows      []string   `json:"rows"`
	MovesLeft int        `json:"moves_left"`
	Score     int        `json:"score"`
	Goals     []goalView `json:"goals"`
	Stones    stonesView `json:"stones"`
	Over      bool       `json:"over"`
	Won       bool       `json:"won"`
}

func newSessionView(s *match3.Session) sessionView {
	g := s.Board().Grid()
	tr := s.Tracker()
	broken, target := tr.Stones()

	v := sessionView{
		ID:        s.ID().String(),
		Mode:      s.Mode().GameID(),
		Level:     s.Level().ID,
		Width:     g.W,
		Height:    g.H,
		Rows:      strings.Split(strings.TrimSuffix(core.RenderASCII(g), "\n"), "\n"),
		MovesLeft: tr.MovesLeft(),
		Score:     s.Score(),
		Goals:     []goalView{},
		Stones:    stonesView{Broken: broken, Target: target},
		Over:      s.Over(),
		Won:       s.Won(),
	}
	for _, goal := range tr.Goals() {
		v.Goals = append(v.Goals, goalView{Tile: goal.Tile.String(), Target: goal.Target, Current: goal.Current})
	}
	return v
}

type stepView struct {
	Index        int         `json:"index"`
	Cleared      []coordJSON `json:"cleared"`
	StonesHit    []coordJSON `json:"stones_hit"`
	StonesBroken []coordJSON `json:"stones_broken"`
	Spawned      int         `json:"spawned"`
	Exhausted    int         `json:"exhausted"`
}

type swapView struct {
	Valid      bool        `json:"valid"`
	Reason     string      `json:"reason,omitempty"`
	Points     int         `json:"points"`
	Bonus      int         `json:"bonus"`
	Reshuffled bool        `json:"reshuffled"`
	CapReached bool        `json:"cap_reached"`
	Steps      []stepView  `json:"steps"`
	Session    sessionView `json:"session"`
}

func newSwapView(out match3.MoveOutcome, s *match3.Session) swapView {
	v := swapView{
		Valid:      out.Swap.Valid(),
		Points:     out.Points,
		Bonus:      out.Bonus,
		Reshuffled: out.Reshuffled,
		CapReached: out.Cascade.CapReached,
		Steps:      []stepView{},
		Session:    newSessionView(s),
	}
	if !v.Valid {
		v.Reason = out.Swap.Reason.String()
	}
	for _, st := range out.Cascade.Steps {
		v.Steps = append(v.Steps, stepView{
			Index:        st.Index,
			Cleared:      coordsJSON(st.Cleared),
			StonesHit:    coordsJSON(st.StonesHit),
			StonesBroken: coordsJSON(st.StonesBroken),
			Spawned:      len(st.Spawned),
			Exhausted:    len(st.Exhausted),
		})
	}
	return v
}

type hintView struct {
	Found bool       `json:"found"`
	A     *coordJSON `json:"a,omitempty"`
	B     *coordJSON `json:"b,omitempty"`
}
