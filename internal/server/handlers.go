package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-match3/internal/games/match3"
	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/levels"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

const maxBodyBytes = 1 << 16

var (
	errNoSession = errors.New("session not found")
	errBadBody   = errors.New("malformed request body")
)

type errorView struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps an error to a status code and writes it as JSON.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errBadBody), errors.Is(err, core.ErrOutOfBounds):
		status = http.StatusBadRequest
	case errors.Is(err, errNoSession), errors.Is(err, levels.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, match3.ErrGameOver):
		status = http.StatusConflict
	}
	writeJSON(w, status, errorView{Error: err.Error()})
}

// decode reads a JSON body into v. An empty body leaves v untouched.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %v", errBadBody, err)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "sessions": s.sessions.len()})
}

func (s *Server) handleLevels(w http.ResponseWriter, _ *http.Request) {
	out := make([]levelView, len(s.opts.Levels))
	for i, l := range s.opts.Levels {
		out[i] = newLevelView(l)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) findLevel(id string) (levels.Level, error) {
	for _, l := range s.opts.Levels {
		if l.ID == id {
			return l, nil
		}
	}
	return levels.Level{}, fmt.Errorf("level %q: %w", id, levels.ErrNotFound)
}

type createRequest struct {
	LevelID string `json:"level_id"`
	Mode    string `json:"mode"` // "match3" (default) or "match3_endless"
	Seed    int64  `json:"seed"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Seed == 0 {
		req.Seed = time.Now().UnixNano()
	}

	mode := match3.ModeCampaign
	var lvl levels.Level
	switch req.Mode {
	case "", match3.ModeCampaign.GameID():
		if req.LevelID == "" && len(s.opts.Levels) > 0 {
			req.LevelID = s.opts.Levels[0].ID
		}
		l, err := s.findLevel(req.LevelID)
		if err != nil {
			writeError(w, err)
			return
		}
		lvl = l
	case match3.ModeEndless.GameID():
		mode = match3.ModeEndless
		lvl = match3.EndlessLevel(s.opts.Config, req.Seed)
	default:
		writeError(w, fmt.Errorf("%w: unknown mode %q", errBadBody, req.Mode))
		return
	}

	sess, err := match3.NewSession(lvl, match3.SessionOptions{
		Mode:   mode,
		Config: s.opts.Config,
		Seed:   req.Seed,
		Logger: s.logger,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	s.sessions.add(sess)
	writeJSON(w, http.StatusCreated, newSessionView(sess))
}

// withSession resolves the {id} parameter, locks the session and calls fn.
func (s *Server) withSession(w http.ResponseWriter, r *http.Request, fn func(e *entry)) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, errNoSession)
		return
	}
	e, ok := s.sessions.get(id)
	if !ok {
		writeError(w, errNoSession)
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.lastUsed = time.Now()
	fn(e)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(e *entry) {
		writeJSON(w, http.StatusOK, newSessionView(e.session))
	})
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil || !s.sessions.remove(id) {
		writeError(w, errNoSession)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type swapRequest struct {
	A coordJSON `json:"a"`
	B coordJSON `json:"b"`
}

func (s *Server) handleSwap(w http.ResponseWriter, r *http.Request) {
	var req swapRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	s.withSession(w, r, func(e *entry) {
		out, err := e.session.Swap(toCoord(req.A), toCoord(req.B))
		if err != nil {
			writeError(w, err)
			return
		}
		if e.session.Over() && !e.saved {
			s.saveRun(e.session)
			e.saved = true
		}
		writeJSON(w, http.StatusOK, newSwapView(out, e.session))
	})
}

func (s *Server) handleHint(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(e *entry) {
		m, ok := e.session.Hint()
		v := hintView{Found: ok}
		if ok {
			v.A = &coordJSON{X: m.A.X, Y: m.A.Y}
			v.B = &coordJSON{X: m.B.X, Y: m.B.Y}
		}
		writeJSON(w, http.StatusOK, v)
	})
}

// saveRun persists a finished run. Failures are logged only.
func (s *Server) saveRun(sess *match3.Session) {
	res := sess.Result()
	s.logger.Info("run finished", "run", res.RunID, "level", res.LevelID, "won", res.Won, "score", res.Score)
	if s.opts.Store == nil {
		return
	}
	if err := s.opts.Store.SaveRun(storage.Run{
		RunID:        res.RunID,
		GameID:       res.GameID,
		LevelID:      res.LevelID,
		Won:          res.Won,
		MovesUsed:    res.MovesUsed,
		Score:        res.Score,
		StonesBroken: res.StonesBroken,
		MaxCascade:   res.MaxCascade,
		Seed:         res.Seed,
	}); err != nil {
		s.logger.Warn("cannot save run", "err", err)
	}
	if res.Score > 0 {
		if _, err := s.opts.Store.SaveScore(res.GameID, res.Score); err != nil {
			s.logger.Warn("cannot save score", "err", err)
		}
	}
}
