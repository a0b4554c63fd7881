package match3

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/games/match3/levels"
)

// Package-level settings applied by the CLI before games are created.
var (
	setupMu      sync.RWMutex
	activeConfig = config.DefaultConfig()
	campaign     []levels.Level
	logger       = log.New(io.Discard)
	startLevel   int
)

// SetConfig sets the configuration used by new games.
func SetConfig(cfg config.Config) {
	setupMu.Lock()
	defer setupMu.Unlock()
	activeConfig = cfg
}

// SetLevels replaces the campaign. nil falls back to the built-in levels.
func SetLevels(lvls []levels.Level) {
	setupMu.Lock()
	defer setupMu.Unlock()
	campaign = lvls
}

// SetLogger sets the logger used by new games.
func SetLogger(l *log.Logger) {
	setupMu.Lock()
	defer setupMu.Unlock()
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// SetStartLevel sets the campaign index new games start at.
func SetStartLevel(index int) {
	setupMu.Lock()
	defer setupMu.Unlock()
	startLevel = index
}

// Campaign returns the configured campaign, loading the built-in levels
// when none was set.
func Campaign() ([]levels.Level, error) {
	setupMu.RLock()
	lvls := campaign
	setupMu.RUnlock()
	if lvls != nil {
		return lvls, nil
	}
	return levels.Embedded().LoadAll()
}

func settings() (config.Config, *log.Logger, int) {
	setupMu.RLock()
	defer setupMu.RUnlock()
	return activeConfig, logger, startLevel
}
