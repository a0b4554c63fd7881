package levels

// Manager walks an ordered campaign.
type Manager struct {
	levels  []Level
	current int
}

// NewManager creates a manager positioned on the first level.
func NewManager(levels []Level) *Manager {
	return &Manager{levels: levels}
}

// Len returns the number of levels.
func (m *Manager) Len() int { return len(m.levels) }

// Levels returns the campaign in order.
func (m *Manager) Levels() []Level { return m.levels }

// Index returns the current position.
func (m *Manager) Index() int { return m.current }

// Current returns the current level, or false for an empty campaign.
func (m *Manager) Current() (Level, bool) {
	if m.current < 0 || m.current >= len(m.levels) {
		return Level{}, false
	}
	return m.levels[m.current], true
}

// IsFinal reports whether the current level is the last one.
func (m *Manager) IsFinal() bool {
	return len(m.levels) == 0 || m.current >= len(m.levels)-1
}

// StartAt jumps to index, clamped to the campaign.
func (m *Manager) StartAt(index int) {
	if index > len(m.levels)-1 {
		index = len(m.levels) - 1
	}
	if index < 0 {
		index = 0
	}
	m.current = index
}

// StartAtID jumps to the level with the given id. It reports whether it was found.
func (m *Manager) StartAtID(id string) bool {
	for i, l := range m.levels {
		if l.ID == id {
			m.current = i
			return true
		}
	}
	return false
}

// Restart returns the current level again.
func (m *Manager) Restart() (Level, bool) {
	return m.Current()
}

// TryAdvance moves to the next level unless the current one is final.
func (m *Manager) TryAdvance() bool {
	if m.IsFinal() {
		return false
	}
	m.current++
	return true
}

// NextOrWrap advances, or wraps to the first level after the final one.
func (m *Manager) NextOrWrap() Level {
	if !m.TryAdvance() {
		m.current = 0
	}
	l, _ := m.Current()
	return l
}
