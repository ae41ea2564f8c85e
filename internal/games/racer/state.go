package racer

// GameState tracks level progression.
type GameState struct {
	Level   int
	Started bool
	Total   int
}

// NewGameState creates a state at level 1 of total.
func NewGameState(total int) *GameState {
	return &GameState{Level: 1, Total: total}
}

// StartLevel marks the current level as started.
func (s *GameState) StartLevel() {
	s.Started = true
}

// AdvanceLevel moves to the next level, which must be started again.
func (s *GameState) AdvanceLevel() {
	s.Level++
	s.Started = false
}

// Reset returns to level 1, not started.
func (s *GameState) Reset() {
	s.Level = 1
	s.Started = false
}

// IsFinished reports whether every level has been completed.
func (s *GameState) IsFinished() bool {
	return s.Level > s.Total
}
