package racer

import (
	"math/rand"

	"github.com/vovakirdan/tui-racer/internal/config"
	"github.com/vovakirdan/tui-racer/internal/core"
	"github.com/vovakirdan/tui-racer/internal/track"
)

// Intents are the held controls for one tick. Other covers any key that is
// not a direction; it only matters for starting a level.
type Intents struct {
	Left, Right, Up, Down bool
	Other                 bool
}

// IntentsFrom maps platform actions to intents.
func IntentsFrom(in core.InputFrame) Intents {
	it := Intents{
		Left:  in.Has(core.ActionLeft),
		Right: in.Has(core.ActionRight),
		Up:    in.Has(core.ActionUp),
		Down:  in.Has(core.ActionDown),
	}
	if !it.Left && !it.Right && !it.Up && !it.Down {
		it.Other = in.Any()
	}
	return it
}

// Any reports whether any key is held.
func (it Intents) Any() bool {
	return it.Left || it.Right || it.Up || it.Down || it.Other
}

// SimulationContext owns everything one tick of the race mutates.
type SimulationContext struct {
	Car       *Car
	State     *GameState
	Obstacles []Obstacle
	Track     *track.Track

	cfg config.RacerConfig
	gen *ObstacleGenerator
}

// NewSimulation creates a simulation on trk with a fresh obstacle layout.
// The same seed always produces the same layouts.
func NewSimulation(trk *track.Track, cfg config.RacerConfig, seed int64) *SimulationContext {
	rng := rand.New(rand.NewSource(seed)) //#nosec G404 -- gameplay randomness, must be seedable
	s := &SimulationContext{
		Car:   NewCar(trk.Start, cfg.Car, cfg.Obstacles.HitRadius),
		State: NewGameState(cfg.Gameplay.TotalLevels),
		Track: trk,
		cfg:   cfg,
		gen:   NewObstacleGenerator(rng, trk, cfg.Obstacles),
	}
	s.RegenerateObstacles()
	return s
}

// RegenerateObstacles replaces the whole obstacle set.
func (s *SimulationContext) RegenerateObstacles() {
	s.Obstacles = s.gen.Generate(s.cfg.Obstacles.Count)
}

// Restart returns to level 1 with the car at the start and a new layout.
func (s *SimulationContext) Restart() {
	s.State.Reset()
	s.Car.Reset()
	s.RegenerateObstacles()
}

// Step runs one tick and returns what happened. Every check runs in order
// and every transition applies immediately; a crash does not skip the finish
// check that follows it.
func (s *SimulationContext) Step(in Intents) []core.Event {
	var events []core.Event

	if !s.State.Started {
		if !in.Any() {
			return nil
		}
		s.State.StartLevel()
		events = append(events, core.Event{Kind: core.EventLevelStart, Level: s.State.Level})
	}

	// Both steering keys apply, so holding both cancels out
	if in.Left {
		s.Car.Rotate(RotateLeft)
	}
	if in.Right {
		s.Car.Rotate(RotateRight)
	}

	moved := false
	if in.Up {
		moved = true
		s.Car.MoveForward()
	}
	if in.Down {
		moved = true
		s.Car.MoveBackward()
	}
	if !moved {
		s.Car.Coast()
	}

	if s.Car.CheckBorderCollision(s.Track.Border) {
		s.Car.Rebound()
		events = append(events, core.Event{Kind: core.EventBorderHit, Level: s.State.Level})
	}

	crashed := false
	for _, o := range s.Obstacles {
		if s.Car.HitsObstacle(o) {
			events = append(events, core.Event{Kind: core.EventCrash, Level: s.State.Level})
			s.State.Reset()
			s.Car.Reset()
			crashed = true
		}
	}
	if crashed && s.cfg.Obstacles.RegenerateOnLoss {
		s.RegenerateObstacles()
	}

	if p, hit := s.Car.CheckFinishCollision(s.Track.Finish, s.Track.FinishOrigin); hit {
		if p.Y == 0 {
			s.Car.Rebound()
			events = append(events, core.Event{Kind: core.EventFinishRebound, Level: s.State.Level})
		} else {
			events = append(events, core.Event{Kind: core.EventLevelComplete, Level: s.State.Level})
			s.Car.Reset()
			s.State.AdvanceLevel()
			s.RegenerateObstacles()
		}
	}

	if s.State.IsFinished() {
		events = append(events, core.Event{Kind: core.EventWin, Level: s.State.Total})
		s.State.Reset()
		s.Car.Reset()
	}

	return events
}
