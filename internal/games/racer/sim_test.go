package racer

import (
	"testing"

	"github.com/vovakirdan/tui-racer/internal/config"
	"github.com/vovakirdan/tui-racer/internal/core"
)

func TestIntentsFrom(t *testing.T) {
	it := IntentsFrom(frame(core.ActionLeft, core.ActionUp))
	if !it.Left || !it.Up || it.Right || it.Down || it.Other {
		t.Errorf("IntentsFrom(left, up) = %+v", it)
	}

	it = IntentsFrom(frame(core.ActionConfirm))
	if !it.Other || !it.Any() {
		t.Errorf("IntentsFrom(confirm) = %+v, expected Other", it)
	}

	if IntentsFrom(core.NewInputFrame()).Any() {
		t.Error("empty frame should carry no intents")
	}
}

func TestStepWaitsForStart(t *testing.T) {
	s := testSim(t)
	before := s.Car.Position

	for i := 0; i < 10; i++ {
		if events := s.Step(Intents{}); len(events) != 0 {
			t.Fatalf("Step() before start returned events %v", events)
		}
	}
	if s.State.Started || s.Car.Position != before {
		t.Fatal("simulation advanced before any key was pressed")
	}

	events := s.Step(Intents{Up: true})
	if !s.State.Started || !hasEvent(events, core.EventLevelStart) {
		t.Fatalf("Step(up) should start the level, events = %v", events)
	}
	if s.Car.Velocity != s.Car.Acceleration {
		t.Errorf("starting tick should also drive: velocity = %v", s.Car.Velocity)
	}
}

func TestStepRotation(t *testing.T) {
	tests := []struct {
		name     string
		in       Intents
		expected float64 // In rotation steps
	}{
		{"left", Intents{Left: true}, 1},
		{"right", Intents{Right: true}, -1},
		{"both cancel", Intents{Left: true, Right: true}, 0},
		{"neither", Intents{Other: true}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := testSim(t)
			s.Obstacles = nil
			s.State.StartLevel()

			s.Step(tc.in)
			if want := tc.expected * s.Car.RotationRate; s.Car.Angle != want {
				t.Errorf("Step(%+v) angle = %v, expected %v", tc.in, s.Car.Angle, want)
			}
		})
	}
}

func TestStepBothThrottlesApply(t *testing.T) {
	s := testSim(t)
	s.Obstacles = nil
	s.State.StartLevel()

	s.Step(Intents{Up: true, Down: true})
	if s.Car.Velocity != 0 {
		t.Errorf("up+down velocity = %v, expected 0", s.Car.Velocity)
	}
}

func TestStepBorderRebound(t *testing.T) {
	s := testSim(t)
	s.Obstacles = nil
	s.State.StartLevel()
	s.Car.Position = core.V(150, 10.005)

	events := s.Step(Intents{Up: true})
	if !hasEvent(events, core.EventBorderHit) {
		t.Fatalf("expected a border hit, events = %v", events)
	}
	if s.Car.Velocity >= 0 {
		t.Errorf("velocity after rebound = %v, expected negative", s.Car.Velocity)
	}
	if s.Car.Position.Y < 10 {
		t.Errorf("car Y = %v, expected pushed back out of the wall", s.Car.Position.Y)
	}
}

func TestStepObstacleLoss(t *testing.T) {
	s := testSim(t)
	s.State.StartLevel()
	s.State.Level = 2
	s.Car.Position = core.V(100, 100)
	s.Car.Velocity = 1
	s.Obstacles = []Obstacle{NewObstacle(core.V(100, 96), 10), NewObstacle(core.V(250, 250), 10)}
	kept := append([]Obstacle(nil), s.Obstacles...)

	events := s.Step(Intents{Up: true})
	if !hasEvent(events, core.EventCrash) {
		t.Fatalf("expected a crash, events = %v", events)
	}
	if events[0].Level != 2 {
		t.Errorf("crash level = %d, expected 2", events[0].Level)
	}
	if s.State.Level != 1 || s.State.Started {
		t.Errorf("state after crash = %+v, expected level 1 not started", *s.State)
	}
	if s.Car.Position != s.Track.Start || s.Car.Velocity != 0 || s.Car.Angle != 0 {
		t.Errorf("car after crash at %v v=%v, expected reset", s.Car.Position, s.Car.Velocity)
	}
	if len(s.Obstacles) != len(kept) || s.Obstacles[0] != kept[0] {
		t.Error("obstacles should be kept after a crash by default")
	}
}

func TestStepObstacleLossRegenerates(t *testing.T) {
	cfg := config.DefaultRacerConfig()
	cfg.Obstacles.RegenerateOnLoss = true
	s := NewSimulation(testTrack(t), cfg, 5)
	s.State.StartLevel()
	s.Car.Position = core.V(100, 100)
	s.Obstacles = []Obstacle{NewObstacle(core.V(100, 100), 10)}

	s.Step(Intents{})
	if len(s.Obstacles) != cfg.Obstacles.Count {
		t.Errorf("obstacles after crash = %d, expected a fresh set of %d", len(s.Obstacles), cfg.Obstacles.Count)
	}
}

func TestStepFinishRebound(t *testing.T) {
	s := testSim(t)
	s.Obstacles = nil
	s.State.StartLevel()
	// Reversing down onto the finish line from the start side
	s.Car.Position = core.V(140, 220)
	s.Car.Velocity = -1

	events := s.Step(Intents{Down: true})
	if !hasEvent(events, core.EventFinishRebound) {
		t.Fatalf("expected a finish rebound, events = %v", events)
	}
	if s.State.Level != 1 || !s.State.Started {
		t.Errorf("state = %+v, expected level 1 still running", *s.State)
	}
	if s.Car.Velocity <= 0 {
		t.Errorf("velocity = %v, expected positive after rebound", s.Car.Velocity)
	}
}

func TestStepFinishAdvance(t *testing.T) {
	s := testSim(t)
	s.State.StartLevel()
	s.Obstacles = nil
	s.Car.Position = core.V(140, 255)
	s.Car.Angle = 12

	events := s.Step(Intents{Up: true})
	if !hasEvent(events, core.EventLevelComplete) {
		t.Fatalf("expected level complete, events = %v", events)
	}
	if s.State.Level != 2 || s.State.Started {
		t.Errorf("state = %+v, expected level 2 not started", *s.State)
	}
	if len(s.Obstacles) != config.DefaultObstacleCount {
		t.Errorf("obstacles = %d, expected %d", len(s.Obstacles), config.DefaultObstacleCount)
	}
	if s.Car.Position != s.Track.Start || s.Car.Angle != 0 || s.Car.Velocity != 0 {
		t.Errorf("car = %v/%v/%v, expected reset", s.Car.Position, s.Car.Angle, s.Car.Velocity)
	}
	if hasEvent(events, core.EventWin) {
		t.Error("level 1 of 2 should not win")
	}
}

func TestStepWinResets(t *testing.T) {
	s := testSim(t)
	s.State.Level = s.State.Total
	s.State.StartLevel()
	s.Obstacles = nil
	s.Car.Position = core.V(140, 255)

	events := s.Step(Intents{Up: true})
	if !hasEvent(events, core.EventLevelComplete) || !hasEvent(events, core.EventWin) {
		t.Fatalf("expected level complete then win, events = %v", events)
	}
	if s.State.Level != 1 || s.State.Started {
		t.Errorf("state after win = %+v, expected level 1 not started", *s.State)
	}
	if s.Car.Position != s.Track.Start {
		t.Errorf("car after win at %v, expected start", s.Car.Position)
	}
}

func TestRestart(t *testing.T) {
	s := testSim(t)
	s.State.Level = 2
	s.State.StartLevel()
	s.Car.Velocity = 3
	old := s.Obstacles[0]

	s.Restart()
	if s.State.Level != 1 || s.State.Started || s.Car.Velocity != 0 {
		t.Errorf("Restart() state = %+v velocity = %v", *s.State, s.Car.Velocity)
	}
	if s.Obstacles[0] == old {
		t.Error("Restart() should lay out new obstacles")
	}
}
