package racer

import (
	"testing"

	"github.com/vovakirdan/tui-racer/internal/config"
	"github.com/vovakirdan/tui-racer/internal/core"
	"github.com/vovakirdan/tui-racer/internal/track"
)

// arenaYAML is a 300x300 walled box. The finish line spans x 100..199 at
// y 250..259, below the start.
const arenaYAML = `
id: arena
name: Arena
cell: 10
start: {x: 150, y: 150}
finish: {x: 100, y: 250, w: 100, h: 10}
spawn:
  min: {x: 15, y: 15}
  max: {x: 285, y: 285}
layout:
  - "##############################"
  - "#............................#"
  - "#............................#"
  - "#............................#"
  - "#............................#"
  - "#............................#"
  - "#............................#"
  - "#............................#"
  - "#............................#"
  - "#............................#"
  - "#............................#"
  - "#............................#"
  - "#............................#"
  - "#............................#"
  - "#............................#"
  - "#............................#"
  - "#............................#"
  - "#............................#"
  - "#............................#"
  - "#............................#"
  - "#............................#"
  - "#............................#"
  - "#............................#"
  - "#............................#"
  - "#............................#"
  - "#............................#"
  - "#............................#"
  - "#............................#"
  - "#............................#"
  - "##############################"
`

func testTrack(t *testing.T) *track.Track {
	t.Helper()
	trk, err := track.Parse([]byte(arenaYAML))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return trk
}

func testSim(t *testing.T) *SimulationContext {
	t.Helper()
	return NewSimulation(testTrack(t), config.DefaultRacerConfig(), 42)
}

func testGame(t *testing.T) *Game {
	t.Helper()
	g := NewWithConfig(testTrack(t), config.DefaultRacerConfig())
	g.Reset(core.RuntimeConfig{ScreenW: 60, ScreenH: 24, TickRate: 60, Seed: 42})
	return g
}

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func hasEvent(events []core.Event, kind core.EventKind) bool {
	for _, e := range events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}
