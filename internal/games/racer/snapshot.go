package racer

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/vovakirdan/tui-racer/internal/core"
)

// Snapshot captures the observable game state after a tick.
type Snapshot struct {
	Tick      uint64
	Level     int
	Started   bool
	Frozen    bool
	CarX      float64
	CarY      float64
	Angle     float64
	Velocity  float64
	Obstacles []core.Vec2
	Message   string
	Stats     core.RunStats
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	obstacles := make([]core.Vec2, len(g.sim.Obstacles))
	for i, o := range g.sim.Obstacles {
		obstacles[i] = o.Position
	}
	car := g.sim.Car
	return Snapshot{
		Tick:      g.tick,
		Level:     g.sim.State.Level,
		Started:   g.sim.State.Started,
		Frozen:    len(g.pauses) > 0,
		CarX:      car.Position.X,
		CarY:      car.Position.Y,
		Angle:     car.Angle,
		Velocity:  car.Velocity,
		Obstacles: obstacles,
		Message:   g.Message(),
		Stats:     g.stats,
	}
}

// Hash returns a digest of the snapshot for determinism checks.
func (s *Snapshot) Hash() uint64 {
	buf := make([]byte, 0, 128+16*len(s.Obstacles))
	buf = binary.LittleEndian.AppendUint64(buf, s.Tick)
	buf = binary.LittleEndian.AppendUint64(buf, uint64(s.Level)) //#nosec G115 -- hash computation
	buf = append(buf, boolByte(s.Started), boolByte(s.Frozen))
	for _, f := range []float64{s.CarX, s.CarY, s.Angle, s.Velocity} {
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(f))
	}
	for _, o := range s.Obstacles {
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(o.X))
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(o.Y))
	}
	buf = append(buf, s.Message...)
	return xxhash.Sum64(buf)
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
