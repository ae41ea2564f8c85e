package racer

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-racer/internal/config"
	"github.com/vovakirdan/tui-racer/internal/core"
	"github.com/vovakirdan/tui-racer/internal/track"
)

// attemptsPerObstacle bounds the rejection sampling in Generate.
const attemptsPerObstacle = 200

// Obstacle is a round hazard sitting on the track.
type Obstacle struct {
	Position core.Vec2
	Radius   float64
}

// NewObstacle creates an obstacle at the given position.
func NewObstacle(pos core.Vec2, radius float64) Obstacle {
	return Obstacle{Position: pos, Radius: radius}
}

// DistanceTo returns the distance from the obstacle centre to p.
func (o Obstacle) DistanceTo(p core.Vec2) float64 {
	return o.Position.Dist(p)
}

// ObstacleGenerator places obstacles at random integer positions inside the
// track's spawn bounds. Positions on walls or within the start clearance are
// rejected.
type ObstacleGenerator struct {
	rng       *rand.Rand
	trk       *track.Track
	cfg       config.ObstacleConfig
	clearance float64
}

// NewObstacleGenerator creates a generator drawing from rng.
func NewObstacleGenerator(rng *rand.Rand, trk *track.Track, cfg config.ObstacleConfig) *ObstacleGenerator {
	return &ObstacleGenerator{
		rng:       rng,
		trk:       trk,
		cfg:       cfg,
		clearance: math.Max(cfg.StartClearance, cfg.HitRadius),
	}
}

// Generate returns n new obstacles. If a valid spot cannot be found within
// the attempt budget the last candidate is kept anyway, so the result always
// has exactly n obstacles.
func (og *ObstacleGenerator) Generate(n int) []Obstacle {
	obstacles := make([]Obstacle, 0, n)
	for range n {
		var pos core.Vec2
		for attempt := 0; attempt < attemptsPerObstacle; attempt++ {
			pos = og.candidate()
			if og.valid(pos) {
				break
			}
		}
		obstacles = append(obstacles, NewObstacle(pos, og.cfg.Radius))
	}
	return obstacles
}

func (og *ObstacleGenerator) candidate() core.Vec2 {
	return core.V(og.randRange(og.trk.SpawnMin.X, og.trk.SpawnMax.X), og.randRange(og.trk.SpawnMin.Y, og.trk.SpawnMax.Y))
}

// randRange returns an integer in [lo, hi).
func (og *ObstacleGenerator) randRange(lo, hi float64) float64 {
	a, b := int(math.Ceil(lo)), int(math.Ceil(hi))
	if b <= a {
		return float64(a)
	}
	return float64(a + og.rng.Intn(b-a))
}

func (og *ObstacleGenerator) valid(pos core.Vec2) bool {
	if og.trk.IsWall(pos) {
		return false
	}
	return pos.Dist(og.trk.Start) >= og.clearance
}
