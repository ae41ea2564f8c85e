package racer

import (
	"image"
	"math"

	"github.com/vovakirdan/tui-racer/internal/config"
	"github.com/vovakirdan/tui-racer/internal/core"
	"github.com/vovakirdan/tui-racer/internal/track"
)

// RotateDir is a steering input.
type RotateDir int

const (
	RotateNone RotateDir = iota
	RotateLeft
	RotateRight
)

// Car is the player's vehicle. Position is the top-left corner of the
// unrotated sprite; Angle is in degrees, 0 pointing up the screen and growing
// counter-clockwise.
type Car struct {
	Position     core.Vec2
	Angle        float64
	Velocity     float64
	MaxVelocity  float64
	RotationRate float64
	Acceleration float64
	HitRadius    float64

	start core.Vec2
	shape *track.Silhouette
}

// NewCar creates a car parked at start.
func NewCar(start core.Vec2, cfg config.CarConfig, hitRadius float64) *Car {
	c := &Car{
		MaxVelocity:  cfg.MaxVelocity,
		RotationRate: cfg.RotationRate,
		Acceleration: cfg.Acceleration,
		HitRadius:    hitRadius,
		start:        start,
		shape:        track.NewSilhouette(cfg.Width, cfg.Height),
	}
	c.Reset()
	return c
}

// Rotate turns the car by one rotation step.
func (c *Car) Rotate(dir RotateDir) {
	switch dir {
	case RotateLeft:
		c.Angle += c.RotationRate
	case RotateRight:
		c.Angle -= c.RotationRate
	}
}

// MoveForward accelerates up to MaxVelocity and moves.
func (c *Car) MoveForward() {
	c.Velocity = math.Min(c.Velocity+c.Acceleration, c.MaxVelocity)
	c.Advance()
}

// MoveBackward decelerates down to -MaxVelocity/2 and moves.
func (c *Car) MoveBackward() {
	c.Velocity = math.Max(c.Velocity-c.Acceleration, -c.MaxVelocity/2)
	c.Advance()
}

// Coast bleeds speed at half the acceleration rate, never below zero, and moves.
// A car rolling backward stops at once.
func (c *Car) Coast() {
	c.Velocity = math.Max(c.Velocity-c.Acceleration/2, 0)
	c.Advance()
}

// Advance moves the car one tick along its heading.
func (c *Car) Advance() {
	rad := c.Angle * math.Pi / 180
	c.Position.Y -= math.Cos(rad) * c.Velocity
	c.Position.X -= math.Sin(rad) * c.Velocity
}

// Rebound reverses the velocity and moves.
func (c *Car) Rebound() {
	c.Velocity = -c.Velocity
	c.Advance()
}

// Footprint returns the car's rotated collision mask and its top-left corner
// in track units.
func (c *Car) Footprint() (*track.Mask, int, int) {
	return c.shape.Footprint(c.Position, c.Angle)
}

// CheckBorderCollision reports whether the car overlaps the border mask.
func (c *Car) CheckBorderCollision(border *track.Mask) bool {
	fp, ox, oy := c.Footprint()
	_, hit := border.Overlap(fp, ox, oy)
	return hit
}

// CheckFinishCollision returns the first overlap between the car and the
// finish mask whose top-left sits at origin. The point is in finish-mask
// coordinates, so Y == 0 means the car touched the finish line's top row.
func (c *Car) CheckFinishCollision(finish *track.Mask, origin core.Vec2) (image.Point, bool) {
	fp, ox, oy := c.Footprint()
	return finish.Overlap(fp, ox-int(origin.X), oy-int(origin.Y))
}

// HitsObstacle reports whether the car position is strictly closer than
// HitRadius to the obstacle centre. The obstacle's own radius plays no part.
func (c *Car) HitsObstacle(o Obstacle) bool {
	return o.DistanceTo(c.Position) < c.HitRadius
}

// Reset puts the car back at the start, pointing up, at rest.
func (c *Car) Reset() {
	c.Position = c.start
	c.Angle = 0
	c.Velocity = 0
}

// Start returns the start position.
func (c *Car) Start() core.Vec2 {
	return c.start
}
