package racer

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-racer/internal/config"
	"github.com/vovakirdan/tui-racer/internal/core"
)

const eps = 1e-9

func newTestCar() *Car {
	return NewCar(core.V(180, 200), config.DefaultRacerConfig().Car, config.DefaultHitRadius)
}

func TestForwardVelocityMonotonicAndBounded(t *testing.T) {
	c := newTestCar()
	prev := c.Velocity
	for i := 0; i < 1000; i++ {
		c.MoveForward()
		if c.Velocity < prev {
			t.Fatalf("tick %d: velocity decreased from %v to %v", i, prev, c.Velocity)
		}
		if c.Velocity > c.MaxVelocity {
			t.Fatalf("tick %d: velocity %v exceeds max %v", i, c.Velocity, c.MaxVelocity)
		}
		prev = c.Velocity
	}
	if math.Abs(c.Velocity-c.MaxVelocity) > eps {
		t.Errorf("Velocity = %v, expected %v after holding throttle", c.Velocity, c.MaxVelocity)
	}
}

func TestBackwardVelocityBoundedByHalfMax(t *testing.T) {
	c := newTestCar()
	for i := 0; i < 1000; i++ {
		c.MoveBackward()
		if c.Velocity < -c.MaxVelocity/2-eps {
			t.Fatalf("tick %d: velocity %v below reverse cap %v", i, c.Velocity, -c.MaxVelocity/2)
		}
	}
	if math.Abs(c.Velocity+c.MaxVelocity/2) > eps {
		t.Errorf("Velocity = %v, expected %v", c.Velocity, -c.MaxVelocity/2)
	}
}

func TestCoastNeverChangesSign(t *testing.T) {
	tests := []struct {
		name     string
		start    float64
		expected float64
	}{
		{"slow forward stops at zero", 0.003, 0},
		{"forward bleeds half acceleration", 1, 0.995},
		{"reverse stops at once", -1, 0},
		{"at rest stays at rest", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCar()
			c.Velocity = tt.start
			c.Coast()
			if math.Abs(c.Velocity-tt.expected) > eps {
				t.Errorf("Coast() velocity = %v, expected %v", c.Velocity, tt.expected)
			}
			if c.Velocity < 0 {
				t.Errorf("Coast() velocity = %v, expected non-negative", c.Velocity)
			}
		})
	}
}

func TestDoubleReboundRestoresVelocity(t *testing.T) {
	c := newTestCar()
	c.Velocity = 2.5
	c.Rebound()
	if c.Velocity != -2.5 {
		t.Errorf("after one Rebound() velocity = %v, expected -2.5", c.Velocity)
	}
	c.Rebound()
	if c.Velocity != 2.5 {
		t.Errorf("after two Rebound() velocity = %v, expected 2.5", c.Velocity)
	}
	// Two opposite moves cancel out
	if math.Abs(c.Position.X-180) > eps || math.Abs(c.Position.Y-200) > eps {
		t.Errorf("Position = %v, expected back at start", c.Position)
	}
}

func TestRotate(t *testing.T) {
	c := newTestCar()
	c.Rotate(RotateLeft)
	if c.Angle != 4 {
		t.Errorf("Rotate(left) angle = %v, expected 4", c.Angle)
	}
	c.Rotate(RotateRight)
	c.Rotate(RotateRight)
	if c.Angle != -4 {
		t.Errorf("Rotate(right) angle = %v, expected -4", c.Angle)
	}
	c.Rotate(RotateNone)
	if c.Angle != -4 {
		t.Errorf("Rotate(none) angle = %v, expected -4", c.Angle)
	}
}

func TestAdvanceFollowsHeading(t *testing.T) {
	tests := []struct {
		angle  float64
		dx, dy float64
	}{
		{0, 0, -1},  // up
		{90, -1, 0}, // left
		{180, 0, 1}, // down
		{-90, 1, 0}, // right
	}

	for _, tt := range tests {
		c := newTestCar()
		c.Angle = tt.angle
		c.Velocity = 1
		c.Advance()
		dx := c.Position.X - 180
		dy := c.Position.Y - 200
		if math.Abs(dx-tt.dx) > eps || math.Abs(dy-tt.dy) > eps {
			t.Errorf("Advance() at %v° moved (%v, %v), expected (%v, %v)", tt.angle, dx, dy, tt.dx, tt.dy)
		}
	}
}

func TestHitsObstacle(t *testing.T) {
	tests := []struct {
		name     string
		at       core.Vec2
		expected bool
	}{
		{"same position", core.V(180, 200), true},
		{"just inside", core.V(189.99, 200), true},
		{"exactly hit radius", core.V(190, 200), false},
		{"diagonal exactly hit radius", core.V(186, 208), false},
		{"far away", core.V(400, 400), false},
	}

	c := newTestCar()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Obstacle radius is irrelevant to the hit test
			o := NewObstacle(tt.at, 50)
			if got := c.HitsObstacle(o); got != tt.expected {
				t.Errorf("HitsObstacle() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestResetIsIdempotent(t *testing.T) {
	c := newTestCar()
	c.Angle = 33
	c.Velocity = 3
	c.Position = core.V(1, 2)

	c.Reset()
	first := *c
	c.Reset()

	if c.Position != core.V(180, 200) || c.Angle != 0 || c.Velocity != 0 {
		t.Errorf("Reset() pose = %v/%v/%v, expected start at rest", c.Position, c.Angle, c.Velocity)
	}
	if c.Position != first.Position || c.Angle != first.Angle || c.Velocity != first.Velocity {
		t.Error("second Reset() changed the car")
	}
}

func TestCheckFinishCollision(t *testing.T) {
	trk := testTrack(t)
	c := NewCar(trk.Start, config.DefaultRacerConfig().Car, config.DefaultHitRadius)

	// Bottom row of the car on the finish line's top row
	c.Position = core.V(140, 221)
	p, hit := c.CheckFinishCollision(trk.Finish, trk.FinishOrigin)
	if !hit || p.Y != 0 {
		t.Errorf("from above: CheckFinishCollision() = %v, %v, expected Y == 0 hit", p, hit)
	}

	// Nose of the car inside the finish line from below
	c.Position = core.V(140, 255)
	p, hit = c.CheckFinishCollision(trk.Finish, trk.FinishOrigin)
	if !hit || p.Y != 5 {
		t.Errorf("from below: CheckFinishCollision() = %v, %v, expected Y == 5 hit", p, hit)
	}

	c.Reset()
	if _, hit := c.CheckFinishCollision(trk.Finish, trk.FinishOrigin); hit {
		t.Error("car at start should not touch the finish")
	}
}

func TestCheckBorderCollision(t *testing.T) {
	trk := testTrack(t)
	c := NewCar(trk.Start, config.DefaultRacerConfig().Car, config.DefaultHitRadius)

	if c.CheckBorderCollision(trk.Border) {
		t.Error("car at start should not touch the border")
	}

	c.Position = core.V(150, 9)
	if !c.CheckBorderCollision(trk.Border) {
		t.Error("car overlapping the top wall should collide")
	}

	// Turned sideways the car is wider than it is tall
	c.Position = core.V(16, 150)
	c.Angle = 90
	if !c.CheckBorderCollision(trk.Border) {
		t.Error("car turned sideways near the left wall should collide")
	}
	c.Angle = 0
	if c.CheckBorderCollision(trk.Border) {
		t.Error("upright car near the left wall should fit")
	}
}
