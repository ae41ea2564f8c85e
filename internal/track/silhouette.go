package track

import (
	"math"

	"github.com/vovakirdan/tui-racer/internal/core"
)

// Silhouette is the car's rectangular sprite outline. It produces footprint
// masks for any heading, rotated counter-clockwise about the sprite centre.
type Silhouette struct {
	W, H  int
	cache map[int]*Mask // keyed by heading in hundredths of a degree
}

// NewSilhouette creates a silhouette of a w×h sprite.
func NewSilhouette(w, h int) *Silhouette {
	return &Silhouette{W: w, H: h, cache: make(map[int]*Mask)}
}

// Mask returns the footprint for the given heading in degrees.
func (s *Silhouette) Mask(angle float64) *Mask {
	key := int(math.Round(normalizeDegrees(angle) * 100))
	if m, ok := s.cache[key]; ok {
		return m
	}
	m := s.rotate(float64(key) / 100)
	s.cache[key] = m
	return m
}

// Footprint returns the footprint mask and the top-left corner at which it sits
// when the unrotated sprite's top-left corner is at pos.
func (s *Silhouette) Footprint(pos core.Vec2, angle float64) (*Mask, int, int) {
	m := s.Mask(angle)
	cx := pos.X + float64(s.W)/2
	cy := pos.Y + float64(s.H)/2
	ox := int(cx - float64(m.Width())/2)
	oy := int(cy - float64(m.Height())/2)
	return m, ox, oy
}

func (s *Silhouette) rotate(angle float64) *Mask {
	rad := angle * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	fw, fh := float64(s.W), float64(s.H)

	bw := int(math.Ceil(math.Abs(fw*cos)+math.Abs(fh*sin) - 1e-9))
	bh := int(math.Ceil(math.Abs(fw*sin)+math.Abs(fh*cos) - 1e-9))
	m := NewMask(bw, bh)

	halfW, halfH := fw/2, fh/2
	bcx, bcy := float64(bw)/2, float64(bh)/2
	for y := 0; y < bh; y++ {
		for x := 0; x < bw; x++ {
			// Screen y grows downward, so a counter-clockwise turn on screen
			// maps a local point (lx, ly) to (lx·cos + ly·sin, −lx·sin + ly·cos).
			// Undo it to test the cell centre against the unrotated sprite.
			px := float64(x) + 0.5 - bcx
			py := float64(y) + 0.5 - bcy
			lx := px*cos - py*sin
			ly := px*sin + py*cos
			if lx >= -halfW && lx < halfW && ly >= -halfH && ly < halfH {
				m.Set(x, y)
			}
		}
	}
	return m
}

func normalizeDegrees(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}
