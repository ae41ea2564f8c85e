// Package track holds the static collision surfaces of a race track: occupancy
// masks for walls and the finish line, the start pose, and the YAML loader that
// builds them.
package track

import "image"

const wordBits = 64

// Mask is a boolean occupancy map over an integer grid.
// Bits are stored row-major, one []uint64 per row.
type Mask struct {
	w, h int
	rows [][]uint64
}

// NewMask creates an empty mask of the given size.
func NewMask(w, h int) *Mask {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	words := (w + wordBits - 1) / wordBits
	m := &Mask{w: w, h: h, rows: make([][]uint64, h)}
	for y := range m.rows {
		m.rows[y] = make([]uint64, words)
	}
	return m
}

// Width returns the mask width.
func (m *Mask) Width() int { return m.w }

// Height returns the mask height.
func (m *Mask) Height() int { return m.h }

// Set marks (x, y) as occupied. Out-of-bounds coordinates are ignored.
func (m *Mask) Set(x, y int) {
	if x < 0 || x >= m.w || y < 0 || y >= m.h {
		return
	}
	m.rows[y][x/wordBits] |= 1 << uint(x%wordBits)
}

// Get reports whether (x, y) is occupied. Out-of-bounds is empty.
func (m *Mask) Get(x, y int) bool {
	if x < 0 || x >= m.w || y < 0 || y >= m.h {
		return false
	}
	return m.rows[y][x/wordBits]&(1<<uint(x%wordBits)) != 0
}

// FillRect marks every cell of the rectangle, clipped to the mask.
func (m *Mask) FillRect(x, y, w, h int) {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			m.Set(xx, yy)
		}
	}
}

// Count returns the number of occupied cells.
func (m *Mask) Count() int {
	n := 0
	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			if m.Get(x, y) {
				n++
			}
		}
	}
	return n
}

// Overlap places other with its top-left corner at (dx, dy) in m's coordinates
// and returns the first cell occupied in both, scanning rows top to bottom and
// columns left to right. The point is in m's coordinates.
func (m *Mask) Overlap(other *Mask, dx, dy int) (image.Point, bool) {
	if other == nil {
		return image.Point{}, false
	}
	y0 := max(0, dy)
	y1 := min(m.h, dy+other.h)
	x0 := max(0, dx)
	x1 := min(m.w, dx+other.w)

	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if m.Get(x, y) && other.Get(x-dx, y-dy) {
				return image.Pt(x, y), true
			}
		}
	}
	return image.Point{}, false
}
