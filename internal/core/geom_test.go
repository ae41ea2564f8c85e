package core

import (
	"math"
	"testing"
)

func TestVec2Arithmetic(t *testing.T) {
	a := V(3, 4)
	b := V(1, -2)

	if got := a.Add(b); got != V(4, 2) {
		t.Errorf("Add() = %v, expected (4, 2)", got)
	}
	if got := a.Sub(b); got != V(2, 6) {
		t.Errorf("Sub() = %v, expected (2, 6)", got)
	}
	if got := a.Scale(-0.5); got != V(-1.5, -2) {
		t.Errorf("Scale() = %v, expected (-1.5, -2)", got)
	}
	// Operands are values and must not change
	if a != V(3, 4) || b != V(1, -2) {
		t.Errorf("operands mutated: a=%v b=%v", a, b)
	}
}

func TestVec2Len(t *testing.T) {
	tests := []struct {
		name     string
		v        Vec2
		expected float64
	}{
		{"zero", V(0, 0), 0},
		{"3-4-5", V(3, 4), 5},
		{"negative components", V(-6, -8), 10},
		{"axis", V(0, 10), 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.v.Len(); math.Abs(got-tc.expected) > 1e-12 {
				t.Errorf("Len() = %f, expected %f", got, tc.expected)
			}
		})
	}
}

func TestVec2Dist(t *testing.T) {
	a := V(180, 200)
	b := V(190, 200)

	if got := a.Dist(b); got != 10 {
		t.Errorf("Dist() = %f, expected 10", got)
	}
	if a.Dist(b) != b.Dist(a) {
		t.Error("Dist() should be symmetric")
	}
	if got := a.Dist(a); got != 0 {
		t.Errorf("Dist() to self = %f, expected 0", got)
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(100, 250, 100, 10)

	if r.Right() != 200 {
		t.Errorf("Right() = %d, expected 200", r.Right())
	}
	if r.Bottom() != 260 {
		t.Errorf("Bottom() = %d, expected 260", r.Bottom())
	}
}
