package tui

import (
	"testing"
	"time"

	"github.com/vovakirdan/tui-racer/internal/core"
)

func TestKeyHoldWindow(t *testing.T) {
	h := NewKeyHold(150*time.Millisecond, 60)
	if h.window != 9 {
		t.Fatalf("window = %d, expected 9", h.window)
	}

	h.Press(core.ActionUp)
	for i := 0; i < 9; i++ {
		if !h.Frame().Has(core.ActionUp) {
			t.Fatalf("tick %d: up released early", i)
		}
	}
	if h.Frame().Has(core.ActionUp) {
		t.Error("up still held after the window")
	}
}

func TestKeyHoldRepeatRefreshes(t *testing.T) {
	h := NewKeyHold(50*time.Millisecond, 60) // 3 ticks

	h.Press(core.ActionLeft)
	h.Frame()
	h.Frame()
	h.Press(core.ActionLeft)
	for i := 0; i < 3; i++ {
		if !h.Frame().Has(core.ActionLeft) {
			t.Fatalf("tick %d after repeat: left released early", i)
		}
	}
	if h.Frame().Any() {
		t.Error("expected no held actions")
	}
}

func TestKeyHoldOpposites(t *testing.T) {
	h := NewKeyHold(DefaultHoldWindow, 60)

	h.Press(core.ActionLeft)
	h.Press(core.ActionUp)
	h.Press(core.ActionRight)
	h.Press(core.ActionDown)

	in := h.Frame()
	if in.Has(core.ActionLeft) || in.Has(core.ActionUp) {
		t.Error("pressing a direction should release its opposite")
	}
	if !in.Has(core.ActionRight) || !in.Has(core.ActionDown) {
		t.Error("expected right and down held")
	}
}

func TestKeyHoldOneShot(t *testing.T) {
	h := NewKeyHold(DefaultHoldWindow, 60)

	h.Press(core.ActionRestart)
	h.Press(core.ActionConfirm)
	h.Press(core.ActionQuit)
	h.Press(core.ActionNone)

	in := h.Frame()
	if !in.Has(core.ActionRestart) || !in.Has(core.ActionConfirm) {
		t.Error("expected restart and confirm on the first tick")
	}
	if in.Has(core.ActionQuit) || in.Has(core.ActionNone) {
		t.Error("quit and none should never be held")
	}
	if h.Frame().Any() {
		t.Error("one-shot actions should last a single tick")
	}
}

func TestKeyHoldMinimumWindow(t *testing.T) {
	h := NewKeyHold(time.Millisecond, 60)
	if h.window != 1 {
		t.Errorf("window = %d, expected 1", h.window)
	}
}

func TestKeyHoldRelease(t *testing.T) {
	h := NewKeyHold(DefaultHoldWindow, 60)
	h.Press(core.ActionUp)
	h.Press(core.ActionLeft)
	h.Release()
	if h.Frame().Any() {
		t.Error("Release() should drop every hold")
	}
}
