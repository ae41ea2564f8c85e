package tui

import (
	"time"

	"github.com/vovakirdan/tui-racer/internal/core"
)

// DefaultHoldWindow is how long a steering or throttle key stays held after
// a press when no repeat arrives.
const DefaultHoldWindow = 150 * time.Millisecond

// KeyHold turns key presses into held actions. Terminals report presses and
// auto-repeats but never releases, so a driving key counts as held until its
// hold window runs out without a repeat. Other actions last a single tick.
type KeyHold struct {
	window    int
	remaining map[core.Action]int
}

// NewKeyHold creates a KeyHold whose window lasts d at the given tick rate.
// The window is at least one tick.
func NewKeyHold(d time.Duration, tickRate int) *KeyHold {
	window := int(d * time.Duration(tickRate) / time.Second)
	return &KeyHold{
		window:    max(window, 1),
		remaining: make(map[core.Action]int),
	}
}

// Press registers a key press or repeat. Pressing a direction releases its
// opposite at once.
func (h *KeyHold) Press(a core.Action) {
	switch a {
	case core.ActionNone, core.ActionQuit:
		return
	case core.ActionLeft:
		delete(h.remaining, core.ActionRight)
	case core.ActionRight:
		delete(h.remaining, core.ActionLeft)
	case core.ActionUp:
		delete(h.remaining, core.ActionDown)
	case core.ActionDown:
		delete(h.remaining, core.ActionUp)
	default:
		h.remaining[a] = 1
		return
	}
	h.remaining[a] = h.window
}

// Frame returns the actions held this tick and ages every hold by one tick.
func (h *KeyHold) Frame() core.InputFrame {
	in := core.NewInputFrame()
	for a, n := range h.remaining {
		in.Set(a)
		if n <= 1 {
			delete(h.remaining, a)
		} else {
			h.remaining[a] = n - 1
		}
	}
	return in
}

// Release drops every held action.
func (h *KeyHold) Release() {
	clear(h.remaining)
}
