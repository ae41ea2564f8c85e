package replay

import (
	"context"
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-racer/internal/core"
	"github.com/vovakirdan/tui-racer/internal/registry"
)

// ErrTrackMismatch is returned when the track on disk differs from the one a
// run was recorded on.
var ErrTrackMismatch = errors.New("replay: track definition changed since recording")

// CheckTrack verifies that g races the same track definition as the recording.
func CheckTrack(g registry.Recordable, trackID string, fingerprint uint64) error {
	if g.TrackID() != trackID {
		return fmt.Errorf("%w: recorded on %q, got %q", ErrTrackMismatch, trackID, g.TrackID())
	}
	if g.TrackFingerprint() != fingerprint {
		return fmt.Errorf("%w: %s fingerprint %016x, expected %016x", ErrTrackMismatch, trackID, g.TrackFingerprint(), fingerprint)
	}
	return nil
}

// StepFunc observes each replayed tick.
type StepFunc func(tick uint64, res core.StepResult)

// Run resets g with cfg and feeds it every recorded tick. It stops early when
// ctx is cancelled and returns the number of ticks played.
func Run(ctx context.Context, g registry.Game, cfg core.RuntimeConfig, l Log, onStep StepFunc) (uint64, error) {
	g.Reset(cfg)

	var tick uint64
	for _, span := range l.Spans {
		in := span.Mask.Frame()
		for i := uint32(0); i < span.Count; i++ {
			if err := ctx.Err(); err != nil {
				return tick, err
			}
			res := g.Step(in)
			tick++
			if onStep != nil {
				onStep(tick, res)
			}
		}
	}
	return tick, nil
}
