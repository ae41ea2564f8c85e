// Package replay records the per-tick input of a session as a run-length
// encoded log and plays it back against a fresh game.
package replay

import (
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/tui-racer/internal/core"
)

// FormatVersion is bumped whenever the encoding changes incompatibly.
const FormatVersion = 1

// Mask packs the held actions of one tick into a byte.
type Mask uint8

const (
	MaskLeft Mask = 1 << iota
	MaskRight
	MaskUp
	MaskDown
	MaskConfirm
	MaskRestart
)

var maskActions = []struct {
	bit    Mask
	action core.Action
}{
	{MaskLeft, core.ActionLeft},
	{MaskRight, core.ActionRight},
	{MaskUp, core.ActionUp},
	{MaskDown, core.ActionDown},
	{MaskConfirm, core.ActionConfirm},
	{MaskRestart, core.ActionRestart},
}

// MaskOf packs an input frame. Quit is never recorded.
func MaskOf(in core.InputFrame) Mask {
	var m Mask
	for _, ma := range maskActions {
		if in.Has(ma.action) {
			m |= ma.bit
		}
	}
	return m
}

// Frame unpacks the mask into an input frame.
func (m Mask) Frame() core.InputFrame {
	in := core.NewInputFrame()
	for _, ma := range maskActions {
		if m&ma.bit != 0 {
			in.Set(ma.action)
		}
	}
	return in
}

// Span is a run of identical ticks.
type Span struct {
	Mask  Mask   `msgpack:"m"`
	Count uint32 `msgpack:"n"`
}

// Log is a recorded input sequence.
type Log struct {
	Version int    `msgpack:"v"`
	Spans   []Span `msgpack:"s"`
}

// Ticks returns the number of recorded ticks.
func (l Log) Ticks() uint64 {
	var n uint64
	for _, s := range l.Spans {
		n += uint64(s.Count)
	}
	return n
}

// Encode serializes the log with msgpack.
func Encode(l Log) ([]byte, error) {
	l.Version = FormatVersion
	data, err := msgpack.Marshal(&l)
	if err != nil {
		return nil, fmt.Errorf("replay: encode: %w", err)
	}
	return data, nil
}

// ErrVersion is returned when a log was written by an incompatible version.
var ErrVersion = errors.New("replay: unsupported log version")

// Decode parses a log produced by Encode.
func Decode(data []byte) (Log, error) {
	var l Log
	if err := msgpack.Unmarshal(data, &l); err != nil {
		return Log{}, fmt.Errorf("replay: decode: %w", err)
	}
	if l.Version != FormatVersion {
		return Log{}, fmt.Errorf("%w: %d", ErrVersion, l.Version)
	}
	return l, nil
}

// Recorder accumulates input frames into a Log.
type Recorder struct {
	spans []Span
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Record appends one tick of input.
func (r *Recorder) Record(in core.InputFrame) {
	m := MaskOf(in)
	if n := len(r.spans); n > 0 && r.spans[n-1].Mask == m && r.spans[n-1].Count < ^uint32(0) {
		r.spans[n-1].Count++
		return
	}
	r.spans = append(r.spans, Span{Mask: m, Count: 1})
}

// Log returns a copy of what has been recorded so far.
func (r *Recorder) Log() Log {
	spans := make([]Span, len(r.spans))
	copy(spans, r.spans)
	return Log{Version: FormatVersion, Spans: spans}
}

// Ticks returns the number of recorded ticks.
func (r *Recorder) Ticks() uint64 {
	return Log{Spans: r.spans}.Ticks()
}

// Reset discards everything recorded.
func (r *Recorder) Reset() {
	r.spans = r.spans[:0]
}
