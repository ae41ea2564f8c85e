package track

import (
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-racer/internal/core"
)

// WallChar marks a wall cell in a track layout. Any other character is open track.
const WallChar = '#'

// Track is a fully built race track. Masks are in track units.
type Track struct {
	ID     string
	Name   string
	Width  int // In track units
	Height int
	Cell   int // Track units per layout character
	Layout []string

	Start        core.Vec2 // Car start position (top-left of the unrotated car)
	Border       *Mask     // Wall occupancy over the whole track
	Finish       *Mask     // Finish line occupancy in its own coordinates
	FinishOrigin core.Vec2 // Where the finish mask's top-left sits on the track
	SpawnMin     core.Vec2 // Obstacle spawn bounds, min inclusive
	SpawnMax     core.Vec2 // Obstacle spawn bounds, max exclusive

	// Fingerprint is the xxhash of the source definition. Replays refuse to
	// run against a track whose fingerprint differs from the recorded one.
	Fingerprint uint64
	FilePath    string
}

// yamlTrack is the on-disk shape of a track file.
type yamlTrack struct {
	ID     string     `yaml:"id"`
	Name   string     `yaml:"name"`
	Cell   int        `yaml:"cell"`
	Start  yamlPoint  `yaml:"start"`
	Finish yamlRect   `yaml:"finish"`
	Spawn  yamlBounds `yaml:"spawn"`
	Layout []string   `yaml:"layout"`
}

type yamlPoint struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type yamlRect struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	W int `yaml:"w"`
	H int `yaml:"h"`
}

type yamlBounds struct {
	Min yamlPoint `yaml:"min"`
	Max yamlPoint `yaml:"max"`
}

// Parse builds a track from its YAML definition and validates it.
func Parse(data []byte) (*Track, error) {
	var yt yamlTrack
	if err := yaml.Unmarshal(data, &yt); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}
	t, err := build(yt)
	if err != nil {
		return nil, err
	}
	t.Fingerprint = xxhash.Sum64(data)
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("track %q: %w", t.ID, err)
	}
	return t, nil
}

func build(yt yamlTrack) (*Track, error) {
	if yt.ID == "" {
		return nil, errors.New("track id is required")
	}
	if yt.Cell <= 0 {
		return nil, fmt.Errorf("track %q: cell must be positive, got %d", yt.ID, yt.Cell)
	}
	if len(yt.Layout) == 0 {
		return nil, fmt.Errorf("track %q: layout is empty", yt.ID)
	}

	cols := len([]rune(yt.Layout[0]))
	for i, row := range yt.Layout {
		if n := len([]rune(row)); n != cols {
			return nil, fmt.Errorf("track %q: layout row %d has %d columns, expected %d", yt.ID, i, n, cols)
		}
	}

	name := yt.Name
	if name == "" {
		name = yt.ID
	}

	t := &Track{
		ID:     yt.ID,
		Name:   name,
		Width:  cols * yt.Cell,
		Height: len(yt.Layout) * yt.Cell,
		Cell:   yt.Cell,
		Layout: yt.Layout,
		Start:  core.V(yt.Start.X, yt.Start.Y),
	}

	t.Border = NewMask(t.Width, t.Height)
	for row, line := range yt.Layout {
		col := 0
		for _, ch := range line {
			if ch == WallChar {
				t.Border.FillRect(col*yt.Cell, row*yt.Cell, yt.Cell, yt.Cell)
			}
			col++
		}
	}

	t.Finish = NewMask(yt.Finish.W, yt.Finish.H)
	t.Finish.FillRect(0, 0, yt.Finish.W, yt.Finish.H)
	t.FinishOrigin = core.V(float64(yt.Finish.X), float64(yt.Finish.Y))

	t.SpawnMin = core.V(yt.Spawn.Min.X, yt.Spawn.Min.Y)
	t.SpawnMax = core.V(yt.Spawn.Max.X, yt.Spawn.Max.Y)
	if t.SpawnMax == (core.Vec2{}) {
		t.SpawnMax = core.V(float64(t.Width), float64(t.Height))
	}
	return t, nil
}

// Validate checks that the track geometry is self-consistent.
func (t *Track) Validate() error {
	if !t.inside(t.Start) {
		return fmt.Errorf("start %v is outside the %dx%d track", t.Start, t.Width, t.Height)
	}
	if t.IsWall(t.Start) {
		return fmt.Errorf("start %v is inside a wall", t.Start)
	}
	if t.Finish.Width() <= 0 || t.Finish.Height() <= 0 {
		return errors.New("finish line must have a positive size")
	}
	fr := t.FinishRect()
	if fr.X < 0 || fr.Y < 0 || fr.Right() > t.Width || fr.Bottom() > t.Height {
		return fmt.Errorf("finish %+v is outside the %dx%d track", fr, t.Width, t.Height)
	}
	if t.SpawnMin.X >= t.SpawnMax.X || t.SpawnMin.Y >= t.SpawnMax.Y {
		return fmt.Errorf("spawn bounds %v..%v are empty", t.SpawnMin, t.SpawnMax)
	}
	if !t.inside(t.SpawnMin) || t.SpawnMax.X > float64(t.Width) || t.SpawnMax.Y > float64(t.Height) {
		return fmt.Errorf("spawn bounds %v..%v exceed the track", t.SpawnMin, t.SpawnMax)
	}
	return nil
}

// CheckStart verifies that a car with the given silhouette fits at the start
// pose without touching a wall or the finish line.
func (t *Track) CheckStart(s *Silhouette) error {
	fp, ox, oy := s.Footprint(t.Start, 0)
	if p, hit := t.Border.Overlap(fp, ox, oy); hit {
		return fmt.Errorf("track %q: car at start touches a wall at %v", t.ID, p)
	}
	dx := ox - int(t.FinishOrigin.X)
	dy := oy - int(t.FinishOrigin.Y)
	if _, hit := t.Finish.Overlap(fp, dx, dy); hit {
		return fmt.Errorf("track %q: car at start overlaps the finish line", t.ID)
	}
	return nil
}

// IsWall reports whether the point lies on a wall.
func (t *Track) IsWall(p core.Vec2) bool {
	return t.Border.Get(int(p.X), int(p.Y))
}

// OnFinish reports whether the point lies on the finish line.
func (t *Track) OnFinish(p core.Vec2) bool {
	return t.Finish.Get(int(p.X-t.FinishOrigin.X), int(p.Y-t.FinishOrigin.Y))
}

// FinishRect returns the finish line area in track units.
func (t *Track) FinishRect() core.Rect {
	return core.NewRect(int(t.FinishOrigin.X), int(t.FinishOrigin.Y), t.Finish.Width(), t.Finish.Height())
}

// FingerprintHex returns the fingerprint as a fixed-width hex string.
func (t *Track) FingerprintHex() string {
	return fmt.Sprintf("%016x", t.Fingerprint)
}

func (t *Track) inside(p core.Vec2) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < float64(t.Width) && p.Y < float64(t.Height)
}
