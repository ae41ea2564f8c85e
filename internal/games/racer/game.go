// Package racer implements a top-down racing game: steer a car around a
// track, avoid obstacles and cross the finish line to clear each level.
package racer

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-racer/internal/config"
	"github.com/vovakirdan/tui-racer/internal/core"
	"github.com/vovakirdan/tui-racer/internal/registry"
	"github.com/vovakirdan/tui-racer/internal/track"
)

// Messages shown while the game is frozen.
const (
	MsgLost      = "You LOST the game!"
	MsgNextLevel = "Next level!"
	MsgWon       = "You WON the game!"
)

// Visual elements
const (
	WallChar     = '█'
	FinishChar   = '▒'
	ObstacleChar = 'o'
)

// carGlyphs maps the heading, in 45° steps counter-clockwise from up, to an arrow.
var carGlyphs = [8]rune{'↑', '↖', '←', '↙', '↓', '↘', '→', '↗'}

// pause freezes the simulation for a number of ticks while showing a message.
type pause struct {
	message string
	ticks   int
}

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names fall back to
// the config as loaded.
func SetDifficultyPreset(preset string) {
	if p, ok := config.ParsePreset(preset); ok && preset != "" {
		difficultyPreset = p
		return
	}
	difficultyPreset = ""
}

// Game implements the racer on a single track.
type Game struct {
	trk     *track.Track
	cfg     config.RacerConfig
	fixed   bool // cfg was supplied by the caller and is never reloaded
	cfgErr  error
	runtime core.RuntimeConfig
	sim     *SimulationContext

	pauses []pause
	tick   uint64
	stats  core.RunStats
}

// New creates a game on trk. The config is loaded on Reset.
func New(trk *track.Track) *Game {
	return &Game{trk: trk}
}

// NewWithConfig creates a game on trk that always uses cfg.
func NewWithConfig(trk *track.Track, cfg config.RacerConfig) *Game {
	return &Game{trk: trk, cfg: cfg, fixed: true}
}

func init() {
	tracks, err := track.Builtin()
	if err != nil {
		panic(fmt.Sprintf("racer: %v", err))
	}
	RegisterTracks(tracks)
}

// RegisterTracks registers one game per track. Tracks whose ID is already
// registered are skipped. Returns the number of games added.
func RegisterTracks(tracks []*track.Track) int {
	added := 0
	for _, trk := range tracks {
		if registry.Exists(trk.ID) {
			continue
		}
		t := trk
		registry.Register(t.ID, func() registry.Game {
			return New(t)
		})
		added++
	}
	return added
}

// ID returns the track ID.
func (g *Game) ID() string {
	return g.trk.ID
}

// Title returns the track name.
func (g *Game) Title() string {
	return g.trk.Name
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	if !g.fixed {
		cfg, err := config.LoadRacer(configPath)
		g.cfgErr = err
		if err != nil {
			cfg = config.DefaultRacerConfig()
		}
		if difficultyPreset != "" {
			config.ApplyRacerPreset(&cfg, difficultyPreset)
		}
		g.cfg = cfg
	}

	g.sim = NewSimulation(g.trk, g.cfg, runtime.Seed)
	g.pauses = g.pauses[:0]
	g.tick = 0
	g.stats = core.RunStats{BestLevel: 1}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	g.stats.Ticks = g.tick

	if in.Has(core.ActionRestart) {
		g.pauses = g.pauses[:0]
		g.sim.Restart()
		return core.StepResult{
			State:  g.State(),
			Events: []core.Event{{Kind: core.EventRestart, Level: 1}},
		}
	}

	// Frozen: count down the current message, ignore driving input
	if len(g.pauses) > 0 {
		g.pauses[0].ticks--
		if g.pauses[0].ticks <= 0 {
			g.pauses = g.pauses[1:]
		}
		return core.StepResult{State: g.State()}
	}

	events := g.sim.Step(IntentsFrom(in))
	for _, e := range events {
		g.apply(e)
	}

	return core.StepResult{State: g.State(), Events: events}
}

// apply updates stats and queues the freeze that follows an event.
func (g *Game) apply(e core.Event) {
	gp := g.cfg.Gameplay
	switch e.Kind {
	case core.EventCrash:
		g.stats.Crashes++
		g.freeze(MsgLost, gp.LossPauseMs)
	case core.EventLevelComplete:
		g.stats.Completions++
		next := e.Level + 1
		g.stats.BestLevel = max(g.stats.BestLevel, min(next, gp.TotalLevels))
		msg := ""
		if next <= gp.TotalLevels {
			msg = MsgNextLevel
		}
		g.freeze(msg, gp.LevelPauseMs)
	case core.EventWin:
		g.stats.Wins++
		g.freeze(MsgWon, gp.WinPauseMs)
	}
}

func (g *Game) freeze(message string, ms int) {
	ticks := ms * g.tickRate() / 1000
	if ticks <= 0 {
		return
	}
	g.pauses = append(g.pauses, pause{message: message, ticks: ticks})
}

func (g *Game) tickRate() int {
	if g.runtime.TickRate <= 0 {
		return core.DefaultConfig().TickRate
	}
	return g.runtime.TickRate
}

// Message returns the text currently shown over the track, if any.
func (g *Game) Message() string {
	if len(g.pauses) > 0 {
		return g.pauses[0].message
	}
	if !g.sim.State.Started {
		return fmt.Sprintf("Press any key to start level %d!", g.sim.State.Level)
	}
	return ""
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	w := dst.Width()
	fieldH := dst.Height() - 1 // Last row is the HUD
	if w <= 0 || fieldH <= 0 {
		return
	}
	sx := float64(g.trk.Width) / float64(w)
	sy := float64(g.trk.Height) / float64(fieldH)
	toCell := func(p core.Vec2) (int, int) {
		return int(math.Floor(p.X / sx)), int(math.Floor(p.Y / sy))
	}

	// Walls, sampled at cell centres
	for cy := 0; cy < fieldH; cy++ {
		for cx := 0; cx < w; cx++ {
			p := core.V((float64(cx)+0.5)*sx, (float64(cy)+0.5)*sy)
			if g.trk.IsWall(p) {
				dst.SetColored(cx, cy, WallChar, core.ColorWall)
			}
		}
	}

	// Finish line, at least one row tall whatever the scale
	fr := g.trk.FinishRect()
	x0, y0 := toCell(core.V(float64(fr.X), float64(fr.Y)))
	x1 := int(math.Ceil(float64(fr.Right()) / sx))
	y1 := max(y0+1, int(math.Ceil(float64(fr.Bottom())/sy)))
	for cy := y0; cy < y1; cy++ {
		for cx := x0; cx < x1; cx++ {
			dst.SetColored(cx, cy, FinishChar, core.ColorFinish)
		}
	}

	for _, o := range g.sim.Obstacles {
		cx, cy := toCell(o.Position)
		dst.SetColored(cx, cy, ObstacleChar, core.ColorObstacle)
	}

	car := g.sim.Car
	cx, cy := toCell(car.Position.Add(core.V(float64(g.cfg.Car.Width)/2, float64(g.cfg.Car.Height)/2)))
	dst.SetColored(cx, cy, carGlyph(car.Angle), core.ColorCar)

	// HUD
	hud := fmt.Sprintf(" Level %d   Vel: %.1fpx/s", g.sim.State.Level, car.Velocity)
	dst.DrawText(0, fieldH, hud)
	name := g.trk.Name + " "
	dst.DrawText(w-len([]rune(name)), fieldH, name)

	if msg := g.Message(); msg != "" {
		subtitle := ""
		if !g.sim.State.Started && len(g.pauses) == 0 {
			subtitle = "Arrows drive  |  R restarts"
		}
		drawCenteredMessage(dst, msg, subtitle)
	}
}

func carGlyph(angle float64) rune {
	a := math.Mod(angle, 360)
	if a < 0 {
		a += 360
	}
	return carGlyphs[int(math.Round(a/45))%8]
}

func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	titleW := len([]rune(title))
	subW := len([]rune(subtitle))

	boxW := max(titleW, subW) + 4
	boxH := 3
	if subtitle != "" {
		boxH = 5
	}
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))
	dst.DrawText(boxX+(boxW-titleW)/2, boxY+1, title)
	if subtitle != "" {
		dst.DrawText(boxX+(boxW-subW)/2, boxY+3, subtitle)
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Level:   g.sim.State.Level,
		Started: g.sim.State.Started,
		Frozen:  len(g.pauses) > 0,
	}
}

// ConfigErr returns the error from loading the config on the last Reset.
// When it is non-nil the game is running on the built-in defaults.
func (g *Game) ConfigErr() error {
	return g.cfgErr
}

// Config returns the settings in use.
func (g *Game) Config() config.RacerConfig {
	return g.cfg
}

// Simulation exposes the underlying simulation.
func (g *Game) Simulation() *SimulationContext {
	return g.sim
}

// Track returns the track being raced.
func (g *Game) Track() *track.Track {
	return g.trk
}

// TrackID returns the ID of the track being raced.
func (g *Game) TrackID() string {
	return g.trk.ID
}

// TrackFingerprint returns the fingerprint of the track definition.
func (g *Game) TrackFingerprint() uint64 {
	return g.trk.Fingerprint
}

// SettingsYAML returns the settings in use, encoded for recording.
func (g *Game) SettingsYAML() ([]byte, error) {
	return config.MarshalRacer(g.cfg)
}

// Stats returns the session statistics so far.
func (g *Game) Stats() core.RunStats {
	return g.stats
}
