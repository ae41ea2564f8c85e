package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-racer/internal/core"
	"github.com/vovakirdan/tui-racer/internal/registry"
	"github.com/vovakirdan/tui-racer/internal/replay"
	"github.com/vovakirdan/tui-racer/internal/storage"
)

// Options configures a play session.
type Options struct {
	Store  *storage.Store // Nil disables saving runs
	Logger *log.Logger    // Nil discards log output
	Record bool           // Record input for replay
}

// Model is the Bubble Tea model for a race.
type Model struct {
	game      registry.Game
	screen    *core.Screen
	store     *storage.Store
	logger    *log.Logger
	config    core.RuntimeConfig
	keys      KeyMap
	mapper    *KeyMapper
	hold      *KeyHold
	help      help.Model
	recorder  *replay.Recorder
	gameState core.GameState
	quitting  bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	var recorder *replay.Recorder
	if opts.Record {
		recorder = replay.NewRecorder()
	}

	keys := DefaultKeyMap()
	return Model{
		game:     game,
		screen:   core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-1, 0)),
		store:    opts.Store,
		logger:   logger.With("track", game.ID()),
		config:   cfg,
		keys:     keys,
		mapper:   NewKeyMapper(keys),
		hold:     NewKeyHold(DefaultHoldWindow, cfg.TickRate),
		help:     help.New(),
		recorder: recorder,
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	if cr, ok := m.game.(interface{ ConfigErr() error }); ok {
		if err := cr.ConfigErr(); err != nil {
			m.logger.Error("config not loaded, using defaults", "err", err)
		}
	}
	m.logger.Info("race started", "seed", m.config.Seed, "fps", m.config.TickRate)

	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.mapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	if key.Matches(msg, m.keys.Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	m.hold.Press(action)
	return m, nil
}

// handleResize processes window resize events. The simulation works in track
// units, so only the view changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-1, 0))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	in := m.hold.Frame()
	if m.recorder != nil {
		m.recorder.Record(in)
	}

	result := m.game.Step(in)
	m.gameState = result.State
	m.logEvents(result.Events)

	return m, tickCmd(m.config.TickRate)
}

func (m Model) logEvents(events []core.Event) {
	for _, e := range events {
		switch e.Kind {
		case core.EventBorderHit, core.EventFinishRebound:
			m.logger.Debug(e.Kind.String(), "level", e.Level)
		case core.EventCrash:
			m.logger.Warn("crashed into obstacle", "level", e.Level)
		default:
			m.logger.Info(e.Kind.String(), "level", e.Level)
		}
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "err", err)
		return
	}
	dir := filepath.Join(home, ".racer", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "path", path, "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// SaveRun stores the recorded session. It returns the run ID, or "" when
// there was nothing to save.
func (m Model) SaveRun() (string, error) {
	if m.recorder == nil || m.store == nil || m.recorder.Ticks() == 0 {
		return "", nil
	}
	rec, ok := m.game.(registry.Recordable)
	if !ok {
		return "", nil
	}

	settings, err := rec.SettingsYAML()
	if err != nil {
		return "", fmt.Errorf("encoding settings: %w", err)
	}
	inputs, err := replay.Encode(m.recorder.Log())
	if err != nil {
		return "", err
	}

	stats := rec.Stats()
	id, err := m.store.SaveRun(&storage.Run{
		TrackID:     rec.TrackID(),
		TrackHash:   rec.TrackFingerprint(),
		Seed:        m.config.Seed,
		TickRate:    m.config.TickRate,
		Config:      settings,
		Inputs:      inputs,
		Ticks:       m.recorder.Ticks(),
		BestLevel:   stats.BestLevel,
		Completions: stats.Completions,
		Crashes:     stats.Crashes,
		Wins:        stats.Wins,
	})
	if err != nil {
		return "", err
	}

	m.logger.Info("run saved", "run", id, "ticks", m.recorder.Ticks(), "wins", stats.Wins)
	return id, nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + footerStyle.Render(m.help.View(m.keys))
}

// Run plays game until the player quits, then saves the recorded run.
// Returns the saved run ID, or "" if nothing was saved.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) (string, error) {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(model, tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return "", err
	}

	m, ok := final.(Model)
	if !ok {
		return "", nil
	}
	return m.SaveRun()
}
