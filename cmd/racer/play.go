package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-racer/internal/config"
	"github.com/vovakirdan/tui-racer/internal/core"
	"github.com/vovakirdan/tui-racer/internal/games/racer"
	"github.com/vovakirdan/tui-racer/internal/platform/tui"
	"github.com/vovakirdan/tui-racer/internal/registry"
	"github.com/vovakirdan/tui-racer/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagNoRecord   bool
)

var playCmd = &cobra.Command{
	Use:   "play <track>",
	Short: "Race on a track",
	Long: `Start racing on the specified track.

Controls:
  Left/Right, A/D  - Steer
  Up/W             - Throttle
  Down/S           - Reverse
  Any key          - Start the level
  R                - Restart from level 1
  Ctrl+S           - Screenshot
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Fewer obstacles, tighter hit radius, quicker steering
  normal - Settings as configured
  hard   - More obstacles, a faster car, obstacles reshuffle after a crash

The session is recorded and can be replayed with 'racer replay'.

Examples:
  racer play classic
  racer play hairpin --difficulty easy
  racer play classic --config ./my-racer.yaml --seed 42`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	playCmd.Flags().BoolVar(&flagNoRecord, "no-record", false, "Do not save the run")
}

func runPlay(cmd *cobra.Command, args []string) {
	trackID := args[0]

	if !registry.Exists(trackID) {
		fmt.Fprintf(os.Stderr, "Error: unknown track %q\n", trackID)
		fmt.Fprintln(os.Stderr, "Run 'racer list' to see available tracks.")
		os.Exit(1)
	}

	// Fail early on a broken config instead of silently racing on defaults
	if _, err := config.LoadRacer(flagConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if _, ok := config.ParsePreset(flagDifficulty); !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown difficulty %q (use easy, normal or hard)\n", flagDifficulty)
		os.Exit(1)
	}
	racer.SetConfigPath(flagConfig)
	racer.SetDifficultyPreset(flagDifficulty)

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	game, err := registry.Create(trackID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	opts := tui.Options{Logger: logger, Record: !flagNoRecord}
	if opts.Record {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
			logger.Warn("recording disabled", "err", err)
		} else {
			opts.Store = store
		}
	}

	runID, runErr := tui.Run(game, cfg, opts)

	// Close store before potential exit
	if opts.Store != nil {
		opts.Store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
	if runID != "" {
		fmt.Printf("Run saved as %s. Replay it with 'racer replay %s'.\n", runID, shortID(runID))
	}
}

// shortID returns the first block of a run ID, enough to select it by prefix.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
