package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-racer/internal/config"
	"github.com/vovakirdan/tui-racer/internal/core"
	"github.com/vovakirdan/tui-racer/internal/games/racer"
	"github.com/vovakirdan/tui-racer/internal/registry"
	"github.com/vovakirdan/tui-racer/internal/replay"
	"github.com/vovakirdan/tui-racer/internal/storage"
)

var flagReplayEvents bool

var replayCmd = &cobra.Command{
	Use:   "replay <run-id>",
	Short: "Re-simulate a recorded run",
	Long: `Replay a recorded run headlessly and print the final state.

The run is selected by ID or by a unique ID prefix. It is re-simulated with
the recorded seed, tick rate and settings on the same track definition, so the
result matches the original session tick for tick.

Examples:
  racer replay 3f2a
  racer replay 3f2a9c1e --events`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagReplayEvents, "events", false, "Print every event as it happens")
}

func runReplay(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	run, err := store.LoadRun(args[0])
	store.Close()
	if errors.Is(err, storage.ErrAmbiguousID) {
		fmt.Fprintf(os.Stderr, "Error: run ID prefix %q matches several runs, use more characters\n", args[0])
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading run: %v\n", err)
		os.Exit(1)
	}
	if run == nil {
		fmt.Fprintf(os.Stderr, "Error: no run matches %q\n", args[0])
		fmt.Fprintln(os.Stderr, "Run 'racer runs' to see recorded runs.")
		os.Exit(1)
	}

	game, err := replayGame(run)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	l, err := replay.Decode(run.Inputs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding inputs: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := core.RuntimeConfig{
		ScreenW:  core.DefaultConfig().ScreenW,
		ScreenH:  core.DefaultConfig().ScreenH,
		TickRate: run.TickRate,
		Seed:     run.Seed,
	}

	logger.Info("replay started", "run", run.ID, "track", run.TrackID, "ticks", run.Ticks)
	ticks, err := replay.Run(ctx, game, cfg, l, func(tick uint64, res core.StepResult) {
		if !flagReplayEvents {
			return
		}
		for _, e := range res.Events {
			fmt.Printf("  tick %-8d level %d  %s\n", tick, e.Level, e.Kind)
		}
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Replay stopped after %d ticks: %v\n", ticks, err)
		os.Exit(1)
	}

	snap := game.Snapshot()
	printReplay(run, snap)

	if snap.Stats.Completions != run.Completions || snap.Stats.Crashes != run.Crashes || snap.Stats.Wins != run.Wins {
		logger.Error("replay diverged", "run", run.ID, "recorded", recordedStats(run), "replayed", snap.Stats)
		fmt.Fprintln(os.Stderr, "Error: replayed stats differ from the recording")
		os.Exit(1)
	}
	logger.Info("replay finished", "run", run.ID, "hash", fmt.Sprintf("%016x", snap.Hash()))
}

// replayGame builds a game on the recorded track with the recorded settings.
func replayGame(run *storage.Run) (*racer.Game, error) {
	g, err := registry.Create(run.TrackID)
	if err != nil {
		return nil, fmt.Errorf("run %s: %w (load it with --tracks)", shortID(run.ID), err)
	}
	live, ok := g.(*racer.Game)
	if !ok {
		return nil, fmt.Errorf("track %q cannot be replayed", run.TrackID)
	}

	settings, err := config.ParseRacer(run.Config)
	if err != nil {
		return nil, fmt.Errorf("recorded settings: %w", err)
	}

	game := racer.NewWithConfig(live.Track(), settings)
	if err := replay.CheckTrack(game, run.TrackID, run.TrackHash); err != nil {
		return nil, err
	}
	return game, nil
}

func recordedStats(run *storage.Run) core.RunStats {
	return core.RunStats{
		Ticks:       run.Ticks,
		BestLevel:   run.BestLevel,
		Completions: run.Completions,
		Crashes:     run.Crashes,
		Wins:        run.Wins,
	}
}

func printReplay(run *storage.Run, snap racer.Snapshot) {
	fmt.Printf("Replay of %s on %s (seed %d, %d fps)\n", shortID(run.ID), run.TrackID, run.Seed, run.TickRate)
	fmt.Println()
	fmt.Printf("  Ticks:        %d\n", snap.Tick)
	fmt.Printf("  Level:        %d\n", snap.Level)
	fmt.Printf("  Car:          (%.1f, %.1f) heading %.0f°, velocity %.2f\n", snap.CarX, snap.CarY, snap.Angle, snap.Velocity)
	fmt.Printf("  Best level:   %d\n", snap.Stats.BestLevel)
	fmt.Printf("  Completions:  %d\n", snap.Stats.Completions)
	fmt.Printf("  Crashes:      %d\n", snap.Stats.Crashes)
	fmt.Printf("  Wins:         %d\n", snap.Stats.Wins)
	if snap.Message != "" {
		fmt.Printf("  Message:      %s\n", snap.Message)
	}
	fmt.Printf("  State hash:   %016x\n", snap.Hash())
}
