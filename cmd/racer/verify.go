package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-racer/internal/core"
	"github.com/vovakirdan/tui-racer/internal/replay"
	"github.com/vovakirdan/tui-racer/internal/storage"
)

var (
	flagVerifyLimit   int
	flagVerifyWorkers int
)

var verifyCmd = &cobra.Command{
	Use:   "verify [track]",
	Short: "Replay recent runs and check they reproduce",
	Long: `Re-simulate the most recent recorded runs in parallel and compare the
replayed statistics with the recorded ones. Runs on changed or missing tracks
are reported as failures.

Examples:
  racer verify
  racer verify classic --limit 50 --workers 4`,
	Args: cobra.MaximumNArgs(1),
	Run:  runVerify,
}

func init() {
	verifyCmd.Flags().IntVar(&flagVerifyLimit, "limit", 20, "Number of recent runs to verify")
	verifyCmd.Flags().IntVar(&flagVerifyWorkers, "workers", runtime.NumCPU(), "Runs replayed at once")
	rootCmd.AddCommand(verifyCmd)
}

// verifyResult is the outcome of replaying one run.
type verifyResult struct {
	run   storage.Run
	stats core.RunStats
	err   error
}

func runVerify(cmd *cobra.Command, args []string) {
	trackID := ""
	if len(args) == 1 {
		trackID = args[0]
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	runs, err := store.RecentRuns(trackID, flagVerifyLimit)
	store.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := verifyRuns(ctx, runs, flagVerifyWorkers)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Verification interrupted: %v\n", err)
		os.Exit(1)
	}

	failed := 0
	for _, r := range results {
		status := "ok"
		if r.err != nil {
			status = "FAIL: " + r.err.Error()
			failed++
			logger.Error("run does not reproduce", "run", r.run.ID, "err", r.err)
		}
		fmt.Printf("  %s  %-12s  %s\n", shortID(r.run.ID), r.run.TrackID, status)
	}

	fmt.Println()
	fmt.Printf("%d of %d runs reproduced.\n", len(results)-failed, len(results))
	if failed > 0 {
		os.Exit(1)
	}
}

// verifyRuns replays runs with at most workers in flight. Per-run failures are
// reported in the results; only cancellation aborts the whole batch.
func verifyRuns(ctx context.Context, runs []storage.Run, workers int) ([]verifyResult, error) {
	results := make([]verifyResult, len(runs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for i := range runs {
		g.Go(func() error {
			stats, err := verifyRun(ctx, &runs[i])
			if ctx.Err() != nil {
				return ctx.Err()
			}
			results[i] = verifyResult{run: runs[i], stats: stats, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func verifyRun(ctx context.Context, run *storage.Run) (core.RunStats, error) {
	game, err := replayGame(run)
	if err != nil {
		return core.RunStats{}, err
	}
	l, err := replay.Decode(run.Inputs)
	if err != nil {
		return core.RunStats{}, err
	}

	cfg := core.RuntimeConfig{
		ScreenW:  core.DefaultConfig().ScreenW,
		ScreenH:  core.DefaultConfig().ScreenH,
		TickRate: run.TickRate,
		Seed:     run.Seed,
	}
	if _, err := replay.Run(ctx, game, cfg, l, nil); err != nil {
		return core.RunStats{}, err
	}

	stats := game.Stats()
	if stats.Completions != run.Completions || stats.Crashes != run.Crashes || stats.Wins != run.Wins {
		return stats, fmt.Errorf("replayed %d laps, %d crashes, %d wins; recorded %d, %d, %d",
			stats.Completions, stats.Crashes, stats.Wins, run.Completions, run.Crashes, run.Wins)
	}
	return stats, nil
}
