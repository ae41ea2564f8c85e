// racer is a top-down racing game for the terminal.
//
// Usage:
//
//	racer list               - List available tracks
//	racer play <track>       - Race on a track
//	racer runs               - Show recorded runs
//	racer replay <run-id>    - Re-simulate a recorded run
//	racer verify [track]     - Replay recent runs and check they reproduce
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible obstacles
//	--db <path>          - Set database path (default: ~/.racer/runs.db)
//	--log-file <path>    - Set log file (default: ~/.racer/racer.log)
//	--log-level <level>  - debug, info, warn or error
//	--tracks <dir>       - Load extra tracks from a directory
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-racer/internal/games/racer"
	"github.com/vovakirdan/tui-racer/internal/track"
)

var (
	// Global flags
	flagFPS       int
	flagSeed      int64
	flagDBPath    string
	flagLogFile   string
	flagLogLevel  string
	flagTracksDir string
)

// logger is set up before any subcommand runs.
var logger = log.New(io.Discard)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "racer",
	Short: "Racer - drive a top-down car around terminal race tracks",
	Long: `Racer is a top-down racing game played in the terminal.
Steer around the obstacles and cross the finish line to clear a level.

Available commands:
  list     - Show all available tracks
  play     - Race on a track
  runs     - List recorded runs
  replay   - Re-simulate a recorded run
  verify   - Replay recent runs and check they reproduce

Examples:
  racer list
  racer play classic
  racer play hairpin --difficulty hard
  racer runs
  racer replay 3f2a
  racer verify classic`,
	PersistentPreRunE: setup,
	SilenceUsage:      true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.racer/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.racer/racer.log", "Path to log file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagTracksDir, "tracks", "", "Directory with extra track files")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(replayCmd)
}

// setup opens the log file and registers tracks from --tracks.
func setup(cmd *cobra.Command, args []string) error {
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}

	if flagLogFile != "" {
		path, err := expandHome(flagLogFile)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		logger = log.NewWithOptions(f, log.Options{
			ReportTimestamp: true,
			Prefix:          "racer",
			Level:           level,
		})
	}

	if flagTracksDir != "" {
		tracks, skipped, err := track.NewLoader(flagTracksDir).LoadAll()
		if err != nil {
			return err
		}
		for _, e := range skipped {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", e)
			logger.Warn("track skipped", "err", e)
		}
		n := racer.RegisterTracks(tracks)
		logger.Debug("tracks loaded", "dir", flagTracksDir, "found", len(tracks), "registered", n)
	}
	return nil
}

// expandHome expands a leading ~ to the user's home directory.
func expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
