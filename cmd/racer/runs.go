package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-racer/internal/storage"
)

var flagRunsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs [track]",
	Short: "List recorded runs",
	Long: `Display the most recent recorded runs, optionally for one track.

Examples:
  racer runs
  racer runs classic --limit 5`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 20, "Maximum number of runs to show")
}

func runRuns(cmd *cobra.Command, args []string) {
	trackID := ""
	if len(args) == 1 {
		trackID = args[0]
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	runs, err := store.RecentRuns(trackID, flagRunsLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'racer play <track>' to record one.")
		return
	}

	fmt.Println(renderRunsTable(runs))
}

// renderRunsTable lays the runs out with the bubbles table, unfocused.
func renderRunsTable(runs []storage.Run) string {
	columns := []table.Column{
		{Title: "ID", Width: 8},
		{Title: "Track", Width: 12},
		{Title: "Best", Width: 4},
		{Title: "Laps", Width: 4},
		{Title: "Crashes", Width: 7},
		{Title: "Wins", Width: 4},
		{Title: "Time", Width: 8},
		{Title: "Date", Width: 16},
	}

	rows := make([]table.Row, 0, len(runs))
	for _, r := range runs {
		seconds := 0.0
		if r.TickRate > 0 {
			seconds = float64(r.Ticks) / float64(r.TickRate)
		}
		rows = append(rows, table.Row{
			shortID(r.ID),
			r.TrackID,
			fmt.Sprintf("%d", r.BestLevel),
			fmt.Sprintf("%d", r.Completions),
			fmt.Sprintf("%d", r.Crashes),
			fmt.Sprintf("%d", r.Wins),
			fmt.Sprintf("%.1fs", seconds),
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
		})
	}

	styles := table.DefaultStyles()
	styles.Selected = lipgloss.NewStyle()

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(len(rows)+1),
		table.WithFocused(false),
		table.WithStyles(styles),
	)
	return t.View()
}
