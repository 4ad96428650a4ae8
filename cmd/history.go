package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"PaperDigest/config"
	"PaperDigest/internal/models"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(config.Get())
		if err != nil {
			return err
		}
		defer app.Close()

		runs, err := app.History(historyLimit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded yet.")
			return nil
		}
		printRuns(cmd.OutOrStdout(), runs)
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of runs to show (0 for all)")
	rootCmd.AddCommand(historyCmd)
}

var historyColumns = []struct {
	title string
	width int
}{
	{"ID", 8},
	{"STARTED", 19},
	{"STATUS", 6},
	{"QUERIES", 7},
	{"FAILED", 6},
	{"FETCHED", 7},
	{"KEPT", 5},
	{"OUTPUT", 40},
}

func printRuns(w io.Writer, runs []*models.Run) {
	header := make([]string, len(historyColumns))
	for i, c := range historyColumns {
		header[i] = c.title
	}
	fmt.Fprintln(w, formatRow(header))

	for _, r := range runs {
		status := "ok"
		if r.FinishedAt.IsZero() {
			status = "failed"
		}
		fmt.Fprintln(w, formatRow([]string{
			r.ID,
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			status,
			fmt.Sprint(r.Queries),
			fmt.Sprint(r.FailedDocs),
			fmt.Sprint(r.Fetched),
			fmt.Sprint(r.Kept),
			r.OutputPath,
		}))
	}
}

// formatRow 按显示宽度截断并补齐，路径里可能有中文
func formatRow(cells []string) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		width := historyColumns[i].width
		cell = runewidth.Truncate(cell, width, "…")
		if i < len(cells)-1 {
			cell = runewidth.FillRight(cell, width)
		}
		parts[i] = cell
	}
	return strings.Join(parts, "  ")
}
