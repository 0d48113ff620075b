package main

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"silencecut/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var clearRuns bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent trim runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if _, err := os.Stat(cfg.History.Path); os.IsNotExist(err) {
				if !cfg.History.Enabled {
					fmt.Fprintln(out, "Run history is disabled")
					return nil
				}
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}

			store, err := history.Open(cmd.Context(), cfg.History.Path)
			if err != nil {
				return err
			}
			defer store.Close()

			if clearRuns {
				removed, err := store.Clear(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Removed %d run(s) from history\n", removed)
				return nil
			}

			runs, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}

			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					humanize.Time(run.StartedAt),
					statusLabel(run.Status),
					run.Input,
					removedLabel(run),
					numbers.Sprintf("%d", run.SegmentCount),
					run.Elapsed().Round(100 * time.Millisecond).String(),
				})
			}
			fmt.Fprintln(out, renderTable(historyColumns, rows))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", history.DefaultLimit, "Maximum number of runs to show")
	cmd.Flags().BoolVar(&clearRuns, "clear", false, "Delete all recorded runs")
	return cmd
}

var historyColumns = []column{
	{title: "Started"},
	{title: "Status"},
	{title: "Input"},
	{title: "Removed", numeric: true},
	{title: "Segments", numeric: true},
	{title: "Elapsed", numeric: true},
}

func removedLabel(run history.Run) string {
	if run.Status != history.StatusSuccess {
		return "-"
	}
	return formatSeconds(run.RemovedSeconds)
}
