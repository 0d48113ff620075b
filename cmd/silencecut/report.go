package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"silencecut/internal/history"
	"silencecut/internal/plan"
	"silencecut/internal/trim"
)

var numbers = message.NewPrinter(language.English)

func formatSeconds(seconds float64) string {
	return numbers.Sprintf("%.2fs", seconds)
}

func formatSecondsWithMinutes(seconds float64) string {
	return numbers.Sprintf("%.2fs (%.2f min)", seconds, seconds/60)
}

func formatBytes(size int64) string {
	if size <= 0 {
		return "-"
	}
	return humanize.Bytes(uint64(size))
}

func statusLabel(status history.Status) string {
	text := strings.ReplaceAll(string(status), "_", " ")
	if text == "" {
		return "-"
	}
	return cases.Title(language.English).String(text)
}

func statsRows(stats plan.Stats) [][]string {
	return [][]string{
		{"Original duration", formatSecondsWithMinutes(stats.OriginalSeconds)},
		{"Silent segments", numbers.Sprintf("%d", stats.SilenceCount)},
		{"Segments to keep", numbers.Sprintf("%d", stats.SegmentCount)},
		{"Time removed", numbers.Sprintf("%.2fs (%.1f%%)", stats.RemovedSeconds, stats.RemovedPercent)},
		{"Final duration", formatSecondsWithMinutes(stats.KeptSeconds)},
	}
}

func renderNoSilence(out io.Writer, result trim.Result) {
	fmt.Fprintf(out, "No silence detected in %s; nothing to trim.\n", result.Input)
	fmt.Fprintln(out, "Try a higher threshold (e.g. -t -25) or a shorter minimum duration (e.g. -d 0.3).")
}

func renderTrimReport(out io.Writer, result trim.Result) {
	if result.Status == history.StatusNoSilence {
		renderNoSilence(out, result)
		return
	}

	rows := statsRows(result.Stats)
	if result.Assembly.ExtractFallbacks > 0 {
		rows = append(rows, []string{"Re-encoded segments", numbers.Sprintf("%d", result.Assembly.ExtractFallbacks)})
	}
	if result.Assembly.ConcatFallback {
		rows = append(rows, []string{"Re-encoded output", "yes"})
	}
	rows = append(rows,
		[]string{"Input", fmt.Sprintf("%s (%s)", result.Input, formatBytes(result.InputBytes))},
		[]string{"Output", fmt.Sprintf("%s (%s)", result.Output, formatBytes(result.OutputBytes))},
		[]string{"Elapsed", result.Elapsed().Round(100 * time.Millisecond).String()},
	)
	fmt.Fprintln(out, renderTable(statsColumns, rows))
}

func renderSegments(out io.Writer, segments []plan.Segment) {
	rows := make([][]string, 0, len(segments))
	for i, seg := range segments {
		rows = append(rows, []string{
			numbers.Sprintf("%d", i+1),
			formatSeconds(seg.Start),
			formatSeconds(seg.End),
			formatSeconds(seg.Duration()),
		})
	}
	fmt.Fprintln(out, renderTable([]column{
		{title: "#", numeric: true},
		{title: "Start", numeric: true},
		{title: "End", numeric: true},
		{title: "Duration", numeric: true},
	}, rows))
}
