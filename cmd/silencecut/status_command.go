package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"silencecut/internal/config"
	"silencecut/internal/preflight"
	"silencecut/internal/staging"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report ffmpeg availability, directories and leftover workspaces",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			report := &statusReport{colorize: isTerminal(out)}

			report.section("Dependencies")
			for _, result := range preflight.RunAll(cmd.Context(), cfg, "") {
				kind := statusOK
				if !result.Passed {
					kind = statusError
				}
				report.item(result.Name, kind, result.Detail)
			}
			probe := preflight.ProbeFFmpeg(cmd.Context(), cfg.FFmpegBinary())
			probeKind := statusOK
			switch {
			case !probe.Available:
				probeKind = statusError
			case !probe.SilenceDetect:
				probeKind = statusWarn
			}
			report.item("silencedetect", probeKind, probe.Detail())

			report.section("Settings")
			addSettings(report, cfg, configLabel(ctx.configPath, ctx.configExists))

			report.section("Workspaces")
			addWorkspaces(report, cfg.WorkRoot())

			fmt.Fprintln(out, report.String())
			return nil
		},
	}
}

func configLabel(path string, exists bool) string {
	if !exists {
		return "defaults (no file at " + path + ")"
	}
	return path
}

func addSettings(report *statusReport, cfg *config.Config, source string) {
	report.item("Config", statusInfo, source)
	report.item("Detection", statusInfo, fmt.Sprintf("%gdB, min %gs, padding %gs",
		cfg.Detection.ThresholdDB, cfg.Detection.MinSilenceSeconds, cfg.Detection.PaddingSeconds))
	report.item("Work directory", statusInfo, cfg.WorkRoot())
	historyDetail := "disabled"
	if cfg.History.Enabled {
		historyDetail = cfg.History.Path
	}
	report.item("History", statusInfo, historyDetail)
	if cfg.Logging.File != "" {
		report.item("Log file", statusInfo, cfg.Logging.File)
	}
}

func addWorkspaces(report *statusReport, root string) {
	workspaces, err := staging.ListWorkspaces(root)
	if err != nil {
		report.item("Leftover", statusWarn, err.Error())
		return
	}
	if len(workspaces) == 0 {
		report.item("Leftover", statusOK, "none")
		return
	}
	for _, ws := range workspaces {
		kind := statusInfo
		if time.Since(ws.ModTime) > staging.DefaultStaleAge {
			kind = statusWarn
		}
		detail := fmt.Sprintf("%s, modified %s", humanize.Bytes(uint64(max(ws.Size, 0))), humanize.Time(ws.ModTime))
		report.item(filepath.Base(ws.Path), kind, detail)
	}
}
