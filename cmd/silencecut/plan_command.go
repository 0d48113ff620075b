package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"silencecut/internal/logging"
	"silencecut/internal/media/ffprobe"
	"silencecut/internal/plan"
	"silencecut/internal/preflight"
	"silencecut/internal/silence"
	"silencecut/internal/trim"
)

type planSegmentJSON struct {
	Start    float64 `json:"start"`
	End      float64 `json:"end"`
	Duration float64 `json:"duration"`
}

type planJSON struct {
	Input    string             `json:"input"`
	Output   string             `json:"output"`
	Silences []silence.Interval `json:"silences"`
	Segments []planSegmentJSON  `json:"segments"`
	Stats    plan.Stats         `json:"stats"`
}

func newPlanCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "plan <input>",
		Short: "Show the segments that would be kept, without writing output",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig(cmd)
			if err != nil {
				return err
			}
			logger, closeLog, err := ctx.logger(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = closeLog() }()
			ffmpegBin, ffprobeBin, err := preflight.RequireBinaries(cfg)
			if err != nil {
				return err
			}

			runner := trim.NewRunner(trim.Dependencies{
				Scanner:  silence.NewDetector(ffmpegBin, logger),
				Prober:   trim.FFprobe(ffprobeBin),
				WorkRoot: cfg.WorkRoot(),
			}, logger)
			result, err := runner.Plan(cmd.Context(), ctx.request(cfg, args[0]))
			if err != nil {
				return err
			}

			if asJSON {
				payload := planJSON{
					Input:    result.Input,
					Output:   result.Output,
					Silences: result.Silences,
					Segments: make([]planSegmentJSON, 0, len(result.Segments)),
					Stats:    result.Stats,
				}
				for _, seg := range result.Segments {
					payload.Segments = append(payload.Segments, planSegmentJSON{
						Start:    seg.Start,
						End:      seg.End,
						Duration: seg.Duration(),
					})
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(payload)
			}

			out := cmd.OutOrStdout()
			if len(result.Silences) == 0 {
				renderNoSilence(out, result)
				return nil
			}

			probe, err := ffprobe.Inspect(cmd.Context(), ffprobeBin, result.Input)
			if err != nil {
				logger.Debug("stream inspection failed", logging.Error(err))
			} else {
				fmt.Fprintf(out, "Input: %s (%d video, %d audio streams, %s)\n",
					result.Input, probe.VideoStreamCount(), probe.AudioStreamCount(), formatBytes(probe.SizeBytes()))
			}
			fmt.Fprintf(out, "Output: %s\n", result.Output)
			renderSegments(out, result.Segments)
			fmt.Fprintln(out, renderTable(statsColumns, statsRows(result.Stats)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the plan as JSON")
	return cmd
}
