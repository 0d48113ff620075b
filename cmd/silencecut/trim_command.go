package main

import (
	"github.com/spf13/cobra"

	"silencecut/internal/assemble"
	"silencecut/internal/preflight"
	"silencecut/internal/silence"
	"silencecut/internal/trim"
)

func runTrim(cmd *cobra.Command, ctx *commandContext, input string) error {
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

	recorder, closeRecorder := ctx.openRecorder(cmd.Context(), cfg, logger)
	defer closeRecorder()

	progress := newExtractionProgress(cmd.ErrOrStderr(), ctx.flags.verbose)
	assembler := assemble.New(assemble.Options{
		FFmpeg:   ffmpegBin,
		Encoding: cfg.Encoding,
		WorkRoot: cfg.WorkRoot(),
		Verbose:  ctx.flags.verbose,
		Progress: progress.Update,
	}, logger)

	runner := trim.NewRunner(trim.Dependencies{
		Scanner:   silence.NewDetector(ffmpegBin, logger),
		Prober:    trim.FFprobe(ffprobeBin),
		Assembler: assembler,
		Recorder:  recorder,
		WorkRoot:  cfg.WorkRoot(),
	}, logger)

	result, err := runner.Run(cmd.Context(), ctx.request(cfg, input))
	progress.Finish()
	if err != nil {
		return err
	}
	renderTrimReport(cmd.OutOrStdout(), result)
	return nil
}
