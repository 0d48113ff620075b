package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	flags := &cliFlags{}

	ctx := newCommandContext(&configFlag, flags)

	rootCmd := &cobra.Command{
		Use:   "silencecut [flags] <input>",
		Short: "Remove silent stretches from a video",
		Long: "silencecut detects silence in a video's audio track with ffmpeg's silencedetect\n" +
			"filter and writes a copy with those stretches cut out.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig(cmd)
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runTrim(cmd, ctx, args[0])
		},
	}

	persistent := rootCmd.PersistentFlags()
	persistent.StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	persistent.BoolVarP(&flags.verbose, "verbose", "v", false, "Debug logging, including every ffmpeg command line")
	persistent.Float64VarP(&flags.threshold, "threshold", "t", 0, "Silence threshold in dB (default from config, -30)")
	persistent.Float64VarP(&flags.minDuration, "min-duration", "d", 0, "Minimum silence duration in seconds (default from config, 0.5)")
	persistent.Float64VarP(&flags.padding, "padding", "p", 0, "Seconds kept on each side of a silence (default from config, 0.1)")
	persistent.BoolVar(&flags.noHistory, "no-history", false, "Do not record this run in the history ledger")

	local := rootCmd.Flags()
	local.StringVarP(&flags.output, "output", "o", "", "Output file (default <name><suffix><ext> beside the input)")
	local.StringVarP(&flags.suffix, "suffix", "s", "", "Suffix for the derived output name (default from config, _trimmed)")

	rootCmd.AddCommand(newPlanCommand(ctx))
	rootCmd.AddCommand(newStatusCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
