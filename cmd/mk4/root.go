package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	opts := &convertOptions{audioTrack: -1, subtitleTrack: -1}

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:           "mk4 [files or directories...]",
		Short:         "Convert MKV files to MP4 with burned-in subtitles",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runConvert(cmd, ctx, opts, args)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.Flags().BoolVarP(&opts.deleteSource, "delete", "r", false, "Delete the source file after a successful conversion")
	rootCmd.Flags().IntVar(&opts.audioTrack, "audio", -1, "Audio track to keep (default: the container's default track)")
	rootCmd.Flags().IntVar(&opts.subtitleTrack, "subtitle", -1, "Subtitle track to burn in (default: the container's default track)")
	rootCmd.Flags().StringVar(&opts.outputDir, "output-dir", "", "Directory for converted files (default: next to each source)")

	rootCmd.AddCommand(newProbeCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newDepsCommand())

	return rootCmd
}
