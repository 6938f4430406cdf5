package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	debugMode bool
	cfgFile   string
	noNotify  bool
)

// SetVersion sets the application version (called from main)
func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "loudsync",
	Short: "Batch loudness pipeline for audio files",
	Long: `LoudSync levels a batch of audio files to a shared loudness target.

It supports:
  - EBU R128 loudness normalization via ffmpeg loudnorm (one- or two-pass)
  - Fade-in/fade-out envelopes resolved against each clip's duration
  - Crossfade assembly of multiple clips into a single track
  - Named presets (podcast, bgm, broadcast) and reference-file targeting
  - Loudness measurement reports as aligned tables or CSV

A run stages files through normalize, fade, and assemble. Files that
fail a stage are dropped and the batch carries on.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default action: interactive pipeline
		return runTUIApp(args)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: ~/.config/loudsync/config.json)")
	rootCmd.PersistentFlags().BoolVar(&noNotify, "no-notify", false, "Disable desktop notifications")
}
