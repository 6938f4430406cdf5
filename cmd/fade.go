package cmd

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kartoza/loudsync/internal/config"
	"github.com/kartoza/loudsync/internal/logging"
	"github.com/kartoza/loudsync/internal/models"
	"github.com/kartoza/loudsync/internal/pipeline"
)

var (
	fadeOutput  string
	fadeInMs    int
	fadeOutMs   int
	fadeFromEnd float64
	fadeStartAt float64
	fadeCodec   string
)

var fadeCmd = &cobra.Command{
	Use:   "fade FILE",
	Short: "Apply a fade envelope to one audio file",
	Long: `Apply a fade-in and/or fade-out to a single file.

The fade-out start is resolved against the clip's duration: an explicit
--fade-from-end offset wins over --start-at, and with neither the fade
begins its own duration before the end. Timings are clamped to the clip.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		ctx, err := pipeline.NewRunContext(cfg, logging.Console(debugMode), false)
		if err != nil {
			return err
		}

		asset, err := ctx.Processor.ProbeAsset(args[0])
		if err != nil {
			return err
		}

		spec := models.FadeSpec{
			FadeIn:  float64(fadeInMs) / 1000,
			FadeOut: float64(fadeOutMs) / 1000,
		}
		fl := cmd.Flags()
		if fl.Changed("fade-from-end") {
			v := fadeFromEnd
			spec.FromEnd = &v
		} else if fl.Changed("start-at") {
			v := fadeStartAt
			spec.StartAt = &v
		}

		codec := fadeCodec
		if codec == "" {
			codec = cfg.Output.Codec
		}

		output := fadeOutput
		if output == "" {
			ext := filepath.Ext(args[0])
			output = strings.TrimSuffix(args[0], ext) + "_faded" + ext
		}

		return ctx.Processor.Fade(asset, spec, codec, output)
	},
}

func init() {
	fadeCmd.Flags().StringVarP(&fadeOutput, "output", "o", "", "Output file (default: <input>_faded.<ext>)")
	fadeCmd.Flags().IntVar(&fadeInMs, "fade-in", 300, "Fade-in duration in milliseconds")
	fadeCmd.Flags().IntVar(&fadeOutMs, "fade-out", 1500, "Fade-out duration in milliseconds")
	fadeCmd.Flags().Float64Var(&fadeFromEnd, "fade-from-end", 2.0, "Fade-out anchor in seconds before the end")
	fadeCmd.Flags().Float64Var(&fadeStartAt, "start-at", 0, "Absolute fade-out start in seconds")
	fadeCmd.Flags().StringVar(&fadeCodec, "codec", "", "Output audio codec (default: configured codec)")

	rootCmd.AddCommand(fadeCmd)
}
