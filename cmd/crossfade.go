package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kartoza/loudsync/internal/config"
	"github.com/kartoza/loudsync/internal/logging"
	"github.com/kartoza/loudsync/internal/models"
	"github.com/kartoza/loudsync/internal/pipeline"
)

var (
	crossfadeOutput  string
	crossfadeOverlap float64
	crossfadeCurve   string
	crossfadeCodec   string
)

var crossfadeCmd = &cobra.Command{
	Use:   "crossfade FILE FILE [FILE...]",
	Short: "Merge audio files into one track with overlapping crossfades",
	Long: `Crossfade two or more files into a single track.

Adjacent files overlap by the given duration with the same curve on both
sides of each join. All inputs are merged in one ffmpeg invocation, in
the order given.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		ctx, err := pipeline.NewRunContext(cfg, logging.Console(debugMode), false)
		if err != nil {
			return err
		}

		assets, err := pipeline.LoadAssets(ctx.Processor, args)
		if err != nil {
			return err
		}

		codec := crossfadeCodec
		if codec == "" {
			codec = cfg.Output.Codec
		}
		spec := models.CrossfadeSpec{
			Overlap:  crossfadeOverlap,
			CurveIn:  crossfadeCurve,
			CurveOut: crossfadeCurve,
			Codec:    codec,
		}

		output := crossfadeOutput
		if output == "" {
			output = "crossfade." + cfg.Output.Format
		}

		return ctx.Processor.Crossfade(assets, spec, output)
	},
}

func init() {
	crossfadeCmd.Flags().StringVarP(&crossfadeOutput, "output", "o", "", "Output file (default: crossfade.<format>)")
	crossfadeCmd.Flags().Float64Var(&crossfadeOverlap, "overlap", 2.0, "Overlap between adjacent files in seconds")
	crossfadeCmd.Flags().StringVar(&crossfadeCurve, "curve", "tri", "Fade curve for both sides of each join")
	crossfadeCmd.Flags().StringVar(&crossfadeCodec, "codec", "", "Output audio codec (default: configured codec)")

	rootCmd.AddCommand(crossfadeCmd)
}
