package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kartoza/loudsync/internal/config"
	"github.com/kartoza/loudsync/internal/discovery"
	"github.com/kartoza/loudsync/internal/logging"
	"github.com/kartoza/loudsync/internal/notify"
	"github.com/kartoza/loudsync/internal/pipeline"
)

var (
	pipelineOutput     string
	pipelinePreset     string
	pipelineRef        string
	pipelineLUFS       float64
	pipelineTP         float64
	pipelineSinglePass bool
	pipelineFade       bool
	pipelineFadeIn     int
	pipelineFadeOut    int
	pipelineFadeEnd    float64
	pipelineCrossfade  bool
	pipelineOverlap    float64
	pipelineCurve      string
	pipelineCodec      string
	pipelineSampleRate int
	pipelineFormat     string
	pipelineCacheDir   string
	pipelineKeepCache  bool
)

var pipelineCmd = &cobra.Command{
	Use:   "pipeline [files or directories...]",
	Short: "Normalize, fade, and assemble a batch of audio files",
	Long: `Run the full pipeline over the given files and directories.

Directories are searched recursively for audio files. Each input is
normalized to the loudness target, optionally faded, and the survivors
are assembled into a single output: one file is copied verbatim, two or
more are crossfaded when crossfading is enabled.

Flags override the loaded configuration; --preset applies a named or
numeric bundle first.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		if pipelinePreset != "" {
			if err := config.ApplyPreset(cfg, pipelinePreset); err != nil {
				return err
			}
		}

		fl := cmd.Flags()
		if fl.Changed("lufs") {
			cfg.Normalize.LUFS = pipelineLUFS
			cfg.Normalize.Preset = ""
		}
		if fl.Changed("tp") {
			cfg.Normalize.TruePeak = pipelineTP
		}
		if pipelineSinglePass {
			cfg.Normalize.TwoPass = false
		}
		if fl.Changed("fade") {
			cfg.Fade.Enabled = pipelineFade
		}
		if fl.Changed("fade-in") {
			cfg.Fade.InMs = pipelineFadeIn
			cfg.Fade.Enabled = true
		}
		if fl.Changed("fade-out") {
			cfg.Fade.OutMs = pipelineFadeOut
			cfg.Fade.Enabled = true
		}
		if fl.Changed("fade-from-end") {
			cfg.Fade.FromEndSec = pipelineFadeEnd
			cfg.Fade.Enabled = true
		}
		if fl.Changed("crossfade") {
			cfg.Crossfade.Enabled = pipelineCrossfade
		}
		if fl.Changed("overlap") {
			cfg.Crossfade.OverlapSec = pipelineOverlap
			cfg.Crossfade.Enabled = true
		}
		if fl.Changed("curve") {
			cfg.Crossfade.Curve = pipelineCurve
		}
		if fl.Changed("codec") {
			cfg.Output.Codec = pipelineCodec
		}
		if fl.Changed("sample-rate") {
			cfg.Output.SampleRate = pipelineSampleRate
		}
		if fl.Changed("format") {
			cfg.Output.Format = pipelineFormat
		}
		if fl.Changed("cache-dir") {
			cfg.Paths.CacheDir = pipelineCacheDir
		}

		if err := cfg.Validate(); err != nil {
			return err
		}

		output := pipelineOutput
		if output == "" {
			output = "output." + cfg.Output.Format
		}

		runLog, err := logging.Setup(cfg.Paths.CacheDir, debugMode)
		if err != nil {
			return err
		}
		defer func() { _ = runLog.Close() }()

		ctx, err := pipeline.NewRunContext(cfg, runLog.Logger, pipelineKeepCache)
		if err != nil {
			return err
		}

		if pipelineRef != "" {
			lufs, err := ctx.Processor.ReferenceLUFS(pipelineRef, cfg.Target())
			if err != nil {
				return fmt.Errorf("reference measurement failed: %w", err)
			}
			ctx.Log.WithField("lufs", lufs).Info("Using reference loudness target")
			cfg.Normalize.LUFS = lufs
			cfg.Normalize.Preset = "reffile"
		}

		paths, err := discovery.ResolveInputs(args, nil)
		if err != nil {
			return err
		}
		if len(paths) == 0 {
			return fmt.Errorf("no audio files found")
		}

		assets, err := pipeline.LoadAssets(ctx.Processor, paths)
		if err != nil {
			return err
		}

		if !noNotify {
			_ = notify.PipelineStarted(len(assets))
		}

		orch := pipeline.New(ctx, cfg)
		if err := orch.Run(assets, output); err != nil {
			if !noNotify {
				_ = notify.PipelineFailed(err.Error())
			}
			return err
		}

		if !noNotify {
			_ = notify.PipelineComplete(output)
		}
		return nil
	},
}

func init() {
	pipelineCmd.Flags().StringVarP(&pipelineOutput, "output", "o", "", "Output file (default: output.<format>)")
	pipelineCmd.Flags().StringVarP(&pipelinePreset, "preset", "p", "", "Preset: podcast, bgm, broadcast, or a numeric target like -16")
	pipelineCmd.Flags().StringVar(&pipelineRef, "ref", "", "Reference file whose integrated loudness becomes the target")
	pipelineCmd.Flags().Float64Var(&pipelineLUFS, "lufs", -16.0, "Target integrated loudness in LUFS")
	pipelineCmd.Flags().Float64Var(&pipelineTP, "tp", -1.5, "Maximum true peak in dBTP")
	pipelineCmd.Flags().BoolVar(&pipelineSinglePass, "single-pass", false, "Use single-pass normalization")
	pipelineCmd.Flags().BoolVar(&pipelineFade, "fade", false, "Enable the fade stage")
	pipelineCmd.Flags().IntVar(&pipelineFadeIn, "fade-in", 300, "Fade-in duration in milliseconds")
	pipelineCmd.Flags().IntVar(&pipelineFadeOut, "fade-out", 1500, "Fade-out duration in milliseconds")
	pipelineCmd.Flags().Float64Var(&pipelineFadeEnd, "fade-from-end", 2.0, "Fade-out anchor in seconds before the end")
	pipelineCmd.Flags().BoolVar(&pipelineCrossfade, "crossfade", false, "Enable crossfade assembly")
	pipelineCmd.Flags().Float64Var(&pipelineOverlap, "overlap", 2.0, "Crossfade overlap in seconds")
	pipelineCmd.Flags().StringVar(&pipelineCurve, "curve", "tri", "Crossfade curve")
	pipelineCmd.Flags().StringVar(&pipelineCodec, "codec", "aac", "Output audio codec")
	pipelineCmd.Flags().IntVar(&pipelineSampleRate, "sample-rate", 48000, "Output sample rate in Hz")
	pipelineCmd.Flags().StringVar(&pipelineFormat, "format", "wav", "Intermediate container format: wav, mp3, or m4a")
	pipelineCmd.Flags().StringVar(&pipelineCacheDir, "cache-dir", "", "Cache directory for stage intermediates")
	pipelineCmd.Flags().BoolVar(&pipelineKeepCache, "keep-cache", false, "Keep stage intermediates after the run")

	rootCmd.AddCommand(pipelineCmd)
}
