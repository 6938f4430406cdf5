package cmd

import (
	"fmt"

	"github.com/kartoza/loudsync/internal/config"
	"github.com/kartoza/loudsync/internal/discovery"
	"github.com/kartoza/loudsync/internal/logging"
	"github.com/kartoza/loudsync/internal/pipeline"
	"github.com/kartoza/loudsync/internal/tui"
)

// runTUIApp starts the interactive pipeline over the given inputs, or
// over the audio files found in the current directory when none are
// given. Log events go to the run log file only while the TUI owns the
// console.
func runTUIApp(args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if len(args) == 0 {
		args = []string{"."}
	}
	paths, err := discovery.ResolveInputs(args, nil)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no audio files found")
	}

	runLog, err := logging.SetupFileOnly(cfg.Paths.CacheDir, debugMode)
	if err != nil {
		return err
	}
	defer func() { _ = runLog.Close() }()

	ctx, err := pipeline.NewRunContext(cfg, runLog.Logger, false)
	if err != nil {
		return err
	}

	assets, err := pipeline.LoadAssets(ctx.Processor, paths)
	if err != nil {
		return err
	}

	output := "output." + cfg.Output.Format
	return tui.Run(ctx, cfg, assets, output, noNotify)
}
