package pipeline

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/kartoza/loudsync/internal/config"
	"github.com/kartoza/loudsync/internal/models"
)

// Stage identifies one phase of a pipeline run.
type Stage int

const (
	StageNormalize Stage = iota
	StageFade
	StageAssemble
)

// String returns the stage name used in logs and progress displays.
func (s Stage) String() string {
	switch s {
	case StageNormalize:
		return "normalize"
	case StageFade:
		return "fade"
	case StageAssemble:
		return "assemble"
	default:
		return "unknown"
	}
}

// ProgressUpdate reports pipeline progress to an attached observer.
type ProgressUpdate struct {
	Stage Stage
	// File is the asset just processed, empty for stage-level events
	File string
	// Index is the 1-based position within the stage, Total the stage size
	Index int
	Total int
	// Done marks the end of a stage, Skipped a disabled or empty stage
	Done    bool
	Skipped bool
	// Err carries the failure detail for a file or for the stage
	Err error
}

// ProgressCallback receives updates as stages and files complete.
type ProgressCallback func(ProgressUpdate)

// Orchestrator sequences the normalize, fade, and assemble stages over a
// list of assets. Files within a stage run strictly one at a time in input
// order; a file failure drops the file and the batch continues, while
// stage-level failures abort the run.
type Orchestrator struct {
	ctx        *RunContext
	cfg        *config.Config
	onProgress ProgressCallback

	succeeded int
	failed    int
}

// New creates an orchestrator for one run.
func New(ctx *RunContext, cfg *config.Config) *Orchestrator {
	return &Orchestrator{ctx: ctx, cfg: cfg}
}

// SetProgressCallback attaches an observer for stage and file progress.
func (o *Orchestrator) SetProgressCallback(cb ProgressCallback) {
	o.onProgress = cb
}

func (o *Orchestrator) report(update ProgressUpdate) {
	if o.onProgress != nil {
		o.onProgress(update)
	}
}

// cacheDirs are the per-stage working directories under the cache root.
type cacheDirs struct {
	normalized string
	faded      string
}

// Run executes the pipeline over inputs and writes the final track to
// outputPath. Per-stage cache directories are created before any stage
// runs and removed afterwards unless the context retains them; removal is
// best-effort and also happens when the run fails.
func (o *Orchestrator) Run(inputs []models.AudioAsset, outputPath string) error {
	if len(inputs) == 0 {
		return fmt.Errorf("no input files")
	}

	log := o.ctx.Log
	log.WithFields(logrus.Fields{
		"inputs": len(inputs),
		"output": outputPath,
	}).Info("Pipeline started")

	dirs, err := o.setupCacheDirs()
	if err != nil {
		return fmt.Errorf("failed to create cache directories: %w", err)
	}
	defer o.cleanupCacheDirs(dirs)

	normalized := o.runNormalizeStage(inputs, dirs.normalized)
	if len(normalized.Survivors) == 0 {
		log.Error("No files to process after normalization")
		return fmt.Errorf("no files survived normalization")
	}

	faded := o.runFadeStage(normalized.Survivors, dirs.faded)
	if len(faded.Survivors) == 0 {
		// Intentionally asymmetric with the normalize stage: when every
		// fade fails the upstream files carry on unfaded.
		log.Warn("Fade produced no files, continuing with unfaded input")
		faded.Survivors = normalized.Survivors
	}

	if err := o.runAssembleStage(faded.Survivors, outputPath); err != nil {
		log.WithError(err).Error("Pipeline failed")
		return err
	}

	o.succeeded = len(faded.Survivors)
	log.WithFields(logrus.Fields{
		"success": o.succeeded,
		"failed":  o.failed,
		"output":  outputPath,
	}).Infof("Pipeline complete: Success=%d / Fail=%d", o.succeeded, o.failed)
	return nil
}

// setupCacheDirs creates the per-stage cache directories before any stage
// writes into them.
func (o *Orchestrator) setupCacheDirs() (cacheDirs, error) {
	dirs := cacheDirs{
		normalized: filepath.Join(o.ctx.CacheRoot, "normalized"),
		faded:      filepath.Join(o.ctx.CacheRoot, "faded"),
	}

	for _, dir := range []string{dirs.normalized, dirs.faded} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return dirs, err
		}
	}
	return dirs, nil
}

// cleanupCacheDirs removes the per-stage directories unless the run keeps
// them. Removal failures are logged and otherwise ignored.
func (o *Orchestrator) cleanupCacheDirs(dirs cacheDirs) {
	if o.ctx.KeepCache {
		o.ctx.Log.WithField("cache", o.ctx.CacheRoot).Info("Keeping cache directories")
		return
	}

	for _, dir := range []string{dirs.normalized, dirs.faded} {
		if err := os.RemoveAll(dir); err != nil {
			o.ctx.Log.WithField("dir", dir).WithError(err).Warn("Failed to clean cache")
			continue
		}
		o.ctx.Log.WithField("dir", dir).Debug("Cleaned cache")
	}
}

// runNormalizeStage corrects each asset's loudness into the stage cache.
// Failed files are dropped from the surviving list and the batch carries
// on; input order is preserved.
func (o *Orchestrator) runNormalizeStage(inputs []models.AudioAsset, cacheDir string) models.StageResult {
	if !o.cfg.Normalize.Enabled {
		o.report(ProgressUpdate{Stage: StageNormalize, Skipped: true, Done: true})
		return models.StageResult{Survivors: inputs}
	}

	target := o.cfg.Target()
	log := o.ctx.Log.WithField("stage", StageNormalize.String())
	log.WithFields(logrus.Fields{
		"lufs": target.IntegratedLUFS,
		"tp":   target.TruePeakDBTP,
	}).Info("Normalizing")

	var result models.StageResult
	for i, asset := range inputs {
		o.report(ProgressUpdate{Stage: StageNormalize, File: asset.Name(), Index: i + 1, Total: len(inputs)})
		log.Infof("[%d/%d] Normalizing: %s", i+1, len(inputs), asset.Name())

		outputPath := filepath.Join(cacheDir, stageName(asset.Path, "__norm"))
		if !o.ctx.Processor.Normalize(asset, target, o.cfg.Output.SampleRate, asset.Format, outputPath) {
			log.WithField("file", asset.Name()).Warn("Normalization failed, skipping")
			o.failed++
			result.Failed = append(result.Failed, asset)
			o.report(ProgressUpdate{Stage: StageNormalize, File: asset.Name(), Index: i + 1, Total: len(inputs), Err: fmt.Errorf("normalization failed")})
			continue
		}

		probed, err := o.ctx.Processor.ProbeAsset(outputPath)
		if err != nil {
			log.WithField("file", asset.Name()).WithError(err).Warn("Probe of normalized file failed, skipping")
			o.failed++
			result.Failed = append(result.Failed, asset)
			o.report(ProgressUpdate{Stage: StageNormalize, File: asset.Name(), Index: i + 1, Total: len(inputs), Err: err})
			continue
		}

		result.Survivors = append(result.Survivors, probed)
	}

	o.report(ProgressUpdate{Stage: StageNormalize, Done: true, Total: len(inputs)})
	return result
}

// runFadeStage applies the fade envelope to each asset into the stage
// cache. A disabled stage or an empty incoming list passes through
// unchanged; failed files are dropped.
func (o *Orchestrator) runFadeStage(inputs []models.AudioAsset, cacheDir string) models.StageResult {
	if !o.cfg.Fade.Enabled || len(inputs) == 0 {
		o.report(ProgressUpdate{Stage: StageFade, Skipped: true, Done: true})
		return models.StageResult{Survivors: inputs}
	}

	spec := o.cfg.FadeSpec()
	log := o.ctx.Log.WithField("stage", StageFade.String())
	log.WithFields(logrus.Fields{
		"in_ms":    o.cfg.Fade.InMs,
		"out_ms":   o.cfg.Fade.OutMs,
		"from_end": o.cfg.Fade.FromEndSec,
	}).Info("Applying fades")

	var result models.StageResult
	for i, asset := range inputs {
		o.report(ProgressUpdate{Stage: StageFade, File: asset.Name(), Index: i + 1, Total: len(inputs)})
		log.Infof("[%d/%d] Adding fade: %s", i+1, len(inputs), asset.Name())

		outputPath := filepath.Join(cacheDir, stageName(asset.Path, "__fade"))
		if err := o.ctx.Processor.Fade(asset, spec, o.cfg.Output.Codec, outputPath); err != nil {
			log.WithField("file", asset.Name()).WithError(err).Warn("Fade failed, skipping")
			o.failed++
			result.Failed = append(result.Failed, asset)
			o.report(ProgressUpdate{Stage: StageFade, File: asset.Name(), Index: i + 1, Total: len(inputs), Err: err})
			continue
		}

		result.Survivors = append(result.Survivors, models.AudioAsset{
			Path:   outputPath,
			Format: models.FormatForPath(outputPath),
		})
	}

	o.report(ProgressUpdate{Stage: StageFade, Done: true, Total: len(inputs)})
	return result
}

// runAssembleStage produces the final output: a single survivor is copied
// verbatim with its encoding untouched, two or more are crossfaded when
// the stage is enabled. Multiple survivors without crossfade fail the run;
// the pipeline never concatenates implicitly.
func (o *Orchestrator) runAssembleStage(inputs []models.AudioAsset, outputPath string) error {
	log := o.ctx.Log.WithField("stage", StageAssemble.String())
	o.report(ProgressUpdate{Stage: StageAssemble, Total: len(inputs)})

	if len(inputs) == 1 {
		log.WithField("output", outputPath).Info("Single file, copying verbatim")
		if err := copyFile(inputs[0].Path, outputPath); err != nil {
			o.report(ProgressUpdate{Stage: StageAssemble, Done: true, Err: err})
			return fmt.Errorf("failed to copy output: %w", err)
		}
		o.report(ProgressUpdate{Stage: StageAssemble, Done: true})
		return nil
	}

	if !o.cfg.Crossfade.Enabled {
		err := fmt.Errorf("%d files remain but crossfade is disabled", len(inputs))
		o.report(ProgressUpdate{Stage: StageAssemble, Done: true, Err: err})
		return err
	}

	spec := o.cfg.CrossfadeSpec()
	log.WithFields(logrus.Fields{
		"files":   len(inputs),
		"overlap": spec.Overlap,
	}).Info("Crossfading")

	if err := o.ctx.Processor.Crossfade(inputs, spec, outputPath); err != nil {
		o.report(ProgressUpdate{Stage: StageAssemble, Done: true, Err: err})
		return err
	}

	o.report(ProgressUpdate{Stage: StageAssemble, Done: true})
	return nil
}

// stageName derives a cache file name from an input path by tagging the
// stem, keeping the container extension.
func stageName(path, tag string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext) + tag + ext
}

// copyFile copies src to dst byte for byte.
func copyFile(src, dst string) error {
	source, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = source.Close() }()

	destination, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() { _ = destination.Close() }()

	_, err = io.Copy(destination, source)
	return err
}
