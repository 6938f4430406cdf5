package audio

import (
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/kartoza/loudsync/internal/ffmpeg"
	"github.com/kartoza/loudsync/internal/models"
)

// Normalize writes a loudness-corrected copy of the asset to outputPath.
// With TwoPass set it measures first and embeds the measured parameters
// into a linear second-pass correction; when measurement fails it logs a
// downgrade notice and falls back to a single adaptive pass exactly once.
// The sample rate is always passed explicitly even when unchanged, and the
// codec follows the output format. Tool failures are logged and reported
// as false, never as a panic.
func (p *Processor) Normalize(asset models.AudioAsset, target models.NormalizationTarget, sampleRate int, format, outputPath string) bool {
	var filter string

	if target.TwoPass {
		measurement := p.Measure(asset.Path, target)
		if !measurement.OK() || measurement.Raw == nil {
			p.log.WithFields(logrus.Fields{
				"file":   asset.Name(),
				"status": measurement.Status,
			}).Warn("Measurement failed, falling back to single-pass")

			fallback := target
			fallback.TwoPass = false
			return p.Normalize(asset, fallback, sampleRate, format, outputPath)
		}
		filter = correctionFilter(target, measurement.Raw)
	} else {
		filter = adaptiveFilter(target)
	}

	args := []string{
		"-hide_banner", "-y",
		"-i", asset.Path,
		"-af", filter,
		"-ar", strconv.Itoa(sampleRate),
	}
	args = append(args, codecArgs(format)...)
	args = append(args, outputPath)

	if err := ffmpeg.Run(p.ffmpegBin, args...); err != nil {
		p.log.WithField("file", asset.Name()).WithError(err).Error("Normalization failed")
		return false
	}

	return true
}

// correctionFilter builds the second-pass loudnorm filter, embedding the
// measured statistics verbatim and selecting a linear gain with a summary
// report.
func correctionFilter(target models.NormalizationTarget, stats *models.LoudnormStats) string {
	return fmt.Sprintf(
		"loudnorm=I=%.1f:TP=%.1f:LRA=%.1f:measured_I=%s:measured_TP=%s:measured_LRA=%s:measured_thresh=%s:offset=%s:linear=true:print_format=summary",
		target.IntegratedLUFS,
		target.TruePeakDBTP,
		models.DefaultLoudnessRange,
		stats.InputI,
		stats.InputTP,
		stats.InputLRA,
		stats.InputThresh,
		stats.TargetOffset,
	)
}

// adaptiveFilter builds the single-pass loudnorm filter that lets the tool
// estimate the correction itself.
func adaptiveFilter(target models.NormalizationTarget) string {
	return fmt.Sprintf("loudnorm=I=%.1f:TP=%.1f:LRA=%.1f",
		target.IntegratedLUFS, target.TruePeakDBTP, models.DefaultLoudnessRange)
}
