package audio

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/kartoza/loudsync/internal/ffmpeg"
	"github.com/kartoza/loudsync/internal/models"
)

// Processor runs the per-file audio operations against resolved tool
// binaries. All invocations are synchronous; the processor keeps no state
// between calls.
type Processor struct {
	ffmpegBin  string
	ffprobeBin string
	log        *logrus.Entry
}

// NewProcessor creates a processor bound to resolved ffmpeg/ffprobe paths.
func NewProcessor(ffmpegBin, ffprobeBin string, log *logrus.Entry) *Processor {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Processor{
		ffmpegBin:  ffmpegBin,
		ffprobeBin: ffprobeBin,
		log:        log,
	}
}

// ProbeAsset returns an asset with its container duration and format.
func (p *Processor) ProbeAsset(path string) (models.AudioAsset, error) {
	return ffmpeg.ProbeAsset(p.ffprobeBin, path)
}

// Measure performs a first-pass loudnorm analysis of the file. ffmpeg runs
// in null-output diagnostic mode and prints a JSON statistics block among
// its prose; the block is extracted and parsed. The returned measurement
// carries a status instead of an error so batch callers can match on the
// outcome.
func (p *Processor) Measure(path string, target models.NormalizationTarget) models.LoudnessMeasurement {
	measurement := models.LoudnessMeasurement{File: path, Status: models.StatusToolError}

	filter := fmt.Sprintf("loudnorm=I=%.1f:TP=%.1f:LRA=%.1f:print_format=json",
		target.IntegratedLUFS, target.TruePeakDBTP, models.DefaultLoudnessRange)

	output, err := ffmpeg.CombinedOutput(p.ffmpegBin,
		"-hide_banner", "-nostats",
		"-i", path,
		"-af", filter,
		"-f", "null", "-",
	)
	if err != nil {
		measurement.Detail = err.Error()
		return measurement
	}

	block, ok := ffmpeg.ExtractJSONBlock(output)
	if !ok {
		measurement.Status = models.StatusMeasureError
		measurement.Detail = "no loudnorm stats found in output"
		return measurement
	}

	var stats models.LoudnormStats
	if err := json.Unmarshal([]byte(block), &stats); err != nil {
		measurement.Status = models.StatusMeasureError
		measurement.Detail = fmt.Sprintf("failed to parse loudnorm stats: %v", err)
		return measurement
	}

	integrated, errI := statValue(stats.InputI)
	loudnessRange, errL := statValue(stats.InputLRA)
	truePeak, errP := statValue(stats.InputTP)
	if errI != nil || errL != nil || errP != nil {
		measurement.Status = models.StatusMeasureError
		measurement.Detail = "loudnorm stats contain non-numeric values"
		return measurement
	}

	measurement.Status = models.StatusOK
	measurement.IntegratedLUFS = &integrated
	measurement.LoudnessRange = &loudnessRange
	measurement.TruePeakDBTP = &truePeak
	measurement.Raw = &stats
	return measurement
}

// ReferenceLUFS measures a reference file and returns its integrated
// loudness, letting a run target "sound as loud as this file".
func (p *Processor) ReferenceLUFS(path string, target models.NormalizationTarget) (float64, error) {
	measurement := p.Measure(path, target)
	if !measurement.OK() || measurement.IntegratedLUFS == nil {
		return 0, fmt.Errorf("failed to measure reference file %s: %s", path, measurement.Detail)
	}
	return *measurement.IntegratedLUFS, nil
}

// statValue parses one loudnorm stat string. Absent values default to zero,
// matching the tolerant read of the diagnostic block; loudnorm prints "-inf"
// for silence and ParseFloat accepts it.
func statValue(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}
