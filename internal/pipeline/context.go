package pipeline

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/kartoza/loudsync/internal/audio"
	"github.com/kartoza/loudsync/internal/config"
	"github.com/kartoza/loudsync/internal/ffmpeg"
)

// RunContext carries the per-run state every component needs: the run
// identity, the processor bound to resolved tool binaries, the logger
// sink, and the cache root. It is created once at run start and passed by
// reference; there is no global tool or logger state.
type RunContext struct {
	ID        string
	Processor *audio.Processor
	Log       *logrus.Entry
	CacheRoot string
	KeepCache bool
}

// NewRunContext resolves ffmpeg and ffprobe from the configuration and
// builds the per-run state. Fails when either binary cannot be resolved.
func NewRunContext(cfg *config.Config, logger *logrus.Logger, keepCache bool) (*RunContext, error) {
	ffmpegBin, err := ffmpeg.Locate("ffmpeg", cfg.Paths.FFmpeg)
	if err != nil {
		return nil, err
	}
	ffprobeBin, err := ffmpeg.Locate("ffprobe", cfg.Paths.FFprobe)
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = logrus.StandardLogger()
	}

	id := uuid.New().String()
	log := logger.WithField("run_id", id)
	log.WithFields(logrus.Fields{
		"ffmpeg":  ffmpegBin,
		"ffprobe": ffprobeBin,
	}).Debug("Resolved tools")

	return &RunContext{
		ID:        id,
		Processor: audio.NewProcessor(ffmpegBin, ffprobeBin, log),
		Log:       log,
		CacheRoot: cfg.Paths.CacheDir,
		KeepCache: keepCache,
	}, nil
}
