package audio

import (
	"fmt"
	"math"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/kartoza/loudsync/internal/ffmpeg"
	"github.com/kartoza/loudsync/internal/models"
)

// Fade writes a copy of the asset to outputPath with fade envelopes
// applied. The asset must carry its probed duration. The codec is
// overridden by the output extension's container-implied codec when the
// extension is known.
func (p *Processor) Fade(asset models.AudioAsset, spec models.FadeSpec, codec, outputPath string) error {
	filter := fadeFilter(spec, asset.Duration)
	codec = CodecForExtension(outputPath, codec)

	p.log.WithFields(logrus.Fields{
		"file":   asset.Name(),
		"filter": filter,
		"codec":  codec,
	}).Debug("Applying fade")

	return ffmpeg.Run(p.ffmpegBin,
		"-y",
		"-i", asset.Path,
		"-vn",
		"-af", filter,
		"-c:a", codec,
		outputPath,
	)
}

// fadeFilter builds the afade chain for a clip of the given duration. When
// no fade applies it returns anull so the transcode behaves uniformly
// whether or not a fade was requested.
func fadeFilter(spec models.FadeSpec, duration float64) string {
	fadeIn := math.Max(spec.FadeIn, 0)
	fadeOut := math.Max(spec.FadeOut, 0)

	var filters []string
	if fadeIn > 0 {
		filters = append(filters, fmt.Sprintf("afade=t=in:st=0:d=%g", fadeIn))
	}
	if fadeOut > 0 {
		filters = append(filters, fmt.Sprintf("afade=t=out:st=%g:d=%g", spec.FadeOutStart(duration), fadeOut))
	}

	if len(filters) == 0 {
		return "anull"
	}
	return strings.Join(filters, ",")
}
