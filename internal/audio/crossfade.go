package audio

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/kartoza/loudsync/internal/ffmpeg"
	"github.com/kartoza/loudsync/internal/models"
)

// PreconditionError reports a crossfade request that cannot form a chain.
type PreconditionError struct {
	Need int
	Got  int
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("crossfade needs at least %d inputs, got %d", e.Need, e.Got)
}

// Crossfade merges the inputs into one continuous track at outputPath.
// The merge is a chain of pairwise overlap nodes in exact input order,
// issued as a single ffmpeg invocation. Fails with a PreconditionError
// before invoking anything when fewer than two inputs are given.
func (p *Processor) Crossfade(inputs []models.AudioAsset, spec models.CrossfadeSpec, outputPath string) error {
	if len(inputs) < 2 {
		return &PreconditionError{Need: 2, Got: len(inputs)}
	}

	args := []string{"-y"}
	for _, input := range inputs {
		args = append(args, "-i", input.Path)
	}

	graph, outLabel := crossfadeGraph(len(inputs), spec)
	args = append(args,
		"-filter_complex", graph,
		"-map", outLabel,
		"-c:a", spec.Codec,
		outputPath,
	)

	p.log.WithFields(logrus.Fields{
		"inputs": len(inputs),
		"graph":  graph,
	}).Debug("Crossfading")

	return ffmpeg.Run(p.ffmpegBin, args...)
}

// crossfadeGraph builds the acrossfade node chain for n inputs and returns
// the filter graph together with the label carrying the final merge. Node k
// merges the previous result with input k+1; nothing is ever reordered.
func crossfadeGraph(n int, spec models.CrossfadeSpec) (string, string) {
	var chains []string
	prev := "[0:a]"

	for i := 1; i < n; i++ {
		out := fmt.Sprintf("[a%d]", i)
		chains = append(chains, fmt.Sprintf("%s[%d:a]acrossfade=d=%g:c1=%s:c2=%s%s",
			prev, i, spec.Overlap, spec.CurveIn, spec.CurveOut, out))
		prev = out
	}

	return strings.Join(chains, ";"), prev
}
