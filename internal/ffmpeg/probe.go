package ffmpeg

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/kartoza/loudsync/internal/models"
)

// ProbeDuration asks ffprobe for a file's container duration in seconds.
func ProbeDuration(ffprobe, path string) (float64, error) {
	cmd := exec.Command(ffprobe,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "json",
		path,
	)

	output, err := cmd.Output()
	if err != nil {
		return 0, &InvocationError{Tool: "ffprobe", Err: err, Stderr: exitStderr(err)}
	}

	var probeResult struct {
		Format struct {
			Duration string `json:"duration"`
		} `json:"format"`
	}
	if err := json.Unmarshal(output, &probeResult); err != nil {
		return 0, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	duration, err := strconv.ParseFloat(probeResult.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse duration %q: %w", probeResult.Format.Duration, err)
	}

	return duration, nil
}

// ProbeAsset stats and probes an input file, producing an asset with its
// duration and inferred container format.
func ProbeAsset(ffprobe, path string) (models.AudioAsset, error) {
	if _, err := os.Stat(path); err != nil {
		return models.AudioAsset{}, &InputNotFoundError{Path: path}
	}

	duration, err := ProbeDuration(ffprobe, path)
	if err != nil {
		return models.AudioAsset{}, err
	}

	return models.AudioAsset{
		Path:     path,
		Duration: duration,
		Format:   models.FormatForPath(path),
	}, nil
}

// exitStderr pulls captured stderr out of an exec exit error.
func exitStderr(err error) string {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return strings.TrimSpace(string(exitErr.Stderr))
	}
	return ""
}
