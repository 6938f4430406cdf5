package ffmpeg

import (
	"os/exec"
	"path/filepath"
	"strings"
)

// Run executes a tool invocation for its side effects. ffmpeg writes its
// diagnostics to stderr, so the combined output is attached to the error
// on failure.
func Run(bin string, args ...string) error {
	_, err := CombinedOutput(bin, args...)
	return err
}

// CombinedOutput executes a tool invocation and returns everything it wrote
// to stdout and stderr. On a nonzero exit or a start failure the captured
// output is still returned alongside an InvocationError.
func CombinedOutput(bin string, args ...string) (string, error) {
	cmd := exec.Command(bin, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return string(out), &InvocationError{
			Tool:   filepath.Base(bin),
			Err:    err,
			Stderr: strings.TrimSpace(string(out)),
		}
	}
	return string(out), nil
}
