package ffmpeg

import "os/exec"

// Locate resolves a tool binary. A configured path wins when set, otherwise
// PATH is searched. Returns a ToolNotFoundError when neither yields a
// usable binary.
func Locate(tool, configured string) (string, error) {
	if configured != "" {
		if _, err := exec.LookPath(configured); err != nil {
			return "", &ToolNotFoundError{Tool: configured}
		}
		return configured, nil
	}

	path, err := exec.LookPath(tool)
	if err != nil {
		return "", &ToolNotFoundError{Tool: tool}
	}
	return path, nil
}
