package ffmpeg

import "fmt"

// ToolNotFoundError reports that a required external binary could not be
// resolved from the configuration or any searched path.
type ToolNotFoundError struct {
	Tool string
}

func (e *ToolNotFoundError) Error() string {
	return fmt.Sprintf("%s not found: install it or set its path in the configuration", e.Tool)
}

// InvocationError reports a tool that exited nonzero or could not be
// started. Stderr carries the diagnostic output captured before failure.
type InvocationError struct {
	Tool   string
	Err    error
	Stderr string
}

func (e *InvocationError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("%s failed: %v", e.Tool, e.Err)
	}
	return fmt.Sprintf("%s failed: %v, stderr: %s", e.Tool, e.Err, e.Stderr)
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}

// InputNotFoundError reports a missing input file or directory.
type InputNotFoundError struct {
	Path string
}

func (e *InputNotFoundError) Error() string {
	return "input not found: " + e.Path
}
