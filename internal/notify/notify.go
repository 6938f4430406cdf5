package notify

import (
	"fmt"
	"os/exec"
	"path/filepath"

	"github.com/kartoza/loudsync/internal/beep"
)

// Urgency levels for notifications
type Urgency string

const (
	UrgencyLow      Urgency = "low"
	UrgencyNormal   Urgency = "normal"
	UrgencyCritical Urgency = "critical"
)

// Send sends a desktop notification using notify-send
func Send(title, body string, urgency Urgency, icon string) error {
	args := []string{title, body}

	if urgency != "" {
		args = append(args, "--urgency="+string(urgency))
	}

	if icon != "" {
		args = append(args, "--icon="+icon)
	}

	cmd := exec.Command("notify-send", args...)
	return cmd.Run()
}

// Info sends an informational notification
func Info(title, body string) error {
	return Send(title, body, UrgencyNormal, "audio-x-generic")
}

// Warning sends a warning notification
func Warning(title, body string) error {
	return Send(title, body, UrgencyLow, "dialog-warning")
}

// Error sends an error notification
func Error(title, body string) error {
	return Send(title, body, UrgencyCritical, "dialog-error")
}

// PipelineStarted notifies that a pipeline run has started
func PipelineStarted(count int) error {
	body := fmt.Sprintf("Processing %d files...", count)
	return Info("Loudness Pipeline", body)
}

// PipelineComplete notifies that a pipeline run finished successfully,
// with an audible chime.
func PipelineComplete(outputPath string) error {
	beep.Success()
	return Info("Loudness Pipeline Complete", filepath.Base(outputPath)+" saved!")
}

// PipelineFailed notifies that a pipeline run failed
func PipelineFailed(reason string) error {
	beep.Failure()
	return Error("Loudness Pipeline Failed", reason)
}
