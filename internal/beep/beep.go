package beep

import (
	"fmt"
	"os/exec"
)

// Chime tone sequences (Hz). Success rises, failure stays low.
var (
	SuccessTones = []int{659, 880}
	FailureTones = []int{233}
)

// Success plays the run-complete chime.
func Success() {
	playTones(SuccessTones)
}

// Failure plays the run-failed tone.
func Failure() {
	playTones(FailureTones)
}

// playTones plays each tone in order, stopping at the first backend that
// works. All backends are best-effort; the console bell is the fallback.
func playTones(freqs []int) {
	for _, freq := range freqs {
		if tryFFmpegTone(freq) {
			continue
		}
		if tryPaplay() {
			return
		}
		// Console beep (may not work on all systems)
		fmt.Print("\a")
		return
	}
}

// tryFFmpegTone generates a short sine tone with ffmpeg and pipes it to
// pw-cat (PipeWire) or aplay (ALSA)
func tryFFmpegTone(freq int) bool {
	duration := "0.12"

	cmd := exec.Command("bash", "-c",
		fmt.Sprintf("ffmpeg -f lavfi -i 'sine=frequency=%d:duration=%s' -f wav - 2>/dev/null | pw-cat --playback - 2>/dev/null",
			freq, duration))
	if err := cmd.Run(); err == nil {
		return true
	}

	cmd = exec.Command("bash", "-c",
		fmt.Sprintf("ffmpeg -f lavfi -i 'sine=frequency=%d:duration=%s' -f wav - 2>/dev/null | aplay -q - 2>/dev/null",
			freq, duration))
	if err := cmd.Run(); err == nil {
		return true
	}

	return false
}

// tryPaplay plays a system sound using paplay
func tryPaplay() bool {
	sounds := []string{
		"/usr/share/sounds/freedesktop/stereo/complete.oga",
		"/usr/share/sounds/freedesktop/stereo/bell.oga",
		"/usr/share/sounds/sound-icons/bell.wav",
	}

	for _, sound := range sounds {
		cmd := exec.Command("paplay", sound)
		if err := cmd.Run(); err == nil {
			return true
		}
	}

	return false
}
