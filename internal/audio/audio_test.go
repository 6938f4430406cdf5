package audio

import (
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/kartoza/loudsync/internal/models"
)

// statsStub prints a loudnorm-style diagnostic block the way ffmpeg does,
// prose first and JSON after.
const statsStub = `#!/bin/sh
echo '[Parsed_loudnorm_0 @ 0x5560]'
cat <<'STATS'
{
	"input_i" : "-23.02",
	"input_tp" : "-5.83",
	"input_lra" : "6.40",
	"input_thresh" : "-33.45",
	"output_i" : "-16.02",
	"output_tp" : "-1.53",
	"output_lra" : "5.90",
	"output_thresh" : "-26.44",
	"target_offset" : "0.42"
}
STATS
`

const failStub = "#!/bin/sh\necho 'boom' 1>&2\nexit 1\n"

const proseStub = "#!/bin/sh\necho 'size=N/A time=00:00:12.00 speed=409x'\n"

// touchStub creates the file named by its last argument, standing in for
// an ffmpeg run that writes its output path.
const touchStub = `#!/bin/sh
for a in "$@"; do last="$a"; done
: > "$last"
`

func testLog() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logrus.NewEntry(logger)
}

func writeStub(t *testing.T, dir, name, script string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatalf("Failed to write stub script: %v", err)
	}
	return path
}

func testTarget() models.NormalizationTarget {
	return models.NormalizationTarget{IntegratedLUFS: -16.0, TruePeakDBTP: -1.5}
}

func TestNewProcessor_NilLog(t *testing.T) {
	p := NewProcessor("ffmpeg", "ffprobe", nil)

	if p.log == nil {
		t.Error("expected a fallback logger when none is given")
	}
}

func TestMeasure_ParsesStats(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "audio-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	p := NewProcessor(writeStub(t, tmpDir, "ffmpeg", statsStub), "", testLog())

	m := p.Measure("input.wav", testTarget())

	if m.Status != models.StatusOK {
		t.Fatalf("expected status %q, got %q (detail: %s)", models.StatusOK, m.Status, m.Detail)
	}
	if m.IntegratedLUFS == nil || *m.IntegratedLUFS != -23.02 {
		t.Errorf("expected integrated loudness -23.02, got %v", m.IntegratedLUFS)
	}
	if m.LoudnessRange == nil || *m.LoudnessRange != 6.40 {
		t.Errorf("expected loudness range 6.40, got %v", m.LoudnessRange)
	}
	if m.TruePeakDBTP == nil || *m.TruePeakDBTP != -5.83 {
		t.Errorf("expected true peak -5.83, got %v", m.TruePeakDBTP)
	}
	if m.Raw == nil || m.Raw.TargetOffset != "0.42" {
		t.Errorf("expected raw stats with target offset 0.42, got %+v", m.Raw)
	}
	if m.File != "input.wav" {
		t.Errorf("expected File to be %q, got %q", "input.wav", m.File)
	}
}

func TestMeasure_ToolFailure(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "audio-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	p := NewProcessor(writeStub(t, tmpDir, "ffmpeg", failStub), "", testLog())

	m := p.Measure("input.wav", testTarget())

	if m.Status != models.StatusToolError {
		t.Errorf("expected status %q, got %q", models.StatusToolError, m.Status)
	}
	if m.Detail == "" {
		t.Error("expected Detail to carry the failure reason")
	}
	if m.IntegratedLUFS != nil {
		t.Error("expected no measured values on failure")
	}
}

func TestMeasure_MissingBinary(t *testing.T) {
	p := NewProcessor("/nonexistent/ffmpeg", "", testLog())

	m := p.Measure("input.wav", testTarget())

	if m.Status != models.StatusToolError {
		t.Errorf("expected status %q, got %q", models.StatusToolError, m.Status)
	}
}

func TestMeasure_NoStatsInOutput(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "audio-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	p := NewProcessor(writeStub(t, tmpDir, "ffmpeg", proseStub), "", testLog())

	m := p.Measure("input.wav", testTarget())

	if m.Status != models.StatusMeasureError {
		t.Errorf("expected status %q, got %q", models.StatusMeasureError, m.Status)
	}
	if m.Detail != "no loudnorm stats found in output" {
		t.Errorf("unexpected detail: %q", m.Detail)
	}
}

func TestReferenceLUFS(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "audio-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	p := NewProcessor(writeStub(t, tmpDir, "ffmpeg", statsStub), "", testLog())

	lufs, err := p.ReferenceLUFS("reference.wav", testTarget())
	if err != nil {
		t.Fatalf("ReferenceLUFS returned error: %v", err)
	}
	if lufs != -23.02 {
		t.Errorf("expected reference loudness -23.02, got %v", lufs)
	}
}

func TestReferenceLUFS_MeasurementFails(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "audio-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	p := NewProcessor(writeStub(t, tmpDir, "ffmpeg", failStub), "", testLog())

	_, err = p.ReferenceLUFS("reference.wav", testTarget())
	if err == nil {
		t.Fatal("expected error when the reference cannot be measured")
	}
	if !strings.Contains(err.Error(), "failed to measure reference file") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestStatValue(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
		wantErr  bool
	}{
		{"", 0, false},
		{"-23.5", -23.5, false},
		{"0.42", 0.42, false},
		{"garbage", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := statValue(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("statValue(%q) returned error: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("statValue(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestStatValue_NegativeInfinity(t *testing.T) {
	got, err := statValue("-inf")
	if err != nil {
		t.Fatalf("statValue(-inf) returned error: %v", err)
	}
	if !math.IsInf(got, -1) {
		t.Errorf("expected negative infinity, got %v", got)
	}
}
