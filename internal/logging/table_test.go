package logging

import (
	"math"
	"strings"
	"testing"

	"github.com/kartoza/loudsync/internal/models"
)

func floatPtr(v float64) *float64 { return &v }

func TestFormatLUFS(t *testing.T) {
	tests := []struct {
		name     string
		value    *float64
		expected string
	}{
		{"missing", nil, "-"},
		{"not a number", floatPtr(math.NaN()), "-"},
		{"positive infinity", floatPtr(math.Inf(1)), "-"},
		{"negative infinity", floatPtr(math.Inf(-1)), "< -70"},
		{"below floor", floatPtr(-71.2), "< -70"},
		{"at floor", floatPtr(-70.0), "-70.0"},
		{"normal", floatPtr(-16.0), "-16.0"},
		{"rounded", floatPtr(-23.07), "-23.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatLUFS(tt.value); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name     string
		value    *float64
		expected string
	}{
		{"missing", nil, "-"},
		{"not a number", floatPtr(math.NaN()), "-"},
		{"positive infinity", floatPtr(math.Inf(1)), "-"},
		{"negative infinity", floatPtr(math.Inf(-1)), "-"},
		{"normal", floatPtr(6.44), "6.4"},
		{"negative", floatPtr(-1.5), "-1.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatValue(tt.value); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestMeasurementTable_String(t *testing.T) {
	table := NewMeasurementTable()
	table.Add(models.LoudnessMeasurement{
		File:           "/audio/session/intro.wav",
		IntegratedLUFS: floatPtr(-16.5),
		LoudnessRange:  floatPtr(6.4),
		TruePeakDBTP:   floatPtr(-1.2),
		Status:         models.StatusOK,
	})
	table.Add(models.LoudnessMeasurement{
		File:   "broken.wav",
		Status: models.StatusToolError,
	})

	out := table.String()
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")

	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d:\n%s", len(lines), out)
	}

	for _, header := range []string{"File", "Integrated", "LRA", "True Peak", "Status"} {
		if !strings.Contains(lines[0], header) {
			t.Errorf("expected header to contain %q, got %q", header, lines[0])
		}
	}

	if !strings.Contains(lines[1], "intro.wav") {
		t.Errorf("expected base file name in row, got %q", lines[1])
	}
	if strings.Contains(lines[1], "/audio/") {
		t.Errorf("expected directory to be stripped, got %q", lines[1])
	}
	if !strings.Contains(lines[1], "-16.5") || !strings.Contains(lines[1], "ok") {
		t.Errorf("expected measured values in row, got %q", lines[1])
	}

	if !strings.Contains(lines[2], "tool_error") {
		t.Errorf("expected status in failed row, got %q", lines[2])
	}
	if !strings.Contains(lines[2], MissingValue) {
		t.Errorf("expected placeholder for missing values, got %q", lines[2])
	}

	// Columns are padded, so every line has the same width
	for i := 1; i < len(lines); i++ {
		if len(lines[i]) != len(lines[0]) {
			t.Errorf("expected line %d to match header width %d, got %d", i, len(lines[0]), len(lines[i]))
		}
	}
}

func TestMeasurementTable_Empty(t *testing.T) {
	out := NewMeasurementTable().String()
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")

	if len(lines) != 1 {
		t.Fatalf("expected header only, got %d lines", len(lines))
	}
	if !strings.Contains(lines[0], "File") {
		t.Errorf("expected header line, got %q", lines[0])
	}
}
