package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/kartoza/loudsync/internal/models"
)

func floatPtr(v float64) *float64 { return &v }

func TestWriteCSV(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "export-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	measurements := []models.LoudnessMeasurement{
		{
			File:           "/audio/session/intro.wav",
			IntegratedLUFS: floatPtr(-16.5),
			LoudnessRange:  floatPtr(6.4),
			TruePeakDBTP:   floatPtr(-1.2),
			Status:         models.StatusOK,
		},
		{
			File:   "broken.wav",
			Status: models.StatusToolError,
		},
	}

	// A nested path exercises report directory creation
	path := filepath.Join(tmpDir, "reports", CSVFileName)
	if err := WriteCSV(measurements, path); err != nil {
		t.Fatalf("WriteCSV returned error: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open report: %v", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("Failed to read report: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}

	expectedHeader := []string{"file", "integrated_lufs", "loudness_range", "true_peak_dbtp", "status"}
	if !reflect.DeepEqual(records[0], expectedHeader) {
		t.Errorf("expected header %v, got %v", expectedHeader, records[0])
	}

	expectedRow := []string{"intro.wav", "-16.5", "6.4", "-1.2", "ok"}
	if !reflect.DeepEqual(records[1], expectedRow) {
		t.Errorf("expected row %v, got %v", expectedRow, records[1])
	}

	expectedFailed := []string{"broken.wav", "", "", "", "tool_error"}
	if !reflect.DeepEqual(records[2], expectedFailed) {
		t.Errorf("expected row %v, got %v", expectedFailed, records[2])
	}
}

func TestWriteCSV_Empty(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "export-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	path := filepath.Join(tmpDir, CSVFileName)
	if err := WriteCSV(nil, path); err != nil {
		t.Fatalf("WriteCSV returned error: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open report: %v", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("Failed to read report: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("expected header only, got %d records", len(records))
	}
}

func TestCSVCell(t *testing.T) {
	if got := csvCell(nil); got != "" {
		t.Errorf("expected empty cell for nil, got %q", got)
	}
	if got := csvCell(floatPtr(6.4)); got != "6.4" {
		t.Errorf("expected %q, got %q", "6.4", got)
	}
	if got := csvCell(floatPtr(-16.55)); got != "-16.55" {
		t.Errorf("expected %q, got %q", "-16.55", got)
	}
}
