// Package export writes measurement reports to disk.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/kartoza/loudsync/internal/models"
)

// CSVFileName is the default report file name.
const CSVFileName = "loudness_measurement.csv"

var csvHeader = []string{"file", "integrated_lufs", "loudness_range", "true_peak_dbtp", "status"}

// WriteCSV writes measurements to path as a CSV report. Unavailable
// values are written as empty cells so the file stays machine-readable.
func WriteCSV(measurements []models.LoudnessMeasurement, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write report header: %w", err)
	}
	for _, m := range measurements {
		record := []string{
			filepath.Base(m.File),
			csvCell(m.IntegratedLUFS),
			csvCell(m.LoudnessRange),
			csvCell(m.TruePeakDBTP),
			string(m.Status),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write report row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush report: %w", err)
	}
	return nil
}

func csvCell(value *float64) string {
	if value == nil {
		return ""
	}
	return strconv.FormatFloat(*value, 'f', -1, 64)
}
