// Package logging provides the run logger and the measurement report
// rendering used by the measure command.
package logging

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/kartoza/loudsync/internal/models"
)

// MissingValue is the placeholder for unavailable measurements.
const MissingValue = "-"

// LUFSMeasurementFloor is the lowest reliable integrated loudness the
// analyzer reports; quieter signals print as below the floor.
const LUFSMeasurementFloor = -70.0

// MeasurementTable renders loudness measurements as an aligned plain-text
// table with one row per file.
type MeasurementTable struct {
	rows []models.LoudnessMeasurement
}

// NewMeasurementTable creates an empty table.
func NewMeasurementTable() *MeasurementTable {
	return &MeasurementTable{}
}

// Add appends one measurement row.
func (t *MeasurementTable) Add(m models.LoudnessMeasurement) {
	t.rows = append(t.rows, m)
}

// String renders the table. File names are left-aligned, numeric columns
// right-aligned within their width.
func (t *MeasurementTable) String() string {
	headers := []string{"File", "Integrated", "LRA", "True Peak", "Status"}

	cells := make([][]string, 0, len(t.rows))
	for _, row := range t.rows {
		cells = append(cells, []string{
			filepath.Base(row.File),
			FormatLUFS(row.IntegratedLUFS),
			FormatValue(row.LoudnessRange),
			FormatValue(row.TruePeakDBTP),
			string(row.Status),
		})
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range cells {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var sb strings.Builder
	writeRow := func(row []string) {
		// first column left-aligned, the rest right-aligned
		sb.WriteString(fmt.Sprintf("%-*s", widths[0], row[0]))
		for i := 1; i < len(row); i++ {
			sb.WriteString(fmt.Sprintf("  %*s", widths[i], row[i]))
		}
		sb.WriteString("\n")
	}

	writeRow(headers)
	for _, row := range cells {
		writeRow(row)
	}
	return sb.String()
}

// FormatLUFS formats an integrated loudness value, collapsing readings
// below the measurement floor. Near-silent signals measure far below -70
// and those readings are unreliable.
func FormatLUFS(value *float64) string {
	if value == nil {
		return MissingValue
	}
	if math.IsNaN(*value) || math.IsInf(*value, 1) {
		return MissingValue
	}
	if *value < LUFSMeasurementFloor {
		return "< -70"
	}
	return fmt.Sprintf("%.1f", *value)
}

// FormatValue formats a generic measurement value.
func FormatValue(value *float64) string {
	if value == nil || math.IsNaN(*value) || math.IsInf(*value, 0) {
		return MissingValue
	}
	return fmt.Sprintf("%.1f", *value)
}
