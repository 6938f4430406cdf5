package models

// MeasurementStatus classifies the outcome of a loudness measurement.
type MeasurementStatus string

const (
	// StatusOK means the diagnostic block was found and parsed
	StatusOK MeasurementStatus = "ok"
	// StatusMeasureError means the block was absent or unparseable
	StatusMeasureError MeasurementStatus = "measure_error"
	// StatusToolError means ffmpeg failed to start or exited nonzero
	StatusToolError MeasurementStatus = "tool_error"
)

// LoudnormStats contains the measured audio levels from ffmpeg loudnorm
// analysis. Values are kept as the raw strings ffmpeg printed so the
// second pass can embed them verbatim.
type LoudnormStats struct {
	InputI       string `json:"input_i"`
	InputTP      string `json:"input_tp"`
	InputLRA     string `json:"input_lra"`
	InputThresh  string `json:"input_thresh"`
	OutputI      string `json:"output_i"`
	OutputTP     string `json:"output_tp"`
	OutputLRA    string `json:"output_lra"`
	OutputThresh string `json:"output_thresh"`
	TargetOffset string `json:"target_offset"`
}

// LoudnessMeasurement is the outcome of one diagnostic pass over one file.
// The numeric fields are nil unless Status is StatusOK. Raw carries the
// full measured parameter set needed for a second-pass correction.
type LoudnessMeasurement struct {
	File           string
	IntegratedLUFS *float64
	LoudnessRange  *float64
	TruePeakDBTP   *float64
	Status         MeasurementStatus
	// Detail holds the failure reason for logs, empty on success
	Detail string
	Raw    *LoudnormStats
}

// OK reports whether the measurement produced usable statistics.
func (m LoudnessMeasurement) OK() bool {
	return m.Status == StatusOK
}
