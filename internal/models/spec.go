package models

// DefaultLoudnessRange is the loudness range target (LRA, in LU) passed to
// every loudnorm invocation. The pipeline never varies it.
const DefaultLoudnessRange = 11.0

// NormalizationTarget is the loudness goal for the normalize stage.
type NormalizationTarget struct {
	// IntegratedLUFS is the target integrated loudness
	IntegratedLUFS float64
	// TruePeakDBTP is the maximum allowed true peak in dBTP
	TruePeakDBTP float64
	// TwoPass selects measure-then-correct over a single adaptive pass
	TwoPass bool
}

// FadeSpec describes a fade-in/fade-out envelope. Durations are seconds.
// The fade-out anchor resolves against a clip's duration: an explicit
// FromEnd offset wins, then an explicit StartAt time, otherwise the fade
// is anchored so it ends exactly at the end of the clip.
type FadeSpec struct {
	FadeIn  float64
	FadeOut float64
	FromEnd *float64
	StartAt *float64
}

// FadeOutStart resolves the fade-out start time for a clip of the given
// duration. The result is always within [0, duration].
func (s FadeSpec) FadeOutStart(duration float64) float64 {
	var start float64
	switch {
	case s.FromEnd != nil:
		start = duration - *s.FromEnd
	case s.StartAt != nil:
		start = *s.StartAt
	default:
		start = duration - s.FadeOut
	}
	if start < 0 {
		return 0
	}
	if start > duration {
		return duration
	}
	return start
}

// CrossfadeSpec describes the pairwise overlap merge between adjacent clips.
type CrossfadeSpec struct {
	// Overlap is the seconds of overlap between adjacent clips
	Overlap float64
	// CurveIn and CurveOut are ffmpeg fade curve names, e.g. "tri"
	CurveIn  string
	CurveOut string
	// Codec encodes the merged output
	Codec string
}

// OutputSpec carries the encoding parameters shared by the stages.
type OutputSpec struct {
	Codec      string
	SampleRate int
	Format     string
}

// StageResult is the outcome of one pipeline stage: the assets that
// survived, in input order, and the subset that failed. Stages never
// reorder their input.
type StageResult struct {
	Survivors []AudioAsset
	Failed    []AudioAsset
}
