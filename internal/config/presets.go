package config

import (
	"fmt"
	"strings"

	"github.com/sajari/fuzzy"
)

// PresetNames lists the named parameter bundles in display order.
var PresetNames = []string{"podcast", "bgm", "broadcast"}

// Preset returns the configuration bundle for a named preset. Unknown
// names produce an error carrying a spelling suggestion when one is close
// enough.
func Preset(name string) (Config, error) {
	cfg := DefaultConfig()

	switch strings.ToLower(name) {
	case "podcast":
		cfg.Normalize.Preset = "-16"
		cfg.Normalize.LUFS = -16.0
		cfg.Normalize.TruePeak = -1.5
		cfg.Fade.Enabled = true
		cfg.Fade.InMs = 500
		cfg.Fade.OutMs = 2000
		cfg.Fade.FromEndSec = 3.0
		cfg.Output.Codec = "libmp3lame"
		cfg.Output.Format = "mp3"

	case "bgm":
		cfg.Normalize.Preset = "-18"
		cfg.Normalize.LUFS = -18.0
		cfg.Normalize.TruePeak = -1.5
		cfg.Fade.Enabled = true
		cfg.Fade.InMs = 1000
		cfg.Fade.OutMs = 3000
		cfg.Fade.FromEndSec = 4.0
		cfg.Crossfade.Enabled = true
		cfg.Crossfade.OverlapSec = 3.0
		cfg.Output.Codec = "aac"
		cfg.Output.Format = "wav"

	case "broadcast":
		cfg.Normalize.Preset = "-23"
		cfg.Normalize.LUFS = -23.0
		cfg.Normalize.TruePeak = -1.0
		cfg.Fade.Enabled = true
		cfg.Fade.InMs = 300
		cfg.Fade.OutMs = 1000
		cfg.Fade.FromEndSec = 2.0
		cfg.Output.Codec = "pcm_s16le"
		cfg.Output.Format = "wav"

	default:
		if suggestion := SuggestPreset(name); suggestion != "" {
			return cfg, fmt.Errorf("unknown preset %q, did you mean %q?", name, suggestion)
		}
		return cfg, fmt.Errorf("unknown preset %q, expected one of: %s",
			name, strings.Join(PresetNames, ", "))
	}

	return cfg, nil
}

// ApplyPreset overlays a preset onto cfg. Numeric loudness presets
// ("-16" .. "-23") set only the normalization target; named bundles
// replace every group except the tool paths.
func ApplyPreset(cfg *Config, name string) error {
	if lufs, truePeak, ok := TargetForPreset(name); ok {
		cfg.Normalize.Preset = name
		cfg.Normalize.LUFS = lufs
		cfg.Normalize.TruePeak = truePeak
		return nil
	}

	preset, err := Preset(name)
	if err != nil {
		return err
	}
	paths := cfg.Paths
	*cfg = preset
	cfg.Paths = paths
	return nil
}

// TargetForPreset maps a loudness preset name to target values. Numeric
// presets keep the default true peak except the broadcast-grade "-23".
func TargetForPreset(preset string) (lufs, truePeak float64, ok bool) {
	switch preset {
	case "-16":
		return -16.0, -1.5, true
	case "-18":
		return -18.0, -1.5, true
	case "-19":
		return -19.0, -1.5, true
	case "-20":
		return -20.0, -1.5, true
	case "-23":
		return -23.0, -1.0, true
	}
	return 0, 0, false
}

// SuggestPreset returns the closest known preset name for a misspelling,
// or empty when nothing is close.
func SuggestPreset(name string) string {
	model := fuzzy.NewModel()
	model.SetThreshold(1)
	model.SetDepth(2)
	model.Train(PresetNames)

	suggestions := model.Suggestions(strings.ToLower(name), false)
	if len(suggestions) == 0 {
		return ""
	}
	return suggestions[0]
}
